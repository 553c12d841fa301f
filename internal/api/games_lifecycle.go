package api

import (
	"errors"
	"math/rand"
	"net/http"

	"github.com/psyclimb/Boneglaive/internal/constants"
	"github.com/psyclimb/Boneglaive/internal/logging"
	"github.com/psyclimb/Boneglaive/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateGameRequest struct {
	GameName   string   `json:"game_name"`
	PlayerName string   `json:"player_name"`
	PlayerUUID string   `json:"player_uuid"`
	BoardName  string   `json:"board_name"`
	Seed       int64    `json:"seed"`
	Units      []string `json:"units"`
}

// CreateGame opens a new match with the caller as player 1 and returns
// the join code a second player uses to enter.
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.PlayerUUID == "" || req.PlayerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	g, err := service.CreateGame(h.repo, h.roster, service.CreateGameRequest{
		GameName:   req.GameName,
		PlayerName: req.PlayerName,
		PlayerUUID: req.PlayerUUID,
		JoinCode:   generateJoinCode(),
		BoardName:  req.BoardName,
		Seed:       seed,
		UnitNames:  req.Units,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownUnitName),
			errors.Is(err, service.ErrUnitNotPlaceable),
			errors.Is(err, service.ErrSquadSizeInvalid):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			logging.Error("failed to create game", err, nil)
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateGame})
		}
		return
	}

	logging.Info("game created", logging.Fields{constants.LogFieldGameID: g.ID, "join_code": g.JoinCode})
	c.JSON(http.StatusCreated, gin.H{"game_id": g.ID, "join_code": g.JoinCode})
}

type JoinGameRequest struct {
	PlayerName string   `json:"player_name"`
	PlayerUUID string   `json:"player_uuid"`
	Units      []string `json:"units"`
}

// JoinGame adds the caller as player 2 and starts the match.
func (h *GameHandler) JoinGame(c *gin.Context) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameID})
		return
	}
	var req JoinGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.PlayerUUID == "" || req.PlayerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	g, err := service.JoinGame(h.repo, h.roster, code, req.PlayerName, req.PlayerUUID, req.Units)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		case errors.Is(err, service.ErrGameFull), errors.Is(err, service.ErrGameNotJoinable):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameFull})
		case errors.Is(err, service.ErrUnknownUnitName),
			errors.Is(err, service.ErrUnitNotPlaceable),
			errors.Is(err, service.ErrSquadSizeInvalid):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			logging.Error("failed to join game", err, logging.Fields{"join_code": code})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedJoinGame})
		}
		return
	}

	logging.Info("game started", logging.Fields{constants.LogFieldGameID: g.ID})
	out, err := MarshalIntoSnakeTimestamps(g)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedEncodeGame})
		return
	}
	c.JSON(http.StatusOK, out)
}
