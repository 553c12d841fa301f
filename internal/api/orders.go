package api

import (
	"errors"
	"net/http"

	"github.com/psyclimb/Boneglaive/internal/constants"
	"github.com/psyclimb/Boneglaive/internal/game"
	"github.com/psyclimb/Boneglaive/internal/logging"
	"github.com/psyclimb/Boneglaive/internal/service"

	"github.com/gin-gonic/gin"
)

type OrdersRequest struct {
	PlayerUUID string              `json:"player_uuid"`
	Orders     []service.UnitOrder `json:"orders"`
}

// SubmitOrders stores a player's committed orders for the open turn and
// reports whether the turn resolved.
func (h *GameHandler) SubmitOrders(c *gin.Context) {
	g, ok := h.gameFromCode(c)
	if !ok {
		return
	}
	var req OrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	g2, resolved, err := service.SubmitOrders(h.repo, h.roster, g.ID, req.PlayerUUID, req.Orders)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		case errors.Is(err, service.ErrGameNotInProgress):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameNotInProgress})
		case errors.Is(err, service.ErrOrdersLocked):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrOrdersLockedResolving})
		case errors.Is(err, service.ErrPlayerNotInGame):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisGame})
		case errors.Is(err, service.ErrUnitNotFound),
			errors.Is(err, service.ErrUnitNotYours),
			errors.Is(err, service.ErrUnitDead),
			errors.Is(err, service.ErrUnknownSkill),
			errors.Is(err, service.ErrSkillOnCooldown),
			errors.Is(err, service.ErrTargetOutOfBounds),
			errors.Is(err, service.ErrOrderNeedsTarget),
			errors.Is(err, service.ErrDuplicateUnitOrder):
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: err.Error()})
		default:
			logging.Error("failed to store orders", err, logging.Fields{constants.LogFieldGameID: g.ID})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreOrder})
		}
		return
	}

	if resolved {
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Turn resolved", "turn": g2.Turn})
	} else {
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Orders stored. Waiting for opponent."})
	}
}

// WithdrawOrders retracts the caller's committed orders while the turn is
// still open.
func (h *GameHandler) WithdrawOrders(c *gin.Context) {
	g, ok := h.gameFromCode(c)
	if !ok {
		return
	}
	var req struct {
		PlayerUUID string `json:"player_uuid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	_, err := service.WithdrawOrders(h.repo, g.ID, req.PlayerUUID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		case errors.Is(err, service.ErrGameNotInProgress):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrGameNotInProgress})
		case errors.Is(err, service.ErrOrdersLocked):
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrOrdersLockedResolving})
		case errors.Is(err, service.ErrPlayerNotInGame):
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInThisGame})
		default:
			logging.Error("failed to withdraw orders", err, logging.Fields{constants.LogFieldGameID: g.ID})
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedStoreOrder})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{constants.JSONKeyMessage: "Orders withdrawn."})
}

// gameFromCode resolves the join-code path parameter to a stored game.
func (h *GameHandler) gameFromCode(c *gin.Context) (*game.GameState, bool) {
	code := normalizeJoinCode(c.Param("gameCode"))
	if code == "" || !joinCodeRegex.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidGameID})
		return nil, false
	}
	g, err := h.repo.FindGameByJoinCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrGameNotFound})
		return nil, false
	}
	return g, true
}
