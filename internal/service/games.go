package service

import (
	"errors"
	"fmt"

	"github.com/psyclimb/Boneglaive/internal/engine"
	"github.com/psyclimb/Boneglaive/internal/game"
)

// GameRepo is the minimal repository interface the game services need.
// The storage package's Repository satisfies it.
type GameRepo interface {
	CreateGame(g *game.GameState) error
	GetGameByID(id uint) (*game.GameState, error)
	FindGameByJoinCode(code string) (*game.GameState, error)
	UpdateGame(g *game.GameState) error
	SaveSnapshot(s *game.TurnSnapshot) error
}

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameFull          = errors.New("game already has two players")
	ErrGameNotJoinable   = errors.New("game is not accepting players")
	ErrUnknownUnitName   = errors.New("unknown unit name")
	ErrUnitNotPlaceable  = errors.New("unit cannot be placed at setup")
	ErrSquadSizeInvalid  = errors.New("squad must contain between one and five units")
	ErrNoRoomForSquad    = errors.New("no free deployment tiles for squad")
	ErrPlayerNotInGame   = errors.New("player not in game")
	ErrGameNotInProgress = errors.New("game is not in progress")
)

const maxSquadSize = 5

// CreateGameRequest carries everything needed to open a new match.
type CreateGameRequest struct {
	GameName   string
	PlayerName string
	PlayerUUID string
	JoinCode   string
	BoardName  string
	Seed       int64
	UnitNames  []string
}

// CreateGame opens a match in the waiting state with player 1's squad
// deployed. The match starts when a second player joins.
func CreateGame(repo GameRepo, roster *game.Roster, req CreateGameRequest) (*game.GameState, error) {
	if err := validateSquad(roster, req.UnitNames); err != nil {
		return nil, err
	}

	g := &game.GameState{
		Name:      req.GameName,
		JoinCode:  req.JoinCode,
		Status:    game.StatusWaiting,
		Phase:     game.PhaseSetup,
		BoardName: req.BoardName,
		Seed:      req.Seed,
		Players: []game.Player{
			{PlayerNum: 1, PlayerName: req.PlayerName, PlayerUUID: req.PlayerUUID},
		},
	}
	if g.BoardName == "" {
		g.BoardName = "lime_foyer"
	}

	board := game.BoardByName(g.BoardName)
	if err := deploySquad(g, board, roster, 1, req.UnitNames); err != nil {
		return nil, err
	}

	if err := repo.CreateGame(g); err != nil {
		return nil, err
	}
	return g, nil
}

// JoinGame adds player 2 to a waiting match and starts it.
func JoinGame(repo GameRepo, roster *game.Roster, joinCode, playerName, playerUUID string, unitNames []string) (*game.GameState, error) {
	g, err := repo.FindGameByJoinCode(joinCode)
	if err != nil || g == nil {
		return nil, ErrGameNotFound
	}
	if g.Status != game.StatusWaiting {
		return nil, ErrGameNotJoinable
	}
	if len(g.Players) >= 2 {
		return nil, ErrGameFull
	}
	if err := validateSquad(roster, unitNames); err != nil {
		return nil, err
	}

	g.Players = append(g.Players, game.Player{PlayerNum: 2, PlayerName: playerName, PlayerUUID: playerUUID})

	board := game.BoardByName(g.BoardName)
	if err := deploySquad(g, board, roster, 2, unitNames); err != nil {
		return nil, err
	}

	if err := engine.BeginMatch(g); err != nil {
		return nil, err
	}
	g.Message = "The match has started. Commit your orders."

	if err := repo.UpdateGame(g); err != nil {
		return nil, err
	}
	return g, nil
}

func validateSquad(roster *game.Roster, names []string) error {
	if len(names) == 0 || len(names) > maxSquadSize {
		return ErrSquadSizeInvalid
	}
	for _, n := range names {
		def := roster.Unit(n)
		if def == nil {
			return fmt.Errorf("%w: %s", ErrUnknownUnitName, n)
		}
		if def.Summonable {
			return fmt.Errorf("%w: %s", ErrUnitNotPlaceable, n)
		}
	}
	return nil
}

// deploySquad places units on the player's deployment rows: player 1 near
// the top edge, player 2 near the bottom. Tiles are scanned left to right
// and skipped when impassable or occupied.
func deploySquad(g *game.GameState, board *game.Board, roster *game.Roster, player int, names []string) error {
	rows := []int{1, 0, 2}
	if player == 2 {
		rows = []int{game.BoardHeight - 2, game.BoardHeight - 1, game.BoardHeight - 3}
	}

	placed := 0
	for _, name := range names {
		pos, ok := freeDeployTile(g, board, rows)
		if !ok {
			return ErrNoRoomForSquad
		}
		u := roster.NewUnit(name, player, g.NextInstanceID(), pos)
		g.Units = append(g.Units, *u)
		placed++
	}
	if placed != len(names) {
		return ErrNoRoomForSquad
	}
	return nil
}

func freeDeployTile(g *game.GameState, board *game.Board, rows []int) (game.Position, bool) {
	for _, y := range rows {
		for x := 0; x < game.BoardWidth; x++ {
			p := game.Position{Y: y, X: x}
			if !board.IsPassable(p) {
				continue
			}
			if g.LivingUnitAt(p) != nil {
				continue
			}
			return p, true
		}
	}
	return game.Position{}, false
}

func playerByUUID(g *game.GameState, uuid string) *game.Player {
	for i := range g.Players {
		if g.Players[i].PlayerUUID == uuid {
			return &g.Players[i]
		}
	}
	return nil
}
