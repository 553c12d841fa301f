package storage

import (
	"github.com/psyclimb/Boneglaive/internal/game"
)

type Repository interface {
	CreateGame(g *game.GameState) error
	GetGameByID(id uint) (*game.GameState, error)
	FindGameByJoinCode(code string) (*game.GameState, error)
	UpdateGame(g *game.GameState) error
	// GetOpenGames returns recently created games still waiting for a
	// second player.
	GetOpenGames() ([]game.GameState, error)

	// SaveSnapshot stores the canonical post-turn serialization of a
	// match. Snapshots are append-only.
	SaveSnapshot(s *game.TurnSnapshot) error
	// ListSnapshots returns all snapshots for a game ordered by turn.
	ListSnapshots(gameID uint) ([]game.TurnSnapshot, error)
	// GetSnapshot returns the snapshot for a specific resolved turn.
	GetSnapshot(gameID uint, turn int) (*game.TurnSnapshot, error)
}
