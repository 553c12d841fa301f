package api

import (
	"github.com/psyclimb/Boneglaive/internal/game"
	"github.com/psyclimb/Boneglaive/internal/storage"
)

// GameHandler groups all match-related HTTP handlers.
type GameHandler struct {
	repo   storage.Repository
	roster *game.Roster
}

// NewGameHandler creates a new GameHandler with the given repository and
// the loaded roster definitions.
func NewGameHandler(repo storage.Repository, roster *game.Roster) *GameHandler {
	return &GameHandler{repo: repo, roster: roster}
}
