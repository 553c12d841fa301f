package storage

import (
	"github.com/psyclimb/Boneglaive/internal/game"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Keep schema updated via AutoMigrate; the roster itself is never
	// persisted (the config file is the single source of truth for unit
	// and skill definitions).
	err = db.AutoMigrate(&game.GameState{}, &game.Player{}, &game.Unit{}, &game.TurnSnapshot{})
	if err != nil {
		return nil, err
	}

	// One snapshot row per resolved turn of a game.
	if execErr := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_turn_snapshots_game_turn ON turn_snapshots(game_id, turn);").Error; execErr != nil {
		return nil, execErr
	}
	return db, nil
}
