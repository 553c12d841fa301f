package main

import (
	"github.com/psyclimb/Boneglaive/internal/config"
	"github.com/psyclimb/Boneglaive/internal/logging"
	"github.com/psyclimb/Boneglaive/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid boneglaive configuration", err, logging.Fields{"config_path": path, "hint": "create a boneglaive_config.json with 'unit_list', 'skill_list' and 'status_list' arrays and an optional server.address"})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}
