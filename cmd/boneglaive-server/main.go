package main

import (
	"os"

	"github.com/psyclimb/Boneglaive/internal/api"
	"github.com/psyclimb/Boneglaive/internal/constants"
	"github.com/psyclimb/Boneglaive/internal/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	// Roster configuration is required. Path may be provided via
	// BONEGLAIVE_CONFIG or defaults to ./boneglaive_config.json in the
	// current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./boneglaive_config.json"
	}
	cfg := loadConfigOrExit(configPath)

	// Allow the DB path to be configured via BONEGLAIVE_DB. Default to a
	// data/ directory for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/boneglaive.db"
	}
	repo := createRepositoryOrExit(dbPath)

	handler := api.NewGameHandler(repo, cfg.Roster)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteRoster, handler.ListRoster)
		apiRoutes.GET(constants.RouteOpenGames, handler.ListOpenGames)

		apiRoutes.POST(constants.RouteGames, handler.CreateGame)
		apiRoutes.POST(constants.RouteGameJoin, handler.JoinGame)
		apiRoutes.GET(constants.RouteGameByCode, handler.GetGame)
		apiRoutes.GET(constants.RouteGameEvents, handler.GetEvents)
		apiRoutes.POST(constants.RouteGameOrders, handler.SubmitOrders)
		apiRoutes.DELETE(constants.RouteGameOrders, handler.WithdrawOrders)
		apiRoutes.GET(constants.RouteGameSnapshots, handler.ListSnapshots)
		apiRoutes.GET(constants.RouteGameSnapshot, handler.GetSnapshot)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
