package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/api"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/config"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/constants"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/logging"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/narrative"
	"github.com/kelcyazef/ImmunoWarriors2-sub000/internal/storage"
)

func main() {
	// Load unit catalog configuration (required). Path may be provided via
	// IMMUNO_CONFIG env var or defaults to ./immuno_config.json in the
	// current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./immuno_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Missing or invalid immuno configuration", err, logging.Fields{"config_path": configPath, "hint": "create an immuno_config.json with 'antibody_list' and 'pathogen_list' arrays and optional keys: server.address, combat.turn_cap, report_prompt"})
	}

	// If the configuration provides a report prompt template, apply it to
	// the narrative generator so battle reports use the configured text.
	if cfg.ReportPromptTemplate != "" {
		narrative.SetReportPromptTemplate(cfg.ReportPromptTemplate)
	}

	// Allow the DB path to be configured via IMMUNO_DB. Default to a
	// `data/` directory inside the module for local development.
	dbPath := os.Getenv(constants.EnvDatabasePath)
	if dbPath == "" {
		dbPath = "./data/immuno.db"
	}
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}

	repo := storage.NewSQLiteRepository(db, cfg.Antibodies, cfg.Pathogens)
	handler := api.NewBattleHandler(repo, cfg.TurnCap)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteHealth, handler.Health)
		apiRoutes.GET(constants.RouteAntibodies, handler.ListAntibodies)
		apiRoutes.GET(constants.RoutePathogens, handler.ListPathogens)
		apiRoutes.GET(constants.RouteSignatures, handler.ListSignatures)
		apiRoutes.POST(constants.RouteBattles, handler.CreateBattle)
		apiRoutes.GET(constants.RouteBattles, handler.ListBattles)
		apiRoutes.GET(constants.RouteBattleStream, handler.StreamBattle)
		apiRoutes.GET(constants.RouteBattleByID, handler.GetBattle)
		apiRoutes.GET(constants.RouteBattleReport, handler.GetBattleReport)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
