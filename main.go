package main

import (
	"go.uber.org/zap"

	"triage-backend/internal/config"
	"triage-backend/internal/evidence"
	"triage-backend/internal/pipeline"
	"triage-backend/internal/planner"
	"triage-backend/internal/repository"
	"triage-backend/internal/scoring"
	"triage-backend/internal/server"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Image analyzer: remote model service when configured, heuristic stub
	// otherwise. Either way the pipeline contract is the same.
	var analyzer evidence.Analyzer
	if cfg.Analyzer.URL != "" {
		analyzer = evidence.NewRemoteAnalyzer(cfg.Analyzer.URL)
		logger.Info("Using remote image analyzer", zap.String("url", cfg.Analyzer.URL))
	} else {
		analyzer = evidence.NewStubAnalyzer()
		logger.Info("Using built-in heuristic image analyzer")
	}

	// Assemble the triage pipeline
	extractor := evidence.NewExtractor(analyzer, logger)
	engine := scoring.NewEngine(logger)
	actionPlanner := planner.NewPlanner(logger)
	visitRepo := repository.NewVisitRepository(db, logger)
	controller := pipeline.NewController(extractor, engine, actionPlanner, visitRepo, logger)

	// Initialize and run the server
	srv := server.NewServer(db, controller, logger)
	srv.Run(cfg.Server.Port)
}
