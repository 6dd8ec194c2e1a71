package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/arnavshah/staff-scheduler-api/internal/app"
	"github.com/arnavshah/staff-scheduler-api/internal/config"
	"github.com/arnavshah/staff-scheduler-api/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	r, err := app.NewRouter(cfg, logger)
	if err != nil {
		logger.Fatal("could not initialise server", zap.Error(err))
	}

	logger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("could not run server", zap.Error(err))
	}
}
