package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arnavshah/shelter-scheduler-go/internal/config"
	"github.com/arnavshah/shelter-scheduler-go/internal/logging"
	"github.com/arnavshah/shelter-scheduler-go/pkg/database"
	"github.com/arnavshah/shelter-scheduler-go/pkg/handlers"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		logger.Fatal("database unavailable", zap.Error(err))
	}

	h := handlers.New(db, cfg, logger)
	if err := h.Auth.EnsureAdminExists(context.Background(), db, cfg.AdminUsername, cfg.AdminPassword, logger); err != nil {
		logger.Warn("could not ensure admin user", zap.Error(err))
	}

	r := handlers.NewRouter(h)
	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("could not run server", zap.Error(err))
	}
}
