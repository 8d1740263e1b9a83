package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/arnavshah/shelter-scheduler-go/internal/config"
	"github.com/arnavshah/shelter-scheduler-go/internal/logging"
	"github.com/arnavshah/shelter-scheduler-go/pkg/database"
)

func main() {
	cfg := config.Load()
	logLevel := pflag.String("log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: seed [flags] <fixture.yaml>...")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() == 0 {
		pflag.Usage()
		os.Exit(2)
	}

	logger := logging.Must(*logLevel)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	db, err := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		logger.Fatal("database unavailable", zap.Error(err))
	}

	for _, location := range pflag.Args() {
		f, err := database.LoadFixture(ctx, location)
		if err != nil {
			logger.Fatal("could not load fixture", zap.String("fixture", location), zap.Error(err))
		}
		if err := database.Seed(ctx, db, f); err != nil {
			logger.Fatal("could not seed fixture", zap.String("fixture", location), zap.Error(err))
		}
		logger.Info("fixture seeded",
			zap.String("fixture", location),
			zap.Int("animals", len(f.Animals)),
			zap.Int("tasks", len(f.Tasks)),
			zap.Int("treatments", len(f.Treatments)))
	}
}
