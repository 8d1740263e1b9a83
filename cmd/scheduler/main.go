package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/arnavshah/shelter-scheduler-go/internal/config"
	"github.com/arnavshah/shelter-scheduler-go/internal/console"
	"github.com/arnavshah/shelter-scheduler-go/internal/logging"
	"github.com/arnavshah/shelter-scheduler-go/pkg/database"
	"github.com/arnavshah/shelter-scheduler-go/pkg/export"
	"github.com/arnavshah/shelter-scheduler-go/pkg/scheduler"
)

func main() {
	cfg := config.Load()

	pflag.StringVarP(&cfg.ScheduleOutput, "output", "o", cfg.ScheduleOutput, "where the schedule is written (path or afs URL)")
	pflag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	seed := pflag.String("seed", "", "fixture to import before scheduling")
	printText := pflag.Bool("print", false, "also print the schedule to stdout")
	pflag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *seed, *printText, logger); err != nil {
		logger.Error("scheduling failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, seed string, printText bool, logger *zap.Logger) error {
	db, err := database.InitDB(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		return err
	}

	if seed != "" {
		f, err := database.LoadFixture(ctx, seed)
		if err != nil {
			return err
		}
		if err := database.Seed(ctx, db, f); err != nil {
			return fmt.Errorf("seed %s: %w", seed, err)
		}
		logger.Info("fixture seeded", zap.String("fixture", seed))
	}

	s := scheduler.New(database.NewStore(db), scheduler.WithLogger(logger))
	result, err := s.Run(ctx, console.NewDecider(os.Stdin, os.Stdout))
	if err != nil {
		return err
	}

	target, err := export.New().Write(ctx, cfg.ScheduleOutput, result.Text)
	if err != nil {
		return err
	}

	if printText {
		fmt.Print(result.Text)
	}
	fmt.Printf("Schedule written to %s: %d placed, %d with volunteers, %d rescheduled, %d unresolved\n",
		target, result.Placed(), result.Volunteers, result.Rescheduled, len(result.Unresolved))
	for _, u := range result.Unresolved {
		fmt.Printf("  not scheduled: %s (%s)\n", result.Catalog.Label(u.Item), u.Resolution.Outcome)
	}
	for _, err := range result.PersistErrors {
		fmt.Printf("  warning: %v\n", err)
	}
	return nil
}
