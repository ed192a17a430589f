// Command seed creates the schema and fills empty tables with the bootstrap
// rooms and users, then exits.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"hospital-api/internal/core/config"
	"hospital-api/internal/core/database"
	"hospital-api/internal/core/logger"
	"hospital-api/internal/repo"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, cleanup := logger.FromConfig(cfg.Log)
	defer cleanup()

	if err := run(cfg, log); err != nil {
		log.Error("seed failed", zap.Error(err))
		cleanup()
		os.Exit(1)
	}
	log.Info("seed done")
}

func run(cfg *config.Config, log *zap.Logger) error {
	db, err := database.NewGorm(database.OptsFromConfig(cfg.DB, log))
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	if err := repo.Migrate(db); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	return repo.Seed(ctx, db, log)
}
