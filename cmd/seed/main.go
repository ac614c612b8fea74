package main

import (
	"context"
	"log"
	"time"

	"internmatch/internal/config"
	dbpostgres "internmatch/internal/database/postgres"
	"internmatch/internal/database/seeder"
	"internmatch/internal/logger"

	"go.uber.org/zap"
)

// Creates the schema and loads the sample vocabulary and internships.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.App.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := seeder.Default().Run(ctx, db); err != nil {
		zlog.Fatal("seeding failed", zap.Error(err))
	}
	zlog.Info("seeding completed")
}
