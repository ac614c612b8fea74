package main

import (
	"context"
	"flag"
	"log"
	"time"

	"internmatch/internal/app"
	"internmatch/internal/config"
	"internmatch/internal/logger"

	"go.uber.org/zap"
)

// Fits the text model over the current posting corpus and writes the
// artifact, so a deploy can ship with a warm model.
func main() {
	force := flag.Bool("force", false, "retrain even when the corpus is unchanged")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.App.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	container, err := app.NewContainer(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to build container", zap.Error(err))
	}
	defer func() { _ = container.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	corpus, err := container.Postings.ListAll(ctx)
	if err != nil {
		zlog.Fatal("failed to load postings", zap.Error(err))
	}

	metrics, err := container.Trainer.Train(ctx, corpus, *force)
	if err != nil {
		zlog.Fatal("training failed", zap.Error(err))
	}

	zlog.Info("training finished",
		zap.Int("documents", metrics.MatrixRows),
		zap.Int("vocabulary", metrics.VocabularySize),
		zap.Float64("sparsity", metrics.Sparsity),
		zap.Int64("millis", metrics.TrainingMillis),
	)
}
