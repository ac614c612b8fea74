package usecase

import (
	"context"
	"time"

	"internmatch/internal/recommend"
	"internmatch/internal/repository"

	"go.uber.org/zap"
)

const trainLockKey = "model:train:lock"

type TrainingResult struct {
	Retrained bool                   `json:"retrained"`
	Status    recommend.ModelStatus  `json:"status"`
	Metrics   recommend.ModelMetrics `json:"metrics"`
}

type TrainingUsecase interface {
	Train(ctx context.Context, force bool) (TrainingResult, error)
	Status(ctx context.Context) (recommend.ModelStatus, error)
}

// Training drives model retraining over the full posting corpus. A
// redis lock keeps concurrent instances from training simultaneously;
// when redis is absent the lock degrades to per-instance behavior.
type Training struct {
	postings repository.PostingRepository
	trainer  *recommend.Trainer
	results  *recommend.ResultCache
	cache    JSONCache
	notify   func(recommend.ModelStatus)
	logger   *zap.Logger
}

func NewTrainingUsecase(
	postings repository.PostingRepository,
	trainer *recommend.Trainer,
	results *recommend.ResultCache,
	cache JSONCache,
	notify func(recommend.ModelStatus),
	logger *zap.Logger,
) *Training {
	return &Training{
		postings: postings,
		trainer:  trainer,
		results:  results,
		cache:    cache,
		notify:   notify,
		logger:   logger,
	}
}

func (u *Training) Train(ctx context.Context, force bool) (TrainingResult, error) {
	lockAcquired := false
	if u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, trainLockKey, "1", 5*time.Minute)
		if err == nil && !ok {
			return TrainingResult{}, ErrTrainingInProgress
		}
		lockAcquired = err == nil && ok
	}
	if lockAcquired {
		defer func() { _ = u.cache.Delete(ctx, trainLockKey) }()
	}

	corpus, err := u.postings.ListAll(ctx)
	if err != nil {
		return TrainingResult{}, ErrInternal
	}
	if len(corpus) == 0 {
		return TrainingResult{}, ErrNotFound
	}

	before := u.trainer.Status()
	metrics, err := u.trainer.Train(ctx, corpus, force)
	if err != nil {
		if u.logger != nil {
			u.logger.Error("model training failed", zap.Error(err))
		}
		return TrainingResult{}, ErrInternal
	}

	after := u.trainer.Status()
	retrained := after.RunID != before.RunID

	if retrained {
		// Cached shortlists were scored by the previous model, and a
		// reseed ahead of the retrain leaves stale listing payloads.
		if u.results != nil {
			u.results.Reset()
		}
		if u.cache != nil {
			if err := u.cache.InvalidatePostings(ctx); err != nil && u.logger != nil {
				u.logger.Warn("posting cache invalidation failed", zap.Error(err))
			}
		}
		if u.notify != nil {
			u.notify(after)
		}
		if u.logger != nil {
			u.logger.Info("model retrained",
				zap.String("run_id", after.RunID),
				zap.Int("documents", metrics.MatrixRows),
				zap.Int("vocabulary", metrics.VocabularySize),
			)
		}
	}

	return TrainingResult{Retrained: retrained, Status: after, Metrics: metrics}, nil
}

func (u *Training) Status(ctx context.Context) (recommend.ModelStatus, error) {
	return u.trainer.Status(), nil
}
