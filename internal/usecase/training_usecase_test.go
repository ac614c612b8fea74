package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"internmatch/internal/domain/posting"
	"internmatch/internal/recommend"

	"go.uber.org/zap"
)

func newTestTrainer(t *testing.T) (*recommend.TextModel, *recommend.Trainer, *recommend.ResultCache) {
	t.Helper()
	model := recommend.NewTextModel(zap.NewNop())
	store := recommend.NewArtifactStore(filepath.Join(t.TempDir(), "model.json"), zap.NewNop())
	trainer := recommend.NewTrainer(model, store, zap.NewNop())
	results := recommend.NewResultCache(10*time.Minute, 16, nil)
	return model, trainer, results
}

func trainingCorpus() []posting.Posting {
	return []posting.Posting{
		{ID: 1, Title: "Python Developer Intern", Description: "Backend with Python", Sector: "Technology"},
		{ID: 2, Title: "Data Analyst Intern", Description: "Insights with SQL", Sector: "Analytics"},
	}
}

func TestTraining_TrainsAndResetsResultCache(t *testing.T) {
	model, trainer, results := newTestTrainer(t)
	results.Put("stale", []recommend.Recommendation{{PostingID: 9}})

	notified := false
	uc := NewTrainingUsecase(
		&mockPostingRepo{items: trainingCorpus()},
		trainer, results, nil,
		func(recommend.ModelStatus) { notified = true },
		zap.NewNop(),
	)

	res, err := uc.Train(context.Background(), false)
	if err != nil {
		t.Fatalf("train: %v", err)
	}
	if !res.Retrained {
		t.Fatalf("expected first train to retrain")
	}
	if !model.Ready() {
		t.Fatalf("expected ready model")
	}
	if results.Len() != 0 {
		t.Fatalf("expected result cache reset after retrain")
	}
	if !notified {
		t.Fatalf("expected model_trained notification")
	}
}

func TestTraining_NoOpKeepsCacheAndSkipsNotify(t *testing.T) {
	_, trainer, results := newTestTrainer(t)
	repo := &mockPostingRepo{items: trainingCorpus()}

	notifications := 0
	uc := NewTrainingUsecase(repo, trainer, results, nil,
		func(recommend.ModelStatus) { notifications++ }, zap.NewNop())

	if _, err := uc.Train(context.Background(), false); err != nil {
		t.Fatalf("first train: %v", err)
	}
	results.Put("warm", []recommend.Recommendation{{PostingID: 1}})

	res, err := uc.Train(context.Background(), false)
	if err != nil {
		t.Fatalf("second train: %v", err)
	}
	if res.Retrained {
		t.Fatalf("unchanged corpus must be a no-op")
	}
	if results.Len() != 1 {
		t.Fatalf("no-op train must not reset the result cache")
	}
	if notifications != 1 {
		t.Fatalf("expected a single notification, got %d", notifications)
	}
}

func TestTraining_RetrainInvalidatesPostingCache(t *testing.T) {
	_, trainer, results := newTestTrainer(t)
	cache := newFakeJSONCache()
	cache.entries["postings:search:abc"] = []PostingListItem{{ID: 1}}

	uc := NewTrainingUsecase(&mockPostingRepo{items: trainingCorpus()}, trainer, results, cache, nil, zap.NewNop())

	if _, err := uc.Train(context.Background(), false); err != nil {
		t.Fatalf("train: %v", err)
	}
	if cache.invalidations != 1 {
		t.Fatalf("expected one invalidation, got %d", cache.invalidations)
	}
	if _, ok := cache.entries["postings:search:abc"]; ok {
		t.Fatalf("expected stale posting payload to be dropped")
	}

	if _, err := uc.Train(context.Background(), false); err != nil {
		t.Fatalf("second train: %v", err)
	}
	if cache.invalidations != 1 {
		t.Fatalf("no-op train must not invalidate, got %d", cache.invalidations)
	}
}

func TestTraining_LockContention(t *testing.T) {
	_, trainer, results := newTestTrainer(t)
	cache := newFakeJSONCache()
	cache.locks[trainLockKey] = true

	uc := NewTrainingUsecase(&mockPostingRepo{items: trainingCorpus()}, trainer, results, cache, nil, zap.NewNop())

	_, err := uc.Train(context.Background(), false)
	if !errors.Is(err, ErrTrainingInProgress) {
		t.Fatalf("expected ErrTrainingInProgress, got %v", err)
	}
}

func TestTraining_EmptyCorpus(t *testing.T) {
	_, trainer, results := newTestTrainer(t)
	uc := NewTrainingUsecase(&mockPostingRepo{}, trainer, results, nil, nil, zap.NewNop())

	_, err := uc.Train(context.Background(), false)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTraining_Status(t *testing.T) {
	_, trainer, results := newTestTrainer(t)
	uc := NewTrainingUsecase(&mockPostingRepo{items: trainingCorpus()}, trainer, results, nil, nil, zap.NewNop())

	st, err := uc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if st.Ready {
		t.Fatalf("untrained model must report not ready")
	}

	if _, err := uc.Train(context.Background(), false); err != nil {
		t.Fatalf("train: %v", err)
	}
	st, _ = uc.Status(context.Background())
	if !st.Ready || st.TrainingSize != 2 {
		t.Fatalf("unexpected status after training: %+v", st)
	}
}
