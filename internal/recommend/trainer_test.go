package recommend

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestTrain_UnchangedDataIsNoOp(t *testing.T) {
	model := NewTextModel(zap.NewNop())
	store := NewArtifactStore(filepath.Join(t.TempDir(), "model.json"), zap.NewNop())
	trainer := NewTrainer(model, store, zap.NewNop())

	postings := trainingPostings()
	if _, err := trainer.Train(context.Background(), postings, false); err != nil {
		t.Fatalf("first train: %v", err)
	}
	firstRun := model.snapshot().RunID
	firstTrainedAt := model.snapshot().TrainedAt

	if _, err := trainer.Train(context.Background(), postings, false); err != nil {
		t.Fatalf("second train: %v", err)
	}
	if model.snapshot().RunID != firstRun {
		t.Fatalf("expected no-op retrain to keep the run id")
	}
	if !model.snapshot().TrainedAt.Equal(firstTrainedAt) {
		t.Fatalf("expected no-op retrain to keep the training timestamp")
	}
}

func TestTrain_ForceAlwaysRetrains(t *testing.T) {
	model, trainer := trainedModel(t)
	firstRun := model.snapshot().RunID

	if _, err := trainer.Train(context.Background(), trainingPostings(), true); err != nil {
		t.Fatalf("forced train: %v", err)
	}
	if model.snapshot().RunID == firstRun {
		t.Fatalf("expected force=true to produce a new training run")
	}
}

func TestTrain_ChangedDataRetrains(t *testing.T) {
	model, trainer := trainedModel(t)
	firstHash := model.snapshot().DataHash

	postings := trainingPostings()
	postings[0].Description = "completely different duties"
	if _, err := trainer.Train(context.Background(), postings, false); err != nil {
		t.Fatalf("train: %v", err)
	}
	if model.snapshot().DataHash == firstHash {
		t.Fatalf("expected changed corpus to produce a new data hash")
	}
}

func TestTrain_EmptyCorpusResetsModel(t *testing.T) {
	model, trainer := trainedModel(t)

	if _, err := trainer.Train(context.Background(), nil, true); err == nil {
		t.Fatalf("expected training failure on empty corpus")
	}
	if model.Ready() {
		t.Fatalf("expected model reset to not-ready after failure")
	}
	if got := model.Similarity("anything", 0); got != NeutralMLScore {
		t.Fatalf("expected neutral fallback after reset, got %.2f", got)
	}
}

func TestTrain_MetricsRecorded(t *testing.T) {
	_, trainer := trainedModel(t)

	st := trainer.Status()
	if !st.Ready {
		t.Fatalf("expected ready status")
	}
	if st.Metrics.VocabularySize == 0 || st.Metrics.MatrixRows != 3 {
		t.Fatalf("unexpected metrics: %+v", st.Metrics)
	}
	if st.Metrics.Sparsity < 0 || st.Metrics.Sparsity > 1 {
		t.Fatalf("sparsity out of range: %f", st.Metrics.Sparsity)
	}
}

func TestArtifact_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")

	model := NewTextModel(zap.NewNop())
	store := NewArtifactStore(path, zap.NewNop())
	trainer := NewTrainer(model, store, zap.NewNop())
	if _, err := trainer.Train(context.Background(), trainingPostings(), true); err != nil {
		t.Fatalf("train: %v", err)
	}

	reloaded := NewTextModel(zap.NewNop())
	reloadedTrainer := NewTrainer(reloaded, NewArtifactStore(path, zap.NewNop()), zap.NewNop())
	ok, err := reloadedTrainer.LoadPersisted()
	if err != nil || !ok {
		t.Fatalf("load persisted: ok=%v err=%v", ok, err)
	}
	if !reloaded.Ready() {
		t.Fatalf("expected reloaded model to be ready")
	}
	if reloaded.snapshot().DataHash != model.snapshot().DataHash {
		t.Fatalf("data hash lost in round trip")
	}
}

func TestArtifact_VersionMismatchIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")

	stale := ModelArtifact{Version: "1.0", Corpus: []string{"x"}}
	b, _ := json.Marshal(stale)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write stale artifact: %v", err)
	}

	model := NewTextModel(zap.NewNop())
	trainer := NewTrainer(model, NewArtifactStore(path, zap.NewNop()), zap.NewNop())
	ok, err := trainer.LoadPersisted()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ok || model.Ready() {
		t.Fatalf("version-mismatched artifact must load as no usable model")
	}
}

func TestRetrainIfStale(t *testing.T) {
	model, trainer := trainedModel(t)

	retrained, err := trainer.RetrainIfStale(context.Background(), trainingPostings())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if retrained {
		t.Fatalf("expected up-to-date model to skip retraining")
	}

	postings := trainingPostings()
	postings[1].Title = "Senior Data Analyst Intern"
	retrained, err = trainer.RetrainIfStale(context.Background(), postings)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !retrained {
		t.Fatalf("expected drifted corpus to retrain")
	}
	if model.snapshot().Metadata[1].Title != "Senior Data Analyst Intern" {
		t.Fatalf("expected metadata refreshed after retrain")
	}
}
