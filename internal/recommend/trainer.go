package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"internmatch/internal/domain/posting"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Trainer fits the text model over the full posting corpus and manages
// the persisted artifact. Training failures reset the model to the
// not-ready state; scoring callers only ever see the neutral fallback.
type Trainer struct {
	model  *TextModel
	store  *ArtifactStore
	logger *zap.Logger
}

func NewTrainer(model *TextModel, store *ArtifactStore, logger *zap.Logger) *Trainer {
	return &Trainer{model: model, store: store, logger: logger}
}

// DataHash fingerprints the corpus over every posting's id, title,
// description and sector, in iteration order.
func DataHash(postings []posting.Posting) string {
	h := sha256.New()
	for _, p := range postings {
		fmt.Fprintf(h, "%d:%s:%s:%s", p.ID, p.Title, p.Description, p.Sector)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Train fits the vector space over the given postings. Without force it
// is a no-op when the model is ready and the data hash is unchanged; the
// previously recorded metrics are returned and the artifact timestamp
// stays untouched.
func (t *Trainer) Train(ctx context.Context, postings []posting.Posting, force bool) (ModelMetrics, error) {
	currentHash := DataHash(postings)

	if !force && t.model.Ready() {
		if fm := t.model.snapshot(); fm != nil && fm.DataHash == currentHash {
			if t.logger != nil {
				t.logger.Info("model already trained with current data",
					zap.String("data_hash", currentHash[:12]),
				)
			}
			return fm.Metrics, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return ModelMetrics{}, err
	}
	if len(postings) == 0 {
		t.model.reset()
		return ModelMetrics{}, errEmptyCorpus
	}

	start := time.Now()

	corpus := make([]string, len(postings))
	metadata := make([]DocumentMeta, len(postings))
	for i, p := range postings {
		text := CombinedPostingText(p)
		corpus[i] = text
		metadata[i] = DocumentMeta{
			PostingID:  p.ID,
			Title:      p.Title,
			Sector:     p.Sector,
			TextLength: len(text),
		}
	}

	vz := NewVectorizer()
	vectors, err := vz.Fit(corpus)
	if err != nil {
		t.model.reset()
		if t.logger != nil {
			t.logger.Error("model training failed", zap.Error(err))
		}
		return ModelMetrics{}, fmt.Errorf("fit vector space: %w", err)
	}

	nnz := 0
	for _, v := range vectors {
		nnz += v.NNZ()
	}
	total := len(vectors) * len(vz.Vocabulary)
	sparsity := 0.0
	if total > 0 {
		sparsity = 1 - float64(nnz)/float64(total)
	}

	metrics := ModelMetrics{
		VocabularySize: len(vz.Vocabulary),
		MatrixRows:     len(vectors),
		MatrixCols:     len(vz.Vocabulary),
		Sparsity:       sparsity,
		TrainingMillis: time.Since(start).Milliseconds(),
	}

	fm := &fittedModel{
		Version:    ModelVersion,
		RunID:      uuid.NewString(),
		Vectorizer: vz,
		Vectors:    vectors,
		Corpus:     corpus,
		Metadata:   metadata,
		DataHash:   currentHash,
		TrainedAt:  time.Now().UTC(),
		Metrics:    metrics,
	}
	t.model.install(fm)

	if err := t.store.Save(artifactFromFitted(fm)); err != nil && t.logger != nil {
		// Persistence is best effort; the in-memory model stays usable.
		t.logger.Warn("model artifact save failed", zap.Error(err))
	}

	if t.logger != nil {
		t.logger.Info("model training completed",
			zap.String("run_id", fm.RunID),
			zap.Int("corpus_size", len(corpus)),
			zap.Int("vocabulary_size", metrics.VocabularySize),
			zap.Float64("sparsity", metrics.Sparsity),
			zap.Int64("millis", metrics.TrainingMillis),
		)
	}
	return metrics, nil
}

// RetrainIfStale retrains when the model is not ready or the corpus hash
// drifted from the one recorded at training time.
func (t *Trainer) RetrainIfStale(ctx context.Context, postings []posting.Posting) (bool, error) {
	fm := t.model.snapshot()
	if t.model.Ready() && fm != nil && fm.DataHash == DataHash(postings) {
		return false, nil
	}
	_, err := t.Train(ctx, postings, true)
	if err != nil {
		return false, err
	}
	return true, nil
}

// LoadPersisted installs the artifact from disk if one exists and its
// version tag matches. Absence is not an error.
func (t *Trainer) LoadPersisted() (bool, error) {
	a, err := t.store.Load()
	if err != nil {
		return false, err
	}
	if a == nil {
		return false, nil
	}

	t.model.install(&fittedModel{
		Version:    a.Version,
		RunID:      a.RunID,
		Vectorizer: a.Vectorizer,
		Vectors:    a.Vectors,
		Corpus:     a.Corpus,
		Metadata:   a.Metadata,
		DataHash:   a.DataHash,
		TrainedAt:  a.TrainedAt,
		Metrics:    a.Metrics,
	})
	if t.logger != nil {
		t.logger.Info("model artifact loaded",
			zap.String("version", a.Version),
			zap.Int("corpus_size", len(a.Corpus)),
			zap.Time("trained_at", a.TrainedAt),
		)
	}
	return true, nil
}

func artifactFromFitted(fm *fittedModel) *ModelArtifact {
	return &ModelArtifact{
		Version:    fm.Version,
		RunID:      fm.RunID,
		Vectorizer: fm.Vectorizer,
		Vectors:    fm.Vectors,
		Corpus:     fm.Corpus,
		Metadata:   fm.Metadata,
		DataHash:   fm.DataHash,
		TrainedAt:  fm.TrainedAt,
		Metrics:    fm.Metrics,
	}
}

// ModelStatus is the operator-facing view of the model lifecycle.
type ModelStatus struct {
	Ready               bool         `json:"ready"`
	Version             string       `json:"version"`
	RunID               string       `json:"run_id,omitempty"`
	TrainingSize        int          `json:"training_size"`
	DataHash            string       `json:"data_hash,omitempty"`
	TrainedAt           *time.Time   `json:"trained_at,omitempty"`
	Metrics             ModelMetrics `json:"metrics"`
	SimilarityCacheSize int          `json:"similarity_cache_size"`
	ArtifactExists      bool         `json:"artifact_exists"`
}

func (t *Trainer) Status() ModelStatus {
	st := ModelStatus{
		Ready:               t.model.Ready(),
		Version:             ModelVersion,
		SimilarityCacheSize: t.model.SimilarityCacheSize(),
		ArtifactExists:      t.store.Exists(),
	}
	if fm := t.model.snapshot(); fm != nil {
		st.RunID = fm.RunID
		st.TrainingSize = len(fm.Corpus)
		st.DataHash = fm.DataHash
		st.Metrics = fm.Metrics
		if !fm.TrainedAt.IsZero() {
			trained := fm.TrainedAt
			st.TrainedAt = &trained
		}
	}
	return st
}
