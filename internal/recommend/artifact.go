package recommend

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

// ModelVersion tags persisted artifacts. Artifacts carrying any other
// tag load as "no usable model".
const ModelVersion = "2.0"

// ModelArtifact is the on-disk form of one fitted model. It is written
// wholesale on every successful training run.
type ModelArtifact struct {
	Version    string         `json:"version"`
	RunID      string         `json:"run_id"`
	Vectorizer *Vectorizer    `json:"vectorizer"`
	Vectors    []SparseVec    `json:"vectors"`
	Corpus     []string       `json:"corpus"`
	Metadata   []DocumentMeta `json:"metadata"`
	DataHash   string         `json:"data_hash"`
	TrainedAt  time.Time      `json:"trained_at"`
	Metrics    ModelMetrics   `json:"metrics"`
}

// ArtifactStore persists model artifacts as JSON. Writes go through a
// temp file and rename under a file lock, so a crashed trainer never
// leaves a half-written artifact behind.
type ArtifactStore struct {
	path   string
	logger *zap.Logger
}

func NewArtifactStore(path string, logger *zap.Logger) *ArtifactStore {
	return &ArtifactStore{path: path, logger: logger}
}

func (s *ArtifactStore) Save(a *ModelArtifact) error {
	if s == nil || s.path == "" {
		return nil
	}
	if a == nil {
		return errors.New("nil artifact")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock artifact: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	b, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("install artifact: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("model artifact saved",
			zap.String("path", s.path),
			zap.String("version", a.Version),
			zap.Int("corpus_size", len(a.Corpus)),
		)
	}
	return nil
}

// Load reads the persisted artifact. A missing file or a version-tag
// mismatch yields (nil, nil): no usable model, not an error.
func (s *ArtifactStore) Load() (*ModelArtifact, error) {
	if s == nil || s.path == "" {
		return nil, nil
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.RLock(); err != nil {
		return nil, fmt.Errorf("lock artifact: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	var a ModelArtifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if a.Version != ModelVersion {
		if s.logger != nil {
			s.logger.Warn("model artifact version mismatch, ignoring",
				zap.String("expected", ModelVersion),
				zap.String("got", a.Version),
			)
		}
		return nil, nil
	}
	return &a, nil
}

// Exists reports whether an artifact file is present on disk.
func (s *ArtifactStore) Exists() bool {
	if s == nil || s.path == "" {
		return false
	}
	_, err := os.Stat(s.path)
	return err == nil
}
