package recommend

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"internmatch/internal/domain/posting"

	"go.uber.org/zap"
)

const (
	// NeutralMLScore is returned for every similarity call while no
	// usable model is installed.
	NeutralMLScore = 25.0

	mlScoreMin = 15.0
	mlScoreMax = 40.0

	emptyDocPlaceholder = "internship opportunity"
)

var nonWordPattern = regexp.MustCompile(`[^\w\s,]`)
var multiSpacePattern = regexp.MustCompile(`\s+`)

// Multi-word and long-form terms collapsed to short forms before
// vectorization, so "machine learning" and "ml" land on the same feature.
// Order matters: longer phrases first.
var termReplacements = []struct{ from, to string }{
	{"application programming interface", "api"},
	{"natural language processing", "nlp"},
	{"machine learning", "ml"},
	{"artificial intelligence", "ai"},
	{"user interface", "ui"},
	{"user experience", "ux"},
	{"computer vision", "computervision"},
	{"business intelligence", "bi"},
	{"quality assurance", "qa"},
	{"penetration testing", "pentest"},
	{"react native", "reactnative"},
	{"node js", "nodejs"},
	{"spring boot", "springboot"},
	{"after effects", "aftereffects"},
	{"premiere pro", "premierepro"},
	{"adobe xd", "adobexd"},
	{"big data", "bigdata"},
	{"full stack", "fullstack"},
	{"javascript", "js"},
	{"typescript", "ts"},
	{"database", "db"},
}

// PreprocessText normalizes free text for the vector space: lowercase,
// strip everything but word characters, whitespace and commas, commas to
// spaces, collapsed whitespace, then the domain replacement table.
func PreprocessText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = nonWordPattern.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, ",", " ")
	text = strings.TrimSpace(multiSpacePattern.ReplaceAllString(text, " "))
	for _, r := range termReplacements {
		text = strings.ReplaceAll(text, r.from, r.to)
	}
	return text
}

// CombinedPostingText builds the one training document for a posting,
// repeating high-signal fields to weight them: title x3, skills x2,
// sector x2, description x1, location x1.
func CombinedPostingText(p posting.Posting) string {
	parts := make([]string, 0, 9)
	appendN := func(text string, n int) {
		t := PreprocessText(text)
		if t == "" {
			return
		}
		for i := 0; i < n; i++ {
			parts = append(parts, t)
		}
	}

	appendN(p.Title, 3)
	appendN(p.SkillText, 2)
	appendN(p.Sector, 2)
	appendN(p.Description, 1)
	appendN(p.Location, 1)

	combined := strings.Join(parts, " ")
	if strings.TrimSpace(combined) == "" {
		return emptyDocPlaceholder
	}
	return combined
}

// DocumentMeta is the per-document metadata stored with the artifact.
type DocumentMeta struct {
	PostingID  int64  `json:"posting_id"`
	Title      string `json:"title"`
	Sector     string `json:"sector"`
	TextLength int    `json:"text_length"`
}

// ModelMetrics summarizes a fitted vector space.
type ModelMetrics struct {
	VocabularySize int     `json:"vocabulary_size"`
	MatrixRows     int     `json:"matrix_rows"`
	MatrixCols     int     `json:"matrix_cols"`
	Sparsity       float64 `json:"sparsity"`
	TrainingMillis int64   `json:"training_millis"`
}

// fittedModel is the immutable product of one training run. It is only
// ever replaced wholesale so concurrent scorers see a consistent state.
type fittedModel struct {
	Version    string
	RunID      string
	Vectorizer *Vectorizer
	Vectors    []SparseVec
	Corpus     []string
	Metadata   []DocumentMeta
	DataHash   string
	TrainedAt  time.Time
	Metrics    ModelMetrics

	indexByPosting map[int64]int
}

// TextModel scores semantic similarity between a profile's text and a
// posting's combined text. It is safe for concurrent use: the fitted
// state swaps atomically and the similarity cache is mutex-guarded.
type TextModel struct {
	current atomic.Pointer[fittedModel]

	simMu    sync.Mutex
	simCache map[string]float64

	logger *zap.Logger
}

func NewTextModel(logger *zap.Logger) *TextModel {
	return &TextModel{
		simCache: make(map[string]float64),
		logger:   logger,
	}
}

// Ready reports whether a usable fitted state is installed.
func (m *TextModel) Ready() bool {
	fm := m.current.Load()
	return fm != nil && fm.Vectorizer != nil && len(fm.Corpus) > 0 && len(fm.Vectorizer.Vocabulary) > 0
}

func (m *TextModel) snapshot() *fittedModel {
	return m.current.Load()
}

func (m *TextModel) install(fm *fittedModel) {
	if fm != nil && fm.indexByPosting == nil {
		fm.indexByPosting = make(map[int64]int, len(fm.Metadata))
		for i, meta := range fm.Metadata {
			fm.indexByPosting[meta.PostingID] = i
		}
	}
	m.current.Store(fm)
	m.simMu.Lock()
	m.simCache = make(map[string]float64)
	m.simMu.Unlock()
}

func (m *TextModel) reset() {
	m.current.Store(nil)
	m.simMu.Lock()
	m.simCache = make(map[string]float64)
	m.simMu.Unlock()
}

// CorpusIndex returns the trained corpus index for a posting id.
func (m *TextModel) CorpusIndex(postingID int64) (int, bool) {
	fm := m.snapshot()
	if fm == nil {
		return 0, false
	}
	idx, ok := fm.indexByPosting[postingID]
	return idx, ok
}

// Similarity maps the cosine similarity between the profile text and the
// indexed posting document onto [15,40]. Out-of-range indexes wrap
// modulo the corpus size; an unready model yields the neutral score.
func (m *TextModel) Similarity(profileText string, postingIdx int) float64 {
	fm := m.snapshot()
	if fm == nil || fm.Vectorizer == nil || len(fm.Corpus) == 0 {
		return NeutralMLScore
	}

	key := similarityCacheKey(profileText, postingIdx)
	m.simMu.Lock()
	if v, ok := m.simCache[key]; ok {
		m.simMu.Unlock()
		return v
	}
	m.simMu.Unlock()

	if postingIdx < 0 {
		postingIdx = -postingIdx
	}
	if postingIdx >= len(fm.Vectors) {
		postingIdx = postingIdx % len(fm.Vectors)
	}

	queryVec := fm.Vectorizer.Transform(PreprocessText(profileText))
	similarity := queryVec.Dot(fm.Vectors[postingIdx])

	score := similarity * mlScoreMax
	switch {
	case similarity > 0.7:
		score *= 1.1
	case similarity > 0.5:
		score *= 1.05
	}
	if score > mlScoreMax {
		score = mlScoreMax
	}
	if score < mlScoreMin {
		score = mlScoreMin
	}

	m.simMu.Lock()
	m.simCache[key] = score
	m.simMu.Unlock()

	return score
}

// SimilarityCacheSize reports the number of memoized similarity results.
func (m *TextModel) SimilarityCacheSize() int {
	m.simMu.Lock()
	defer m.simMu.Unlock()
	return len(m.simCache)
}

// ClearSimilarityCache drops memoized similarity results.
func (m *TextModel) ClearSimilarityCache() {
	m.simMu.Lock()
	m.simCache = make(map[string]float64)
	m.simMu.Unlock()
	if m.logger != nil {
		m.logger.Info("similarity cache cleared")
	}
}

func similarityCacheKey(profileText string, postingIdx int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s_%d", profileText, postingIdx)))
	return hex.EncodeToString(sum[:])
}
