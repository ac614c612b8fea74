package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"internmatch/internal/domain/posting"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoRecommendations signals an empty candidate pool after filtering.
var ErrNoRecommendations = errors.New("no matching postings found")

// PostingSource is the data-source collaborator contract: postings
// filterable by sector/location substring, returned in stable ascending
// id order, capped at limit.
type PostingSource interface {
	ListPostings(ctx context.Context, sectorFilter, locationFilter string, limit int) ([]posting.Posting, error)
}

const notSpecified = "Not specified"

// Recommendation is one entry of the final ordered shortlist.
type Recommendation struct {
	PostingID      int64          `json:"id"`
	Title          string         `json:"title"`
	CompanyName    string         `json:"company_name"`
	Sector         string         `json:"sector"`
	Location       string         `json:"location"`
	Skills         string         `json:"skills"`
	Duration       string         `json:"duration"`
	Description    string         `json:"description"`
	MatchScore     float64        `json:"match_score"`
	ScoringDetails ScoringDetails `json:"scoring_details"`
}

// ScoringDetails surfaces how the score was produced.
type ScoringDetails struct {
	MLUsed     bool    `json:"ml_used"`
	Method     string  `json:"method"`
	RuleScore  float64 `json:"rule_score"`
	MLScore    float64 `json:"ml_score"`
	ModelReady bool    `json:"model_ready"`
}

// EngineConfig tunes the scoring pipeline.
type EngineConfig struct {
	Workers int
}

// Engine runs the full recommendation computation: bounded candidate
// search, hybrid scoring, diversity-aware selection and memoization.
type Engine struct {
	source  PostingSource
	skills  posting.SkillLookup
	filter  *CandidateFilter
	scorer  *HybridScorer
	model   *TextModel
	cache   *ResultCache
	workers int
	logger  *zap.Logger
}

func NewEngine(
	source PostingSource,
	skills posting.SkillLookup,
	filter *CandidateFilter,
	scorer *HybridScorer,
	model *TextModel,
	cache *ResultCache,
	cfg EngineConfig,
	logger *zap.Logger,
) *Engine {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	return &Engine{
		source:  source,
		skills:  skills,
		filter:  filter,
		scorer:  scorer,
		model:   model,
		cache:   cache,
		workers: workers,
		logger:  logger,
	}
}

// Recommend returns the top shortlist for the profile, serving identical
// requests from the result cache within its TTL.
func (e *Engine) Recommend(ctx context.Context, p Profile) ([]Recommendation, error) {
	fingerprint := Fingerprint(p)
	if cached, ok := e.cache.Get(fingerprint); ok {
		if e.logger != nil {
			e.logger.Debug("result cache hit", zap.String("fingerprint", fingerprint[:12]))
		}
		return cached, nil
	}

	sectorFilter := ""
	if !p.SectorWildcard() {
		sectorFilter = strings.TrimSpace(p.Sector)
	}
	locationFilter := ""
	if !p.LocationWildcard() {
		locationFilter = strings.TrimSpace(p.Location)
	}

	pool, err := e.source.ListPostings(ctx, sectorFilter, locationFilter, e.filter.Config().PoolCap)
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}

	pool = e.filter.Narrow(pool, p)
	if len(pool) == 0 {
		return nil, ErrNoRecommendations
	}

	candidates := e.buildCandidates(pool, p)
	if len(candidates) == 0 {
		return nil, ErrNoRecommendations
	}

	scored := e.scoreCandidates(ctx, candidates, p)
	if len(scored) == 0 {
		return nil, ErrNoRecommendations
	}

	top := SelectDiverse(scored)

	modelReady := e.model.Ready()
	out := make([]Recommendation, 0, len(top))
	for _, sc := range top {
		out = append(out, buildRecommendation(sc, modelReady))
	}

	e.cache.Put(fingerprint, out)
	return out, nil
}

// buildCandidates resolves skills, applies the cheap pre-filter and
// attaches the stable corpus index used by the text model.
func (e *Engine) buildCandidates(pool []posting.Posting, p Profile) []Candidate {
	out := make([]Candidate, 0, len(pool))
	for i, post := range pool {
		skillsText, err := posting.ResolveSkills(post, e.skills)
		if err != nil && e.logger != nil {
			e.logger.Debug("auxiliary skill parse failed, using primary skill",
				zap.Int64("posting_id", post.ID),
				zap.Error(err),
			)
		}

		idx, ok := e.model.CorpusIndex(post.ID)
		if !ok {
			idx = i
		}

		c := Candidate{Posting: post, SkillsText: skillsText, Index: idx}
		if !e.filter.Admit(c, p) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// scoreCandidates scores candidates in deterministic chunks, fanning
// each chunk across workers, and stops at a chunk boundary once enough
// qualifying candidates have accumulated. A scoring panic or failure on
// one candidate skips that candidate only.
func (e *Engine) scoreCandidates(ctx context.Context, candidates []Candidate, p Profile) []ScoredCandidate {
	cfg := e.filter.Config()

	results := make([]ScoredCandidate, len(candidates))
	ok := make([]bool, len(candidates))

	chunk := e.workers * 16
	if chunk < 64 {
		chunk = 64
	}

	qualifying := 0
	scoredThrough := 0

	for start := 0; start < len(candidates); start += chunk {
		end := start + chunk
		if end > len(candidates) {
			end = len(candidates)
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.workers)
		for i := start; i < end; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				total, breakdown, err := e.scoreOne(candidates[i], p)
				if err != nil {
					if e.logger != nil {
						e.logger.Warn("candidate scoring failed, skipping",
							zap.Int64("posting_id", candidates[i].Posting.ID),
							zap.Error(err),
						)
					}
					return nil
				}
				results[i] = ScoredCandidate{Candidate: candidates[i], Total: total, Breakdown: breakdown}
				ok[i] = true
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			break
		}

		scoredThrough = end
		for i := start; i < end; i++ {
			if ok[i] && results[i].Total > cfg.EarlyStopMinScore {
				qualifying++
			}
		}
		if qualifying >= cfg.EarlyStopCount {
			break
		}
	}

	out := make([]ScoredCandidate, 0, scoredThrough)
	for i := 0; i < scoredThrough; i++ {
		if ok[i] {
			out = append(out, results[i])
		}
	}
	return out
}

func (e *Engine) scoreOne(c Candidate, p Profile) (total float64, breakdown Breakdown, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scoring panic: %v", r)
		}
	}()
	total, breakdown = e.scorer.Score(c, p)
	return total, breakdown, nil
}

func buildRecommendation(sc ScoredCandidate, modelReady bool) Recommendation {
	post := sc.Candidate.Posting
	return Recommendation{
		PostingID:      post.ID,
		Title:          post.Title,
		CompanyName:    post.CompanyName,
		Sector:         orNotSpecified(post.Sector),
		Location:       orNotSpecified(post.Location),
		Skills:         orNotSpecified(sc.Candidate.SkillsText),
		Duration:       orNotSpecified(post.Duration),
		Description:    post.Description,
		MatchScore:     math.Round(sc.Total*100) / 100,
		ScoringDetails: ScoringDetails{
			MLUsed:     sc.Breakdown.MLUsed(),
			Method:     string(sc.Breakdown.Path),
			RuleScore:  math.Round(sc.Breakdown.RuleScore*100) / 100,
			MLScore:    math.Round(sc.Breakdown.MLScore*100) / 100,
			ModelReady: modelReady,
		},
	}
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}
