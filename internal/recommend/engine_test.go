package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"internmatch/internal/domain/posting"

	"go.uber.org/zap"
)

type stubSource struct {
	postings []posting.Posting
	err      error
	calls    int
}

func (s *stubSource) ListPostings(ctx context.Context, sectorFilter, locationFilter string, limit int) ([]posting.Posting, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.postings, nil
}

type stubSkillLookup map[int64]string

func (s stubSkillLookup) SkillDescription(id int64) (string, bool) {
	v, ok := s[id]
	return v, ok
}

func newTestEngine(t *testing.T, source *stubSource) (*Engine, *ResultCache) {
	t.Helper()
	model, _ := trainedModel(t)
	filter := NewCandidateFilter(DefaultFilterConfig())
	scorer := NewHybridScorer(NewRuleScorer(DefaultRuleConfig()), model, zap.NewNop())
	cache := NewResultCache(10*time.Minute, 32, nil)
	eng := NewEngine(source, stubSkillLookup{}, filter, scorer, model, cache,
		EngineConfig{Workers: 2}, zap.NewNop())
	return eng, cache
}

func pythonProfile() Profile {
	return Profile{
		Education:   "Bachelor's",
		Skills:      []string{"Python Programming"},
		Sector:      "Any",
		Location:    "Any",
		Description: "Backend development with Python",
		UseML:       true,
	}
}

func TestRecommend_RanksRelevantPostingFirst(t *testing.T) {
	source := &stubSource{postings: trainingPostings()}
	eng, _ := newTestEngine(t, source)

	out, err := eng.Recommend(context.Background(), pythonProfile())
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("expected recommendations")
	}
	if out[0].PostingID != 1 {
		t.Fatalf("expected the python posting first, got %d", out[0].PostingID)
	}
	for i := 1; i < len(out); i++ {
		if out[i].MatchScore > out[i-1].MatchScore {
			t.Fatalf("results not in descending score order at %d", i)
		}
	}
	if !out[0].ScoringDetails.ModelReady {
		t.Fatalf("expected model_ready in scoring details")
	}
}

func TestRecommend_ServesIdenticalRequestFromCache(t *testing.T) {
	source := &stubSource{postings: trainingPostings()}
	eng, cache := newTestEngine(t, source)

	first, err := eng.Recommend(context.Background(), pythonProfile())
	if err != nil {
		t.Fatalf("first recommend: %v", err)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected one cached payload, got %d", cache.Len())
	}

	second, err := eng.Recommend(context.Background(), pythonProfile())
	if err != nil {
		t.Fatalf("second recommend: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("expected the source untouched on cache hit, calls=%d", source.calls)
	}
	if len(first) != len(second) || first[0].PostingID != second[0].PostingID {
		t.Fatalf("cached payload diverged from the original")
	}
}

func TestRecommend_SkillOrderSharesCacheEntry(t *testing.T) {
	source := &stubSource{postings: trainingPostings()}
	eng, _ := newTestEngine(t, source)

	p1 := pythonProfile()
	p1.Skills = []string{"Python Programming", "Django"}
	p2 := pythonProfile()
	p2.Skills = []string{"django", "python programming"}

	if _, err := eng.Recommend(context.Background(), p1); err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if _, err := eng.Recommend(context.Background(), p2); err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if source.calls != 1 {
		t.Fatalf("reordered skills must hit the same cache entry, calls=%d", source.calls)
	}
}

func TestRecommend_EmptyPoolReturnsSentinel(t *testing.T) {
	source := &stubSource{}
	eng, _ := newTestEngine(t, source)

	_, err := eng.Recommend(context.Background(), pythonProfile())
	if !errors.Is(err, ErrNoRecommendations) {
		t.Fatalf("expected ErrNoRecommendations, got %v", err)
	}
}

func TestRecommend_SourceErrorPropagates(t *testing.T) {
	source := &stubSource{err: errors.New("connection refused")}
	eng, _ := newTestEngine(t, source)

	_, err := eng.Recommend(context.Background(), pythonProfile())
	if err == nil || errors.Is(err, ErrNoRecommendations) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestRecommend_FillsMissingFieldsWithNotSpecified(t *testing.T) {
	source := &stubSource{postings: []posting.Posting{
		{
			ID:          7,
			Title:       "Mystery Intern",
			Description: "python work",
			SkillText:   "Python Programming",
		},
	}}
	eng, _ := newTestEngine(t, source)

	out, err := eng.Recommend(context.Background(), pythonProfile())
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	rec := out[0]
	if rec.Sector != "Not specified" || rec.Location != "Not specified" || rec.Duration != "Not specified" {
		t.Fatalf("expected placeholders for missing fields, got %+v", rec)
	}
}

func TestRecommend_AtMostFiveResults(t *testing.T) {
	var pool []posting.Posting
	for i := int64(1); i <= 12; i++ {
		p := trainingPostings()[0]
		p.ID = i
		p.Title = p.Title + " " + string(rune('A'+i-1))
		pool = append(pool, p)
	}
	source := &stubSource{postings: pool}
	eng, _ := newTestEngine(t, source)

	out, err := eng.Recommend(context.Background(), pythonProfile())
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(out) > 5 {
		t.Fatalf("expected at most 5 recommendations, got %d", len(out))
	}
}

func TestRecommend_RuleOnlyModeNeverReportsML(t *testing.T) {
	source := &stubSource{postings: trainingPostings()}
	eng, _ := newTestEngine(t, source)

	p := pythonProfile()
	p.UseML = false
	out, err := eng.Recommend(context.Background(), p)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	for _, rec := range out {
		if rec.ScoringDetails.MLUsed {
			t.Fatalf("rule-only request must not report ml usage: %+v", rec.ScoringDetails)
		}
		if rec.ScoringDetails.Method != string(PathRuleOnly) {
			t.Fatalf("expected rule_only method, got %s", rec.ScoringDetails.Method)
		}
	}
}
