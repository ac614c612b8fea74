package recommend

import (
	"testing"

	"internmatch/internal/domain/posting"

	"go.uber.org/zap"
)

func newHybrid(model *TextModel) *HybridScorer {
	return NewHybridScorer(NewRuleScorer(DefaultRuleConfig()), model, zap.NewNop())
}

func TestHybridScore_MLPathWhenModelReady(t *testing.T) {
	model, _ := trainedModel(t)
	h := newHybrid(model)

	p := Profile{
		Education:   "Bachelor's",
		Skills:      []string{"Python Programming"},
		Sector:      "Technology",
		Location:    "Delhi",
		Description: "Backend development with Python",
		UseML:       true,
	}
	c := Candidate{Posting: trainingPostings()[0], SkillsText: trainingPostings()[0].SkillText, Index: 0}

	total, breakdown := h.Score(c, p)
	if breakdown.Path != PathMLCalculated {
		t.Fatalf("expected ml path, got %s", breakdown.Path)
	}
	if !breakdown.MLUsed() {
		t.Fatalf("expected MLUsed for ml path")
	}
	if total < 0 || total > 100 {
		t.Fatalf("total out of range: %.2f", total)
	}
	if total != breakdown.RuleScore+breakdown.MLScore && total != 100 {
		t.Fatalf("total %.2f does not add up from %.2f + %.2f",
			total, breakdown.RuleScore, breakdown.MLScore)
	}
}

func TestHybridScore_EmptyProfileTextGetsNeutral(t *testing.T) {
	model, _ := trainedModel(t)
	h := newHybrid(model)

	p := Profile{UseML: true}
	c := Candidate{Posting: trainingPostings()[0], SkillsText: "Python"}

	_, breakdown := h.Score(c, p)
	if breakdown.Path != PathEmptyProfile {
		t.Fatalf("expected empty-profile path, got %s", breakdown.Path)
	}
	if breakdown.MLScore != NeutralMLScore {
		t.Fatalf("expected neutral ml score, got %.2f", breakdown.MLScore)
	}
}

func TestHybridScore_ModelNotReadyFallsBackToOverlap(t *testing.T) {
	h := newHybrid(NewTextModel(zap.NewNop()))

	p := Profile{Description: "python web development internship", UseML: true}
	c := Candidate{Posting: posting.Posting{
		ID:          1,
		Description: "python web development and api programming",
	}}

	_, breakdown := h.Score(c, p)
	if breakdown.Path != PathModelNotReady {
		t.Fatalf("expected model-not-ready path, got %s", breakdown.Path)
	}
	if breakdown.MLUsed() {
		t.Fatalf("fallback path must not report ml as used")
	}
}

func TestHybridScore_RuleOnlyModeIgnoresModel(t *testing.T) {
	model, _ := trainedModel(t)
	h := newHybrid(model)

	p := Profile{Description: "python development", UseML: false}
	c := Candidate{Posting: trainingPostings()[0]}

	_, breakdown := h.Score(c, p)
	if breakdown.Path != PathRuleOnly {
		t.Fatalf("expected rule-only path, got %s", breakdown.Path)
	}
}

func TestHybridScore_MLContributionFloor(t *testing.T) {
	model, _ := trainedModel(t)
	h := newHybrid(model)

	// A profile disjoint from the corpus clamps the model score to its
	// 15 minimum, which the model-path floor lifts to 20.
	p := Profile{Description: "organic farming crop rotation soil", UseML: true}
	c := Candidate{Posting: trainingPostings()[0], Index: 0}

	_, breakdown := h.Score(c, p)
	if breakdown.Path != PathMLCalculated {
		t.Fatalf("expected ml path, got %s", breakdown.Path)
	}
	if breakdown.MLScore != mlContributionFloor {
		t.Fatalf("expected ml floor %.1f, got %.2f", mlContributionFloor, breakdown.MLScore)
	}
}

func TestHybridScore_OverlapPathsKeepFifteenMinimum(t *testing.T) {
	p := Profile{UseML: true}
	c := Candidate{Posting: posting.Posting{ID: 1}}

	// Not-ready model: the overlap heuristic bottoms out at 15, not the
	// model-path floor of 20.
	h := newHybrid(NewTextModel(zap.NewNop()))
	_, breakdown := h.Score(c, p)
	if breakdown.Path != PathModelNotReady {
		t.Fatalf("expected model-not-ready path, got %s", breakdown.Path)
	}
	if breakdown.MLScore != mlScoreMin {
		t.Fatalf("expected overlap minimum %.1f, got %.2f", mlScoreMin, breakdown.MLScore)
	}

	// Rule-only mode with a ready model behaves the same.
	model, _ := trainedModel(t)
	h = newHybrid(model)
	_, breakdown = h.Score(c, Profile{UseML: false})
	if breakdown.Path != PathRuleOnly {
		t.Fatalf("expected rule-only path, got %s", breakdown.Path)
	}
	if breakdown.MLScore != mlScoreMin {
		t.Fatalf("expected overlap minimum %.1f, got %.2f", mlScoreMin, breakdown.MLScore)
	}
}

func TestHybridScore_CappedAtHundred(t *testing.T) {
	model, _ := trainedModel(t)
	h := newHybrid(model)

	post := trainingPostings()[0]
	p := Profile{
		Education:   "Bachelor's",
		Skills:      []string{"Python Programming", "Django", "Flask"},
		Sector:      "Technology",
		Location:    "Delhi",
		Description: post.Description,
		UseML:       true,
	}
	c := Candidate{Posting: post, SkillsText: post.SkillText, Index: 0}

	total, _ := h.Score(c, p)
	if total > 100 {
		t.Fatalf("total must be capped at 100, got %.2f", total)
	}
}

func TestDescriptionOverlap_Heuristic(t *testing.T) {
	strong := descriptionOverlapScore(
		"python programming and data analysis for business insights",
		"python programming data analysis insights",
	)
	weak := descriptionOverlapScore(
		"organic farming and crop rotation techniques",
		"python programming data analysis",
	)
	if strong <= weak {
		t.Fatalf("expected overlapping descriptions to outscore disjoint ones: %.2f vs %.2f",
			strong, weak)
	}
	for _, v := range []float64{strong, weak} {
		if v < mlScoreMin || v > mlScoreMax {
			t.Fatalf("overlap score out of range: %.2f", v)
		}
	}

	if got := descriptionOverlapScore("", "anything"); got != mlScoreMin {
		t.Fatalf("expected floor for empty posting description, got %.2f", got)
	}
}
