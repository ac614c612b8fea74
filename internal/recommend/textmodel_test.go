package recommend

import (
	"context"
	"strings"
	"testing"

	"internmatch/internal/domain/posting"

	"go.uber.org/zap"
)

func trainingPostings() []posting.Posting {
	return []posting.Posting{
		{
			ID:          1,
			Title:       "Python Developer Intern",
			Description: "Backend development with Python and FastAPI",
			SkillText:   "Python Programming, Django, Flask",
			Sector:      "Technology",
			Location:    "Delhi",
		},
		{
			ID:          2,
			Title:       "Data Analyst Intern",
			Description: "Analyze data and build insights with SQL and Python",
			SkillText:   "Data Analysis, SQL",
			Sector:      "Analytics",
			Location:    "Bangalore",
		},
		{
			ID:          3,
			Title:       "Digital Marketing Intern",
			Description: "Social media campaigns and content strategy",
			SkillText:   "Digital Marketing, Content Writing",
			Sector:      "Marketing",
			Location:    "Mumbai",
		},
	}
}

func trainedModel(t *testing.T) (*TextModel, *Trainer) {
	t.Helper()
	model := NewTextModel(zap.NewNop())
	store := NewArtifactStore(t.TempDir()+"/model.json", zap.NewNop())
	trainer := NewTrainer(model, store, zap.NewNop())
	if _, err := trainer.Train(context.Background(), trainingPostings(), true); err != nil {
		t.Fatalf("train: %v", err)
	}
	return model, trainer
}

func TestPreprocessText_NormalizesAndReplaces(t *testing.T) {
	got := PreprocessText("Machine Learning, JavaScript & User Interface!!")
	if strings.Contains(got, "machine learning") || !strings.Contains(got, "ml") {
		t.Fatalf("expected machine learning collapsed to ml: %q", got)
	}
	if strings.Contains(got, "javascript") || !strings.Contains(got, "js") {
		t.Fatalf("expected javascript collapsed to js: %q", got)
	}
	if strings.ContainsAny(got, "&!,") {
		t.Fatalf("expected punctuation stripped: %q", got)
	}
}

func TestCombinedPostingText_WeightsAndPlaceholder(t *testing.T) {
	text := CombinedPostingText(trainingPostings()[0])
	if strings.Count(text, "python developer intern") != 3 {
		t.Fatalf("expected title repeated 3x: %q", text)
	}

	if got := CombinedPostingText(posting.Posting{}); got != "internship opportunity" {
		t.Fatalf("expected placeholder for empty posting, got %q", got)
	}
}

func TestSimilarity_NeutralWhenNotReady(t *testing.T) {
	model := NewTextModel(zap.NewNop())
	if model.Ready() {
		t.Fatalf("fresh model must not be ready")
	}
	if got := model.Similarity("python backend", 0); got != NeutralMLScore {
		t.Fatalf("expected neutral %.1f, got %.2f", NeutralMLScore, got)
	}
}

func TestSimilarity_RangeAndRelevanceOrdering(t *testing.T) {
	model, _ := trainedModel(t)

	// A profile matching posting 0's own combined text is as close to the
	// document as a query can get.
	profile := CombinedPostingText(trainingPostings()[0])
	relevant := model.Similarity(profile, 0)
	irrelevant := model.Similarity(profile, 2)

	for _, v := range []float64{relevant, irrelevant} {
		if v < 15 || v > 40 {
			t.Fatalf("similarity score out of range: %.2f", v)
		}
	}
	if relevant <= irrelevant {
		t.Fatalf("expected python profile to score higher on python posting: %.2f vs %.2f",
			relevant, irrelevant)
	}
	if relevant < 30 {
		t.Fatalf("expected near-identical text to score high, got %.2f", relevant)
	}
}

func TestSimilarity_IndexWrapsModuloCorpus(t *testing.T) {
	model, _ := trainedModel(t)

	direct := model.Similarity("data analysis sql", 1)
	wrapped := model.Similarity("data analysis sql", 1+len(trainingPostings()))
	if direct != wrapped {
		t.Fatalf("expected wrapped index to reuse corpus entry: %.2f vs %.2f", direct, wrapped)
	}
}

func TestSimilarity_ResultsAreCached(t *testing.T) {
	model, _ := trainedModel(t)

	before := model.SimilarityCacheSize()
	_ = model.Similarity("python backend", 0)
	_ = model.Similarity("python backend", 0)
	if got := model.SimilarityCacheSize(); got != before+1 {
		t.Fatalf("expected exactly one new cache entry, got %d -> %d", before, got)
	}
}

func TestCorpusIndex_MapsPostingIDs(t *testing.T) {
	model, _ := trainedModel(t)

	idx, ok := model.CorpusIndex(2)
	if !ok || idx != 1 {
		t.Fatalf("expected posting 2 at corpus index 1, got %d ok=%v", idx, ok)
	}
	if _, ok := model.CorpusIndex(99); ok {
		t.Fatalf("unexpected corpus index for unknown posting")
	}
}
