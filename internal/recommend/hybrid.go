package recommend

import (
	"strings"

	"go.uber.org/zap"
)

// ScorePath tags which strategy produced the ML-side contribution.
type ScorePath string

const (
	PathMLCalculated  ScorePath = "ml_calculated"
	PathEmptyProfile  ScorePath = "ml_empty_profile"
	PathModelNotReady ScorePath = "model_not_ready"
	PathRuleOnly      ScorePath = "rule_only"
)

// Breakdown reports the two raw component scores and the path taken.
// The weights are nominal (60/40 split) and only carried for
// observability.
type Breakdown struct {
	Path       ScorePath `json:"path"`
	RuleScore  float64   `json:"rule_score"`
	MLScore    float64   `json:"ml_score"`
	RuleWeight float64   `json:"rule_weight"`
	MLWeight   float64   `json:"ml_weight"`
}

// MLUsed reports whether the semantic model contributed to the score.
func (b Breakdown) MLUsed() bool {
	return b.Path == PathMLCalculated || b.Path == PathEmptyProfile
}

// mlStrategy produces the ML-side contribution of the hybrid score.
type mlStrategy interface {
	MLScore(c Candidate, p Profile) (float64, ScorePath)
}

// modelStrategy scores through the fitted text model.
type modelStrategy struct {
	model *TextModel
}

func (s modelStrategy) MLScore(c Candidate, p Profile) (float64, ScorePath) {
	profileText := p.CombinedText()
	if strings.TrimSpace(profileText) == "" {
		return NeutralMLScore, PathEmptyProfile
	}
	score := s.model.Similarity(profileText, c.Index)
	if score < mlContributionFloor {
		score = mlContributionFloor
	}
	return score, PathMLCalculated
}

// overlapStrategy is the degraded path: a keyword heuristic over the two
// description texts, used when the model is unavailable or the caller
// opted out of ML scoring.
type overlapStrategy struct {
	path ScorePath
}

func (s overlapStrategy) MLScore(c Candidate, p Profile) (float64, ScorePath) {
	return descriptionOverlapScore(c.Posting.Description, p.Description), s.path
}

// On the model path the ML contribution never drops below this floor,
// so a strong rule match is not dragged down by a weak text signal. The
// overlap heuristic keeps its own 15 minimum instead.
const mlContributionFloor = 20.0

// HybridScorer combines the rule score with a text-similarity score.
type HybridScorer struct {
	rules  *RuleScorer
	model  *TextModel
	logger *zap.Logger
}

func NewHybridScorer(rules *RuleScorer, model *TextModel, logger *zap.Logger) *HybridScorer {
	return &HybridScorer{rules: rules, model: model, logger: logger}
}

func (h *HybridScorer) strategyFor(p Profile) mlStrategy {
	if !p.UseML {
		return overlapStrategy{path: PathRuleOnly}
	}
	if !h.model.Ready() {
		return overlapStrategy{path: PathModelNotReady}
	}
	return modelStrategy{model: h.model}
}

// Score returns the combined total in [0,100] and its breakdown.
func (h *HybridScorer) Score(c Candidate, p Profile) (float64, Breakdown) {
	ruleScore := h.rules.Score(c, p)

	mlScore, path := h.strategyFor(p).MLScore(c, p)

	total := ruleScore + mlScore
	if total > 100 {
		total = 100
	}

	return total, Breakdown{
		Path:       path,
		RuleScore:  ruleScore,
		MLScore:    mlScore,
		RuleWeight: 0.6,
		MLWeight:   0.4,
	}
}

var overlapStopwords = map[string]bool{
	"the": true, "is": true, "at": true, "which": true, "on": true,
	"and": true, "a": true, "an": true, "as": true, "are": true,
	"was": true, "were": true, "to": true, "in": true, "for": true,
	"of": true, "with": true, "by": true, "this": true, "that": true,
	"these": true, "those": true, "will": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true, "can": true,
	"could": true, "would": true, "should": true, "you": true,
	"your": true, "we": true, "our": true, "they": true, "their": true,
	"it": true, "its": true, "be": true, "been": true, "being": true,
}

var technicalKeywords = map[string]bool{
	"python": true, "java": true, "javascript": true, "react": true,
	"nodejs": true, "sql": true, "database": true, "api": true,
	"web": true, "development": true, "programming": true,
	"software": true, "coding": true, "algorithm": true,
}

var dataKeywords = map[string]bool{
	"data": true, "analysis": true, "machine": true, "learning": true,
	"statistics": true, "analytics": true, "visualization": true,
	"modeling": true, "research": true, "insights": true,
}

var businessKeywords = map[string]bool{
	"business": true, "management": true, "strategy": true,
	"finance": true, "marketing": true, "sales": true,
	"consulting": true, "operations": true,
}

// descriptionOverlapScore approximates semantic similarity without a
// model: stopword-filtered Jaccard similarity scaled to 20, a domain
// keyword bonus up to 15, and a long-word partial-match bonus up to 10,
// floored at 15 and capped at 40.
func descriptionOverlapScore(postingDesc, profileDesc string) float64 {
	if strings.TrimSpace(postingDesc) == "" || strings.TrimSpace(profileDesc) == "" {
		return mlScoreMin
	}

	postingWords := overlapWordSet(postingDesc)
	profileWords := overlapWordSet(profileDesc)
	if len(postingWords) == 0 || len(profileWords) == 0 {
		return mlScoreMin
	}

	shared := make(map[string]bool)
	for w := range profileWords {
		if postingWords[w] {
			shared[w] = true
		}
	}
	union := len(postingWords) + len(profileWords) - len(shared)

	score := 0.0
	if union > 0 {
		score += float64(len(shared)) / float64(union) * 20
	}

	domainMatches := 0
	for w := range shared {
		if technicalKeywords[w] || dataKeywords[w] || businessKeywords[w] {
			domainMatches++
		}
	}
	domainBonus := float64(domainMatches) * 5
	if domainBonus > 15 {
		domainBonus = 15
	}
	score += domainBonus

	partial := 0
	for pw := range profileWords {
		if len(pw) <= 4 {
			continue
		}
		for iw := range postingWords {
			if len(iw) <= 4 {
				continue
			}
			if strings.Contains(iw, pw) || strings.Contains(pw, iw) {
				partial++
			}
		}
	}
	partialBonus := float64(partial) * 2
	if partialBonus > 10 {
		partialBonus = 10
	}
	score += partialBonus

	if score < mlScoreMin {
		return mlScoreMin
	}
	if score > mlScoreMax {
		return mlScoreMax
	}
	return score
}

func overlapWordSet(text string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if len(w) <= 2 || overlapStopwords[w] {
			continue
		}
		out[w] = true
	}
	return out
}
