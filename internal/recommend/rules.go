package recommend

import (
	"strings"

	"internmatch/internal/domain/posting"
)

// Candidate pairs a posting with its resolved skills text and its stable
// index inside the trained corpus.
type Candidate struct {
	Posting    posting.Posting
	SkillsText string
	Index      int
}

// Education hierarchy shared by scoring and profile validation. Labels
// outside the map resolve to the Bachelor's ordinal on both sides.
var educationHierarchy = map[string]int{
	"10th pass":  0,
	"12th pass":  1,
	"diploma":    2,
	"bachelor's": 3,
	"master's":   4,
	"phd":        5,
}

const defaultEducationLevel = 3

func educationLevel(label string) int {
	if lvl, ok := educationHierarchy[strings.TrimSpace(strings.ToLower(label))]; ok {
		return lvl
	}
	return defaultEducationLevel
}

// RuleScorer produces the deterministic heuristic component of the hybrid
// score. Every weighted factor contributes to a running maximum so the
// final value can be rescaled onto [0,60] regardless of configuration.
type RuleScorer struct {
	cfg RuleConfig
}

func NewRuleScorer(cfg RuleConfig) *RuleScorer {
	return &RuleScorer{cfg: cfg.withDefaults()}
}

// Score returns the rule-based score in [0,60]. Missing data on either
// side zeroes the affected component instead of failing.
func (s *RuleScorer) Score(c Candidate, p Profile) float64 {
	w := s.cfg.Weights

	score := 0.0
	maxScore := 0.0

	postingSkills := splitSkillTerms(c.SkillsText)
	profileSkills := make(map[string]bool, len(p.Skills))
	for _, sk := range p.Skills {
		sk = strings.TrimSpace(strings.ToLower(sk))
		if sk != "" {
			profileSkills[sk] = true
		}
	}

	exactRatio, partialRatio := skillMatchRatios(postingSkills, profileSkills)
	if len(postingSkills) > 0 && len(profileSkills) > 0 {
		skillScore := exactRatio
		if partial := partialRatio * 0.7; partial > skillScore {
			skillScore = partial
		}
		score += skillScore * w.Skill
	}
	maxScore += w.Skill

	sectorExact := false
	postingSector := strings.TrimSpace(strings.ToLower(c.Posting.Sector))
	profileSector := strings.TrimSpace(strings.ToLower(p.Sector))
	if postingSector != "" && postingSector == profileSector {
		sectorExact = true
		score += w.Sector
	} else if postingSector != "" && profileSector != "" {
		if s.sectorsRelated(postingSector, profileSector) {
			score += w.Sector * 0.5
		}
	}
	maxScore += w.Sector

	locationExact := false
	postingLoc := strings.TrimSpace(strings.ToLower(c.Posting.Location))
	profileLoc := strings.TrimSpace(strings.ToLower(p.Location))
	if postingLoc != "" && postingLoc == profileLoc {
		locationExact = true
		score += w.Location
	} else if postingLoc == "remote" {
		score += w.Location * 0.8
	}
	maxScore += w.Location

	profileLevel := educationLevel(p.Education)
	requiredLevel := educationLevel(c.Posting.Education)
	switch {
	case profileLevel >= requiredLevel:
		score += w.Education
	case profileLevel >= requiredLevel-1:
		score += w.Education * 0.8
	default:
		score += w.Education * 0.3
	}
	maxScore += w.Education

	if exactRatio >= 0.5 {
		bonus := 0.0
		if sectorExact {
			bonus += w.PerfectBonus * 0.6
		}
		if locationExact {
			bonus += w.PerfectBonus * 0.4
		}
		if exactRatio >= 0.7 {
			bonus += w.PerfectBonus * 0.2
		}
		score += bonus
	}
	maxScore += w.PerfectBonus

	if maxScore <= 0 {
		return 0
	}
	normalized := (score / maxScore) * ruleScoreMax
	if normalized < 0 {
		return 0
	}
	if normalized > ruleScoreMax {
		return ruleScoreMax
	}
	return normalized
}

const ruleScoreMax = 60.0

// sectorsRelated consults the keyword taxonomy: both sectors must fall in
// the same bucket and at least one of the bucket's keywords must appear
// in either string.
func (s *RuleScorer) sectorsRelated(a, b string) bool {
	for bucket, keywords := range s.cfg.SectorTaxonomy {
		bucket = strings.ToLower(bucket)
		if !strings.Contains(a, bucket) && !strings.Contains(b, bucket) {
			continue
		}
		for _, kw := range keywords {
			kw = strings.ToLower(kw)
			if strings.Contains(a, kw) || strings.Contains(b, kw) {
				return true
			}
		}
	}
	return false
}

func splitSkillTerms(text string) []string {
	raw := strings.Split(text, ",")
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(strings.ToLower(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// skillMatchRatios returns the exact-overlap ratio and the partial-match
// ratio, both over the posting term count. A partial match is a profile
// term contained in, or containing, a posting term.
func skillMatchRatios(postingSkills []string, profileSkills map[string]bool) (float64, float64) {
	if len(postingSkills) == 0 || len(profileSkills) == 0 {
		return 0, 0
	}

	postingSet := make(map[string]bool, len(postingSkills))
	for _, t := range postingSkills {
		postingSet[t] = true
	}

	exact := 0
	for term := range profileSkills {
		if postingSet[term] {
			exact++
		}
	}

	partial := 0
	for term := range profileSkills {
		for _, pt := range postingSkills {
			if strings.Contains(pt, term) || strings.Contains(term, pt) {
				partial++
				break
			}
		}
	}

	n := float64(len(postingSkills))
	return float64(exact) / n, float64(partial) / n
}
