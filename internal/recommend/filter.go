package recommend

import (
	"sort"
	"strings"

	"internmatch/internal/domain/posting"
)

// FilterConfig bounds the candidate search.
type FilterConfig struct {
	// PoolCap caps the narrowed candidate pool before scoring.
	PoolCap int
	// EarlyStopCount stops the scoring loop once this many candidates
	// above EarlyStopMinScore have been collected.
	EarlyStopCount    int
	EarlyStopMinScore float64
}

func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		PoolCap:           1000,
		EarlyStopCount:    100,
		EarlyStopMinScore: 10,
	}
}

func (c FilterConfig) withDefaults() FilterConfig {
	def := DefaultFilterConfig()
	if c.PoolCap <= 0 {
		c.PoolCap = def.PoolCap
	}
	if c.EarlyStopCount <= 0 {
		c.EarlyStopCount = def.EarlyStopCount
	}
	if c.EarlyStopMinScore <= 0 {
		c.EarlyStopMinScore = def.EarlyStopMinScore
	}
	return c
}

// CandidateFilter narrows the posting pool to a bounded, relevant
// candidate set before full scoring.
type CandidateFilter struct {
	cfg FilterConfig
}

func NewCandidateFilter(cfg FilterConfig) *CandidateFilter {
	return &CandidateFilter{cfg: cfg.withDefaults()}
}

func (f *CandidateFilter) Config() FilterConfig { return f.cfg }

// Narrow keeps postings whose sector and location textually match the
// profile's preferences (wildcards keep everything), caps the pool, and
// returns it in ascending posting id so early termination stays
// reproducible for identical inputs.
func (f *CandidateFilter) Narrow(pool []posting.Posting, p Profile) []posting.Posting {
	sectorPref := strings.TrimSpace(strings.ToLower(p.Sector))
	locationPref := strings.TrimSpace(strings.ToLower(p.Location))

	out := make([]posting.Posting, 0, len(pool))
	for _, post := range pool {
		if !p.SectorWildcard() {
			if !strings.Contains(strings.ToLower(post.Sector), sectorPref) {
				continue
			}
		}
		if !p.LocationWildcard() {
			if !strings.Contains(strings.ToLower(post.Location), locationPref) {
				continue
			}
		}
		out = append(out, post)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if len(out) > f.cfg.PoolCap {
		out = out[:f.cfg.PoolCap]
	}
	return out
}

// Admit is the cheap pre-filter applied before full scoring: a posting
// is rejected only when every profile skill misses its resolved skill
// terms and its sector has no textual relation to the preference. A
// missing posting sector counts as "no relation", never an error.
func (f *CandidateFilter) Admit(c Candidate, p Profile) bool {
	skillHit := false
	terms := splitSkillTerms(c.SkillsText)
	for _, s := range p.Skills {
		s = strings.TrimSpace(strings.ToLower(s))
		if s == "" {
			continue
		}
		for _, t := range terms {
			if strings.Contains(t, s) || strings.Contains(s, t) {
				skillHit = true
				break
			}
		}
		if skillHit {
			break
		}
	}
	if len(p.Skills) == 0 {
		// Nothing to miss on; let scoring decide.
		skillHit = true
	}

	sectorHit := p.SectorWildcard()
	if !sectorHit {
		postingSector := strings.TrimSpace(strings.ToLower(c.Posting.Sector))
		pref := strings.TrimSpace(strings.ToLower(p.Sector))
		if postingSector != "" &&
			(strings.Contains(postingSector, pref) || strings.Contains(pref, postingSector)) {
			sectorHit = true
		}
	}

	return skillHit || sectorHit
}
