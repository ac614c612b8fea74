package recommend

import (
	"sort"
	"strings"
)

// ScoredCandidate is a per-request pairing of a candidate with its
// hybrid score; discarded after ranking.
type ScoredCandidate struct {
	Candidate Candidate
	Total     float64
	Breakdown Breakdown
}

const (
	diversityWindow = 50
	maxResults      = 5
)

// SelectDiverse picks the final shortlist from scored candidates:
// stable sort by descending total (ties by ascending posting id), keep
// the top 50, then walk the window admitting each candidate whose
// title, sector or skill text adds a value not yet represented. A
// second pass fills any remaining slots with the next highest-scoring
// candidates, keyed on posting id so equal-looking postings never
// collapse into one another.
func SelectDiverse(scored []ScoredCandidate) []ScoredCandidate {
	if len(scored) == 0 {
		return nil
	}

	ordered := make([]ScoredCandidate, len(scored))
	copy(ordered, scored)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Total != ordered[j].Total {
			return ordered[i].Total > ordered[j].Total
		}
		return ordered[i].Candidate.Posting.ID < ordered[j].Candidate.Posting.ID
	})

	window := ordered
	if len(window) > diversityWindow {
		window = window[:diversityWindow]
	}

	chosen := make([]ScoredCandidate, 0, maxResults)
	chosenIDs := make(map[int64]bool, maxResults)
	seenTitles := make(map[string]bool)
	seenSectors := make(map[string]bool)
	seenSkills := make(map[string]bool)

	for _, sc := range window {
		if len(chosen) >= maxResults {
			break
		}
		title := strings.ToLower(strings.TrimSpace(sc.Candidate.Posting.Title))
		sector := strings.ToLower(strings.TrimSpace(sc.Candidate.Posting.Sector))
		skills := strings.ToLower(strings.TrimSpace(sc.Candidate.SkillsText))

		if seenTitles[title] && seenSectors[sector] && seenSkills[skills] {
			continue
		}

		chosen = append(chosen, sc)
		chosenIDs[sc.Candidate.Posting.ID] = true
		seenTitles[title] = true
		seenSectors[sector] = true
		seenSkills[skills] = true
	}

	if len(chosen) < maxResults {
		for _, sc := range window {
			if len(chosen) >= maxResults {
				break
			}
			if chosenIDs[sc.Candidate.Posting.ID] {
				continue
			}
			chosen = append(chosen, sc)
			chosenIDs[sc.Candidate.Posting.ID] = true
		}
	}

	sort.SliceStable(chosen, func(i, j int) bool {
		if chosen[i].Total != chosen[j].Total {
			return chosen[i].Total > chosen[j].Total
		}
		return chosen[i].Candidate.Posting.ID < chosen[j].Candidate.Posting.ID
	})
	return chosen
}
