package posting

import (
	"fmt"
	"strconv"
	"strings"
)

// SkillLookup resolves auxiliary skill ids to their descriptive text.
type SkillLookup interface {
	SkillDescription(id int64) (string, bool)
}

const auxSkillMarker = "skills:"

// ResolveSkills returns the full skills text for a posting: the primary
// skill text plus any auxiliary skills referenced in the detail field as
// "skills:<id>,<id>,...". A malformed reference list still returns the
// primary skill text, together with a non-nil error describing the bad
// token, so callers can log the failure without dropping the candidate.
func ResolveSkills(p Posting, lookup SkillLookup) (string, error) {
	primary := strings.TrimSpace(p.SkillText)

	ids, err := parseAuxSkillIDs(p.Details)
	if err != nil || len(ids) == 0 || lookup == nil {
		return primary, err
	}

	seen := make(map[string]bool)
	for _, term := range strings.Split(strings.ToLower(primary), ",") {
		term = strings.TrimSpace(term)
		if term != "" {
			seen[term] = true
		}
	}

	parts := make([]string, 0, len(ids)+1)
	if primary != "" {
		parts = append(parts, primary)
	}
	for _, id := range ids {
		desc, ok := lookup.SkillDescription(id)
		if !ok {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(desc))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		parts = append(parts, strings.TrimSpace(desc))
	}

	return strings.Join(parts, ", "), nil
}

func parseAuxSkillIDs(details string) ([]int64, error) {
	idx := strings.Index(strings.ToLower(details), auxSkillMarker)
	if idx < 0 {
		return nil, nil
	}

	rest := details[idx+len(auxSkillMarker):]
	end := len(rest)
	for i, r := range rest {
		if r >= '0' && r <= '9' || r == ',' || r == ' ' {
			continue
		}
		end = i
		break
	}
	rest = strings.TrimSpace(rest[:end])
	if rest == "" {
		return nil, fmt.Errorf("empty auxiliary skill list in details")
	}

	raw := strings.Split(rest, ",")
	ids := make([]int64, 0, len(raw))
	for _, tok := range raw {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, fmt.Errorf("malformed auxiliary skill list %q", rest)
		}
		id, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed auxiliary skill id %q", tok)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
