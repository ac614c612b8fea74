package recommend

import (
	"sort"
	"strings"
)

// Profile is a candidate-side description built fresh per request. It is
// never persisted; its normalized form feeds both scoring and the result
// cache fingerprint.
type Profile struct {
	Education   string
	Skills      []string
	Sector      string
	Location    string
	Description string
	UseML       bool
}

const wildcard = "any"

// SectorWildcard reports whether the profile places no sector constraint.
func (p Profile) SectorWildcard() bool {
	s := strings.TrimSpace(strings.ToLower(p.Sector))
	return s == "" || s == wildcard
}

// LocationWildcard reports whether the profile places no location constraint.
func (p Profile) LocationWildcard() bool {
	s := strings.TrimSpace(strings.ToLower(p.Location))
	return s == "" || s == wildcard
}

func (p Profile) normalizedSkills() []string {
	out := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		s = strings.TrimSpace(strings.ToLower(s))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// CombinedText joins the free-text parts of the profile in the order the
// text model expects: description, skills, sector, education.
func (p Profile) CombinedText() string {
	parts := make([]string, 0, 4)
	if s := strings.TrimSpace(p.Description); s != "" {
		parts = append(parts, s)
	}
	if len(p.Skills) > 0 {
		skills := make([]string, 0, len(p.Skills))
		for _, sk := range p.Skills {
			if sk = strings.TrimSpace(sk); sk != "" {
				skills = append(skills, sk)
			}
		}
		if len(skills) > 0 {
			parts = append(parts, strings.Join(skills, " "))
		}
	}
	if s := strings.TrimSpace(p.Sector); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(p.Education); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}
