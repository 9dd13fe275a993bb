package match

import "strings"

// Candidate is one statistics-provider record viewed through the fields the
// matcher needs. Pos carries the caller's slice index back out.
type Candidate struct {
	Pos  int
	Name string
	Team string
}

// MatcherConfig carries the curated exception tables. Passed in explicitly so
// the matcher stays a pure function of its arguments.
type MatcherConfig struct {
	// Overrides maps a strict-normalized board name to the provider's exact
	// display name, for known collisions no heuristic resolves correctly.
	Overrides map[string]string
	// SchoolAliases feeds NormalizeSchool.
	SchoolAliases map[string]string
}

// StatsMatcher finds the statistics-provider record for a board player.
// Strategies run in a fixed priority order, most specific first, widening
// scope only when the precise keys fail.
type StatsMatcher struct {
	cfg MatcherConfig
}

func NewStatsMatcher(cfg MatcherConfig) *StatsMatcher {
	if cfg.SchoolAliases == nil {
		cfg.SchoolAliases = DefaultSchoolAliases()
	}
	return &StatsMatcher{cfg: cfg}
}

type statsQuery struct {
	name       string // strict-normalized
	school     string // normalized via alias table
	candidates []Candidate
	aliases    map[string]string
	overrides  map[string]string
}

type statsStrategy func(q statsQuery) (int, bool)

var statsCascade = []statsStrategy{
	matchOverride,
	matchExactName,
	matchExactNameWithinSchool,
	matchPartialNameWithinSchool,
	matchUniqueLastName,
	matchLastNameWithinSchool,
}

// Find returns the position of the best candidate for the named player, or
// false when nothing is confident enough. A miss is normal for international
// players absent from the domestic provider.
func (m *StatsMatcher) Find(name, school string, candidates []Candidate) (int, bool) {
	if len(candidates) == 0 {
		return 0, false
	}

	q := statsQuery{
		name:       NormalizeName(name),
		school:     NormalizeSchool(school, m.cfg.SchoolAliases),
		candidates: candidates,
		aliases:    m.cfg.SchoolAliases,
		overrides:  m.cfg.Overrides,
	}
	if q.name == "" {
		return 0, false
	}

	for _, strategy := range statsCascade {
		if pos, ok := strategy(q); ok {
			return pos, true
		}
	}
	return 0, false
}

func matchOverride(q statsQuery) (int, bool) {
	if q.overrides == nil {
		return 0, false
	}
	providerName, ok := q.overrides[q.name]
	if !ok {
		return 0, false
	}
	for _, c := range q.candidates {
		if c.Name == providerName {
			return c.Pos, true
		}
	}
	return 0, false
}

func matchExactName(q statsQuery) (int, bool) {
	for _, c := range q.candidates {
		if NormalizeName(c.Name) == q.name {
			return c.Pos, true
		}
	}
	return 0, false
}

func schoolsOverlap(playerSchool, candidateTeam string, aliases map[string]string) bool {
	if playerSchool == "" {
		return false
	}
	team := NormalizeSchool(candidateTeam, aliases)
	if team == "" {
		return false
	}
	return team == playerSchool ||
		strings.Contains(team, playerSchool) ||
		strings.Contains(playerSchool, team)
}

func (q statsQuery) schoolFiltered() []Candidate {
	out := make([]Candidate, 0, 4)
	for _, c := range q.candidates {
		if schoolsOverlap(q.school, c.Team, q.aliases) {
			out = append(out, c)
		}
	}
	return out
}

func matchExactNameWithinSchool(q statsQuery) (int, bool) {
	for _, c := range q.schoolFiltered() {
		if NormalizeName(c.Name) == q.name {
			return c.Pos, true
		}
	}
	return 0, false
}

func matchPartialNameWithinSchool(q statsQuery) (int, bool) {
	for _, c := range q.schoolFiltered() {
		candidateName := NormalizeName(c.Name)
		if candidateName == "" {
			continue
		}
		if strings.Contains(candidateName, q.name) || strings.Contains(q.name, candidateName) {
			return c.Pos, true
		}
	}
	return 0, false
}

func (q statsQuery) lastNameMatches() []Candidate {
	target := lastWord(q.name)
	out := make([]Candidate, 0, 4)
	for _, c := range q.candidates {
		if lastWord(NormalizeName(c.Name)) == target {
			out = append(out, c)
		}
	}
	return out
}

func matchUniqueLastName(q statsQuery) (int, bool) {
	matches := q.lastNameMatches()
	if len(matches) == 1 {
		return matches[0].Pos, true
	}
	return 0, false
}

// matchLastNameWithinSchool narrows a multi-hit last-name set by school and
// accepts only an unambiguous survivor.
func matchLastNameWithinSchool(q statsQuery) (int, bool) {
	matches := q.lastNameMatches()
	if len(matches) < 2 {
		return 0, false
	}

	filtered := matches[:0]
	for _, c := range matches {
		if schoolsOverlap(q.school, c.Team, q.aliases) {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 1 {
		return filtered[0].Pos, true
	}
	return 0, false
}
