package match

import "strings"

// NormalizeName lowers and strips a display name down to a comparable key.
// Generational suffixes (Jr., III, ...) are kept: sources apply them
// inconsistently, and stripping them here would fold distinct players who
// share a base name. The loose variant below handles the suffix mismatches.
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(name))
	lastSpace := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			lastSpace = false
		case r == ' ' || r == '\t':
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
		// Periods, apostrophes and every other mark drop out entirely,
		// so "A.J." and "AJ" normalize the same way.
	}

	return strings.TrimSpace(b.String())
}

var generationalSuffixes = map[string]struct{}{
	"jr": {}, "sr": {}, "ii": {}, "iii": {}, "iv": {}, "v": {},
}

// NormalizeNameLoose is NormalizeName plus removal of generational suffixes.
// Only used as a fallback index when a strict cross-source match fails.
func NormalizeNameLoose(name string) string {
	strict := NormalizeName(name)
	if strict == "" {
		return ""
	}

	words := strings.Fields(strict)
	kept := words[:0]
	for _, w := range words {
		if _, ok := generationalSuffixes[w]; ok {
			continue
		}
		kept = append(kept, w)
	}

	return strings.Join(kept, " ")
}

// DefaultSchoolAliases maps common abbreviations to the long-form school name
// the statistics provider uses.
func DefaultSchoolAliases() map[string]string {
	return map[string]string{
		"north carolina":            "unc",
		"uconn":                     "connecticut",
		"university of connecticut": "connecticut",
		"st johns":                  "st johns",
		"saint johns":               "st johns",
		"nc state":                  "north carolina state",
		"lsu":                       "louisiana state",
		"ole miss":                  "mississippi",
		"usc":                       "southern california",
		"ucf":                       "central florida",
		"smu":                       "southern methodist",
		"tcu":                       "texas christian",
		"unlv":                      "nevada las vegas",
		"vcu":                       "virginia commonwealth",
	}
}

// NormalizeSchool canonicalizes a school or team label using an alias table.
// A nil table falls back to the default aliases.
func NormalizeSchool(school string, aliases map[string]string) string {
	if school == "" {
		return ""
	}
	if aliases == nil {
		aliases = DefaultSchoolAliases()
	}

	var b strings.Builder
	b.Grow(len(school))
	for _, r := range strings.ToLower(school) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == ' ':
			b.WriteRune(r)
		}
	}
	normalized := strings.TrimSpace(b.String())

	if mapped, ok := aliases[normalized]; ok {
		return mapped
	}
	return normalized
}

func lastWord(normalized string) string {
	idx := strings.LastIndexByte(normalized, ' ')
	if idx < 0 {
		return normalized
	}
	return normalized[idx+1:]
}
