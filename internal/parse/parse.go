// Package parse extracts player records from the markdown exports of public
// mock-draft sites. Each site has its own loosely structured layout, so each
// gets a dedicated line-scanning parser behind a common interface; a changed
// site format stays an isolated change.
//
// Parsers never fail on malformed input. They extract what matches the
// expected sub-patterns and silently skip the rest: markdown scrapes are
// unstable and a partial board beats no board.
package parse

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/hoopboard/draftboard/internal/domain/prospect"
)

// MaxDraftRank bounds the valid pick range; sources publish two rounds of 30.
const MaxDraftRank = 60

// Parser converts one source's markdown blob into ordered player records.
type Parser interface {
	Source() string
	Parse(markdown string) []prospect.SourceRecord
}

var (
	feetInchesApostrophe = regexp.MustCompile(`(\d+)'(\d+(?:\.\d+)?)`)
	feetInchesHyphen     = regexp.MustCompile(`(\d+)-(\d+)`)
	leadingNumber        = regexp.MustCompile(`(\d+)`)
	leadingDecimal       = regexp.MustCompile(`([\d.]+)`)
)

// ParseHeightInches reads either `6'9"` or `6-9` notation. Inches may carry a
// fraction in the apostrophe form (6'10.5").
func ParseHeightInches(s string) *float64 {
	if s == "" {
		return nil
	}
	if m := feetInchesApostrophe.FindStringSubmatch(s); m != nil {
		feet, err1 := strconv.Atoi(m[1])
		inches, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			v := float64(feet)*12 + inches
			return &v
		}
	}
	if m := feetInchesHyphen.FindStringSubmatch(s); m != nil {
		feet, err1 := strconv.Atoi(m[1])
		inches, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil {
			v := float64(feet*12 + inches)
			return &v
		}
	}
	return nil
}

// FormatHeight renders hyphen notation ("6-5") as the display form (`6'5"`).
func FormatHeight(hyphenated string) string {
	if hyphenated == "" {
		return ""
	}
	return strings.Replace(hyphenated, "-", "'", 1) + `"`
}

// ParseWeight reads a bare pound value with an optional "lbs" suffix.
func ParseWeight(s string) *int {
	if s == "" {
		return nil
	}
	m := leadingNumber.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &v
}

// ParseAge reads a decimal age with an optional "yrs" suffix.
func ParseAge(s string) *float64 {
	if s == "" {
		return nil
	}
	m := leadingDecimal.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	v, err := strconv.ParseFloat(strings.Trim(m[1], "."), 64)
	if err != nil {
		return nil
	}
	return &v
}

// normalizeClassLabel maps the short class abbreviations some sources use to
// the long form the primary source uses.
func normalizeClassLabel(s string) string {
	normalized := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, ".", "")))
	switch {
	case strings.HasPrefix(normalized, "fr"):
		return "Freshman"
	case strings.HasPrefix(normalized, "so"):
		return "Sophomore"
	case strings.HasPrefix(normalized, "jr"):
		return "Junior"
	case strings.HasPrefix(normalized, "sr"):
		return "Senior"
	case strings.HasPrefix(normalized, "int"):
		return prospect.YearInternational
	case normalized == "":
		return "Unknown"
	}
	return strings.TrimSpace(s)
}

// dedupeByRank sorts ascending by rank and keeps the first record seen for
// each rank.
func dedupeByRank(records []prospect.SourceRecord) []prospect.SourceRecord {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Rank < records[j].Rank
	})

	seen := make(map[int]struct{}, len(records))
	out := records[:0]
	for _, r := range records {
		if _, dup := seen[r.Rank]; dup {
			continue
		}
		seen[r.Rank] = struct{}{}
		out = append(out, r)
	}
	return out
}
