package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hoopboard/draftboard/internal/domain/prospect"
)

// SourceESPN identifies the ESPN mock-draft source.
const SourceESPN = "espn"

var (
	espnFirstRoundHeader = regexp.MustCompile(`^## (\d+)\\?\.?\s*\[`)
	espnFirstRoundPlayer = regexp.MustCompile(`^\*\*\[([^\]]+)\]\([^)]*\)\.?,?\s*([A-Z][A-Z/]*),\s*\[?([^\]*\n,]+)`)
	espnSecondRoundLine  = regexp.MustCompile(`^\*\*(\d+)\\?\.?\s*.+?:\*\*\s*(.+)$`)
	espnLinkedName       = regexp.MustCompile(`^\[([^\]]+)\]\([^)]*\)\.?,?\s*(.+)$`)
	espnPosSchoolRest    = regexp.MustCompile(`^([A-Z][A-Z/]*)[.,]?\s*\[?([^\],\n(]+)`)
	espnPlainName        = regexp.MustCompile(`^([^,]+),\s*([A-Z][A-Z/]*)[.,]?\s*(.+)$`)
	espnTrailingBracket  = regexp.MustCompile(`\].*$`)
	espnTrailingParen    = regexp.MustCompile(`\(.*\)$`)
	espnEscapeArtifacts  = strings.NewReplacer(`\-\-`, "", `\\`, "")
)

// ESPNParser reads the ESPN mock draft, which formats the two rounds
// differently: picks 1-30 as `## N. [Team]` headings with the player on a
// bold line below, picks 31-60 as one-line `**N. Team:** Player, POS, School`
// entries. Both layouts are scanned independently over the whole text and
// unioned by rank, so a format drift in one round cannot take out the other.
type ESPNParser struct{}

func (ESPNParser) Source() string { return SourceESPN }

func (ESPNParser) Parse(markdown string) []prospect.SourceRecord {
	lines := strings.Split(markdown, "\n")
	records := make([]prospect.SourceRecord, 0, MaxDraftRank)

	records = append(records, espnFirstRound(lines)...)
	records = append(records, espnSecondRound(lines)...)

	return dedupeByRank(records)
}

func espnFirstRound(lines []string) []prospect.SourceRecord {
	out := make([]prospect.SourceRecord, 0, 30)

	for i, raw := range lines {
		header := espnFirstRoundHeader.FindStringSubmatch(strings.TrimSpace(raw))
		if header == nil {
			continue
		}
		rank, err := strconv.Atoi(header[1])
		if err != nil || rank < 1 || rank > 30 {
			continue
		}

		end := i + 10
		if end > len(lines) {
			end = len(lines)
		}
		for j := i + 1; j < end; j++ {
			m := espnFirstRoundPlayer.FindStringSubmatch(strings.TrimSpace(lines[j]))
			if m == nil {
				continue
			}
			name := cleanESPNName(m[1])
			if name == "" {
				break
			}
			school := strings.TrimSpace(strings.ReplaceAll(espnTrailingBracket.ReplaceAllString(m[3], ""), "**", ""))
			out = append(out, prospect.SourceRecord{
				Rank:     rank,
				Name:     name,
				Position: m[2],
				School:   school,
				Slug:     prospect.Slugify(name),
				Year:     "Unknown",
			})
			break
		}
	}

	return out
}

func espnSecondRound(lines []string) []prospect.SourceRecord {
	out := make([]prospect.SourceRecord, 0, 30)

	for _, raw := range lines {
		m := espnSecondRoundLine.FindStringSubmatch(strings.TrimSpace(raw))
		if m == nil {
			continue
		}
		rank, err := strconv.Atoi(m[1])
		if err != nil || rank < 31 || rank > MaxDraftRank {
			continue
		}

		name, position, school := espnPlayerPart(m[2])
		if name == "" || position == "" {
			continue
		}

		out = append(out, prospect.SourceRecord{
			Rank:     rank,
			Name:     name,
			Position: position,
			School:   school,
			Slug:     prospect.Slugify(name),
			Year:     "Unknown",
		})
	}

	return out
}

// espnPlayerPart splits the text after the pick label. The player is either a
// markdown link or plain text ("Sergio de Larrea, PG/SG, Valencia (Spain)").
func espnPlayerPart(part string) (name, position, school string) {
	if m := espnLinkedName.FindStringSubmatch(part); m != nil {
		name = cleanESPNName(m[1])
		if ps := espnPosSchoolRest.FindStringSubmatch(m[2]); ps != nil {
			position = ps[1]
			school = strings.TrimSpace(espnTrailingBracket.ReplaceAllString(ps[2], ""))
		}
		return name, position, school
	}

	if m := espnPlainName.FindStringSubmatch(part); m != nil {
		name = cleanESPNName(m[1])
		position = m[2]
		school = m[3]
		school = espnTrailingParen.ReplaceAllString(school, "")
		school = espnTrailingBracket.ReplaceAllString(school, "")
		school = strings.TrimSpace(strings.TrimSuffix(school, "["))
		return name, position, school
	}

	return "", "", ""
}

func cleanESPNName(name string) string {
	return strings.TrimSpace(espnEscapeArtifacts.Replace(name))
}
