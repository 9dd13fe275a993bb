package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hoopboard/draftboard/internal/domain/prospect"
)

// SourceNBADraftNet identifies the NBADraft.net big-board source.
const SourceNBADraftNet = "nbadraftnet"

var (
	ndnPickCell   = regexp.MustCompile(`^\|\s*(\d+)\s*\|`)
	ndnPlayerLink = regexp.MustCompile(`(?i)\[([^\]]+)\]\(https?://(?:www\.)?nbadraft\.net/players/([a-z0-9-]+)`)
	ndnHeightCell = regexp.MustCompile(`\|\s*(\d+-\d+)\s*\|`)
	ndnWeightCell = regexp.MustCompile(`\|\s*\d+-\d+\s*\|\s*(\d+)\s*\|`)
	ndnPosCell    = regexp.MustCompile(`\|\s*\d+\s*\|\s*([PGSFCA][FGCA]?(?:/[PGSFCA][FGCA]?)?)\s*\|`)
	ndnSchoolCell = regexp.MustCompile(`(?i)\|\s*([^|]+?)\s*\|\s*(Fr\.|So\.|Jr\.|Sr\.|Intl\.)\s*\|`)
	ndnClassCell  = regexp.MustCompile(`(?i)(Fr\.|So\.|Jr\.|Sr\.|Intl\.)`)
)

// NBADraftNetParser reads the NBADraft.net big board, a pipe-delimited table:
// | # | team | [Player](url) | height | weight | position | school | class |.
// Every field is pulled by its own pattern so a shifted column degrades to a
// missing field instead of a lost row.
type NBADraftNetParser struct{}

func (NBADraftNetParser) Source() string { return SourceNBADraftNet }

func (NBADraftNetParser) Parse(markdown string) []prospect.SourceRecord {
	records := make([]prospect.SourceRecord, 0, MaxDraftRank)
	seen := make(map[int]struct{}, MaxDraftRank)

	for _, line := range strings.Split(markdown, "\n") {
		if !strings.Contains(line, "|") {
			continue
		}

		pickMatch := ndnPickCell.FindStringSubmatch(line)
		if pickMatch == nil {
			continue
		}
		pick, err := strconv.Atoi(pickMatch[1])
		if err != nil || pick < 1 || pick > MaxDraftRank {
			continue
		}
		if _, dup := seen[pick]; dup {
			continue
		}

		playerMatch := ndnPlayerLink.FindStringSubmatch(line)
		if playerMatch == nil {
			continue
		}
		name := strings.TrimSpace(playerMatch[1])
		slug := strings.ToLower(playerMatch[2])

		height := ""
		if m := ndnHeightCell.FindStringSubmatch(line); m != nil {
			height = m[1]
		}
		var weight *int
		if m := ndnWeightCell.FindStringSubmatch(line); m != nil {
			weight = ParseWeight(m[1])
		}
		position := ""
		if m := ndnPosCell.FindStringSubmatch(line); m != nil {
			position = m[1]
		}
		school := ""
		if m := ndnSchoolCell.FindStringSubmatch(line); m != nil {
			school = strings.TrimSpace(m[1])
		}
		year := "Unknown"
		if m := ndnClassCell.FindStringSubmatch(line); m != nil {
			year = normalizeClassLabel(m[1])
		}

		seen[pick] = struct{}{}
		records = append(records, prospect.SourceRecord{
			Rank:          pick,
			Name:          name,
			Position:      position,
			School:        school,
			Slug:          slug,
			HeightDisplay: FormatHeight(height),
			HeightInches:  ParseHeightInches(height),
			Weight:        weight,
			Year:          year,
		})
	}

	return dedupeByRank(records)
}
