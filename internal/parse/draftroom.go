package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hoopboard/draftboard/internal/domain/prospect"
)

// SourceDraftRoom identifies the NBA Draft Room big-board source.
const SourceDraftRoom = "draftroom"

var (
	drNameCell  = regexp.MustCompile(`^\[([^\]]+)\]`)
	drHeightBio = regexp.MustCompile(`HT:\s*(\d+[-'’]\d+)`)
	drWeightBio = regexp.MustCompile(`WT:\s*(\d{2,3})`)
	drIntClass  = regexp.MustCompile(`^Int\.?\s*\d*$`)
)

// DraftRoomParser reads the NBA Draft Room big board, a markdown pipe table
// of four columns: bolded pick number, NBA team abbreviation, linked player
// name, and a dash-separated bio cell ("PG - Duke - HT: 6-9 - WT: 205 - Fr.").
// The team cell is empty on extended-board rows past the projected picks. The
// board runs past pick 60; rank filtering is left to the merge layer so the
// full board stays available.
type DraftRoomParser struct{}

func (DraftRoomParser) Source() string { return SourceDraftRoom }

func (DraftRoomParser) Parse(markdown string) []prospect.SourceRecord {
	records := make([]prospect.SourceRecord, 0, MaxDraftRank)

	for _, raw := range strings.Split(markdown, "\n") {
		line := strings.TrimSpace(raw)
		if !strings.HasPrefix(line, "|") {
			continue
		}
		if strings.Contains(line, "---") {
			continue
		}

		// pick | team | player | bio; the team cell may be empty.
		cells := splitTableRow(line)
		if len(cells) < 4 {
			continue
		}

		pickCell := strings.TrimSpace(strings.ReplaceAll(cells[0], "**", ""))
		rank, err := strconv.Atoi(pickCell)
		if err != nil || rank < 1 {
			continue
		}

		playerCell := cells[2]
		var name string
		if m := drNameCell.FindStringSubmatch(playerCell); m != nil {
			name = strings.TrimSpace(m[1])
		} else {
			name = strings.TrimSpace(strings.ReplaceAll(playerCell, "**", ""))
		}
		if len(name) < 2 {
			continue
		}

		rec := prospect.SourceRecord{
			Rank: rank,
			Name: name,
			Slug: prospect.Slugify(name),
			Year: "Unknown",
		}
		applyDraftRoomBio(&rec, cells[3])

		records = append(records, rec)
	}

	return dedupeByRank(records)
}

// applyDraftRoomBio fills position, school, height, weight and class from the
// dash-separated bio cell. Segments are positional up to the labeled ones, so
// a missing school shifts nothing: labeled segments are matched by prefix.
func applyDraftRoomBio(rec *prospect.SourceRecord, cell string) {
	segments := splitBioCell(cell)

	var plain []string
	for _, seg := range segments {
		switch {
		case strings.HasPrefix(seg, "HT:"):
			if m := drHeightBio.FindStringSubmatch(seg); m != nil {
				rec.HeightInches = ParseHeightInches(m[1])
				rec.HeightDisplay = FormatHeight(m[1])
			}
		case strings.HasPrefix(seg, "WT:"):
			if m := drWeightBio.FindStringSubmatch(seg); m != nil {
				rec.Weight = ParseWeight(m[1])
			}
		default:
			plain = append(plain, seg)
		}
	}

	if len(plain) > 0 {
		rec.Position = plain[0]
	}
	if len(plain) > 1 {
		rec.School = plain[1]
	}
	if len(plain) > 2 {
		last := plain[len(plain)-1]
		if drIntClass.MatchString(last) {
			rec.Year = "International"
		} else {
			rec.Year = normalizeClassLabel(last)
		}
	}
}

func splitTableRow(line string) []string {
	trimmed := strings.Trim(line, "|")
	parts := strings.Split(trimmed, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		cells = append(cells, strings.TrimSpace(p))
	}
	return cells
}

func splitBioCell(cell string) []string {
	// Markdown renderers emit either an en dash or a hyphen between segments.
	normalized := strings.NewReplacer("–", "-", "—", "-").Replace(cell)
	parts := strings.Split(normalized, " - ")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
