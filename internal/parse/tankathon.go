package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hoopboard/draftboard/internal/domain/prospect"
)

// SourceTankathon identifies the primary ranking source.
const SourceTankathon = "tankathon"

var (
	tankPickLine      = regexp.MustCompile(`^\d{1,2}$`)
	tankNameLine      = regexp.MustCompile(`^\[([^\\\]]+)`)
	tankPosSchoolLine = regexp.MustCompile(`^([A-Z/]+)\s*\\?\|\s*([^\]]+)\]\(https://www\.tankathon\.com/players/([a-z0-9-]+)\)`)
	tankHeightLine    = regexp.MustCompile(`^\d+'\d+(?:\.\d+)?"?$`)
	tankWeightLine    = regexp.MustCompile(`(?i)^\d+\s*lbs?$`)
	tankYearLine      = regexp.MustCompile(`(?i)^(Freshman|Sophomore|Junior|Senior|International)$`)
	tankAgeLine       = regexp.MustCompile(`(?i)^[\d.]+\s*yrs?$`)
)

// TankathonParser reads the Tankathon mock-draft page export. Picks appear as
// standalone numbers; the player's name, position/school link and bio values
// follow on their own lines before the next pick number.
type TankathonParser struct{}

func (TankathonParser) Source() string { return SourceTankathon }

func (TankathonParser) Parse(markdown string) []prospect.SourceRecord {
	lines := strings.Split(markdown, "\n")
	records := make([]prospect.SourceRecord, 0, MaxDraftRank)

	currentRank := 0
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		// The pick cursor only moves forward; stray numbers inside a
		// player block (jersey numbers, ages) cannot rewind it.
		if tankPickLine.MatchString(line) {
			if pick, err := strconv.Atoi(line); err == nil && pick >= 1 && pick <= MaxDraftRank && pick > currentRank {
				currentRank = pick
			}
			continue
		}

		if !strings.HasPrefix(line, "[") || !strings.Contains(line, `\`) || strings.Contains(line, "![") {
			continue
		}
		nameMatch := tankNameLine.FindStringSubmatch(line)
		if nameMatch == nil {
			continue
		}
		name := strings.TrimSpace(nameMatch[1])
		if name == "" || currentRank == 0 {
			continue
		}

		position, school, slug := "", "", ""
		j := i + 1
		for ; j < i+5 && j < len(lines); j++ {
			if m := tankPosSchoolLine.FindStringSubmatch(strings.TrimSpace(lines[j])); m != nil {
				position, school, slug = m[1], strings.TrimSpace(m[2]), m[3]
				j++
				break
			}
		}
		if slug == "" {
			slug = prospect.Slugify(name)
		}

		record := prospect.SourceRecord{
			Rank:     currentRank,
			Name:     name,
			Position: position,
			School:   school,
			Slug:     slug,
			Year:     "Unknown",
		}

		// Bio values sit within a short window after the link block;
		// stop early at the next pick marker so one player's block
		// never bleeds into the next.
		end := j + 10
		if end > len(lines) {
			end = len(lines)
		}
		for k := j; k < end; k++ {
			bioLine := strings.TrimSpace(lines[k])

			if tankPickLine.MatchString(bioLine) {
				if next, err := strconv.Atoi(bioLine); err == nil && next > currentRank {
					break
				}
			}

			switch {
			case record.HeightDisplay == "" && tankHeightLine.MatchString(bioLine):
				record.HeightDisplay = strings.ReplaceAll(bioLine, `"`, "")
				record.HeightInches = ParseHeightInches(bioLine)
			case record.Weight == nil && tankWeightLine.MatchString(bioLine):
				record.Weight = ParseWeight(bioLine)
			case record.Year == "Unknown" && tankYearLine.MatchString(bioLine):
				record.Year = normalizeClassLabel(bioLine)
			case record.Age == nil && tankAgeLine.MatchString(bioLine):
				record.Age = ParseAge(bioLine)
			}
		}

		records = append(records, record)
	}

	return dedupeByRank(records)
}
