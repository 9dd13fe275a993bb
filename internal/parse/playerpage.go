package parse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// PlayerPageStats holds the per-game line scraped from a Tankathon player
// page. Fields that the page does not publish stay nil; the mapping into a
// prospect.StatLine happens in the usecase layer.
type PlayerPageStats struct {
	GamesPlayed *int
	Minutes     *float64
	Points      *float64
	Rebounds    *float64
	Assists     *float64
	Steals      *float64
	Blocks      *float64

	FGM   *float64
	FGA   *float64
	FGPct *float64

	ThreePM   *float64
	ThreePA   *float64
	ThreePPct *float64

	FTM   *float64
	FTA   *float64
	FTPct *float64

	TSPct  *float64
	EFGPct *float64
	Usage  *float64

	Team string
}

var (
	playerPageStatLabels = map[string]string{
		"G":       "G",
		"MP":      "MP",
		"FGM-FGA": "FGM-FGA",
		"FG%":     "FG%",
		"3PM-3PA": "3PM-3PA",
		"3P%":     "3P%",
		"FTM-FTA": "FTM-FTA",
		"FT%":     "FT%",
		"REB":     "REB",
		"AST":     "AST",
		"BLK":     "BLK",
		"STL":     "STL",
		"TO":      "TO",
		"PF":      "PF",
		"PTS":     "PTS",
	}

	ppDecimalValue = regexp.MustCompile(`^\.?\d+\.?\d*$`)
	ppPlainValue   = regexp.MustCompile(`^\d+\.?\d*$`)
)

// ParsePlayerPageStats extracts the PER GAME AVERAGES block from a Tankathon
// player page. The block renders as alternating label and value lines, so the
// scan keys on known labels and takes the following non-label line as the
// value. Returns nil when no per-game section exists or neither games nor
// points could be read, which is how a page with no published stats looks.
func ParsePlayerPageStats(markdown string) *PlayerPageStats {
	if markdown == "" {
		return nil
	}

	lines := strings.Split(markdown, "\n")

	start := -1
	for i, line := range lines {
		if strings.Contains(line, "PER GAME AVERAGES") {
			start = i
			break
		}
	}
	if start == -1 {
		return nil
	}

	raw := make(map[string]string, len(playerPageStatLabels))
	currentKey := ""
	for i := start + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		if strings.Contains(line, "PER 36 MINUTES") ||
			strings.Contains(line, "ADVANCED STATS") ||
			strings.Contains(line, "TOP 20") {
			break
		}
		if line == "" || strings.HasPrefix(line, "[") || strings.HasPrefix(line, "!") {
			continue
		}

		if key, ok := playerPageStatLabels[strings.ToUpper(line)]; ok {
			currentKey = key
			continue
		}
		if currentKey != "" {
			raw[currentKey] = line
			currentKey = ""
		}
	}

	scanAdvancedStats(lines, raw)

	stats := &PlayerPageStats{
		GamesPlayed: parseStatInt(raw["G"]),
		Minutes:     parseStatFloat(raw["MP"]),
		Points:      parseStatFloat(raw["PTS"]),
		Rebounds:    parseStatFloat(raw["REB"]),
		Assists:     parseStatFloat(raw["AST"]),
		Steals:      parseStatFloat(raw["STL"]),
		Blocks:      parseStatFloat(raw["BLK"]),
		FGPct:       parseStatPercentage(raw["FG%"]),
		ThreePPct:   parseStatPercentage(raw["3P%"]),
		FTPct:       parseStatPercentage(raw["FT%"]),
		TSPct:       parseStatPercentage(raw["TS%"]),
		EFGPct:      parseStatPercentage(raw["EFG%"]),
		Usage:       parseStatFloat(raw["USG%"]),
	}
	stats.FGM, stats.FGA = parseMadeAttempted(raw["FGM-FGA"])
	stats.ThreePM, stats.ThreePA = parseMadeAttempted(raw["3PM-3PA"])
	stats.FTM, stats.FTA = parseMadeAttempted(raw["FTM-FTA"])
	stats.Team = ParsePlayerPageTeam(markdown)

	if stats.GamesPlayed == nil && stats.Points == nil {
		return nil
	}
	return stats
}

// scanAdvancedStats picks up TS%, EFG% and USG% from the advanced section,
// which renders differently from the per-game block: the label sometimes
// doubles up ("TS%TS%") or appears spelled out ("True Shooting").
func scanAdvancedStats(lines []string, raw map[string]string) {
	for i, l := range lines {
		line := strings.TrimSpace(l)

		if strings.Contains(line, "True Shooting") || line == "TS%" || strings.Contains(line, "TS%TS%") {
			if v := nextValue(lines, i, ppDecimalValue); v != "" {
				raw["TS%"] = v
			}
		}
		if strings.Contains(line, "Effective FG") || line == "EFG%" || strings.Contains(line, "EFG%EFG%") {
			if v := nextValue(lines, i, ppDecimalValue); v != "" {
				raw["EFG%"] = v
			}
		}
		if line == "USG%" || strings.Contains(line, "USG%USG%") {
			if v := nextValue(lines, i, ppPlainValue); v != "" {
				raw["USG%"] = v
			}
		}
	}
}

func nextValue(lines []string, i int, pattern *regexp.Regexp) string {
	for j := i + 1; j < i+3 && j < len(lines); j++ {
		val := strings.TrimSpace(lines[j])
		if pattern.MatchString(val) {
			return val
		}
	}
	return ""
}

// ParsePlayerPageTeam returns the club listed under the "Team" label on a
// Tankathon player page, or "" when the page has none.
func ParsePlayerPageTeam(markdown string) string {
	lines := strings.Split(markdown, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) != "Team" {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if v := strings.TrimSpace(lines[j]); v != "" {
				return v
			}
		}
	}
	return ""
}

func parseMadeAttempted(value string) (made, attempted *float64) {
	parts := strings.Split(value, "-")
	if len(parts) != 2 {
		return nil, nil
	}
	return parseStatFloat(parts[0]), parseStatFloat(parts[1])
}

func parseStatFloat(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" || value == "N/A" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseStatInt(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" || value == "N/A" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

// parseStatPercentage reads a shooting percentage that Tankathon renders
// either as a fraction (".478") or as a percent ("47.8"). Fractions are
// scaled to percent and rounded to one decimal.
func parseStatPercentage(value string) *float64 {
	f := parseStatFloat(value)
	if f == nil {
		return nil
	}
	if *f >= 0 && *f <= 1 {
		scaled := math.Round(*f*1000) / 10
		return &scaled
	}
	return f
}
