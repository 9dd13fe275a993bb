package barttorvik

import (
	"strconv"
	"strings"

	"github.com/hoopboard/draftboard/internal/usecase"
)

// Column positions in the provider's row arrays. The endpoint has kept this
// layout stable across seasons; only the columns the board consumes are
// named here.
const (
	colPlayerName = 0
	colTeam       = 1
	colConference = 2
	colGames      = 3
	colMinutesPct = 4
	colORtg       = 5
	colUsage      = 6
	colEFG        = 7
	colTS         = 8
	colFTM        = 13
	colFTA        = 14
	colFTPct      = 15
	colTwoPM      = 16
	colTwoPA      = 17
	colTwoPPct    = 18
	colThreePM    = 19
	colThreePA    = 20
	colThreePPct  = 21
	colDRtg       = 46
	colBPM        = 50
	colOBPM       = 51
	colDBPM       = 52
	colOReb       = 57
	colDReb       = 58
	colTReb       = 59
	colAssists    = 60
	colSteals     = 61
	colBlocks     = 62
	colPoints     = 63
)

func mapRow(row []any) usecase.ExternalCollegeSeason {
	return usecase.ExternalCollegeSeason{
		PlayerName: rowString(row, colPlayerName),
		Team:       rowString(row, colTeam),
		Conference: rowString(row, colConference),

		GamesPlayed: rowFloat(row, colGames),
		MinutesPct:  rowFloat(row, colMinutesPct),
		Points:      rowFloat(row, colPoints),

		TwoPM:   rowFloat(row, colTwoPM),
		TwoPA:   rowFloat(row, colTwoPA),
		TwoPPct: rowFloat(row, colTwoPPct),

		ThreePM:   rowFloat(row, colThreePM),
		ThreePA:   rowFloat(row, colThreePA),
		ThreePPct: rowFloat(row, colThreePPct),

		FTM:   rowFloat(row, colFTM),
		FTA:   rowFloat(row, colFTA),
		FTPct: rowFloat(row, colFTPct),

		OffensiveRebounds: rowFloat(row, colOReb),
		DefensiveRebounds: rowFloat(row, colDReb),
		TotalRebounds:     rowFloat(row, colTReb),
		Assists:           rowFloat(row, colAssists),
		Steals:            rowFloat(row, colSteals),
		Blocks:            rowFloat(row, colBlocks),

		EFGPct: rowFloat(row, colEFG),
		TSPct:  rowFloat(row, colTS),
		Usage:  rowFloat(row, colUsage),
		ORtg:   rowFloat(row, colORtg),
		DRtg:   rowFloat(row, colDRtg),
		BPM:    rowFloat(row, colBPM),
		OBPM:   rowFloat(row, colOBPM),
		DBPM:   rowFloat(row, colDBPM),
	}
}

func rowString(row []any, idx int) string {
	if idx >= len(row) {
		return ""
	}
	s, ok := row[idx].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// rowFloat reads a numeric cell. The provider mixes number and string cells
// within the same column across rows, so both are accepted.
func rowFloat(row []any, idx int) *float64 {
	if idx >= len(row) {
		return nil
	}
	switch typed := row[idx].(type) {
	case float64:
		return &typed
	case int:
		f := float64(typed)
		return &f
	case int64:
		f := float64(typed)
		return &f
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return nil
		}
		return &parsed
	default:
		return nil
	}
}
