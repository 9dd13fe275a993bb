package usecase

import (
	"math"

	"github.com/hoopboard/draftboard/internal/domain/prospect"
	"github.com/hoopboard/draftboard/internal/parse"
)

// mapCollegeStats converts a provider season line into the display stat line.
// The provider mixes units: minutes, points, rebounds, assists, steals and
// blocks are per-game already, while made/attempted shot counts are season
// totals and get divided by games played. With no positive games-played value
// the per-game conversions are unknowable and those fields stay nil.
func mapCollegeStats(season ExternalCollegeSeason) *prospect.StatLine {
	var gamesPlayed *int
	gp := 0.0
	if season.GamesPlayed != nil && *season.GamesPlayed > 0 {
		gp = *season.GamesPlayed
		n := int(math.Round(gp))
		gamesPlayed = &n
	}

	perGame := func(total *float64) *float64 {
		if total == nil || gp <= 0 {
			return nil
		}
		return roundTo(*total/gp, 1)
	}

	fgmTotal := zeroIfNil(season.TwoPM) + zeroIfNil(season.ThreePM)
	fgaTotal := zeroIfNil(season.TwoPA) + zeroIfNil(season.ThreePA)
	var fgPct *float64
	if fgaTotal > 0 {
		fgPct = roundTo(fgmTotal/fgaTotal*100, 1)
	}

	return &prospect.StatLine{
		GamesPlayed: gamesPlayed,
		Minutes:     round1(season.MinutesPct),
		Points:      round1(season.Points),

		FGM:   perGame(&fgmTotal),
		FGA:   perGame(&fgaTotal),
		FGPct: fgPct,

		TwoPM:   perGame(season.TwoPM),
		TwoPA:   perGame(season.TwoPA),
		TwoPPct: toPct(season.TwoPPct),

		ThreePM:   perGame(season.ThreePM),
		ThreePA:   perGame(season.ThreePA),
		ThreePPct: toPct(season.ThreePPct),

		FTM:   perGame(season.FTM),
		FTA:   perGame(season.FTA),
		FTPct: toPct(season.FTPct),

		OffensiveRebounds: round1(season.OffensiveRebounds),
		DefensiveRebounds: round1(season.DefensiveRebounds),
		TotalRebounds:     round1(season.TotalRebounds),
		Assists:           round1(season.Assists),
		Steals:            round1(season.Steals),
		Blocks:            round1(season.Blocks),

		EFGPct: round1(season.EFGPct),
		TSPct:  round1(season.TSPct),
		Usage:  round1(season.Usage),
		ORtg:   round0(season.ORtg),
		DRtg:   round0(season.DRtg),
		BPM:    round1(season.BPM),
		OBPM:   round1(season.OBPM),
		DBPM:   round1(season.DBPM),

		Team:       season.Team,
		Conference: season.Conference,
		Source:     prospect.StatSourceBarttorvik,
	}
}

// mapInternationalStats converts a scraped player-page line. It is a rename
// with no unit conversion: the page already publishes per-game values and
// percentages. Fields the page never carries are left nil so the display can
// tell "not published" from zero.
func mapInternationalStats(stats *parse.PlayerPageStats) *prospect.StatLine {
	if stats == nil {
		return nil
	}

	return &prospect.StatLine{
		GamesPlayed: stats.GamesPlayed,
		Minutes:     stats.Minutes,
		Points:      stats.Points,

		FGM:   stats.FGM,
		FGA:   stats.FGA,
		FGPct: stats.FGPct,

		ThreePM:   stats.ThreePM,
		ThreePA:   stats.ThreePA,
		ThreePPct: stats.ThreePPct,

		FTM:   stats.FTM,
		FTA:   stats.FTA,
		FTPct: stats.FTPct,

		TotalRebounds: stats.Rebounds,
		Assists:       stats.Assists,
		Steals:        stats.Steals,
		Blocks:        stats.Blocks,

		EFGPct: stats.EFGPct,
		TSPct:  stats.TSPct,
		Usage:  stats.Usage,

		Team:   stats.Team,
		Source: prospect.StatSourceTankathon,
	}
}

// toPct reads a shooting split that the provider publishes inconsistently,
// as either a fraction (0.563) or a percent (56.3). Values above 1 are taken
// as already-percent.
func toPct(value *float64) *float64 {
	if value == nil {
		return nil
	}
	if *value > 1 {
		return roundTo(*value, 1)
	}
	return roundTo(*value*100, 1)
}

func round1(value *float64) *float64 {
	if value == nil {
		return nil
	}
	return roundTo(*value, 1)
}

func round0(value *float64) *float64 {
	if value == nil {
		return nil
	}
	return roundTo(*value, 0)
}

func roundTo(value float64, decimals int) *float64 {
	scale := math.Pow(10, float64(decimals))
	rounded := math.Round(value*scale) / scale
	return &rounded
}

func zeroIfNil(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
