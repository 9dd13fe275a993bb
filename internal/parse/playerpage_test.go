package parse

import "testing"

const playerPageFixture = `
[![logo](https://www.tankathon.com/logo.png)](https://www.tankathon.com/)

# Hugo Gonzalez

Team

Real Madrid

PER GAME AVERAGES

G

9

MP

21.9

FGM-FGA

3.7-7.7

FG%

.478

3PM-3PA

1.0-2.8

3P%

.360

FTM-FTA

2.1-2.9

FT%

.731

REB

4.8

AST

1.6

STL

1.1

BLK

0.4

TO

1.8

PF

2.3

PTS

10.5

ADVANCED STATS

TS%TS%

.582

EFG%EFG%

.544

USG%USG%

22.4
`

func TestParsePlayerPageStats(t *testing.T) {
	stats := ParsePlayerPageStats(playerPageFixture)
	if stats == nil {
		t.Fatal("expected stats, got nil")
	}

	if stats.GamesPlayed == nil || *stats.GamesPlayed != 9 {
		t.Errorf("games played = %v, want 9", stats.GamesPlayed)
	}
	if stats.Minutes == nil || *stats.Minutes != 21.9 {
		t.Errorf("minutes = %v, want 21.9", stats.Minutes)
	}
	if stats.Points == nil || *stats.Points != 10.5 {
		t.Errorf("points = %v, want 10.5", stats.Points)
	}
	if stats.Rebounds == nil || *stats.Rebounds != 4.8 {
		t.Errorf("rebounds = %v, want 4.8", stats.Rebounds)
	}
	if stats.FGM == nil || *stats.FGM != 3.7 {
		t.Errorf("FGM = %v, want 3.7", stats.FGM)
	}
	if stats.FGA == nil || *stats.FGA != 7.7 {
		t.Errorf("FGA = %v, want 7.7", stats.FGA)
	}
	if stats.Team != "Real Madrid" {
		t.Errorf("team = %q, want Real Madrid", stats.Team)
	}
}

func TestParsePlayerPageStats_PercentScaling(t *testing.T) {
	stats := ParsePlayerPageStats(playerPageFixture)
	if stats == nil {
		t.Fatal("expected stats, got nil")
	}

	// Fractions scale to percent with one decimal.
	if stats.FGPct == nil || *stats.FGPct != 47.8 {
		t.Errorf("FG%% = %v, want 47.8", stats.FGPct)
	}
	if stats.ThreePPct == nil || *stats.ThreePPct != 36.0 {
		t.Errorf("3P%% = %v, want 36.0", stats.ThreePPct)
	}
	if stats.TSPct == nil || *stats.TSPct != 58.2 {
		t.Errorf("TS%% = %v, want 58.2", stats.TSPct)
	}
	if stats.EFGPct == nil || *stats.EFGPct != 54.4 {
		t.Errorf("eFG%% = %v, want 54.4", stats.EFGPct)
	}
	// Usage is already a percent and passes through.
	if stats.Usage == nil || *stats.Usage != 22.4 {
		t.Errorf("usage = %v, want 22.4", stats.Usage)
	}
}

func TestParsePlayerPageStats_NoSection(t *testing.T) {
	if got := ParsePlayerPageStats("# Some Player\n\nNo stats published yet.\n"); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
	if got := ParsePlayerPageStats(""); got != nil {
		t.Fatalf("expected nil for empty markdown, got %+v", got)
	}
}

func TestParsePlayerPageStats_EmptySectionRejected(t *testing.T) {
	markdown := "PER GAME AVERAGES\n\nADVANCED STATS\n"
	if got := ParsePlayerPageStats(markdown); got != nil {
		t.Fatalf("section with no core stats should yield nil, got %+v", got)
	}
}

func TestParsePlayerPageTeam(t *testing.T) {
	if got := ParsePlayerPageTeam(playerPageFixture); got != "Real Madrid" {
		t.Fatalf("team = %q, want Real Madrid", got)
	}
	if got := ParsePlayerPageTeam("no team label here"); got != "" {
		t.Fatalf("team = %q, want empty", got)
	}
}
