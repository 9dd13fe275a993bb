package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/hoopboard/draftboard/internal/domain/prospect"
	"github.com/hoopboard/draftboard/internal/match"
	"github.com/hoopboard/draftboard/internal/parse"
	"github.com/hoopboard/draftboard/internal/platform/logging"
)

const mergeTankathonMarkdown = `
1

[Cooper Flagg\

SF \| Duke](https://www.tankathon.com/players/cooper-flagg)

Freshman

2

[Dylan Harper\

PG \| Rutgers](https://www.tankathon.com/players/dylan-harper)

Freshman

3

[Noa Essengue\

PF \| Ratiopharm Ulm](https://www.tankathon.com/players/noa-essengue)

International
`

const mergeNBADraftNetMarkdown = `
| 2 | Dal | [Cooper Flagg](https://www.nbadraft.net/players/cooper-flagg/) | 6-9 | 205 | SF | Duke | Fr. |
| 3 | SA | [Dylan Harper Jr.](https://www.nbadraft.net/players/dylan-harper/) | 6-6 | 215 | PG | Rutgers | Fr. |
| 40 | Was | [Secondary Only](https://www.nbadraft.net/players/secondary-only/) | 6-7 | 210 | SF | Baylor | Jr. |
`

const mergeESPNMarkdown = `
## 1\. [Dallas Mavericks](https://www.espn.com/nba/team)

**[Cooper Flagg](https://www.espn.com/nba/player), SF, [Duke](https://www.espn.com/college)**
`

const mergeDraftRoomMarkdown = `
| **1** | BKN | [Cooper Flagg](https://www.nbadraftroom.com/p/cooper-flagg) | SF - Duke - HT: 6-9 - WT: 205 - Fr. |
`

func mergeTestService() *MergeService {
	svc := NewMergeService(match.MatcherConfig{}, ImageConfig{}, logging.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func mergeTestInput() MergeInput {
	gp := 9
	return MergeInput{
		TankathonMarkdown:   mergeTankathonMarkdown,
		NBADraftNetMarkdown: mergeNBADraftNetMarkdown,
		ESPNMarkdown:        mergeESPNMarkdown,
		DraftRoomMarkdown:   mergeDraftRoomMarkdown,
		CollegeSeasons: []ExternalCollegeSeason{
			{PlayerName: "Cooper Flagg", Team: "Duke", Conference: "ACC", GamesPlayed: fptr(37), Points: fptr(19.2)},
			{PlayerName: "Dylan Harper", Team: "Rutgers", Conference: "Big Ten", GamesPlayed: fptr(29), Points: fptr(19.4)},
		},
		InternationalStats: map[string]*parse.PlayerPageStats{
			"noa-essengue": {GamesPlayed: &gp, Points: fptr(12.3), Team: "Ratiopharm Ulm"},
		},
	}
}

func TestMerge(t *testing.T) {
	snapshot, err := mergeTestService().Merge(context.Background(), mergeTestInput())
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	if len(snapshot.Players) != 3 {
		t.Fatalf("got %d players, want 3 (secondary-only player excluded)", len(snapshot.Players))
	}

	flagg := snapshot.Players[0]
	if flagg.Slug != "cooper-flagg" {
		t.Fatalf("first player = %q, want cooper-flagg", flagg.Slug)
	}
	if flagg.ID != "player_cooper-flagg" {
		t.Errorf("id = %q", flagg.ID)
	}
	// Ranked 1, 2, 1 and 1: the consensus is the mean to one decimal.
	if flagg.ConsensusRank != 1.3 {
		t.Errorf("consensus = %v, want 1.3", flagg.ConsensusRank)
	}
	if flagg.NBADraftNetRank == nil || *flagg.NBADraftNetRank != 2 {
		t.Errorf("nbadraft.net rank = %v, want 2", flagg.NBADraftNetRank)
	}
	if flagg.ESPNRank == nil || *flagg.ESPNRank != 1 {
		t.Errorf("espn rank = %v, want 1", flagg.ESPNRank)
	}
	if flagg.DraftRoomRank == nil || *flagg.DraftRoomRank != 1 {
		t.Errorf("draft room rank = %v, want 1", flagg.DraftRoomRank)
	}
	if !flagg.HasCollegeStats || flagg.Stats == nil {
		t.Fatal("expected college stats on the top pick")
	}
	if flagg.Stats.Source != prospect.StatSourceBarttorvik {
		t.Errorf("stats source = %q", flagg.Stats.Source)
	}
	if flagg.LeagueType != prospect.LeagueTypeNCAA {
		t.Errorf("league type = %q", flagg.LeagueType)
	}

	harper := snapshot.Players[1]
	if harper.Slug != "dylan-harper" {
		t.Fatalf("second player = %q, want dylan-harper", harper.Slug)
	}
	// "Dylan Harper Jr." on the secondary board resolves through the loose
	// name index instead of minting a duplicate.
	if harper.NBADraftNetRank == nil || *harper.NBADraftNetRank != 3 {
		t.Errorf("nbadraft.net rank = %v, want 3", harper.NBADraftNetRank)
	}
	if harper.ConsensusRank != 2.5 {
		t.Errorf("consensus = %v, want 2.5", harper.ConsensusRank)
	}

	essengue := snapshot.Players[2]
	if essengue.Slug != "noa-essengue" {
		t.Fatalf("third player = %q, want noa-essengue", essengue.Slug)
	}
	if !essengue.IsInternational || essengue.LeagueType != prospect.LeagueTypeInternational {
		t.Error("expected international league type")
	}
	if essengue.ConsensusRank != 3.0 {
		t.Errorf("consensus = %v, want 3.0", essengue.ConsensusRank)
	}
	if !essengue.HasInternationalStats || essengue.Stats == nil {
		t.Fatal("expected scraped international stats")
	}
	if essengue.Stats.Source != prospect.StatSourceTankathon {
		t.Errorf("stats source = %q", essengue.Stats.Source)
	}
	if essengue.HasCollegeStats {
		t.Error("international player should not report college stats")
	}
}

func TestMerge_MatchStats(t *testing.T) {
	snapshot, err := mergeTestService().Merge(context.Background(), mergeTestInput())
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}

	ms := snapshot.MatchStats
	if ms.Total != 3 {
		t.Errorf("total = %d, want 3", ms.Total)
	}
	if ms.Matched != 2 {
		t.Errorf("matched = %d, want 2", ms.Matched)
	}
	if ms.Unmatched != 0 {
		t.Errorf("unmatched = %d, want 0", ms.Unmatched)
	}
	if ms.International != 1 || ms.InternationalWithStats != 1 {
		t.Errorf("international = %d/%d, want 1/1", ms.International, ms.InternationalWithStats)
	}
	if ms.WithBothSources != 2 {
		t.Errorf("with both sources = %d, want 2", ms.WithBothSources)
	}
	if ms.TankathonOnly != 1 {
		t.Errorf("tankathon only = %d, want 1", ms.TankathonOnly)
	}
	want := prospect.SourceCounts{Tankathon: 3, NBADraftNet: 3, ESPN: 1, DraftRoom: 1}
	if ms.SourceCounts != want {
		t.Errorf("source counts = %+v, want %+v", ms.SourceCounts, want)
	}
}

func TestMerge_Deterministic(t *testing.T) {
	svc := mergeTestService()

	first, err := svc.Merge(context.Background(), mergeTestInput())
	if err != nil {
		t.Fatalf("first merge: %v", err)
	}
	second, err := svc.Merge(context.Background(), mergeTestInput())
	if err != nil {
		t.Fatalf("second merge: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical input produced different snapshots")
	}
}

func TestMerge_EmptyPrimarySource(t *testing.T) {
	input := mergeTestInput()
	input.TankathonMarkdown = ""

	_, err := mergeTestService().Merge(context.Background(), input)
	if !errors.Is(err, ErrSourceEmpty) {
		t.Fatalf("expected ErrSourceEmpty, got %v", err)
	}
}

func TestMerge_MissingSecondarySources(t *testing.T) {
	input := mergeTestInput()
	input.NBADraftNetMarkdown = ""
	input.ESPNMarkdown = ""
	input.DraftRoomMarkdown = ""

	snapshot, err := mergeTestService().Merge(context.Background(), input)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(snapshot.Players) != 3 {
		t.Fatalf("got %d players, want 3", len(snapshot.Players))
	}
	// With only the primary source the consensus equals the primary rank.
	if snapshot.Players[0].ConsensusRank != 1.0 {
		t.Errorf("consensus = %v, want 1.0", snapshot.Players[0].ConsensusRank)
	}
	if snapshot.MatchStats.WithBothSources != 0 || snapshot.MatchStats.TankathonOnly != 3 {
		t.Errorf("source coverage counts = %d/%d, want 0/3",
			snapshot.MatchStats.WithBothSources, snapshot.MatchStats.TankathonOnly)
	}
}

func TestConsensusRank(t *testing.T) {
	one, two, three, zero := 1, 2, 3, 0

	tests := []struct {
		name  string
		ranks []*int
		want  float64
	}{
		{"all sources", []*int{&one, &two, &three, &one}, 1.8},
		{"single source", []*int{&two, nil, nil, nil}, 2.0},
		{"ignores non-positive", []*int{&three, &zero, nil, nil}, 3.0},
		{"no ranks", []*int{nil, nil, nil, nil}, prospect.UnrankedConsensus},
		{"rounds to one decimal", []*int{&one, &two, nil, nil}, 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := consensusRank(tt.ranks...); got != tt.want {
				t.Fatalf("consensusRank = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestImageConfigPhotoURL(t *testing.T) {
	cfg := ImageConfig{
		SlugAliases: map[string]string{"kasparas-jakucionis": "kasparas-jakuconis"},
		PNGSlugs:    map[string]struct{}{"cooper-flagg": {}},
	}

	if got := cfg.PhotoURL("cooper-flagg"); got != "/players/cooper-flagg.png" {
		t.Errorf("png slug url = %q", got)
	}
	if got := cfg.PhotoURL("dylan-harper"); got != "/players/dylan-harper.jpg" {
		t.Errorf("default url = %q", got)
	}
	if got := cfg.PhotoURL("kasparas-jakucionis"); got != "/players/kasparas-jakuconis.jpg" {
		t.Errorf("aliased url = %q", got)
	}
	if got := cfg.PhotoURL(""); got != "" {
		t.Errorf("empty slug url = %q", got)
	}
}

func TestDefaultImageConfig(t *testing.T) {
	cfg := DefaultImageConfig()

	aliased := map[string]string{
		"patrick-ngongba-ii": "/players/patrick-ngongba.jpg",
		"darius-acuff":       "/players/darius-acuff-jr.jpg",
		"sergio-de-larrea":   "/players/sergio-de-larrea-asenjo.jpg",
		"jojo-tugler":        "/players/joseph-tugler.jpg",
		"johann-grunloh":     "/players/johann-gruenloh.jpg",
	}
	for slug, want := range aliased {
		if got := cfg.PhotoURL(slug); got != want {
			t.Errorf("PhotoURL(%q) = %q, want %q", slug, got, want)
		}
	}

	for _, slug := range []string{"dame-sarr", "karim-lopez"} {
		if got := cfg.PhotoURL(slug); got != "/players/"+slug+".png" {
			t.Errorf("PhotoURL(%q) = %q, want png path", slug, got)
		}
	}

	if got := cfg.PhotoURL("cooper-flagg"); got != "/players/cooper-flagg.jpg" {
		t.Errorf("uncurated slug url = %q", got)
	}
}
