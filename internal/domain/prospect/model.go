package prospect

import (
	"fmt"
	"strings"
	"time"
)

// LeagueType distinguishes where a prospect currently plays.
type LeagueType string

const (
	LeagueTypeNCAA          LeagueType = "NCAA"
	LeagueTypeInternational LeagueType = "International"
)

// YearInternational is the class label ranking sources use for prospects
// playing outside the NCAA.
const YearInternational = "International"

// UnrankedConsensus is the consensus-rank sentinel for prospects no ranking
// source places. Consumers must treat it as "unranked", not as pick 999.
const UnrankedConsensus = 999

// SourceRecord is one player row as extracted from a single ranking source's
// markdown. It only lives between a parse pass and the merge that consumes it.
type SourceRecord struct {
	Rank          int
	Name          string
	Position      string
	School        string
	Slug          string
	HeightDisplay string
	HeightInches  *float64
	Weight        *int
	Year          string
	Age           *float64
}

// StatLine is the canonical per-game statistics shape attached to a prospect.
// All percentage fields are on a 0-100 scale. Nil means the supplying source
// does not cover the field.
type StatLine struct {
	GamesPlayed *int     `json:"GP"`
	Minutes     *float64 `json:"MP"`
	Points      *float64 `json:"PTS"`

	FGM   *float64 `json:"FGM"`
	FGA   *float64 `json:"FGA"`
	FGPct *float64 `json:"FG%"`

	TwoPM   *float64 `json:"2PM"`
	TwoPA   *float64 `json:"2PA"`
	TwoPPct *float64 `json:"2P%"`

	ThreePM   *float64 `json:"3PM"`
	ThreePA   *float64 `json:"3PA"`
	ThreePPct *float64 `json:"3P%"`

	FTM   *float64 `json:"FTM"`
	FTA   *float64 `json:"FTA"`
	FTPct *float64 `json:"FT%"`

	OffensiveRebounds *float64 `json:"ORB"`
	DefensiveRebounds *float64 `json:"DRB"`
	TotalRebounds     *float64 `json:"TRB"`
	Assists           *float64 `json:"AST"`
	Steals            *float64 `json:"STL"`
	Blocks            *float64 `json:"BLK"`

	EFGPct *float64 `json:"eFG%"`
	TSPct  *float64 `json:"TS%"`
	Usage  *float64 `json:"USG"`
	ORtg   *float64 `json:"ORtg"`
	DRtg   *float64 `json:"DRtg"`
	BPM    *float64 `json:"BPM"`
	OBPM   *float64 `json:"OBPM"`
	DBPM   *float64 `json:"DBPM"`

	Team       string `json:"team"`
	Conference string `json:"conf,omitempty"`
	Source     string `json:"source"`
}

// Stat source tags.
const (
	StatSourceBarttorvik = "barttorvik"
	StatSourceTankathon  = "tankathon"
)

// Prospect is the merged, deduplicated representation of one draft prospect
// after folding every ranking source. Rebuilt from scratch on each merge run.
type Prospect struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`

	PhotoURL string `json:"photoUrl,omitempty"`

	TankathonRank   *int    `json:"tankathonRank"`
	NBADraftNetRank *int    `json:"nbaDraftNetRank"`
	ESPNRank        *int    `json:"espnRank"`
	DraftRoomRank   *int    `json:"draftRoomRank"`
	ConsensusRank   float64 `json:"consensusRank"`

	Position      string     `json:"position"`
	School        string     `json:"currentTeam"`
	LeagueType    LeagueType `json:"leagueType"`
	HeightInches  *float64   `json:"height"`
	HeightDisplay string     `json:"heightDisplay"`
	Weight        *int       `json:"weight"`
	Age           *float64   `json:"age"`
	Year          string     `json:"year"`

	HasCollegeStats       bool `json:"hasCollegeStats"`
	HasInternationalStats bool `json:"hasInternationalStats"`
	HasStats              bool `json:"hasStats"`
	IsInternational       bool `json:"isInternational"`

	Stats *StatLine `json:"stats"`
}

func (p Prospect) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("prospect id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("prospect name is required")
	}
	if p.Slug == "" {
		return fmt.Errorf("prospect slug is required")
	}
	if p.LeagueType != LeagueTypeNCAA && p.LeagueType != LeagueTypeInternational {
		return fmt.Errorf("invalid league type: %s", p.LeagueType)
	}
	if p.ConsensusRank <= 0 {
		return fmt.Errorf("consensus rank must be positive")
	}
	return nil
}

// SourceCounts holds the raw parse counts per ranking source.
type SourceCounts struct {
	Tankathon   int `json:"tankathon"`
	NBADraftNet int `json:"nbaDraftNet"`
	ESPN        int `json:"espn"`
	DraftRoom   int `json:"draftRoom"`
}

// MatchStats aggregates merge diagnostics for one run. Purely informational,
// recomputed every run.
type MatchStats struct {
	Total                  int          `json:"total"`
	Matched                int          `json:"matched"`
	Unmatched              int          `json:"unmatched"`
	International          int          `json:"international"`
	InternationalWithStats int          `json:"internationalWithStats"`
	WithBothSources        int          `json:"withBothSources"`
	TankathonOnly          int          `json:"tankathonOnly"`
	SourceCounts           SourceCounts `json:"sourceCounts"`
}

// Snapshot is the serializable output of one full merge run.
type Snapshot struct {
	Players    []Prospect `json:"players"`
	MatchStats MatchStats `json:"matchStats"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// PlayerID derives the stable board identifier for a slug.
func PlayerID(slug string) string {
	return "player_" + strings.TrimSpace(slug)
}

// Slugify builds a URL-style slug from a display name. Used when a source
// gives no player URL to take the slug from.
func Slugify(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	return b.String()
}
