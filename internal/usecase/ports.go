package usecase

import "context"

// CollegeStatsProvider fetches one season of college advanced stats.
type CollegeStatsProvider interface {
	FetchSeason(ctx context.Context, year int) ([]ExternalCollegeSeason, error)
}

// PageScraper turns a public web page into markdown.
type PageScraper interface {
	ScrapeMarkdown(ctx context.Context, url string) (string, error)
}

// SnapshotUploader pushes the merged board to the edge store the site reads.
type SnapshotUploader interface {
	UploadSnapshot(ctx context.Context, key string, payload []byte) error
}

// SnapshotPruner is implemented by snapshot stores that keep history. The
// refresh cycle prunes after every successful save; stores without history
// simply do not implement it.
type SnapshotPruner interface {
	PruneSnapshots(ctx context.Context, keep int) (int64, error)
}

// ExternalCollegeSeason is one player's season line as the stats provider
// publishes it. Counting stats from the provider mix units: PTS, AST, TRB,
// ORB, DRB, STL, BLK and minutes are per-game already, while the made and
// attempted shot counts are season totals. Pointer fields stay nil when the
// provider had no value.
type ExternalCollegeSeason struct {
	PlayerName string
	Team       string
	Conference string

	GamesPlayed *float64
	MinutesPct  *float64
	Points      *float64

	TwoPM   *float64
	TwoPA   *float64
	TwoPPct *float64

	ThreePM   *float64
	ThreePA   *float64
	ThreePPct *float64

	FTM   *float64
	FTA   *float64
	FTPct *float64

	OffensiveRebounds *float64
	DefensiveRebounds *float64
	TotalRebounds     *float64
	Assists           *float64
	Steals            *float64
	Blocks            *float64

	EFGPct *float64
	TSPct  *float64
	Usage  *float64
	ORtg   *float64
	DRtg   *float64
	BPM    *float64
	OBPM   *float64
	DBPM   *float64
}
