package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	ants "github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/hoopboard/draftboard/internal/domain/prospect"
	"github.com/hoopboard/draftboard/internal/parse"
	"github.com/hoopboard/draftboard/internal/platform/logging"
)

// RefreshConfig points the refresh cycle at its sources.
type RefreshConfig struct {
	TankathonURL   string
	NBADraftNetURL string
	ESPNURL        string
	DraftRoomURL   string

	// PlayerPageBaseURL prefixes a slug to form an international player's
	// stats page.
	PlayerPageBaseURL string

	SeasonYear  int
	SnapshotKey string

	// SnapshotRetention caps how many historical snapshots the store keeps
	// after each save.
	SnapshotRetention int

	// PlayerPageConcurrency bounds simultaneous player-page scrapes so a
	// board with many international players does not hammer the scraper.
	PlayerPageConcurrency int
}

func (c RefreshConfig) normalized() RefreshConfig {
	if c.TankathonURL == "" {
		c.TankathonURL = "https://www.tankathon.com/mock_draft"
	}
	if c.NBADraftNetURL == "" {
		c.NBADraftNetURL = "https://www.nbadraft.net/nba-mock-drafts/"
	}
	if c.ESPNURL == "" {
		c.ESPNURL = "https://www.espn.com/nba/draft/news"
	}
	if c.DraftRoomURL == "" {
		c.DraftRoomURL = "https://www.nbadraftroom.com/p/2025-nba-mock-draft"
	}
	if c.PlayerPageBaseURL == "" {
		c.PlayerPageBaseURL = "https://www.tankathon.com/players/"
	}
	if c.SeasonYear <= 0 {
		c.SeasonYear = time.Now().Year()
	}
	if c.SnapshotKey == "" {
		c.SnapshotKey = "draft-data"
	}
	if c.PlayerPageConcurrency <= 0 {
		c.PlayerPageConcurrency = 4
	}
	if c.SnapshotRetention <= 0 {
		c.SnapshotRetention = 30
	}
	return c
}

// RefreshService runs one full update cycle: scrape the four ranking sites,
// pull both stats feeds, merge, persist, and push the result to the edge
// store. Safe to run repeatedly; each run rebuilds the board from scratch.
type RefreshService struct {
	cfg      RefreshConfig
	scraper  PageScraper
	stats    CollegeStatsProvider
	merger   *MergeService
	repo     prospect.Repository
	uploader SnapshotUploader
	logger   *logging.Logger
}

func NewRefreshService(
	cfg RefreshConfig,
	scraper PageScraper,
	stats CollegeStatsProvider,
	merger *MergeService,
	repo prospect.Repository,
	uploader SnapshotUploader,
	logger *logging.Logger,
) *RefreshService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RefreshService{
		cfg:      cfg.normalized(),
		scraper:  scraper,
		stats:    stats,
		merger:   merger,
		repo:     repo,
		uploader: uploader,
		logger:   logger,
	}
}

// Refresh executes one cycle and returns the snapshot it produced. A failed
// secondary-source scrape degrades to an empty markdown; a failed primary
// scrape or stats fetch aborts the run.
func (s *RefreshService) Refresh(ctx context.Context) (prospect.Snapshot, error) {
	return s.RefreshSeason(ctx, s.cfg.SeasonYear)
}

// RefreshSeason runs one cycle against a specific statistics season. A year
// of zero or less falls back to the configured season.
func (s *RefreshService) RefreshSeason(ctx context.Context, year int) (prospect.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "RefreshService.Refresh")
	defer span.End()

	if year <= 0 {
		year = s.cfg.SeasonYear
	}

	started := time.Now()
	s.logger.InfoContext(ctx, "refresh cycle started", "season_year", year)

	markdowns, err := s.scrapeSources(ctx)
	if err != nil {
		return prospect.Snapshot{}, err
	}

	seasons, err := s.stats.FetchSeason(ctx, year)
	if err != nil {
		return prospect.Snapshot{}, fmt.Errorf("fetch college season year=%d: %w", year, err)
	}

	intlStats := s.scrapeInternationalStats(ctx, markdowns.tankathon)

	snapshot, err := s.merger.Merge(ctx, MergeInput{
		TankathonMarkdown:   markdowns.tankathon,
		NBADraftNetMarkdown: markdowns.nbaDraftNet,
		ESPNMarkdown:        markdowns.espn,
		DraftRoomMarkdown:   markdowns.draftRoom,
		CollegeSeasons:      seasons,
		InternationalStats:  intlStats,
	})
	if err != nil {
		return prospect.Snapshot{}, err
	}

	if err := s.repo.SaveSnapshot(ctx, snapshot); err != nil {
		return prospect.Snapshot{}, fmt.Errorf("save snapshot: %w", err)
	}
	s.pruneHistory(ctx)

	if s.uploader != nil {
		payload, err := sonic.Marshal(snapshot)
		if err != nil {
			return prospect.Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
		}
		if err := s.uploader.UploadSnapshot(ctx, s.cfg.SnapshotKey, payload); err != nil {
			return prospect.Snapshot{}, fmt.Errorf("upload snapshot key=%s: %w", s.cfg.SnapshotKey, err)
		}
	}

	s.logger.InfoContext(ctx, "refresh cycle finished",
		"players", len(snapshot.Players),
		"duration", time.Since(started).String(),
	)
	return snapshot, nil
}

// pruneHistory trims stored snapshots down to the configured retention.
// Housekeeping only; a prune failure never fails the refresh that ran it.
func (s *RefreshService) pruneHistory(ctx context.Context) {
	pruner, ok := s.repo.(SnapshotPruner)
	if !ok {
		return
	}
	pruned, err := pruner.PruneSnapshots(ctx, s.cfg.SnapshotRetention)
	if err != nil {
		s.logger.WarnContext(ctx, "prune old snapshots failed", "error", err)
		return
	}
	if pruned > 0 {
		s.logger.InfoContext(ctx, "pruned old snapshots",
			"pruned", pruned, "kept", s.cfg.SnapshotRetention)
	}
}

type sourceMarkdowns struct {
	tankathon   string
	nbaDraftNet string
	espn        string
	draftRoom   string
}

// scrapeSources pulls the four ranking pages concurrently over a small worker
// pool. Only the primary source is load-bearing.
func (s *RefreshService) scrapeSources(ctx context.Context) (sourceMarkdowns, error) {
	type target struct {
		name string
		url  string
		dest *string
	}

	var out sourceMarkdowns
	targets := []target{
		{parse.SourceTankathon, s.cfg.TankathonURL, &out.tankathon},
		{parse.SourceNBADraftNet, s.cfg.NBADraftNetURL, &out.nbaDraftNet},
		{parse.SourceESPN, s.cfg.ESPNURL, &out.espn},
		{parse.SourceDraftRoom, s.cfg.DraftRoomURL, &out.draftRoom},
	}

	workers, err := ants.NewPool(len(targets))
	if err != nil {
		return sourceMarkdowns{}, fmt.Errorf("start scrape pool: %w", err)
	}
	defer workers.Release()

	errs := make([]error, len(targets))
	var wg sync.WaitGroup
	for i := range targets {
		i := i
		wg.Add(1)
		submitErr := workers.Submit(func() {
			defer wg.Done()
			markdown, scrapeErr := s.scraper.ScrapeMarkdown(ctx, targets[i].url)
			if scrapeErr != nil {
				errs[i] = scrapeErr
				return
			}
			*targets[i].dest = markdown
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = submitErr
		}
	}
	wg.Wait()

	for i, t := range targets {
		if errs[i] == nil {
			continue
		}
		if t.name == parse.SourceTankathon {
			return sourceMarkdowns{}, fmt.Errorf("scrape primary source: %w", errs[i])
		}
		s.logger.WarnContext(ctx, "secondary source scrape failed, continuing without it",
			"source", t.name, "error", errs[i])
	}
	return out, nil
}

// scrapeInternationalStats pulls the player page of every international
// prospect on the primary board. Failures drop that one player's stats and
// nothing else.
func (s *RefreshService) scrapeInternationalStats(ctx context.Context, tankathonMarkdown string) map[string]*parse.PlayerPageStats {
	records := parse.TankathonParser{}.Parse(tankathonMarkdown)

	slugs := make([]string, 0, 8)
	for _, rec := range records {
		if rec.Year == prospect.YearInternational && rec.Slug != "" {
			slugs = append(slugs, rec.Slug)
		}
	}
	if len(slugs) == 0 {
		return nil
	}

	var mu sync.Mutex
	out := make(map[string]*parse.PlayerPageStats, len(slugs))

	workers := pool.New().WithMaxGoroutines(s.cfg.PlayerPageConcurrency)
	for _, slug := range slugs {
		slug := slug
		workers.Go(func() {
			pageURL := s.cfg.PlayerPageBaseURL + slug
			markdown, err := s.scraper.ScrapeMarkdown(ctx, pageURL)
			if err != nil {
				s.logger.WarnContext(ctx, "player page scrape failed", "slug", slug, "error", err)
				return
			}
			stats := parse.ParsePlayerPageStats(markdown)
			if stats == nil {
				s.logger.WarnContext(ctx, "player page had no per-game stats", "slug", slug)
				return
			}
			mu.Lock()
			out[slug] = stats
			mu.Unlock()
		})
	}
	workers.Wait()

	s.logger.InfoContext(ctx, "scraped international player pages",
		"players", len(slugs), "with_stats", len(out))
	return out
}
