package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/hoopboard/draftboard/internal/domain/prospect"
	"github.com/hoopboard/draftboard/internal/match"
	"github.com/hoopboard/draftboard/internal/parse"
	"github.com/hoopboard/draftboard/internal/platform/logging"
)

// ImageConfig resolves a prospect slug to the photo path the site serves.
// SlugAliases patches slugs whose image was stored under a different name;
// PNGSlugs lists images stored as png instead of the default jpg.
type ImageConfig struct {
	BasePath    string
	SlugAliases map[string]string
	PNGSlugs    map[string]struct{}
}

// DefaultImageConfig carries the curated image tables: slugs whose photo was
// stored under a different name, and the two images stored as png.
func DefaultImageConfig() ImageConfig {
	return ImageConfig{
		BasePath: "/players",
		SlugAliases: map[string]string{
			"patrick-ngongba-ii": "patrick-ngongba",
			"darius-acuff":       "darius-acuff-jr",
			"sergio-de-larrea":   "sergio-de-larrea-asenjo",
			"jojo-tugler":        "joseph-tugler",
			"johann-grunloh":     "johann-gruenloh",
		},
		PNGSlugs: map[string]struct{}{
			"dame-sarr":   {},
			"karim-lopez": {},
		},
	}
}

func (c ImageConfig) PhotoURL(slug string) string {
	if slug == "" {
		return ""
	}
	imageSlug := slug
	if alias, ok := c.SlugAliases[slug]; ok {
		imageSlug = alias
	}
	base := c.BasePath
	if base == "" {
		base = "/players"
	}
	ext := "jpg"
	if _, ok := c.PNGSlugs[imageSlug]; ok {
		ext = "png"
	}
	return fmt.Sprintf("%s/%s.%s", base, imageSlug, ext)
}

// MergeInput carries one refresh cycle's raw material: the four ranking-site
// markdown exports plus both stats feeds. Secondary markdowns may be empty;
// the primary source must parse to at least one player.
type MergeInput struct {
	TankathonMarkdown   string
	NBADraftNetMarkdown string
	ESPNMarkdown        string
	DraftRoomMarkdown   string

	CollegeSeasons     []ExternalCollegeSeason
	InternationalStats map[string]*parse.PlayerPageStats
}

// MergeService folds the ranking sources into one deduplicated board and
// attaches statistics. The output is rebuilt from scratch on every call;
// nothing is carried over between runs.
type MergeService struct {
	logger  *logging.Logger
	matcher *match.StatsMatcher
	images  ImageConfig
	now     func() time.Time

	tankathon   parse.Parser
	nbaDraftNet parse.Parser
	espn        parse.Parser
	draftRoom   parse.Parser
}

func NewMergeService(matcherCfg match.MatcherConfig, images ImageConfig, logger *logging.Logger) *MergeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MergeService{
		logger:      logger,
		matcher:     match.NewStatsMatcher(matcherCfg),
		images:      images,
		now:         time.Now,
		tankathon:   parse.TankathonParser{},
		nbaDraftNet: parse.NBADraftNetParser{},
		espn:        parse.ESPNParser{},
		draftRoom:   parse.DraftRoomParser{},
	}
}

// boardEntry is one player while sources are still being folded.
type boardEntry struct {
	name            string
	slug            string
	tankathonRank   *int
	nbaDraftNetRank *int
	espnRank        *int
	draftRoomRank   *int
	position        string
	school          string
	heightDisplay   string
	heightInches    *float64
	weight          *int
	year            string
	age             *float64
}

// Merge parses all sources, folds them by normalized name and returns the
// finished snapshot. The board roster is defined by the primary source:
// players only the secondary boards rank contribute nothing to the output.
func (s *MergeService) Merge(ctx context.Context, input MergeInput) (prospect.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "MergeService.Merge")
	defer span.End()

	tankathonRecords := s.tankathon.Parse(input.TankathonMarkdown)
	if len(tankathonRecords) == 0 {
		return prospect.Snapshot{}, fmt.Errorf("%w: tankathon markdown parsed to zero players", ErrSourceEmpty)
	}
	nbaDraftNetRecords := s.nbaDraftNet.Parse(input.NBADraftNetMarkdown)
	espnRecords := s.espn.Parse(input.ESPNMarkdown)
	draftRoomRecords := s.draftRoom.Parse(input.DraftRoomMarkdown)

	index := match.NewIndex()
	entries := make(map[string]*boardEntry, len(tankathonRecords)*2)
	order := make([]string, 0, len(tankathonRecords))

	for i := range tankathonRecords {
		rec := tankathonRecords[i]
		key := index.Add(rec.Name)
		if key == "" {
			continue
		}
		if _, dup := entries[key]; dup {
			continue
		}
		rank := rec.Rank
		entries[key] = &boardEntry{
			name:          rec.Name,
			slug:          rec.Slug,
			tankathonRank: &rank,
			position:      rec.Position,
			school:        rec.School,
			heightDisplay: rec.HeightDisplay,
			heightInches:  rec.HeightInches,
			weight:        rec.Weight,
			year:          rec.Year,
			age:           rec.Age,
		}
		order = append(order, key)
	}

	s.foldSource(index, entries, nbaDraftNetRecords, func(e *boardEntry, rank *int) {
		if e.nbaDraftNetRank == nil {
			e.nbaDraftNetRank = rank
		}
	})
	s.foldSource(index, entries, espnRecords, func(e *boardEntry, rank *int) {
		if e.espnRank == nil {
			e.espnRank = rank
		}
	})
	s.foldSource(index, entries, draftRoomRecords, func(e *boardEntry, rank *int) {
		if e.draftRoomRank == nil {
			e.draftRoomRank = rank
		}
	})

	candidates := make([]match.Candidate, 0, len(input.CollegeSeasons))
	for i := range input.CollegeSeasons {
		candidates = append(candidates, match.Candidate{
			Pos:  i,
			Name: input.CollegeSeasons[i].PlayerName,
			Team: input.CollegeSeasons[i].Team,
		})
	}

	stats := prospect.MatchStats{
		SourceCounts: prospect.SourceCounts{
			Tankathon:   len(tankathonRecords),
			NBADraftNet: len(nbaDraftNetRecords),
			ESPN:        len(espnRecords),
			DraftRoom:   len(draftRoomRecords),
		},
	}

	players := make([]prospect.Prospect, 0, len(order))
	for _, key := range order {
		entry := entries[key]
		isInternational := entry.year == prospect.YearInternational

		player := prospect.Prospect{
			ID:              prospect.PlayerID(entry.slug),
			Name:            entry.name,
			Slug:            entry.slug,
			PhotoURL:        s.images.PhotoURL(entry.slug),
			TankathonRank:   entry.tankathonRank,
			NBADraftNetRank: entry.nbaDraftNetRank,
			ESPNRank:        entry.espnRank,
			DraftRoomRank:   entry.draftRoomRank,
			ConsensusRank:   consensusRank(entry.tankathonRank, entry.nbaDraftNetRank, entry.espnRank, entry.draftRoomRank),
			Position:        entry.position,
			School:          entry.school,
			LeagueType:      prospect.LeagueTypeNCAA,
			HeightInches:    entry.heightInches,
			HeightDisplay:   entry.heightDisplay,
			Weight:          entry.weight,
			Age:             entry.age,
			Year:            entry.year,
			IsInternational: isInternational,
		}
		if player.Year == "" {
			player.Year = "Unknown"
		}
		if isInternational {
			player.LeagueType = prospect.LeagueTypeInternational
		}

		if pos, ok := s.matcher.Find(entry.name, entry.school, candidates); ok {
			stats.Matched++
			player.HasCollegeStats = true
			player.Stats = mapCollegeStats(input.CollegeSeasons[pos])
		} else if isInternational {
			stats.International++
			if intl := input.InternationalStats[entry.slug]; intl != nil {
				stats.InternationalWithStats++
				player.HasInternationalStats = true
				player.Stats = mapInternationalStats(intl)
			}
		} else {
			stats.Unmatched++
		}
		player.HasStats = player.Stats != nil

		if entry.nbaDraftNetRank != nil || entry.espnRank != nil || entry.draftRoomRank != nil {
			stats.WithBothSources++
		} else {
			stats.TankathonOnly++
		}

		players = append(players, player)
	}

	sort.SliceStable(players, func(i, j int) bool {
		if players[i].ConsensusRank != players[j].ConsensusRank {
			return players[i].ConsensusRank < players[j].ConsensusRank
		}
		return derefRank(players[i].TankathonRank) < derefRank(players[j].TankathonRank)
	})

	stats.Total = len(players)

	s.logger.InfoContext(ctx, "merged draft board",
		"players", stats.Total,
		"matched", stats.Matched,
		"unmatched", stats.Unmatched,
		"international", stats.International,
		"international_with_stats", stats.InternationalWithStats,
	)

	return prospect.Snapshot{
		Players:    players,
		MatchStats: stats,
		UpdatedAt:  s.now().UTC(),
	}, nil
}

// foldSource attaches a secondary board's ranks to existing entries where the
// name resolves, and registers the remainder so later sources can still
// land on them. Entries minted here carry no primary rank and are dropped
// from the final board.
func (s *MergeService) foldSource(index *match.Index, entries map[string]*boardEntry, records []prospect.SourceRecord, assign func(*boardEntry, *int)) {
	for i := range records {
		rec := records[i]
		rank := rec.Rank

		if key, ok := index.Resolve(rec.Name); ok {
			if entry := entries[key]; entry != nil {
				assign(entry, &rank)
			}
			continue
		}

		key := index.Add(rec.Name)
		if key == "" {
			continue
		}
		slug := rec.Slug
		if slug == "" {
			slug = prospect.Slugify(rec.Name)
		}
		entry := &boardEntry{
			name:          rec.Name,
			slug:          slug,
			position:      rec.Position,
			school:        rec.School,
			heightDisplay: rec.HeightDisplay,
			heightInches:  rec.HeightInches,
			weight:        rec.Weight,
			year:          rec.Year,
			age:           rec.Age,
		}
		assign(entry, &rank)
		entries[key] = entry
	}
}

// consensusRank averages the positive ranks across sources to one decimal.
// With no positive rank anywhere the sentinel marks the player unranked.
func consensusRank(ranks ...*int) float64 {
	sum := 0
	count := 0
	for _, r := range ranks {
		if r != nil && *r > 0 {
			sum += *r
			count++
		}
	}
	if count == 0 {
		return prospect.UnrankedConsensus
	}
	avg := float64(sum) / float64(count)
	return math.Round(avg*10) / 10
}

func derefRank(r *int) int {
	if r == nil {
		return int(prospect.UnrankedConsensus)
	}
	return *r
}
