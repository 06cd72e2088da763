package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc"

	"github.com/primera-data/primera/internal/domain/lineup"
	"github.com/primera-data/primera/internal/domain/match"
	"github.com/primera-data/primera/internal/domain/playerstat"
	"github.com/primera-data/primera/internal/linkage"
	"github.com/primera-data/primera/internal/platform/logging"
)

type statsProvider interface {
	Fixtures(ctx context.Context, season string) ([]linkage.MatchRow, error)
	PlayerStats(ctx context.Context, season string) ([]linkage.PlayerRow, error)
}

type tacticsProvider interface {
	Lineups(ctx context.Context, season string) ([]linkage.LineupRow, error)
}

// IngestSummary reports what one season pass did, phase by phase.
type IngestSummary struct {
	Season          string
	MatchesInserted int
	MatchesIndexed  int
	StatsInserted   int
	StatsSkipped    int
	LineupsInserted int
	LineupsSkipped  int
}

// SeasonIngestionService drives the full season pipeline: extract from both
// providers, persist matches, rebuild the key index from the persisted rows
// and link stats and lineups against it. Each phase commits independently so
// a later failure never rolls back persisted matches.
type SeasonIngestionService struct {
	stats   statsProvider
	tactics tacticsProvider

	matchRepo  match.Repository
	statRepo   playerstat.Repository
	lineupRepo lineup.Repository

	keys          *linkage.KeyBuilder
	statsLinker   *linkage.StatsLinker
	tacticsLinker *linkage.TacticsLinker
	logger        *logging.Logger
}

func NewSeasonIngestionService(
	stats statsProvider,
	tactics tacticsProvider,
	matchRepo match.Repository,
	statRepo playerstat.Repository,
	lineupRepo lineup.Repository,
	keys *linkage.KeyBuilder,
	logger *logging.Logger,
) *SeasonIngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SeasonIngestionService{
		stats:         stats,
		tactics:       tactics,
		matchRepo:     matchRepo,
		statRepo:      statRepo,
		lineupRepo:    lineupRepo,
		keys:          keys,
		statsLinker:   linkage.NewStatsLinker(keys),
		tacticsLinker: linkage.NewTacticsLinker(keys),
		logger:        logger,
	}
}

// IngestSeason runs one season end to end. Provider extraction runs in
// parallel; linking and persistence stay sequential because the index must
// be built from persisted match IDs first.
func (s *SeasonIngestionService) IngestSeason(ctx context.Context, season string) (IngestSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonIngestionService.IngestSeason")
	defer span.End()

	season = strings.TrimSpace(season)
	if season == "" {
		return IngestSummary{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	summary := IngestSummary{Season: season}

	var (
		fixtureRows []linkage.MatchRow
		playerRows  []linkage.PlayerRow
		lineupRows  []linkage.LineupRow
		statsErr    error
		tacticsErr  error
	)
	var wg conc.WaitGroup
	wg.Go(func() {
		fixtureRows, statsErr = s.stats.Fixtures(ctx, season)
		if statsErr != nil {
			return
		}
		playerRows, statsErr = s.stats.PlayerStats(ctx, season)
	})
	wg.Go(func() {
		lineupRows, tacticsErr = s.tactics.Lineups(ctx, season)
	})
	wg.Wait()

	if statsErr != nil {
		return summary, fmt.Errorf("%w: stats provider: %v", ErrDependencyUnavailable, statsErr)
	}
	if tacticsErr != nil {
		return summary, fmt.Errorf("%w: tactics provider: %v", ErrDependencyUnavailable, tacticsErr)
	}
	s.logger.InfoContext(ctx, "extraction finished",
		"season", season,
		"fixture_rows", len(fixtureRows),
		"player_rows", len(playerRows),
		"lineup_rows", len(lineupRows))

	matches := linkage.MatchesFromRows(s.keys.Normalizer(), season, fixtureRows)
	inserted, err := s.matchRepo.UpsertMatches(ctx, matches)
	if err != nil {
		return summary, fmt.Errorf("upsert matches: %w", err)
	}
	summary.MatchesInserted = inserted

	// The index must be built from persisted rows: linking needs the
	// database IDs, and a re-run must see matches from earlier runs.
	persisted, err := s.matchRepo.ListBySeason(ctx, season)
	if err != nil {
		return summary, fmt.Errorf("list matches: %w", err)
	}
	summary.MatchesIndexed = len(persisted)
	idx := linkage.BuildIndex(s.keys, persisted)

	stats, statReport := s.statsLinker.Link(season, playerRows, fixtureRows, idx)
	if statReport.Skipped > 0 {
		s.logger.WarnContext(ctx, "player rows skipped",
			"season", season,
			"skipped", statReport.Skipped,
			"sample_keys", statReport.SkippedKeys)
	}
	insertedStats, err := s.statRepo.InsertStats(ctx, stats)
	if err != nil {
		return summary, fmt.Errorf("insert player stats: %w", err)
	}
	summary.StatsInserted = insertedStats
	summary.StatsSkipped = statReport.Skipped

	entries, lineupReport := s.tacticsLinker.Link(season, lineupRows, fixtureRows, idx)
	if lineupReport.Skipped > 0 {
		s.logger.WarnContext(ctx, "lineup fixtures skipped",
			"season", season,
			"skipped", lineupReport.Skipped,
			"sample_keys", lineupReport.SkippedKeys)
	}
	insertedEntries, err := s.lineupRepo.InsertEntries(ctx, entries)
	if err != nil {
		return summary, fmt.Errorf("insert lineups: %w", err)
	}
	summary.LineupsInserted = insertedEntries
	summary.LineupsSkipped = lineupReport.Skipped

	s.logger.InfoContext(ctx, "season ingested",
		"season", season,
		"matches_inserted", summary.MatchesInserted,
		"matches_indexed", summary.MatchesIndexed,
		"stats_inserted", summary.StatsInserted,
		"stats_skipped", summary.StatsSkipped,
		"lineups_inserted", summary.LineupsInserted,
		"lineups_skipped", summary.LineupsSkipped)
	return summary, nil
}
