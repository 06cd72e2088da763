package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/primera-data/primera/internal/domain/lineup"
	"github.com/primera-data/primera/internal/domain/match"
	"github.com/primera-data/primera/internal/domain/news"
	"github.com/primera-data/primera/internal/domain/playerstat"
	"github.com/primera-data/primera/internal/platform/logging"
)

// SeasonMatchCount is the full round-robin volume: 20 teams, home and away.
const SeasonMatchCount = 380

type CheckResult struct {
	Name   string
	Passed bool
	Detail string
}

// VerificationService runs the post-ingest consistency checks. The checks
// are independent read-only queries, so they run on a worker pool.
type VerificationService struct {
	matchRepo  match.Repository
	statRepo   playerstat.Repository
	lineupRepo lineup.Repository
	newsRepo   news.Repository
	workers    int
	logger     *logging.Logger
}

func NewVerificationService(
	matchRepo match.Repository,
	statRepo playerstat.Repository,
	lineupRepo lineup.Repository,
	newsRepo news.Repository,
	workers int,
	logger *logging.Logger,
) *VerificationService {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &VerificationService{
		matchRepo:  matchRepo,
		statRepo:   statRepo,
		lineupRepo: lineupRepo,
		newsRepo:   newsRepo,
		workers:    workers,
		logger:     logger,
	}
}

func (s *VerificationService) Run(ctx context.Context, season string) ([]CheckResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VerificationService.Run")
	defer span.End()

	season = strings.TrimSpace(season)
	if season == "" {
		return nil, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	seasonMatches, err := s.matchRepo.ListBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	matchIDs := make([]int64, 0, len(seasonMatches))
	for _, m := range seasonMatches {
		matchIDs = append(matchIDs, m.ID)
	}

	checks := []struct {
		name string
		run  func(context.Context) (bool, string, error)
	}{
		{"match volume", func(ctx context.Context) (bool, string, error) {
			count, err := s.matchRepo.CountBySeason(ctx, season)
			if err != nil {
				return false, "", err
			}
			return count == SeasonMatchCount,
				fmt.Sprintf("%d of %d matches stored", count, SeasonMatchCount), nil
		}},
		{"stats coverage", func(ctx context.Context) (bool, string, error) {
			ghosts, err := s.matchRepo.CountWithoutStats(ctx, season)
			if err != nil {
				return false, "", err
			}
			total, err := s.statRepo.CountByMatchIDs(ctx, matchIDs)
			if err != nil {
				return false, "", err
			}
			return ghosts == 0,
				fmt.Sprintf("%d stat rows, %d matches without stats", total, ghosts), nil
		}},
		{"lineup coverage", func(ctx context.Context) (bool, string, error) {
			ghosts, err := s.matchRepo.CountWithoutLineups(ctx, season)
			if err != nil {
				return false, "", err
			}
			total, err := s.lineupRepo.CountByMatchIDs(ctx, matchIDs)
			if err != nil {
				return false, "", err
			}
			return ghosts == 0,
				fmt.Sprintf("%d lineup rows, %d matches without lineups", total, ghosts), nil
		}},
		{"orphan stats", func(ctx context.Context) (bool, string, error) {
			orphans, err := s.statRepo.CountOrphans(ctx)
			if err != nil {
				return false, "", err
			}
			return orphans == 0, fmt.Sprintf("%d stat rows reference no stored match", orphans), nil
		}},
		{"orphan lineups", func(ctx context.Context) (bool, string, error) {
			orphans, err := s.lineupRepo.CountOrphans(ctx)
			if err != nil {
				return false, "", err
			}
			return orphans == 0, fmt.Sprintf("%d lineup rows reference no stored match", orphans), nil
		}},
		{"orphan headlines", func(ctx context.Context) (bool, string, error) {
			orphans, err := s.newsRepo.CountOrphans(ctx)
			if err != nil {
				return false, "", err
			}
			return orphans == 0, fmt.Sprintf("%d headlines reference no stored match", orphans), nil
		}},
		{"duplicate stats", func(ctx context.Context) (bool, string, error) {
			dupes, err := s.statRepo.CountDuplicates(ctx, matchIDs)
			if err != nil {
				return false, "", err
			}
			return dupes == 0, fmt.Sprintf("%d duplicated (match, team, player) rows", dupes), nil
		}},
		{"duplicate lineups", func(ctx context.Context) (bool, string, error) {
			dupes, err := s.lineupRepo.CountDuplicates(ctx, matchIDs)
			if err != nil {
				return false, "", err
			}
			return dupes == 0, fmt.Sprintf("%d duplicated (match, team, player) rows", dupes), nil
		}},
		{"headline links", func(ctx context.Context) (bool, string, error) {
			count, err := s.newsRepo.CountBySeason(ctx, season)
			if err != nil {
				return false, "", err
			}
			return true, fmt.Sprintf("%d headlines linked", count), nil
		}},
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("verification pool: %w", err)
	}
	defer pool.Release()

	results := make([]CheckResult, len(checks))
	var wg sync.WaitGroup
	for i, check := range checks {
		i, check := i, check
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			passed, detail, err := check.run(ctx)
			if err != nil {
				results[i] = CheckResult{Name: check.name, Passed: false, Detail: err.Error()}
				return
			}
			results[i] = CheckResult{Name: check.name, Passed: passed, Detail: detail}
		})
		if submitErr != nil {
			wg.Done()
			results[i] = CheckResult{Name: check.name, Passed: false, Detail: submitErr.Error()}
		}
	}
	wg.Wait()

	for _, r := range results {
		if r.Passed {
			s.logger.InfoContext(ctx, "check passed", "check", r.Name, "detail", r.Detail)
			continue
		}
		s.logger.WarnContext(ctx, "check failed", "check", r.Name, "detail", r.Detail)
	}
	return results, nil
}
