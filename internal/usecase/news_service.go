package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/primera-data/primera/internal/domain/match"
	"github.com/primera-data/primera/internal/domain/news"
	"github.com/primera-data/primera/internal/linkage"
	"github.com/primera-data/primera/internal/platform/logging"
)

type newsScraper interface {
	Season(ctx context.Context, season string) ([]news.Article, error)
}

type NewsSummary struct {
	Season   string
	Scraped  int
	Linked   int
	Inserted int
}

// NewsIngestionService scrapes a season's chronicles and attaches each one
// to a stored match. Articles that cannot be attributed to exactly one
// fixture are dropped; a headline pointing at the wrong match is worse
// than a missing headline.
type NewsIngestionService struct {
	scraper   newsScraper
	matchRepo match.Repository
	newsRepo  news.Repository
	linker    *linkage.NewsLinker
	logger    *logging.Logger
}

func NewNewsIngestionService(
	scraper newsScraper,
	matchRepo match.Repository,
	newsRepo news.Repository,
	linker *linkage.NewsLinker,
	logger *logging.Logger,
) *NewsIngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &NewsIngestionService{
		scraper:   scraper,
		matchRepo: matchRepo,
		newsRepo:  newsRepo,
		linker:    linker,
		logger:    logger,
	}
}

func (s *NewsIngestionService) IngestSeason(ctx context.Context, season string) (NewsSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NewsIngestionService.IngestSeason")
	defer span.End()

	season = strings.TrimSpace(season)
	if season == "" {
		return NewsSummary{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	summary := NewsSummary{Season: season}

	articles, err := s.scraper.Season(ctx, season)
	if err != nil {
		return summary, fmt.Errorf("%w: news scraper: %v", ErrDependencyUnavailable, err)
	}
	summary.Scraped = len(articles)

	seasonMatches, err := s.matchRepo.ListBySeason(ctx, season)
	if err != nil {
		return summary, fmt.Errorf("list matches: %w", err)
	}
	if len(seasonMatches) == 0 {
		return summary, fmt.Errorf("%w: no matches stored for season %s", ErrNotFound, season)
	}

	headlines := make([]news.Headline, 0, len(articles))
	for _, article := range articles {
		matchID, ok := s.linker.Link(article, seasonMatches)
		if !ok {
			continue
		}
		headlines = append(headlines, news.Headline{
			MatchID:   matchID,
			URL:       article.URL,
			Headline:  article.Headline,
			Subheader: article.Subheader,
		})
	}
	summary.Linked = len(headlines)

	if len(headlines) > 0 {
		inserted, err := s.newsRepo.UpsertHeadlines(ctx, headlines)
		if err != nil {
			return summary, fmt.Errorf("upsert headlines: %w", err)
		}
		summary.Inserted = inserted
	}

	s.logger.InfoContext(ctx, "news ingested",
		"season", season,
		"scraped", summary.Scraped,
		"linked", summary.Linked,
		"inserted", summary.Inserted)
	return summary, nil
}
