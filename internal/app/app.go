package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/primera-data/primera/internal/config"
	"github.com/primera-data/primera/internal/infrastructure/repository/postgres"
	"github.com/primera-data/primera/internal/linkage"
	"github.com/primera-data/primera/internal/platform/logging"
	"github.com/primera-data/primera/internal/source/diario"
	"github.com/primera-data/primera/internal/source/espn"
	"github.com/primera-data/primera/internal/source/understat"
	"github.com/primera-data/primera/internal/usecase"
)

// Application wires the pipeline services against postgres and the three
// external sources.
type Application struct {
	Config *config.Config
	Logger *logging.Logger
	DB     *sqlx.DB

	Ingest *usecase.SeasonIngestionService
	News   *usecase.NewsIngestionService
	Verify *usecase.VerificationService
}

func New(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := otelsqlx.Open("postgres", cfg.DatabaseURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)

	keys := linkage.NewKeyBuilder(
		linkage.NewNormalizer(linkage.DefaultCorrections()),
		linkage.DefaultAnomalies(),
	)

	matchRepo := postgres.NewMatchRepository(db)
	statRepo := postgres.NewStatRepository(db)
	lineupRepo := postgres.NewLineupRepository(db)
	newsRepo := postgres.NewNewsRepository(db)

	statsClient := understat.NewClient(cfg.UnderstatBaseURL, cfg.HTTPTimeout)
	tacticsClient := espn.NewClient(cfg.ESPNBaseURL, cfg.HTTPTimeout, keys.Normalizer())
	scraper := diario.NewScraper(diario.ScraperConfig{
		BaseURL:    cfg.DiarioBaseURL,
		Timeout:    cfg.HTTPTimeout,
		RatePerSec: cfg.ScrapeRatePerSec,
		Burst:      cfg.ScrapeBurst,
		Logger:     logger,
	})

	return &Application{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Ingest: usecase.NewSeasonIngestionService(
			statsClient, tacticsClient, matchRepo, statRepo, lineupRepo, keys, logger),
		News: usecase.NewNewsIngestionService(
			scraper, matchRepo, newsRepo,
			linkage.NewNewsLinker(linkage.DefaultStopWords()), logger),
		Verify: usecase.NewVerificationService(
			matchRepo, statRepo, lineupRepo, newsRepo, cfg.VerifyWorkerCount, logger),
	}, nil
}

func (a *Application) Close() error {
	return a.DB.Close()
}
