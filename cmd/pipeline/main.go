package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/primera-data/primera/internal/app"
	"github.com/primera-data/primera/internal/config"
	"github.com/primera-data/primera/internal/observability"
	"github.com/primera-data/primera/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pipeline",
		Short:         "La Liga match, stats and news ingestion pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newIngestCmd(), newNewsCmd(), newVerifyCmd(), newResetCmd())
	return root
}

// setup loads .env and config, installs the JSON logger and starts the
// optional observability backends. The returned cleanup flushes all of it.
func setup() (*config.Config, *logging.Logger, func(), error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	logger := logging.NewJSON(cfg.LoggingLevel())
	logging.SetDefault(logger)

	shutdownTrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init uptrace: %w", err)
	}
	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init pyroscope: %w", err)
	}

	cleanup := func() {
		if err := stopProfiler(); err != nil {
			logger.Warn("stop profiler", "error", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTrace(ctx); err != nil {
			logger.Warn("shutdown tracing", "error", err)
		}
		_ = logger.Sync()
	}
	return cfg, logger, cleanup, nil
}

func newIngestCmd() *cobra.Command {
	var seasons []string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest matches, player stats and lineups for one or more seasons",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			application, err := app.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			if len(seasons) == 0 {
				seasons = cfg.Seasons
			}
			for _, season := range seasons {
				summary, err := application.Ingest.IngestSeason(cmd.Context(), season)
				if err != nil {
					return fmt.Errorf("ingest season %s: %w", season, err)
				}
				fmt.Printf("season %s: %d matches, %d stats (%d skipped), %d lineups (%d skipped)\n",
					summary.Season, summary.MatchesIndexed,
					summary.StatsInserted, summary.StatsSkipped,
					summary.LineupsInserted, summary.LineupsSkipped)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&seasons, "seasons", nil, "seasons to ingest (defaults to SEASONS)")
	return cmd
}

func newNewsCmd() *cobra.Command {
	var season string

	cmd := &cobra.Command{
		Use:   "news",
		Short: "Scrape chronicles and attach headlines to stored matches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			application, err := app.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			if season == "" {
				season = cfg.Seasons[0]
			}
			summary, err := application.News.IngestSeason(cmd.Context(), season)
			if err != nil {
				return fmt.Errorf("ingest news %s: %w", season, err)
			}
			fmt.Printf("season %s: %d articles scraped, %d linked, %d stored\n",
				summary.Season, summary.Scraped, summary.Linked, summary.Inserted)
			return nil
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "season to scrape (defaults to first of SEASONS)")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	var season string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Run post-ingest consistency checks for a season",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			application, err := app.New(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer application.Close()

			if season == "" {
				season = cfg.Seasons[0]
			}
			results, err := application.Verify.Run(cmd.Context(), season)
			if err != nil {
				return fmt.Errorf("verify season %s: %w", season, err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			failed := 0
			for _, r := range results {
				status := "PASS"
				if !r.Passed {
					status = "FAIL"
					failed++
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", status, r.Name, r.Detail)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "season to verify (defaults to first of SEASONS)")
	return cmd
}

func newResetCmd() *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop and recreate the pipeline schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, cleanup, err := setup()
			if err != nil {
				return err
			}
			defer cleanup()

			if !assumeYes && !confirmReset(cmd) {
				fmt.Println("aborted")
				return nil
			}

			dir, err := migrationsDir()
			if err != nil {
				return err
			}
			m, err := migrate.New("file://"+filepath.ToSlash(dir), cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("create migrator: %w", err)
			}
			defer m.Close()

			if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("drop schema: %w", err)
			}
			if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
				return fmt.Errorf("recreate schema: %w", err)
			}
			fmt.Println("schema reset")
			return nil
		},
	}
	cmd.Flags().BoolVar(&assumeYes, "yes", false, "skip the confirmation prompt")
	return cmd
}

func confirmReset(cmd *cobra.Command) bool {
	fmt.Print("this drops every pipeline table and its data; type 'yes' to continue: ")
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == "yes"
}

func migrationsDir() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		"./db/migrations",
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, ./db/migrations)")
}
