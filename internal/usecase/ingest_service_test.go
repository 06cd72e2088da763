package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/primera-data/primera/internal/infrastructure/repository/memory"
	"github.com/primera-data/primera/internal/linkage"
)

type fakeStatsProvider struct {
	fixtures []linkage.MatchRow
	players  []linkage.PlayerRow
	err      error
}

func (f *fakeStatsProvider) Fixtures(_ context.Context, _ string) ([]linkage.MatchRow, error) {
	return f.fixtures, f.err
}

func (f *fakeStatsProvider) PlayerStats(_ context.Context, _ string) ([]linkage.PlayerRow, error) {
	return f.players, f.err
}

type fakeTacticsProvider struct {
	rows []linkage.LineupRow
	err  error
}

func (f *fakeTacticsProvider) Lineups(_ context.Context, _ string) ([]linkage.LineupRow, error) {
	return f.rows, f.err
}

func testKeys() *linkage.KeyBuilder {
	return linkage.NewKeyBuilder(
		linkage.NewNormalizer(linkage.DefaultCorrections()),
		linkage.DefaultAnomalies(),
	)
}

// fullSeason generates a complete double round-robin: 20 teams, 380
// fixtures, two player rows and two lineup rows per fixture.
func fullSeason() (*fakeStatsProvider, *fakeTacticsProvider) {
	teams := make([]string, 20)
	for i := range teams {
		teams[i] = fmt.Sprintf("Team%02d", i+1)
	}

	stats := &fakeStatsProvider{}
	tactics := &fakeTacticsProvider{}
	providerID := int64(0)
	day := 0
	for i, home := range teams {
		for j, away := range teams {
			if i == j {
				continue
			}
			providerID++
			day++
			date := fmt.Sprintf("2023-%03d", day)

			stats.fixtures = append(stats.fixtures, linkage.MatchRow{
				ProviderID: providerID,
				Date:       date,
				HomeTeam:   home,
				AwayTeam:   away,
				HomeGoals:  "1",
				AwayGoals:  "0",
				HomeXG:     "1.2",
				AwayXG:     "0.7",
			})
			for side, team := range map[string]string{"H": home, "A": away} {
				stats.players = append(stats.players, linkage.PlayerRow{
					ProviderID: providerID,
					Team:       team,
					PlayerName: fmt.Sprintf("%s player %s", team, side),
					Minutes:    "90",
				})
				tactics.rows = append(tactics.rows, linkage.LineupRow{
					Date:     date,
					Team:     team,
					Player:   fmt.Sprintf("%s starter %s", team, side),
					Position: "Midfielder",
				})
			}
		}
	}
	return stats, tactics
}

func TestSeasonIngestionService_FullSeason(t *testing.T) {
	stats, tactics := fullSeason()
	store := memory.NewStore()
	svc := NewSeasonIngestionService(
		stats, tactics,
		memory.NewMatchRepository(store),
		memory.NewStatRepository(store),
		memory.NewLineupRepository(store),
		testKeys(), nil,
	)

	summary, err := svc.IngestSeason(context.Background(), "2023")
	if err != nil {
		t.Fatalf("IngestSeason: %v", err)
	}

	if summary.MatchesInserted != 380 {
		t.Fatalf("expected 380 matches inserted, got %d", summary.MatchesInserted)
	}
	if summary.MatchesIndexed != 380 {
		t.Fatalf("expected 380 matches indexed, got %d", summary.MatchesIndexed)
	}
	if summary.StatsInserted != 760 || summary.StatsSkipped != 0 {
		t.Fatalf("unexpected stats counts: %+v", summary)
	}
	if summary.LineupsInserted != 760 || summary.LineupsSkipped != 0 {
		t.Fatalf("unexpected lineup counts: %+v", summary)
	}
}

func TestSeasonIngestionService_ReRunIsIdempotentForKeyedTables(t *testing.T) {
	stats, tactics := fullSeason()
	store := memory.NewStore()
	svc := NewSeasonIngestionService(
		stats, tactics,
		memory.NewMatchRepository(store),
		memory.NewStatRepository(store),
		memory.NewLineupRepository(store),
		testKeys(), nil,
	)

	if _, err := svc.IngestSeason(context.Background(), "2023"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	summary, err := svc.IngestSeason(context.Background(), "2023")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if summary.MatchesInserted != 0 {
		t.Fatalf("re-run must not insert matches, got %d", summary.MatchesInserted)
	}
	if summary.StatsInserted != 0 {
		t.Fatalf("re-run must not insert stats, got %d", summary.StatsInserted)
	}
	if summary.MatchesIndexed != 380 {
		t.Fatalf("re-run must still index 380 matches, got %d", summary.MatchesIndexed)
	}
}

func TestSeasonIngestionService_UnresolvablePlayerRowsAreCounted(t *testing.T) {
	stats := &fakeStatsProvider{
		fixtures: []linkage.MatchRow{
			{ProviderID: 1, Date: "2023-08-11", HomeTeam: "Sevilla", AwayTeam: "Valencia", HomeGoals: "2", AwayGoals: "1"},
		},
		players: []linkage.PlayerRow{
			{ProviderID: 1, Team: "Sevilla", PlayerName: "Ocampos", Minutes: "90"},
			{ProviderID: 999, Team: "Getafe", PlayerName: "Mayoral", Minutes: "90"},
		},
	}
	store := memory.NewStore()
	svc := NewSeasonIngestionService(
		stats, &fakeTacticsProvider{},
		memory.NewMatchRepository(store),
		memory.NewStatRepository(store),
		memory.NewLineupRepository(store),
		testKeys(), nil,
	)

	summary, err := svc.IngestSeason(context.Background(), "2023")
	if err != nil {
		t.Fatalf("IngestSeason: %v", err)
	}
	if summary.StatsInserted != 1 {
		t.Fatalf("expected 1 stat inserted, got %d", summary.StatsInserted)
	}
	if summary.StatsSkipped != 1 {
		t.Fatalf("expected 1 stat skipped, got %d", summary.StatsSkipped)
	}
}

func TestSeasonIngestionService_ProviderFailure(t *testing.T) {
	store := memory.NewStore()
	svc := NewSeasonIngestionService(
		&fakeStatsProvider{err: errors.New("boom")},
		&fakeTacticsProvider{},
		memory.NewMatchRepository(store),
		memory.NewStatRepository(store),
		memory.NewLineupRepository(store),
		testKeys(), nil,
	)

	_, err := svc.IngestSeason(context.Background(), "2023")
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestSeasonIngestionService_EmptySeason(t *testing.T) {
	store := memory.NewStore()
	svc := NewSeasonIngestionService(
		&fakeStatsProvider{}, &fakeTacticsProvider{},
		memory.NewMatchRepository(store),
		memory.NewStatRepository(store),
		memory.NewLineupRepository(store),
		testKeys(), nil,
	)

	if _, err := svc.IngestSeason(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
