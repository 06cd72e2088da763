package linkage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/primera-data/primera/internal/domain/match"
)

func TestStatsLinker_LinksAndCoerces(t *testing.T) {
	kb := newTestKeyBuilder()
	idx := BuildIndex(kb, []match.Match{
		{ID: 11, Season: "2023", Date: "2023-08-11", HomeTeam: "Almeria", AwayTeam: "Rayo Vallecano"},
	})

	matches := []MatchRow{
		{ProviderID: 900, Date: "2023-08-11", HomeTeam: "Almeria", AwayTeam: "Rayo Vallecano"},
	}
	players := []PlayerRow{
		{
			ProviderID: 900,
			Team:       "Almeria",
			PlayerName: "Luis Suárez",
			Minutes:    "90",
			Goals:      "1",
			Assists:    "",
			Shots:      "n/a",
			XG:         "0.43",
			XGChain:    "0.61",
		},
	}

	stats, report := NewStatsLinker(kb).Link("2023", players, matches, idx)
	require.Len(t, stats, 1)
	require.Equal(t, 1, report.Linked)
	require.Equal(t, 0, report.Skipped)

	got := stats[0]
	require.Equal(t, int64(11), got.MatchID)
	require.Equal(t, "Luis Suárez", got.PlayerName)
	require.Equal(t, 90, got.Minutes)
	require.Equal(t, 1, got.Goals)
	require.Equal(t, 0, got.Assists, "missing value coerces to zero")
	require.Equal(t, 0, got.Shots, "non-numeric value coerces to zero")
	require.InDelta(t, 0.43, got.XG, 1e-9)
	require.InDelta(t, 0.61, got.XGChain, 1e-9)
}

func TestStatsLinker_DropsUnresolvableRows(t *testing.T) {
	kb := newTestKeyBuilder()
	idx := BuildIndex(kb, []match.Match{
		{ID: 11, Season: "2023", Date: "2023-08-11", HomeTeam: "Almeria", AwayTeam: "Rayo Vallecano"},
	})

	matches := []MatchRow{
		{ProviderID: 900, Date: "2023-08-11", HomeTeam: "Almeria", AwayTeam: "Rayo Vallecano"},
		// Fixture never persisted: the date never ingested.
		{ProviderID: 901, Date: "2023-08-12", HomeTeam: "Sevilla", AwayTeam: "Valencia"},
	}
	players := []PlayerRow{
		{ProviderID: 900, Team: "Almeria", PlayerName: "A", Minutes: "90"},
		{ProviderID: 901, Team: "Sevilla", PlayerName: "B", Minutes: "90"},
		{ProviderID: 999, Team: "Ghost", PlayerName: "C", Minutes: "90"},
	}

	stats, report := NewStatsLinker(kb).Link("2023", players, matches, idx)
	require.Len(t, stats, 1)
	require.Equal(t, 1, report.Linked)
	require.Equal(t, 2, report.Skipped)
	require.Contains(t, report.SkippedKeys, "2023|2023-08-12|Sevilla|Valencia")
	require.Contains(t, report.SkippedKeys, "provider_fixture_id=999")
}

func TestStatsLinker_CollapsesDuplicateMatchRows(t *testing.T) {
	kb := newTestKeyBuilder()
	idx := BuildIndex(kb, []match.Match{
		{ID: 3, Season: "2023", Date: "2023-08-11", HomeTeam: "Almeria", AwayTeam: "Rayo Vallecano"},
	})

	// The provider emits one row per side; the first occurrence wins.
	matches := []MatchRow{
		{ProviderID: 900, Date: "2023-08-11", HomeTeam: "Almeria", AwayTeam: "Rayo Vallecano"},
		{ProviderID: 900, Date: "2023-08-11", HomeTeam: "Almeria", AwayTeam: "Rayo Vallecano"},
	}
	players := []PlayerRow{
		{ProviderID: 900, Team: "Rayo Vallecano", PlayerName: "D"},
	}

	stats, report := NewStatsLinker(kb).Link("2023", players, matches, idx)
	require.Len(t, stats, 1)
	require.Equal(t, int64(3), stats[0].MatchID)
	require.Equal(t, 1, report.Linked)
}

func TestMatchesFromRows_NormalizesStoredNames(t *testing.T) {
	names := NewNormalizer(DefaultCorrections())

	out := MatchesFromRows(names, "2023", []MatchRow{
		{
			ProviderID: 1,
			Date:       "2023-08-11",
			HomeTeam:   "Deportivo Alavés",
			AwayTeam:   "Cádiz",
			HomeGoals:  "2",
			AwayGoals:  "0",
			HomeXG:     "1.87",
			AwayXG:     "bad",
		},
	})

	require.Len(t, out, 1)
	m := out[0]
	require.Equal(t, "Alaves", m.HomeTeam)
	require.Equal(t, "Cadiz", m.AwayTeam)
	require.Equal(t, "2023", m.Season)
	require.Equal(t, 2, *m.HomeScore)
	require.Equal(t, 0, *m.AwayScore)
	require.InDelta(t, 1.87, m.HomeXG, 1e-9)
	require.Zero(t, m.AwayXG)
}
