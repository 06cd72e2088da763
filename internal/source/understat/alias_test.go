package understat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixtureRows_CollapsesPairedRows(t *testing.T) {
	raw := []map[string]any{
		{"id": "101", "datetime": "2023-08-11 19:30:00", "h": "Almeria", "a": "Rayo Vallecano", "goals_h": "0", "goals_a": "2", "xg_h": "0.8", "xg_a": "1.9"},
		{"id": "101", "datetime": "2023-08-11 19:30:00", "h": "Rayo Vallecano", "a": "Almeria", "goals_h": "2", "goals_a": "0"},
		{"id": "102", "datetime": "2023-08-12 17:00:00", "h": "Sevilla", "a": "Valencia", "goals_h": "1", "goals_a": "2"},
	}

	rows := FixtureRows(raw)
	require.Len(t, rows, 2)
	require.Equal(t, int64(101), rows[0].ProviderID)
	require.Equal(t, "2023-08-11", rows[0].Date)
	require.Equal(t, "Almeria", rows[0].HomeTeam, "first occurrence wins")
	require.Equal(t, "0.8", rows[0].HomeXG)
}

func TestFixtureRows_SkipsRowsWithoutID(t *testing.T) {
	raw := []map[string]any{
		{"datetime": "2023-08-11 19:30:00", "h": "Almeria", "a": "Rayo Vallecano"},
		{"id": "garbage", "h": "Sevilla", "a": "Valencia"},
	}
	require.Empty(t, FixtureRows(raw))
}

func TestStatRows_ResolvesColumnAliases(t *testing.T) {
	raw := []map[string]any{
		{
			"fixture_id": "101",
			"team_title": "Almeria",
			"player":     "Luis Suárez",
			"time":       "90",
			"scored":     "1",
			"assists":    "0",
			"shots":      "3",
			"xG":         "0.41", // unknown casing is not aliased
			"xg":         "0.41",
			"xa":         "0.1",
			"xgchain":    "0.55",
			"xgbuildup":  "0.2",
			"kp":         "2",
			"yellow":     "1",
			"red_cards":  "0",
		},
	}

	rows := StatRows(raw)
	require.Len(t, rows, 1)
	r := rows[0]
	require.Equal(t, int64(101), r.ProviderID)
	require.Equal(t, "Luis Suárez", r.PlayerName)
	require.Equal(t, "90", r.Minutes)
	require.Equal(t, "1", r.Goals)
	require.Equal(t, "0.55", r.XGChain)
	require.Equal(t, "0.2", r.XGBuildup)
	require.Equal(t, "2", r.KeyPasses)
	require.Equal(t, "1", r.YellowCard)
	require.Equal(t, "0", r.RedCard)
}

func TestAsString_KeepsNumbersTextual(t *testing.T) {
	require.Equal(t, "298", asString(float64(298)))
	require.Equal(t, "0.76", asString(float64(0.76)))
	require.Equal(t, "", asString(nil))
	require.Equal(t, "x", asString(" x "))
}
