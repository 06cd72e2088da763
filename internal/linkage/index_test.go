package linkage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/primera-data/primera/internal/domain/match"
)

func TestBuildIndex_LookupByAnySpelling(t *testing.T) {
	kb := newTestKeyBuilder()
	idx := BuildIndex(kb, []match.Match{
		{ID: 7, Season: "2023", Date: "2023-09-16", HomeTeam: "Alaves", AwayTeam: "Atletico Madrid"},
	})

	id, ok := idx.Lookup(kb.Keys("2023", "2023-09-16", "Deportivo Alavés", "Atlético de Madrid")...)
	require.True(t, ok)
	require.Equal(t, int64(7), id)

	_, ok = idx.Lookup(kb.Keys("2023", "2023-09-17", "Alaves", "Atletico Madrid")...)
	require.False(t, ok)
}

func TestBuildIndex_AnomalyRegisteredUnderAllCandidateDates(t *testing.T) {
	kb := newTestKeyBuilder()
	idx := BuildIndex(kb, []match.Match{
		{ID: 42, Season: "2023", Date: "2023-12-10", HomeTeam: "Granada", AwayTeam: "Athletic Club"},
	})

	// One stored match, three candidate keys.
	require.Equal(t, 3, idx.Len())

	for _, date := range []string{"2023-12-09", "2023-12-10", "2023-12-11"} {
		id, ok := idx.Lookup(kb.Key("2023", date, "Granada", "Athletic Club"))
		require.True(t, ok, "date %s", date)
		require.Equal(t, int64(42), id)
	}
}

func TestBuildIndex_LaterInsertionWinsOnCollision(t *testing.T) {
	kb := newTestKeyBuilder()
	idx := BuildIndex(kb, []match.Match{
		{ID: 1, Season: "2023", Date: "2023-09-16", HomeTeam: "Sevilla", AwayTeam: "Girona"},
		{ID: 2, Season: "2023", Date: "2023-09-16", HomeTeam: "Sevilla", AwayTeam: "Girona"},
	})

	id, ok := idx.Lookup(kb.Key("2023", "2023-09-16", "Sevilla", "Girona"))
	require.True(t, ok)
	require.Equal(t, int64(2), id)
}
