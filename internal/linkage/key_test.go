package linkage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestKeyBuilder() *KeyBuilder {
	return NewKeyBuilder(NewNormalizer(DefaultCorrections()), DefaultAnomalies())
}

func TestKeyBuilder_StableAcrossSpellings(t *testing.T) {
	kb := newTestKeyBuilder()

	a := kb.Key("2023", "2023-09-16", "Deportivo Alavés", "Atlético de Madrid")
	b := kb.Key("2023", "2023-09-16", "Alaves", "Atletico Madrid")
	c := kb.Key("2023", "2023-09-16", "Alavés", "Atlético Madrid")

	require.Equal(t, a, b)
	require.Equal(t, b, c)
	require.Equal(t, "2023|2023-09-16|Alaves|Atletico Madrid", a)
}

func TestKeyBuilder_KeysWidenedForKnownAnomaly(t *testing.T) {
	kb := newTestKeyBuilder()

	keys := kb.Keys("2023", "2023-12-10", "Granada", "Athletic Club")
	require.Len(t, keys, 3)
	require.Equal(t, []string{
		"2023|2023-12-09|Granada|Athletic Club",
		"2023|2023-12-10|Granada|Athletic Club",
		"2023|2023-12-11|Granada|Athletic Club",
	}, keys)
}

func TestKeyBuilder_NoWideningOutsideAnomalyMonth(t *testing.T) {
	kb := newTestKeyBuilder()

	// Same pairing in a different month: the reverse fixture.
	keys := kb.Keys("2023", "2024-04-14", "Granada", "Athletic Club")
	require.Len(t, keys, 1)

	// Different pairing in the anomaly month.
	keys = kb.Keys("2023", "2023-12-10", "Granada", "Sevilla")
	require.Len(t, keys, 1)
}

func TestKeyBuilder_CandidateDates(t *testing.T) {
	kb := newTestKeyBuilder()

	dates := kb.CandidateDates("2023-12-10", "Granada", "Athletic Club")
	require.Equal(t, []string{"2023-12-09", "2023-12-10", "2023-12-11"}, dates)

	dates = kb.CandidateDates("2023-08-20", "Sevilla", "Girona FC")
	require.Equal(t, []string{"2023-08-20"}, dates)
}
