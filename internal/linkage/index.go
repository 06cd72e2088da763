package linkage

import (
	"github.com/primera-data/primera/internal/domain/match"
)

// MatchIndex resolves canonical keys to persisted match IDs. Built once
// per season from stored matches, read-only afterwards.
type MatchIndex struct {
	byKey map[string]int64
}

// BuildIndex indexes every candidate key of every match. If two distinct
// matches produce the same key the later insertion wins; a league schedule
// never repeats a fixture on one date, so this should not occur in valid
// data.
func BuildIndex(keys *KeyBuilder, matches []match.Match) *MatchIndex {
	idx := &MatchIndex{byKey: make(map[string]int64, len(matches))}
	for _, m := range matches {
		for _, key := range keys.Keys(m.Season, m.Date, m.HomeTeam, m.AwayTeam) {
			idx.byKey[key] = m.ID
		}
	}
	return idx
}

// Lookup tries each candidate key in order and returns the first hit.
func (idx *MatchIndex) Lookup(keys ...string) (int64, bool) {
	for _, key := range keys {
		if id, ok := idx.byKey[key]; ok {
			return id, true
		}
	}
	return 0, false
}

func (idx *MatchIndex) Len() int {
	return len(idx.byKey)
}
