package memory

import (
	"context"

	"github.com/primera-data/primera/internal/domain/lineup"
)

type LineupRepository struct {
	store *Store
}

func NewLineupRepository(store *Store) *LineupRepository {
	return &LineupRepository{store: store}
}

func (r *LineupRepository) InsertEntries(_ context.Context, entries []lineup.Entry) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.lineups = append(r.store.lineups, entries...)
	return len(entries), nil
}

func (r *LineupRepository) CountByMatchIDs(_ context.Context, matchIDs []int64) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := make(map[int64]struct{}, len(matchIDs))
	for _, id := range matchIDs {
		ids[id] = struct{}{}
	}

	count := 0
	for _, e := range r.store.lineups {
		if _, ok := ids[e.MatchID]; ok {
			count++
		}
	}
	return count, nil
}

func (r *LineupRepository) CountOrphans(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	known := make(map[int64]struct{}, len(r.store.matches))
	for _, m := range r.store.matches {
		known[m.ID] = struct{}{}
	}

	orphans := 0
	for _, e := range r.store.lineups {
		if _, ok := known[e.MatchID]; !ok {
			orphans++
		}
	}
	return orphans, nil
}

func (r *LineupRepository) CountDuplicates(_ context.Context, matchIDs []int64) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := make(map[int64]struct{}, len(matchIDs))
	for _, id := range matchIDs {
		ids[id] = struct{}{}
	}

	seen := make(map[string]int)
	for _, e := range r.store.lineups {
		if _, ok := ids[e.MatchID]; !ok {
			continue
		}
		seen[lineupKey(e)]++
	}

	dupes := 0
	for _, n := range seen {
		if n > 1 {
			dupes += n - 1
		}
	}
	return dupes, nil
}
