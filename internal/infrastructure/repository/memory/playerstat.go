package memory

import (
	"context"

	"github.com/primera-data/primera/internal/domain/playerstat"
)

type StatRepository struct {
	store *Store
}

func NewStatRepository(store *Store) *StatRepository {
	return &StatRepository{store: store}
}

func (r *StatRepository) InsertStats(_ context.Context, stats []playerstat.Stat) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	inserted := 0
	for _, s := range stats {
		key := statKey(s)
		if _, exists := r.store.statKeys[key]; exists {
			continue
		}
		r.store.stats = append(r.store.stats, s)
		r.store.statKeys[key] = struct{}{}
		inserted++
	}
	return inserted, nil
}

func (r *StatRepository) CountByMatchIDs(_ context.Context, matchIDs []int64) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := make(map[int64]struct{}, len(matchIDs))
	for _, id := range matchIDs {
		ids[id] = struct{}{}
	}

	count := 0
	for _, s := range r.store.stats {
		if _, ok := ids[s.MatchID]; ok {
			count++
		}
	}
	return count, nil
}

func (r *StatRepository) CountOrphans(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	known := make(map[int64]struct{}, len(r.store.matches))
	for _, m := range r.store.matches {
		known[m.ID] = struct{}{}
	}

	orphans := 0
	for _, s := range r.store.stats {
		if _, ok := known[s.MatchID]; !ok {
			orphans++
		}
	}
	return orphans, nil
}

func (r *StatRepository) CountDuplicates(_ context.Context, matchIDs []int64) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ids := make(map[int64]struct{}, len(matchIDs))
	for _, id := range matchIDs {
		ids[id] = struct{}{}
	}

	seen := make(map[string]int)
	for _, s := range r.store.stats {
		if _, ok := ids[s.MatchID]; !ok {
			continue
		}
		seen[statKey(s)]++
	}

	dupes := 0
	for _, n := range seen {
		if n > 1 {
			dupes += n - 1
		}
	}
	return dupes, nil
}
