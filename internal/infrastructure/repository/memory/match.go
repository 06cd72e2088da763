package memory

import (
	"context"
	"sort"

	"github.com/primera-data/primera/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

func NewMatchRepository(store *Store) *MatchRepository {
	return &MatchRepository{store: store}
}

func (r *MatchRepository) UpsertMatches(_ context.Context, matches []match.Match) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	inserted := 0
	for _, m := range matches {
		key := matchKey(m)
		if _, exists := r.store.matchKeys[key]; exists {
			continue
		}
		r.store.nextMatchID++
		m.ID = r.store.nextMatchID
		r.store.matches = append(r.store.matches, m)
		r.store.matchKeys[key] = struct{}{}
		inserted++
	}
	return inserted, nil
}

func (r *MatchRepository) ListBySeason(_ context.Context, season string) ([]match.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []match.Match
	for _, m := range r.store.matches {
		if m.Season == season {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MatchRepository) CountBySeason(_ context.Context, season string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, m := range r.store.matches {
		if m.Season == season {
			count++
		}
	}
	return count, nil
}

func (r *MatchRepository) CountWithoutStats(_ context.Context, season string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	covered := make(map[int64]struct{}, len(r.store.stats))
	for _, s := range r.store.stats {
		covered[s.MatchID] = struct{}{}
	}

	missing := 0
	for _, m := range r.store.matches {
		if m.Season != season {
			continue
		}
		if _, ok := covered[m.ID]; !ok {
			missing++
		}
	}
	return missing, nil
}

func (r *MatchRepository) CountWithoutLineups(_ context.Context, season string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	covered := make(map[int64]struct{}, len(r.store.lineups))
	for _, e := range r.store.lineups {
		covered[e.MatchID] = struct{}{}
	}

	missing := 0
	for _, m := range r.store.matches {
		if m.Season != season {
			continue
		}
		if _, ok := covered[m.ID]; !ok {
			missing++
		}
	}
	return missing, nil
}
