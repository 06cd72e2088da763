package memory

import (
	"context"

	"github.com/primera-data/primera/internal/domain/news"
)

type NewsRepository struct {
	store *Store
}

func NewNewsRepository(store *Store) *NewsRepository {
	return &NewsRepository{store: store}
}

func (r *NewsRepository) UpsertHeadlines(_ context.Context, headlines []news.Headline) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	inserted := 0
	for _, h := range headlines {
		if _, exists := r.store.headlineURLs[h.URL]; exists {
			continue
		}
		r.store.headlines = append(r.store.headlines, h)
		r.store.headlineURLs[h.URL] = struct{}{}
		inserted++
	}
	return inserted, nil
}

func (r *NewsRepository) CountBySeason(_ context.Context, season string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	seasonIDs := make(map[int64]struct{})
	for _, m := range r.store.matches {
		if m.Season == season {
			seasonIDs[m.ID] = struct{}{}
		}
	}

	count := 0
	for _, h := range r.store.headlines {
		if _, ok := seasonIDs[h.MatchID]; ok {
			count++
		}
	}
	return count, nil
}

func (r *NewsRepository) CountOrphans(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	known := make(map[int64]struct{}, len(r.store.matches))
	for _, m := range r.store.matches {
		known[m.ID] = struct{}{}
	}

	orphans := 0
	for _, h := range r.store.headlines {
		if _, ok := known[h.MatchID]; !ok {
			orphans++
		}
	}
	return orphans, nil
}
