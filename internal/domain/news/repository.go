package news

import "context"

// Repository persists linked headlines. UpsertHeadlines is idempotent via
// the URL uniqueness constraint.
type Repository interface {
	UpsertHeadlines(ctx context.Context, headlines []Headline) (inserted int, err error)
	CountBySeason(ctx context.Context, season string) (int, error)
	CountOrphans(ctx context.Context) (int, error)
}
