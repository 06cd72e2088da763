package lineup

import "context"

// Repository persists lineup entries. Inserts carry no natural key, so
// re-ingesting a season duplicates rows; CountDuplicates surfaces that.
type Repository interface {
	InsertEntries(ctx context.Context, entries []Entry) (inserted int, err error)
	CountByMatchIDs(ctx context.Context, matchIDs []int64) (int, error)
	CountOrphans(ctx context.Context) (int, error)
	CountDuplicates(ctx context.Context, matchIDs []int64) (int, error)
}
