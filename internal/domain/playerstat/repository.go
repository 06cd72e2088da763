package playerstat

import "context"

// Repository persists per-player match stats. InsertStats is idempotent:
// a conflict on (match_id, team, player_name) leaves the stored row
// untouched.
type Repository interface {
	InsertStats(ctx context.Context, stats []Stat) (inserted int, err error)
	CountByMatchIDs(ctx context.Context, matchIDs []int64) (int, error)
	CountOrphans(ctx context.Context) (int, error)
	CountDuplicates(ctx context.Context, matchIDs []int64) (int, error)
}
