package match

import "context"

// Repository exposes match persistence. UpsertMatches must be idempotent:
// a conflict on (season, date, home_team, away_team) leaves the stored row
// untouched. ListBySeason returns rows ordered by date.
type Repository interface {
	UpsertMatches(ctx context.Context, matches []Match) (inserted int, err error)
	ListBySeason(ctx context.Context, season string) ([]Match, error)
	CountBySeason(ctx context.Context, season string) (int, error)
	CountWithoutStats(ctx context.Context, season string) (int, error)
	CountWithoutLineups(ctx context.Context, season string) (int, error)
}
