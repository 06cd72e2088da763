package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/primera-data/primera/internal/domain/lineup"
	qb "github.com/primera-data/primera/internal/platform/querybuilder"
)

var lineupColumns = []string{
	"match_id", "team", "player_name", "position", "is_starter",
	"shots_on_target", "fouls_committed", "fouls_suffered",
	"offsides", "saves", "goals_conceded",
}

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) InsertEntries(ctx context.Context, entries []lineup.Entry) (int, error) {
	inserted := 0
	err := chunked(len(entries), func(lo, hi int) error {
		builder := qb.InsertInto("lineups").Columns(lineupColumns...)
		for _, e := range entries[lo:hi] {
			builder.Values(e.MatchID, e.Team, e.PlayerName, e.Position, e.IsStarter,
				e.ShotsOnTarget, e.FoulsCommitted, e.FoulsSuffered,
				e.Offsides, e.Saves, e.GoalsConceded)
		}
		query, args, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert lineups query: %w", err)
		}

		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("insert lineups: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("insert lineups rows affected: %w", err)
		}
		inserted += int(affected)
		return nil
	})
	return inserted, err
}

func (r *LineupRepository) CountByMatchIDs(ctx context.Context, matchIDs []int64) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("lineups").
		Where(qb.In("match_id", int64Args(matchIDs))).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count lineups query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count lineups: %w", err)
	}
	return count, nil
}

func (r *LineupRepository) CountOrphans(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("lineups").
		Where(qb.Expr("match_id NOT IN (SELECT id FROM matches)")).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count orphan lineups query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count orphan lineups: %w", err)
	}
	return count, nil
}

func (r *LineupRepository) CountDuplicates(ctx context.Context, matchIDs []int64) (int, error) {
	query, args, err := qb.Select("COUNT(*) AS n").From("lineups").
		Where(qb.In("match_id", int64Args(matchIDs))).
		GroupBy("match_id", "team", "player_name").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count duplicate lineups query: %w", err)
	}

	var counts []int
	if err := r.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return 0, fmt.Errorf("count duplicate lineups: %w", err)
	}

	dupes := 0
	for _, n := range counts {
		if n > 1 {
			dupes += n - 1
		}
	}
	return dupes, nil
}
