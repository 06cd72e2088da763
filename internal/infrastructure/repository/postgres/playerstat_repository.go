package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/primera-data/primera/internal/domain/playerstat"
	qb "github.com/primera-data/primera/internal/platform/querybuilder"
)

const statUpsertSuffix = "ON CONFLICT (match_id, team, player_name) DO NOTHING"

var statColumns = []string{
	"match_id", "team", "player_name", "minutes", "goals", "assists",
	"shots", "xg", "xa", "xg_chain", "xg_buildup", "key_passes",
	"yellow_card", "red_card",
}

type StatRepository struct {
	db *sqlx.DB
}

func NewStatRepository(db *sqlx.DB) *StatRepository {
	return &StatRepository{db: db}
}

func (r *StatRepository) InsertStats(ctx context.Context, stats []playerstat.Stat) (int, error) {
	inserted := 0
	err := chunked(len(stats), func(lo, hi int) error {
		builder := qb.InsertInto("player_stats").Columns(statColumns...)
		for _, s := range stats[lo:hi] {
			builder.Values(s.MatchID, s.Team, s.PlayerName, s.Minutes, s.Goals,
				s.Assists, s.Shots, s.XG, s.XA, s.XGChain, s.XGBuildup,
				s.KeyPasses, s.YellowCard, s.RedCard)
		}
		query, args, err := builder.Suffix(statUpsertSuffix).ToSQL()
		if err != nil {
			return fmt.Errorf("build insert player stats query: %w", err)
		}

		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("insert player stats: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("insert player stats rows affected: %w", err)
		}
		inserted += int(affected)
		return nil
	})
	return inserted, err
}

func (r *StatRepository) CountByMatchIDs(ctx context.Context, matchIDs []int64) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("player_stats").
		Where(qb.In("match_id", int64Args(matchIDs))).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count player stats query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count player stats: %w", err)
	}
	return count, nil
}

func (r *StatRepository) CountOrphans(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("player_stats").
		Where(qb.Expr("match_id NOT IN (SELECT id FROM matches)")).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count orphan stats query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count orphan stats: %w", err)
	}
	return count, nil
}

func (r *StatRepository) CountDuplicates(ctx context.Context, matchIDs []int64) (int, error) {
	query, args, err := qb.Select("COUNT(*) AS n").From("player_stats").
		Where(qb.In("match_id", int64Args(matchIDs))).
		GroupBy("match_id", "team", "player_name").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count duplicate stats query: %w", err)
	}

	var counts []int
	if err := r.db.SelectContext(ctx, &counts, query, args...); err != nil {
		return 0, fmt.Errorf("count duplicate stats: %w", err)
	}

	dupes := 0
	for _, n := range counts {
		if n > 1 {
			dupes += n - 1
		}
	}
	return dupes, nil
}
