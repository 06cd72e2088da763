package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/primera-data/primera/internal/domain/match"
	qb "github.com/primera-data/primera/internal/platform/querybuilder"
)

const matchUpsertSuffix = "ON CONFLICT (season, date, home_team, away_team) DO NOTHING"

var matchColumns = []string{
	"season", "date", "home_team", "away_team",
	"home_score", "away_score", "home_xg", "away_xg",
}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) UpsertMatches(ctx context.Context, matches []match.Match) (int, error) {
	inserted := 0
	err := chunked(len(matches), func(lo, hi int) error {
		builder := qb.InsertInto("matches").Columns(matchColumns...)
		for _, m := range matches[lo:hi] {
			builder.Values(m.Season, m.Date, m.HomeTeam, m.AwayTeam,
				m.HomeScore, m.AwayScore, m.HomeXG, m.AwayXG)
		}
		query, args, err := builder.Suffix(matchUpsertSuffix).ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert matches query: %w", err)
		}

		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("upsert matches: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("upsert matches rows affected: %w", err)
		}
		inserted += int(affected)
		return nil
	})
	return inserted, err
}

func (r *MatchRepository) ListBySeason(ctx context.Context, season string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("season", season)).
		OrderBy("date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by season: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) CountBySeason(ctx context.Context, season string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("matches").
		Where(qb.Eq("season", season)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count matches query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count matches by season: %w", err)
	}
	return count, nil
}

func (r *MatchRepository) CountWithoutStats(ctx context.Context, season string) (int, error) {
	return r.countUncovered(ctx, season, "player_stats")
}

func (r *MatchRepository) CountWithoutLineups(ctx context.Context, season string) (int, error) {
	return r.countUncovered(ctx, season, "lineups")
}

func (r *MatchRepository) countUncovered(ctx context.Context, season, childTable string) (int, error) {
	query, args, err := qb.Select("COUNT(DISTINCT m.id)").
		From(fmt.Sprintf("matches m LEFT JOIN %s c ON c.match_id = m.id", childTable)).
		Where(qb.Eq("m.season", season), qb.IsNull("c.match_id")).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build uncovered matches query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count matches without %s: %w", childTable, err)
	}
	return count, nil
}
