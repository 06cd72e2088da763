package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/primera-data/primera/internal/domain/news"
	qb "github.com/primera-data/primera/internal/platform/querybuilder"
)

const headlineUpsertSuffix = "ON CONFLICT (url) DO NOTHING"

type headlineInsertModel struct {
	MatchID   int64  `db:"match_id"`
	URL       string `db:"url"`
	Headline  string `db:"headline"`
	Subheader string `db:"subheader"`
}

type NewsRepository struct {
	db *sqlx.DB
}

func NewNewsRepository(db *sqlx.DB) *NewsRepository {
	return &NewsRepository{db: db}
}

func (r *NewsRepository) UpsertHeadlines(ctx context.Context, headlines []news.Headline) (int, error) {
	inserted := 0
	for _, h := range headlines {
		query, args, err := qb.InsertModel("news_headlines", headlineInsertModel{
			MatchID:   h.MatchID,
			URL:       h.URL,
			Headline:  h.Headline,
			Subheader: h.Subheader,
		}, headlineUpsertSuffix)
		if err != nil {
			return inserted, fmt.Errorf("build upsert headline query: %w", err)
		}

		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return inserted, fmt.Errorf("upsert headline %s: %w", h.URL, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("upsert headline rows affected: %w", err)
		}
		inserted += int(affected)
	}
	return inserted, nil
}

func (r *NewsRepository) CountBySeason(ctx context.Context, season string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").
		From("news_headlines h JOIN matches m ON m.id = h.match_id").
		Where(qb.Eq("m.season", season)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count headlines query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count headlines by season: %w", err)
	}
	return count, nil
}

func (r *NewsRepository) CountOrphans(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("news_headlines").
		Where(qb.Expr("match_id NOT IN (SELECT id FROM matches)")).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count orphan headlines query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count orphan headlines: %w", err)
	}
	return count, nil
}
