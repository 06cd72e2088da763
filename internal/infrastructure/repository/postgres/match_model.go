package postgres

import "github.com/primera-data/primera/internal/domain/match"

type matchTableModel struct {
	ID        int64   `db:"id"`
	Season    string  `db:"season"`
	Date      string  `db:"date"`
	HomeTeam  string  `db:"home_team"`
	AwayTeam  string  `db:"away_team"`
	HomeScore *int    `db:"home_score"`
	AwayScore *int    `db:"away_score"`
	HomeXG    float64 `db:"home_xg"`
	AwayXG    float64 `db:"away_xg"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:        m.ID,
		Season:    m.Season,
		Date:      m.Date,
		HomeTeam:  m.HomeTeam,
		AwayTeam:  m.AwayTeam,
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
		HomeXG:    m.HomeXG,
		AwayXG:    m.AwayXG,
	}
}
