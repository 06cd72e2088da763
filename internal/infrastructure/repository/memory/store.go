package memory

import (
	"fmt"
	"sync"

	"github.com/primera-data/primera/internal/domain/lineup"
	"github.com/primera-data/primera/internal/domain/match"
	"github.com/primera-data/primera/internal/domain/news"
	"github.com/primera-data/primera/internal/domain/playerstat"
)

// Store holds all four tables behind one lock so the per-entity
// repositories can answer cross-table questions (ghost matches, orphan
// stats, headline seasons) the same way the SQL repositories do.
type Store struct {
	mu sync.RWMutex

	nextMatchID int64
	matches     []match.Match
	matchKeys   map[string]struct{}

	stats    []playerstat.Stat
	statKeys map[string]struct{}

	lineups []lineup.Entry

	headlines    []news.Headline
	headlineURLs map[string]struct{}
}

func NewStore() *Store {
	return &Store{
		matchKeys:    make(map[string]struct{}),
		statKeys:     make(map[string]struct{}),
		headlineURLs: make(map[string]struct{}),
	}
}

func matchKey(m match.Match) string {
	return fmt.Sprintf("%s|%s|%s|%s", m.Season, m.Date, m.HomeTeam, m.AwayTeam)
}

func statKey(s playerstat.Stat) string {
	return fmt.Sprintf("%d|%s|%s", s.MatchID, s.Team, s.PlayerName)
}

func lineupKey(e lineup.Entry) string {
	return fmt.Sprintf("%d|%s|%s", e.MatchID, e.Team, e.PlayerName)
}
