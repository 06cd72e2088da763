package linkage

import (
	"strconv"

	"github.com/primera-data/primera/internal/domain/playerstat"
)

// StatsLinker joins stats-provider player rows to persisted matches. The
// provider shares a fixture identifier between its match-level and
// player-level rows; that identifier resolves to the raw (date, home,
// away) tuple, which the key builder turns into index candidates.
type StatsLinker struct {
	keys *KeyBuilder
}

func NewStatsLinker(keys *KeyBuilder) *StatsLinker {
	return &StatsLinker{keys: keys}
}

// Link resolves each player row to a match ID and emits stat records.
// Rows whose fixture cannot be resolved are dropped and counted, never
// fatal: one bad row must not abort a season batch.
func (l *StatsLinker) Link(season string, players []PlayerRow, matches []MatchRow, idx *MatchIndex) ([]playerstat.Stat, Report) {
	byProvider := make(map[int64]MatchRow, len(matches))
	for _, m := range matches {
		if _, ok := byProvider[m.ProviderID]; !ok {
			byProvider[m.ProviderID] = m
		}
	}

	var report Report
	out := make([]playerstat.Stat, 0, len(players))
	for _, row := range players {
		meta, ok := byProvider[row.ProviderID]
		if !ok {
			report.skipped("provider_fixture_id=" + strconv.FormatInt(row.ProviderID, 10))
			continue
		}

		keys := l.keys.Keys(season, meta.Date, meta.HomeTeam, meta.AwayTeam)
		matchID, ok := idx.Lookup(keys...)
		if !ok {
			report.skipped(keys[0])
			continue
		}

		out = append(out, playerstat.Stat{
			MatchID:    matchID,
			Team:       row.Team,
			PlayerName: row.PlayerName,
			Minutes:    coerceInt(row.Minutes),
			Goals:      coerceInt(row.Goals),
			Assists:    coerceInt(row.Assists),
			Shots:      coerceInt(row.Shots),
			XG:         coerceFloat(row.XG),
			XA:         coerceFloat(row.XA),
			XGChain:    coerceFloat(row.XGChain),
			XGBuildup:  coerceFloat(row.XGBuildup),
			KeyPasses:  coerceInt(row.KeyPasses),
			YellowCard: coerceInt(row.YellowCard),
			RedCard:    coerceInt(row.RedCard),
		})
		report.linked()
	}

	return out, report
}
