package linkage

import (
	"github.com/primera-data/primera/internal/domain/lineup"
)

// TacticsLinker joins tactics-provider lineup rows to persisted matches.
// The tactics provider shares no identifier with the stats provider; rows
// carry only a date and a team name, so each fixture selects the rows
// matching either of its sides on any of its candidate dates.
type TacticsLinker struct {
	keys *KeyBuilder
}

func NewTacticsLinker(keys *KeyBuilder) *TacticsLinker {
	return &TacticsLinker{keys: keys}
}

// Link emits lineup entries for every resolvable fixture. Fixtures with no
// resolvable match ID are skipped and counted; fixtures that resolve but
// select zero rows are simply absent from the output.
func (l *TacticsLinker) Link(season string, rows []LineupRow, matches []MatchRow, idx *MatchIndex) ([]lineup.Entry, Report) {
	names := l.keys.Normalizer()

	type sideKey struct {
		team string
		date string
	}
	bySide := make(map[sideKey][]LineupRow, len(rows))
	for _, row := range rows {
		k := sideKey{team: names.Normalize(row.Team), date: row.Date}
		bySide[k] = append(bySide[k], row)
	}

	var report Report
	out := make([]lineup.Entry, 0, len(rows))
	for _, m := range matches {
		keys := l.keys.Keys(season, m.Date, m.HomeTeam, m.AwayTeam)
		matchID, ok := idx.Lookup(keys...)
		if !ok {
			report.skipped(keys[0])
			continue
		}

		home := names.Normalize(m.HomeTeam)
		away := names.Normalize(m.AwayTeam)
		for _, date := range l.keys.CandidateDates(m.Date, m.HomeTeam, m.AwayTeam) {
			for _, team := range []string{home, away} {
				for _, row := range bySide[sideKey{team: team, date: date}] {
					out = append(out, lineup.Entry{
						MatchID:        matchID,
						Team:           team,
						PlayerName:     row.Player,
						Position:       row.Position,
						IsStarter:      row.Position != lineup.SubstituteMarker,
						ShotsOnTarget:  coerceInt(row.ShotsOnTarget),
						FoulsCommitted: coerceInt(row.FoulsCommitted),
						FoulsSuffered:  coerceInt(row.FoulsSuffered),
						Offsides:       coerceInt(row.Offsides),
						Saves:          coerceInt(row.Saves),
						GoalsConceded:  coerceInt(row.GoalsConceded),
					})
					report.linked()
				}
			}
		}
	}

	return out, report
}
