package linkage

import (
	"strings"
)

// KeyDelimiter separates key components. Pipe never appears in team names
// from either provider.
const KeyDelimiter = "|"

// Anomaly widens the date component of a match key to a set of candidate
// dates. It models a fixture known to have been suspended or rescheduled
// across a reporting boundary, so the two providers may disagree on which
// calendar day it belongs to. Matching is on the canonical team pair plus
// a month prefix of the date; this is a static patch, not a rescheduling
// detector.
type Anomaly struct {
	HomeTeam    string
	AwayTeam    string
	MonthPrefix string
	Dates       []string
}

// DefaultAnomalies lists the known bad records. Granada vs Athletic Club
// of December 2023 was suspended mid-match and finished the following day,
// so the providers report it on different days.
func DefaultAnomalies() []Anomaly {
	return []Anomaly{
		{
			HomeTeam:    "Granada",
			AwayTeam:    "Athletic Club",
			MonthPrefix: "2023-12",
			Dates:       []string{"2023-12-09", "2023-12-10", "2023-12-11"},
		},
	}
}

// KeyBuilder derives canonical identity keys for a fixture from season,
// date and heterogeneous team-name spellings. Date-inclusive keys are the
// primary join axis: providers agree on fixture dates far more reliably
// than on their own numeric identifiers.
type KeyBuilder struct {
	names     *Normalizer
	anomalies []Anomaly
}

func NewKeyBuilder(names *Normalizer, anomalies []Anomaly) *KeyBuilder {
	return &KeyBuilder{names: names, anomalies: anomalies}
}

// Key builds the single canonical key for one (season, date, home, away).
func (b *KeyBuilder) Key(season, date, home, away string) string {
	return strings.Join([]string{
		season,
		date,
		b.names.Normalize(home),
		b.names.Normalize(away),
	}, KeyDelimiter)
}

// Keys returns every candidate key for a fixture: one key normally, one
// per candidate date when the fixture matches a known anomaly. Lookups
// and index builds must both use this so either side of a disagreeing
// date pair still joins.
func (b *KeyBuilder) Keys(season, date, home, away string) []string {
	dates := b.CandidateDates(date, home, away)
	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, b.Key(season, d, home, away))
	}
	return keys
}

// CandidateDates returns the date set a fixture may legitimately be
// reported under: the nominal date, widened to the anomaly's enumerated
// dates when the team pair and month match a known anomaly.
func (b *KeyBuilder) CandidateDates(date, home, away string) []string {
	homeNorm := b.names.Normalize(home)
	awayNorm := b.names.Normalize(away)
	for _, a := range b.anomalies {
		if a.HomeTeam != homeNorm || a.AwayTeam != awayNorm {
			continue
		}
		if !strings.HasPrefix(date, a.MonthPrefix) {
			continue
		}
		return a.Dates
	}
	return []string{date}
}

// Normalizer exposes the underlying name normalizer for callers that need
// canonical names outside of key building.
func (b *KeyBuilder) Normalizer() *Normalizer {
	return b.names
}
