package linkage

import (
	"strconv"
	"strings"

	"github.com/primera-data/primera/internal/domain/match"
)

// MatchRow is one collapsed fixture row from the stats provider. Numeric
// payload values stay strings until coercion: the provider serializes
// numbers as strings and occasionally ships garbage, which must become
// zero rather than abort a batch.
type MatchRow struct {
	ProviderID int64
	Date       string
	HomeTeam   string
	AwayTeam   string
	HomeGoals  string
	AwayGoals  string
	HomeXG     string
	AwayXG     string
}

// PlayerRow is one per-player-per-fixture row from the stats provider,
// already column-aliased at the source boundary.
type PlayerRow struct {
	ProviderID int64
	Team       string
	PlayerName string
	Minutes    string
	Goals      string
	Assists    string
	Shots      string
	XG         string
	XA         string
	XGChain    string
	XGBuildup  string
	KeyPasses  string
	YellowCard string
	RedCard    string
}

// LineupRow is one per-player tactical row from the tactics provider.
// Date is the day portion already extracted from the provider's raw
// date-time string; Team carries the provider spelling.
type LineupRow struct {
	Date           string
	Team           string
	Player         string
	Position       string
	ShotsOnTarget  string
	FoulsCommitted string
	FoulsSuffered  string
	Offsides       string
	Saves          string
	GoalsConceded  string
}

// MatchesFromRows converts collapsed provider rows into canonical match
// records for persistence. Team names are normalized here so stored rows
// carry canonical names.
func MatchesFromRows(names *Normalizer, season string, rows []MatchRow) []match.Match {
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		homeScore := coerceInt(row.HomeGoals)
		awayScore := coerceInt(row.AwayGoals)
		out = append(out, match.Match{
			Season:    season,
			Date:      row.Date,
			HomeTeam:  names.Normalize(row.HomeTeam),
			AwayTeam:  names.Normalize(row.AwayTeam),
			HomeScore: &homeScore,
			AwayScore: &awayScore,
			HomeXG:    coerceFloat(row.HomeXG),
			AwayXG:    coerceFloat(row.AwayXG),
		})
	}
	return out
}

// coerceInt turns a provider value into an int, defaulting to zero on
// missing or non-numeric input. Provider floats like "90.0" truncate.
func coerceInt(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	return 0
}

func coerceFloat(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return 0
}
