package understat

import (
	"strconv"
	"strings"

	"github.com/primera-data/primera/internal/linkage"
)

// The provider is loose about column names across seasons. Every field is
// resolved through an alias list once, at the boundary, so the rest of the
// pipeline only ever sees the canonical names.
var fieldAliases = map[string][]string{
	"match_id":    {"match_id", "id", "fixture_id"},
	"date":        {"date", "datetime", "kickoff"},
	"home_team":   {"home_team", "h", "home"},
	"away_team":   {"away_team", "a", "away"},
	"home_goals":  {"home_goals", "goals_h", "h_goals"},
	"away_goals":  {"away_goals", "goals_a", "a_goals"},
	"home_xg":     {"home_xg", "xg_h", "h_xg"},
	"away_xg":     {"away_xg", "xg_a", "a_xg"},
	"team":        {"team", "team_title", "club"},
	"player_name": {"player_name", "player", "name"},
	"minutes":     {"minutes", "time", "min"},
	"goals":       {"goals", "scored"},
	"assists":     {"assists"},
	"shots":       {"shots"},
	"xg":          {"xg", "expected_goals"},
	"xa":          {"xa", "expected_assists"},
	"xg_chain":    {"xg_chain", "xgchain"},
	"xg_buildup":  {"xg_buildup", "xgbuildup"},
	"key_passes":  {"key_passes", "kp"},
	"yellow_card": {"yellow_card", "yellow_cards", "yellow"},
	"red_card":    {"red_card", "red_cards", "red"},
}

func field(row map[string]any, canonical string) string {
	for _, alias := range fieldAliases[canonical] {
		if value, ok := row[alias]; ok {
			return asString(value)
		}
	}
	return ""
}

// asString keeps provider values textual; nothing is parsed here.
func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// dayOf trims a provider datetime ("2023-08-11 19:30:00") to the ISO day.
func dayOf(raw string) string {
	if i := strings.IndexByte(raw, ' '); i >= 0 {
		return raw[:i]
	}
	return raw
}

// FixtureRows converts raw fixture objects, collapsing the provider's paired
// per-team rows to a single row per fixture id. First occurrence wins.
func FixtureRows(raw []map[string]any) []linkage.MatchRow {
	seen := make(map[int64]bool, len(raw))
	out := make([]linkage.MatchRow, 0, len(raw))
	for _, row := range raw {
		id, err := strconv.ParseInt(field(row, "match_id"), 10, 64)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, linkage.MatchRow{
			ProviderID: id,
			Date:       dayOf(field(row, "date")),
			HomeTeam:   field(row, "home_team"),
			AwayTeam:   field(row, "away_team"),
			HomeGoals:  field(row, "home_goals"),
			AwayGoals:  field(row, "away_goals"),
			HomeXG:     field(row, "home_xg"),
			AwayXG:     field(row, "away_xg"),
		})
	}
	return out
}

// StatRows converts raw player objects. Rows without a parseable fixture id
// keep ProviderID zero and are reported by the linker later.
func StatRows(raw []map[string]any) []linkage.PlayerRow {
	out := make([]linkage.PlayerRow, 0, len(raw))
	for _, row := range raw {
		id, _ := strconv.ParseInt(field(row, "match_id"), 10, 64)
		out = append(out, linkage.PlayerRow{
			ProviderID: id,
			Team:       field(row, "team"),
			PlayerName: field(row, "player_name"),
			Minutes:    field(row, "minutes"),
			Goals:      field(row, "goals"),
			Assists:    field(row, "assists"),
			Shots:      field(row, "shots"),
			XG:         field(row, "xg"),
			XA:         field(row, "xa"),
			XGChain:    field(row, "xg_chain"),
			XGBuildup:  field(row, "xg_buildup"),
			KeyPasses:  field(row, "key_passes"),
			YellowCard: field(row, "yellow_card"),
			RedCard:    field(row, "red_card"),
		})
	}
	return out
}
