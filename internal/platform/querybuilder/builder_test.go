package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelect_WhereOrderLimit(t *testing.T) {
	sql, args, err := Select("id", "date").
		From("matches").
		Where(Eq("season", "2023"), In("home_team", []any{"Sevilla", "Girona"})).
		OrderBy("date", "id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}

	want := "SELECT id, date FROM matches WHERE season = $1 AND home_team IN ($2, $3) ORDER BY date, id LIMIT 10"
	if sql != want {
		t.Fatalf("unexpected sql:\n got %s\nwant %s", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"2023", "Sevilla", "Girona"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelect_EmptyInNeverMatches(t *testing.T) {
	sql, _, err := Select("COUNT(*)").
		From("player_stats").
		Where(In("match_id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}
	want := "SELECT COUNT(*) FROM player_stats WHERE 1=0"
	if sql != want {
		t.Fatalf("unexpected sql: %s", sql)
	}
}

func TestSelect_IsNullAndExpr(t *testing.T) {
	sql, args, err := Select("COUNT(*)").
		From("matches m LEFT JOIN player_stats ps ON ps.match_id = m.id").
		Where(Eq("m.season", "2023"), IsNull("ps.match_id"), Expr("m.date >= ?", "2023-08-01")).
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}

	want := "SELECT COUNT(*) FROM matches m LEFT JOIN player_stats ps ON ps.match_id = m.id" +
		" WHERE m.season = $1 AND ps.match_id IS NULL AND m.date >= $2"
	if sql != want {
		t.Fatalf("unexpected sql:\n got %s\nwant %s", sql, want)
	}
	if !reflect.DeepEqual(args, []any{"2023", "2023-08-01"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsert_MultiRowWithSuffix(t *testing.T) {
	sql, args, err := InsertInto("news_headlines").
		Columns("match_id", "url").
		Values(int64(1), "https://x/a").
		Values(int64(2), "https://x/b").
		Suffix("ON CONFLICT (url) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("ToSQL: %v", err)
	}

	want := "INSERT INTO news_headlines (match_id, url) VALUES ($1, $2), ($3, $4) ON CONFLICT (url) DO NOTHING"
	if sql != want {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %d", len(args))
	}
}

func TestInsertModel_UsesDBTags(t *testing.T) {
	type row struct {
		Season   string `db:"season"`
		HomeTeam string `db:"home_team"`
		ignored  string `db:"hidden"`
		NoTag    string
	}

	sql, args, err := InsertModel("matches", row{Season: "2023", HomeTeam: "Getafe", ignored: "x", NoTag: "y"}, "")
	if err != nil {
		t.Fatalf("InsertModel: %v", err)
	}

	want := "INSERT INTO matches (season, home_team) VALUES ($1, $2)"
	if sql != want {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if !reflect.DeepEqual(args, []any{"2023", "Getafe"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}
