package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("s.match_id", "s.goals").
		From("match_statistics s").
		Join("JOIN matches m ON m.id = s.match_id").
		Where(Eq("m.club_id", "c1"), Eq("s.side", "ours")).
		OrderBy("m.match_date", "m.id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT s.match_id, s.goals FROM match_statistics s JOIN matches m ON m.id = s.match_id WHERE m.club_id = $1 AND s.side = $2 ORDER BY m.match_date, m.id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "c1" || args[1] != "ours" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderExprAndIn(t *testing.T) {
	query, args, err := Select("id").
		From("matches").
		Where(Expr("match_date = ?::date", "2026-03-01"), In("opponent_id", []any{"o1", "o2"})).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM matches WHERE match_date = $1::date AND opponent_id IN ($2, $3)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

type goalRow struct {
	ID      string `db:"id"`
	MatchID string `db:"match_id"`
	Minute  int    `db:"minute"`
	note    string
}

func TestInsertModels(t *testing.T) {
	rows := []goalRow{
		{ID: "g1", MatchID: "m1", Minute: 10},
		{ID: "g2", MatchID: "m1", Minute: 55, note: "ignored"},
	}

	query, args, err := InsertModels("goals", rows, "ON CONFLICT DO NOTHING")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO goals (id, match_id, minute) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 || args[3] != "g2" || args[5] != 55 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModels[goalRow]("goals", nil, ""); err == nil {
		t.Fatalf("expected error for empty rows")
	}
}

type tallyColumns struct {
	Goals int `db:"goals"`
	Shots int `db:"shots"`
}

type sideRow struct {
	MatchID string `db:"match_id"`
	tallyColumns
	Saves int `db:"saves"`
}

func TestInsertModelFlattensEmbeddedColumns(t *testing.T) {
	query, args, err := InsertModel("match_statistics", sideRow{MatchID: "m1", tallyColumns: tallyColumns{Goals: 2, Shots: 5}, Saves: 3}, "")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO match_statistics (match_id, goals, shots, saves) VALUES ($1, $2, $3, $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[1] != 2 || args[2] != 5 || args[3] != 3 {
		t.Fatalf("unexpected args: %+v", args)
	}
	if cols := Columns(sideRow{}); len(cols) != 4 {
		t.Fatalf("unexpected columns: %v", cols)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("clubs").
		Set("external_team_id", int64(217)).
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", "c1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE clubs SET external_team_id = $1, updated_at = NOW() WHERE id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[1] != "c1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestMutationsRequireConditions(t *testing.T) {
	if _, _, err := Update("clubs").Set("name", "x").ToSQL(); err == nil {
		t.Fatalf("expected unconditioned update to fail")
	}
	if _, _, err := DeleteFrom("matches").ToSQL(); err == nil {
		t.Fatalf("expected unconditioned delete to fail")
	}

	query, args, err := DeleteFrom("matches").Where(Eq("id", "m1")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM matches WHERE id = $1" || len(args) != 1 {
		t.Fatalf("unexpected delete: %s %+v", query, args)
	}
}
