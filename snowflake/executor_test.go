package snowflake

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/go-cmp/cmp"
	_ "modernc.org/sqlite"

	"github.com/davenforce/SnowflakeProxy/table"
)

// openTestDB gives the executor a real database/sql backend without a
// warehouse: an in-memory SQLite pool pinned to a single connection so every
// statement sees the same database.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	stmts := []string{
		`CREATE TABLE people (name TEXT NOT NULL, age INTEGER NOT NULL, score REAL)`,
		`INSERT INTO people (name, age, score) VALUES ('ada', 36, 99.5)`,
		`INSERT INTO people (name, age, score) VALUES ('bob', 17, 42.0)`,
		`INSERT INTO people (name, age, score) VALUES ('cyd', 58, NULL)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return db
}

func TestExecuteQuery_ScansRowsIntoTable(t *testing.T) {
	executor := NewExecutor(openTestDB(t), nil)

	result, err := executor.ExecuteQuery(context.Background(),
		`SELECT name, age, score FROM people WHERE age >= :min ORDER BY name`,
		map[string]any{"min": 18})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantColumns := []table.Column{
		{Name: "name", Type: table.TypeString},
		{Name: "age", Type: table.TypeInteger},
		{Name: "score", Type: table.TypeFloat},
	}
	if diff := cmp.Diff(wantColumns, result.Columns); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}

	wantRows := []table.Row{
		{"ada", int64(36), 99.5},
		{"cyd", int64(58), nil},
	}
	if diff := cmp.Diff(wantRows, result.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteQuery_EmptyResultKeepsColumns(t *testing.T) {
	executor := NewExecutor(openTestDB(t), nil)

	result, err := executor.ExecuteQuery(context.Background(),
		`SELECT name FROM people WHERE age > :min`,
		map[string]any{"min": 200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.NumRows() != 0 {
		t.Errorf("expected no rows, got %d", result.NumRows())
	}
	if result.NumColumns() != 1 || result.Columns[0].Name != "name" {
		t.Errorf("expected the column set to survive an empty result, got %+v", result.Columns)
	}
	// With no values to inspect, the column type stays null.
	if result.Columns[0].Type != table.TypeNull {
		t.Errorf("expected a null-typed column for an empty result, got %s", result.Columns[0].Type)
	}
}

func TestExecuteQuery_PropagatesBackendErrors(t *testing.T) {
	executor := NewExecutor(openTestDB(t), nil)

	if _, err := executor.ExecuteQuery(context.Background(), `SELECT * FROM no_such_table`, nil); err == nil {
		t.Error("expected an error for a malformed query")
	}
}

func TestExecuteQuery_HonorsCancellation(t *testing.T) {
	executor := NewExecutor(openTestDB(t), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := executor.ExecuteQuery(ctx, `SELECT name FROM people`, nil); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}
