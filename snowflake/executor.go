package snowflake

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davenforce/SnowflakeProxy/table"
)

// DriverName is the database/sql driver registered by gosnowflake.
const DriverName = "snowflake"

// Open opens a connection pool for the given configuration.
func Open(cfg Config) (*sql.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	return sql.Open(DriverName, dsn)
}

// Executor runs parameterized queries over a database/sql pool and scans the
// results into tables. It is stateless per call; the pool handles connection
// reuse. The executor works against any database/sql driver that accepts
// named arguments, which is what lets tests run it against SQLite.
type Executor struct {
	db  *sql.DB
	log *zap.Logger
}

// NewExecutor creates an Executor over an open pool.
func NewExecutor(db *sql.DB, log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{db: db, log: log}
}

// ExecuteQuery implements proxy.Executor. The caller's context is passed
// straight through to the driver, so caller-side timeouts and cancellation
// are honored by the backend call.
func (e *Executor) ExecuteQuery(ctx context.Context, query string, parameters map[string]any) (*table.Table, error) {
	statementID := uuid.NewString()
	start := time.Now()

	rows, err := e.db.QueryContext(ctx, query, namedArgs(parameters)...)
	if err != nil {
		return nil, fmt.Errorf("snowflake: statement %s: %w", statementID, err)
	}
	defer rows.Close()

	result, err := scanTable(rows)
	if err != nil {
		return nil, fmt.Errorf("snowflake: statement %s: %w", statementID, err)
	}

	e.log.Info("statement executed",
		zap.String("statement_id", statementID),
		zap.Int("rows", result.NumRows()),
		zap.Duration("took", time.Since(start)))

	return result, nil
}

// namedArgs converts the parameter map to sql.Named arguments in a
// deterministic order.
func namedArgs(parameters map[string]any) []any {
	names := make([]string, 0, len(parameters))
	for name := range parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	args := make([]any, 0, len(names))
	for _, name := range names {
		args = append(args, sql.Named(name, parameters[name]))
	}
	return args
}

// scanTable drains rows into a Table. Column types are inferred from the
// first non-null value seen per column; columns that are null throughout
// keep the null type.
func scanTable(rows *sql.Rows) (*table.Table, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	cols := make([]table.Column, len(names))
	for i, name := range names {
		cols[i] = table.Column{Name: name, Type: table.TypeNull}
	}
	result := table.New(cols...)

	values := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(table.Row, len(values))
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[i] = v
			if result.Columns[i].Type == table.TypeNull && v != nil {
				result.Columns[i].Type = table.InferType(v)
			}
		}
		if err := result.AppendRow(row); err != nil {
			return nil, err
		}
	}

	return result, rows.Err()
}
