// Package table defines the tabular value produced by query execution:
// named, typed columns and rows of matching arity.
package table

import (
	"fmt"
	"time"
)

// ColumnType identifies the logical type of a column.
type ColumnType string

// Supported column types. Individual cells may still be nil regardless of
// the column type.
const (
	TypeString    ColumnType = "string"
	TypeInteger   ColumnType = "integer"
	TypeFloat     ColumnType = "float"
	TypeBoolean   ColumnType = "boolean"
	TypeTimestamp ColumnType = "timestamp"
	TypeNull      ColumnType = "null"
)

// Column describes a single named, typed column.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Row is one tuple of values. Its length must equal the table's column count.
type Row []any

// Table is an immutable-by-convention result set. Once a Table has been
// handed to the cache it must not be mutated; producers build a fresh Table
// per execution.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// New creates a Table with the given columns and no rows.
func New(cols ...Column) *Table {
	return &Table{Columns: cols}
}

// AppendRow adds a row after checking its arity against the column set.
func (t *Table) AppendRow(row Row) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("table: row has %d values, want %d", len(row), len(t.Columns))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// ColumnValues returns all values of the named column in row order.
// The boolean is false when the column does not exist.
func (t *Table) ColumnValues(name string) ([]any, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	values := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, true
}

// InferType maps a scanned Go value to the column type it represents.
// Unknown types degrade to string since every driver value has a string form.
func InferType(v any) ColumnType {
	switch v.(type) {
	case nil:
		return TypeNull
	case bool:
		return TypeBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeInteger
	case float32, float64:
		return TypeFloat
	case time.Time:
		return TypeTimestamp
	default:
		return TypeString
	}
}
