package scenario

import (
	"fmt"
	"slices"
)

// ResultSet is the output of a query program: named columns over
// ordered rows. Cell values are plain Go values (string, int, int64,
// float64, bool, or nil for an absent optional field), which keeps
// result sets renderable, snapshottable as JSON, and comparable
// against SQL query output.
type ResultSet struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// NewResultSet creates an empty result set with the given columns.
func NewResultSet(columns ...string) *ResultSet {
	return &ResultSet{Columns: columns}
}

// Append adds one row. The number of values must match the number of
// columns; a mismatch is a programming error in the query program.
func (rs *ResultSet) Append(values ...any) {
	if len(values) != len(rs.Columns) {
		panic(fmt.Sprintf("resultset: row has %d values, want %d columns", len(values), len(rs.Columns)))
	}
	rs.Rows = append(rs.Rows, values)
}

// Len returns the number of rows.
func (rs *ResultSet) Len() int {
	return len(rs.Rows)
}

// ColumnIndex returns the position of the named column.
func (rs *ResultSet) ColumnIndex(name string) (int, bool) {
	i := slices.Index(rs.Columns, name)
	return i, i >= 0
}

// Value returns the cell at (row, column name).
func (rs *ResultSet) Value(row int, column string) (any, bool) {
	i, ok := rs.ColumnIndex(column)
	if !ok || row < 0 || row >= len(rs.Rows) {
		return nil, false
	}
	return rs.Rows[row][i], true
}
