package harness

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/relforge/scottql/internal/oracle"
	"github.com/relforge/scottql/internal/scenario"
)

// floatTolerance absorbs representation noise when comparing values
// that reached float64 through different routes (YAML, SQLite, Go
// arithmetic). Fixture magnitudes are small, so 1e-9 is far below any
// meaningful salary difference.
const floatTolerance = 1e-9

// AssertionError is returned when an assertion fails.
// It includes expected and actual context to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateAssertions evaluates every assertion of sc against the
// result set rs. Returns a slice of error messages for failed
// assertions. The oracle may be nil when no sql_match assertion is
// present.
func EvaluateAssertions(ctx context.Context, rs *scenario.ResultSet, sc *scenario.Scenario, ora *oracle.DB) []string {
	var errors []string

	for i, a := range sc.Assertions {
		var err error

		switch a.Type {
		case scenario.AssertRowCount:
			err = assertRowCount(rs, a)
		case scenario.AssertContainsRow:
			err = assertContainsRow(rs, a)
		case scenario.AssertAllRows:
			err = assertAllRows(rs, a)
		case scenario.AssertSortedBy:
			err = assertSortedBy(rs, a)
		case scenario.AssertFieldCompare:
			err = assertFieldCompare(rs, a)
		case scenario.AssertSQLMatch:
			if ora == nil {
				err = fmt.Errorf("assertion[%d]: sql_match requires oracle database", i)
			} else {
				err = assertSQLMatch(ctx, ora, rs, sc)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, a.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}

// assertRowCount checks the exact number of result rows.
func assertRowCount(rs *scenario.ResultSet, a scenario.Assertion) error {
	if rs.Len() != a.Count {
		return &AssertionError{
			Type:     scenario.AssertRowCount,
			Expected: fmt.Sprintf("%d rows", a.Count),
			Actual:   fmt.Sprintf("%d rows", rs.Len()),
		}
	}
	return nil
}

// assertContainsRow checks that some row matches all expected column
// values (subset match: unnamed columns are ignored).
func assertContainsRow(rs *scenario.ResultSet, a scenario.Assertion) error {
	for i := range rs.Rows {
		if rowMatches(rs, i, a.Row) {
			return nil
		}
	}
	return &AssertionError{
		Type:     scenario.AssertContainsRow,
		Expected: fmt.Sprintf("a row matching %s", formatRowSpec(a.Row)),
		Actual:   "no row matched",
	}
}

// assertAllRows checks that every row carries the expected value in
// the named column. An empty result passes vacuously.
func assertAllRows(rs *scenario.ResultSet, a scenario.Assertion) error {
	if _, ok := rs.ColumnIndex(a.Column); !ok {
		return columnMissing(scenario.AssertAllRows, a.Column, rs)
	}
	for i := range rs.Rows {
		actual, _ := rs.Value(i, a.Column)
		if !valuesEqual(a.Equals, actual) {
			return &AssertionError{
				Type:     scenario.AssertAllRows,
				Expected: fmt.Sprintf("every row has %s = %v", a.Column, a.Equals),
				Actual:   fmt.Sprintf("row %d has %s = %v", i, a.Column, actual),
			}
		}
	}
	return nil
}

// assertSortedBy checks that the named column is monotonic over
// adjacent rows in the given direction (ties allowed).
func assertSortedBy(rs *scenario.ResultSet, a scenario.Assertion) error {
	if _, ok := rs.ColumnIndex(a.Column); !ok {
		return columnMissing(scenario.AssertSortedBy, a.Column, rs)
	}
	for i := 1; i < rs.Len(); i++ {
		prev, _ := rs.Value(i-1, a.Column)
		cur, _ := rs.Value(i, a.Column)

		c, err := compareCells(prev, cur)
		if err != nil {
			return fmt.Errorf("sorted_by on column %q: %w", a.Column, err)
		}

		violated := (a.Direction == "desc" && c < 0) || (a.Direction == "asc" && c > 0)
		if violated {
			return &AssertionError{
				Type:     scenario.AssertSortedBy,
				Expected: fmt.Sprintf("column %s %sending over adjacent rows", a.Column, a.Direction),
				Actual:   fmt.Sprintf("rows %d..%d: %v then %v", i-1, i, prev, cur),
			}
		}
	}
	return nil
}

// assertFieldCompare locates exactly one row by the where clause and
// compares the named column against the assertion value.
func assertFieldCompare(rs *scenario.ResultSet, a scenario.Assertion) error {
	if _, ok := rs.ColumnIndex(a.Column); !ok {
		return columnMissing(scenario.AssertFieldCompare, a.Column, rs)
	}

	match := -1
	for i := range rs.Rows {
		if !rowMatches(rs, i, a.Where) {
			continue
		}
		if match >= 0 {
			return &AssertionError{
				Type:     scenario.AssertFieldCompare,
				Expected: fmt.Sprintf("exactly one row matching %s", formatRowSpec(a.Where)),
				Actual:   "multiple rows matched (assertion is ambiguous)",
			}
		}
		match = i
	}
	if match < 0 {
		return &AssertionError{
			Type:     scenario.AssertFieldCompare,
			Expected: fmt.Sprintf("a row matching %s", formatRowSpec(a.Where)),
			Actual:   "no row matched",
		}
	}

	actual, _ := rs.Value(match, a.Column)
	f, ok := toFloat(actual)
	if !ok {
		return &AssertionError{
			Type:     scenario.AssertFieldCompare,
			Expected: fmt.Sprintf("numeric value in column %s", a.Column),
			Actual:   fmt.Sprintf("%v (type %T)", actual, actual),
		}
	}

	if !compareNumeric(a.Op, f, a.Value) {
		return &AssertionError{
			Type:     scenario.AssertFieldCompare,
			Expected: fmt.Sprintf("%s %s %v for row matching %s", a.Column, a.Op, a.Value, formatRowSpec(a.Where)),
			Actual:   fmt.Sprintf("%s = %v", a.Column, actual),
		}
	}
	return nil
}

// assertSQLMatch executes the scenario's reference SQL against the
// oracle and compares both result sets. Comparison is order-sensitive
// only when the scenario declares ordered: true.
func assertSQLMatch(ctx context.Context, ora *oracle.DB, rs *scenario.ResultSet, sc *scenario.Scenario) error {
	want, err := ora.Query(ctx, sc.SQL)
	if err != nil {
		return &AssertionError{
			Type:     scenario.AssertSQLMatch,
			Expected: "reference SQL to execute",
			Actual:   fmt.Sprintf("oracle error: %v", err),
		}
	}
	return resultsEqual(rs, want, sc.Ordered)
}

// resultsEqual compares two result sets cell by cell. When ordered is
// false, rows are compared as multisets.
func resultsEqual(got, want *scenario.ResultSet, ordered bool) error {
	if len(got.Columns) != len(want.Columns) {
		return &AssertionError{
			Type:     scenario.AssertSQLMatch,
			Expected: fmt.Sprintf("columns %v", want.Columns),
			Actual:   fmt.Sprintf("columns %v", got.Columns),
		}
	}
	for i, c := range want.Columns {
		if got.Columns[i] != c {
			return &AssertionError{
				Type:     scenario.AssertSQLMatch,
				Expected: fmt.Sprintf("columns %v", want.Columns),
				Actual:   fmt.Sprintf("columns %v", got.Columns),
			}
		}
	}

	if got.Len() != want.Len() {
		return &AssertionError{
			Type:     scenario.AssertSQLMatch,
			Expected: fmt.Sprintf("%d rows (oracle)", want.Len()),
			Actual:   fmt.Sprintf("%d rows", got.Len()),
		}
	}

	if ordered {
		for i := range want.Rows {
			for j := range want.Columns {
				if !valuesEqual(want.Rows[i][j], got.Rows[i][j]) {
					return &AssertionError{
						Type:     scenario.AssertSQLMatch,
						Expected: fmt.Sprintf("row %d column %s = %v (oracle)", i, want.Columns[j], want.Rows[i][j]),
						Actual:   fmt.Sprintf("%v", got.Rows[i][j]),
					}
				}
			}
		}
		return nil
	}

	// Unordered: compare row fingerprint multisets.
	gotPrints := fingerprints(got)
	wantPrints := fingerprints(want)
	for print, n := range wantPrints {
		if gotPrints[print] != n {
			return &AssertionError{
				Type:     scenario.AssertSQLMatch,
				Expected: fmt.Sprintf("%d occurrence(s) of row %s (oracle)", n, print),
				Actual:   fmt.Sprintf("%d occurrence(s)", gotPrints[print]),
			}
		}
	}
	return nil
}

// fingerprints builds a multiset of normalized row renderings.
func fingerprints(rs *scenario.ResultSet) map[string]int {
	prints := make(map[string]int, rs.Len())
	for _, row := range rs.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = normalizeCell(v)
		}
		prints["("+strings.Join(cells, ", ")+")"]++
	}
	return prints
}

// normalizeCell renders a cell so that numerically equal values from
// different sources produce identical strings.
func normalizeCell(v any) string {
	if v == nil {
		return "NULL"
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%v", v)
}

// rowMatches reports whether row i satisfies every (column, value)
// pair of spec. Columns absent from the result never match.
func rowMatches(rs *scenario.ResultSet, i int, spec map[string]any) bool {
	for col, expected := range spec {
		actual, ok := rs.Value(i, col)
		if !ok {
			return false
		}
		if !valuesEqual(expected, actual) {
			return false
		}
	}
	return true
}

// valuesEqual compares an expected value (from a scenario file or the
// oracle) against an actual result cell. Numeric values are compared
// numerically regardless of their Go type; nil only equals nil, so an
// absent optional field never matches any number.
func valuesEqual(expected, actual any) bool {
	if expected == nil && actual == nil {
		return true
	}
	if expected == nil || actual == nil {
		return false
	}

	ef, eok := toFloat(expected)
	af, aok := toFloat(actual)
	if eok && aok {
		return math.Abs(ef-af) <= floatTolerance
	}
	if eok != aok {
		return false
	}

	if es, ok := expected.(string); ok {
		as, ok := actual.(string)
		return ok && es == as
	}
	if eb, ok := expected.(bool); ok {
		ab, ok := actual.(bool)
		return ok && eb == ab
	}

	return reflect.DeepEqual(expected, actual)
}

// toFloat widens any numeric cell type to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// compareCells orders two cells of the same kind: -1, 0, or +1.
func compareCells(a, b any) (int, error) {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case math.Abs(af-bf) <= floatTolerance:
			return 0, nil
		case af < bf:
			return -1, nil
		default:
			return 1, nil
		}
	}

	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.Compare(as, bs), nil
	}

	return 0, fmt.Errorf("cannot compare %T with %T", a, b)
}

// compareNumeric applies a comparison operator to two floats.
func compareNumeric(op string, a, b float64) bool {
	switch op {
	case ">":
		return a > b
	case ">=":
		return a >= b
	case "<":
		return a < b
	case "<=":
		return a <= b
	case "==":
		return math.Abs(a-b) <= floatTolerance
	default:
		return false
	}
}

// columnMissing builds the failure for an assertion naming an unknown
// column.
func columnMissing(typ, column string, rs *scenario.ResultSet) error {
	return &AssertionError{
		Type:     typ,
		Expected: fmt.Sprintf("column %q to exist", column),
		Actual:   fmt.Sprintf("columns are %v", rs.Columns),
	}
}

// formatRowSpec renders a column/value spec deterministically.
func formatRowSpec(spec map[string]any) string {
	keys := make([]string, 0, len(spec))
	for k := range spec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, spec[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
