// Package scenario defines the query scenarios of the conformance
// suite: a registry of named query programs over the fixture tables,
// and YAML scenario files that bind a program to the assertions its
// result must satisfy.
//
// # Scenario format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: salesman_filter
//	description: "Filtering employees by job SALESMAN yields two rows"
//	query: employees_with_job_salesman
//	ordered: false
//	sql: SELECT ename, job, deptno, sal, comm FROM emp WHERE job = 'SALESMAN'
//	assertions:
//	  - type: row_count
//	    count: 2
//	  - type: contains_row
//	    row: { ename: ALLEN }
//
// # Assertion types
//
//   - row_count: the result has exactly count rows
//   - contains_row: some row matches the given column values (subset match)
//   - all_rows: every row's column equals the given value
//   - sorted_by: the column is non-decreasing (asc) or non-increasing (desc)
//     over adjacent rows
//   - field_compare: locate one row by where (subset match) and compare a
//     numeric column against value with op
//   - sql_match: the result equals the oracle's answer to the scenario's
//     reference SQL
package scenario

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario is one parsed scenario file.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Query names the registered query program to execute.
	Query string `yaml:"query"`

	// Ordered marks the result order as significant. When false,
	// sql_match compares result sets as multisets.
	Ordered bool `yaml:"ordered,omitempty"`

	// SQL is the reference statement for sql_match assertions,
	// executed against the SQLite oracle.
	SQL string `yaml:"sql,omitempty"`

	// Assertions validate the result set.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion is one expectation about a scenario's result set.
// Which fields apply depends on Type.
type Assertion struct {
	Type string `yaml:"type"`

	// Count is the expected row count (row_count).
	Count int `yaml:"count,omitempty"`

	// Row maps column names to expected values (contains_row).
	// Subset match: only named columns are compared.
	Row map[string]any `yaml:"row,omitempty"`

	// Column names the column under test (all_rows, sorted_by,
	// field_compare).
	Column string `yaml:"column,omitempty"`

	// Equals is the value every row must carry (all_rows).
	Equals any `yaml:"equals,omitempty"`

	// Direction is "asc" or "desc" (sorted_by).
	Direction string `yaml:"direction,omitempty"`

	// Where locates the row under test by subset match (field_compare).
	Where map[string]any `yaml:"where,omitempty"`

	// Op is the comparison operator: >, >=, <, <=, == (field_compare).
	Op string `yaml:"op,omitempty"`

	// Value is the comparison operand (field_compare).
	Value float64 `yaml:"value,omitempty"`
}

// Assertion type constants.
const (
	AssertRowCount     = "row_count"
	AssertContainsRow  = "contains_row"
	AssertAllRows      = "all_rows"
	AssertSortedBy     = "sorted_by"
	AssertFieldCompare = "field_compare"
	AssertSQLMatch     = "sql_match"
)

// Load reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), fails schema validation, or names an
// unregistered query program.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Validate the raw document against the CUE schema first; it
	// produces better messages for shape errors than struct decoding.
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ValidateSchema(doc); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", filepath.Base(path), err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:".
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&sc); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", filepath.Base(path), err)
	}

	return &sc, nil
}

// LoadDir loads every *.yaml scenario in dir, sorted by file name.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		sc, err := Load(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Query == "" {
		return fmt.Errorf("query is required")
	}
	if _, ok := Lookup(s.Query); !ok {
		return fmt.Errorf("unknown query program %q", s.Query)
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	hasSQLMatch := false
	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
		if a.Type == AssertSQLMatch {
			hasSQLMatch = true
		}
	}

	if hasSQLMatch && s.SQL == "" {
		return fmt.Errorf("sql is required when a sql_match assertion is present")
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertRowCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for row_count", index)
		}
	case AssertContainsRow:
		if len(a.Row) == 0 {
			return fmt.Errorf("assertions[%d]: row is required for contains_row", index)
		}
	case AssertAllRows:
		if a.Column == "" {
			return fmt.Errorf("assertions[%d]: column is required for all_rows", index)
		}
		if a.Equals == nil {
			return fmt.Errorf("assertions[%d]: equals is required for all_rows", index)
		}
	case AssertSortedBy:
		if a.Column == "" {
			return fmt.Errorf("assertions[%d]: column is required for sorted_by", index)
		}
		if a.Direction != "asc" && a.Direction != "desc" {
			return fmt.Errorf("assertions[%d]: direction must be asc or desc for sorted_by", index)
		}
	case AssertFieldCompare:
		if a.Column == "" {
			return fmt.Errorf("assertions[%d]: column is required for field_compare", index)
		}
		if len(a.Where) == 0 {
			return fmt.Errorf("assertions[%d]: where is required for field_compare", index)
		}
		switch a.Op {
		case ">", ">=", "<", "<=", "==":
		default:
			return fmt.Errorf("assertions[%d]: op must be one of > >= < <= == for field_compare", index)
		}
	case AssertSQLMatch:
		// All inputs come from the scenario's sql field.
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
