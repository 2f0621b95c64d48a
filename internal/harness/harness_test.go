package harness

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relforge/scottql/internal/fixture"
	"github.com/relforge/scottql/internal/scenario"
)

func TestRun_PassingScenario(t *testing.T) {
	sc := &scenario.Scenario{
		Name:        "salesman_inline",
		Description: "two salesmen",
		Query:       "employees_with_job_salesman",
		Assertions: []scenario.Assertion{
			{Type: scenario.AssertRowCount, Count: 2},
			{Type: scenario.AssertContainsRow, Row: map[string]any{"ename": "ALLEN"}},
		},
	}

	result := Run(context.Background(), sc, nil)

	assert.True(t, result.Pass)
	assert.Empty(t, result.Errors)
	assert.NotEmpty(t, result.RunID)
	require.NotNil(t, result.Rows)
	assert.Equal(t, 2, result.Rows.Len())
}

func TestRun_FailingAssertionRecorded(t *testing.T) {
	sc := &scenario.Scenario{
		Name:        "wrong_count",
		Description: "expects the wrong row count",
		Query:       "employees_with_job_salesman",
		Assertions: []scenario.Assertion{
			{Type: scenario.AssertRowCount, Count: 5},
		},
	}

	result := Run(context.Background(), sc, nil)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "row_count")
	// The result set is still attached for debugging.
	assert.NotNil(t, result.Rows)
}

func TestRun_UnknownQueryProgram(t *testing.T) {
	sc := &scenario.Scenario{
		Name:        "ghost",
		Description: "names a program that does not exist",
		Query:       "no_such_program",
		Assertions:  []scenario.Assertion{{Type: scenario.AssertRowCount, Count: 0}},
	}

	result := Run(context.Background(), sc, nil)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "unknown query program")
	assert.Nil(t, result.Rows)
}

func TestRun_SQLMatchOpensOracle(t *testing.T) {
	sc := &scenario.Scenario{
		Name:        "oracle_check",
		Description: "cross-checks against the reference database",
		Query:       "dept_headcount",
		SQL:         "SELECT deptno, COUNT(*) AS headcount FROM emp GROUP BY deptno",
		Assertions:  []scenario.Assertion{{Type: scenario.AssertSQLMatch}},
	}

	result := Run(context.Background(), sc, nil)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunAll_FailureIsolation(t *testing.T) {
	scs := []*scenario.Scenario{
		{
			Name:        "fails_first",
			Description: "fails",
			Query:       "employees_with_job_salesman",
			Assertions:  []scenario.Assertion{{Type: scenario.AssertRowCount, Count: 99}},
		},
		{
			Name:        "passes_second",
			Description: "passes despite the earlier failure",
			Query:       "dept_headcount",
			Assertions:  []scenario.Assertion{{Type: scenario.AssertRowCount, Count: 3}},
		},
	}

	report := RunAll(context.Background(), scs, nil)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Results, 2)
	assert.False(t, report.Results[0].Pass)
	assert.True(t, report.Results[1].Pass)
}

func TestRunAll_EmptyInput(t *testing.T) {
	report := RunAll(context.Background(), nil, nil)

	assert.Zero(t, report.Total)
	assert.Zero(t, report.Failed)
	assert.Empty(t, report.Results)
}

func TestRunAll_DistinctRunIDs(t *testing.T) {
	sc := &scenario.Scenario{
		Name:        "id_check",
		Description: "run IDs are unique per execution",
		Query:       "dept_headcount",
		Assertions:  []scenario.Assertion{{Type: scenario.AssertRowCount, Count: 3}},
	}

	a := Run(context.Background(), sc, nil)
	b := Run(context.Background(), sc, nil)

	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRunQuery_PanicRecorded(t *testing.T) {
	panicking := func(fx *fixture.Set) *scenario.ResultSet {
		panic("broken program")
	}

	rs, err := runQuery(panicking, fixture.New())

	assert.Nil(t, rs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query program panicked")
	assert.Contains(t, err.Error(), "broken program")
}

func TestRun_ShippedScenariosAllPass(t *testing.T) {
	scs, err := scenario.LoadDir(filepath.Join("..", "..", "scenarios"))
	require.NoError(t, err)
	require.NotEmpty(t, scs)

	report := RunAll(context.Background(), scs, nil)

	for _, r := range report.Results {
		assert.True(t, r.Pass, "scenario %s failed: %v", r.Name, r.Errors)
	}
	assert.Equal(t, report.Total, report.Passed)
}
