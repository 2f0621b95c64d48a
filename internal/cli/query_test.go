package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relforge/scottql/internal/scenario"
)

func TestQuery_TextOutput(t *testing.T) {
	out, err := execute(t, "query", "employees_with_job_salesman")
	require.NoError(t, err)
	assert.Contains(t, out, "ALLEN")
	assert.Contains(t, out, "WARD")
	assert.Contains(t, out, "(2 rows)")
}

func TestQuery_JSONOutput(t *testing.T) {
	out, err := execute(t, "query", "dept_headcount", "--format", "json")
	require.NoError(t, err)

	var rs scenario.ResultSet
	require.NoError(t, json.Unmarshal([]byte(out), &rs))
	assert.Equal(t, []string{"deptno", "headcount"}, rs.Columns)
	assert.Len(t, rs.Rows, 3)
}

func TestQuery_UnknownProgram(t *testing.T) {
	_, err := execute(t, "query", "no_such_program")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
