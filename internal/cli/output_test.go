package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relforge/scottql/internal/scenario"
)

func TestRenderResultSet_Table(t *testing.T) {
	rs := scenario.NewResultSet("ename", "comm")
	rs.Append("ALLEN", 300.0)
	rs.Append("SMITH", nil)

	buf := new(bytes.Buffer)
	require.NoError(t, renderResultSet(buf, rs, "text"))

	out := buf.String()
	assert.Contains(t, out, "ENAME")
	assert.Contains(t, out, "ALLEN")
	// Absent values render as NULL, never as a zero.
	assert.Contains(t, out, "NULL")
	assert.Contains(t, out, "(2 rows)")
}

func TestRenderResultSet_Empty(t *testing.T) {
	rs := scenario.NewResultSet("ename")

	buf := new(bytes.Buffer)
	require.NoError(t, renderResultSet(buf, rs, "text"))
	assert.Equal(t, "(0 rows)\n", buf.String())
}

func TestRenderResultSet_JSON(t *testing.T) {
	rs := scenario.NewResultSet("ename", "sal")
	rs.Append("KING", 5000.0)

	buf := new(bytes.Buffer)
	require.NoError(t, renderResultSet(buf, rs, "json"))

	var decoded scenario.ResultSet
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"ename", "sal"}, decoded.Columns)
	require.Len(t, decoded.Rows, 1)
	assert.Equal(t, "KING", decoded.Rows[0][0])
}

func TestExitError(t *testing.T) {
	err := NewExitError(ExitCommandError, "bad path")
	assert.Equal(t, "bad path", err.Error())
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	wrapped := WrapExitError(ExitFailure, "run failed", errors.New("boom"))
	assert.Equal(t, "run failed: boom", wrapped.Error())
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))

	// Wrapped further up the chain still carries its code.
	chained := fmt.Errorf("outer: %w", wrapped)
	assert.Equal(t, ExitFailure, GetExitCode(chained))

	// Plain errors default to failure.
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "NULL", formatValue(nil))
	assert.Equal(t, "ALLEN", formatValue("ALLEN"))
	assert.Equal(t, "30", formatValue(30))
	assert.Equal(t, "1600", formatValue(1600.0))
}
