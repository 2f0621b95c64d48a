package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultSet_AppendAndAccess(t *testing.T) {
	rs := NewResultSet("ename", "sal")
	rs.Append("ALLEN", 1600.0)
	rs.Append("WARD", 1250.0)

	assert.Equal(t, 2, rs.Len())

	i, ok := rs.ColumnIndex("sal")
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = rs.ColumnIndex("missing")
	assert.False(t, ok)

	v, ok := rs.Value(1, "ename")
	require.True(t, ok)
	assert.Equal(t, "WARD", v)

	_, ok = rs.Value(5, "ename")
	assert.False(t, ok)
	_, ok = rs.Value(0, "missing")
	assert.False(t, ok)
}

func TestResultSet_AppendArityMismatchPanics(t *testing.T) {
	rs := NewResultSet("ename", "sal")
	assert.Panics(t, func() {
		rs.Append("ALLEN")
	})
}

func TestResultSet_EmptyHasZeroRows(t *testing.T) {
	rs := NewResultSet("a")
	assert.Equal(t, 0, rs.Len())
	assert.Empty(t, rs.Rows)
}
