package relq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortByCollated_AlphabeticalOrder(t *testing.T) {
	in := []row{
		{"WARD", 30, 1250},
		{"ALLEN", 30, 1600},
		{"MILLER", 10, 1300},
	}

	got := SortByCollated(in, func(r row) string { return r.Name }, NewCollator())

	require.Len(t, got, 3)
	assert.Equal(t, "ALLEN", got[0].Name)
	assert.Equal(t, "MILLER", got[1].Name)
	assert.Equal(t, "WARD", got[2].Name)
	// Input untouched.
	assert.Equal(t, "WARD", in[0].Name)
}

func TestSortByCollated_CaseInsensitiveAcrossCase(t *testing.T) {
	in := []row{{"beta", 1, 1}, {"Alpha", 2, 2}}

	got := SortByCollated(in, func(r row) string { return r.Name }, NewCollator())

	assert.Equal(t, "Alpha", got[0].Name)
	assert.Equal(t, "beta", got[1].Name)
}
