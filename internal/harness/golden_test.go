package harness

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relforge/scottql/internal/scenario"
)

// Every registered query program has a golden snapshot of its result
// set. Regenerate with: go test ./internal/harness -update
func TestGolden_AllQueryPrograms(t *testing.T) {
	for _, name := range scenario.Names() {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, RunWithGolden(t, name))
		})
	}
}

func TestRunWithGolden_UnknownQuery(t *testing.T) {
	err := RunWithGolden(t, "no_such_program")
	require.Error(t, err)
}
