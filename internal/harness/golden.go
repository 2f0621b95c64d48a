package harness

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/relforge/scottql/internal/fixture"
	"github.com/relforge/scottql/internal/scenario"
)

// RunWithGolden executes a scenario's query program and compares its
// result set against a golden file.
// The golden file is stored in testdata/golden/{queryName}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Query programs are pure functions over the immutable fixture set, so
// the JSON rendering of the result set is byte-identical across runs
// and serves as the source of truth for expected query behavior.
func RunWithGolden(t *testing.T, queryName string) error {
	t.Helper()

	query, ok := scenario.Lookup(queryName)
	if !ok {
		return fmt.Errorf("unknown query program %q", queryName)
	}

	rows := query(fixture.New())

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, queryName, data)

	return nil
}
