// Package testutil provides helpers shared by tests across packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteScenarioFile writes a scenario YAML document into dir and
// returns its path. The file is cleaned up with the test's temp dir.
func WriteScenarioFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write scenario file %s: %v", name, err)
	}
	return path
}

// PassingScenarioYAML is a minimal scenario document that passes
// against the fixture data. Tests that only need "some valid scenario
// file" use it as-is.
const PassingScenarioYAML = `name: salesman_smoke
description: "two employees hold the SALESMAN job"
query: employees_with_job_salesman
assertions:
  - type: row_count
    count: 2
`

// FailingScenarioYAML is a minimal scenario document whose assertion
// does not hold against the fixture data.
const FailingScenarioYAML = `name: salesman_wrong_count
description: "expects the wrong number of salesmen"
query: employees_with_job_salesman
assertions:
  - type: row_count
    count: 99
`
