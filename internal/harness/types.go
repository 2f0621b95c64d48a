package harness

import (
	"github.com/google/uuid"

	"github.com/relforge/scottql/internal/scenario"
)

// Result is the outcome of one scenario execution.
type Result struct {
	// Name is the scenario name.
	Name string `json:"name"`

	// RunID uniquely identifies this execution.
	RunID string `json:"run_id"`

	// Pass indicates overall scenario success.
	Pass bool `json:"pass"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Rows is the result set the query program produced.
	// Nil when the program could not be executed.
	Rows *scenario.ResultSet `json:"rows,omitempty"`
}

// newResult creates a new passing result for the named scenario.
func newResult(name string) *Result {
	return &Result{
		Name:  name,
		RunID: uuid.NewString(),
		Pass:  true,
	}
}

// AddError records a failure message and marks the result as failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// Report aggregates the results of a scenario run.
type Report struct {
	Results []*Result `json:"results"`
	Passed  int       `json:"passed"`
	Failed  int       `json:"failed"`
	Total   int       `json:"total"`
}

// add appends a result and updates the counters.
func (rep *Report) add(r *Result) {
	rep.Results = append(rep.Results, r)
	rep.Total++
	if r.Pass {
		rep.Passed++
	} else {
		rep.Failed++
	}
}
