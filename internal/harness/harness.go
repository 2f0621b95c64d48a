package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/relforge/scottql/internal/fixture"
	"github.com/relforge/scottql/internal/oracle"
	"github.com/relforge/scottql/internal/scenario"
)

// discardLogger suppresses harness logs when the caller passes nil.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Run executes a single scenario and returns its result.
//
// Each scenario runs against a fresh fixture set, and an oracle
// database is opened only when the scenario carries a sql_match
// assertion. All failures (unknown program, panicking program, oracle
// errors, assertion failures) are recorded on the result; Run itself
// never fails.
func Run(ctx context.Context, sc *scenario.Scenario, logger *slog.Logger) *Result {
	if logger == nil {
		logger = discardLogger()
	}

	result := newResult(sc.Name)

	query, ok := scenario.Lookup(sc.Query)
	if !ok {
		result.AddError(fmt.Sprintf("unknown query program %q", sc.Query))
		return result
	}

	fx := fixture.New()
	if err := fx.Validate(); err != nil {
		result.AddError(fmt.Sprintf("fixture validation: %v", err))
		return result
	}

	rows, err := runQuery(query, fx)
	if err != nil {
		result.AddError(err.Error())
		return result
	}
	result.Rows = rows

	var ora *oracle.DB
	if needsOracle(sc) {
		ora, err = oracle.Open(fx)
		if err != nil {
			result.AddError(fmt.Sprintf("open oracle: %v", err))
			return result
		}
		defer ora.Close()
	}

	for _, msg := range EvaluateAssertions(ctx, rows, sc, ora) {
		result.AddError(msg)
	}

	logger.Info("scenario finished",
		"scenario", sc.Name,
		"run_id", result.RunID,
		"rows", rows.Len(),
		"pass", result.Pass,
	)

	return result
}

// RunAll executes every scenario independently and aggregates the
// results. One scenario's failure never aborts the run.
func RunAll(ctx context.Context, scs []*scenario.Scenario, logger *slog.Logger) *Report {
	if logger == nil {
		logger = discardLogger()
	}

	report := &Report{}
	for _, sc := range scs {
		report.add(Run(ctx, sc, logger))
	}

	logger.Info("run finished",
		"total", report.Total,
		"passed", report.Passed,
		"failed", report.Failed,
	)

	return report
}

// runQuery executes a query program, converting a panic into an error
// so a broken program cannot take down the whole run.
func runQuery(query scenario.QueryFunc, fx *fixture.Set) (rs *scenario.ResultSet, err error) {
	defer func() {
		if r := recover(); r != nil {
			rs = nil
			err = fmt.Errorf("query program panicked: %v", r)
		}
	}()
	return query(fx), nil
}

// needsOracle reports whether any assertion requires the reference
// database.
func needsOracle(sc *scenario.Scenario) bool {
	for _, a := range sc.Assertions {
		if a.Type == scenario.AssertSQLMatch {
			return true
		}
	}
	return false
}
