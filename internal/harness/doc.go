// Package harness executes query scenarios and evaluates their
// assertions.
//
// A scenario names a registered query program and the expectations its
// result set must satisfy. The harness runs each scenario against a
// fresh fixture set, evaluates the assertions, and optionally
// cross-checks the result against the SQLite oracle's answer to the
// scenario's reference SQL.
//
// # Failure isolation
//
// Scenarios are independent: an assertion failure, a panicking query
// program, or an oracle error marks that scenario failed and the run
// continues with the next one. RunAll never aborts on a scenario
// failure.
//
// # Determinism
//
// Query programs are pure functions over immutable fixture data, so
// every run of a scenario produces an identical result set. Golden
// snapshots (RunWithGolden) rely on this: the canonical JSON rendering
// of a result set is byte-identical across runs.
package harness
