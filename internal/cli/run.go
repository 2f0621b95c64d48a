package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/relforge/scottql/internal/harness"
	"github.com/relforge/scottql/internal/scenario"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Update bool   // regenerate golden snapshots
	Filter string // scenario filter (glob pattern)
}

// scenarioOutcome holds the result of a single scenario execution.
type scenarioOutcome struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// runSummary holds the overall run result.
type runSummary struct {
	Scenarios []scenarioOutcome `json:"scenarios"`
	Passed    int               `json:"passed"`
	Failed    int               `json:"failed"`
	Total     int               `json:"total"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [scenarios-dir]",
		Short: "Run scenarios against the fixture tables",
		Long: `Execute scenario files, validating each query program's result set
against the scenario's assertions and, when present, its golden
snapshot under <scenarios-dir>/golden/.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  scottql run ./scenarios
  scottql run ./scenarios --filter "dept_*"
  scottql run ./scenarios --update
  scottql run ./scenarios --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.ScenariosDir()
			if len(args) == 1 {
				dir = args[0]
			}
			return runScenarios(opts, dir, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden snapshots")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runScenarios(opts *RunOptions, dir string, cmd *cobra.Command) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", dir))
	}

	files, err := findScenarioFiles(dir, opts.Filter)
	if err != nil {
		return fmt.Errorf("failed to find scenarios: %w", err)
	}

	if len(files) == 0 {
		if opts.Format == "json" {
			return outputRunJSON(cmd, runSummary{Scenarios: []scenarioOutcome{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
		return nil
	}

	logger := opts.Logger(cmd.ErrOrStderr())

	summary := runSummary{
		Scenarios: make([]scenarioOutcome, 0, len(files)),
		Total:     len(files),
	}

	for _, path := range files {
		outcome := runScenarioFile(cmd.Context(), path, dir, opts, logger, cmd)
		summary.Scenarios = append(summary.Scenarios, outcome)

		if outcome.Pass {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}

	if opts.Format == "json" {
		return outputRunJSON(cmd, summary)
	}

	return outputRunText(cmd, summary)
}

// findScenarioFiles finds the YAML scenario files in dir, optionally
// filtered by a glob pattern over the file name without extension.
func findScenarioFiles(dir string, filter string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		if filter != "" {
			name := strings.TrimSuffix(e.Name(), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return nil, fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				continue
			}
		}

		files = append(files, filepath.Join(dir, e.Name()))
	}

	return files, nil
}

// runScenarioFile loads and executes a single scenario file and
// returns its outcome.
func runScenarioFile(ctx context.Context, path, dir string, opts *RunOptions, logger *slog.Logger, cmd *cobra.Command) scenarioOutcome {
	w := cmd.OutOrStdout()

	sc, err := scenario.Load(path)
	if err != nil {
		if opts.Format != "json" {
			fmt.Fprintf(w, "✗ %s\n", filepath.Base(path))
			fmt.Fprintf(w, "  Load error: %v\n", err)
		}
		return scenarioOutcome{
			Name:   filepath.Base(path),
			Pass:   false,
			Errors: []string{fmt.Sprintf("failed to load scenario: %v", err)},
		}
	}

	result := harness.Run(ctx, sc, logger)

	// Handle golden snapshot comparison
	if opts.Update {
		if err := updateGoldenSnapshot(sc, result, dir); err != nil {
			if opts.Format != "json" {
				fmt.Fprintf(w, "✗ %s\n", sc.Name)
				fmt.Fprintf(w, "  Golden update error: %v\n", err)
			}
			return scenarioOutcome{
				Name:   sc.Name,
				Pass:   false,
				Errors: []string{fmt.Sprintf("failed to update golden snapshot: %v", err)},
			}
		}
		if opts.Format != "json" {
			fmt.Fprintf(w, "✓ %s (golden updated)\n", sc.Name)
		}
		return scenarioOutcome{Name: sc.Name, Pass: true}
	}

	errs := append([]string(nil), result.Errors...)

	goldenPath := goldenSnapshotPath(dir, sc.Name)
	if _, statErr := os.Stat(goldenPath); statErr == nil {
		match, err := compareGoldenSnapshot(result, goldenPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("golden comparison failed: %v", err))
		} else if !match {
			errs = append(errs, "result does not match golden snapshot (run with --update to regenerate)")
		}
	}

	if len(errs) > 0 {
		if opts.Format != "json" {
			fmt.Fprintf(w, "✗ %s\n", sc.Name)
			for _, e := range errs {
				fmt.Fprintf(w, "  %s\n", e)
			}
		}
		return scenarioOutcome{Name: sc.Name, Pass: false, Errors: errs}
	}

	if opts.Format != "json" {
		fmt.Fprintf(w, "✓ %s\n", sc.Name)
	}
	return scenarioOutcome{Name: sc.Name, Pass: true}
}

// goldenSnapshotPath returns the golden snapshot path for a scenario.
func goldenSnapshotPath(dir, name string) string {
	return filepath.Join(dir, "golden", name+".golden")
}

// resultSnapshot renders a result set the way the golden files store
// it: indented JSON with a trailing newline.
func resultSnapshot(rs *scenario.ResultSet) ([]byte, error) {
	data, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// updateGoldenSnapshot writes the current result set as the golden
// snapshot.
func updateGoldenSnapshot(sc *scenario.Scenario, result *harness.Result, dir string) error {
	if result.Rows == nil {
		return fmt.Errorf("scenario produced no result set: %s", strings.Join(result.Errors, "; "))
	}

	goldenPath := goldenSnapshotPath(dir, sc.Name)
	if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}

	data, err := resultSnapshot(result.Rows)
	if err != nil {
		return fmt.Errorf("failed to marshal result set: %w", err)
	}

	if err := os.WriteFile(goldenPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write golden snapshot: %w", err)
	}

	return nil
}

// compareGoldenSnapshot compares the result set against the golden
// snapshot byte for byte.
func compareGoldenSnapshot(result *harness.Result, goldenPath string) (bool, error) {
	if result.Rows == nil {
		return false, fmt.Errorf("scenario produced no result set")
	}

	goldenData, err := os.ReadFile(goldenPath)
	if err != nil {
		return false, fmt.Errorf("failed to read golden snapshot: %w", err)
	}

	currentData, err := resultSnapshot(result.Rows)
	if err != nil {
		return false, fmt.Errorf("failed to marshal result set: %w", err)
	}

	return string(goldenData) == string(currentData), nil
}

// outputRunJSON outputs the run summary as JSON.
func outputRunJSON(cmd *cobra.Command, summary runSummary) error {
	status := "ok"
	response := CLIResponse{Status: status, Data: summary}

	if summary.Failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_RUN_FAILED",
			Message: fmt.Sprintf("%d scenario(s) failed", summary.Failed),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if summary.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", summary.Failed))
	}
	return nil
}

// outputRunText outputs the run summary as text.
func outputRunText(cmd *cobra.Command, summary runSummary) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Run Summary: %d passed, %d failed, %d total\n", summary.Passed, summary.Failed, summary.Total)

	if summary.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", summary.Failed))
	}

	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}
