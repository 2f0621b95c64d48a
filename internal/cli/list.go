package cli

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/relforge/scottql/internal/scenario"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Queries bool // list registered query programs instead of scenarios
}

// scenarioInfo is one row of the scenario inventory.
type scenarioInfo struct {
	Name        string `json:"name"`
	Query       string `json:"query"`
	Assertions  int    `json:"assertions"`
	Description string `json:"description"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list [scenarios-dir]",
		Short: "List scenarios or query programs",
		Long: `List the scenario inventory of a directory, or with --queries the
query programs registered in this binary.

Examples:
  scottql list ./scenarios
  scottql list --queries
  scottql list ./scenarios --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Queries {
				return listQueries(opts, cmd)
			}
			dir := opts.ScenariosDir()
			if len(args) == 1 {
				dir = args[0]
			}
			return listScenarios(opts, dir, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Queries, "queries", false, "list registered query programs")

	return cmd
}

func listScenarios(opts *ListOptions, dir string, cmd *cobra.Command) error {
	scs, err := scenario.LoadDir(dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenarios", err)
	}

	infos := make([]scenarioInfo, 0, len(scs))
	for _, sc := range scs {
		infos = append(infos, scenarioInfo{
			Name:        sc.Name,
			Query:       sc.Query,
			Assertions:  len(sc.Assertions),
			Description: sc.Description,
		})
	}

	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{Status: "ok", Data: infos})
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Query", "Assertions", "Description"})
	for _, info := range infos {
		t.AppendRow(table.Row{info.Name, info.Query, info.Assertions, info.Description})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d scenarios)\n", len(infos))
	return nil
}

func listQueries(opts *ListOptions, cmd *cobra.Command) error {
	names := scenario.Names()

	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{Status: "ok", Data: names})
	}

	for _, name := range names {
		_, _ = fmt.Fprintln(w, name)
	}
	return nil
}
