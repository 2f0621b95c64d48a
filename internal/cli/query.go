package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relforge/scottql/internal/fixture"
	"github.com/relforge/scottql/internal/scenario"
)

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <name>",
		Short: "Execute one query program and print its result set",
		Long: `Execute a registered query program against the fixture tables and
print its result set.

Examples:
  scottql query emp_dept_join
  scottql query dept_avg_salary --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryProgram(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runQueryProgram(opts *RootOptions, name string, cmd *cobra.Command) error {
	query, ok := scenario.Lookup(name)
	if !ok {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("unknown query program %q (see scottql list --queries)", name))
	}

	rs := query(fixture.New())
	return renderResultSet(cmd.OutOrStdout(), rs, opts.Format)
}
