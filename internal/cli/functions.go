package cli

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/xfn/internal/catalog"
)

// FunctionsOptions holds flags for the functions command.
type FunctionsOptions struct {
	*RootOptions
	Family string
}

// NewFunctionsCommand creates the functions command.
func NewFunctionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FunctionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "functions",
		Short: "List the function catalog",
		Long: `List every function in the catalog with its signature, family and
status. Unsupported functions are declared but raise FOER0000.

Examples:
  xfn functions
  xfn functions --family dateTime
  xfn functions --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFunctions(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Family, "family", "", "only list functions of this family")

	return cmd
}

func runFunctions(opts *FunctionsOptions, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd.OutOrStdout())

	cat, err := catalog.Load()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load function catalog", err)
	}

	funcs := []catalog.Function{}
	for _, f := range cat.Functions() {
		if opts.Family == "" || f.Family == opts.Family {
			funcs = append(funcs, f)
		}
	}

	if out.JSON() {
		return out.Success(funcs)
	}

	rows := make([]table.Row, len(funcs))
	for i, f := range funcs {
		rows[i] = table.Row{f.Name, strings.Join(f.Params, ", "), f.Returns, f.Family, f.Status}
	}
	out.Table(table.Row{"Name", "Params", "Returns", "Family", "Status"}, rows, "functions")
	return nil
}
