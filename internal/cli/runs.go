package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/xfn/internal/store"
)

// RunDetail is a run together with its case results.
type RunDetail struct {
	Run   store.Run          `json:"run"`
	Cases []store.CaseResult `json:"cases"`
}

// NewRunsCommand creates the runs command group.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded conformance runs",
		Long: `Inspect conformance runs recorded by "xfn test --db".

Exit codes:
  0 - Success (for diff: the runs produced identical results)
  1 - diff found changed, added or removed cases
  2 - Command error (no database configured, unknown run, etc.)`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:           "list",
		Short:         "List recorded runs in order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(rootOpts, func(st *store.Store) error {
				return runsList(rootOpts, cmd, st)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "show <run-id>",
		Short:         "Show the case results of a run",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(rootOpts, func(st *store.Store) error {
				return runsShow(rootOpts, cmd, st, args[0])
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "diff <run-a> <run-b>",
		Short:         "Show cases whose result differs between two runs",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(rootOpts, func(st *store.Store) error {
				return runsDiff(rootOpts, cmd, st, args[0], args[1])
			})
		},
	})

	return cmd
}

// withStore opens the configured database for the duration of f.
func withStore(opts *RootOptions, f func(*store.Store) error) error {
	path := opts.settings().Database
	if path == "" {
		return NewExitError(ExitCommandError, "no database configured (use --db or database in xfn.yaml)")
	}
	if !fileExists(path) {
		return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", path))
	}
	st, err := store.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()
	return f(st)
}

func runNotFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return WrapExitError(ExitCommandError, "unknown run", err)
	}
	return WrapExitError(ExitCommandError, "failed to read runs", err)
}

func runsList(opts *RootOptions, cmd *cobra.Command, st *store.Store) error {
	out := newFormatter(opts, cmd.OutOrStdout())
	runs, err := st.ListRuns(cmd.Context())
	if err != nil {
		return runNotFound(err)
	}
	if out.JSON() {
		return out.Success(runs)
	}

	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{r.Seq, r.ID, r.Label, r.EngineVersion, r.Suites, r.Cases, r.Passed, r.Failed}
	}
	out.Table(table.Row{"Seq", "ID", "Label", "Engine", "Suites", "Cases", "Passed", "Failed"}, rows, "runs")
	return nil
}

func runsShow(opts *RootOptions, cmd *cobra.Command, st *store.Store, id string) error {
	out := newFormatter(opts, cmd.OutOrStdout())
	run, err := st.ReadRun(cmd.Context(), id)
	if err != nil {
		return runNotFound(err)
	}
	cases, err := st.ReadCaseResults(cmd.Context(), id)
	if err != nil {
		return runNotFound(err)
	}
	if out.JSON() {
		return out.Success(RunDetail{Run: run, Cases: cases})
	}

	fmt.Fprintf(out.Writer, "Run %s (seq %d, engine %s)\n", run.ID, run.Seq, run.EngineVersion)
	if run.Label != "" {
		fmt.Fprintf(out.Writer, "Label: %s\n", run.Label)
	}
	fmt.Fprintf(out.Writer, "Catalog: %s\n", run.CatalogHash)
	fmt.Fprintf(out.Writer, "Cases: %d passed, %d failed\n\n", run.Passed, run.Failed)

	rows := make([]table.Row, len(cases))
	for i, c := range cases {
		rows[i] = table.Row{c.Suite, c.Case, c.Call, strings.Join(c.Args, " "), outcomeOf(c), produced(&c)}
	}
	out.Table(table.Row{"Suite", "Case", "Call", "Args", "Outcome", "Produced"}, rows, "cases")
	return nil
}

func runsDiff(opts *RootOptions, cmd *cobra.Command, st *store.Store, a, b string) error {
	out := newFormatter(opts, cmd.OutOrStdout())
	diffs, err := st.DiffRuns(cmd.Context(), a, b)
	if err != nil {
		return runNotFound(err)
	}

	if out.JSON() {
		if err := out.Success(diffs); err != nil {
			return err
		}
	} else {
		rows := make([]table.Row, len(diffs))
		for i, d := range diffs {
			rows[i] = table.Row{d.Suite, d.Case, d.Kind, produced(d.Before), produced(d.After)}
		}
		out.Table(table.Row{"Suite", "Case", "Change", a, b}, rows, "differences")
	}

	if len(diffs) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d case(s) differ", len(diffs)))
	}
	return nil
}

func outcomeOf(c store.CaseResult) string {
	if c.Pass {
		return "pass"
	}
	return "FAIL"
}

// produced renders what the engine returned for c: the result literal or
// "error CODE". A nil case renders as "-".
func produced(c *store.CaseResult) string {
	switch {
	case c == nil:
		return "-"
	case c.ErrorCode != "":
		return "error " + c.ErrorCode
	default:
		return c.Result
	}
}
