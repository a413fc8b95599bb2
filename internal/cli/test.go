package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/xfn/internal/canonical"
	"github.com/roach88/xfn/internal/config"
	"github.com/roach88/xfn/internal/fn"
	"github.com/roach88/xfn/internal/harness"
	"github.com/roach88/xfn/internal/store"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // suite filter (glob pattern on the file name)
	Label  string // label stored with the run
}

// SuiteReport is the outcome of one suite file.
type SuiteReport struct {
	Name   string   `json:"name"`
	File   string   `json:"file"`
	Pass   bool     `json:"pass"`
	Passed int      `json:"passed"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult is the outcome of a test command.
type TestResult struct {
	Suites []SuiteReport `json:"suites"`
	Passed int           `json:"passed"`
	Failed int           `json:"failed"`
	Total  int           `json:"total"`
	Cases  int           `json:"cases"`
	RunID  string        `json:"run_id,omitempty"`
}

// loadedSuite pairs a parsed suite with its file and report slot.
type loadedSuite struct {
	file   string
	suite  *harness.Suite
	report int
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test [suites-dir]",
		Short: "Run conformance suites",
		Long: `Run the YAML conformance suites in suites-dir (default: suites_dir from
the configuration) against the engine.

Each case must produce its expected literal or error code. When a golden
trace exists for a suite it must also match byte for byte. With --db the
run and every case result are recorded for later comparison with
"xfn runs diff".

Exit codes:
  0 - All suites passed
  1 - One or more suites failed
  2 - Command error (missing directory, unreadable database, etc.)

Examples:
  xfn test
  xfn test ./suites --filter "duration*"
  xfn test ./suites --update
  xfn test ./suites --db runs.db --label nightly
  xfn test ./suites --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.settings().SuitesDir
			if len(args) == 1 {
				dir = args[0]
			}
			return runTests(opts, dir, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter suites by glob pattern")
	cmd.Flags().StringVar(&opts.Label, "label", "", "label recorded with the run (requires --db)")

	return cmd
}

func runTests(opts *TestOptions, suitesDir string, cmd *cobra.Command) error {
	cfg := opts.settings()
	out := newFormatter(opts.RootOptions, cmd.OutOrStdout())
	log := opts.logger()

	if _, err := os.Stat(suitesDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("suites directory not found: %s", suitesDir))
	}

	files, err := harness.FindSuites(suitesDir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find suites", err)
	}
	if len(files) == 0 {
		if out.JSON() {
			return out.Respond(CLIResponse{Status: "ok", Data: TestResult{Suites: []SuiteReport{}}})
		}
		fmt.Fprintln(out.Writer, "No suites found.")
		return nil
	}

	result := TestResult{Suites: make([]SuiteReport, len(files)), Total: len(files)}
	var loaded []loadedSuite
	for i, file := range files {
		result.Suites[i] = SuiteReport{Name: suiteName(file), File: file}
		s, err := harness.LoadSuite(file)
		if err != nil {
			result.Suites[i].Errors = []string{fmt.Sprintf("failed to load suite: %v", err)}
			continue
		}
		result.Suites[i].Name = s.Name
		loaded = append(loaded, loadedSuite{file: file, suite: s, report: i})
	}

	reg, err := newRegistry()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load function catalog", err)
	}

	suites := make([]*harness.Suite, len(loaded))
	for i, l := range loaded {
		suites[i] = l.suite
	}
	runner := harness.NewRunner(reg, log)
	results, err := runner.RunAll(cmd.Context(), suites, cfg.Parallelism)
	if err != nil {
		return WrapExitError(ExitCommandError, "suite run aborted", err)
	}

	snapshots := make([]any, 0, len(results))
	for i, res := range results {
		l := loaded[i]
		report := &result.Suites[l.report]
		report.Passed, report.Failed = res.Counts()
		report.Errors = append(report.Errors, res.Errors...)
		result.Cases += len(res.Cases)

		snap, err := harness.Snapshot(res)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to snapshot trace", err)
		}
		snapshots = append(snapshots, string(snap))

		goldenPath := harness.GoldenPath(l.file, cfg.GoldenDir)
		switch {
		case opts.Update:
			if err := harness.WriteGolden(goldenPath, res); err != nil {
				report.Errors = append(report.Errors, err.Error())
			}
		case fileExists(goldenPath):
			match, err := harness.CompareGolden(goldenPath, res)
			if err != nil {
				report.Errors = append(report.Errors, err.Error())
			} else if !match {
				report.Errors = append(report.Errors, "trace does not match golden file (run with --update to regenerate)")
			}
		}
	}

	for i := range result.Suites {
		r := &result.Suites[i]
		r.Pass = len(r.Errors) == 0
		if r.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if cfg.Database != "" {
		runID, err := recordRun(cmd.Context(), cfg, opts.Label, reg, loaded, results, result)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		result.RunID = runID
		log.Info("run recorded", "run_id", runID, "database", cfg.Database)
	}

	traceID, err := canonical.Hash(canonical.DomainTrace, snapshots)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to hash trace", err)
	}

	if out.JSON() {
		return outputTestJSON(out, result, traceID)
	}
	return outputTestText(out, result)
}

// recordRun stores the run totals and every case result.
func recordRun(ctx context.Context, cfg *config.Config, label string, reg *fn.Registry,
	loaded []loadedSuite, results []*harness.Result, summary TestResult) (string, error) {
	st, err := store.Open(cfg.Database)
	if err != nil {
		return "", err
	}
	defer st.Close()

	catalogHash, err := reg.Catalog().Hash()
	if err != nil {
		return "", err
	}

	var cases []store.CaseResult
	passed := 0
	for i, res := range results {
		for _, c := range res.Cases {
			if c.Pass {
				passed++
			}
			cases = append(cases, store.CaseResult{
				Suite:     loaded[i].suite.Name,
				Case:      c.Name,
				Seq:       c.Seq,
				Call:      c.Call,
				Args:      c.Args,
				Pass:      c.Pass,
				Result:    c.Result,
				ErrorCode: c.Code,
			})
		}
	}

	run, err := st.WriteRun(ctx, store.Run{
		Label:         label,
		EngineVersion: Version,
		CatalogHash:   catalogHash,
		Suites:        summary.Total,
		Cases:         len(cases),
		Passed:        passed,
		Failed:        len(cases) - passed,
	})
	if err != nil {
		return "", err
	}
	if err := st.WriteCaseResults(ctx, run.ID, cases); err != nil {
		return "", err
	}
	return run.ID, nil
}

func outputTestJSON(out *OutputFormatter, result TestResult, traceID string) error {
	resp := CLIResponse{Status: "ok", Data: result, TraceID: traceID}
	if result.Failed > 0 {
		resp.Status = "error"
		resp.Error = &CLIError{
			Code:    "E_TEST_FAILED",
			Message: fmt.Sprintf("%d suite(s) failed", result.Failed),
		}
	}
	if err := out.Respond(resp); err != nil {
		return err
	}
	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d suite(s) failed", result.Failed))
	}
	return nil
}

func outputTestText(out *OutputFormatter, result TestResult) error {
	w := out.Writer
	for _, r := range result.Suites {
		if r.Pass {
			fmt.Fprintf(w, "✓ %s (%d cases)\n", r.Name, r.Passed)
			continue
		}
		fmt.Fprintf(w, "✗ %s (%d passed, %d failed)\n", r.Name, r.Passed, r.Failed)
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	if result.RunID != "" {
		fmt.Fprintf(w, "Run recorded: %s\n", result.RunID)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d suite(s) failed", result.Failed))
	}
	fmt.Fprintln(w, "✓ All suites passed")
	return nil
}

func suiteName(file string) string {
	base := filepath.Base(file)
	return base[:len(base)-len(filepath.Ext(base))]
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
