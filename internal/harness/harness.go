package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/xfn/internal/fn"
	"github.com/roach88/xfn/internal/literal"
	"github.com/roach88/xfn/internal/testutil"
	"github.com/roach88/xfn/internal/value"
)

// CaseResult is the recorded outcome of one case.
type CaseResult struct {
	Seq  int64    `json:"seq"`
	Name string   `json:"case"`
	Call string   `json:"call"`
	Args []string `json:"args"`

	// Result is the canonical literal of the value returned, if any.
	Result string `json:"result,omitempty"`

	// Code and Message describe the failure returned, if any.
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`

	Pass bool `json:"pass"`
}

// Result is the outcome of a suite.
type Result struct {
	Suite  string       `json:"suite"`
	Pass   bool         `json:"pass"`
	Cases  []CaseResult `json:"cases"`
	Errors []string     `json:"errors,omitempty"`
}

// NewResult returns a passing, empty result for the named suite.
func NewResult(suite string) *Result {
	return &Result{Suite: suite, Pass: true, Cases: []CaseResult{}, Errors: []string{}}
}

// AddError records a failure message and marks the result failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// Counts returns the number of passing and failing cases.
func (r *Result) Counts() (passed, failed int) {
	for _, c := range r.Cases {
		if c.Pass {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// Runner evaluates suites against a registry. It is safe for concurrent
// use; each Run gets its own clock.
type Runner struct {
	reg    *fn.Registry
	logger *slog.Logger
}

// NewRunner returns a runner. A nil logger discards output.
func NewRunner(reg *fn.Registry, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{reg: reg, logger: logger}
}

// Run evaluates suite with a discarding logger.
func Run(ctx context.Context, suite *Suite, reg *fn.Registry) (*Result, error) {
	return NewRunner(reg, nil).Run(ctx, suite)
}

// Run evaluates every case in order. Case failures are reported in the
// result; the error is non-nil only when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, suite *Suite) (*Result, error) {
	clock := testutil.NewDeterministicClock()
	result := NewResult(suite.Name)

	for _, c := range suite.Cases {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("suite %s: %w", suite.Name, err)
		}
		cr := r.runCase(c, clock.Next())
		result.Cases = append(result.Cases, cr)
		if !cr.Pass {
			result.AddError(describeFailure(c, cr))
		}
		r.logger.Debug("case evaluated",
			"suite", suite.Name,
			"case", c.Name,
			"call", c.Call,
			"seq", cr.Seq,
			"pass", cr.Pass,
		)
	}

	passed, failed := result.Counts()
	r.logger.Info("suite completed", "suite", suite.Name, "passed", passed, "failed", failed)
	return result, nil
}

// RunAll evaluates suites concurrently, at most parallelism at a time, and
// returns results in input order.
func (r *Runner) RunAll(ctx context.Context, suites []*Suite, parallelism int) ([]*Result, error) {
	if parallelism < 1 {
		parallelism = 1
	}
	results := make([]*Result, len(suites))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, s := range suites {
		g.Go(func() error {
			res, err := r.Run(ctx, s)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) runCase(c Case, seq int64) CaseResult {
	cr := CaseResult{Seq: seq, Name: c.Name, Call: c.Call, Args: make([]string, 0, len(c.Args))}

	got, err := r.evaluate(c, &cr)
	if err != nil {
		cr.Code = string(value.CodeOf(err))
		cr.Message = err.Error()
	} else {
		cr.Result = literal.Format(got)
	}

	switch {
	case c.Error != "":
		cr.Pass = err != nil && cr.Code == c.Error
	case c.Expect != nil:
		want, perr := literal.Parse(*c.Expect)
		if perr != nil {
			cr.Message = fmt.Sprintf("invalid expect %q: %v", *c.Expect, perr)
			return cr
		}
		cr.Pass = err == nil && cr.Result == literal.Format(want)
	}
	return cr
}

func (r *Runner) evaluate(c Case, cr *CaseResult) (value.Value, error) {
	ops := make([]fn.Operand, len(c.Args))
	var parseErr error
	for i, a := range c.Args {
		op, err := a.Operand()
		if err != nil {
			cr.Args = append(cr.Args, a.String())
			if parseErr == nil {
				parseErr = err
			}
			continue
		}
		ops[i] = op
		cr.Args = append(cr.Args, literal.FormatOperand(op))
	}
	if parseErr != nil {
		return nil, parseErr
	}
	return r.reg.Apply(c.Call, ops...)
}

func describeFailure(c Case, cr CaseResult) string {
	got := cr.Result
	if cr.Code != "" || got == "" {
		got = "error " + cr.Code
		if cr.Message != "" {
			got += " (" + cr.Message + ")"
		}
	}
	want := c.Error
	if c.Expect != nil {
		want = *c.Expect
	} else {
		want = "error " + want
	}
	return fmt.Sprintf("%s: %s = %s, want %s", c.Name, c.Call, got, want)
}
