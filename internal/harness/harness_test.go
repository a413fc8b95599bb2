package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/xfn/internal/catalog"
	"github.com/roach88/xfn/internal/fn"
	"github.com/roach88/xfn/internal/numeric"
	"github.com/roach88/xfn/internal/testutil"
)

func newRunner(t *testing.T) *Runner {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	reg, err := fn.New(cat, numeric.Default())
	require.NoError(t, err)
	return NewRunner(reg, testutil.NewTestLogger(t))
}

func expect(s string) *string { return &s }

func TestShippedSuitesPass(t *testing.T) {
	runner := newRunner(t)
	files, err := FindSuites("testdata/suites", "")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			suite, err := LoadSuite(file)
			require.NoError(t, err)

			result, err := runner.Run(context.Background(), suite)
			require.NoError(t, err)
			assert.True(t, result.Pass, "failures: %v", result.Errors)
			assert.Len(t, result.Cases, len(suite.Cases))
		})
	}
}

func TestRunAssignsSequentialSeq(t *testing.T) {
	suite := &Suite{
		Name:        "seq",
		Description: "seq numbering",
		Cases: []Case{
			{Name: "a", Call: "fn:true", Expect: expect("true")},
			{Name: "b", Call: "fn:false", Expect: expect("false")},
			{Name: "c", Call: "fn:not", Args: []Arg{LiteralArg("true")}, Expect: expect("false")},
		},
	}
	result, err := Run(context.Background(), suite, newRunner(t).reg)
	require.NoError(t, err)
	require.Len(t, result.Cases, 3)
	for i, c := range result.Cases {
		assert.Equal(t, int64(i+1), c.Seq)
	}

	again, err := Run(context.Background(), suite, newRunner(t).reg)
	require.NoError(t, err)
	assert.Equal(t, result, again)
}

func TestRunReportsMismatches(t *testing.T) {
	suite := &Suite{
		Name:        "mismatch",
		Description: "wrong expectations",
		Cases: []Case{
			{Name: "wrong-value", Call: "op:numeric-add", Args: []Arg{LiteralArg("1"), LiteralArg("2")}, Expect: expect("4")},
			{Name: "wrong-code", Call: "op:numeric-divide", Args: []Arg{LiteralArg("1"), LiteralArg("0")}, Error: "FOAR0002"},
			{Name: "expected-error", Call: "op:numeric-add", Args: []Arg{LiteralArg("1"), LiteralArg("2")}, Error: "FOAR0002"},
			{Name: "bad-expect", Call: "fn:true", Expect: expect("nonsense")},
			{Name: "ok", Call: "fn:true", Expect: expect("true()")},
		},
	}
	result, err := newRunner(t).Run(context.Background(), suite)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	passed, failed := result.Counts()
	assert.Equal(t, 1, passed)
	assert.Equal(t, 4, failed)
	require.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors[0], "= 3, want 4")
	assert.Contains(t, result.Errors[1], "error FOAR0001")
	assert.Equal(t, "3", result.Cases[2].Result)
	assert.Contains(t, result.Cases[3].Message, "invalid expect")
}

func TestRunRecordsArgumentParseErrors(t *testing.T) {
	suite := &Suite{
		Name:        "parse",
		Description: "argument parse failures are case outcomes",
		Cases: []Case{
			{Name: "bad-month", Call: "fn:year-from-dateTime", Args: []Arg{LiteralArg("xs:dateTime('2024-13-01T00:00:00Z')")}, Error: "FORG0001"},
		},
	}
	result, err := newRunner(t).Run(context.Background(), suite)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
	assert.Equal(t, []string{"xs:dateTime('2024-13-01T00:00:00Z')"}, result.Cases[0].Args)
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	suite := &Suite{Name: "x", Description: "x", Cases: []Case{{Name: "a", Call: "fn:true", Expect: expect("true")}}}
	_, err := newRunner(t).Run(ctx, suite)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunAllPreservesOrder(t *testing.T) {
	runner := newRunner(t)
	files, err := FindSuites("testdata/suites", "")
	require.NoError(t, err)

	var suites []*Suite
	for _, f := range files {
		s, err := LoadSuite(f)
		require.NoError(t, err)
		suites = append(suites, s)
	}

	results, err := runner.RunAll(context.Background(), suites, 3)
	require.NoError(t, err)
	require.Len(t, results, len(suites))
	for i, r := range results {
		assert.Equal(t, suites[i].Name, r.Suite)
		assert.True(t, r.Pass, r.Errors)
	}
}

func TestGoldenTraces(t *testing.T) {
	runner := newRunner(t)

	suite, err := LoadSuite("testdata/suites/boolean.yaml")
	require.NoError(t, err)
	_, err = RunWithGolden(t, runner, suite)
	require.NoError(t, err)

	partial := &Suite{
		Name:        "partial_sequences",
		Description: "partial sequence trace",
		Cases: []Case{
			{Name: "sum-partial", Call: "xfn:sum", Args: []Arg{SeqArg(3, "10", "20", "30", "40", "50")}, Expect: expect("60")},
			{Name: "avg-empty", Call: "xfn:avg", Args: []Arg{SeqArg(0)}, Error: "FOAR0001"},
			{Name: "mismatch", Call: "op:numeric-add", Args: []Arg{LiteralArg("1"), LiteralArg("xs:dayTimeDuration('PT1S')")}, Error: "XPTY0004"},
		},
	}
	result, err := runner.Run(context.Background(), partial)
	require.NoError(t, err)
	require.NoError(t, AssertGolden(t, partial.Name, result))
}

func TestWriteAndCompareGolden(t *testing.T) {
	runner := newRunner(t)
	suite, err := LoadSuite("testdata/suites/boolean.yaml")
	require.NoError(t, err)
	result, err := runner.Run(context.Background(), suite)
	require.NoError(t, err)

	path := GoldenPath("suites/boolean.yaml", t.TempDir())
	_, err = CompareGolden(path, result)
	assert.Error(t, err, "missing golden file")

	require.NoError(t, WriteGolden(path, result))
	match, err := CompareGolden(path, result)
	require.NoError(t, err)
	assert.True(t, match)

	shipped, err := CompareGolden(GoldenPath("testdata/suites/boolean.yaml", GoldenDir), result)
	require.NoError(t, err)
	assert.True(t, shipped)

	require.NoError(t, os.WriteFile(path, []byte(`{"suite":"boolean"}`), 0o644))
	match, err = CompareGolden(path, result)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestGoldenPath(t *testing.T) {
	assert.Equal(t, filepath.Join("suites", "golden", "numeric.golden"), GoldenPath("suites/numeric.yaml", ""))
	assert.Equal(t, filepath.Join("out", "numeric.golden"), GoldenPath("suites/numeric.yml", "out"))
}
