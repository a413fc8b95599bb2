package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/xfn/internal/testutil"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", WithIDGenerator(testutil.NewSequentialIDs("run")))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResults() []CaseResult {
	return []CaseResult{
		{Suite: "numeric", Case: "add", Seq: 1, Call: "op:numeric-add", Args: []string{"1", "2"}, Pass: true, Result: "3"},
		{Suite: "numeric", Case: "div-zero", Seq: 2, Call: "op:numeric-divide", Args: []string{"5", "0"}, Pass: true, ErrorCode: "FOAR0001"},
		{Suite: "aggregate", Case: "sum", Seq: 1, Call: "xfn:sum", Args: []string{"(10, 20, 30, 40, 50)[:3]"}, Pass: true, Result: "60"},
	}
}

func TestOpenFileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	for range 3 {
		s, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, s.verifyPragma("journal_mode", "wal"))
		require.NoError(t, s.verifyPragma("foreign_keys", "1"))
		require.NoError(t, s.verifyPragma("user_version", "1"))
		require.NoError(t, s.Close())
	}
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteRunAssignsSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, err := s.WriteRun(ctx, Run{EngineVersion: "test", CatalogHash: "abc", Suites: 2, Cases: 3, Passed: 3})
	require.NoError(t, err)
	assert.Equal(t, "run-0001", first.ID)
	assert.Equal(t, int64(1), first.Seq)

	second, err := s.WriteRun(ctx, Run{ID: "explicit", EngineVersion: "test", CatalogHash: "abc"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Seq)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Run{first, second}, runs)

	got, err := s.ReadRun(ctx, "explicit")
	require.NoError(t, err)
	assert.Equal(t, second, got)

	_, err = s.ReadRun(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.WriteRun(ctx, Run{ID: "explicit", EngineVersion: "test", CatalogHash: "abc"})
	assert.Error(t, err, "duplicate id")
}

func TestCaseResultsRoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run, err := s.WriteRun(ctx, Run{EngineVersion: "test", CatalogHash: "abc"})
	require.NoError(t, err)
	require.NoError(t, s.WriteCaseResults(ctx, run.ID, sampleResults()))
	require.NoError(t, s.WriteCaseResults(ctx, run.ID, sampleResults()), "rewrite is a no-op")

	got, err := s.ReadCaseResults(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "aggregate", got[0].Suite)
	assert.Equal(t, "add", got[1].Case)
	assert.Equal(t, "div-zero", got[2].Case)
	assert.Equal(t, []string{"(10, 20, 30, 40, 50)[:3]"}, got[0].Args)
	assert.Equal(t, "FOAR0001", got[2].ErrorCode)
	assert.True(t, got[2].Pass)
	for _, c := range got {
		assert.Len(t, c.ResultHash, 64)
	}
}

func TestWriteCaseResultsRequiresRun(t *testing.T) {
	s := createTestStore(t)
	err := s.WriteCaseResults(context.Background(), "nope", sampleResults())
	assert.Error(t, err)
}

func TestResultHashIgnoresOutcome(t *testing.T) {
	c := sampleResults()[0]
	a, err := ResultHash(c)
	require.NoError(t, err)

	c.Pass = false
	b, err := ResultHash(c)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c.Result = "4"
	d, err := ResultHash(c)
	require.NoError(t, err)
	assert.NotEqual(t, a, d)
}

func TestDiffRuns(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	a, err := s.WriteRun(ctx, Run{EngineVersion: "v1", CatalogHash: "abc"})
	require.NoError(t, err)
	require.NoError(t, s.WriteCaseResults(ctx, a.ID, sampleResults()))

	changed := sampleResults()
	changed[1].ErrorCode, changed[1].Result = "", "xs:double('INF')"
	changed = append(changed[:2], CaseResult{Suite: "numeric", Case: "mod", Seq: 3, Call: "op:numeric-mod", Args: []string{"7", "2"}, Pass: true, Result: "1"})

	b, err := s.WriteRun(ctx, Run{EngineVersion: "v2", CatalogHash: "abc"})
	require.NoError(t, err)
	require.NoError(t, s.WriteCaseResults(ctx, b.ID, changed))

	diffs, err := s.DiffRuns(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.Len(t, diffs, 3)

	assert.Equal(t, "aggregate", diffs[0].Suite)
	assert.Equal(t, DiffRemoved, diffs[0].Kind)
	assert.Nil(t, diffs[0].After)

	assert.Equal(t, "div-zero", diffs[1].Case)
	assert.Equal(t, DiffChanged, diffs[1].Kind)
	assert.Equal(t, "FOAR0001", diffs[1].Before.ErrorCode)
	assert.Equal(t, "xs:double('INF')", diffs[1].After.Result)

	assert.Equal(t, "mod", diffs[2].Case)
	assert.Equal(t, DiffAdded, diffs[2].Kind)

	same, err := s.DiffRuns(ctx, a.ID, a.ID)
	require.NoError(t, err)
	assert.Empty(t, same)

	_, err = s.DiffRuns(ctx, a.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUUIDv7Generator(t *testing.T) {
	id := UUIDv7Generator{}.Generate()
	assert.Len(t, id, 36)
	assert.Equal(t, byte('7'), id[14])
}
