package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/xfn/internal/store"
)

// recordedRuns records two runs of the same suite, the second with one
// case changed, and returns the database path and both run IDs.
func recordedRuns(t *testing.T) (db, first, second string) {
	t.Helper()
	dir := t.TempDir()
	db = filepath.Join(dir, "runs.db")
	suites := filepath.Join(dir, "suites")
	require.NoError(t, os.MkdirAll(suites, 0o755))

	writeSuite(t, suites, "arithmetic.yaml", arithmeticSuite)
	first = recordRunID(t, db, suites, "before")

	writeSuite(t, suites, "arithmetic.yaml", arithmeticSuite+`  - name: multiply
    call: op:numeric-multiply
    args: ["6", "7"]
    expect: "42"
`)
	second = recordRunID(t, db, suites, "after")
	return db, first, second
}

func recordRunID(t *testing.T, db, suites, label string) string {
	t.Helper()
	out, err := execute(t, "--format", "json", "--db", db, "test", suites, "--label", label)
	require.NoError(t, err, out)

	var resp struct {
		Data TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.NotEmpty(t, resp.Data.RunID)
	return resp.Data.RunID
}

func TestRunsList(t *testing.T) {
	db, first, second := recordedRuns(t)

	out, err := execute(t, "--format", "json", "--db", db, "runs", "list")
	require.NoError(t, err)

	var resp struct {
		Data []store.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, first, resp.Data[0].ID)
	assert.Equal(t, int64(1), resp.Data[0].Seq)
	assert.Equal(t, "before", resp.Data[0].Label)
	assert.Equal(t, 3, resp.Data[0].Cases)
	assert.Equal(t, second, resp.Data[1].ID)
	assert.Equal(t, 4, resp.Data[1].Passed)
	assert.Equal(t, Version, resp.Data[1].EngineVersion)
	assert.Equal(t, resp.Data[0].CatalogHash, resp.Data[1].CatalogHash)

	out, err = execute(t, "--db", db, "runs", "list")
	require.NoError(t, err)
	assert.Contains(t, out, first)
	assert.Contains(t, out, "(2 runs)")
}

func TestRunsShow(t *testing.T) {
	db, first, _ := recordedRuns(t)

	out, err := execute(t, "--db", db, "runs", "show", first)
	require.NoError(t, err)
	assert.Contains(t, out, "Run "+first)
	assert.Contains(t, out, "Label: before")
	assert.Contains(t, out, "error FOAR0001")
	assert.Contains(t, out, "(3 cases)")

	_, err = execute(t, "--db", db, "runs", "show", "missing")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRunsDiff(t *testing.T) {
	db, first, second := recordedRuns(t)

	out, err := execute(t, "--db", db, "runs", "diff", first, first)
	require.NoError(t, err)
	assert.Contains(t, out, "(0 differences)")

	out, err = execute(t, "--format", "json", "--db", db, "runs", "diff", first, second)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Data []store.CaseDiff `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "multiply", resp.Data[0].Case)
	assert.Equal(t, store.DiffAdded, resp.Data[0].Kind)
	assert.Equal(t, "42", resp.Data[0].After.Result)
}

func TestRunsRequiresDatabase(t *testing.T) {
	_, err := execute(t, "runs", "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "no database configured")

	_, err = execute(t, "--db", filepath.Join(t.TempDir(), "absent.db"), "runs", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database not found")
}
