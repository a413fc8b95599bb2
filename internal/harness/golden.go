package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/xfn/internal/canonical"
)

// GoldenDir is the fixture directory used by RunWithGolden and AssertGolden.
const GoldenDir = "testdata/golden"

// Snapshot returns the canonical JSON trace of result. Failure messages
// are left out; codes and rendered values are kept.
func Snapshot(result *Result) ([]byte, error) {
	cases := make([]any, len(result.Cases))
	for i, c := range result.Cases {
		args := make([]any, len(c.Args))
		for j, a := range c.Args {
			args[j] = a
		}
		m := map[string]any{
			"seq":  c.Seq,
			"case": c.Name,
			"call": c.Call,
			"args": args,
			"pass": c.Pass,
		}
		if c.Code != "" {
			m["error"] = c.Code
		} else if c.Result != "" {
			m["result"] = c.Result
		}
		cases[i] = m
	}
	return canonical.Marshal(map[string]any{
		"suite": result.Suite,
		"cases": cases,
	})
}

// GoldenPath returns the golden file for suiteFile: dir/<base>.golden, or
// <suite dir>/golden/<base>.golden when dir is empty.
func GoldenPath(suiteFile, dir string) string {
	base := filepath.Base(suiteFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if dir == "" {
		dir = filepath.Join(filepath.Dir(suiteFile), "golden")
	}
	return filepath.Join(dir, name+".golden")
}

// WriteGolden stores the snapshot of result at path.
func WriteGolden(path string, result *Result) error {
	data, err := Snapshot(result)
	if err != nil {
		return fmt.Errorf("failed to marshal trace: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// CompareGolden reports whether the snapshot of result equals the file at
// path. A missing file is reported through the error.
func CompareGolden(path string, result *Result) (bool, error) {
	want, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read golden file: %w", err)
	}
	got, err := Snapshot(result)
	if err != nil {
		return false, fmt.Errorf("failed to marshal trace: %w", err)
	}
	return bytes.Equal(bytes.TrimSpace(want), got), nil
}

// RunWithGolden runs suite and compares its trace with
// testdata/golden/<suite.Name>.golden. Regenerate with
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, runner *Runner, suite *Suite) (*Result, error) {
	t.Helper()
	result, err := runner.Run(t.Context(), suite)
	if err != nil {
		return nil, err
	}
	return result, AssertGolden(t, suite.Name, result)
}

// AssertGolden compares an existing result with its golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()
	data, err := Snapshot(result)
	if err != nil {
		return err
	}
	g := goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
