package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
)

// Diff kinds.
const (
	DiffChanged = "changed"
	DiffAdded   = "added"
	DiffRemoved = "removed"
)

// CaseDiff is a case whose outcome differs between two runs. Before is nil
// for added cases and After is nil for removed ones.
type CaseDiff struct {
	Suite  string      `json:"suite"`
	Case   string      `json:"case"`
	Kind   string      `json:"kind"`
	Before *CaseResult `json:"before,omitempty"`
	After  *CaseResult `json:"after,omitempty"`
}

// DiffRuns compares the case results of runs a and b by result hash and
// returns the differences ordered by suite and case.
func (s *Store) DiffRuns(ctx context.Context, a, b string) ([]CaseDiff, error) {
	for _, id := range []string{a, b} {
		if _, err := s.ReadRun(ctx, id); err != nil {
			return nil, err
		}
	}
	before, err := s.ReadCaseResults(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("diff runs: %w", err)
	}
	after, err := s.ReadCaseResults(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("diff runs: %w", err)
	}

	type key struct{ suite, name string }
	old := make(map[key]*CaseResult, len(before))
	for i := range before {
		old[key{before[i].Suite, before[i].Case}] = &before[i]
	}

	diffs := []CaseDiff{}
	for i := range after {
		c := &after[i]
		k := key{c.Suite, c.Case}
		prev, ok := old[k]
		delete(old, k)
		switch {
		case !ok:
			diffs = append(diffs, CaseDiff{Suite: c.Suite, Case: c.Case, Kind: DiffAdded, After: c})
		case prev.ResultHash != c.ResultHash:
			diffs = append(diffs, CaseDiff{Suite: c.Suite, Case: c.Case, Kind: DiffChanged, Before: prev, After: c})
		}
	}
	for _, prev := range old {
		diffs = append(diffs, CaseDiff{Suite: prev.Suite, Case: prev.Case, Kind: DiffRemoved, Before: prev})
	}

	slices.SortFunc(diffs, func(x, y CaseDiff) int {
		return cmp.Or(cmp.Compare(x.Suite, y.Suite), cmp.Compare(x.Case, y.Case))
	})
	return diffs, nil
}
