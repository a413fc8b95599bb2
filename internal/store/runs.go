package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/xfn/internal/canonical"
)

// Run is one recorded conformance run.
type Run struct {
	ID            string `json:"id"`
	Seq           int64  `json:"seq"`
	Label         string `json:"label,omitempty"`
	EngineVersion string `json:"engine_version"`
	CatalogHash   string `json:"catalog_hash"`
	Suites        int    `json:"suites"`
	Cases         int    `json:"cases"`
	Passed        int    `json:"passed"`
	Failed        int    `json:"failed"`
}

// CaseResult is one evaluated case within a run.
type CaseResult struct {
	Suite     string   `json:"suite"`
	Case      string   `json:"case"`
	Seq       int64    `json:"seq"`
	Call      string   `json:"call"`
	Args      []string `json:"args"`
	Pass      bool     `json:"pass"`
	Result    string   `json:"result,omitempty"`
	ErrorCode string   `json:"error_code,omitempty"`

	// ResultHash is filled in by WriteCaseResults.
	ResultHash string `json:"result_hash"`
}

// ResultHash returns the content hash of what the engine produced for c:
// the call, its arguments and the result or error code. The expectation
// (pass or fail) is not part of the hash.
func ResultHash(c CaseResult) (string, error) {
	args := make([]any, len(c.Args))
	for i, a := range c.Args {
		args[i] = a
	}
	return canonical.Hash(canonical.DomainResult, map[string]any{
		"call":   c.Call,
		"args":   args,
		"result": c.Result,
		"error":  c.ErrorCode,
	})
}

// WriteRun inserts run with a fresh ID (unless set) and the next logical
// seq, and returns the stored record.
func (s *Store) WriteRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = s.ids.Generate()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("write run: begin: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&run.Seq); err != nil {
		return Run{}, fmt.Errorf("write run: next seq: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, label, engine_version, catalog_hash, suites, cases, passed, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Seq,
		run.Label,
		run.EngineVersion,
		run.CatalogHash,
		run.Suites,
		run.Cases,
		run.Passed,
		run.Failed,
	)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("write run: commit: %w", err)
	}
	return run, nil
}

// WriteCaseResults inserts results for runID in one transaction. Rewriting
// an existing (suite, case) of the run is a no-op.
func (s *Store) WriteCaseResults(ctx context.Context, runID string, results []CaseResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write case results: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO case_results
		(run_id, suite, case_name, seq, call, args, outcome, result, error_code, result_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("write case results: prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range results {
		hash, err := ResultHash(c)
		if err != nil {
			return fmt.Errorf("write case results: %s/%s: %w", c.Suite, c.Case, err)
		}
		argsJSON, err := marshalArgs(c.Args)
		if err != nil {
			return fmt.Errorf("write case results: %s/%s: %w", c.Suite, c.Case, err)
		}
		if _, err := stmt.ExecContext(ctx,
			runID, c.Suite, c.Case, c.Seq, c.Call, argsJSON, outcome(c.Pass), c.Result, c.ErrorCode, hash,
		); err != nil {
			return fmt.Errorf("write case results: %s/%s: %w", c.Suite, c.Case, err)
		}
	}
	return tx.Commit()
}

// ReadRun returns the run with the given ID, or ErrNotFound.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, label, engine_version, catalog_hash, suites, cases, passed, failed
		FROM runs
		WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return run, err
}

// ListRuns returns every run ordered by seq.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, label, engine_version, catalog_hash, suites, cases, passed, failed
		FROM runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadCaseResults returns the results of a run ordered by suite, seq and
// case name.
func (s *Store) ReadCaseResults(ctx context.Context, runID string) ([]CaseResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT suite, case_name, seq, call, args, outcome, result, error_code, result_hash
		FROM case_results
		WHERE run_id = ?
		ORDER BY suite COLLATE BINARY ASC, seq ASC, case_name COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query case results: %w", err)
	}
	defer rows.Close()

	results := []CaseResult{}
	for rows.Next() {
		var (
			c        CaseResult
			argsJSON string
			out      string
		)
		if err := rows.Scan(&c.Suite, &c.Case, &c.Seq, &c.Call, &argsJSON, &out, &c.Result, &c.ErrorCode, &c.ResultHash); err != nil {
			return nil, fmt.Errorf("scan case result: %w", err)
		}
		if c.Args, err = unmarshalArgs(argsJSON); err != nil {
			return nil, fmt.Errorf("case %s/%s: %w", c.Suite, c.Case, err)
		}
		c.Pass = out == "pass"
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate case results: %w", err)
	}
	return results, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	err := row.Scan(&r.ID, &r.Seq, &r.Label, &r.EngineVersion, &r.CatalogHash, &r.Suites, &r.Cases, &r.Passed, &r.Failed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	return r, nil
}

func outcome(pass bool) string {
	if pass {
		return "pass"
	}
	return "fail"
}

// marshalArgs encodes args as a canonical JSON array.
func marshalArgs(args []string) (string, error) {
	if args == nil {
		args = []string{}
	}
	data, err := canonical.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("marshal args: %w", err)
	}
	return string(data), nil
}

func unmarshalArgs(data string) ([]string, error) {
	args := []string{}
	if err := json.Unmarshal([]byte(data), &args); err != nil {
		return nil, fmt.Errorf("unmarshal args: %w", err)
	}
	return args, nil
}
