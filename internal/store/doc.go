// Package store persists conformance runs in SQLite.
//
// A run records which engine and catalog produced it and its totals; each
// case result records the call, its canonical arguments, the rendered result
// or error code, and a content hash of that outcome. Comparing hashes between
// two runs shows exactly which cases changed behavior.
//
// # Ordering
//
// Runs carry a logical seq assigned on write; every query orders by seq (or
// suite and seq for case results) and then by id COLLATE BINARY. Wall-clock
// time is never stored, so reading a database is deterministic.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
//
// Result hashes are SHA-256 over canonical JSON with domain separation, see
// package canonical.
package store
