// Package value provides the canonical value types for the xfn engine.
//
// This package contains type definitions and constructors only. Every other
// internal package imports value; value imports nothing internal except the
// checked-arithmetic helpers. Operators live in their own packages
// (datetime, duration, numeric, compare, aggregate).
//
// Key design constraints:
//   - Values are immutable; constructors validate, operators return new values
//   - Instant and Interval magnitudes are a single int64 microsecond count
//   - Float and Double are opaque IEEE-754 bit patterns, never inspected here
//   - No wall-clock access, no randomness, no I/O
package value
