// Package ieee is the default bit-level floating-point component.
//
// It operates on raw binary32 and binary64 bit patterns and owns every
// NaN and infinity rule; callers never inspect the bits themselves.
// Binary32 arithmetic rounds each result to single precision, so results
// match a native binary32 unit.
package ieee

import "math"

// Binary32 implements single-precision operations on uint32 bit patterns.
type Binary32 struct{}

func f32(b uint32) float32 { return math.Float32frombits(b) }
func b32(f float32) uint32 { return math.Float32bits(f) }
func f64(b uint64) float64 { return math.Float64frombits(b) }
func b64(f float64) uint64 { return math.Float64bits(f) }

func (Binary32) Add(a, b uint32) uint32      { return b32(f32(a) + f32(b)) }
func (Binary32) Subtract(a, b uint32) uint32 { return b32(f32(a) - f32(b)) }
func (Binary32) Multiply(a, b uint32) uint32 { return b32(f32(a) * f32(b)) }
func (Binary32) Divide(a, b uint32) uint32   { return b32(f32(a) / f32(b)) }

func (Binary32) Equal(a, b uint32) bool       { return f32(a) == f32(b) }
func (Binary32) LessThan(a, b uint32) bool    { return f32(a) < f32(b) }
func (Binary32) GreaterThan(a, b uint32) bool { return f32(a) > f32(b) }

// Abs clears the sign, including on NaN payloads.
func (Binary32) Abs(a uint32) uint32 { return a &^ (1 << 31) }

// FromInteger rounds n to the nearest binary32.
func (Binary32) FromInteger(n int64) uint32 { return b32(float32(n)) }

// Truncate rounds toward zero. ok is false for NaN, infinities and values
// outside the int64 range.
func (Binary32) Truncate(a uint32) (int64, bool) { return truncate(float64(f32(a))) }

// Binary64 implements double-precision operations on uint64 bit patterns.
type Binary64 struct{}

func (Binary64) Add(a, b uint64) uint64      { return b64(f64(a) + f64(b)) }
func (Binary64) Subtract(a, b uint64) uint64 { return b64(f64(a) - f64(b)) }
func (Binary64) Multiply(a, b uint64) uint64 { return b64(f64(a) * f64(b)) }
func (Binary64) Divide(a, b uint64) uint64   { return b64(f64(a) / f64(b)) }

func (Binary64) Equal(a, b uint64) bool       { return f64(a) == f64(b) }
func (Binary64) LessThan(a, b uint64) bool    { return f64(a) < f64(b) }
func (Binary64) GreaterThan(a, b uint64) bool { return f64(a) > f64(b) }

// Abs clears the sign, including on NaN payloads.
func (Binary64) Abs(a uint64) uint64 { return a &^ (1 << 63) }

// FromInteger rounds n to the nearest binary64.
func (Binary64) FromInteger(n int64) uint64 { return b64(float64(n)) }

// Truncate rounds toward zero. ok is false for NaN, infinities and values
// outside the int64 range.
func (Binary64) Truncate(a uint64) (int64, bool) { return truncate(f64(a)) }

// Conversions widens and narrows between the two precisions.
type Conversions struct{}

// Widen converts binary32 to binary64 exactly.
func (Conversions) Widen(a uint32) uint64 { return b64(float64(f32(a))) }

// Narrow rounds binary64 to binary32. ok is false when a finite value
// overflows to infinity.
func (Conversions) Narrow(a uint64) (uint32, bool) {
	d := f64(a)
	f := float32(d)
	if math.IsInf(float64(f), 0) && !math.IsInf(d, 0) {
		return 0, false
	}
	return b32(f), true
}

// 2^63 is exactly representable; every float below it in magnitude fits.
const twoTo63 = 9223372036854775808.0

func truncate(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	t := math.Trunc(f)
	if t >= twoTo63 || t < -twoTo63 {
		return 0, false
	}
	return int64(t), true
}
