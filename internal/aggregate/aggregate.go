// Package aggregate reduces partial sequences.
//
// Every reduction reads only the first Len elements of a sequence and
// folds them left to right; the buffer beyond the logical length is never
// touched. Boolean reductions visit every element instead of
// short-circuiting.
package aggregate

import (
	"github.com/roach88/xfn/internal/numeric"
	"github.com/roach88/xfn/internal/value"
)

// IsEmpty reports whether the logical length is zero.
func IsEmpty[T value.Value](seq value.Sequence[T]) bool { return seq.Len() == 0 }

// Exists reports whether the logical length is non-zero.
func Exists[T value.Value](seq value.Sequence[T]) bool { return seq.Len() > 0 }

// Count returns the logical length.
func Count[T value.Value](seq value.Sequence[T]) value.Integer { return value.Integer(seq.Len()) }

// Sum adds the integers of seq. The sum of an empty sequence is 0.
func Sum(seq value.Sequence[value.Integer]) (value.Integer, error) {
	var total value.Integer
	for _, n := range seq.Values() {
		var err error
		if total, err = numeric.Add(total, n); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// Avg returns Sum / Count truncated toward zero. An empty sequence fails
// with FOAR0001.
func Avg(seq value.Sequence[value.Integer]) (value.Integer, error) {
	total, err := Sum(seq)
	if err != nil {
		return 0, err
	}
	return numeric.Divide(total, Count(seq))
}

// MinSeq returns the smallest integer of seq. An empty sequence fails with
// FORG0006.
func MinSeq(seq value.Sequence[value.Integer]) (value.Integer, error) {
	return extreme(seq, "aggregate.MinSeq", numeric.Min)
}

// MaxSeq returns the largest integer of seq. An empty sequence fails with
// FORG0006.
func MaxSeq(seq value.Sequence[value.Integer]) (value.Integer, error) {
	return extreme(seq, "aggregate.MaxSeq", numeric.Max)
}

func extreme(seq value.Sequence[value.Integer], op string, pick func(a, b value.Integer) value.Integer) (value.Integer, error) {
	if seq.Len() == 0 {
		return 0, emptySequence(op)
	}
	acc, _ := seq.At(0)
	for i, n := range seq.Values() {
		if i > 0 {
			acc = pick(acc, n)
		}
	}
	return acc, nil
}

// AllTrue reports whether every element is true. It is true for an empty
// sequence.
func AllTrue(seq value.Sequence[value.Boolean]) value.Boolean {
	all := value.Boolean(true)
	for _, b := range seq.Values() {
		all = all && b
	}
	return all
}

// AnyTrue reports whether at least one element is true.
func AnyTrue(seq value.Sequence[value.Boolean]) value.Boolean {
	var anyTrue value.Boolean
	for _, b := range seq.Values() {
		anyTrue = anyTrue || b
	}
	return anyTrue
}

// CountTrue returns the number of true elements.
func CountTrue(seq value.Sequence[value.Boolean]) value.Integer {
	var n value.Integer
	for _, b := range seq.Values() {
		if b {
			n++
		}
	}
	return n
}

func emptySequence(op string) error {
	return value.Fail(value.CodeInvalidArgument, op, "empty sequence")
}
