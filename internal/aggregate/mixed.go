package aggregate

import (
	"github.com/roach88/xfn/internal/compare"
	"github.com/roach88/xfn/internal/duration"
	"github.com/roach88/xfn/internal/numeric"
	"github.com/roach88/xfn/internal/value"
)

// SumNumeric adds mixed numeric values, promoting as it folds. The sum of
// an empty sequence is the integer 0.
func SumNumeric(e *numeric.Engine, seq value.Sequence[value.Value]) (value.Value, error) {
	var total value.Value = value.Integer(0)
	for _, v := range seq.Values() {
		var err error
		if total, err = e.Add(total, v); err != nil {
			return nil, err
		}
	}
	return total, nil
}

// AvgNumeric divides SumNumeric by the count. An empty sequence fails with
// FOAR0001.
func AvgNumeric(e *numeric.Engine, seq value.Sequence[value.Value]) (value.Value, error) {
	if seq.Len() == 0 {
		return nil, value.Fail(value.CodeDivisionByZero, "aggregate.AvgNumeric", "average of empty sequence")
	}
	total, err := SumNumeric(e, seq)
	if err != nil {
		return nil, err
	}
	return e.Divide(total, Count(seq))
}

// SumIntervals adds intervals. The sum of an empty sequence is PT0S.
func SumIntervals(seq value.Sequence[value.Interval]) (value.Interval, error) {
	return duration.Sum(seq)
}

// AvgIntervals divides SumIntervals by the count, truncating to whole
// microseconds. An empty sequence fails with FOAR0001.
func AvgIntervals(seq value.Sequence[value.Interval]) (value.Interval, error) {
	total, err := duration.Sum(seq)
	if err != nil {
		return value.Interval{}, err
	}
	return duration.Divide(total, int64(seq.Len()))
}

// MinOf returns the smallest element of any comparable kind. When every
// element is numeric the result is promoted to the widest kind present.
// Mixed kinds that cannot be compared fail with XPTY0004; an empty
// sequence fails with FORG0006.
func MinOf(e *numeric.Engine, c *compare.Comparator, seq value.Sequence[value.Value]) (value.Value, error) {
	return extremeOf(e, seq, "aggregate.MinOf", c.LessThan)
}

// MaxOf returns the largest element of any comparable kind, promoted like
// MinOf.
func MaxOf(e *numeric.Engine, c *compare.Comparator, seq value.Sequence[value.Value]) (value.Value, error) {
	return extremeOf(e, seq, "aggregate.MaxOf", c.GreaterThan)
}

func extremeOf(e *numeric.Engine, seq value.Sequence[value.Value], op string, better func(a, b value.Value) (bool, error)) (value.Value, error) {
	if seq.Len() == 0 {
		return nil, emptySequence(op)
	}
	acc, _ := seq.At(0)
	widest := acc
	for i, v := range seq.Values() {
		if i == 0 {
			continue
		}
		ok, err := better(v, acc)
		if err != nil {
			return nil, err
		}
		if ok {
			acc = v
		}
		if v.Kind().Rank() > widest.Kind().Rank() {
			widest = v
		}
	}
	if !acc.Kind().IsNumeric() {
		return acc, nil
	}
	promoted, _, err := e.Promote(acc, widest)
	if err != nil {
		return nil, err
	}
	return promoted, nil
}
