// Package compare is the generic equality and ordering facade.
//
// Dispatch is a closed switch over value kinds: numeric operands are
// promoted through a numeric.Engine, instants compare by UTC magnitude,
// intervals by signed length, booleans with false < true and ratios
// exactly. Any other pairing is a type error.
package compare

import (
	"github.com/roach88/xfn/internal/datetime"
	"github.com/roach88/xfn/internal/duration"
	"github.com/roach88/xfn/internal/numeric"
	"github.com/roach88/xfn/internal/value"
)

// Comparator compares values of any comparable kind.
type Comparator struct {
	num *numeric.Engine
}

// New creates a Comparator that promotes numeric operands with num.
func New(num *numeric.Engine) *Comparator {
	return &Comparator{num: num}
}

var defaultComparator = New(numeric.Default())

// Equal reports a == b using the default numeric engine.
func Equal(a, b value.Value) (bool, error) { return defaultComparator.Equal(a, b) }

// LessThan reports a < b using the default numeric engine.
func LessThan(a, b value.Value) (bool, error) { return defaultComparator.LessThan(a, b) }

// GreaterThan reports a > b using the default numeric engine.
func GreaterThan(a, b value.Value) (bool, error) { return defaultComparator.GreaterThan(a, b) }

// Compare returns -1, 0 or +1 using the default numeric engine.
func Compare(a, b value.Value) (int, error) { return defaultComparator.Compare(a, b) }

// Equal reports a == b.
func (c *Comparator) Equal(a, b value.Value) (bool, error) {
	if a != nil && b != nil && a.Kind().IsNumeric() && b.Kind().IsNumeric() {
		return c.num.Equal(a, b)
	}
	n, err := c.order("compare.Equal", a, b)
	return n == 0, err
}

// LessThan reports a < b.
func (c *Comparator) LessThan(a, b value.Value) (bool, error) {
	if a != nil && b != nil && a.Kind().IsNumeric() && b.Kind().IsNumeric() {
		return c.num.LessThan(a, b)
	}
	n, err := c.order("compare.LessThan", a, b)
	return n < 0, err
}

// GreaterThan reports a > b.
func (c *Comparator) GreaterThan(a, b value.Value) (bool, error) {
	if a != nil && b != nil && a.Kind().IsNumeric() && b.Kind().IsNumeric() {
		return c.num.GreaterThan(a, b)
	}
	n, err := c.order("compare.GreaterThan", a, b)
	return n > 0, err
}

// Compare returns -1, 0 or +1. Numeric operands the delegate reports as
// unordered (NaN) fail with FOER0000.
func (c *Comparator) Compare(a, b value.Value) (int, error) {
	if a != nil && b != nil && a.Kind().IsNumeric() && b.Kind().IsNumeric() {
		return c.numericOrder(a, b)
	}
	return c.order("compare.Compare", a, b)
}

func (c *Comparator) numericOrder(a, b value.Value) (int, error) {
	lt, err := c.num.LessThan(a, b)
	if err != nil {
		return 0, err
	}
	if lt {
		return -1, nil
	}
	gt, err := c.num.GreaterThan(a, b)
	if err != nil {
		return 0, err
	}
	if gt {
		return 1, nil
	}
	eq, err := c.num.Equal(a, b)
	if err != nil {
		return 0, err
	}
	if eq {
		return 0, nil
	}
	return 0, value.Fail(value.CodeUnsupported, "compare.Compare", "%s and %s are unordered", a.Kind(), b.Kind())
}

// order compares two non-numeric operands of the same kind.
func (c *Comparator) order(op string, a, b value.Value) (int, error) {
	if a == nil || b == nil || a.Kind() != b.Kind() {
		return 0, mismatch(op, a, b)
	}
	switch x := a.(type) {
	case value.Instant:
		return datetime.Compare(x, b.(value.Instant)), nil
	case value.Interval:
		return duration.Compare(x, b.(value.Interval)), nil
	case value.Boolean:
		return boolOrder(bool(x), bool(b.(value.Boolean))), nil
	case value.Ratio:
		return x.Cmp(b.(value.Ratio)), nil
	}
	return 0, mismatch(op, a, b)
}

func boolOrder(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func mismatch(op string, a, b value.Value) error {
	return value.Fail(value.CodeTypeMismatch, op, "cannot compare %s with %s", kindName(a), kindName(b))
}

func kindName(v value.Value) string {
	if v == nil {
		return "empty sequence"
	}
	return v.Kind().String()
}
