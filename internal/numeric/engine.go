// Package numeric implements the xs:integer, xs:float and xs:double
// operator families and the promotion lattice that joins them.
//
// Integer operators are checked and report overflow. Float and double
// operators never touch bits: each one is forwarded to the delegate unit
// for its precision, and this package only chooses the delegate and
// promotes operands to a common kind first.
package numeric

import (
	"github.com/roach88/xfn/internal/ieee"
	"github.com/roach88/xfn/internal/value"
)

// Bits is the set of raw floating-point bit pattern widths.
type Bits interface {
	~uint32 | ~uint64
}

// Unit is a delegated bit-level IEEE-754 component for one precision.
type Unit[B Bits] interface {
	Add(a, b B) B
	Subtract(a, b B) B
	Multiply(a, b B) B
	Divide(a, b B) B
	Equal(a, b B) bool
	LessThan(a, b B) bool
	GreaterThan(a, b B) bool
	Abs(a B) B
	FromInteger(n int64) B
	Truncate(a B) (int64, bool)
}

// Converter moves bit patterns between the two precisions.
type Converter interface {
	Widen(f uint32) uint64
	Narrow(d uint64) (uint32, bool)
}

// Delegates bundles the floating-point components an Engine forwards to.
type Delegates struct {
	Float   Unit[uint32]
	Double  Unit[uint64]
	Convert Converter
}

// Engine dispatches numeric operators over mixed kinds. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	float  Unit[uint32]
	double Unit[uint64]
	conv   Converter
}

// New creates an Engine over the given delegates.
func New(d Delegates) (*Engine, error) {
	if d.Float == nil || d.Double == nil || d.Convert == nil {
		return nil, value.Fail(value.CodeInvalidArgument, "numeric.New", "all three delegates are required")
	}
	return &Engine{float: d.Float, double: d.Double, conv: d.Convert}, nil
}

// Default returns an Engine backed by the ieee package.
func Default() *Engine {
	return &Engine{float: ieee.Binary32{}, double: ieee.Binary64{}, conv: ieee.Conversions{}}
}

// Promote lifts a and b to the higher kind of the lattice
// integer < float < double. Non-numeric operands fail with XPTY0004.
func (e *Engine) Promote(a, b value.Value) (value.Value, value.Value, error) {
	if err := requireNumeric("numeric.Promote", a, b); err != nil {
		return nil, nil, err
	}
	target := a.Kind()
	if b.Kind().Rank() > target.Rank() {
		target = b.Kind()
	}
	return e.lift(a, target), e.lift(b, target), nil
}

// lift widens v to target, which must rank at or above v's kind.
func (e *Engine) lift(v value.Value, target value.Kind) value.Value {
	switch x := v.(type) {
	case value.Integer:
		switch target {
		case value.KindFloat:
			return value.FloatFromBits(e.float.FromInteger(int64(x)))
		case value.KindDouble:
			return value.DoubleFromBits(e.double.FromInteger(int64(x)))
		}
	case value.Float:
		if target == value.KindDouble {
			return value.DoubleFromBits(e.conv.Widen(x.Bits()))
		}
	}
	return v
}

func requireNumeric(op string, vs ...value.Value) error {
	for _, v := range vs {
		if v == nil || !v.Kind().IsNumeric() {
			return value.Fail(value.CodeTypeMismatch, op, "%s is not numeric", kindName(v))
		}
	}
	return nil
}

func kindName(v value.Value) string {
	if v == nil {
		return "empty sequence"
	}
	return v.Kind().String()
}
