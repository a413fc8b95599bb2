package numeric

import (
	"github.com/roach88/xfn/internal/overflow"
	"github.com/roach88/xfn/internal/value"
)

func integerOverflow(op string, a, b value.Integer) error {
	return value.Fail(value.CodeNumericOverflow, op, "%d, %d overflows", a, b)
}

// Add returns a + b.
func Add(a, b value.Integer) (value.Integer, error) {
	r, ok := overflow.Add(a, b)
	if !ok {
		return 0, integerOverflow("numeric.Add", a, b)
	}
	return r, nil
}

// Subtract returns a - b.
func Subtract(a, b value.Integer) (value.Integer, error) {
	r, ok := overflow.Sub(a, b)
	if !ok {
		return 0, integerOverflow("numeric.Subtract", a, b)
	}
	return r, nil
}

// Multiply returns a * b.
func Multiply(a, b value.Integer) (value.Integer, error) {
	r, ok := overflow.Mul(a, b)
	if !ok {
		return 0, integerOverflow("numeric.Multiply", a, b)
	}
	return r, nil
}

// Divide returns a / b truncated toward zero.
func Divide(a, b value.Integer) (value.Integer, error) {
	if b == 0 {
		return 0, value.Fail(value.CodeDivisionByZero, "numeric.Divide", "%d div 0", a)
	}
	r, ok := overflow.Div(a, b)
	if !ok {
		return 0, integerOverflow("numeric.Divide", a, b)
	}
	return r, nil
}

// Mod returns the remainder of a / b; its sign follows the dividend.
func Mod(a, b value.Integer) (value.Integer, error) {
	if b == 0 {
		return 0, value.Fail(value.CodeDivisionByZero, "numeric.Mod", "%d mod 0", a)
	}
	r, _ := overflow.Mod(a, b)
	return r, nil
}

// UnaryPlus returns a.
func UnaryPlus(a value.Integer) value.Integer { return a }

// UnaryMinus returns -a.
func UnaryMinus(a value.Integer) (value.Integer, error) {
	r, ok := overflow.Neg(a)
	if !ok {
		return 0, value.Fail(value.CodeNumericOverflow, "numeric.UnaryMinus", "-(%d) overflows", a)
	}
	return r, nil
}

// Abs returns |a|.
func Abs(a value.Integer) (value.Integer, error) {
	r, ok := overflow.Abs(a)
	if !ok {
		return 0, value.Fail(value.CodeNumericOverflow, "numeric.Abs", "abs(%d) overflows", a)
	}
	return r, nil
}

// Min returns the smaller of a and b.
func Min(a, b value.Integer) value.Integer { return min(a, b) }

// Max returns the larger of a and b.
func Max(a, b value.Integer) value.Integer { return max(a, b) }

// Equal reports a == b.
func Equal(a, b value.Integer) bool { return a == b }

// LessThan reports a < b.
func LessThan(a, b value.Integer) bool { return a < b }

// GreaterThan reports a > b.
func GreaterThan(a, b value.Integer) bool { return a > b }

// Round is the identity on integers.
func Round(a value.Integer) value.Integer { return a }

// Ceiling is the identity on integers.
func Ceiling(a value.Integer) value.Integer { return a }

// Floor is the identity on integers.
func Floor(a value.Integer) value.Integer { return a }
