package numeric

import (
	"github.com/roach88/xfn/internal/value"
)

type binaryOp int

const (
	opAdd binaryOp = iota
	opSubtract
	opMultiply
	opDivide
	opMod
)

var binaryOpNames = [...]string{
	opAdd:      "numeric.Add",
	opSubtract: "numeric.Subtract",
	opMultiply: "numeric.Multiply",
	opDivide:   "numeric.Divide",
	opMod:      "numeric.Mod",
}

var integerOps = [...]func(a, b value.Integer) (value.Integer, error){
	opAdd:      Add,
	opSubtract: Subtract,
	opMultiply: Multiply,
	opDivide:   Divide,
	opMod:      Mod,
}

// floatBinary forwards op to the delegate unit u. Mod has no delegate
// operation and is reported as unsupported.
func floatBinary[B Bits](u Unit[B], op binaryOp, a, b B) (B, error) {
	switch op {
	case opAdd:
		return u.Add(a, b), nil
	case opSubtract:
		return u.Subtract(a, b), nil
	case opMultiply:
		return u.Multiply(a, b), nil
	case opDivide:
		return u.Divide(a, b), nil
	default:
		return 0, value.Fail(value.CodeUnsupported, binaryOpNames[op], "not implemented for floating-point operands")
	}
}

func (e *Engine) arith(op binaryOp, a, b value.Value) (value.Value, error) {
	pa, pb, err := e.Promote(a, b)
	if err != nil {
		return nil, err
	}
	switch x := pa.(type) {
	case value.Integer:
		return integerOps[op](x, pb.(value.Integer))
	case value.Float:
		r, err := floatBinary(e.float, op, x.Bits(), pb.(value.Float).Bits())
		if err != nil {
			return nil, err
		}
		return value.FloatFromBits(r), nil
	default:
		r, err := floatBinary(e.double, op, pa.(value.Double).Bits(), pb.(value.Double).Bits())
		if err != nil {
			return nil, err
		}
		return value.DoubleFromBits(r), nil
	}
}

// Add returns a + b after promotion.
func (e *Engine) Add(a, b value.Value) (value.Value, error) { return e.arith(opAdd, a, b) }

// Subtract returns a - b after promotion.
func (e *Engine) Subtract(a, b value.Value) (value.Value, error) { return e.arith(opSubtract, a, b) }

// Multiply returns a * b after promotion.
func (e *Engine) Multiply(a, b value.Value) (value.Value, error) { return e.arith(opMultiply, a, b) }

// Divide returns a / b after promotion. Integer division truncates and
// fails on a zero divisor; floating division follows the delegate.
func (e *Engine) Divide(a, b value.Value) (value.Value, error) { return e.arith(opDivide, a, b) }

// Mod returns the integer remainder. Floating operands are unsupported.
func (e *Engine) Mod(a, b value.Value) (value.Value, error) { return e.arith(opMod, a, b) }

// IntegerDivide returns a idiv b: the quotient truncated toward zero as an
// xs:integer. Floating operands divide through the delegate first. A zero
// divisor fails with FOAR0001; a NaN or infinite quotient, or one outside
// the integer range, fails with FOAR0002.
func (e *Engine) IntegerDivide(a, b value.Value) (value.Value, error) {
	const op = "numeric.IntegerDivide"
	pa, pb, err := e.Promote(a, b)
	if err != nil {
		return nil, err
	}
	if x, ok := pa.(value.Integer); ok {
		q, err := Divide(x, pb.(value.Integer))
		if err != nil {
			return nil, err
		}
		return q, nil
	}
	if zero, _ := e.relate(relEqual, pb, value.Integer(0)); zero {
		return nil, value.Fail(value.CodeDivisionByZero, op, "%s idiv 0", pa.Kind())
	}
	q, err := e.arith(opDivide, pa, pb)
	if err != nil {
		return nil, err
	}
	n, err := e.CastToInteger(q)
	if err != nil {
		return nil, value.Fail(value.CodeNumericOverflow, op, "quotient has no integer equivalent")
	}
	return n, nil
}

type relation int

const (
	relEqual relation = iota
	relLess
	relGreater
)

func floatRelation[B Bits](u Unit[B], rel relation, a, b B) bool {
	switch rel {
	case relLess:
		return u.LessThan(a, b)
	case relGreater:
		return u.GreaterThan(a, b)
	default:
		return u.Equal(a, b)
	}
}

func (e *Engine) relate(rel relation, a, b value.Value) (bool, error) {
	pa, pb, err := e.Promote(a, b)
	if err != nil {
		return false, err
	}
	switch x := pa.(type) {
	case value.Integer:
		y := pb.(value.Integer)
		switch rel {
		case relLess:
			return LessThan(x, y), nil
		case relGreater:
			return GreaterThan(x, y), nil
		default:
			return Equal(x, y), nil
		}
	case value.Float:
		return floatRelation(e.float, rel, x.Bits(), pb.(value.Float).Bits()), nil
	default:
		return floatRelation(e.double, rel, pa.(value.Double).Bits(), pb.(value.Double).Bits()), nil
	}
}

// Equal reports a == b after promotion. NaN is unequal to everything.
func (e *Engine) Equal(a, b value.Value) (bool, error) { return e.relate(relEqual, a, b) }

// LessThan reports a < b after promotion.
func (e *Engine) LessThan(a, b value.Value) (bool, error) { return e.relate(relLess, a, b) }

// GreaterThan reports a > b after promotion.
func (e *Engine) GreaterThan(a, b value.Value) (bool, error) { return e.relate(relGreater, a, b) }

// Min returns the smaller operand after promotion. When the delegate
// reports b < a is false (including for NaN), a is returned.
func (e *Engine) Min(a, b value.Value) (value.Value, error) {
	pa, pb, err := e.Promote(a, b)
	if err != nil {
		return nil, err
	}
	less, _ := e.relate(relLess, pb, pa)
	if less {
		return pb, nil
	}
	return pa, nil
}

// Max returns the larger operand after promotion.
func (e *Engine) Max(a, b value.Value) (value.Value, error) {
	pa, pb, err := e.Promote(a, b)
	if err != nil {
		return nil, err
	}
	greater, _ := e.relate(relGreater, pb, pa)
	if greater {
		return pb, nil
	}
	return pa, nil
}

// Abs returns |a|.
func (e *Engine) Abs(a value.Value) (value.Value, error) {
	switch x := a.(type) {
	case value.Integer:
		return Abs(x)
	case value.Float:
		return value.FloatFromBits(e.float.Abs(x.Bits())), nil
	case value.Double:
		return value.DoubleFromBits(e.double.Abs(x.Bits())), nil
	}
	return nil, value.Fail(value.CodeTypeMismatch, "numeric.Abs", "%s is not numeric", kindName(a))
}

// UnaryPlus returns a unchanged.
func (e *Engine) UnaryPlus(a value.Value) (value.Value, error) {
	if err := requireNumeric("numeric.UnaryPlus", a); err != nil {
		return nil, err
	}
	return a, nil
}

// UnaryMinus returns -a. Floating operands are multiplied by -1 through
// the delegate.
func (e *Engine) UnaryMinus(a value.Value) (value.Value, error) {
	switch x := a.(type) {
	case value.Integer:
		return UnaryMinus(x)
	case value.Float:
		return value.FloatFromBits(e.float.Multiply(x.Bits(), e.float.FromInteger(-1))), nil
	case value.Double:
		return value.DoubleFromBits(e.double.Multiply(x.Bits(), e.double.FromInteger(-1))), nil
	}
	return nil, value.Fail(value.CodeTypeMismatch, "numeric.UnaryMinus", "%s is not numeric", kindName(a))
}

// Round is the identity on integers and unsupported on floating operands.
func (e *Engine) Round(a value.Value) (value.Value, error) { return rounding("numeric.Round", a) }

// Ceiling is the identity on integers and unsupported on floating operands.
func (e *Engine) Ceiling(a value.Value) (value.Value, error) { return rounding("numeric.Ceiling", a) }

// Floor is the identity on integers and unsupported on floating operands.
func (e *Engine) Floor(a value.Value) (value.Value, error) { return rounding("numeric.Floor", a) }

func rounding(op string, a value.Value) (value.Value, error) {
	if err := requireNumeric(op, a); err != nil {
		return nil, err
	}
	if x, ok := a.(value.Integer); ok {
		return x, nil
	}
	return nil, value.Fail(value.CodeUnsupported, op, "not implemented for %s", a.Kind())
}
