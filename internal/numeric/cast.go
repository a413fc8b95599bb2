package numeric

import (
	"github.com/roach88/xfn/internal/value"
)

// CastToFloat converts v to xs:float. Narrowing a finite double that
// overflows binary32 fails with FOAR0002. Booleans map to 0 and 1.
func (e *Engine) CastToFloat(v value.Value) (value.Float, error) {
	const op = "numeric.CastToFloat"
	switch x := v.(type) {
	case value.Float:
		return x, nil
	case value.Integer:
		return value.FloatFromBits(e.float.FromInteger(int64(x))), nil
	case value.Double:
		f, ok := e.conv.Narrow(x.Bits())
		if !ok {
			return 0, value.Fail(value.CodeNumericOverflow, op, "double exceeds xs:float range")
		}
		return value.FloatFromBits(f), nil
	case value.Boolean:
		return value.FloatFromBits(e.float.FromInteger(boolInt(x))), nil
	}
	return 0, value.Fail(value.CodeTypeMismatch, op, "cannot cast %s to xs:float", kindName(v))
}

// CastToDouble converts v to xs:double. Every source widens exactly or
// rounds to nearest (integers beyond 2^53).
func (e *Engine) CastToDouble(v value.Value) (value.Double, error) {
	switch x := v.(type) {
	case value.Double:
		return x, nil
	case value.Integer:
		return value.DoubleFromBits(e.double.FromInteger(int64(x))), nil
	case value.Float:
		return value.DoubleFromBits(e.conv.Widen(x.Bits())), nil
	case value.Boolean:
		return value.DoubleFromBits(e.double.FromInteger(boolInt(x))), nil
	}
	return 0, value.Fail(value.CodeTypeMismatch, "numeric.CastToDouble", "cannot cast %s to xs:double", kindName(v))
}

// CastToInteger converts v to xs:integer, truncating floating values
// toward zero. NaN, infinities and out-of-range values fail with FOCA0003.
func (e *Engine) CastToInteger(v value.Value) (value.Integer, error) {
	const op = "numeric.CastToInteger"
	var (
		n  int64
		ok bool
	)
	switch x := v.(type) {
	case value.Integer:
		return x, nil
	case value.Boolean:
		return value.Integer(boolInt(x)), nil
	case value.Float:
		n, ok = e.float.Truncate(x.Bits())
	case value.Double:
		n, ok = e.double.Truncate(x.Bits())
	default:
		return 0, value.Fail(value.CodeTypeMismatch, op, "cannot cast %s to xs:integer", kindName(v))
	}
	if !ok {
		return 0, value.Fail(value.CodeIntegerRange, op, "%s value has no integer equivalent", v.Kind())
	}
	return value.Integer(n), nil
}

func boolInt(b value.Boolean) int64 {
	if b {
		return 1
	}
	return 0
}
