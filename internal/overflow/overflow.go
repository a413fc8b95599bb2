// Package overflow implements checked signed integer arithmetic.
//
// Every function returns (result, ok). ok is false when the mathematically
// exact result does not fit in T, or when a divisor is zero. Results are
// never wrapped.
package overflow

// Signed is the set of signed integer types the helpers accept.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// minOf returns the smallest value of T.
func minOf[T Signed]() T {
	var x T
	x = -1
	bits := 0
	for v := T(1); v > 0; v <<= 1 {
		bits++
	}
	return x << bits
}

// Add returns a+b.
func Add[T Signed](a, b T) (T, bool) {
	c := a + b
	if (c > a) == (b > 0) {
		return c, true
	}
	return c, false
}

// Sub returns a-b.
func Sub[T Signed](a, b T) (T, bool) {
	c := a - b
	if (c < a) == (b > 0) {
		return c, true
	}
	return c, false
}

// Mul returns a*b.
func Mul[T Signed](a, b T) (T, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if (c < 0) != ((a < 0) != (b < 0)) {
		return c, false
	}
	if c/b != a {
		return c, false
	}
	return c, true
}

// Div returns a/b truncated toward zero.
func Div[T Signed](a, b T) (T, bool) {
	if b == 0 {
		return 0, false
	}
	if b == -1 && a == minOf[T]() {
		return 0, false
	}
	return a / b, true
}

// Mod returns a%b; the result has the sign of a.
func Mod[T Signed](a, b T) (T, bool) {
	if b == 0 {
		return 0, false
	}
	if b == -1 {
		return 0, true
	}
	return a % b, true
}

// Neg returns -a.
func Neg[T Signed](a T) (T, bool) {
	if a == minOf[T]() {
		return 0, false
	}
	return -a, true
}

// Abs returns |a|.
func Abs[T Signed](a T) (T, bool) {
	if a >= 0 {
		return a, true
	}
	return Neg(a)
}
