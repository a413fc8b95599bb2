// Package duration implements xs:dayTimeDuration operators over value.Interval.
//
// Intervals are signed microsecond counts. Arithmetic is checked: a result
// whose magnitude leaves the interval bound fails with FODT0002 instead of
// wrapping, and subtraction that crosses zero flips the sign. Component
// extraction reports the magnitude; the sign is exposed via IsNegative.
package duration

import (
	"github.com/shopspring/decimal"

	"github.com/roach88/xfn/internal/calendar"
	"github.com/roach88/xfn/internal/overflow"
	"github.com/roach88/xfn/internal/value"
)

// FromMicros creates an interval from a signed microsecond count.
func FromMicros(micros int64) (value.Interval, error) {
	return value.NewInterval(micros)
}

// FromComponents creates an interval from non-negative components and a
// sign flag. Components need not be normalised (36 hours is valid).
// A negative flag on a zero total yields canonical zero.
func FromComponents(days, hours, minutes, seconds, micros int64, negative bool) (value.Interval, error) {
	const op = "duration.FromComponents"
	if days < 0 || hours < 0 || minutes < 0 || seconds < 0 || micros < 0 {
		return value.Interval{}, value.Fail(value.CodeInvalidValue, op, "components must be non-negative")
	}

	parts := [...]struct{ n, unit int64 }{
		{days, calendar.MicrosPerDay},
		{hours, calendar.MicrosPerHour},
		{minutes, calendar.MicrosPerMinute},
		{seconds, calendar.MicrosPerSecond},
		{micros, 1},
	}

	var total int64
	for _, p := range parts {
		scaled, ok := overflow.Mul(p.n, p.unit)
		if !ok {
			return value.Interval{}, value.Fail(value.CodeDurationOverflow, op, "component overflow")
		}
		total, ok = overflow.Add(total, scaled)
		if !ok {
			return value.Interval{}, value.Fail(value.CodeDurationOverflow, op, "total overflow")
		}
	}

	if negative {
		total = -total
	}
	return value.NewInterval(total)
}

// Add returns a + b.
func Add(a, b value.Interval) (value.Interval, error) {
	sum, ok := overflow.Add(a.Micros(), b.Micros())
	if !ok {
		return value.Interval{}, value.Fail(value.CodeDurationOverflow, "duration.Add", "%d + %d overflows", a.Micros(), b.Micros())
	}
	return value.NewInterval(sum)
}

// Subtract returns a - b.
func Subtract(a, b value.Interval) (value.Interval, error) {
	diff, ok := overflow.Sub(a.Micros(), b.Micros())
	if !ok {
		return value.Interval{}, value.Fail(value.CodeDurationOverflow, "duration.Subtract", "%d - %d overflows", a.Micros(), b.Micros())
	}
	return value.NewInterval(diff)
}

// Negate returns -d. Negating canonical zero yields canonical zero.
func Negate(d value.Interval) value.Interval {
	// The interval bound is symmetric, so negation always succeeds.
	n, _ := value.NewInterval(-d.Micros())
	return n
}

// Abs returns |d|.
func Abs(d value.Interval) value.Interval {
	if d.IsNegative() {
		return Negate(d)
	}
	return d
}

// Multiply returns d * n.
func Multiply(d value.Interval, n int64) (value.Interval, error) {
	p, ok := overflow.Mul(d.Micros(), n)
	if !ok {
		return value.Interval{}, value.Fail(value.CodeDurationOverflow, "duration.Multiply", "%d * %d overflows", d.Micros(), n)
	}
	return value.NewInterval(p)
}

// Divide returns d / n, truncated toward zero to whole microseconds.
func Divide(d value.Interval, n int64) (value.Interval, error) {
	if n == 0 {
		return value.Interval{}, value.Fail(value.CodeDivisionByZero, "duration.Divide", "interval divided by zero")
	}
	q, ok := overflow.Div(d.Micros(), n)
	if !ok {
		return value.Interval{}, value.Fail(value.CodeDurationOverflow, "duration.Divide", "%d / %d overflows", d.Micros(), n)
	}
	return value.NewInterval(q)
}

// DivideByInterval returns the exact ratio a / b.
func DivideByInterval(a, b value.Interval) (value.Ratio, error) {
	if b.Micros() == 0 {
		return value.Ratio{}, value.Fail(value.CodeDivisionByZero, "duration.DivideByInterval", "division by zero-length interval")
	}
	return value.NewRatio(a.Micros(), b.Micros())
}

// Compare returns -1, 0 or +1 comparing signed values.
func Compare(a, b value.Interval) int {
	switch {
	case a.Micros() < b.Micros():
		return -1
	case a.Micros() > b.Micros():
		return 1
	default:
		return 0
	}
}

// Equal reports a == b.
func Equal(a, b value.Interval) bool { return a.Micros() == b.Micros() }

// LessThan reports a < b.
func LessThan(a, b value.Interval) bool { return a.Micros() < b.Micros() }

// GreaterThan reports a > b.
func GreaterThan(a, b value.Interval) bool { return a.Micros() > b.Micros() }

// IsNegative reports whether d is strictly negative.
func IsNegative(d value.Interval) bool { return d.IsNegative() }

// DaysOf returns the whole days of the magnitude.
func DaysOf(d value.Interval) int64 {
	return d.Magnitude() / calendar.MicrosPerDay
}

// HoursOf returns the hours component of the magnitude (0-23).
func HoursOf(d value.Interval) int64 {
	return d.Magnitude() % calendar.MicrosPerDay / calendar.MicrosPerHour
}

// MinutesOf returns the minutes component of the magnitude (0-59).
func MinutesOf(d value.Interval) int64 {
	return d.Magnitude() % calendar.MicrosPerHour / calendar.MicrosPerMinute
}

// SecondsOf returns the whole seconds component of the magnitude (0-59).
func SecondsOf(d value.Interval) int64 {
	return d.Magnitude() % calendar.MicrosPerMinute / calendar.MicrosPerSecond
}

// MicrosecondsOf returns the sub-second component of the magnitude.
func MicrosecondsOf(d value.Interval) int64 {
	return d.Magnitude() % calendar.MicrosPerSecond
}

// FractionalSecondsOf returns the seconds component including its fraction,
// e.g. 10.5 for PT1M10.5S.
func FractionalSecondsOf(d value.Interval) decimal.Decimal {
	return decimal.New(d.Magnitude()%calendar.MicrosPerMinute, -6)
}

// Sum folds a sequence of intervals left to right.
func Sum(seq value.Sequence[value.Interval]) (value.Interval, error) {
	total := value.ZeroInterval()
	for _, d := range seq.Values() {
		var err error
		if total, err = Add(total, d); err != nil {
			return value.Interval{}, err
		}
	}
	return total, nil
}
