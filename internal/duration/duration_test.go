package duration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/xfn/internal/calendar"
	"github.com/roach88/xfn/internal/value"
)

func mustMicros(t *testing.T, m int64) value.Interval {
	t.Helper()
	d, err := FromMicros(m)
	require.NoError(t, err)
	return d
}

func TestCanonicalZero(t *testing.T) {
	zero := mustMicros(t, 0)
	neg := Negate(zero)

	assert.True(t, Equal(zero, neg))
	assert.False(t, zero.IsNegative())
	assert.False(t, neg.IsNegative())
	assert.Equal(t, zero, neg)

	fromFlag, err := FromComponents(0, 0, 0, 0, 0, true)
	require.NoError(t, err)
	assert.Equal(t, zero, fromFlag)
	assert.False(t, IsNegative(fromFlag))
}

func TestFromComponents(t *testing.T) {
	d, err := FromComponents(1, 36, 0, 5, 250_000, true)
	require.NoError(t, err)
	assert.True(t, d.IsNegative())
	assert.Equal(t, int64(2), DaysOf(d))
	assert.Equal(t, int64(12), HoursOf(d))
	assert.Equal(t, int64(0), MinutesOf(d))
	assert.Equal(t, int64(5), SecondsOf(d))
	assert.Equal(t, int64(250_000), MicrosecondsOf(d))
	assert.Equal(t, "5.25", FractionalSecondsOf(d).String())

	_, err = FromComponents(0, -1, 0, 0, 0, false)
	require.Error(t, err)
	assert.Equal(t, value.CodeInvalidValue, value.CodeOf(err))

	_, err = FromComponents(200_000_000, 0, 0, 0, 0, false)
	require.Error(t, err)
	assert.Equal(t, value.CodeDurationOverflow, value.CodeOf(err))
}

func TestSubtractFlipsSign(t *testing.T) {
	d, err := Subtract(mustMicros(t, 5), mustMicros(t, 8))
	require.NoError(t, err)
	assert.True(t, d.IsNegative())
	assert.Equal(t, int64(3), d.Magnitude())
	assert.Equal(t, -1, Compare(d, value.ZeroInterval()))
}

func TestArithmeticOverflow(t *testing.T) {
	top := mustMicros(t, value.MaxIntervalMicros)

	_, err := Add(top, mustMicros(t, 1))
	assert.Equal(t, value.CodeDurationOverflow, value.CodeOf(err))

	_, err = Subtract(Negate(top), mustMicros(t, 1))
	assert.Equal(t, value.CodeDurationOverflow, value.CodeOf(err))

	_, err = Multiply(top, 2)
	assert.Equal(t, value.CodeDurationOverflow, value.CodeOf(err))

	_, err = FromMicros(-value.MaxIntervalMicros - 1)
	assert.Equal(t, value.CodeDurationOverflow, value.CodeOf(err))
}

func TestMultiplyDivide(t *testing.T) {
	hour := mustMicros(t, calendar.MicrosPerHour)

	d, err := Multiply(hour, -3)
	require.NoError(t, err)
	assert.Equal(t, -3*calendar.MicrosPerHour, d.Micros())

	d, err = Divide(mustMicros(t, -7), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(-3), d.Micros(), "truncates toward zero")

	_, err = Divide(hour, 0)
	require.Error(t, err)
	assert.Equal(t, value.CodeDivisionByZero, value.CodeOf(err))
}

func TestDivideByInterval(t *testing.T) {
	r, err := DivideByInterval(mustMicros(t, 90*calendar.MicrosPerMinute), mustMicros(t, -calendar.MicrosPerHour))
	require.NoError(t, err)
	assert.Equal(t, int64(-3), r.Num())
	assert.Equal(t, int64(2), r.Den())
	assert.Equal(t, "-1.5", r.Decimal(6).String())

	_, err = DivideByInterval(mustMicros(t, 1), value.ZeroInterval())
	require.Error(t, err)
	assert.True(t, value.IsArithmeticError(err))
}

func TestComparison(t *testing.T) {
	a := mustMicros(t, -10)
	b := mustMicros(t, 3)
	assert.True(t, LessThan(a, b))
	assert.True(t, GreaterThan(b, a))
	assert.False(t, Equal(a, b))
	assert.Equal(t, 1, Compare(b, a))
	assert.Equal(t, 0, Compare(Abs(a), mustMicros(t, 10)))
}

func TestSumReadsLogicalLength(t *testing.T) {
	buf := []value.Interval{mustMicros(t, 1), mustMicros(t, 2), mustMicros(t, 3), mustMicros(t, value.MaxIntervalMicros)}
	seq, err := value.NewSequence(buf, 3)
	require.NoError(t, err)

	total, err := Sum(seq)
	require.NoError(t, err)
	assert.Equal(t, int64(6), total.Micros())
}
