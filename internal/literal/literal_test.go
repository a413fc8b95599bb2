package literal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/xfn/internal/calendar"
	"github.com/roach88/xfn/internal/value"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		in   string
		want value.Value
	}{
		{"true", value.Boolean(true)},
		{"false()", value.Boolean(false)},
		{"xs:boolean('1')", value.Boolean(true)},
		{"42", value.Integer(42)},
		{"-7", value.Integer(-7)},
		{"xs:integer('9223372036854775807')", value.Integer(math.MaxInt64)},
		{"2.5", value.DoubleFromBits(math.Float64bits(2.5))},
		{"1e3", value.DoubleFromBits(math.Float64bits(1000))},
		{"xs:double('-INF')", value.DoubleFromBits(math.Float64bits(math.Inf(-1)))},
		{"xs:float('3')", value.FloatFromBits(math.Float32bits(3))},
		{`xs:float("0.5")`, value.FloatFromBits(math.Float32bits(0.5))},
		{"()", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateTime(t *testing.T) {
	v, err := Parse("xs:dateTime('2024-02-29T12:00:00.25+05:30')")
	require.NoError(t, err)
	i := v.(value.Instant)

	wall := int64(1_709_164_800)*calendar.MicrosPerSecond + 12*calendar.MicrosPerHour + 250_000
	assert.Equal(t, wall-330*calendar.MicrosPerMinute, i.Micros())
	off, ok := i.Offset()
	require.True(t, ok)
	assert.Equal(t, 330, off)

	v, err = Parse("xs:dateTime('1999-12-31T24:00:00Z')")
	require.NoError(t, err)
	assert.Equal(t, int64(946_684_800)*calendar.MicrosPerSecond, v.(value.Instant).Micros())

	v, err = Parse("xs:dateTime('-0044-03-15T00:00:00')")
	require.NoError(t, err)
	assert.False(t, v.(value.Instant).HasOffset())
	assert.Equal(t, "xs:dateTime('-0044-03-15T00:00:00')", Format(v))
}

func TestParseDuration(t *testing.T) {
	v, err := Parse("xs:dayTimeDuration('-P1DT36H0.5S')")
	require.NoError(t, err)
	d := v.(value.Interval)
	assert.True(t, d.IsNegative())
	assert.Equal(t, 60*calendar.MicrosPerHour+500_000, d.Magnitude())
	assert.Equal(t, "xs:dayTimeDuration('-P2DT12H0.5S')", Format(v))

	v, err = Parse("xs:dayTimeDuration('-PT0S')")
	require.NoError(t, err)
	assert.Equal(t, "xs:dayTimeDuration('PT0S')", Format(v))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in   string
		code value.Code
	}{
		{"xs:dateTime('2024-13-01T00:00:00Z')", value.CodeInvalidValue},
		{"xs:dateTime('2023-02-29T00:00:00Z')", value.CodeInvalidValue},
		{"xs:dateTime('2024-01-01T00:00:00+15:00')", value.CodeInvalidTimezone},
		{"xs:dateTime('2024-01-01')", value.CodeInvalidLexical},
		{"xs:dateTime('01234-01-01T00:00:00Z')", value.CodeInvalidLexical},
		{"xs:dateTime('-00123-01-01T00:00:00Z')", value.CodeInvalidLexical},
		{"xs:dateTime('-0000-01-01T00:00:00Z')", value.CodeInvalidLexical},
		{"xs:dateTime('123-01-01T00:00:00Z')", value.CodeInvalidLexical},
		{"xs:dateTime('2024-01-01T00:00:00.0000001Z')", value.CodeInvalidLexical},
		{"xs:dayTimeDuration('P')", value.CodeInvalidLexical},
		{"xs:dayTimeDuration('P1DT')", value.CodeInvalidLexical},
		{"xs:dayTimeDuration('P1Y')", value.CodeInvalidLexical},
		{"xs:dayTimeDuration('P200000000D')", value.CodeDurationOverflow},
		{"99999999999999999999", value.CodeIntegerRange},
		{"INF", value.CodeInvalidLexical},
		{"hello", value.CodeInvalidLexical},
		{"xs:string('x')", value.CodeUnknownFunction},
		{"xs:boolean('yes')", value.CodeInvalidLexical},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := Parse(tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.code, value.CodeOf(err))
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	inputs := []string{
		"true",
		"-12",
		"xs:double('0.1')",
		"xs:double('1.0E10')",
		"xs:double('NaN')",
		"xs:float('-0')",
		"xs:decimal('-1.5')",
		"xs:dateTime('2024-02-29T23:59:59.999999Z')",
		"xs:dateTime('0000-01-01T00:00:00-14:00')",
		"xs:dateTime('12345-06-01T00:00:00Z')",
		"xs:dateTime('-0001-12-31T23:59:59Z')",
		"xs:dateTime('2024-06-01T08:15:00+09:45')",
		"xs:dayTimeDuration('P3D')",
		"xs:dayTimeDuration('PT1M')",
		"xs:dayTimeDuration('-PT0.000001S')",
		"()",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			v, err := Parse(in)
			require.NoError(t, err)
			assert.Equal(t, in, Format(v))
		})
	}
}

func TestFormatDateTimeAtBoundDropsOffset(t *testing.T) {
	i, err := value.NewInstantWithOffset(value.MaxMicros, 840)
	require.NoError(t, err)

	lexical := FormatDateTime(i)
	assert.NotContains(t, lexical, "Z")
	assert.NotContains(t, lexical, "+")

	back, err := Parse(constructor("xs:dateTime", lexical))
	require.NoError(t, err)
	assert.Equal(t, i.Micros(), back.(value.Instant).Micros())
	assert.False(t, back.(value.Instant).HasOffset())
}

func TestParseOperand(t *testing.T) {
	op, err := ParseOperand("(10, 20, 30, 40, 50)[:3]")
	require.NoError(t, err)
	assert.True(t, op.IsSequence())
	assert.Equal(t, 3, op.Len())
	assert.Len(t, op.Items(), 5)
	assert.Equal(t, "(10, 20, 30, 40, 50)[:3]", FormatOperand(op))

	op, err = ParseOperand("(xs:dateTime('2024-01-01T00:00:00Z'), xs:dateTime('2024-01-02T00:00:00Z'))")
	require.NoError(t, err)
	assert.Equal(t, 2, op.Len())

	op, err = ParseOperand("()")
	require.NoError(t, err)
	assert.True(t, op.IsSequence())
	assert.Equal(t, 0, op.Len())

	op, err = ParseOperand("7")
	require.NoError(t, err)
	assert.False(t, op.IsSequence())
	assert.Equal(t, value.Value(value.Integer(7)), op.Value())

	_, err = ParseOperand("(1, 2)[:3]")
	assert.Equal(t, value.CodeInvalidValue, value.CodeOf(err))

	_, err = ParseOperand("(1, 2")
	assert.Equal(t, value.CodeInvalidLexical, value.CodeOf(err))

	_, err = ParseOperand("(1, 2)x")
	assert.Equal(t, value.CodeInvalidLexical, value.CodeOf(err))
}
