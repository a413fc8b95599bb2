package compare

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/xfn/internal/value"
)

func instant(t *testing.T, micros int64, offset int) value.Instant {
	t.Helper()
	i, err := value.NewInstantWithOffset(micros, offset)
	require.NoError(t, err)
	return i
}

func interval(t *testing.T, micros int64) value.Interval {
	t.Helper()
	d, err := value.NewInterval(micros)
	require.NoError(t, err)
	return d
}

func TestDispatch(t *testing.T) {
	half, err := value.NewRatio(1, 2)
	require.NoError(t, err)
	twoQuarters, err := value.NewRatio(-2, -4)
	require.NoError(t, err)
	third, err := value.NewRatio(1, 3)
	require.NoError(t, err)

	tests := []struct {
		name string
		a, b value.Value
		want int
	}{
		{"integers", value.Integer(1), value.Integer(2), -1},
		{"integer vs double", value.Integer(3), value.DoubleFromBits(math.Float64bits(2.5)), 1},
		{"instants across offsets", instant(t, 100, 60), instant(t, 100, -60), 0},
		{"instants", instant(t, 99, 0), instant(t, 100, 600), -1},
		{"intervals", interval(t, -5), interval(t, 5), -1},
		{"booleans", value.Boolean(true), value.Boolean(false), 1},
		{"equal booleans", value.Boolean(false), value.Boolean(false), 0},
		{"ratios", half, twoQuarters, 0},
		{"ratio order", third, half, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			eq, err := Equal(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want == 0, eq)

			lt, err := LessThan(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want < 0, lt)

			gt, err := GreaterThan(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want > 0, gt)
		})
	}
}

func TestMismatchedKinds(t *testing.T) {
	pairs := [][2]value.Value{
		{value.Integer(1), interval(t, 1)},
		{instant(t, 0, 0), interval(t, 0)},
		{value.Boolean(true), value.Integer(1)},
		{nil, value.Integer(1)},
	}
	for _, p := range pairs {
		_, err := Compare(p[0], p[1])
		require.Error(t, err)
		assert.Equal(t, value.CodeTypeMismatch, value.CodeOf(err))

		_, err = Equal(p[0], p[1])
		assert.True(t, value.IsTypeError(err))
	}
}

func TestCompareNaNIsUnordered(t *testing.T) {
	nan := value.DoubleFromBits(math.Float64bits(math.NaN()))
	_, err := Compare(nan, value.Integer(1))
	require.Error(t, err)
	assert.True(t, value.IsUnsupported(err))

	eq, err := Equal(nan, nan)
	require.NoError(t, err)
	assert.False(t, eq)
}

func TestBooleanOperators(t *testing.T) {
	assert.Equal(t, value.Boolean(false), Not(true))
	assert.Equal(t, value.Boolean(true), BooleanEqual(false, false))
	assert.Equal(t, value.Boolean(true), BooleanLessThan(false, true))
	assert.Equal(t, value.Boolean(false), BooleanLessThan(true, true))
	assert.Equal(t, value.Boolean(true), BooleanGreaterThan(true, false))
	assert.Equal(t, value.Boolean(false), BooleanGreaterThan(false, true))
}
