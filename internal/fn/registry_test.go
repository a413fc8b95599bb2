package fn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/xfn/internal/catalog"
	"github.com/roach88/xfn/internal/numeric"
	"github.com/roach88/xfn/internal/value"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	r, err := New(cat, numeric.Default())
	require.NoError(t, err)
	return r
}

func ints(t *testing.T, length int, ns ...int64) Operand {
	t.Helper()
	items := make([]value.Value, len(ns))
	for i, n := range ns {
		items[i] = value.Integer(n)
	}
	op, err := Seq(items, length)
	require.NoError(t, err)
	return op
}

func TestEveryCatalogEntryIsBound(t *testing.T) {
	r := newRegistry(t)
	for _, f := range r.Catalog().Functions() {
		_, bound := r.impls[f.Name]
		assert.Equal(t, f.Implemented(), bound, f.Name)
	}
}

func TestNewRejectsCatalogMismatch(t *testing.T) {
	cat, err := catalog.Parse([]byte(`functions: "fn:not-a-function": {family: "boolean", params: [], returns: "xs:boolean", status: "implemented", doc: "x"}`), "t.cue")
	require.NoError(t, err)

	_, err = New(cat, numeric.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fn:not-a-function")
	assert.Contains(t, err.Error(), "op:numeric-add")
}

func TestApplyChecksSignature(t *testing.T) {
	r := newRegistry(t)

	_, err := r.Apply("fn:nope")
	assert.Equal(t, value.CodeUnknownFunction, value.CodeOf(err))

	_, err = r.Apply("op:numeric-add", Scalar(value.Integer(1)))
	assert.Equal(t, value.CodeUnknownFunction, value.CodeOf(err))

	_, err = r.Apply("op:numeric-add", Scalar(value.Integer(1)), Scalar(value.Boolean(true)))
	assert.Equal(t, value.CodeTypeMismatch, value.CodeOf(err))

	_, err = r.Apply("fn:not", ints(t, 1, 1))
	assert.Equal(t, value.CodeTypeMismatch, value.CodeOf(err))

	_, err = r.Apply("fn:current-dateTime")
	assert.Equal(t, value.CodeUnsupported, value.CodeOf(err))
}

func TestApplyNumeric(t *testing.T) {
	r := newRegistry(t)

	got, err := r.Apply("op:numeric-add", Scalar(value.Integer(2)), Scalar(value.FloatFromBits(math.Float32bits(3))))
	require.NoError(t, err)
	assert.Equal(t, value.Value(value.FloatFromBits(math.Float32bits(5))), got)

	_, err = r.Apply("op:numeric-divide", Scalar(value.Integer(5)), Scalar(value.Integer(0)))
	assert.Equal(t, value.CodeDivisionByZero, value.CodeOf(err))

	_, err = r.Apply("fn:round", Scalar(value.DoubleFromBits(math.Float64bits(1.5))))
	assert.True(t, value.IsUnsupported(err))
}

func TestApplyAggregatesOverPartialSequence(t *testing.T) {
	r := newRegistry(t)
	seq := ints(t, 3, 10, 20, 30, 40, 50)

	for name, want := range map[string]int64{"xfn:sum": 60, "xfn:avg": 20, "xfn:max-seq": 30, "xfn:min-seq": 10, "fn:count": 3} {
		got, err := r.Apply(name, seq)
		require.NoError(t, err, name)
		assert.Equal(t, value.Value(value.Integer(want)), got, name)
	}

	_, err := r.Apply("xfn:avg", ints(t, 0))
	assert.Equal(t, value.CodeDivisionByZero, value.CodeOf(err))

	got, err := r.Apply("fn:empty", Empty())
	require.NoError(t, err)
	assert.Equal(t, value.Value(value.Boolean(true)), got)

	got, err = r.Apply("xfn:sum", Scalar(value.Integer(7)))
	require.NoError(t, err, "a scalar is a sequence of one")
	assert.Equal(t, value.Value(value.Integer(7)), got)
}

func TestApplyIgnoresItemsPastLength(t *testing.T) {
	r := newRegistry(t)
	padded, err := Seq([]value.Value{value.Integer(10), value.Integer(20), value.Integer(30), value.Boolean(true), value.Boolean(false)}, 3)
	require.NoError(t, err)

	for name, want := range map[string]int64{"xfn:sum": 60, "xfn:avg": 20, "xfn:max-seq": 30, "xfn:min-seq": 10, "fn:sum": 60, "fn:max": 30} {
		got, err := r.Apply(name, padded)
		require.NoError(t, err, name)
		assert.Equal(t, value.Value(value.Integer(want)), got, name)
	}

	bad, err := Seq([]value.Value{value.Integer(10), value.Boolean(true), value.Integer(30)}, 2)
	require.NoError(t, err)
	_, err = r.Apply("xfn:sum", bad)
	assert.Equal(t, value.CodeTypeMismatch, value.CodeOf(err), "items inside the length are still checked")
}

func TestApplyMinMaxPromote(t *testing.T) {
	r := newRegistry(t)
	mixed, err := Seq([]value.Value{value.Integer(1), value.DoubleFromBits(math.Float64bits(2.5))}, 2)
	require.NoError(t, err)

	seqMin, err := r.Apply("fn:min", mixed)
	require.NoError(t, err)
	pairMin, err := r.Apply("xfn:min", Scalar(value.Integer(1)), Scalar(value.DoubleFromBits(math.Float64bits(2.5))))
	require.NoError(t, err)
	assert.Equal(t, value.Value(value.DoubleFromBits(math.Float64bits(1))), seqMin)
	assert.Equal(t, pairMin, seqMin)
}

func TestApplyIntegerDivide(t *testing.T) {
	r := newRegistry(t)

	got, err := r.Apply("op:numeric-integer-divide", Scalar(value.Integer(-7)), Scalar(value.Integer(2)))
	require.NoError(t, err)
	assert.Equal(t, value.Value(value.Integer(-3)), got)

	got, err = r.Apply("op:numeric-integer-divide", Scalar(value.DoubleFromBits(math.Float64bits(7.5))), Scalar(value.Integer(2)))
	require.NoError(t, err)
	assert.Equal(t, value.Value(value.Integer(3)), got)

	_, err = r.Apply("op:numeric-integer-divide", Scalar(value.Integer(5)), Scalar(value.Integer(0)))
	assert.Equal(t, value.CodeDivisionByZero, value.CodeOf(err))
}

func TestApplyTemporal(t *testing.T) {
	r := newRegistry(t)
	i := func(n int64) Operand { return Scalar(value.Integer(n)) }

	dt, err := r.Apply("xfn:dateTime-with-offset", i(2024), i(2), i(29), i(23), i(30), i(15), i(500_000), i(60))
	require.NoError(t, err)

	hours, err := r.Apply("fn:hours-from-dateTime", Scalar(dt))
	require.NoError(t, err)
	assert.Equal(t, value.Value(value.Integer(22)), hours)

	secs, err := r.Apply("fn:seconds-from-dateTime", Scalar(dt))
	require.NoError(t, err)
	ratio := secs.(value.Ratio)
	assert.Equal(t, int64(31), ratio.Num())
	assert.Equal(t, int64(2), ratio.Den())

	tz, err := r.Apply("fn:timezone-from-dateTime", Scalar(dt))
	require.NoError(t, err)
	assert.Equal(t, int64(60*60_000_000), tz.(value.Interval).Micros())

	bare, err := r.Apply("xfn:remove-timezone", Scalar(dt))
	require.NoError(t, err)
	tz, err = r.Apply("fn:timezone-from-dateTime", Scalar(bare))
	require.NoError(t, err)
	assert.Nil(t, tz, "no offset yields the empty sequence")

	half, err := value.NewInterval(30 * 60_000_000)
	require.NoError(t, err)
	adjusted, err := r.Apply("fn:adjust-dateTime-to-timezone", Scalar(dt), Scalar(half))
	require.NoError(t, err)
	eq, err := r.Apply("op:dateTime-equal", Scalar(dt), Scalar(adjusted))
	require.NoError(t, err)
	assert.Equal(t, value.Value(value.Boolean(true)), eq)

	odd, err := value.NewInterval(90_000_000)
	require.NoError(t, err)
	_, err = r.Apply("fn:adjust-dateTime-to-timezone", Scalar(dt), Scalar(odd))
	assert.Equal(t, value.CodeInvalidTimezone, value.CodeOf(err))

	_, err = r.Apply("xfn:dateTime", i(2023), i(2), i(29), i(0), i(0), i(0), i(0))
	assert.Equal(t, value.CodeInvalidValue, value.CodeOf(err))
}

func TestApplyComparisonFacade(t *testing.T) {
	r := newRegistry(t)
	got, err := r.Apply("xfn:compare", Scalar(value.Integer(2)), Scalar(value.DoubleFromBits(math.Float64bits(1.5))))
	require.NoError(t, err)
	assert.Equal(t, value.Value(value.Integer(1)), got)

	_, err = r.Apply("xfn:equal", Scalar(value.Integer(2)), Scalar(value.ZeroInterval()))
	assert.Equal(t, value.CodeTypeMismatch, value.CodeOf(err))
}

func TestSeqValidatesLength(t *testing.T) {
	_, err := Seq([]value.Value{value.Integer(1)}, 2)
	assert.Equal(t, value.CodeInvalidValue, value.CodeOf(err))

	_, err = Seq([]value.Value{nil}, 0)
	assert.Error(t, err)
}
