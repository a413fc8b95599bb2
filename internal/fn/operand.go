package fn

import (
	"github.com/roach88/xfn/internal/value"
)

// Operand is one function argument: a single value or a sequence given as
// a buffer plus a logical length.
type Operand struct {
	items  []value.Value
	length int
	seq    bool
}

// Scalar wraps a single value. A nil value is the empty sequence.
func Scalar(v value.Value) Operand {
	if v == nil {
		return Empty()
	}
	return Operand{items: []value.Value{v}, length: 1}
}

// Empty is the empty sequence ().
func Empty() Operand {
	return Operand{seq: true}
}

// Seq wraps a buffer with a logical length.
func Seq(items []value.Value, length int) (Operand, error) {
	if length < 0 || length > len(items) {
		return Operand{}, value.Fail(value.CodeInvalidValue, "fn.Seq", "logical length %d outside 0..%d", length, len(items))
	}
	for i, v := range items {
		if v == nil {
			return Operand{}, value.Fail(value.CodeInvalidValue, "fn.Seq", "item %d is empty", i)
		}
	}
	return Operand{items: items, length: length, seq: true}, nil
}

// IsSequence reports whether the operand was given as a sequence.
func (o Operand) IsSequence() bool { return o.seq }

// Value returns the scalar value, or nil for a sequence.
func (o Operand) Value() value.Value {
	if o.seq || len(o.items) == 0 {
		return nil
	}
	return o.items[0]
}

// Items returns the whole buffer, including elements past the logical length.
func (o Operand) Items() []value.Value { return o.items }

// Len returns the logical length; 1 for a scalar.
func (o Operand) Len() int { return o.length }

// values returns the operand as a sequence of values. A scalar becomes a
// sequence of one.
func (o Operand) values() value.Sequence[value.Value] {
	seq, _ := value.NewSequence(o.items, o.length)
	return seq
}

// typed converts the first Len items to a homogeneous sequence of T.
// Slots past the logical length hold the zero value of T and are never
// read.
func typed[T value.Value](o Operand, op string) (value.Sequence[T], error) {
	buf := make([]T, len(o.items))
	for i, v := range o.items[:o.length] {
		t, ok := v.(T)
		if !ok {
			return value.Sequence[T]{}, value.Fail(value.CodeTypeMismatch, op, "item %d is %s", i, v.Kind())
		}
		buf[i] = t
	}
	return value.NewSequence(buf, o.length)
}
