package value

import "iter"

// Sequence is a fixed-capacity buffer paired with an explicit logical length.
// Elements at or beyond Len are never read by any accessor.
type Sequence[T Value] struct {
	buf    []T
	length int
}

// NewSequence wraps buf with a logical length. The buffer is not copied;
// callers must not mutate it afterwards.
func NewSequence[T Value](buf []T, length int) (Sequence[T], error) {
	if length < 0 || length > len(buf) {
		return Sequence[T]{}, Fail(CodeInvalidValue, "value.NewSequence", "logical length %d outside 0..%d", length, len(buf))
	}
	return Sequence[T]{buf: buf, length: length}, nil
}

// FullSequence wraps buf with a logical length equal to its capacity.
func FullSequence[T Value](buf []T) Sequence[T] {
	return Sequence[T]{buf: buf, length: len(buf)}
}

// Len returns the logical length.
func (s Sequence[T]) Len() int { return s.length }

// Cap returns the buffer capacity.
func (s Sequence[T]) Cap() int { return len(s.buf) }

// At returns the element at index i, which must be below Len.
func (s Sequence[T]) At(i int) (T, error) {
	if i < 0 || i >= s.length {
		var zero T
		return zero, Fail(CodeInvalidArgument, "value.Sequence.At", "index %d outside logical length %d", i, s.length)
	}
	return s.buf[i], nil
}

// Values iterates over the logically valid elements in order.
func (s Sequence[T]) Values() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < s.length; i++ {
			if !yield(i, s.buf[i]) {
				return
			}
		}
	}
}
