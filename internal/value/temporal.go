package value

import "math"

// Instant magnitude bound, in microseconds since 1970-01-01T00:00:00Z.
// The range is symmetric so negating a difference can never overflow.
// It spans roughly +/-292,277 years around the epoch.
const (
	MaxMicros int64 = math.MaxInt64
	MinMicros int64 = -math.MaxInt64
)

// Timezone offset bound in minutes (-14:00..+14:00).
const (
	MaxOffsetMinutes = 14 * 60
	MinOffsetMinutes = -14 * 60
)

// Instant is an xs:dateTime: a UTC microsecond magnitude plus an optional
// advisory timezone offset. Only the magnitude takes part in ordering and
// equality; the offset affects extraction and display.
type Instant struct {
	micros    int64
	offset    int16
	hasOffset bool
}

func (Instant) Kind() Kind { return KindInstant }
func (Instant) xsValue()   {}

// NewInstant creates an Instant without a timezone offset.
func NewInstant(micros int64) (Instant, error) {
	if micros < MinMicros {
		return Instant{}, Fail(CodeDateTimeOverflow, "value.NewInstant", "magnitude %d below bound", micros)
	}
	return Instant{micros: micros}, nil
}

// NewInstantWithOffset creates an Instant carrying an advisory offset in minutes.
func NewInstantWithOffset(micros int64, offsetMinutes int) (Instant, error) {
	i, err := NewInstant(micros)
	if err != nil {
		return Instant{}, err
	}
	return i.WithOffset(offsetMinutes)
}

// Micros returns the UTC magnitude.
func (i Instant) Micros() int64 { return i.micros }

// Offset returns the advisory offset in minutes and whether one is present.
func (i Instant) Offset() (int, bool) { return int(i.offset), i.hasOffset }

// HasOffset reports whether the instant carries an advisory offset.
func (i Instant) HasOffset() bool { return i.hasOffset }

// WithOffset returns a copy with the given advisory offset; the magnitude is unchanged.
func (i Instant) WithOffset(offsetMinutes int) (Instant, error) {
	if err := ValidateOffset(offsetMinutes); err != nil {
		return Instant{}, err
	}
	return Instant{micros: i.micros, offset: int16(offsetMinutes), hasOffset: true}, nil
}

// WithoutOffset returns a copy with no advisory offset.
func (i Instant) WithoutOffset() Instant {
	return Instant{micros: i.micros}
}

// ValidateOffset checks an offset in minutes against -14:00..+14:00.
func ValidateOffset(offsetMinutes int) error {
	if offsetMinutes < MinOffsetMinutes || offsetMinutes > MaxOffsetMinutes {
		return Fail(CodeInvalidTimezone, "value.ValidateOffset", "offset %d minutes outside -840..840", offsetMinutes)
	}
	return nil
}

// MaxIntervalMicros bounds interval magnitudes. -2^63 is excluded so the
// magnitude of every interval fits in an int64.
const MaxIntervalMicros int64 = math.MaxInt64

// Interval is an xs:dayTimeDuration held as one signed microsecond count.
// Sign and magnitude are derived, so zero has a single representation.
type Interval struct {
	micros int64
}

func (Interval) Kind() Kind { return KindInterval }
func (Interval) xsValue()   {}

// NewInterval creates an Interval from a signed microsecond count.
func NewInterval(micros int64) (Interval, error) {
	if micros < -MaxIntervalMicros {
		return Interval{}, Fail(CodeDurationOverflow, "value.NewInterval", "magnitude of %d exceeds bound", micros)
	}
	return Interval{micros: micros}, nil
}

// ZeroInterval is the canonical zero-length interval.
func ZeroInterval() Interval {
	return Interval{}
}

// Micros returns the signed microsecond count.
func (d Interval) Micros() int64 { return d.micros }

// Magnitude returns the absolute microsecond count.
func (d Interval) Magnitude() int64 {
	if d.micros < 0 {
		return -d.micros
	}
	return d.micros
}

// IsNegative reports whether the interval is strictly negative.
// Canonical zero is never negative.
func (d Interval) IsNegative() bool { return d.micros < 0 }

// Sign returns -1, 0 or +1.
func (d Interval) Sign() int {
	switch {
	case d.micros < 0:
		return -1
	case d.micros > 0:
		return 1
	default:
		return 0
	}
}
