// Package datetime implements xs:dateTime operators over value.Instant.
//
// An instant is a UTC microsecond magnitude with an optional advisory
// offset. Components are derived from the magnitude on every call and are
// reported in UTC, so two instants with the same magnitude yield the same
// components regardless of offset. The offset only affects TimezoneOf,
// OffsetOf and LocalCivil.
//
// Comparison treats an absent offset as +00:00. XPath's rule that some
// timezone-less values are incomparable is not enforced.
package datetime

import (
	"github.com/shopspring/decimal"

	"github.com/roach88/xfn/internal/calendar"
	"github.com/roach88/xfn/internal/overflow"
	"github.com/roach88/xfn/internal/value"
)

// FromEpochMicros creates an instant without an offset.
func FromEpochMicros(micros int64) (value.Instant, error) {
	return value.NewInstant(micros)
}

// FromEpochMicrosWithOffset creates an instant from a UTC magnitude with an
// advisory offset in minutes.
func FromEpochMicrosWithOffset(micros int64, offsetMinutes int) (value.Instant, error) {
	return value.NewInstantWithOffset(micros, offsetMinutes)
}

// FromCivil creates an instant from UTC civil components, without an offset.
func FromCivil(c calendar.Civil) (value.Instant, error) {
	micros, err := calendar.CivilToEpoch(c)
	if err != nil {
		return value.Instant{}, err
	}
	return value.NewInstant(micros)
}

// FromCivilWithOffset creates an instant from wall-clock components observed
// at offsetMinutes. The stored magnitude is wall - offset.
func FromCivilWithOffset(c calendar.Civil, offsetMinutes int) (value.Instant, error) {
	const op = "datetime.FromCivilWithOffset"
	if err := value.ValidateOffset(offsetMinutes); err != nil {
		return value.Instant{}, err
	}
	wall, err := calendar.CivilToEpoch(c)
	if err != nil {
		return value.Instant{}, err
	}
	utc, ok := overflow.Sub(wall, int64(offsetMinutes)*calendar.MicrosPerMinute)
	if !ok {
		return value.Instant{}, value.Fail(value.CodeDateTimeOverflow, op, "%s at offset %d leaves the instant bound", c, offsetMinutes)
	}
	return value.NewInstantWithOffset(utc, offsetMinutes)
}

// Civil returns the UTC components of i.
func Civil(i value.Instant) calendar.Civil {
	return calendar.EpochToCivil(i.Micros())
}

// LocalCivil returns the wall-clock components at i's advisory offset, or
// the UTC components when there is none. ok is false when shifting to the
// offset leaves the instant bound.
func LocalCivil(i value.Instant) (c calendar.Civil, ok bool) {
	off, has := i.Offset()
	if !has || off == 0 {
		return Civil(i), true
	}
	local, ok := overflow.Add(i.Micros(), int64(off)*calendar.MicrosPerMinute)
	if !ok || local < value.MinMicros {
		return calendar.Civil{}, false
	}
	return calendar.EpochToCivil(local), true
}

// YearOf returns the UTC year (astronomical numbering).
func YearOf(i value.Instant) int64 { return Civil(i).Year }

// MonthOf returns the UTC month, 1-12.
func MonthOf(i value.Instant) int64 { return int64(Civil(i).Month) }

// DayOf returns the UTC day of month.
func DayOf(i value.Instant) int64 { return int64(Civil(i).Day) }

// HoursOf returns the UTC hour, 0-23.
func HoursOf(i value.Instant) int64 { return int64(Civil(i).Hour) }

// MinutesOf returns the UTC minute, 0-59.
func MinutesOf(i value.Instant) int64 { return int64(Civil(i).Minute) }

// SecondsOf returns the whole UTC second, 0-59.
func SecondsOf(i value.Instant) int64 { return int64(Civil(i).Second) }

// MicrosecondOf returns the sub-second microseconds, 0-999999.
func MicrosecondOf(i value.Instant) int64 { return int64(Civil(i).Microsecond) }

// FractionalSecondsOf returns seconds with their fraction, as
// fn:seconds-from-dateTime does.
func FractionalSecondsOf(i value.Instant) decimal.Decimal {
	c := Civil(i)
	return decimal.New(int64(c.Second)*calendar.MicrosPerSecond+int64(c.Microsecond), -6)
}

// OffsetOf returns the advisory offset in minutes.
func OffsetOf(i value.Instant) (int, bool) {
	return i.Offset()
}

// TimezoneOf returns the advisory offset as an interval. ok is false for an
// instant without an offset.
func TimezoneOf(i value.Instant) (tz value.Interval, ok bool) {
	off, has := i.Offset()
	if !has {
		return value.Interval{}, false
	}
	// |offset| <= 840 minutes, always representable.
	tz, _ = value.NewInterval(int64(off) * calendar.MicrosPerMinute)
	return tz, true
}

// AdjustToTimezone returns i with a new advisory offset. The magnitude, and
// therefore every comparison, is unchanged.
func AdjustToTimezone(i value.Instant, offsetMinutes int) (value.Instant, error) {
	return i.WithOffset(offsetMinutes)
}

// RemoveTimezone returns i without an advisory offset.
func RemoveTimezone(i value.Instant) value.Instant {
	return i.WithoutOffset()
}

// Compare returns -1, 0 or +1 comparing UTC magnitudes.
func Compare(a, b value.Instant) int {
	switch {
	case a.Micros() < b.Micros():
		return -1
	case a.Micros() > b.Micros():
		return 1
	default:
		return 0
	}
}

// Equal reports whether a and b denote the same UTC instant.
func Equal(a, b value.Instant) bool { return a.Micros() == b.Micros() }

// LessThan reports whether a is before b.
func LessThan(a, b value.Instant) bool { return a.Micros() < b.Micros() }

// GreaterThan reports whether a is after b.
func GreaterThan(a, b value.Instant) bool { return a.Micros() > b.Micros() }

// Difference returns a - b as an interval.
func Difference(a, b value.Instant) (value.Interval, error) {
	d, ok := overflow.Sub(a.Micros(), b.Micros())
	if !ok {
		return value.Interval{}, value.Fail(value.CodeDurationOverflow, "datetime.Difference", "%d - %d overflows", a.Micros(), b.Micros())
	}
	return value.NewInterval(d)
}

// Add returns i + d. The advisory offset is preserved.
func Add(i value.Instant, d value.Interval) (value.Instant, error) {
	m, ok := overflow.Add(i.Micros(), d.Micros())
	if !ok || m < value.MinMicros {
		return value.Instant{}, value.Fail(value.CodeDateTimeOverflow, "datetime.Add", "%d + %d leaves the instant bound", i.Micros(), d.Micros())
	}
	return shift(i, m)
}

// Subtract returns i - d. The advisory offset is preserved.
func Subtract(i value.Instant, d value.Interval) (value.Instant, error) {
	m, ok := overflow.Sub(i.Micros(), d.Micros())
	if !ok || m < value.MinMicros {
		return value.Instant{}, value.Fail(value.CodeDateTimeOverflow, "datetime.Subtract", "%d - %d leaves the instant bound", i.Micros(), d.Micros())
	}
	return shift(i, m)
}

func shift(i value.Instant, micros int64) (value.Instant, error) {
	if off, ok := i.Offset(); ok {
		return value.NewInstantWithOffset(micros, off)
	}
	return value.NewInstant(micros)
}
