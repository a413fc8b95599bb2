// Package calendar converts between UTC epoch microseconds and civil
// calendar components.
//
// The calendar is proleptic Gregorian with astronomical year numbering:
// year 0 exists (1 BCE) and earlier years are negative. Whole days are
// converted with the days-from-civil / civil-from-days algorithms; the
// remaining time of day is split by successive division.
//
// Both directions round-trip exactly for every value inside the instant
// bound. Invalid components are rejected, never normalised.
package calendar

import (
	"fmt"

	"github.com/roach88/xfn/internal/overflow"
	"github.com/roach88/xfn/internal/value"
)

// Microsecond multiples used throughout the engine.
const (
	MicrosPerSecond int64 = 1_000_000
	MicrosPerMinute       = 60 * MicrosPerSecond
	MicrosPerHour         = 60 * MicrosPerMinute
	MicrosPerDay          = 24 * MicrosPerHour
)

// MaxAbsYear bounds the years CivilToEpoch accepts before range checking
// the result. It keeps the day arithmetic far from int64 limits.
const MaxAbsYear int64 = 1_000_000

// daysToEpoch is the day number of 1970-01-01 counted from 0000-03-01.
const daysToEpoch = 719468

// Civil is a broken-down UTC calendar date and time of day.
type Civil struct {
	Year        int64
	Month       int
	Day         int
	Hour        int
	Minute      int
	Second      int
	Microsecond int
}

// String renders the civil time as an ISO-8601-like string for diagnostics.
func (c Civil) String() string {
	sign, year := "", c.Year
	if year < 0 {
		sign, year = "-", -year
	}
	return fmt.Sprintf("%s%04d-%02d-%02dT%02d:%02d:%02d.%06d", sign, year, c.Month, c.Day, c.Hour, c.Minute, c.Second, c.Microsecond)
}

// Validate checks every component range without normalising.
func (c Civil) Validate() error {
	const op = "calendar.Validate"
	switch {
	case c.Year > MaxAbsYear || c.Year < -MaxAbsYear:
		return value.Fail(value.CodeDateTimeOverflow, op, "year %d outside +/-%d", c.Year, MaxAbsYear)
	case c.Month < 1 || c.Month > 12:
		return value.Fail(value.CodeInvalidValue, op, "month %d outside 1..12", c.Month)
	case c.Day < 1 || c.Day > DaysInMonth(c.Year, c.Month):
		return value.Fail(value.CodeInvalidValue, op, "day %d invalid for %04d-%02d", c.Day, c.Year, c.Month)
	case c.Hour < 0 || c.Hour > 23:
		return value.Fail(value.CodeInvalidValue, op, "hour %d outside 0..23", c.Hour)
	case c.Minute < 0 || c.Minute > 59:
		return value.Fail(value.CodeInvalidValue, op, "minute %d outside 0..59", c.Minute)
	case c.Second < 0 || c.Second > 59:
		return value.Fail(value.CodeInvalidValue, op, "second %d outside 0..59", c.Second)
	case c.Microsecond < 0 || c.Microsecond > 999_999:
		return value.Fail(value.CodeInvalidValue, op, "microsecond %d outside 0..999999", c.Microsecond)
	}
	return nil
}

// TimeOfDayMicros returns the microseconds elapsed since midnight.
func (c Civil) TimeOfDayMicros() int64 {
	return int64(c.Hour)*MicrosPerHour +
		int64(c.Minute)*MicrosPerMinute +
		int64(c.Second)*MicrosPerSecond +
		int64(c.Microsecond)
}

// IsLeapYear applies the 4/100/400 rule.
func IsLeapYear(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in month of year, or 0 for an
// invalid month.
func DaysInMonth(year int64, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return monthDays[month]
}

// DaysFromCivil returns the number of days from 1970-01-01 to the given date.
// The date must be valid and |year| <= MaxAbsYear.
func DaysFromCivil(year int64, month, day int) int64 {
	y := year
	m := int64(month)
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + int64(day) - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - daysToEpoch
}

// CivilFromDays is the inverse of DaysFromCivil.
func CivilFromDays(days int64) (year int64, month, day int) {
	z := days + daysToEpoch
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if m > 12 {
		m -= 12
	}
	y := yoe + era*400
	if m <= 2 {
		y++
	}
	return y, int(m), int(d)
}

// EpochToCivil decomposes a UTC microsecond magnitude into civil components.
func EpochToCivil(micros int64) Civil {
	days := floorDiv(micros, MicrosPerDay)
	tod := micros % MicrosPerDay
	if tod < 0 {
		tod += MicrosPerDay
	}

	y, m, d := CivilFromDays(days)

	c := Civil{Year: y, Month: m, Day: d}
	c.Microsecond = int(tod % MicrosPerSecond)
	secs := tod / MicrosPerSecond
	c.Second = int(secs % 60)
	mins := secs / 60
	c.Minute = int(mins % 60)
	c.Hour = int(mins / 60 % 24)
	return c
}

// CivilToEpoch converts validated civil components to a UTC microsecond
// magnitude. It fails on any out-of-range component and when the result
// leaves the instant bound.
func CivilToEpoch(c Civil) (int64, error) {
	const op = "calendar.CivilToEpoch"
	if err := c.Validate(); err != nil {
		return 0, err
	}

	days := DaysFromCivil(c.Year, c.Month, c.Day)
	tod := c.TimeOfDayMicros()

	// Split the day term so that the partial product stays in range for
	// negative days: (days+1)*D + (tod-D).
	base, rest := days, tod
	if days < 0 {
		base, rest = days+1, tod-MicrosPerDay
	}
	scaled, ok := overflow.Mul(base, MicrosPerDay)
	if !ok {
		return 0, value.Fail(value.CodeDateTimeOverflow, op, "%s outside representable range", c)
	}
	micros, ok := overflow.Add(scaled, rest)
	if !ok || micros < value.MinMicros {
		return 0, value.Fail(value.CodeDateTimeOverflow, op, "%s outside representable range", c)
	}
	return micros, nil
}

// floorDiv divides rounding toward negative infinity. d must be positive.
func floorDiv(n, d int64) int64 {
	q := n / d
	if n%d < 0 {
		q--
	}
	return q
}
