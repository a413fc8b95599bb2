package literal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/xfn/internal/datetime"
	"github.com/roach88/xfn/internal/duration"
	"github.com/roach88/xfn/internal/ieee"
	"github.com/roach88/xfn/internal/value"
)

// decimalPlaces bounds the rendering of non-terminating ratios.
const decimalPlaces = 18

// Format renders v in the form Parse reads back. Booleans and integers are
// bare; every other kind is wrapped in its constructor. nil renders as "()".
func Format(v value.Value) string {
	switch x := v.(type) {
	case nil:
		return "()"
	case value.Boolean:
		return strconv.FormatBool(bool(x))
	case value.Integer:
		return strconv.FormatInt(int64(x), 10)
	case value.Float:
		return constructor("xs:float", ieee.FormatBinary32(x.Bits()))
	case value.Double:
		return constructor("xs:double", ieee.FormatBinary64(x.Bits()))
	case value.Ratio:
		return constructor("xs:decimal", x.Decimal(decimalPlaces).String())
	case value.Instant:
		return constructor("xs:dateTime", FormatDateTime(x))
	case value.Interval:
		return constructor("xs:dayTimeDuration", FormatDuration(x))
	}
	return fmt.Sprintf("<%s>", v.Kind())
}

func constructor(name, lexical string) string {
	return name + "('" + lexical + "')"
}

// FormatDateTime renders the canonical xs:dateTime lexical form at the
// instant's advisory offset. An instant whose wall time at that offset
// would leave the instant bound is rendered in UTC without a timezone; it
// reads back with the same magnitude but no offset.
func FormatDateTime(i value.Instant) string {
	c, ok := datetime.LocalCivil(i)
	off, hasOffset := i.Offset()
	if !ok {
		c, hasOffset = datetime.Civil(i), false
	}

	var b strings.Builder
	year := c.Year
	if year < 0 {
		b.WriteByte('-')
		year = -year
	}
	fmt.Fprintf(&b, "%04d-%02d-%02dT%02d:%02d:%02d", year, c.Month, c.Day, c.Hour, c.Minute, c.Second)
	if c.Microsecond != 0 {
		b.WriteByte('.')
		b.WriteString(strings.TrimRight(fmt.Sprintf("%06d", c.Microsecond), "0"))
	}
	if hasOffset {
		b.WriteString(formatOffset(off))
	}
	return b.String()
}

func formatOffset(minutes int) string {
	if minutes == 0 {
		return "Z"
	}
	sign := '+'
	if minutes < 0 {
		sign, minutes = '-', -minutes
	}
	return fmt.Sprintf("%c%02d:%02d", sign, minutes/60, minutes%60)
}

// FormatDuration renders the canonical xs:dayTimeDuration lexical form.
// Zero renders as PT0S.
func FormatDuration(d value.Interval) string {
	if d.Micros() == 0 {
		return "PT0S"
	}

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	if days := duration.DaysOf(d); days > 0 {
		fmt.Fprintf(&b, "%dD", days)
	}

	h, m := duration.HoursOf(d), duration.MinutesOf(d)
	s, us := duration.SecondsOf(d), duration.MicrosecondsOf(d)
	if h == 0 && m == 0 && s == 0 && us == 0 {
		return b.String()
	}
	b.WriteByte('T')
	if h > 0 {
		fmt.Fprintf(&b, "%dH", h)
	}
	if m > 0 {
		fmt.Fprintf(&b, "%dM", m)
	}
	if s > 0 || us > 0 {
		b.WriteString(strconv.FormatInt(s, 10))
		if us > 0 {
			b.WriteByte('.')
			b.WriteString(strings.TrimRight(fmt.Sprintf("%06d", us), "0"))
		}
		b.WriteByte('S')
	}
	return b.String()
}
