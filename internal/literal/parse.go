// Package literal converts between XPath lexical forms and engine values.
//
// It is the host encoding boundary: the pure layers never see strings.
// Accepted forms are boolean literals, integer literals, bare decimal or
// exponent literals (read as xs:double) and constructor calls such as
// xs:dateTime('2024-02-29T12:00:00Z'). Years follow XSD 1.1, so 0000 is
// valid and denotes 1 BCE.
package literal

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/roach88/xfn/internal/calendar"
	"github.com/roach88/xfn/internal/datetime"
	"github.com/roach88/xfn/internal/duration"
	"github.com/roach88/xfn/internal/ieee"
	"github.com/roach88/xfn/internal/value"
)

var (
	constructorPattern = regexp.MustCompile(`^(xs:[A-Za-z]+)\(\s*(?:'([^']*)'|"([^"]*)")\s*\)$`)
	integerPattern     = regexp.MustCompile(`^[+-]?[0-9]+$`)
	decimalPattern     = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)$`)
	dateTimePattern    = regexp.MustCompile(`^(-?(?:[1-9][0-9]{3,}|0[0-9]{3}))-([0-9]{2})-([0-9]{2})T([0-9]{2}):([0-9]{2}):([0-9]{2})(?:\.([0-9]+))?(Z|[+-][0-9]{2}:[0-9]{2})?$`)
	durationPattern    = regexp.MustCompile(`^(-)?P(?:([0-9]+)D)?(?:T(?:([0-9]+)H)?(?:([0-9]+)M)?(?:([0-9]+)(?:\.([0-9]+))?S)?)?$`)
)

// Parse reads one literal. "()" parses to nil, the empty sequence.
func Parse(s string) (value.Value, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "()":
		return nil, nil
	case "true", "true()":
		return value.Boolean(true), nil
	case "false", "false()":
		return value.Boolean(false), nil
	}

	if m := constructorPattern.FindStringSubmatch(s); m != nil {
		lexical := m[2]
		if lexical == "" {
			lexical = m[3]
		}
		return construct(m[1], strings.TrimSpace(lexical))
	}
	if integerPattern.MatchString(s) {
		return parseInteger(s)
	}
	if decimalPattern.MatchString(s) || strings.ContainsAny(s, "eE") {
		if bits, ok := ieee.ParseBinary64(s); ok && !isSpecial(s) {
			return value.DoubleFromBits(bits), nil
		}
	}
	return nil, value.Fail(value.CodeInvalidLexical, "literal.Parse", "cannot parse %q", s)
}

// isSpecial reports whether s names INF or NaN, which are only accepted
// inside a constructor.
func isSpecial(s string) bool {
	return strings.Contains(s, "INF") || strings.Contains(s, "NaN")
}

func construct(typeName, lexical string) (value.Value, error) {
	const op = "literal.Parse"
	switch typeName {
	case "xs:boolean":
		switch lexical {
		case "true", "1":
			return value.Boolean(true), nil
		case "false", "0":
			return value.Boolean(false), nil
		}
	case "xs:integer":
		if integerPattern.MatchString(lexical) {
			return parseInteger(lexical)
		}
	case "xs:float":
		if bits, ok := ieee.ParseBinary32(lexical); ok {
			return value.FloatFromBits(bits), nil
		}
	case "xs:double":
		if bits, ok := ieee.ParseBinary64(lexical); ok {
			return value.DoubleFromBits(bits), nil
		}
	case "xs:decimal":
		if decimalPattern.MatchString(lexical) {
			d, err := decimal.NewFromString(lexical)
			if err == nil {
				return asValue(value.RatioFromDecimal(d))
			}
		}
	case "xs:dateTime":
		return parseDateTime(lexical)
	case "xs:dayTimeDuration":
		return parseDuration(lexical)
	default:
		return nil, value.Fail(value.CodeUnknownFunction, op, "unknown constructor %s", typeName)
	}
	return nil, value.Fail(value.CodeInvalidLexical, op, "invalid %s lexical form %q", typeName, lexical)
}

func asValue[T value.Value](v T, err error) (value.Value, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func parseInteger(s string) (value.Value, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, value.Fail(value.CodeIntegerRange, "literal.Parse", "integer %s out of range", s)
	}
	return value.Integer(n), nil
}

// parseFraction converts up to six fractional digits to microseconds.
func parseFraction(op, digits string) (int64, error) {
	if digits == "" {
		return 0, nil
	}
	if len(digits) > 6 {
		if strings.Trim(digits[6:], "0") != "" {
			return 0, value.Fail(value.CodeInvalidLexical, op, "fraction .%s is finer than a microsecond", digits)
		}
		digits = digits[:6]
	}
	n, _ := strconv.ParseInt(digits+strings.Repeat("0", 6-len(digits)), 10, 64)
	return n, nil
}

func parseDateTime(s string) (value.Value, error) {
	const op = "literal.parseDateTime"
	m := dateTimePattern.FindStringSubmatch(s)
	if m == nil {
		return nil, value.Fail(value.CodeInvalidLexical, op, "invalid xs:dateTime %q", s)
	}

	if m[1] == "-0000" {
		return nil, value.Fail(value.CodeInvalidLexical, op, "invalid xs:dateTime %q: negative year zero", s)
	}
	year, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil, value.Fail(value.CodeDateTimeOverflow, op, "year %s out of range", m[1])
	}
	atoi := func(s string) int { n, _ := strconv.Atoi(s); return n }
	c := calendar.Civil{
		Year:   year,
		Month:  atoi(m[2]),
		Day:    atoi(m[3]),
		Hour:   atoi(m[4]),
		Minute: atoi(m[5]),
		Second: atoi(m[6]),
	}
	micros, err := parseFraction(op, m[7])
	if err != nil {
		return nil, err
	}
	c.Microsecond = int(micros)

	// 24:00:00 is the first instant of the next day.
	endOfDay := c.Hour == 24 && c.Minute == 0 && c.Second == 0 && c.Microsecond == 0
	if endOfDay {
		c.Hour = 0
	}

	var i value.Instant
	if tz := m[8]; tz == "" {
		i, err = datetime.FromCivil(c)
	} else {
		offset, terr := parseTimezone(op, tz)
		if terr != nil {
			return nil, terr
		}
		i, err = datetime.FromCivilWithOffset(c, offset)
	}
	if err != nil {
		return nil, err
	}

	if endOfDay {
		day, _ := value.NewInterval(calendar.MicrosPerDay)
		return asValue(datetime.Add(i, day))
	}
	return i, nil
}

func parseTimezone(op, tz string) (int, error) {
	if tz == "Z" {
		return 0, nil
	}
	hh, _ := strconv.Atoi(tz[1:3])
	mm, _ := strconv.Atoi(tz[4:6])
	if hh > 14 || mm > 59 || (hh == 14 && mm != 0) {
		return 0, value.Fail(value.CodeInvalidTimezone, op, "timezone %s outside -14:00..+14:00", tz)
	}
	minutes := hh*60 + mm
	if tz[0] == '-' {
		minutes = -minutes
	}
	return minutes, nil
}

func parseDuration(s string) (value.Value, error) {
	const op = "literal.parseDuration"
	m := durationPattern.FindStringSubmatch(s)
	if m == nil || s == "P" || s == "-P" || strings.HasSuffix(s, "T") {
		return nil, value.Fail(value.CodeInvalidLexical, op, "invalid xs:dayTimeDuration %q", s)
	}
	if m[2] == "" && m[3] == "" && m[4] == "" && m[5] == "" {
		return nil, value.Fail(value.CodeInvalidLexical, op, "xs:dayTimeDuration %q has no components", s)
	}

	parts := make([]int64, 4)
	for i, digits := range m[2:6] {
		if digits == "" {
			continue
		}
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return nil, value.Fail(value.CodeDurationOverflow, op, "component %s out of range", digits)
		}
		parts[i] = n
	}
	micros, err := parseFraction(op, m[6])
	if err != nil {
		return nil, err
	}
	return asValue(duration.FromComponents(parts[0], parts[1], parts[2], parts[3], micros, m[1] == "-"))
}
