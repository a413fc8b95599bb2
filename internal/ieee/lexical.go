package ieee

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// xsFloatPattern is the xs:float / xs:double lexical space minus the
// special values, which are matched literally.
var xsFloatPattern = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

// ParseBinary32 parses an xs:float lexical form (INF, -INF, NaN, decimal or
// exponent notation).
func ParseBinary32(s string) (uint32, bool) {
	f, ok := parse(s, 32)
	if !ok {
		return 0, false
	}
	return b32(float32(f)), true
}

// ParseBinary64 parses an xs:double lexical form.
func ParseBinary64(s string) (uint64, bool) {
	f, ok := parse(s, 64)
	if !ok {
		return 0, false
	}
	return b64(f), true
}

func parse(s string, bitSize int) (float64, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "INF", "+INF":
		return math.Inf(1), true
	case "-INF":
		return math.Inf(-1), true
	case "NaN":
		return math.NaN(), true
	}
	if !xsFloatPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, bitSize)
	if err != nil {
		// Out-of-range literals round to infinity, as XSD requires.
		if errors.Is(err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}

// FormatBinary32 renders the canonical xs:float string.
func FormatBinary32(b uint32) string { return format(float64(f32(b)), 32) }

// FormatBinary64 renders the canonical xs:double string.
func FormatBinary64(b uint64) string { return format(f64(b), 64) }

// format follows the fn:string casting rules: plain decimal notation for
// magnitudes in [1e-6, 1e6), otherwise mantissa E exponent with at least one
// fractional digit.
func format(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case f == 0:
		if math.Signbit(f) {
			return "-0"
		}
		return "0"
	}

	if a := math.Abs(f); a >= 1e-6 && a < 1e6 {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}

	s := strconv.FormatFloat(f, 'E', -1, bitSize)
	mant, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	n, _ := strconv.Atoi(exp)
	return mant + "E" + strconv.Itoa(n)
}
