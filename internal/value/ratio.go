package value

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/roach88/xfn/internal/overflow"
)

// Ratio is an exact rational xs:decimal, produced by dividing one interval
// by another. It is always reduced with a positive denominator.
type Ratio struct {
	num int64
	den int64
}

func (Ratio) Kind() Kind { return KindDecimal }
func (Ratio) xsValue()   {}

// NewRatio creates num/den in lowest terms.
func NewRatio(num, den int64) (Ratio, error) {
	if den == 0 {
		return Ratio{}, Fail(CodeDivisionByZero, "value.NewRatio", "zero denominator")
	}
	if den < 0 {
		n, okN := overflow.Neg(num)
		d, okD := overflow.Neg(den)
		if !okN || !okD {
			return Ratio{}, Fail(CodeNumericOverflow, "value.NewRatio", "cannot normalise sign of %d/%d", num, den)
		}
		num, den = n, d
	}
	g := gcd(num, den)
	return Ratio{num: num / g, den: den / g}, nil
}

// RatioFromInteger creates n/1.
func RatioFromInteger(n int64) Ratio {
	return Ratio{num: n, den: 1}
}

// Num returns the numerator.
func (r Ratio) Num() int64 {
	return r.num
}

// Den returns the denominator (always >= 1 for a constructed Ratio).
func (r Ratio) Den() int64 {
	if r.den == 0 {
		return 1
	}
	return r.den
}

// Decimal renders the ratio as a decimal rounded to places fractional digits.
func (r Ratio) Decimal(places int32) decimal.Decimal {
	return decimal.NewFromInt(r.num).DivRound(decimal.NewFromInt(r.Den()), places)
}

// Cmp compares two ratios exactly: -1, 0 or +1.
func (r Ratio) Cmp(o Ratio) int {
	left := decimal.NewFromInt(r.num).Mul(decimal.NewFromInt(o.Den()))
	right := decimal.NewFromInt(o.num).Mul(decimal.NewFromInt(r.Den()))
	return left.Cmp(right)
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

// RatioFromDecimal converts a decimal to an exact ratio. It fails with
// FOAR0002 when the reduced numerator or denominator exceeds int64.
func RatioFromDecimal(d decimal.Decimal) (Ratio, error) {
	num := new(big.Int).Set(d.Coefficient())
	den := big.NewInt(1)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(absInt32(d.Exponent()))), nil)
	if d.Exponent() >= 0 {
		num.Mul(num, scale)
	} else {
		den = scale
	}
	if g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), den); g.Sign() > 0 {
		num.Quo(num, g)
		den.Quo(den, g)
	}
	if !num.IsInt64() || !den.IsInt64() {
		return Ratio{}, Fail(CodeNumericOverflow, "value.RatioFromDecimal", "%s exceeds the ratio range", d)
	}
	return NewRatio(num.Int64(), den.Int64())
}

func absInt32(n int32) int32 {
	if n < 0 {
		return -n
	}
	return n
}
