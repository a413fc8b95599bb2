package value

// Kind identifies one member of the closed set of scalar kinds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBoolean
	KindInteger
	KindFloat
	KindDouble
	KindInstant
	KindInterval
	KindDecimal
)

var kindNames = [...]string{
	KindInvalid:  "invalid",
	KindBoolean:  "xs:boolean",
	KindInteger:  "xs:integer",
	KindFloat:    "xs:float",
	KindDouble:   "xs:double",
	KindInstant:  "xs:dateTime",
	KindInterval: "xs:dayTimeDuration",
	KindDecimal:  "xs:decimal",
}

// String returns the XSD type name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindInvalid]
}

// IsNumeric reports whether k takes part in numeric promotion.
func (k Kind) IsNumeric() bool {
	return k == KindInteger || k == KindFloat || k == KindDouble
}

// Rank returns the position of k in the promotion lattice
// integer(1) < float(2) < double(3). Non-numeric kinds rank 0.
func (k Kind) Rank() int {
	switch k {
	case KindInteger:
		return 1
	case KindFloat:
		return 2
	case KindDouble:
		return 3
	default:
		return 0
	}
}

// Value is a sealed interface over the engine's scalar kinds.
// Only Boolean, Integer, Float, Double, Instant, Interval and Ratio implement it.
type Value interface {
	Kind() Kind
	xsValue() // Sealed
}

// Boolean is an xs:boolean.
type Boolean bool

func (Boolean) Kind() Kind { return KindBoolean }
func (Boolean) xsValue()   {}

// Integer is an xs:integer held in the engine's wide signed representation.
type Integer int64

func (Integer) Kind() Kind { return KindInteger }
func (Integer) xsValue()   {}

// Float is an xs:float as an opaque IEEE-754 binary32 bit pattern.
// Arithmetic on it is delegated; this package never decodes the bits.
type Float uint32

func (Float) Kind() Kind { return KindFloat }
func (Float) xsValue()   {}

// Bits returns the raw bit pattern.
func (f Float) Bits() uint32 { return uint32(f) }

// Double is an xs:double as an opaque IEEE-754 binary64 bit pattern.
type Double uint64

func (Double) Kind() Kind { return KindDouble }
func (Double) xsValue()   {}

// Bits returns the raw bit pattern.
func (d Double) Bits() uint64 { return uint64(d) }

// NewBoolean creates a Boolean value.
func NewBoolean(b bool) Boolean {
	return Boolean(b)
}

// NewInteger creates an Integer value.
func NewInteger(n int64) Integer {
	return Integer(n)
}

// FloatFromBits wraps a binary32 bit pattern.
func FloatFromBits(bits uint32) Float {
	return Float(bits)
}

// DoubleFromBits wraps a binary64 bit pattern.
func DoubleFromBits(bits uint64) Double {
	return Double(bits)
}
