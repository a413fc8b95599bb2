package value

import (
	"errors"
	"fmt"
)

// Category groups failure codes by the kind of contract that was broken.
type Category string

const (
	// CategoryDomain covers out-of-range components and malformed values.
	CategoryDomain Category = "DOMAIN"

	// CategoryArithmetic covers division by zero and overflow.
	CategoryArithmetic Category = "ARITHMETIC"

	// CategoryUnsupported covers operations this engine does not implement.
	CategoryUnsupported Category = "UNSUPPORTED"

	// CategoryType covers operands of the wrong kind.
	CategoryType Category = "TYPE"
)

// Code is an XPath-style error code (e.g. "FOAR0001").
type Code string

const (
	// CodeDateTimeOverflow indicates an instant left the representable bound.
	CodeDateTimeOverflow Code = "FODT0001"

	// CodeDurationOverflow indicates an interval left the representable bound.
	CodeDurationOverflow Code = "FODT0002"

	// CodeInvalidTimezone indicates an offset outside -14:00..+14:00.
	CodeInvalidTimezone Code = "FODT0003"

	// CodeInvalidValue indicates an invalid constructor argument.
	CodeInvalidValue Code = "FORG0001"

	// CodeDivisionByZero indicates a zero divisor.
	CodeDivisionByZero Code = "FOAR0001"

	// CodeNumericOverflow indicates an integer or narrowing overflow.
	CodeNumericOverflow Code = "FOAR0002"

	// CodeInvalidLexical indicates an unparsable lexical form.
	CodeInvalidLexical Code = "FOCA0002"

	// CodeIntegerRange indicates a cast result too large for an integer.
	CodeIntegerRange Code = "FOCA0003"

	// CodeInvalidArgument indicates an empty sequence where a value is required.
	CodeInvalidArgument Code = "FORG0006"

	// CodeTypeMismatch indicates operands of incompatible kinds.
	CodeTypeMismatch Code = "XPTY0004"

	// CodeUnknownFunction indicates an unknown function name or arity.
	CodeUnknownFunction Code = "XPST0017"

	// CodeUnsupported indicates an operation outside this engine revision.
	CodeUnsupported Code = "FOER0000"
)

// Error is the typed failure returned by every operation in the engine.
// Operations never return a partial value alongside an Error.
type Error struct {
	// Category classifies the failure.
	Category Category

	// Code is the XPath-style error code.
	Code Code

	// Op names the failing operation (e.g. "datetime.Add").
	Op string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
// This lets callers write errors.Is(err, value.ErrDivisionByZero).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Code == e.Code
}

// Sentinels for errors.Is matching. Only the Code is compared.
var (
	ErrDateTimeOverflow = &Error{Category: CategoryArithmetic, Code: CodeDateTimeOverflow, Message: "date/time overflow"}
	ErrDurationOverflow = &Error{Category: CategoryArithmetic, Code: CodeDurationOverflow, Message: "duration overflow"}
	ErrInvalidTimezone  = &Error{Category: CategoryDomain, Code: CodeInvalidTimezone, Message: "invalid timezone"}
	ErrInvalidValue     = &Error{Category: CategoryDomain, Code: CodeInvalidValue, Message: "invalid value"}
	ErrDivisionByZero   = &Error{Category: CategoryArithmetic, Code: CodeDivisionByZero, Message: "division by zero"}
	ErrNumericOverflow  = &Error{Category: CategoryArithmetic, Code: CodeNumericOverflow, Message: "numeric overflow"}
	ErrInvalidLexical   = &Error{Category: CategoryDomain, Code: CodeInvalidLexical, Message: "invalid lexical value"}
	ErrIntegerRange     = &Error{Category: CategoryArithmetic, Code: CodeIntegerRange, Message: "value too large for integer"}
	ErrInvalidArgument  = &Error{Category: CategoryDomain, Code: CodeInvalidArgument, Message: "invalid argument"}
	ErrTypeMismatch     = &Error{Category: CategoryType, Code: CodeTypeMismatch, Message: "type mismatch"}
	ErrUnknownFunction  = &Error{Category: CategoryType, Code: CodeUnknownFunction, Message: "unknown function"}
	ErrUnsupported      = &Error{Category: CategoryUnsupported, Code: CodeUnsupported, Message: "unsupported operation"}
)

// categories maps every code to its category so constructors need only the code.
var categories = map[Code]Category{
	CodeDateTimeOverflow: CategoryArithmetic,
	CodeDurationOverflow: CategoryArithmetic,
	CodeInvalidTimezone:  CategoryDomain,
	CodeInvalidValue:     CategoryDomain,
	CodeDivisionByZero:   CategoryArithmetic,
	CodeNumericOverflow:  CategoryArithmetic,
	CodeInvalidLexical:   CategoryDomain,
	CodeIntegerRange:     CategoryArithmetic,
	CodeInvalidArgument:  CategoryDomain,
	CodeTypeMismatch:     CategoryType,
	CodeUnknownFunction:  CategoryType,
	CodeUnsupported:      CategoryUnsupported,
}

// Fail creates an *Error for code, attributed to op.
func Fail(code Code, op, format string, args ...any) *Error {
	cat, ok := categories[code]
	if !ok {
		cat = CategoryDomain
	}
	return &Error{
		Category: cat,
		Code:     code,
		Op:       op,
		Message:  fmt.Sprintf(format, args...),
	}
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsDomainError returns true for out-of-range or malformed values.
// Uses errors.As to handle wrapped errors.
func IsDomainError(err error) bool {
	return categoryOf(err) == CategoryDomain
}

// IsArithmeticError returns true for division by zero and overflow.
func IsArithmeticError(err error) bool {
	return categoryOf(err) == CategoryArithmetic
}

// IsUnsupported returns true for operations outside this engine revision.
func IsUnsupported(err error) bool {
	return categoryOf(err) == CategoryUnsupported
}

// IsTypeError returns true for operands of the wrong kind.
func IsTypeError(err error) bool {
	return categoryOf(err) == CategoryType
}

func categoryOf(err error) Category {
	var e *Error
	if errors.As(err, &e) {
		return e.Category
	}
	return ""
}
