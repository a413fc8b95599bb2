package literal

import (
	"strconv"
	"strings"

	"github.com/roach88/xfn/internal/fn"
	"github.com/roach88/xfn/internal/value"
)

// ParseOperand reads a function argument: a single literal, a sequence
// "(a, b, c)", or a partial sequence "(a, b, c)[:n]" whose logical length
// is n.
func ParseOperand(s string) (fn.Operand, error) {
	const op = "literal.ParseOperand"
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "(") {
		v, err := Parse(s)
		if err != nil {
			return fn.Operand{}, err
		}
		return fn.Scalar(v), nil
	}

	end := closingParen(s)
	if end < 0 {
		return fn.Operand{}, value.Fail(value.CodeInvalidLexical, op, "unbalanced parentheses in %q", s)
	}
	inner, rest := s[1:end], strings.TrimSpace(s[end+1:])

	var items []value.Value
	if strings.TrimSpace(inner) != "" {
		for _, part := range splitTopLevel(inner) {
			v, err := Parse(part)
			if err != nil {
				return fn.Operand{}, err
			}
			if v == nil {
				return fn.Operand{}, value.Fail(value.CodeInvalidLexical, op, "nested empty sequence in %q", s)
			}
			items = append(items, v)
		}
	}

	length := len(items)
	if rest != "" {
		if !strings.HasPrefix(rest, "[:") || !strings.HasSuffix(rest, "]") {
			return fn.Operand{}, value.Fail(value.CodeInvalidLexical, op, "unexpected %q after sequence", rest)
		}
		n, err := strconv.Atoi(strings.TrimSpace(rest[2 : len(rest)-1]))
		if err != nil {
			return fn.Operand{}, value.Fail(value.CodeInvalidLexical, op, "invalid length in %q", rest)
		}
		length = n
	}
	return fn.Seq(items, length)
}

// FormatOperand renders an operand in the form ParseOperand reads.
func FormatOperand(o fn.Operand) string {
	if !o.IsSequence() {
		return Format(o.Value())
	}
	parts := make([]string, len(o.Items()))
	for i, v := range o.Items() {
		parts[i] = Format(v)
	}
	s := "(" + strings.Join(parts, ", ") + ")"
	if o.Len() != len(parts) {
		s += "[:" + strconv.Itoa(o.Len()) + "]"
	}
	return s
}

// closingParen returns the index of the parenthesis closing s[0].
func closingParen(s string) int {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits on commas outside quotes and parentheses.
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}
