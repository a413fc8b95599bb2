package compare

import "github.com/roach88/xfn/internal/value"

// Not returns the negation of b.
func Not(b value.Boolean) value.Boolean { return !b }

// BooleanEqual reports a == b.
func BooleanEqual(a, b value.Boolean) value.Boolean { return a == b }

// BooleanLessThan reports a < b where false < true.
func BooleanLessThan(a, b value.Boolean) value.Boolean { return !a && b }

// BooleanGreaterThan reports a > b where false < true.
func BooleanGreaterThan(a, b value.Boolean) value.Boolean { return a && !b }
