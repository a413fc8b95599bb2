// Package fn binds catalog entries to their implementations.
//
// A Registry is built once from a catalog and a numeric engine. New fails
// unless every implemented catalog entry has a binding and every binding
// has a catalog entry, so the catalog and the code cannot drift apart.
// Apply checks arity and operand kinds against the catalog signature
// before calling the pure implementation.
package fn

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/xfn/internal/catalog"
	"github.com/roach88/xfn/internal/compare"
	"github.com/roach88/xfn/internal/numeric"
	"github.com/roach88/xfn/internal/value"
)

// Impl is a function implementation. Operands have already been checked
// against the catalog signature. A nil result is the empty sequence.
type Impl func(args []Operand) (value.Value, error)

// Registry maps function names to implementations.
type Registry struct {
	cat   *catalog.Catalog
	num   *numeric.Engine
	cmp   *compare.Comparator
	impls map[string]Impl
}

// New creates a Registry over cat using num for numeric operators.
func New(cat *catalog.Catalog, num *numeric.Engine) (*Registry, error) {
	r := &Registry{
		cat: cat,
		num: num,
		cmp: compare.New(num),
	}
	r.impls = r.bindings()

	var missing, unknown []string
	for _, f := range cat.Functions() {
		if _, ok := r.impls[f.Name]; !ok && f.Implemented() {
			missing = append(missing, f.Name)
		}
	}
	for name := range r.impls {
		if _, ok := cat.Lookup(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(missing) > 0 || len(unknown) > 0 {
		sort.Strings(missing)
		sort.Strings(unknown)
		return nil, fmt.Errorf("registry does not match catalog: missing [%s], not in catalog [%s]",
			strings.Join(missing, ", "), strings.Join(unknown, ", "))
	}
	return r, nil
}

// Catalog returns the catalog the registry was built from.
func (r *Registry) Catalog() *catalog.Catalog { return r.cat }

// Apply calls the function name with args.
func (r *Registry) Apply(name string, args ...Operand) (value.Value, error) {
	f, ok := r.cat.Lookup(name)
	if !ok {
		return nil, value.Fail(value.CodeUnknownFunction, name, "unknown function")
	}
	if len(args) != f.Arity() {
		return nil, value.Fail(value.CodeUnknownFunction, name, "expects %d arguments, got %d", f.Arity(), len(args))
	}
	if !f.Implemented() {
		return nil, value.Fail(value.CodeUnsupported, name, "%s", f.Doc)
	}
	for i, p := range f.Params {
		if err := checkOperand(name, i, catalog.ParseType(p), args[i]); err != nil {
			return nil, err
		}
	}
	return r.impls[name](args)
}

func checkOperand(name string, pos int, t catalog.Type, arg Operand) error {
	if !t.Many {
		v := arg.Value()
		if v == nil {
			return value.Fail(value.CodeTypeMismatch, name, "argument %d: expected %s, got a sequence", pos+1, t.Atomic)
		}
		if !matches(t.Atomic, v) {
			return value.Fail(value.CodeTypeMismatch, name, "argument %d: expected %s, got %s", pos+1, t.Atomic, v.Kind())
		}
		return nil
	}
	for i, v := range arg.Items()[:arg.Len()] {
		if !matches(t.Atomic, v) {
			return value.Fail(value.CodeTypeMismatch, name, "argument %d item %d: expected %s, got %s", pos+1, i, t.Atomic, v.Kind())
		}
	}
	return nil
}

func matches(atomic string, v value.Value) bool {
	switch atomic {
	case "xs:anyAtomicType":
		return true
	case "xs:numeric":
		return v.Kind().IsNumeric()
	default:
		return v.Kind().String() == atomic
	}
}
