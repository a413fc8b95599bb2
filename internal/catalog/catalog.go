// Package catalog loads the function catalog.
//
// The catalog is written in CUE (functions.cue, embedded at build time) and
// validated against the #Function schema when it is compiled. It declares
// every function the engine exposes: its family, parameter and return
// types, and whether it is implemented or deliberately unsupported.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/xfn/internal/canonical"
)

//go:embed functions.cue
var source []byte

// Status values.
const (
	StatusImplemented = "implemented"
	StatusUnsupported = "unsupported"
)

// Function describes one catalog entry.
type Function struct {
	Name    string   `json:"name"`
	Family  string   `json:"family"`
	Params  []string `json:"params"`
	Returns string   `json:"returns"`
	Status  string   `json:"status"`
	Doc     string   `json:"doc"`
}

// Arity returns the number of parameters.
func (f Function) Arity() int { return len(f.Params) }

// Implemented reports whether the function has a working implementation.
func (f Function) Implemented() bool { return f.Status != StatusUnsupported }

// Signature renders "name(p1, p2) as r".
func (f Function) Signature() string {
	return fmt.Sprintf("%s(%s) as %s", f.Name, strings.Join(f.Params, ", "), f.Returns)
}

// Type is a parsed sequence type such as "xs:integer*".
type Type struct {
	// Atomic is the item type name, e.g. "xs:integer".
	Atomic string

	// Many is true for the "*" occurrence indicator.
	Many bool

	// Optional is true for the "?" occurrence indicator.
	Optional bool
}

// ParseType splits an occurrence indicator from an atomic type name.
func ParseType(s string) Type {
	switch {
	case strings.HasSuffix(s, "*"):
		return Type{Atomic: strings.TrimSuffix(s, "*"), Many: true}
	case strings.HasSuffix(s, "?"):
		return Type{Atomic: strings.TrimSuffix(s, "?"), Optional: true}
	}
	return Type{Atomic: s}
}

// Catalog is an immutable, name-sorted set of functions.
type Catalog struct {
	funcs []Function
	index map[string]int
}

// Load compiles the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(source, "functions.cue")
}

// Parse compiles a catalog from CUE source.
func Parse(src []byte, filename string) (*Catalog, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	fnsVal := v.LookupPath(cue.ParsePath("functions"))
	if !fnsVal.Exists() {
		return nil, &CompileError{Field: "functions", Message: "functions is required", Pos: v.Pos()}
	}

	iter, err := fnsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	c := &Catalog{index: make(map[string]int)}
	for iter.Next() {
		name := iter.Selector().Unquoted()
		fv := iter.Value()
		if err := fv.Validate(cue.Concrete(true)); err != nil {
			return nil, formatCUEError(err)
		}

		var f Function
		if err := fv.Decode(&f); err != nil {
			return nil, formatCUEError(err)
		}
		f.Name = name
		if f.Params == nil {
			f.Params = []string{}
		}
		c.funcs = append(c.funcs, f)
	}

	if len(c.funcs) == 0 {
		return nil, &CompileError{Field: "functions", Message: "at least one function is required", Pos: fnsVal.Pos()}
	}

	slices.SortFunc(c.funcs, func(a, b Function) int { return strings.Compare(a.Name, b.Name) })
	for i, f := range c.funcs {
		c.index[f.Name] = i
	}
	return c, nil
}

// Lookup returns the function named name.
func (c *Catalog) Lookup(name string) (Function, bool) {
	i, ok := c.index[name]
	if !ok {
		return Function{}, false
	}
	return c.funcs[i], true
}

// Functions returns every entry sorted by name.
func (c *Catalog) Functions() []Function {
	return slices.Clone(c.funcs)
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.funcs) }

// Hash returns the content hash of the catalog. Runs recorded against
// different catalogs carry different hashes.
func (c *Catalog) Hash() (string, error) {
	entries := make([]any, len(c.funcs))
	for i, f := range c.funcs {
		params := make([]any, len(f.Params))
		for j, p := range f.Params {
			params[j] = p
		}
		entries[i] = map[string]any{
			"name":    f.Name,
			"family":  f.Family,
			"params":  params,
			"returns": f.Returns,
			"status":  f.Status,
		}
	}
	return canonical.Hash(canonical.DomainCatalog, entries)
}

// CompileError is a catalog compile failure with its source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &CompileError{Field: "cue", Message: first.Error(), Pos: positions[0]}
	}
	return err
}
