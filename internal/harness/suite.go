package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/xfn/internal/fn"
	"github.com/roach88/xfn/internal/literal"
	"github.com/roach88/xfn/internal/value"
)

// Suite is a named list of conformance cases.
type Suite struct {
	// Name identifies the suite and its golden file.
	Name string `yaml:"name"`

	// Description says which behavior the suite pins down.
	Description string `yaml:"description"`

	Cases []Case `yaml:"cases"`
}

// Case is a single function call with its expected outcome.
type Case struct {
	Name string `yaml:"name"`

	// Call is the catalog name, e.g. "op:numeric-add".
	Call string `yaml:"call"`

	Args []Arg `yaml:"args"`

	// Expect is the expected result literal; "()" is the empty sequence.
	Expect *string `yaml:"expect,omitempty"`

	// Error is the expected error code, e.g. "FOAR0001".
	Error string `yaml:"error,omitempty"`
}

// Arg is a call argument: a literal, or a sequence with an optional
// logical length.
type Arg struct {
	Literal string
	Items   []string
	Length  *int
	isSeq   bool
}

// LiteralArg returns a literal argument.
func LiteralArg(s string) Arg { return Arg{Literal: s} }

// SeqArg returns a sequence argument whose logical length is length.
func SeqArg(length int, items ...string) Arg {
	return Arg{Items: items, Length: &length, isSeq: true}
}

// UnmarshalYAML accepts a scalar literal, a list of literals, or a mapping
// with items and length.
func (a *Arg) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*a = Arg{Literal: node.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*a = Arg{Items: items, isSeq: true}
		return nil
	case yaml.MappingNode:
		var raw struct {
			Items  []string `yaml:"items"`
			Length *int     `yaml:"length"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		*a = Arg{Items: raw.Items, Length: raw.Length, isSeq: true}
		return nil
	}
	return fmt.Errorf("line %d: argument must be a literal, a list, or {items, length}", node.Line)
}

// Operand parses the argument.
func (a Arg) Operand() (fn.Operand, error) {
	if !a.isSeq {
		return literal.ParseOperand(a.Literal)
	}
	items := make([]value.Value, 0, len(a.Items))
	for _, s := range a.Items {
		v, err := literal.Parse(s)
		if err != nil {
			return fn.Operand{}, err
		}
		if v == nil {
			return fn.Operand{}, value.Fail(value.CodeInvalidLexical, "harness.Arg", "sequence item %q is empty", s)
		}
		items = append(items, v)
	}
	length := len(items)
	if a.Length != nil {
		length = *a.Length
	}
	return fn.Seq(items, length)
}

// String renders the argument as written.
func (a Arg) String() string {
	if !a.isSeq {
		return a.Literal
	}
	s := "(" + strings.Join(a.Items, ", ") + ")"
	if a.Length != nil && *a.Length != len(a.Items) {
		s += fmt.Sprintf("[:%d]", *a.Length)
	}
	return s
}

// LoadSuite reads and validates a suite file. Unknown fields are rejected.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}
	suite, err := ParseSuite(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return suite, nil
}

// ParseSuite decodes and validates suite YAML.
func ParseSuite(data []byte) (*Suite, error) {
	var suite Suite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&suite); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := suite.Validate(); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}
	return &suite, nil
}

// FindSuites returns the .yaml and .yml files in dir whose base name
// matches the glob filter (all files when filter is empty), sorted.
func FindSuites(dir, filter string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if filter != "" {
			matched, err := filepath.Match(filter, strings.TrimSuffix(d.Name(), ext))
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// Validate checks required fields and that every case names exactly one
// expected outcome.
func (s *Suite) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		switch {
		case c.Name == "":
			return fmt.Errorf("cases[%d]: name is required", i)
		case seen[c.Name]:
			return fmt.Errorf("cases[%d]: duplicate case name %q", i, c.Name)
		case c.Call == "":
			return fmt.Errorf("cases[%d]: call is required", i)
		case c.Expect == nil && c.Error == "":
			return fmt.Errorf("cases[%d]: one of expect or error is required", i)
		case c.Expect != nil && c.Error != "":
			return fmt.Errorf("cases[%d]: expect and error are mutually exclusive", i)
		}
		seen[c.Name] = true
	}
	return nil
}
