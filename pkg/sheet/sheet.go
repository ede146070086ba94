package sheet

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v2"
)

var (
	// ErrCycle is returned by Build for formulas that depend on themselves.
	ErrCycle = errors.New("sheet: cyclic dependency")

	// ErrUnknownName is returned for references to undeclared names.
	ErrUnknownName = errors.New("sheet: unknown name")

	// ErrDuplicateName is returned when a name is declared twice.
	ErrDuplicateName = errors.New("sheet: duplicate name")

	// ErrReadOnly is returned when writing to a formula.
	ErrReadOnly = errors.New("sheet: formula is read-only")

	// ErrBadValue is returned when a cell is given NaN or an infinity.
	ErrBadValue = errors.New("sheet: value must be finite")

	// ErrBadFormula is returned for malformed formulas and for expressions
	// that fail or do not yield a number.
	ErrBadFormula = errors.New("sheet: bad formula")
)

// Formula ops.
const (
	OpSum  = "sum"
	OpSub  = "sub"
	OpExpr = "expr"
)

// identPattern matches names usable inside expressions.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Document is the YAML form of a sheet.
type Document struct {
	// Name names the sheet and its graph.
	Name string `yaml:"name"`

	// Cells are the writable inputs.
	Cells []CellDef `yaml:"cells"`

	// Formulas are the derived values.
	Formulas []FormulaDef `yaml:"formulas"`
}

// CellDef declares an input cell.
type CellDef struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
}

// FormulaDef declares a derived value.
type FormulaDef struct {
	Name string   `yaml:"name"`
	Op   string   `yaml:"op"`
	Of   []string `yaml:"of"`

	// Expr is the expression source for OpExpr.
	Expr string `yaml:"expr,omitempty"`
}

// Parse decodes a YAML document. Unknown fields are rejected.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("sheet: parse: %w", err)
	}
	if doc.Name == "" {
		doc.Name = "sheet"
	}
	return &doc, nil
}

// LoadFile reads and decodes the document at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Marshal encodes doc as YAML.
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// validate checks names, references and op arity. It does not look for
// cycles.
func (d *Document) validate() error {
	seen := make(map[string]bool, len(d.Cells)+len(d.Formulas))

	declare := func(name string) error {
		if !identPattern.MatchString(name) {
			return fmt.Errorf("%w: %q is not a valid name", ErrBadFormula, name)
		}
		if seen[name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		seen[name] = true
		return nil
	}

	for _, c := range d.Cells {
		if err := declare(c.Name); err != nil {
			return err
		}
	}
	for _, f := range d.Formulas {
		if err := declare(f.Name); err != nil {
			return err
		}
	}

	for _, f := range d.Formulas {
		switch f.Op {
		case OpSum:
			if len(f.Of) == 0 {
				return fmt.Errorf("%w: %s: sum needs at least one input", ErrBadFormula, f.Name)
			}
		case OpSub:
			if len(f.Of) != 2 {
				return fmt.Errorf("%w: %s: sub needs exactly two inputs, got %d", ErrBadFormula, f.Name, len(f.Of))
			}
		case OpExpr:
			if f.Expr == "" {
				return fmt.Errorf("%w: %s: expr is empty", ErrBadFormula, f.Name)
			}
		default:
			return fmt.Errorf("%w: %s: unknown op %q", ErrBadFormula, f.Name, f.Op)
		}
		for _, ref := range f.Of {
			if !seen[ref] {
				return fmt.Errorf("%w: %s refers to %q", ErrUnknownName, f.Name, ref)
			}
		}
	}
	return nil
}
