package sheet

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gander-tools/playground/pkg/arith"
	"github.com/gander-tools/playground/pkg/reactive"
)

// Kinds reported by Sheet.Kind.
const (
	KindCell    = "cell"
	KindFormula = "formula"
)

// Sheet is a document wired into a reactive graph.
type Sheet struct {
	name     string
	graph    *reactive.Graph
	cells    map[string]*reactive.Cell[float64]
	formulas map[string]*reactive.Derived[float64]

	// names lists cells then formulas in declaration order.
	names []string
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

type buildConfig struct {
	evalTimeout time.Duration
}

// WithEvalTimeout bounds each evaluation of an expr formula.
// Default: DefaultEvalTimeout. A value <= 0 disables the limit.
func WithEvalTimeout(d time.Duration) BuildOption {
	return func(c *buildConfig) {
		c.evalTimeout = d
	}
}

// Build validates doc and creates its cells and formulas in g.
// Formulas are created in dependency order; a cyclic declaration fails
// with ErrCycle before any formula is created.
func Build(g *reactive.Graph, doc *Document, opts ...BuildOption) (*Sheet, error) {
	cfg := buildConfig{evalTimeout: DefaultEvalTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := doc.validate(); err != nil {
		return nil, err
	}
	order, err := formulaOrder(doc.Formulas)
	if err != nil {
		return nil, err
	}

	s := &Sheet{
		name:     doc.Name,
		graph:    g,
		cells:    make(map[string]*reactive.Cell[float64], len(doc.Cells)),
		formulas: make(map[string]*reactive.Derived[float64], len(doc.Formulas)),
	}

	// Compile expressions up front so a bad one leaves g untouched.
	exprs := make(map[string]func([]float64) float64)
	for _, f := range doc.Formulas {
		if f.Op != OpExpr {
			continue
		}
		fn, err := compileExpr(f, cfg.evalTimeout)
		if err != nil {
			return nil, err
		}
		exprs[f.Name] = fn
	}

	for _, c := range doc.Cells {
		s.cells[c.Name] = reactive.NewCell(g, c.Value).Named(c.Name)
		s.names = append(s.names, c.Name)
	}

	for _, f := range order {
		srcs := make([]reactive.Source[float64], len(f.Of))
		for i, ref := range f.Of {
			srcs[i] = s.source(ref)
		}

		var d *reactive.Derived[float64]
		switch f.Op {
		case OpSum:
			d = arith.SumRef(g, srcs...)
		case OpSub:
			d = arith.SubtractRef(srcs[0], srcs[1])
		case OpExpr:
			d = reactive.Combine(g, srcs, exprs[f.Name])
		}
		s.formulas[f.Name] = d.Named(f.Name)
	}
	for _, f := range doc.Formulas {
		s.names = append(s.names, f.Name)
	}

	return s, nil
}

// source returns the node declared as name. Build calls it only for names
// that validate accepted and that are already created.
func (s *Sheet) source(name string) reactive.Source[float64] {
	if c, ok := s.cells[name]; ok {
		return c
	}
	return s.formulas[name]
}

// formulaOrder sorts formulas so that each comes after the formulas it
// reads, keeping declaration order among independent ones.
func formulaOrder(formulas []FormulaDef) ([]FormulaDef, error) {
	index := make(map[string]int, len(formulas))
	for i, f := range formulas {
		index[f.Name] = i
	}

	pending := make([]int, len(formulas))
	dependents := make([][]int, len(formulas))
	for i, f := range formulas {
		for _, ref := range f.Of {
			if j, ok := index[ref]; ok {
				pending[i]++
				dependents[j] = append(dependents[j], i)
			}
		}
	}

	var queue []int
	for i := range formulas {
		if pending[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]FormulaDef, 0, len(formulas))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, formulas[i])
		for _, j := range dependents[i] {
			pending[j]--
			if pending[j] == 0 {
				queue = append(queue, j)
			}
		}
	}

	if len(order) < len(formulas) {
		return nil, fmt.Errorf("%w: %s", ErrCycle, strings.Join(cyclePath(formulas, index, pending), " -> "))
	}
	return order, nil
}

// cyclePath follows unresolved references from the first unresolved
// formula until a name repeats, and returns the loop.
func cyclePath(formulas []FormulaDef, index map[string]int, pending []int) []string {
	start := -1
	for i := range formulas {
		if pending[i] > 0 {
			start = i
			break
		}
	}

	pos := make(map[int]int)
	var path []string
	for i := start; ; {
		if at, ok := pos[i]; ok {
			return append(path[at:], formulas[i].Name)
		}
		pos[i] = len(path)
		path = append(path, formulas[i].Name)

		next := -1
		for _, ref := range formulas[i].Of {
			if j, ok := index[ref]; ok && pending[j] > 0 {
				next = j
				break
			}
		}
		if next < 0 {
			return path
		}
		i = next
	}
}

// Name returns the sheet name.
func (s *Sheet) Name() string {
	return s.name
}

// Graph returns the graph holding the sheet's nodes.
func (s *Sheet) Graph() *reactive.Graph {
	return s.graph
}

// Names returns cell names then formula names, in declaration order.
func (s *Sheet) Names() []string {
	return append([]string(nil), s.names...)
}

// Kind reports whether name is a cell or a formula.
func (s *Sheet) Kind(name string) (string, bool) {
	if _, ok := s.cells[name]; ok {
		return KindCell, true
	}
	if _, ok := s.formulas[name]; ok {
		return KindFormula, true
	}
	return "", false
}

// Get returns the current value of a cell or formula.
func (s *Sheet) Get(name string) (float64, error) {
	if c, ok := s.cells[name]; ok {
		return c.Get(), nil
	}
	if d, ok := s.formulas[name]; ok {
		v, err := d.TryGet()
		if err != nil {
			return 0, err
		}
		if !finite(v) {
			return 0, fmt.Errorf("%w: %s: result %v is not finite", ErrBadFormula, name, v)
		}
		return v, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownName, name)
}

// Set writes a cell. NaN and infinities are rejected with ErrBadValue.
func (s *Sheet) Set(name string, value float64) error {
	if c, ok := s.cells[name]; ok {
		if !finite(value) {
			return fmt.Errorf("%w: %s = %v", ErrBadValue, name, value)
		}
		c.Set(value)
		return nil
	}
	if _, ok := s.formulas[name]; ok {
		return fmt.Errorf("%w: %q", ErrReadOnly, name)
	}
	return fmt.Errorf("%w: %q", ErrUnknownName, name)
}

// Snapshot returns the current value of every name.
func (s *Sheet) Snapshot() (map[string]float64, error) {
	values := make(map[string]float64, len(s.names))
	for _, name := range s.names {
		v, err := s.Get(name)
		if err != nil {
			return nil, err
		}
		values[name] = v
	}
	return values, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
