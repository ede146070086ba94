package reactive

// Cell is a mutable reactive value.
// Reading a Cell through a Scope makes the running computation depend on
// it; writing it marks every dependent Derived stale.
type Cell[T any] struct {
	graph *Graph
	id    NodeID

	// equal, when set, lets Set skip writes of an equal value.
	equal func(T, T) bool
}

// NewCell creates a cell in g holding initial.
func NewCell[T any](g *Graph, initial T) *Cell[T] {
	g.mu.Lock()
	defer g.unlock()

	n := g.add(&node{kind: kindCell, value: initial})
	return &Cell[T]{graph: g, id: n.id}
}

// Get returns the current value without recording a dependency.
func (c *Cell[T]) Get() T {
	c.graph.mu.Lock()
	defer c.graph.unlock()
	return as[T](c.graph.resolve("get", c.id).value)
}

// Read returns the current value and records the cell as an input of the
// computation running with s. Read(nil) is the same as Get.
func (c *Cell[T]) Read(s *Scope) T {
	if s == nil {
		return c.Get()
	}
	obs := s.track("read", c.graph, c.id)
	n := c.graph.resolve("read", c.id)
	return as[T](c.graph.read("read", n, obs))
}

// Set replaces the value and marks every dependent Derived stale before
// returning. Every write counts as a change unless WithEquals was used.
func (c *Cell[T]) Set(value T) {
	c.graph.mu.Lock()
	defer c.graph.unlock()

	n := c.graph.resolve("set", c.id)
	c.write(n, value)
}

// Update replaces the value with fn applied to the current value.
// The read and the write happen under one lock acquisition.
func (c *Cell[T]) Update(fn func(T) T) {
	c.graph.mu.Lock()
	defer c.graph.unlock()

	n := c.graph.resolve("update", c.id)
	c.write(n, fn(as[T](n.value)))
}

func (c *Cell[T]) write(n *node, value T) {
	if c.equal != nil && c.equal(as[T](n.value), value) {
		return
	}
	n.value = value

	g := c.graph
	g.metrics.incWrites(g.name)
	g.emit(EventWrite, n)
	g.invalidate(n)
}

// WithEquals configures the cell to ignore writes of a value fn reports
// equal to the current one. It returns c for chaining.
func (c *Cell[T]) WithEquals(fn func(T, T) bool) *Cell[T] {
	c.graph.mu.Lock()
	defer c.graph.unlock()
	c.equal = fn
	return c
}

// Named sets the name used in logs, events and errors. It returns c for
// chaining.
func (c *Cell[T]) Named(name string) *Cell[T] {
	c.graph.mu.Lock()
	defer c.graph.unlock()
	c.graph.resolve("name", c.id).name = name
	return c
}

// Name returns the cell name, or "" if none was set.
func (c *Cell[T]) Name() string {
	c.graph.mu.Lock()
	defer c.graph.unlock()
	return c.graph.resolve("name", c.id).name
}

// ID returns the cell's handle.
func (c *Cell[T]) ID() NodeID {
	return c.id
}

// Graph returns the graph that owns the cell.
func (c *Cell[T]) Graph() *Graph {
	return c.graph
}

func (c *Cell[T]) ref() (*Graph, NodeID) {
	return c.graph, c.id
}
