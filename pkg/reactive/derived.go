package reactive

// Source is a node that can feed a Derived: a *Cell[T] or a *Derived[T].
type Source[T any] interface {
	// Get returns the current value without recording a dependency.
	Get() T

	// Read returns the current value and records the node as an input of
	// the computation running with s.
	Read(s *Scope) T

	// ID returns the node's handle.
	ID() NodeID

	// Graph returns the graph that owns the node.
	Graph() *Graph

	ref() (*Graph, NodeID)
}

var (
	_ Source[int] = (*Cell[int])(nil)
	_ Source[int] = (*Derived[int])(nil)
)

// Derived is a read-only value computed from other nodes and cached until
// one of them changes. It starts stale and computes on first read.
type Derived[T any] struct {
	graph *Graph
	id    NodeID
}

// Compute creates a Derived whose inputs are whatever fn reads through
// its Scope. Inputs are recorded again on every run, so a branch that
// stops reading a node stops depending on it.
//
// fn must be a pure function of the values it reads.
func Compute[T any](g *Graph, fn func(s *Scope) T) *Derived[T] {
	g.mu.Lock()
	defer g.unlock()
	return newDerived[T](g, nil, func(s *Scope) any { return fn(s) })
}

// Combine creates a Derived applying fn to the values of sources, read in
// order on every run.
func Combine[S, T any](g *Graph, sources []Source[S], fn func([]S) T) *Derived[T] {
	srcs := append([]Source[S](nil), sources...)

	g.mu.Lock()
	defer g.unlock()

	declared := make([]*node, len(srcs))
	for i, src := range srcs {
		declared[i] = g.declare(src.ref())
	}

	return newDerived[T](g, declared, func(s *Scope) any {
		vals := make([]S, len(srcs))
		for i, src := range srcs {
			vals[i] = src.Read(s)
		}
		return fn(vals)
	})
}

// Combine2 creates a Derived applying fn to the values of a and b.
// Both must belong to the same graph.
func Combine2[A, B, T any](a Source[A], b Source[B], fn func(A, B) T) *Derived[T] {
	g := a.Graph()

	g.mu.Lock()
	defer g.unlock()

	declared := []*node{g.declare(a.ref()), g.declare(b.ref())}
	return newDerived[T](g, declared, func(s *Scope) any {
		return fn(a.Read(s), b.Read(s))
	})
}

// Map creates a Derived applying fn to the value of a.
func Map[A, T any](a Source[A], fn func(A) T) *Derived[T] {
	g := a.Graph()

	g.mu.Lock()
	defer g.unlock()

	declared := []*node{g.declare(a.ref())}
	return newDerived[T](g, declared, func(s *Scope) any {
		return fn(a.Read(s))
	})
}

// declare resolves a construction-time input, rejecting nodes from other
// graphs and disposed nodes.
func (g *Graph) declare(owner *Graph, id NodeID) *node {
	if owner != g {
		panic(&GraphError{Op: "combine", Node: id, Err: ErrForeignNode})
	}
	n, ok := g.nodes.lookup(id)
	if !ok {
		panic(&GraphError{Op: "combine", Node: id, Err: ErrDisposed})
	}
	return n
}

func newDerived[T any](g *Graph, declared []*node, compute func(*Scope) any) *Derived[T] {
	n := g.add(&node{
		kind:     kindDerived,
		stale:    true,
		compute:  compute,
		declared: declared,
	})
	return &Derived[T]{graph: g, id: n.id}
}

// Get returns the value, recomputing it and any stale inputs first.
// It panics with a *GraphError on a cyclic read or a disposed node, and
// propagates panics raised by the computation.
func (d *Derived[T]) Get() T {
	d.graph.mu.Lock()
	defer d.graph.unlock()

	n := d.graph.resolve("get", d.id)
	return as[T](d.graph.read("get", n, nil))
}

// TryGet is like Get but reports failures as errors.
func (d *Derived[T]) TryGet() (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoverError(r)
		}
	}()
	return d.Get(), nil
}

// Read returns the value and records d as an input of the computation
// running with s. Read(nil) is the same as Get.
func (d *Derived[T]) Read(s *Scope) T {
	if s == nil {
		return d.Get()
	}
	obs := s.track("read", d.graph, d.id)
	n := d.graph.resolve("read", d.id)
	return as[T](d.graph.read("read", n, obs))
}

// Stale reports whether the next read will recompute.
func (d *Derived[T]) Stale() bool {
	d.graph.mu.Lock()
	defer d.graph.unlock()
	return d.graph.resolve("stale", d.id).stale
}

// Dispose removes d from the graph. Its inputs forget it, its observers
// become stale, and its handle stops resolving. Reading an observer that
// still reads d then fails with ErrDisposed. Dispose is idempotent.
// Like Get and Set, it must not be called from inside a computation.
func (d *Derived[T]) Dispose() {
	g := d.graph
	g.mu.Lock()
	defer g.unlock()

	n, ok := g.nodes.lookup(d.id)
	if !ok {
		return
	}
	unlinkSources(n)
	g.invalidate(n)
	for _, obs := range n.observers {
		obs.removeSource(n)
	}
	n.observers = nil
	n.disposed = true
	n.value = nil

	g.emit(EventDispose, n)
	g.nodes.release(n.id)
	g.metrics.setNodes(g.name, g.nodes.live)
	g.logger.Debug("disposed", "node", label(n.name, n.id))
}

// Named sets the name used in logs, events and errors. It returns d for
// chaining.
func (d *Derived[T]) Named(name string) *Derived[T] {
	d.graph.mu.Lock()
	defer d.graph.unlock()
	d.graph.resolve("name", d.id).name = name
	return d
}

// Name returns the node name, or "" if none was set.
func (d *Derived[T]) Name() string {
	d.graph.mu.Lock()
	defer d.graph.unlock()
	return d.graph.resolve("name", d.id).name
}

// ID returns the node's handle.
func (d *Derived[T]) ID() NodeID {
	return d.id
}

// Graph returns the graph that owns the node.
func (d *Derived[T]) Graph() *Graph {
	return d.graph
}

func (d *Derived[T]) ref() (*Graph, NodeID) {
	return d.graph, d.id
}
