package reactive

import (
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTracerName is the tracer used when no tracer option is given.
const DefaultTracerName = "github.com/gander-tools/playground/pkg/reactive"

// Graph owns a set of reactive nodes and the edges between them.
// All nodes combined into one Derived must belong to the same Graph.
type Graph struct {
	mu sync.Mutex

	name  string
	nodes arena

	// active is the stack of nodes whose computations are running,
	// innermost last.
	active []*node

	// scratch is reused by the invalidation worklist.
	scratch []*node

	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	watchers  []watcher
	nextWatch uint64

	// pending holds events raised under the lock, delivered by unlock.
	pending []Event
}

// Option configures a Graph.
type Option func(*Graph)

// WithName sets the graph name used in logs and metric labels.
func WithName(name string) Option {
	return func(g *Graph) {
		g.name = name
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithMetrics records graph activity into m.
func WithMetrics(m *Metrics) Option {
	return func(g *Graph) {
		g.metrics = m
	}
}

// WithTracer sets the tracer used for recomputation spans.
// Default: the global provider's tracer named DefaultTracerName.
func WithTracer(tracer trace.Tracer) Option {
	return func(g *Graph) {
		if tracer != nil {
			g.tracer = tracer
		}
	}
}

// NewGraph creates an empty graph.
func NewGraph(opts ...Option) *Graph {
	g := &Graph{
		name:   "default",
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.tracer == nil {
		g.tracer = otel.Tracer(DefaultTracerName)
	}
	g.logger = g.logger.With("graph", g.name)
	return g
}

// Name returns the graph name.
func (g *Graph) Name() string {
	return g.name
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	g.mu.Lock()
	defer g.unlock()
	return g.nodes.live
}

// unlock releases the graph mutex, then delivers the events raised while
// it was held.
func (g *Graph) unlock() {
	events := g.pending
	g.pending = nil
	var fns []func(Event)
	if len(events) > 0 {
		fns = make([]func(Event), len(g.watchers))
		for i, w := range g.watchers {
			fns[i] = w.fn
		}
	}
	g.mu.Unlock()

	for _, ev := range events {
		for _, fn := range fns {
			fn(ev)
		}
	}
}

// add registers a new node and returns it with its handle assigned.
func (g *Graph) add(n *node) *node {
	n.graph = g
	g.nodes.alloc(n)
	g.metrics.setNodes(g.name, g.nodes.live)
	return n
}

// resolve returns the node behind id, panicking with ErrDisposed if the
// handle no longer resolves.
func (g *Graph) resolve(op string, id NodeID) *node {
	n, ok := g.nodes.lookup(id)
	if !ok {
		panic(&GraphError{Op: op, Node: id, Err: ErrDisposed})
	}
	return n
}
