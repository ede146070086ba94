package reactive

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// invalidate marks every transitive observer of root stale.
// A node that is already stale is not traversed again: its observers were
// marked when it became stale. Returns the number of nodes marked.
func (g *Graph) invalidate(root *node) int {
	stack := append(g.scratch[:0], root.observers...)
	marked := 0

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack[len(stack)-1] = nil
		stack = stack[:len(stack)-1]

		if n.stale {
			continue
		}
		n.stale = true
		marked++
		g.emit(EventStale, n)

		stack = append(stack, n.observers...)
	}

	g.scratch = stack[:0]
	g.metrics.addInvalidations(g.name, marked)
	return marked
}

// read returns n's current value, bringing a stale Derived up to date
// first. If obs is non-nil, obs is recorded as an observer of n.
func (g *Graph) read(op string, n *node, obs *node) any {
	if n.computing {
		g.cycle(op, n, g.activePath(n))
	}
	if n.stale {
		g.refresh(op, n)
	}
	if obs != nil {
		link(obs, n)
	}
	return n.value
}

type refreshFrame struct {
	n        *node
	expanded bool
}

// refresh recomputes root and every stale node it depends on, inputs
// before dependents, each at most once. The walk keeps its own stack
// rather than recursing.
func (g *Graph) refresh(op string, root *node) {
	stack := []refreshFrame{{n: root}}

	defer func() {
		// Clear marks left behind when a computation panics mid-walk.
		for _, f := range stack {
			f.n.visiting = false
		}
	}()

	for len(stack) > 0 {
		top := len(stack) - 1
		n := stack[top].n

		if !n.stale || n.disposed {
			stack = stack[:top]
			continue
		}

		if stack[top].expanded {
			n.visiting = false
			stack = stack[:top]
			g.recompute(n)
			continue
		}

		stack[top].expanded = true
		n.visiting = true

		in := n.inputs()
		for i := len(in) - 1; i >= 0; i-- {
			src := in[i]
			if src.kind != kindDerived || !src.stale || src.disposed {
				continue
			}
			if src.visiting || src.computing {
				g.cycle(op, src, walkPath(stack, src))
			}
			stack = append(stack, refreshFrame{n: src})
		}
	}
}

// recompute runs n's computation and caches the result.
// If the computation panics, n stays stale and the panic propagates.
func (g *Graph) recompute(n *node) {
	unlinkSources(n)

	scope := &Scope{graph: g, node: n}
	n.computing = true
	g.active = append(g.active, n)

	_, span := g.tracer.Start(context.Background(), "reactive.recompute",
		trace.WithAttributes(
			attribute.String("reactive.graph", g.name),
			attribute.String("reactive.node", label(n.name, n.id)),
		),
	)

	defer func() {
		scope.closed = true
		n.computing = false
		g.active = g.active[:len(g.active)-1]

		if r := recover(); r != nil {
			span.RecordError(recoverError(r))
			span.SetStatus(codes.Error, fmt.Sprint(r))
			span.End()
			panic(r)
		}
		span.SetAttributes(attribute.Int("reactive.sources", len(n.sources)))
		span.End()
	}()

	v := n.compute(scope)

	n.value = v
	n.stale = false
	n.ran = true

	g.metrics.incRecomputes(g.name)
	g.emit(EventRecompute, n)
	g.logger.Debug("recomputed", "node", label(n.name, n.id), "sources", len(n.sources))
}

// cycle reports a cyclic read of n.
func (g *Graph) cycle(op string, n *node, path []string) {
	g.metrics.incCycles(g.name)
	g.logger.Warn("cyclic dependency", "node", label(n.name, n.id), "path", path)
	panic(&GraphError{Op: op, Node: n.id, Name: n.name, Path: path, Err: ErrCycle})
}

// activePath names the running computations from n's frame to the
// innermost one, closed by n.
func (g *Graph) activePath(n *node) []string {
	start := 0
	for i, a := range g.active {
		if a == n {
			start = i
			break
		}
	}
	path := make([]string, 0, len(g.active)-start+1)
	for _, a := range g.active[start:] {
		path = append(path, label(a.name, a.id))
	}
	return append(path, label(n.name, n.id))
}

// walkPath names the expanded refresh frames from n's frame to the top,
// closed by n. Expanded frames still on the stack form the current path.
func walkPath(stack []refreshFrame, n *node) []string {
	var path []string
	on := false
	for _, f := range stack {
		if f.n == n && f.expanded {
			on = true
		}
		if on && f.expanded {
			path = append(path, label(f.n.name, f.n.id))
		}
	}
	return append(path, label(n.name, n.id))
}
