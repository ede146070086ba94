package reactive

type nodeKind uint8

const (
	kindCell nodeKind = iota + 1
	kindDerived
)

// node is the type-erased state shared by Cell and Derived.
type node struct {
	id    NodeID
	graph *Graph
	kind  nodeKind
	name  string

	// value is the cell value, or the cached result of a Derived.
	value any

	// stale is true until a Derived has computed a value that reflects its
	// current inputs. Always false for cells.
	stale bool

	// ran is set once a Derived has completed a computation, after which
	// sources (not declared) lists its inputs.
	ran bool

	// computing is true while the node's computation is on the active stack.
	computing bool

	// visiting is true while the refresh walk is expanding this node.
	visiting bool

	disposed bool

	// compute produces a Derived value. Nil for cells.
	compute func(s *Scope) any

	// declared are the inputs named at construction, used to order the
	// first refresh. Nil for Compute nodes.
	declared []*node

	// sources are the nodes read during the last computation.
	sources []*node

	// observers are the Derived nodes that read this node during their last
	// computation.
	observers []*node
}

// inputs returns the nodes the refresh walk should bring up to date before
// n computes.
func (n *node) inputs() []*node {
	if n.ran {
		return n.sources
	}
	return n.declared
}

// link records that obs read src during its current computation.
// Edges are deduplicated on the observer side, which is usually the smaller
// list.
func link(obs, src *node) {
	for _, s := range obs.sources {
		if s == src {
			return
		}
	}
	obs.sources = append(obs.sources, src)
	src.observers = append(src.observers, obs)
}

// unlinkSources drops every edge from n to the nodes it read.
func unlinkSources(n *node) {
	for _, src := range n.sources {
		src.removeObserver(n)
	}
	n.sources = n.sources[:0]
}

// removeObserver removes obs from n's observers. Order does not matter.
func (n *node) removeObserver(obs *node) {
	for i, o := range n.observers {
		if o == obs {
			last := len(n.observers) - 1
			n.observers[i] = n.observers[last]
			n.observers[last] = nil
			n.observers = n.observers[:last]
			return
		}
	}
}

// removeSource removes src from n's sources, keeping read order.
func (n *node) removeSource(src *node) {
	for i, s := range n.sources {
		if s == src {
			n.sources = append(n.sources[:i], n.sources[i+1:]...)
			return
		}
	}
}

// as converts a stored value back to T. A nil interface value yields the
// zero T.
func as[T any](v any) T {
	t, _ := v.(T)
	return t
}
