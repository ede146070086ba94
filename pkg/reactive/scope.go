package reactive

// Scope is handed to a running computation. Reading a node through the
// Scope records that node as an input of the computation.
//
// A Scope is valid only until its computation returns.
type Scope struct {
	graph  *Graph
	node   *node
	closed bool
}

// Graph returns the graph the computation belongs to.
func (s *Scope) Graph() *Graph {
	return s.graph
}

// Node returns the handle of the node being computed.
func (s *Scope) Node() NodeID {
	return s.node.id
}

// Depth returns the number of computations running on the graph,
// including this one.
func (s *Scope) Depth() int {
	return len(s.graph.active)
}

// track validates s for a read of a node owned by g and returns the
// observing node.
func (s *Scope) track(op string, g *Graph, id NodeID) *node {
	if s.closed {
		panic(&GraphError{Op: op, Node: id, Err: ErrScopeClosed})
	}
	if s.graph != g {
		panic(&GraphError{Op: op, Node: id, Err: ErrForeignNode})
	}
	return s.node
}
