package reactive

import "fmt"

// NodeID is a stable handle to a node slot in a Graph's arena.
// The generation changes when the slot is recycled, so a handle to a
// disposed node never resolves to the node that reuses its slot.
// The zero NodeID never resolves.
type NodeID struct {
	Index      uint32
	Generation uint32
}

// String returns the handle as "n<index>.<generation>".
func (id NodeID) String() string {
	return fmt.Sprintf("n%d.%d", id.Index, id.Generation)
}

// IsZero reports whether id is the zero handle.
func (id NodeID) IsZero() bool {
	return id.Generation == 0
}

// slot is one arena entry. A nil node marks a free slot.
type slot struct {
	gen  uint32
	node *node
}

// arena stores the nodes of one graph and recycles the slots of disposed
// nodes.
type arena struct {
	slots []slot
	free  []uint32
	live  int
}

// alloc places n in a free slot and assigns its handle.
func (a *arena) alloc(n *node) NodeID {
	var idx uint32
	if k := len(a.free); k > 0 {
		idx = a.free[k-1]
		a.free = a.free[:k-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}

	s := &a.slots[idx]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.node = n
	a.live++

	n.id = NodeID{Index: idx, Generation: s.gen}
	return n.id
}

// lookup resolves a handle. It fails for freed slots and stale generations.
func (a *arena) lookup(id NodeID) (*node, bool) {
	if id.Generation == 0 || int(id.Index) >= len(a.slots) {
		return nil, false
	}
	s := a.slots[id.Index]
	if s.node == nil || s.gen != id.Generation {
		return nil, false
	}
	return s.node, true
}

// release frees the slot behind id. Releasing an unknown handle is a no-op.
func (a *arena) release(id NodeID) {
	if _, ok := a.lookup(id); !ok {
		return
	}
	a.slots[id.Index].node = nil
	a.free = append(a.free, id.Index)
	a.live--
}
