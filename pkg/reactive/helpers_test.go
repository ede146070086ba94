package reactive

import (
	"errors"
	"testing"
)

// expectGraphError runs fn and returns the *GraphError it panics with,
// failing the test unless that error wraps target.
func expectGraphError(t *testing.T, target error, fn func()) (ge *GraphError) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %v", target)
		}
		var ok bool
		ge, ok = r.(*GraphError)
		if !ok {
			t.Fatalf("expected *GraphError, got %T: %v", r, r)
		}
		if !errors.Is(ge, target) {
			t.Fatalf("expected %v, got %v", target, ge)
		}
	}()
	fn()
	return nil
}

// observerCount returns the number of observers recorded on id.
func observerCount(g *Graph, id NodeID) int {
	g.mu.Lock()
	defer g.unlock()
	n, ok := g.nodes.lookup(id)
	if !ok {
		return -1
	}
	return len(n.observers)
}
