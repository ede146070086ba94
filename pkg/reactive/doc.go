// Package reactive provides a small dependency-tracking value graph.
//
// A Graph owns every node created against it. Cells hold values written by
// host code; Derived nodes compute values from other nodes through pure
// functions and cache the result until one of their inputs changes.
//
// # Core Types
//
// Cell[T] is a mutable reactive value:
//
//	g := reactive.NewGraph()
//	a := reactive.NewCell(g, 2)
//	a.Get()   // 2
//	a.Set(10) // marks every dependent Derived stale
//
// Derived[T] is a cached computation over other nodes:
//
//	b := reactive.NewCell(g, 3)
//	sum := reactive.Combine2(a, b, func(x, y int) int { return x + y })
//	sum.Get() // 13, computed on first read and cached
//
// Compute builds a Derived whose inputs are discovered while it runs.
// The function reads its inputs through the Scope it is handed, and the
// set of inputs is recorded again on every run:
//
//	total := reactive.Compute(g, func(s *reactive.Scope) int {
//	    if flag.Read(s) {
//	        return a.Read(s)
//	    }
//	    return b.Read(s)
//	})
//
// # Invalidation
//
// Writes push staleness to every transitive dependent before Set returns.
// Reads pull: a stale Derived recomputes its stale inputs in dependency
// order, then itself, exactly once per invalidation. Neither walk recurses
// on the native stack, so chains of any depth are safe.
//
// # Thread Safety
//
// Each Graph is guarded by a single mutex. Get, Set, Update, Dispose and
// TryGet take it; Read does not, and may only be called with the Scope
// handed to a running computation. Calling Get, TryGet, Set, Update or
// Dispose on the same graph from inside a computation deadlocks; a
// Watch callback runs after the lock is released and may call any of them.
package reactive
