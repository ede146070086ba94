package reactive

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCycle is reported when a node is read while it is still being
// computed, directly or through other nodes.
var ErrCycle = errors.New("reactive: cyclic dependency")

// ErrDisposed is reported when a handle refers to a node that has been
// disposed.
var ErrDisposed = errors.New("reactive: node disposed")

// ErrForeignNode is reported when nodes from different graphs are combined,
// or a node is read with a Scope that belongs to another graph.
var ErrForeignNode = errors.New("reactive: node belongs to another graph")

// ErrScopeClosed is reported when a Scope is used after its computation
// has returned.
var ErrScopeClosed = errors.New("reactive: scope used outside its computation")

// ErrPanicked wraps a non-error value raised by a combine function.
var ErrPanicked = errors.New("reactive: computation panicked")

// GraphError describes a failed graph operation.
type GraphError struct {
	Op   string // "get", "read", "combine", ...
	Node NodeID
	Name string

	// Path lists the nodes that form the cycle for ErrCycle.
	Path []string

	Err error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(" ")
	b.WriteString(label(e.Name, e.Node))
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	if len(e.Path) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(e.Path, " -> "))
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap returns the underlying sentinel for errors.Is support.
func (e *GraphError) Unwrap() error {
	return e.Err
}

// recoverError converts a recovered panic value into an error.
func recoverError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%w: %v", ErrPanicked, r)
}

func label(name string, id NodeID) string {
	if name != "" {
		return name
	}
	return id.String()
}
