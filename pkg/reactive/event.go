package reactive

// EventType identifies a graph event.
type EventType uint8

const (
	// EventWrite is raised after a Cell value is replaced.
	EventWrite EventType = iota + 1

	// EventStale is raised for each Derived marked stale by a write or a
	// disposal.
	EventStale

	// EventRecompute is raised after a Derived recomputes its value.
	EventRecompute

	// EventDispose is raised after a Derived is disposed.
	EventDispose
)

// String returns a human-readable name for the event type.
func (t EventType) String() string {
	switch t {
	case EventWrite:
		return "write"
	case EventStale:
		return "stale"
	case EventRecompute:
		return "recompute"
	case EventDispose:
		return "dispose"
	default:
		return "unknown"
	}
}

// Event describes one change in a graph.
type Event struct {
	Type EventType
	Node NodeID
	Name string
}

type watcher struct {
	id uint64
	fn func(Event)
}

// Watch registers fn to receive every event raised by the graph.
// Events are delivered synchronously once the operation that raised them
// has released the graph lock, so fn may call Get and Set.
// The returned function removes the watcher.
func (g *Graph) Watch(fn func(Event)) (cancel func()) {
	g.mu.Lock()
	defer g.unlock()

	g.nextWatch++
	id := g.nextWatch
	g.watchers = append(g.watchers, watcher{id: id, fn: fn})

	return func() {
		g.mu.Lock()
		defer g.unlock()
		for i, w := range g.watchers {
			if w.id == id {
				g.watchers = append(g.watchers[:i], g.watchers[i+1:]...)
				return
			}
		}
	}
}

// emit queues an event for delivery when the lock is released.
// Nothing is queued when nobody watches.
func (g *Graph) emit(t EventType, n *node) {
	if len(g.watchers) == 0 {
		return
	}
	g.pending = append(g.pending, Event{Type: t, Node: n.id, Name: n.name})
}
