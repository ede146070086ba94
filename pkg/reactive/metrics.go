package reactive

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures graph metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "playground").
	Namespace string

	// Subsystem is the metrics subsystem (default: "reactive").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures graph metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "playground",
		Subsystem: "reactive",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics counts graph activity. One Metrics may be shared by several
// graphs; every series is labelled with the graph name.
// A nil *Metrics records nothing.
type Metrics struct {
	writes        *prometheus.CounterVec
	invalidations *prometheus.CounterVec
	recomputes    *prometheus.CounterVec
	cycles        *prometheus.CounterVec
	nodes         *prometheus.GaugeVec
}

// NewMetrics creates and registers the graph metrics:
//   - playground_reactive_writes_total: cell writes that changed a value
//   - playground_reactive_invalidations_total: nodes marked stale
//   - playground_reactive_recomputes_total: Derived recomputations
//   - playground_reactive_cycles_total: cyclic reads rejected
//   - playground_reactive_nodes: live nodes
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)
	labels := []string{"graph"}

	return &Metrics{
		writes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "writes_total",
			Help:        "Total number of cell writes",
			ConstLabels: config.ConstLabels,
		}, labels),

		invalidations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "invalidations_total",
			Help:        "Total number of derived nodes marked stale",
			ConstLabels: config.ConstLabels,
		}, labels),

		recomputes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "recomputes_total",
			Help:        "Total number of derived node recomputations",
			ConstLabels: config.ConstLabels,
		}, labels),

		cycles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "cycles_total",
			Help:        "Total number of cyclic reads rejected",
			ConstLabels: config.ConstLabels,
		}, labels),

		nodes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "nodes",
			Help:        "Number of live nodes",
			ConstLabels: config.ConstLabels,
		}, labels),
	}
}

func (m *Metrics) incWrites(graph string) {
	if m != nil {
		m.writes.WithLabelValues(graph).Inc()
	}
}

func (m *Metrics) addInvalidations(graph string, n int) {
	if m != nil && n > 0 {
		m.invalidations.WithLabelValues(graph).Add(float64(n))
	}
}

func (m *Metrics) incRecomputes(graph string) {
	if m != nil {
		m.recomputes.WithLabelValues(graph).Inc()
	}
}

func (m *Metrics) incCycles(graph string) {
	if m != nil {
		m.cycles.WithLabelValues(graph).Inc()
	}
}

func (m *Metrics) setNodes(graph string, n int) {
	if m != nil {
		m.nodes.WithLabelValues(graph).Set(float64(n))
	}
}
