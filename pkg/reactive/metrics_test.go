package reactive

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	if m.Gauge == nil {
		t.Fatal("expected gauge metric to have Gauge field")
	}
	return m.GetGauge().GetValue()
}

func TestGraphMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(registry), WithNamespace("test"))
	g := NewGraph(WithName("metrics"), WithMetrics(m))

	c := NewCell(g, 1)
	a := Map(c, func(v int) int { return v + 1 })
	b := Map(a, func(v int) int { return v * 2 })
	_ = b.Get()

	c.Set(2)
	c.Set(3)
	_ = b.Get()

	if got := metricCounterValue(t, m.writes.WithLabelValues("metrics")); got != 2 {
		t.Errorf("expected 2 writes, got %v", got)
	}
	// The second write finds both nodes already stale.
	if got := metricCounterValue(t, m.invalidations.WithLabelValues("metrics")); got != 2 {
		t.Errorf("expected 2 invalidations, got %v", got)
	}
	if got := metricCounterValue(t, m.recomputes.WithLabelValues("metrics")); got != 4 {
		t.Errorf("expected 4 recomputes, got %v", got)
	}
	if got := metricGaugeValue(t, m.nodes.WithLabelValues("metrics")); got != 3 {
		t.Errorf("expected 3 nodes, got %v", got)
	}

	b.Dispose()
	if got := metricGaugeValue(t, m.nodes.WithLabelValues("metrics")); got != 2 {
		t.Errorf("expected 2 nodes after dispose, got %v", got)
	}
}

func TestGraphMetricsCycles(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(registry))
	g := NewGraph(WithName("cycles"), WithMetrics(m))

	var d *Derived[int]
	d = Compute(g, func(s *Scope) int { return d.Read(s) })
	_, _ = d.TryGet()

	if got := metricCounterValue(t, m.cycles.WithLabelValues("cycles")); got != 1 {
		t.Errorf("expected 1 cycle, got %v", got)
	}

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "playground_reactive_cycles_total" {
			found = true
		}
	}
	if !found {
		t.Error("expected playground_reactive_cycles_total to be registered")
	}
}

func TestNilMetricsRecordsNothing(t *testing.T) {
	var m *Metrics
	m.incWrites("g")
	m.addInvalidations("g", 3)
	m.incRecomputes("g")
	m.incCycles("g")
	m.setNodes("g", 1)
}
