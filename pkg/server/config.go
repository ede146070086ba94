package server

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// ServerConfig holds configuration for the inspector.
type ServerConfig struct {
	// Address is the listen address (e.g., "localhost:7070").
	Address string

	// ReadHeaderTimeout bounds the time to read request headers.
	// Default: 10 seconds.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 5 seconds.
	ShutdownTimeout time.Duration

	// MaxBodyBytes limits PUT request bodies.
	// Default: 4KB.
	MaxBodyBytes int64

	// Logger receives request and lifecycle logs.
	// Default: slog.Default().
	Logger *slog.Logger

	// Registerer receives the server metrics. Nil disables them.
	Registerer prometheus.Registerer

	// Namespace prefixes the server metric names.
	// Default: "playground".
	Namespace string

	// Gatherer backs GET /metrics.
	// Default: prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Tracer starts one span per write. Nil uses the global provider.
	Tracer trace.Tracer
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           "localhost:7070",
		ReadHeaderTimeout: 10 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		MaxBodyBytes:      4 * 1024,
		Logger:            slog.Default(),
		Gatherer:          prometheus.DefaultGatherer,
		Namespace:         "playground",
	}
}

// withDefaults fills zero fields from DefaultServerConfig.
func (c *ServerConfig) withDefaults() *ServerConfig {
	d := DefaultServerConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.Address == "" {
		out.Address = d.Address
	}
	if out.ReadHeaderTimeout <= 0 {
		out.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if out.ShutdownTimeout <= 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.MaxBodyBytes <= 0 {
		out.MaxBodyBytes = d.MaxBodyBytes
	}
	if out.Logger == nil {
		out.Logger = d.Logger
	}
	if out.Namespace == "" {
		out.Namespace = d.Namespace
	}
	if out.Gatherer == nil {
		out.Gatherer = d.Gatherer
	}
	return &out
}
