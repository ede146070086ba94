package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/gander-tools/playground/pkg/reactive"
	"github.com/gander-tools/playground/pkg/sheet"
)

// TracerName is the instrumentation name used when ServerConfig.Tracer
// is nil.
const TracerName = "github.com/gander-tools/playground/pkg/server"

// Server serves one sheet.
type Server struct {
	config  *ServerConfig
	sheet   *sheet.Sheet
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *serverMetrics
	hub     *Hub
	router  chi.Router

	unwatch func()

	mu         sync.Mutex
	httpServer *http.Server
}

// New creates a server for sh. A nil config uses DefaultServerConfig.
// The server watches the sheet's graph until Close or Shutdown.
func New(sh *sheet.Sheet, config *ServerConfig) *Server {
	cfg := config.withDefaults()

	s := &Server{
		config:  cfg,
		sheet:   sh,
		logger:  cfg.Logger.With("component", "server", "sheet", sh.Name()),
		tracer:  cfg.Tracer,
		metrics: newServerMetrics(cfg.Registerer, cfg.Namespace),
		hub:     NewHub(),
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(TracerName)
	}
	s.hub.onChange = s.metrics.setClients

	s.router = s.routes()
	s.unwatch = sh.Graph().Watch(s.onEvent)
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/cells", s.handleSnapshot)
	r.Get("/cells/{name}", s.handleGet)
	r.Put("/cells/{name}", s.handlePut)
	r.Get("/ws", s.hub.HandleWebSocket)
	r.Handle("/metrics", promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	return r
}

// onEvent broadcasts a snapshot after each write to a sheet cell.
// It runs on the writer's goroutine, outside the graph lock.
func (s *Server) onEvent(ev reactive.Event) {
	if ev.Type != reactive.EventWrite {
		return
	}
	if kind, ok := s.sheet.Kind(ev.Name); !ok || kind != sheet.KindCell {
		return
	}
	if s.hub.ClientCount() == 0 {
		return
	}

	msg := Message{Type: MessageTypeWrite, Name: ev.Name}
	values, err := s.sheet.Snapshot()
	if err != nil {
		s.logger.Warn("snapshot failed", "cell", ev.Name, "error", err)
		msg = Message{Type: MessageTypeError, Name: ev.Name, Error: err.Error()}
	} else {
		msg.Values = values
	}
	if err := s.hub.Broadcast(msg); err != nil {
		s.logger.Error("broadcast failed", "cell", ev.Name, "error", err)
	}
}

// Handler returns the server's http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Hub returns the change stream hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Run listens on the configured address and serves until ctx is done,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}
	s.mu.Lock()
	s.httpServer = hs
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- hs.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown stops the HTTP server, closes websocket clients and stops
// watching the graph.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.Close()

	s.mu.Lock()
	hs := s.httpServer
	s.mu.Unlock()
	if hs != nil {
		if err := hs.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Close stops watching the graph and disconnects websocket clients.
// It does not stop a running HTTP server; use Shutdown for that.
func (s *Server) Close() {
	s.mu.Lock()
	unwatch := s.unwatch
	s.unwatch = nil
	s.mu.Unlock()

	if unwatch != nil {
		unwatch()
	}
	s.hub.Close()
}
