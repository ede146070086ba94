package main

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/gander-tools/playground/internal/config"
	"github.com/gander-tools/playground/internal/errors"
	"github.com/gander-tools/playground/pkg/reactive"
	"github.com/gander-tools/playground/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve SHEET",
		Short: "Serve a sheet over HTTP",
		Long: `Start the HTTP inspector for a sheet.

Settings are read from --config, or from playground.json in the
working directory when present. --addr overrides the configured
address.

Routes:
  GET  /cells          all values
  GET  /cells/{name}   one value
  PUT  /cells/{name}   write a cell: {"value": 10}
  GET  /ws             change stream
  GET  /metrics        Prometheus metrics
  GET  /healthz        liveness

Examples:
  playground serve budget.yaml
  playground serve budget.yaml --addr 0.0.0.0:8080`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("log-level") {
				slog.SetDefault(newLogger(cmd.ErrOrStderr(), cfg.Level(), cfg.Log.Format))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cmd, args[0], cfg, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from playground.json)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to playground.json")

	return cmd
}

// loadConfig reads an explicit config path, or playground.json from the
// working directory if it exists, or falls back to defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if _, err := os.Stat(config.ConfigFileName); err == nil {
		return config.Load(".")
	}
	return config.New(), nil
}

func runServe(ctx context.Context, cmd *cobra.Command, path string, cfg *config.Config, addr string) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := reactive.NewMetrics(
		reactive.WithRegistry(registry),
		reactive.WithNamespace(cfg.Metrics.Namespace),
	)

	sh, err := loadSheet(path, func(name string) *reactive.Graph {
		return reactive.NewGraph(
			reactive.WithName(name),
			reactive.WithLogger(slog.Default()),
			reactive.WithMetrics(metrics),
			reactive.WithTracer(otel.Tracer(cfg.Tracing.Tracer)),
		)
	})
	if err != nil {
		return err
	}

	if addr == "" {
		addr = cfg.Address()
	}
	srv := server.New(sh, &server.ServerConfig{
		Address:    addr,
		Logger:     slog.Default(),
		Registerer: registry,
		Gatherer:   registry,
		Namespace:  cfg.Metrics.Namespace,
	})

	out := cmd.OutOrStdout()
	success(out, "Serving sheet %q (%d names)", sh.Name(), len(sh.Names()))
	info(out, "http://%s/cells", addr)
	info(out, "Press Ctrl+C to stop")

	if err := srv.Run(ctx); err != nil && !stderrors.Is(err, context.Canceled) {
		return errors.New("P130").Wrap(err)
	}
	return nil
}
