package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gander-tools/playground/internal/config"
	"github.com/gander-tools/playground/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every command.
type globalFlags struct {
	logLevel string
	noColor  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "playground",
		Short: "Evaluate and inspect reactive sheets",
		Long: `playground builds a reactive graph from a YAML sheet of cells and
formulas. Writing a cell marks dependent formulas stale; formulas
recompute only when read.

Examples:
  playground eval budget.yaml --set a=10
  playground serve budget.yaml --addr :7070`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flags.noColor {
				errors.DisableColors()
			}
			level, err := config.ParseLevel(flags.logLevel)
			if err != nil {
				return errors.Newf(errors.CategoryCLI, "invalid --log-level: %v", err)
			}
			slog.SetDefault(newLogger(cmd.ErrOrStderr(), level, config.DefaultLogFormat))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		evalCmd(),
		serveCmd(),
		versionCmd(),
	)

	return rootCmd
}

// newLogger builds the process logger.
func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", colorize("\033[32m", "✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

func colorize(code, text string) string {
	if !errors.ColorsEnabled() {
		return text
	}
	return code + text + "\033[0m"
}
