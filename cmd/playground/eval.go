package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gander-tools/playground/internal/errors"
	"github.com/gander-tools/playground/pkg/reactive"
	"github.com/gander-tools/playground/pkg/sheet"
)

func evalCmd() *cobra.Command {
	var (
		script string
		sets   []string
	)

	cmd := &cobra.Command{
		Use:   "eval SHEET",
		Short: "Evaluate a sheet",
		Long: `Build a sheet, apply assignments, and print the results.

Assignments given with --set are applied in order before the script
runs. Without --script every cell and formula is printed.

Script lines:
  set NAME VALUE
  get NAME
  print
  # comment

Examples:
  playground eval budget.yaml
  playground eval budget.yaml --set a=10 --set b=-1
  playground eval budget.yaml --script steps.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd.OutOrStdout(), args[0], script, sets)
		},
	}

	cmd.Flags().StringVar(&script, "script", "", "Script file to run against the sheet")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Assignment NAME=VALUE (repeatable)")

	return cmd
}

func runEval(w io.Writer, path, script string, sets []string) error {
	sh, err := loadSheet(path, func(name string) *reactive.Graph {
		return reactive.NewGraph(reactive.WithName(name), reactive.WithLogger(slog.Default()))
	})
	if err != nil {
		return err
	}

	for _, arg := range sets {
		name, v, err := sheet.ParseAssignment(arg)
		if err != nil {
			return errors.New("P121").Wrap(err)
		}
		if err := sh.Set(name, v); err != nil {
			return errors.New("P121").
				Wrap(err).
				WithSuggestion("Only cells can be assigned; formulas are computed")
		}
	}

	if script == "" {
		if err := sheet.Print(sh, w); err != nil {
			return errors.New("P104").Wrap(err)
		}
		return nil
	}

	f, err := os.Open(script)
	if err != nil {
		return errors.New("P120").WithDetail("Cannot open script " + script).Wrap(err)
	}
	defer f.Close()

	if err := sheet.RunScript(sh, f, w); err != nil {
		if isEvalError(err) {
			return errors.New("P104").Wrap(err)
		}
		return errors.New("P120").Wrap(err)
	}
	return nil
}
