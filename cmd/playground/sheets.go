package main

import (
	stderrors "errors"
	"os"

	"github.com/gander-tools/playground/internal/errors"
	"github.com/gander-tools/playground/pkg/reactive"
	"github.com/gander-tools/playground/pkg/sheet"
)

// loadSheet reads path and builds it into g, translating failures into
// coded errors.
func loadSheet(path string, g func(name string) *reactive.Graph) (*sheet.Sheet, error) {
	doc, err := sheet.LoadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.New("P101").
				WithDetail("No sheet at " + path).
				WithSuggestion("Check the path passed to the command")
		}
		return nil, errors.New("P102").Wrap(err)
	}

	sh, err := sheet.Build(g(doc.Name), doc)
	if err != nil {
		return nil, buildError(err)
	}
	return sh, nil
}

// buildError maps a sheet.Build failure to a coded error.
func buildError(err error) *errors.Error {
	if stderrors.Is(err, sheet.ErrCycle) {
		return errors.New("P103").
			Wrap(err).
			WithSuggestion("Make one of the formulas in the loop a plain cell")
	}
	return errors.New("P102").Wrap(err)
}

// isEvalError reports whether err was raised while computing a formula.
func isEvalError(err error) bool {
	return stderrors.Is(err, sheet.ErrBadFormula) ||
		stderrors.Is(err, reactive.ErrPanicked) ||
		stderrors.Is(err, reactive.ErrCycle)
}
