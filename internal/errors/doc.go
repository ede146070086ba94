// Package errors provides coded, actionable error messages for the
// playground CLI.
//
// Each error code maps to a category, a short message, and a longer
// explanation. Commands attach a detail, a hint, and the underlying
// cause, then print the result with PrintError.
//
// # Error Codes
//
//   - P101: sheet file not found
//   - P102: sheet is invalid
//   - P103: cyclic dependency in sheet
//   - P104: formula failed to evaluate
//   - P110: configuration is invalid
//   - P120: script failed
//   - P121: invalid assignment
//   - P130: server failed
//
// # Usage
//
//	err := errors.New("P103").
//	    WithDetail("x -> y -> x").
//	    WithSuggestion("Break the loop by making one of the formulas a cell")
//
//	errors.PrintError(err)
//	// ERROR P103: Cyclic dependency in sheet
//	//
//	//   x -> y -> x
//	//
//	//   Hint: Break the loop by making one of the formulas a cell
package errors
