// Package sheet builds reactive graphs from YAML documents.
//
// A document declares named input cells and named formulas over them:
//
//	name: budget
//	cells:
//	  - {name: a, value: 2}
//	  - {name: b, value: 3}
//	formulas:
//	  - {name: total, op: sum, of: [a, b]}
//	  - {name: diff, op: sub, of: [a, b]}
//	  - {name: half, op: expr, of: [total], expr: "total / 2"}
//
// Formulas may refer to cells and to other formulas in any order.
// Build orders them by dependency and rejects cyclic declarations.
//
// Ops:
//   - sum: sum of one or more inputs
//   - sub: first input minus second input
//   - expr: an ECMAScript expression over the named inputs, evaluated with goja
package sheet
