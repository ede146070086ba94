// Package arith provides plain and reactive arithmetic helpers.
//
// The plain helpers operate on values. The Ref helpers combine reactive
// sources into a Derived that always holds the result for the sources'
// current values:
//
//	g := reactive.NewGraph()
//	a := reactive.NewCell(g, 2)
//	b := reactive.NewCell(g, 3)
//	sum := arith.AddRef[int](a, b)
//	sum.Get() // 5
//	a.Set(10)
//	sum.Get() // 13
package arith

import "github.com/gander-tools/playground/pkg/reactive"

// Number is the set of types the helpers accept.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Add returns a + b.
func Add[T Number](a, b T) T {
	return a + b
}

// Subtract returns a - b.
func Subtract[T Number](a, b T) T {
	return a - b
}

// Sum returns the sum of values, or zero for none.
func Sum[T Number](values []T) T {
	var total T
	for _, v := range values {
		total += v
	}
	return total
}

// AddRef returns a Derived holding a + b. Both sources must belong to the
// same graph.
func AddRef[T Number](a, b reactive.Source[T]) *reactive.Derived[T] {
	return reactive.Combine2(a, b, Add[T])
}

// SubtractRef returns a Derived holding a - b.
func SubtractRef[T Number](a, b reactive.Source[T]) *reactive.Derived[T] {
	return reactive.Combine2(a, b, Subtract[T])
}

// SumRef returns a Derived holding the sum of sources. With no sources it
// holds zero.
func SumRef[T Number](g *reactive.Graph, sources ...reactive.Source[T]) *reactive.Derived[T] {
	return reactive.Combine(g, sources, Sum[T])
}
