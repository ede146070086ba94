package arith

import (
	"math"
	"testing"

	"github.com/gander-tools/playground/pkg/reactive"
)

const maxSafeInteger = 1<<53 - 1

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAdd(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"positive", 2, 3, 5},
		{"larger positive", 100, 200, 300},
		{"negative", -5, -3, -8},
		{"mixed", 5, -3, 2},
		{"mixed reversed", -5, 3, -2},
		{"cancel out", 10, -10, 0},
		{"zeros", 0, 0, 0},
		{"zero right", 5, 0, 5},
		{"decimals", 1.5, 2.5, 4},
		{"decimals exact", 10.75, 5.25, 16},
		{"large", 1000000, 2000000, 3000000},
		{"max safe integer", maxSafeInteger - 1, 1, maxSafeInteger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Add(tt.a, tt.b); got != tt.want {
				t.Errorf("Add(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}

	if got := Add(0.1, 0.2); !closeTo(got, 0.3) {
		t.Errorf("Add(0.1, 0.2) = %v, want ~0.3", got)
	}
	if got := Add(0.000001, 0.000002); !closeTo(got, 0.000003) {
		t.Errorf("Add(0.000001, 0.000002) = %v, want ~0.000003", got)
	}
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"positive", 5, 3, 2},
		{"larger positive", 300, 100, 200},
		{"negative", -5, -3, -2},
		{"negative to positive", -10, -20, 10},
		{"mixed", 5, -3, 8},
		{"mixed reversed", -5, 3, -8},
		{"zeros", 0, 0, 0},
		{"from zero", 0, 5, -5},
		{"decimals", 4, 1.5, 2.5},
		{"decimals exact", 16, 5.25, 10.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Subtract(tt.a, tt.b); got != tt.want {
				t.Errorf("Subtract(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}

	if got := Subtract(0.3, 0.1); !closeTo(got, 0.2) {
		t.Errorf("Subtract(0.3, 0.1) = %v, want ~0.2", got)
	}
}

func TestIntegerTypes(t *testing.T) {
	if Add[int8](100, 27) != 127 {
		t.Error("int8 add failed")
	}
	if Subtract[uint](10, 4) != 6 {
		t.Error("uint subtract failed")
	}

	type cents int64
	if Add[cents](150, 250) != 400 {
		t.Error("named integer add failed")
	}
}

func TestAddRef(t *testing.T) {
	g := reactive.NewGraph()
	a := reactive.NewCell(g, 10)
	b := reactive.NewCell(g, 20)
	result := AddRef[int](a, b)

	if result.Get() != 30 {
		t.Errorf("expected 30, got %d", result.Get())
	}

	a.Set(15)
	if result.Get() != 35 {
		t.Errorf("expected 35, got %d", result.Get())
	}

	b.Set(25)
	if result.Get() != 40 {
		t.Errorf("expected 40, got %d", result.Get())
	}
}

func TestAddRefMultipleUpdates(t *testing.T) {
	g := reactive.NewGraph()
	a := reactive.NewCell(g, 1)
	b := reactive.NewCell(g, 1)
	result := AddRef[int](a, b)

	steps := []struct {
		cell  *reactive.Cell[int]
		value int
		want  int
	}{
		{a, 5, 6},
		{b, 10, 15},
		{a, 0, 10},
		{b, 0, 0},
		{a, -3, -3},
	}

	if result.Get() != 2 {
		t.Fatalf("expected 2, got %d", result.Get())
	}
	for i, s := range steps {
		s.cell.Set(s.value)
		if got := result.Get(); got != s.want {
			t.Errorf("step %d: expected %d, got %d", i, s.want, got)
		}
	}
}

func TestAddRefDecimals(t *testing.T) {
	g := reactive.NewGraph()
	a := reactive.NewCell(g, 1.5)
	b := reactive.NewCell(g, 2.5)
	result := AddRef[float64](a, b)

	if result.Get() != 4 {
		t.Errorf("expected 4, got %v", result.Get())
	}

	a.Set(0.1)
	b.Set(0.2)
	if !closeTo(result.Get(), 0.3) {
		t.Errorf("expected ~0.3, got %v", result.Get())
	}

	a.Set(maxSafeInteger - 1)
	b.Set(1)
	if result.Get() != maxSafeInteger {
		t.Errorf("expected %v, got %v", float64(maxSafeInteger), result.Get())
	}
}

func TestAddRefIndependent(t *testing.T) {
	g := reactive.NewGraph()
	a1 := reactive.NewCell(g, 1)
	b1 := reactive.NewCell(g, 2)
	result1 := AddRef[int](a1, b1)

	a2 := reactive.NewCell(g, 10)
	b2 := reactive.NewCell(g, 20)
	result2 := AddRef[int](a2, b2)

	a1.Set(5)
	if result1.Get() != 7 || result2.Get() != 30 {
		t.Errorf("expected 7 and 30, got %d and %d", result1.Get(), result2.Get())
	}

	a2.Set(15)
	if result1.Get() != 7 || result2.Get() != 35 {
		t.Errorf("expected 7 and 35, got %d and %d", result1.Get(), result2.Get())
	}
}

func TestAddRefOverDerived(t *testing.T) {
	g := reactive.NewGraph()
	a := reactive.NewCell(g, 1)
	b := reactive.NewCell(g, 2)
	c := reactive.NewCell(g, 3)

	ab := AddRef[int](a, b)
	abc := AddRef[int](ab, c)

	if abc.Get() != 6 {
		t.Errorf("expected 6, got %d", abc.Get())
	}
	b.Set(20)
	if abc.Get() != 24 {
		t.Errorf("expected 24, got %d", abc.Get())
	}
}

func TestSubtractRef(t *testing.T) {
	g := reactive.NewGraph()
	a := reactive.NewCell(g, 10)
	b := reactive.NewCell(g, 4)
	diff := SubtractRef[int](a, b)

	if diff.Get() != 6 {
		t.Errorf("expected 6, got %d", diff.Get())
	}
	b.Set(12)
	if diff.Get() != -2 {
		t.Errorf("expected -2, got %d", diff.Get())
	}
}

func TestSumRef(t *testing.T) {
	g := reactive.NewGraph()
	a := reactive.NewCell(g, 1.0)
	b := reactive.NewCell(g, 2.0)
	c := reactive.NewCell(g, 3.5)

	total := SumRef[float64](g, a, b, c)
	if total.Get() != 6.5 {
		t.Errorf("expected 6.5, got %v", total.Get())
	}

	c.Set(-3)
	if total.Get() != 0 {
		t.Errorf("expected 0, got %v", total.Get())
	}

	empty := SumRef[float64](g)
	if empty.Get() != 0 {
		t.Errorf("expected 0 for empty sum, got %v", empty.Get())
	}
}
