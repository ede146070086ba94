package reactive

import (
	"sync"
	"testing"
)

func TestCellBasic(t *testing.T) {
	g := NewGraph()
	count := NewCell(g, 0)

	if count.Get() != 0 {
		t.Errorf("expected initial value 0, got %d", count.Get())
	}

	count.Set(5)
	if count.Get() != 5 {
		t.Errorf("expected value 5, got %d", count.Get())
	}

	count.Update(func(n int) int { return n * 2 })
	if count.Get() != 10 {
		t.Errorf("expected value 10, got %d", count.Get())
	}
}

func TestCellReadNilScope(t *testing.T) {
	g := NewGraph()
	c := NewCell(g, "hello")

	if got := c.Read(nil); got != "hello" {
		t.Errorf("expected hello, got %q", got)
	}
}

func TestCellZeroValueInterface(t *testing.T) {
	g := NewGraph()
	var initial error
	c := NewCell(g, initial)

	if c.Get() != nil {
		t.Errorf("expected nil, got %v", c.Get())
	}
}

func TestCellWriteAlwaysInvalidates(t *testing.T) {
	g := NewGraph()
	c := NewCell(g, 7)

	computations := 0
	d := Map(c, func(v int) int {
		computations++
		return v
	})
	_ = d.Get()

	// Same value, still a change.
	c.Set(7)
	if !d.Stale() {
		t.Error("expected derived to be stale after writing an equal value")
	}
	_ = d.Get()
	if computations != 2 {
		t.Errorf("expected 2 computations, got %d", computations)
	}
}

func TestCellWithEquals(t *testing.T) {
	g := NewGraph()
	c := NewCell(g, 7).WithEquals(func(a, b int) bool { return a == b })

	computations := 0
	d := Map(c, func(v int) int {
		computations++
		return v
	})
	_ = d.Get()

	c.Set(7)
	if d.Stale() {
		t.Error("equal write should not invalidate")
	}

	c.Set(8)
	if !d.Stale() {
		t.Error("different write should invalidate")
	}
	if d.Get() != 8 {
		t.Errorf("expected 8, got %d", d.Get())
	}
	if computations != 2 {
		t.Errorf("expected 2 computations, got %d", computations)
	}
}

func TestCellNamed(t *testing.T) {
	g := NewGraph()
	c := NewCell(g, 1).Named("width")

	if c.Name() != "width" {
		t.Errorf("expected name width, got %q", c.Name())
	}
	if c.Graph() != g {
		t.Error("Graph() should return the owning graph")
	}
	if c.ID().IsZero() {
		t.Error("expected non-zero handle")
	}
}

func TestCellConcurrentUpdates(t *testing.T) {
	g := NewGraph()
	c := NewCell(g, 0)
	doubled := Map(c, func(v int) int { return v * 2 })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				c.Update(func(n int) int { return n + 1 })
				_ = doubled.Get()
			}
		}()
	}
	wg.Wait()

	if c.Get() != 4000 {
		t.Errorf("expected 4000, got %d", c.Get())
	}
	if doubled.Get() != 8000 {
		t.Errorf("expected 8000, got %d", doubled.Get())
	}
}
