package reactive

import "testing"

func BenchmarkCellSet(b *testing.B) {
	g := NewGraph()
	c := NewCell(g, 0)
	for i := 0; i < 10; i++ {
		d := Map(c, func(v int) int { return v + 1 })
		_ = d.Get()
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set(i)
	}
}

func BenchmarkDerivedGetFresh(b *testing.B) {
	g := NewGraph()
	c := NewCell(g, 1)
	d := Map(c, func(v int) int { return v * 2 })
	_ = d.Get()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.Get()
	}
}

func BenchmarkDiamondRecompute(b *testing.B) {
	g := NewGraph()
	c := NewCell(g, 1)
	l := Map(c, func(v int) int { return v * 2 })
	r := Map(c, func(v int) int { return v * 3 })
	d := Combine2(l, r, func(x, y int) int { return x + y })

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Set(i)
		_ = d.Get()
	}
}
