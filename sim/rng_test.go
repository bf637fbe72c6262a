package sim

import (
	"testing"
)

func TestRandomSource_Deterministic(t *testing.T) {
	// GIVEN two sources with the same seed
	r1 := NewRandomSource(42)
	r2 := NewRandomSource(42)

	// THEN they replay the same draws across all variate kinds
	for i := 0; i < 100; i++ {
		if u1, u2 := r1.Uniform(600, 3600), r2.Uniform(600, 3600); u1 != u2 {
			t.Fatalf("draw %d: Uniform diverged: %v vs %v", i, u1, u2)
		}
		if e1, e2 := r1.Exponential(600), r2.Exponential(600); e1 != e2 {
			t.Fatalf("draw %d: Exponential diverged: %v vs %v", i, e1, e2)
		}
		if n1, n2 := r1.Intn(12), r2.Intn(12); n1 != n2 {
			t.Fatalf("draw %d: Intn diverged: %d vs %d", i, n1, n2)
		}
	}
}

func TestRandomSource_DifferentSeedsDiverge(t *testing.T) {
	r1 := NewRandomSource(1)
	r2 := NewRandomSource(2)

	diverged := false
	for i := 0; i < 10; i++ {
		if r1.Uniform(0, 1) != r2.Uniform(0, 1) {
			diverged = true
			break
		}
	}
	if !diverged {
		t.Error("different seeds produced identical draws")
	}
}

func TestRandomSource_UniformBounds(t *testing.T) {
	r := NewRandomSource(7)
	for i := 0; i < 1000; i++ {
		v := r.Uniform(600, 3600)
		if v < 600 || v >= 3600 {
			t.Fatalf("Uniform(600, 3600) = %v out of range", v)
		}
	}
}

func TestRandomSource_ExponentialPositive(t *testing.T) {
	r := NewRandomSource(7)
	for i := 0; i < 1000; i++ {
		if v := r.Exponential(600); v < 0 {
			t.Fatalf("Exponential(600) = %v negative", v)
		}
	}
}

func TestRandomSource_PickCoversCatalog(t *testing.T) {
	r := NewRandomSource(7)
	catalog := DefaultNetwork().Products

	seen := make(map[Product]bool)
	for i := 0; i < 2000; i++ {
		seen[r.PickProduct(catalog)] = true
	}
	if len(seen) != len(catalog) {
		t.Errorf("uniform choice over %d products reached only %d", len(catalog), len(seen))
	}
}
