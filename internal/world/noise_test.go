package world

import "testing"

func TestNoiseIsDeterministicForSameSeed(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 20; i++ {
		x, z := float64(i)*0.37, float64(i)*1.91
		if a.Noise2D(x, z) != b.Noise2D(x, z) {
			t.Fatalf("same seed produced different Noise2D at (%v,%v)", x, z)
		}
		if a.Noise3D(x, z, x-z) != b.Noise3D(x, z, x-z) {
			t.Fatalf("same seed produced different Noise3D at (%v,%v)", x, z)
		}
	}
}

func TestNoiseDiffersAcrossSeeds(t *testing.T) {
	a := New(1)
	b := New(2)
	differed := false
	for i := 0; i < 50; i++ {
		x, z := float64(i)*0.53, float64(i)*2.17
		if a.Noise2D(x, z) != b.Noise2D(x, z) {
			differed = true
			break
		}
	}
	if !differed {
		t.Fatalf("expected different seeds to diverge somewhere in 50 samples")
	}
}

func TestNoiseIsBounded(t *testing.T) {
	n := New(7)
	for i := 0; i < 200; i++ {
		x, z := float64(i)*0.13, float64(i)*0.29
		v := n.Noise2D(x, z)
		if v < -1.5 || v > 1.5 {
			t.Fatalf("Noise2D(%v,%v) = %v out of expected range", x, z, v)
		}
	}
}

func TestFractal2DNormalizedRange(t *testing.T) {
	n := New(99)
	for i := 0; i < 100; i++ {
		x, z := float64(i)*3.1, float64(i)*1.7
		v := n.Fractal2D(x, z, 0.02, 4, 0.5, 2.0)
		if v < -1.5 || v > 1.5 {
			t.Fatalf("Fractal2D out of expected normalized range: %v", v)
		}
	}
}

func TestNoiseLatticePointsAreZero(t *testing.T) {
	// Gradient noise is defined to vanish exactly at integer lattice points.
	n := New(5)
	for xi := -3; xi <= 3; xi++ {
		for zi := -3; zi <= 3; zi++ {
			v := n.Noise2D(float64(xi), float64(zi))
			if v < -1e-9 || v > 1e-9 {
				t.Fatalf("expected ~0 at lattice point (%d,%d), got %v", xi, zi, v)
			}
		}
	}
}
