package world

import (
	"math"
	"math/rand"
)

// permTableSize is the permutation table length: 256 shuffled values
// duplicated so lookups never need to wrap.
const permTableSize = 512

// gradients2D are the 8 directions used for 2D lattice gradients: the
// four axis vectors and the four unnormalized diagonals.
var gradients2D = [8][2]float64{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
}

// gradients3D are the 12 classic Perlin edge-midpoint gradients for 3D noise.
var gradients3D = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// NoiseGenerator produces deterministic gradient noise from a 32-bit seed.
// Once constructed it is immutable and safe for concurrent use by
// multiple goroutines, since its permutation table is never mutated
// after New returns.
type NoiseGenerator struct {
	perm [permTableSize]int
}

// New builds a gradient-noise generator for the given seed. The
// permutation table is a shuffle of 0..255 driven by a seeded PRNG and
// duplicated across the second half of the table.
func New(seed int32) *NoiseGenerator {
	n := &NoiseGenerator{}
	rng := rand.New(rand.NewSource(int64(seed)))
	var p [256]int
	for i := range p {
		p[i] = i
	}
	rng.Shuffle(256, func(i, j int) { p[i], p[j] = p[j], p[i] })
	for i := 0; i < permTableSize; i++ {
		n.perm[i] = p[i%256]
	}
	return n
}

func fade(t float64) float64 { return t * t * (3 - 2*t) }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func (n *NoiseGenerator) hash2(xi, zi int) int {
	return n.perm[(n.perm[xi&255]+zi)&255]
}

func (n *NoiseGenerator) hash3(xi, yi, zi int) int {
	return n.perm[(n.perm[(n.perm[xi&255]+yi)&255]+zi)&255]
}

func dot2(g [2]float64, x, z float64) float64 { return g[0]*x + g[1]*z }
func dot3(g [3]float64, x, y, z float64) float64 { return g[0]*x + g[1]*y + g[2]*z }

// Noise2D returns lattice-gradient noise at (x, z), roughly in [-1, 1].
func (n *NoiseGenerator) Noise2D(x, z float64) float64 {
	x0 := math.Floor(x)
	z0 := math.Floor(z)
	xi, zi := int(x0), int(z0)
	fx, fz := x-x0, z-z0

	g00 := gradients2D[n.hash2(xi, zi)%8]
	g10 := gradients2D[n.hash2(xi+1, zi)%8]
	g01 := gradients2D[n.hash2(xi, zi+1)%8]
	g11 := gradients2D[n.hash2(xi+1, zi+1)%8]

	n00 := dot2(g00, fx, fz)
	n10 := dot2(g10, fx-1, fz)
	n01 := dot2(g01, fx, fz-1)
	n11 := dot2(g11, fx-1, fz-1)

	u := fade(fx)
	v := fade(fz)
	nx0 := lerp(n00, n10, u)
	nx1 := lerp(n01, n11, u)
	return lerp(nx0, nx1, v)
}

// Noise3D returns lattice-gradient noise at (x, y, z), roughly in [-1, 1].
func (n *NoiseGenerator) Noise3D(x, y, z float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	z0 := math.Floor(z)
	xi, yi, zi := int(x0), int(y0), int(z0)
	fx, fy, fz := x-x0, y-y0, z-z0

	var corners [8]float64
	idx := 0
	for _, dy := range [2]int{0, 1} {
		for _, dz := range [2]int{0, 1} {
			for _, dx := range [2]int{0, 1} {
				g := gradients3D[n.hash3(xi+dx, yi+dy, zi+dz)%12]
				corners[idx] = dot3(g, fx-float64(dx), fy-float64(dy), fz-float64(dz))
				idx++
			}
		}
	}

	u := fade(fx)
	v := fade(fy)
	w := fade(fz)

	// corners layout: [y][z][x]
	x00 := lerp(corners[0], corners[1], u)
	x10 := lerp(corners[2], corners[3], u)
	x01 := lerp(corners[4], corners[5], u)
	x11 := lerp(corners[6], corners[7], u)

	y0i := lerp(x00, x10, w)
	y1i := lerp(x01, x11, w)
	return lerp(y0i, y1i, v)
}

// Fractal2D sums `octaves` layers of Noise2D, each layer multiplying
// frequency by lacunarity and amplitude by persistence, normalized by
// the summed amplitude.
func (n *NoiseGenerator) Fractal2D(x, z float64, scale float64, octaves int, persistence, lacunarity float64) float64 {
	amplitude := 1.0
	frequency := scale
	sum := 0.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		sum += n.Noise2D(x*frequency, z*frequency) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// Fractal3D is the 3D analogue of Fractal2D.
func (n *NoiseGenerator) Fractal3D(x, y, z float64, scale float64, octaves int, persistence, lacunarity float64) float64 {
	amplitude := 1.0
	frequency := scale
	sum := 0.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		sum += n.Noise3D(x*frequency, y*frequency, z*frequency) * amplitude
		norm += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}
