package world

import "math"

// TerrainGenerator produces the base heightmap and fills chunk columns
// with stone/dirt/grass/water/air (spec §4.F).
type TerrainGenerator struct {
	noise            *NoiseGenerator
	baseNoiseScale   float64
	detailNoiseScale float64
	worldHeight      int
}

// NewTerrainGenerator builds a terrain generator. noise should be seeded
// with the world seed (the first of the three independent generators,
// spec §4.A).
func NewTerrainGenerator(noise *NoiseGenerator, baseNoiseScale, detailNoiseScale float64, worldHeight int) *TerrainGenerator {
	return &TerrainGenerator{
		noise:            noise,
		baseNoiseScale:   baseNoiseScale,
		detailNoiseScale: detailNoiseScale,
		worldHeight:      worldHeight,
	}
}

// Heightmap returns a size x size grid of absolute world heights for the
// given chunk's X/Z origin.
func (g *TerrainGenerator) Heightmap(worldX, worldZ int, size int) [][]int {
	hm := make([][]int, size)
	for lx := 0; lx < size; lx++ {
		hm[lx] = make([]int, size)
		for lz := 0; lz < size; lz++ {
			wx := float64(worldX + lx)
			wz := float64(worldZ + lz)

			base := g.noise.Fractal2D(wx, wz, g.baseNoiseScale, 4, 0.5, 2.0)
			detail := g.noise.Fractal2D(wx, wz, g.detailNoiseScale, 2, 0.5, 2.0) * 0.1

			n := (base + detail + 1.0) / 2.0 // renormalize [-1,1] -> [0,1]
			if n < 0 {
				n = 0
			}
			if n > 1 {
				n = 1
			}
			hm[lx][lz] = g.bandHeight(n)
		}
	}
	return hm
}

// bandHeight maps a normalized height n in [0,1] to an absolute height
// using the five bands of spec §4.F: mountains, hills, plains, shallow,
// ocean, with break points at 0.8/0.6/0.3/0.2. Each band is a closed-form
// ramp over worldHeight, fixed for determinism across releases of this
// save format (spec §9 open question).
func (g *TerrainGenerator) bandHeight(n float64) int {
	H := float64(g.worldHeight)
	var h float64
	switch {
	case n >= 0.8: // mountains: quadratic ramp from 0.7H to H
		t := (n - 0.8) / 0.2
		h = 0.70*H + t*t*0.30*H
	case n >= 0.6: // hills: linear ramp 0.5H..0.7H
		t := (n - 0.6) / 0.2
		h = 0.50*H + t*0.20*H
	case n >= 0.3: // plains: linear ramp 0.35H..0.5H
		t := (n - 0.3) / 0.3
		h = 0.35*H + t*0.15*H
	case n >= 0.2: // shallow: linear ramp 0.30H..0.35H
		t := (n - 0.2) / 0.1
		h = 0.30*H + t*0.05*H
	default: // ocean: quadratic ramp 0.15H..0.30H
		t := n / 0.2
		h = 0.15*H + t*t*0.15*H
	}
	return int(math.Floor(h))
}

// PopulateColumn fills one (x,z) column of chunk c up to height h using
// the stone/dirt/grass/water/air banding of spec §4.F.
func (g *TerrainGenerator) PopulateColumn(c *Chunk, lx, lz, h int) {
	height := int(c.Height)
	chunkBaseY := int(c.Y) * height
	waterLevel := g.worldHeight / 3

	for ly := 0; ly < height; ly++ {
		wy := chunkBaseY + ly
		switch {
		case wy < h-4:
			c.setVoxelLocked(lx, ly, lz, Stone)
		case wy < h-1:
			c.setVoxelLocked(lx, ly, lz, Dirt)
		case wy == h-1:
			c.setVoxelLocked(lx, ly, lz, Grass)
		case wy == h && h < waterLevel:
			c.setVoxelLocked(lx, ly, lz, Water)
		default:
			// Air: leave the cell at its zero value.
		}
	}
}

// Generate populates an entire chunk with terrain per spec §4.F.
func (g *TerrainGenerator) Generate(c *Chunk) {
	size := int(c.Size)
	worldX := int(c.X) * size
	worldZ := int(c.Z) * size
	hm := g.Heightmap(worldX, worldZ, size)

	c.mu.Lock()
	defer c.mu.Unlock()
	for lx := 0; lx < size; lx++ {
		for lz := 0; lz < size; lz++ {
			g.PopulateColumn(c, lx, lz, hm[lx][lz])
		}
	}
}

// HeightAt returns the terrain surface height at a single world (x,z)
// column, computed the same way Heightmap computes it for that column.
func (g *TerrainGenerator) HeightAt(worldX, worldZ int) int {
	base := g.noise.Fractal2D(float64(worldX), float64(worldZ), g.baseNoiseScale, 4, 0.5, 2.0)
	detail := g.noise.Fractal2D(float64(worldX), float64(worldZ), g.detailNoiseScale, 2, 0.5, 2.0) * 0.1
	n := (base + detail + 1.0) / 2.0
	if n < 0 {
		n = 0
	}
	if n > 1 {
		n = 1
	}
	return g.bandHeight(n)
}
