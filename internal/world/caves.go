package world

import (
	"math/rand"
)

// CaveGenerator carves rounded, connected cave systems via thresholded 3D
// noise refined by cellular automata, then scatters ore veins through the
// remaining stone (spec §4.G).
type CaveGenerator struct {
	noise          *NoiseGenerator
	caveIterations int
	oreDensity     float64
	seed           int64
}

// NewCaveGenerator builds a cave+ore generator. noise is the second of
// the three independent generators (seed+1, spec §4.A).
func NewCaveGenerator(noise *NoiseGenerator, caveIterations int, oreDensity float64, seed int64) *CaveGenerator {
	return &CaveGenerator{noise: noise, caveIterations: caveIterations, oreDensity: oreDensity, seed: seed}
}

// Generate carves caves and scatters ores into c.
func (g *CaveGenerator) Generate(c *Chunk) {
	g.carveCaves(c)
	g.scatterOres(c)
}

func (g *CaveGenerator) carveCaves(c *Chunk) {
	size := int(c.Size)
	height := int(c.Height)
	worldX := int(c.X) * size
	worldY := int(c.Y) * height
	worldZ := int(c.Z) * size

	caveMap := make([]bool, size*height*size)
	idx := func(x, y, z int) int { return y*size*size + z*size + x }

	for y := 0; y < height; y++ {
		for z := 0; z < size; z++ {
			for x := 0; x < size; x++ {
				n := g.noise.Fractal3D(float64(worldX+x), float64(worldY+y), float64(worldZ+z), 0.05, 1, 0.5, 2.0)
				n = (n + 1.0) / 2.0 // normalize [-1,1] -> [0,1]
				caveMap[idx(x, y, z)] = n > 0.4
			}
		}
	}

	for iter := 0; iter < g.caveIterations; iter++ {
		next := make([]bool, len(caveMap))
		copy(next, caveMap)
		for y := 1; y < height-1; y++ {
			for z := 1; z < size-1; z++ {
				for x := 1; x < size-1; x++ {
					neighbors := 0
					for dy := -1; dy <= 1; dy++ {
						for dz := -1; dz <= 1; dz++ {
							for dx := -1; dx <= 1; dx++ {
								if dx == 0 && dy == 0 && dz == 0 {
									continue
								}
								if caveMap[idx(x+dx, y+dy, z+dz)] {
									neighbors++
								}
							}
						}
					}
					cur := caveMap[idx(x, y, z)]
					var isCave bool
					if cur {
						isCave = neighbors >= 5 && neighbors <= 18
					} else {
						isCave = neighbors >= 12
					}
					next[idx(x, y, z)] = isCave
				}
			}
		}
		caveMap = next
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for y := 0; y < height; y++ {
		for z := 0; z < size; z++ {
			for x := 0; x < size; x++ {
				if !caveMap[idx(x, y, z)] {
					continue
				}
				cur := c.getVoxelLocked(x, y, z)
				if cur == Stone || cur == Dirt {
					c.setVoxelLocked(x, y, z, Air)
				}
			}
		}
	}
}

// oreVeinDirections are the 6 axis-aligned steps a vein's random walk may take.
var oreVeinDirections = [6][3]int{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

func (g *CaveGenerator) scatterOres(c *Chunk) {
	size := int(c.Size)
	height := int(c.Height)
	volume := size * size * height
	veins := int(float64(volume) * g.oreDensity / 1000.0)
	if veins <= 0 {
		return
	}

	rng := rand.New(rand.NewSource(chunkSeed(g.seed, c.Coord(), 0xA5)))

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := 0; i < veins; i++ {
		x := rng.Intn(size)
		z := rng.Intn(size)
		y, kind := g.pickDepthBandAndKind(rng, height)

		if c.getVoxelLocked(x, y, z) != Stone {
			continue
		}
		c.setVoxelLocked(x, y, z, kind)

		walkLen := 2 + rng.Intn(5) // 2..6
		cx, cy, cz := x, y, z
		for s := 0; s < walkLen; s++ {
			d := oreVeinDirections[rng.Intn(len(oreVeinDirections))]
			cx, cy, cz = cx+d[0], cy+d[1], cz+d[2]
			if cx < 0 || cx >= size || cy < 0 || cy >= height || cz < 0 || cz >= size {
				continue
			}
			if c.getVoxelLocked(cx, cy, cz) == Stone {
				c.setVoxelLocked(cx, cy, cz, kind)
			}
			// Non-stone steps are skipped without terminating the walk.
		}
	}
}

// pickDepthBandAndKind rolls one of three depth bands (deep, mid, upper)
// and returns a y coordinate within it plus the ore kind that band yields.
func (g *CaveGenerator) pickDepthBandAndKind(rng *rand.Rand, height int) (int, VoxelKind) {
	band := rng.Intn(3)
	switch band {
	case 0: // deep
		y := rng.Intn(max(1, height/4))
		roll := rng.Float64()
		switch {
		case roll < 0.03:
			return y, Diamond
		case roll < 0.08:
			return y, Gold
		default:
			return y, Iron
		}
	case 1: // mid
		y := height/4 + rng.Intn(max(1, height/4))
		if rng.Float64() < 0.5 {
			return y, Iron
		}
		return y, Coal
	default: // upper
		y := height/2 + rng.Intn(max(1, height/2))
		return y, Coal
	}
}

// chunkSeed derives a deterministic PRNG seed from the world seed, a
// chunk coordinate, and a per-generator salt so independent generators
// (ores, structures, decorations) never share a stream.
func chunkSeed(worldSeed int64, coord ChunkCoord, salt int64) int64 {
	h := uint64(worldSeed) ^ uint64(salt)*0x9E3779B97F4A7C15
	h = (h ^ uint64(coord.X)) * 0xBF58476D1CE4E5B9
	h = (h ^ uint64(coord.Y)<<21) * 0x94D049BB133111EB
	h = h ^ uint64(coord.Z)<<42
	h ^= h >> 33
	return int64(h)
}
