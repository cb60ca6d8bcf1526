package world

import "math/rand"

// structureAir marks a template cell as "leave untouched" rather than Air,
// so stamping never clobbers terrain the template doesn't cover.
const structureAir VoxelKind = 255

// Template is a 3D bounding-box stamp: a block of cells that are either
// a solid kind or structureAir (skipped on stamp). Cells are indexed
// [y][z][x], with (0,0,0) resting on the surface cell (spec §4.I).
type Template struct {
	Name          string
	SizeX, SizeY, SizeZ int
	Cells         [][][]VoxelKind
}

func newTemplate(name string, sizeX, sizeY, sizeZ int, fill func(x, y, z int) VoxelKind) Template {
	cells := make([][][]VoxelKind, sizeY)
	for y := 0; y < sizeY; y++ {
		cells[y] = make([][]VoxelKind, sizeZ)
		for z := 0; z < sizeZ; z++ {
			cells[y][z] = make([]VoxelKind, sizeX)
			for x := 0; x < sizeX; x++ {
				cells[y][z][x] = fill(x, y, z)
			}
		}
	}
	return Template{Name: name, SizeX: sizeX, SizeY: sizeY, SizeZ: sizeZ, Cells: cells}
}

// templateSmallTree, templateLargeTree, templateRock, templateFlower and
// templateCactus are the five stamps named in spec §4.I.
var (
	templateSmallTree = newTemplate("small_tree", 3, 5, 3, func(x, y, z int) VoxelKind {
		if x == 1 && z == 1 && y <= 2 {
			return Wood
		}
		if y >= 2 {
			return Leaves
		}
		return structureAir
	})
	templateLargeTree = newTemplate("large_tree", 5, 8, 5, func(x, y, z int) VoxelKind {
		if x == 2 && z == 2 && y <= 4 {
			return Wood
		}
		if y >= 3 {
			dx, dz := x-2, z-2
			if dx*dx+dz*dz <= 4 {
				return Leaves
			}
		}
		return structureAir
	})
	templateRock = newTemplate("rock", 3, 2, 3, func(x, y, z int) VoxelKind {
		dx, dz := x-1, z-1
		if dx*dx+dz*dz <= 1 {
			return Stone
		}
		return structureAir
	})
	templateFlower = newTemplate("flower", 1, 1, 1, func(x, y, z int) VoxelKind {
		return Grass
	})
	templateCactus = newTemplate("cactus", 1, 3, 1, func(x, y, z int) VoxelKind {
		return Sand
	})
)

// validStructuresByBiome lists the templates each biome may place.
// Biomes not present here place no structures.
var validStructuresByBiome = map[string][]Template{
	"Plains":  {templateSmallTree, templateFlower},
	"Forest":  {templateSmallTree, templateLargeTree, templateFlower},
	"Taiga":   {templateSmallTree},
	"Desert":  {templateCactus},
	"Mountains": {templateRock},
}

// decorationTokens maps a biome name to the loose per-column decoration
// voxel its 5% decoration pass may scatter (spec §4.I, supplemented from
// the original source's concrete per-biome token table).
var decorationTokens = map[string]VoxelKind{
	"Plains":    Grass,
	"Forest":    Grass,
	"Desert":    Sand,
	"Taiga":     Snow,
	"Tundra":    Snow,
	"Mountains": Stone,
	"Swamp":     Dirt,
}

// StructureGenerator stamps templates and scatters decorations across
// biome surfaces (spec §4.I).
type StructureGenerator struct {
	biomes *BiomeGenerator
	seed   int64
}

// NewStructureGenerator builds a structure generator sharing the world's
// biome classifier so placement and decoration agree with the terrain
// the biome pass already reskinned.
func NewStructureGenerator(biomes *BiomeGenerator, seed int64) *StructureGenerator {
	return &StructureGenerator{biomes: biomes, seed: seed}
}

// Generate runs the structure stamp pass and the secondary decoration
// pass over c.
func (g *StructureGenerator) Generate(c *Chunk) {
	size := int(c.Size)
	height := int(c.Height)
	chunkBaseY := int(c.Y) * height
	worldX := int(c.X) * size
	worldZ := int(c.Z) * size
	coord := c.Coord()

	c.mu.Lock()
	defer c.mu.Unlock()

	for bx := 0; bx < size; bx += 4 {
		for bz := 0; bz < size; bz += 4 {
			ratio, temperature, humidity, biomeName := g.classifyAt(c, bx, bz, chunkBaseY)
			_ = ratio
			_ = temperature
			_ = humidity
			candidates := validStructuresByBiome[biomeName]
			if len(candidates) == 0 {
				continue
			}

			rng := rand.New(rand.NewSource(chunkSeed(g.seed, coord, structureSalt(biomeName, worldX+bx, worldZ+bz))))
			if rng.Float64() >= 0.10 {
				continue
			}
			tmpl := candidates[rng.Intn(len(candidates))]
			g.tryStamp(c, tmpl, bx, bz)
		}
	}

	g.decorate(c, worldX, worldZ, chunkBaseY)
}

func structureSalt(biomeName string, wx, wz int) int64 {
	h := int64(0x9E3779B9)
	for _, r := range biomeName {
		h = h*31 + int64(r)
	}
	return h ^ int64(wx)<<16 ^ int64(wz)
}

// classifyAt returns the height ratio, temperature, humidity, and biome
// name sampled at the column's surface (or zeros and an empty biome name
// if the column has no surface yet).
func (g *StructureGenerator) classifyAt(c *Chunk, lx, lz int, chunkBaseY int) (float64, float64, float64, string) {
	surfaceLocal := surfaceHeight(c, lx, lz)
	if surfaceLocal < 0 {
		return 0, 0, 0, ""
	}
	ratio := float64(chunkBaseY+surfaceLocal) / float64(g.biomes.worldHeight)
	worldX := int(c.X)*int(c.Size) + lx
	worldZ := int(c.Z)*int(c.Size) + lz
	temperature, humidity := g.biomes.ClimateAt(worldX, worldZ)
	return ratio, temperature, humidity, biomeFor(ratio, temperature, humidity).Name
}

// tryStamp validates and, if valid, stamps tmpl with its base resting on
// the surface at (lx, lz).
func (g *StructureGenerator) tryStamp(c *Chunk, tmpl Template, lx, lz int) {
	size := int(c.Size)
	height := int(c.Height)
	surfaceLocal := surfaceHeight(c, lx, lz)
	if surfaceLocal < 0 {
		return
	}
	baseY := surfaceLocal + 1

	// Bounding box must fit within the chunk.
	if lx+tmpl.SizeX > size || lz+tmpl.SizeZ > size || baseY+tmpl.SizeY > height {
		return
	}

	// Every footprint cell at y-1 must be non-Air and non-Water.
	for dz := 0; dz < tmpl.SizeZ; dz++ {
		for dx := 0; dx < tmpl.SizeX; dx++ {
			under := c.getVoxelLocked(lx+dx, baseY-1, lz+dz)
			if under == Air || under == Water {
				return
			}
		}
	}

	for dy := 0; dy < tmpl.SizeY; dy++ {
		for dz := 0; dz < tmpl.SizeZ; dz++ {
			for dx := 0; dx < tmpl.SizeX; dx++ {
				kind := tmpl.Cells[dy][dz][dx]
				if kind == structureAir {
					continue
				}
				c.setVoxelLocked(lx+dx, baseY+dy, lz+dz, kind)
			}
		}
	}
}

// decorate runs the 5%-per-column secondary decoration pass, scattering
// single loose voxels on top of the surface.
func (g *StructureGenerator) decorate(c *Chunk, worldX, worldZ, chunkBaseY int) {
	size := int(c.Size)
	coord := c.Coord()
	for lx := 0; lx < size; lx++ {
		for lz := 0; lz < size; lz++ {
			surfaceLocal := surfaceHeight(c, lx, lz)
			if surfaceLocal < 0 || surfaceLocal+1 >= int(c.Height) {
				continue
			}
			ratio := float64(chunkBaseY+surfaceLocal) / float64(g.biomes.worldHeight)
			temperature, humidity := g.biomes.ClimateAt(worldX+lx, worldZ+lz)
			biome := biomeFor(ratio, temperature, humidity)
			token, ok := decorationTokens[biome.Name]
			if !ok {
				continue
			}

			rng := rand.New(rand.NewSource(chunkSeed(g.seed, coord, structureSalt("decor:"+biome.Name, worldX+lx, worldZ+lz))))
			if rng.Float64() >= 0.05 {
				continue
			}
			if c.getVoxelLocked(lx, surfaceLocal+1, lz) == Air {
				c.setVoxelLocked(lx, surfaceLocal+1, lz, token)
			}
		}
	}
}
