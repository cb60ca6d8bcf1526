package world

// Biome describes a climate classification and the surface replacement
// it drives (spec §4.H).
type Biome struct {
	Name                     string
	HeightMin, HeightMax     float64
	TempMin, TempMax         float64
	HumidityMin, HumidityMax float64
	Surface, Sub, Underwater VoxelKind
	SurfaceDepth, SubDepth   int
}

func (b Biome) matches(h, t, hum float64) bool {
	return h >= b.HeightMin && h <= b.HeightMax &&
		t >= b.TempMin && t <= b.TempMax &&
		hum >= b.HumidityMin && hum <= b.HumidityMax
}

// biomeTable is the fixed lookup table of spec §4.H. The first matching
// entry wins; biomePlainsFallback (the Plains entry) is the fallback.
var biomeTable = []Biome{
	{Name: "Ocean", HeightMin: 0.0, HeightMax: 0.3, TempMin: 0.0, TempMax: 1.0, HumidityMin: 0.3, HumidityMax: 1.0,
		Surface: Sand, Sub: Sand, Underwater: Sand, SurfaceDepth: 1, SubDepth: 3},
	{Name: "Plains", HeightMin: 0.3, HeightMax: 0.5, TempMin: 0.3, TempMax: 0.7, HumidityMin: 0.3, HumidityMax: 0.7,
		Surface: Grass, Sub: Dirt, Underwater: Sand, SurfaceDepth: 1, SubDepth: 3},
	{Name: "Desert", HeightMin: 0.3, HeightMax: 0.5, TempMin: 0.7, TempMax: 1.0, HumidityMin: 0.0, HumidityMax: 0.3,
		Surface: Sand, Sub: Sand, Underwater: Sand, SurfaceDepth: 3, SubDepth: 5},
	{Name: "Forest", HeightMin: 0.3, HeightMax: 0.6, TempMin: 0.3, TempMax: 0.7, HumidityMin: 0.7, HumidityMax: 1.0,
		Surface: Grass, Sub: Dirt, Underwater: Dirt, SurfaceDepth: 1, SubDepth: 4},
	{Name: "Mountains", HeightMin: 0.6, HeightMax: 1.0, TempMin: 0.2, TempMax: 0.7, HumidityMin: 0.3, HumidityMax: 0.8,
		Surface: Stone, Sub: Stone, Underwater: Stone, SurfaceDepth: 2, SubDepth: 5},
	{Name: "Taiga", HeightMin: 0.3, HeightMax: 0.6, TempMin: 0.0, TempMax: 0.3, HumidityMin: 0.5, HumidityMax: 1.0,
		Surface: Snow, Sub: Dirt, Underwater: Dirt, SurfaceDepth: 1, SubDepth: 3},
	{Name: "Swamp", HeightMin: 0.3, HeightMax: 0.4, TempMin: 0.5, TempMax: 0.8, HumidityMin: 0.7, HumidityMax: 1.0,
		Surface: Dirt, Sub: Dirt, Underwater: Dirt, SurfaceDepth: 2, SubDepth: 4},
	{Name: "Tundra", HeightMin: 0.3, HeightMax: 0.5, TempMin: 0.0, TempMax: 0.2, HumidityMin: 0.0, HumidityMax: 0.5,
		Surface: Snow, Sub: Dirt, Underwater: Dirt, SurfaceDepth: 1, SubDepth: 2},
}

var biomePlainsFallback = biomeTable[1]

// BiomeGenerator classifies columns by temperature/humidity and
// height, then replaces the surface/subsurface voxels accordingly
// (spec §4.H).
type BiomeGenerator struct {
	tempNoise, humidityNoise *NoiseGenerator
	temperatureScale         float64
	humidityScale            float64
	worldHeight              int
}

// NewBiomeGenerator builds a biome generator. noise is the third of the
// three independent generators (seed+2, spec §4.A); temperature and
// humidity are both sampled from it, humidity offset by +500 so the two
// fields decorrelate.
func NewBiomeGenerator(noise *NoiseGenerator, temperatureScale, humidityScale float64, worldHeight int) *BiomeGenerator {
	return &BiomeGenerator{
		tempNoise:        noise,
		humidityNoise:    noise,
		temperatureScale: temperatureScale,
		humidityScale:    humidityScale,
		worldHeight:      worldHeight,
	}
}

func normalize(n float64) float64 {
	v := (n + 1.0) / 2.0
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

// ClimateAt returns the normalized [0,1] temperature and humidity at a
// world (x,z) column.
func (g *BiomeGenerator) ClimateAt(worldX, worldZ int) (temperature, humidity float64) {
	x, z := float64(worldX), float64(worldZ)
	t := g.tempNoise.Fractal2D(x, z, g.temperatureScale, 4, 0.5, 2.0)
	h := g.humidityNoise.Fractal2D(x+500, z+500, g.humidityScale, 4, 0.5, 2.0)
	return normalize(t), normalize(h)
}

// biomeFor picks the first entry whose ranges all contain the sample,
// falling back to Plains.
func biomeFor(heightRatio, temperature, humidity float64) Biome {
	for _, b := range biomeTable {
		if b.matches(heightRatio, temperature, humidity) {
			return b
		}
	}
	return biomePlainsFallback
}

// surfaceHeight finds the topmost non-Air, non-Water voxel in column
// (lx, lz), returning its local Y and -1 if the column is empty.
func surfaceHeight(c *Chunk, lx, lz int) int {
	for ly := int(c.Height) - 1; ly >= 0; ly-- {
		v := c.getVoxelLocked(lx, ly, lz)
		if v != Air && v != Water {
			return ly
		}
	}
	return -1
}

// Generate classifies and reskins every column of c.
func (g *BiomeGenerator) Generate(c *Chunk) {
	size := int(c.Size)
	height := int(c.Height)
	chunkBaseY := int(c.Y) * height
	worldX := int(c.X) * size
	worldZ := int(c.Z) * size

	c.mu.Lock()
	defer c.mu.Unlock()

	for lx := 0; lx < size; lx++ {
		for lz := 0; lz < size; lz++ {
			surfaceLocal := surfaceHeight(c, lx, lz)
			if surfaceLocal < 0 {
				continue
			}
			ratio := float64(chunkBaseY+surfaceLocal) / float64(g.worldHeight)
			temperature, humidity := g.ClimateAt(worldX+lx, worldZ+lz)
			biome := biomeFor(ratio, temperature, humidity)

			hasWaterAbove := surfaceLocal+1 < height && c.getVoxelLocked(lx, surfaceLocal+1, lz) == Water

			for depth := 0; depth < biome.SubDepth; depth++ {
				ly := surfaceLocal - depth
				if ly < 0 {
					break
				}
				if depth < biome.SurfaceDepth {
					if hasWaterAbove {
						c.setVoxelLocked(lx, ly, lz, biome.Underwater)
					} else {
						c.setVoxelLocked(lx, ly, lz, biome.Surface)
					}
				} else {
					c.setVoxelLocked(lx, ly, lz, biome.Sub)
				}
			}
		}
	}
}
