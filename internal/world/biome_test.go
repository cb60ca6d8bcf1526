package world

import "testing"

func TestBiomeForFallsBackToPlains(t *testing.T) {
	// No table entry covers height 0.99 with temp 0.99 and humidity 0.0.
	b := biomeFor(0.99, 0.99, 0.0)
	if b.Name != biomePlainsFallback.Name {
		t.Fatalf("expected fallback to Plains, got %s", b.Name)
	}
}

func TestBiomeForMatchesOcean(t *testing.T) {
	b := biomeFor(0.1, 0.5, 0.9)
	if b.Name != "Ocean" {
		t.Fatalf("expected Ocean, got %s", b.Name)
	}
}

func TestClimateAtIsNormalized(t *testing.T) {
	g := NewBiomeGenerator(New(1), 0.002, 0.002, 256)
	for i := 0; i < 50; i++ {
		temp, hum := g.ClimateAt(i*37, i*91)
		if temp < 0 || temp > 1 || hum < 0 || hum > 1 {
			t.Fatalf("climate out of [0,1]: temp=%v hum=%v", temp, hum)
		}
	}
}

func TestSurfaceHeightFindsTopNonAir(t *testing.T) {
	c := NewChunk(ChunkCoord{}, 4, 10)
	c.SetVoxel(0, 0, 0, Stone)
	c.SetVoxel(0, 3, 0, Stone)
	if got := surfaceHeight(c, 0, 0); got != 3 {
		t.Fatalf("expected surface at y=3, got %d", got)
	}
	if got := surfaceHeight(c, 1, 1); got != -1 {
		t.Fatalf("expected -1 for an empty column, got %d", got)
	}
}

func TestBiomeGenerateReplacesSurfaceAndSub(t *testing.T) {
	c := NewChunk(ChunkCoord{}, 4, 10)
	for y := 0; y <= 5; y++ {
		c.SetVoxel(0, y, 0, Stone)
	}

	g := NewBiomeGenerator(New(1), 0.002, 0.002, 10)
	g.Generate(c)

	top := c.GetVoxel(0, 5, 0)
	if top == Stone {
		t.Fatalf("expected biome pass to replace the surface voxel, still Stone")
	}
	if sub := c.GetVoxel(0, 4, 0); sub == Stone {
		t.Fatalf("expected biome pass to replace the subsurface voxel, still Stone")
	}
}
