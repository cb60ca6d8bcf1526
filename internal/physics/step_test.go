package physics

import (
	"testing"

	"mini-mc/internal/workerpool"
	"mini-mc/internal/world"
)

func countKind(c *world.Chunk, size, height int, kind world.VoxelKind) int {
	n := 0
	for y := 0; y < height; y++ {
		for z := 0; z < size; z++ {
			for x := 0; x < size; x++ {
				if c.GetVoxel(x, y, z) == kind {
					n++
				}
			}
		}
	}
	return n
}

func TestGranularFallsThroughAir(t *testing.T) {
	c := world.NewChunk(world.ChunkCoord{}, 4, 8)
	c.SetVoxel(1, 5, 1, world.Sand)

	pool := workerpool.New(1)
	defer pool.Shutdown()
	w := singleChunkWorld(c)

	totalMoved := 0
	for i := 0; i < 10; i++ {
		totalMoved += Step(w, pool)
	}

	if totalMoved == 0 {
		t.Fatalf("expected at least one move, got 0")
	}
	if c.GetVoxel(1, 5, 1) != world.Air {
		t.Fatalf("sand did not vacate its source cell")
	}
	if c.GetVoxel(1, 0, 1) != world.Sand {
		t.Fatalf("sand did not settle at the floor after repeated steps")
	}
}

func TestGranularSettlesConserveMass(t *testing.T) {
	c := world.NewChunk(world.ChunkCoord{}, 4, 8)
	c.SetVoxel(1, 6, 1, world.Sand)
	c.SetVoxel(2, 6, 2, world.Sand)
	c.SetVoxel(0, 3, 0, world.Stone)

	before := countKind(c, 4, 8, world.Sand)

	pool := workerpool.New(1)
	defer pool.Shutdown()
	w := singleChunkWorld(c)
	for i := 0; i < 20; i++ {
		Step(w, pool)
	}

	after := countKind(c, 4, 8, world.Sand)
	if before != after {
		t.Fatalf("sand count changed from %d to %d, mass not conserved", before, after)
	}
}

func TestFluidSpreadsMonotonically(t *testing.T) {
	c := world.NewChunk(world.ChunkCoord{}, 4, 4)
	// Floor at y=0 is solid stone; a water source sits at y=3.
	for x := 0; x < 4; x++ {
		for z := 0; z < 4; z++ {
			c.SetVoxel(x, 0, z, world.Stone)
		}
	}
	c.SetVoxel(1, 3, 1, world.Water)

	pool := workerpool.New(1)
	defer pool.Shutdown()
	w := singleChunkWorld(c)

	last := 0
	for i := 0; i < 5; i++ {
		Step(w, pool)
		n := countKind(c, 4, 4, world.Water)
		if n < last {
			t.Fatalf("water voxel count decreased between steps: %d -> %d", last, n)
		}
		last = n
	}
	if last != 1 {
		t.Fatalf("expected exactly one water voxel to persist (no duplication), got %d", last)
	}
}

func TestStepIgnoresSolidVoxels(t *testing.T) {
	c := world.NewChunk(world.ChunkCoord{}, 2, 2)
	c.SetVoxel(0, 1, 0, world.Stone)
	c.SetVoxel(1, 0, 1, world.Stone)

	pool := workerpool.New(1)
	defer pool.Shutdown()
	moved := Step(singleChunkWorld(c), pool)

	if moved != 0 {
		t.Fatalf("expected stone to never move, got %d moves", moved)
	}
}

// singleChunkWorld builds a minimal World exposing exactly one resident
// chunk, for exercising Step without going through full world streaming.
func singleChunkWorld(c *world.Chunk) *world.World {
	return world.NewTestWorldWithChunk(c)
}
