// Package physics runs the per-tick cellular simulation over resident
// chunks: granular voxels fall and displace through fluids, fluid
// voxels fall and spread diagonally downward (spec §4.J).
package physics

import (
	"mini-mc/internal/profiling"
	"mini-mc/internal/workerpool"
	"mini-mc/internal/world"
)

// Step scans every resident chunk bottom-up and applies one tick of the
// falling-sand rule, submitting one task per chunk to pool so chunks
// settle in parallel, then blocking until all of them finish (spec
// §4.J/§4.K's physics-step barrier). Returns the total number of voxel
// moves applied across every chunk.
func Step(w *world.World, pool *workerpool.Pool) int {
	defer profiling.Track("physics.Step")()

	chunks := w.GetActiveChunks()
	futures := make([]*workerpool.Future[int], 0, len(chunks))
	for _, c := range chunks {
		c := c
		future, err := workerpool.Submit(pool, func() (int, error) {
			return stepChunk(c), nil
		})
		if err != nil {
			continue
		}
		futures = append(futures, future)
	}

	total := 0
	for _, f := range futures {
		n, _ := f.Wait()
		total += n
	}
	return total
}

// stepChunk applies one falling-sand pass to c in isolation, treating
// its own borders as solid walls (cross-chunk flow is an explicit
// approximation, spec §4.J Non-goals). Locks c for its whole duration
// since every read and write in the scan must observe the same frame.
func stepChunk(c *world.Chunk) int {
	size := int(c.Size)
	height := int(c.Height)
	moved := 0

	c.Lock()
	defer c.Unlock()

	// Bottom-up: a voxel that falls this tick must not be re-visited
	// lower down in the same pass.
	for ly := 1; ly < height; ly++ {
		for lx := 0; lx < size; lx++ {
			for lz := 0; lz < size; lz++ {
				kind := c.GetVoxelLocked(lx, ly, lz)
				switch {
				case kind.IsGranular():
					if stepGranular(c, lx, ly, lz, kind, size, height) {
						moved++
					}
				case kind.IsFluid():
					if stepFluid(c, lx, ly, lz, kind, size, height) {
						moved++
					}
				}
			}
		}
	}
	return moved
}

// stepGranular lets a granular voxel fall straight down through Air.
// When the cell below holds a fluid, the granular voxel can only
// displace it if the fluid has somewhere to go: one of the fluid's own
// horizontal neighbors (at y-1) must be open Air, in which case the
// fluid slides sideways into that slot and the granular voxel drops
// into the vacated cell. A granular voxel never spreads horizontally
// around a solid obstacle (spec §4.J).
func stepGranular(c *world.Chunk, x, y, z int, kind world.VoxelKind, size, height int) bool {
	if y-1 < 0 {
		return false
	}
	below := c.GetVoxelLocked(x, y-1, z)
	if below == world.Air {
		c.SetVoxelLocked(x, y, z, world.Air)
		c.SetVoxelLocked(x, y-1, z, kind)
		return true
	}
	if below.IsFluid() {
		for _, d := range diagonalOffsets {
			nx, nz := x+d[0], z+d[1]
			if nx < 0 || nx >= size || nz < 0 || nz >= size {
				continue
			}
			if c.GetVoxelLocked(nx, y-1, nz) == world.Air {
				c.SetVoxelLocked(nx, y-1, nz, below)
				c.SetVoxelLocked(x, y, z, world.Air)
				c.SetVoxelLocked(x, y-1, z, kind)
				return true
			}
		}
		return false
	}
	return false
}

// stepFluid lets a fluid voxel fall straight down through Air, or
// otherwise spread to every diagonally-down neighbor that is open at
// both its own level and y-1. All qualifying directions fire in the
// same tick, deliberately spreading the fluid, and the source cell is
// cleared once after every direction has been evaluated (spec §4.J).
func stepFluid(c *world.Chunk, x, y, z int, kind world.VoxelKind, size, height int) bool {
	if y-1 < 0 {
		return false
	}
	if c.GetVoxelLocked(x, y-1, z) == world.Air {
		c.SetVoxelLocked(x, y, z, world.Air)
		c.SetVoxelLocked(x, y-1, z, kind)
		return true
	}

	moved := false
	for _, d := range diagonalOffsets {
		nx, nz := x+d[0], z+d[1]
		if nx < 0 || nx >= size || nz < 0 || nz >= size {
			continue
		}
		if c.GetVoxelLocked(nx, y, nz) == world.Air && c.GetVoxelLocked(nx, y-1, nz) == world.Air {
			c.SetVoxelLocked(nx, y-1, nz, kind)
			moved = true
		}
	}
	if moved {
		c.SetVoxelLocked(x, y, z, world.Air)
	}
	return moved
}

var diagonalOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
