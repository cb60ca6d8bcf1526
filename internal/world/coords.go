package world

// WorldPos is an absolute voxel-space position.
type WorldPos struct {
	X, Y, Z int32
}

// floorDivInt32 performs integer division that rounds toward negative
// infinity, so chunk math is consistent for negative coordinates.
func floorDivInt32(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorModInt32 returns a mod b, always in [0, b).
func floorModInt32(a, b int32) int32 {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// worldToChunkPos converts a world position to the coordinate of the
// chunk containing it, per spec §4.D: integer floor division by size
// (X, Z) and height (Y).
func worldToChunkPos(p WorldPos, size, height uint16) ChunkCoord {
	return ChunkCoord{
		X: floorDivInt32(p.X, int32(size)),
		Y: floorDivInt32(p.Y, int32(height)),
		Z: floorDivInt32(p.Z, int32(size)),
	}
}

// worldToLocalPos returns p's local coordinates within its chunk,
// normalized into [0, extent) even for negative world coordinates.
func worldToLocalPos(p WorldPos, size, height uint16) (lx, ly, lz int) {
	lx = int(floorModInt32(p.X, int32(size)))
	ly = int(floorModInt32(p.Y, int32(height)))
	lz = int(floorModInt32(p.Z, int32(size)))
	return
}

// chunkToWorldPos reconstructs the world position from a chunk
// coordinate and a local offset within it.
func chunkToWorldPos(coord ChunkCoord, lx, ly, lz int, size, height uint16) WorldPos {
	return WorldPos{
		X: coord.X*int32(size) + int32(lx),
		Y: coord.Y*int32(height) + int32(ly),
		Z: coord.Z*int32(size) + int32(lz),
	}
}

// spiralOffsets returns the ordered list of chunk-coordinate offsets
// (Y always 0) used to drive generation requests, innermost first
// (spec §4.D): starting with (0,0,0), for each layer L = 1..viewDistance
// it walks the square ring where max(|x|,|z|) = L in the X/Z plane — top
// row left to right, right column top to bottom (excluding the top
// corner), bottom row right to left, left column bottom to top
// (excluding both corners already visited).
func spiralOffsets(viewDistance int) []ChunkCoord {
	offsets := make([]ChunkCoord, 0, (2*viewDistance+1)*(2*viewDistance+1))
	offsets = append(offsets, ChunkCoord{0, 0, 0})

	for l := 1; l <= viewDistance; l++ {
		// Top row: z = -l, x from -l to l (left -> right)
		for x := -l; x <= l; x++ {
			offsets = append(offsets, ChunkCoord{int32(x), 0, int32(-l)})
		}
		// Right column: x = l, z from -l+1 to l (top -> bottom), excluding top corner
		for z := -l + 1; z <= l; z++ {
			offsets = append(offsets, ChunkCoord{int32(l), 0, int32(z)})
		}
		// Bottom row: z = l, x from l-1 down to -l (right -> left), excluding right corner
		for x := l - 1; x >= -l; x-- {
			offsets = append(offsets, ChunkCoord{int32(x), 0, int32(l)})
		}
		// Left column: x = -l, z from l-1 down to -l+1 (bottom -> top), excluding both corners
		for z := l - 1; z >= -l+1; z-- {
			offsets = append(offsets, ChunkCoord{int32(-l), 0, int32(z)})
		}
	}
	return offsets
}
