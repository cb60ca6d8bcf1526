package world

import (
	"encoding/binary"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkCoord is a unique identifier for a chunk based on its chunk-space
// position.
type ChunkCoord struct {
	X, Y, Z int32
}

// chunkHeaderSize is the fixed byte length of everything in the
// serialized format ahead of the palette bytes: 3 int32 + 2 uint16.
const chunkHeaderSize = 12 + 2 + 2

// Chunk is a fixed-size size x height x size region of the world.
type Chunk struct {
	mu sync.Mutex

	X, Y, Z int32
	Size    uint16
	Height  uint16

	palette *Palette
	voxels  []byte // one byte per cell, indexes into palette

	generated bool
	dirty     bool
}

// NewChunk constructs a chunk at position with the given size/height,
// voxel array zeroed (Air) and palette holding only Air.
func NewChunk(pos ChunkCoord, size, height uint16) *Chunk {
	return &Chunk{
		X: pos.X, Y: pos.Y, Z: pos.Z,
		Size:    size,
		Height:  height,
		palette: NewPalette(),
		voxels:  make([]byte, int(size)*int(size)*int(height)),
	}
}

// Coord returns the chunk's coordinate.
func (c *Chunk) Coord() ChunkCoord { return ChunkCoord{c.X, c.Y, c.Z} }

func (c *Chunk) index(x, y, z int) int {
	size := int(c.Size)
	return y*size*size + z*size + x
}

func (c *Chunk) inBounds(x, y, z int) bool {
	return x >= 0 && x < int(c.Size) &&
		y >= 0 && y < int(c.Height) &&
		z >= 0 && z < int(c.Size)
}

// GetVoxel returns the voxel kind at local (x,y,z). Out-of-bounds reads
// return Air and never panic.
func (c *Chunk) GetVoxel(x, y, z int) VoxelKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getVoxelLocked(x, y, z)
}

func (c *Chunk) getVoxelLocked(x, y, z int) VoxelKind {
	if !c.inBounds(x, y, z) {
		return Air
	}
	return c.palette.getType(c.voxels[c.index(x, y, z)])
}

// SetVoxel sets the voxel kind at local (x,y,z) and marks the chunk dirty.
// Out-of-bounds writes are silently ignored.
func (c *Chunk) SetVoxel(x, y, z int, kind VoxelKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setVoxelLocked(x, y, z, kind)
}

func (c *Chunk) setVoxelLocked(x, y, z int, kind VoxelKind) {
	if !c.inBounds(x, y, z) {
		return
	}
	idx := c.palette.addType(kind)
	c.voxels[c.index(x, y, z)] = idx
	c.dirty = true
}

// Lock and Unlock expose the chunk's mutex to callers that need to hold
// it across a whole scan, such as the physics step (spec §4.J): it reads
// and writes many cells under one critical section rather than paying a
// lock per cell.
func (c *Chunk) Lock()   { c.mu.Lock() }
func (c *Chunk) Unlock() { c.mu.Unlock() }

// GetVoxelLocked and SetVoxelLocked are the unlocked primitives for a
// caller already holding Lock.
func (c *Chunk) GetVoxelLocked(x, y, z int) VoxelKind      { return c.getVoxelLocked(x, y, z) }
func (c *Chunk) SetVoxelLocked(x, y, z int, kind VoxelKind) { c.setVoxelLocked(x, y, z, kind) }

// IsDirty reports whether the chunk has been mutated since its last save.
func (c *Chunk) IsDirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// markClean clears the dirty flag; called after a successful save.
func (c *Chunk) markClean() {
	c.mu.Lock()
	c.dirty = false
	c.mu.Unlock()
}

// IsGenerated reports whether the generation pipeline (or a successful
// deserialization) has populated this chunk.
func (c *Chunk) IsGenerated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generated
}

// markGenerated sets the generated flag. Called by the generation
// pipeline once it has finished populating the chunk.
func (c *Chunk) markGenerated() {
	c.mu.Lock()
	c.generated = true
	c.dirty = true
	c.mu.Unlock()
}

// clear resets the palette and zeroes the voxel array.
func (c *Chunk) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.palette.reset()
	for i := range c.voxels {
		c.voxels[i] = 0
	}
	c.dirty = true
}

// GetActiveVoxels returns the world-space positions of every non-Air cell
// in the chunk.
func (c *Chunk) GetActiveVoxels(size, height uint16) []mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()

	worldOffsetX := int(c.X) * int(size)
	worldOffsetY := int(c.Y) * int(height)
	worldOffsetZ := int(c.Z) * int(size)

	var positions []mgl32.Vec3
	for y := 0; y < int(c.Height); y++ {
		for z := 0; z < int(c.Size); z++ {
			for x := 0; x < int(c.Size); x++ {
				if c.getVoxelLocked(x, y, z) != Air {
					positions = append(positions, mgl32.Vec3{
						float32(worldOffsetX + x),
						float32(worldOffsetY + y),
						float32(worldOffsetZ + z),
					})
				}
			}
		}
	}
	return positions
}

// Serialize encodes the chunk in the fixed little-endian layout described
// in spec §4.B: position, size, height, palette, then the packed voxel
// array verbatim.
func (c *Chunk) Serialize() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.palette.entries
	buf := make([]byte, chunkHeaderSize+1+len(p)+len(c.voxels))
	off := 0
	binary.LittleEndian.PutUint32(buf[off:], uint32(c.X))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], uint32(c.Y))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], uint32(c.Z))
	off += 4
	binary.LittleEndian.PutUint16(buf[off:], c.Size)
	off += 2
	binary.LittleEndian.PutUint16(buf[off:], c.Height)
	off += 2
	buf[off] = byte(len(p))
	off++
	for _, kind := range p {
		buf[off] = byte(kind)
		off++
	}
	copy(buf[off:], c.voxels)
	return buf
}

// DeserializeChunk decodes a chunk from the layout Serialize produces.
// It rejects inputs shorter than the fixed header and inputs whose
// declared palette or array size would overrun the buffer (spec §7,
// CorruptChunkFile), returning ok=false in both cases.
func DeserializeChunk(data []byte) (chunk *Chunk, ok bool) {
	if len(data) < chunkHeaderSize+1 {
		return nil, false
	}
	off := 0
	cx := int32(binary.LittleEndian.Uint32(data[off:]))
	off += 4
	cy := int32(binary.LittleEndian.Uint32(data[off:]))
	off += 4
	cz := int32(binary.LittleEndian.Uint32(data[off:]))
	off += 4
	size := binary.LittleEndian.Uint16(data[off:])
	off += 2
	height := binary.LittleEndian.Uint16(data[off:])
	off += 2
	paletteLen := int(data[off])
	off++

	if off+paletteLen > len(data) {
		return nil, false
	}
	palette := &Palette{entries: make([]VoxelKind, 0, paletteLen)}
	for i := 0; i < paletteLen; i++ {
		palette.entries = append(palette.entries, VoxelKind(data[off]))
		off++
	}
	if len(palette.entries) == 0 {
		palette.entries = append(palette.entries, Air)
	}

	voxelCount := int(size) * int(size) * int(height)
	if off+voxelCount > len(data) {
		return nil, false
	}
	voxels := make([]byte, voxelCount)
	copy(voxels, data[off:off+voxelCount])

	c := &Chunk{
		X: cx, Y: cy, Z: cz,
		Size:      size,
		Height:    height,
		palette:   palette,
		voxels:    voxels,
		generated: true,
		dirty:     false,
	}
	return c, true
}
