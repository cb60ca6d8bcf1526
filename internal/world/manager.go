package world

import (
	"fmt"
	"sync"

	"mini-mc/internal/profiling"
	"mini-mc/internal/workerpool"
)

// maxUnloadsPerTick bounds how many chunks Update evicts in one call
// (spec §4.D design value).
const maxUnloadsPerTick = 5

// ChunkManager owns the resident chunk map, the in-flight generation
// futures, and the eviction queue (spec §4.D). It borrows the world's
// config rather than owning the World itself, breaking the cyclic
// ownership spec §9 calls out.
type ChunkManager struct {
	cfg Config

	terrain    *TerrainGenerator
	caves      *CaveGenerator
	biomes     *BiomeGenerator
	structures *StructureGenerator

	mu       sync.Mutex
	resident map[ChunkCoord]*Chunk
	pending  map[ChunkCoord]*workerpool.Future[*Chunk]
	evictQ   []ChunkCoord
}

// NewChunkManager builds the manager and its generation pipeline, seeded
// by cfg.Seed, seed+1 and seed+2 so terrain, caves and biomes never
// share a noise pattern (spec §4.A).
func NewChunkManager(cfg Config) *ChunkManager {
	terrainNoise := New(int32(cfg.Seed))
	caveNoise := New(int32(cfg.Seed + 1))
	biomeNoise := New(int32(cfg.Seed + 2))

	terrain := NewTerrainGenerator(terrainNoise, cfg.BaseNoiseScale, cfg.DetailNoiseScale, int(cfg.WorldHeight))
	caves := NewCaveGenerator(caveNoise, cfg.CaveIterations, cfg.OreDensity, cfg.Seed)
	biomes := NewBiomeGenerator(biomeNoise, cfg.TemperatureScale, cfg.HumidityScale, int(cfg.WorldHeight))
	structures := NewStructureGenerator(biomes, cfg.Seed)

	return &ChunkManager{
		cfg:        cfg,
		terrain:    terrain,
		caves:      caves,
		biomes:     biomes,
		structures: structures,
		resident:   make(map[ChunkCoord]*Chunk),
		pending:    make(map[ChunkCoord]*workerpool.Future[*Chunk]),
	}
}

// generatePipeline runs the full deterministic chain: terrain heightmap,
// caves + ores, biome surface replacement, structures/decorations
// (spec §2, §4.F-I).
func (m *ChunkManager) generatePipeline(coord ChunkCoord) *Chunk {
	c := NewChunk(coord, m.cfg.ChunkSize, m.cfg.WorldHeight)
	m.terrain.Generate(c)
	m.caves.Generate(c)
	m.biomes.Generate(c)
	m.structures.Generate(c)
	c.markGenerated()
	return c
}

// loadOrGenerate loads coord from disk if a file is present, otherwise
// runs the generation pipeline (spec §4.D).
func (m *ChunkManager) loadOrGenerate(coord ChunkCoord) (*Chunk, error) {
	defer profiling.Track("world.ChunkManager.loadOrGenerate")()

	path := chunkFilePath(m.cfg.SaveDirectory, coord)
	raw := readFileSoft(path)
	if raw != nil {
		payload := unwrapPayload(raw)
		if c, ok := DeserializeChunk(payload); ok {
			return c, nil
		}
		// CorruptChunkFile: treated as "not present", fall back to generation.
		fmt.Printf("world: corrupt chunk file %s, regenerating\n", path)
	}
	return m.generatePipeline(coord), nil
}

// Update computes the viewer's chunk coordinate, walks the spiral load
// pattern submitting generation/load tasks, marks far chunks for
// eviction, and unloads up to maxUnloadsPerTick of them (spec §4.D).
func (m *ChunkManager) Update(viewerPos WorldPos, pool *workerpool.Pool) {
	defer profiling.Track("world.ChunkManager.Update")()

	viewerChunk := worldToChunkPos(viewerPos, m.cfg.ChunkSize, m.cfg.WorldHeight)

	for _, off := range spiralOffsets(m.cfg.ViewDistance) {
		coord := ChunkCoord{viewerChunk.X + off.X, viewerChunk.Y + off.Y, viewerChunk.Z + off.Z}
		m.requestChunk(coord, pool)
	}

	m.mu.Lock()
	for coord := range m.resident {
		dx := coord.X - viewerChunk.X
		dz := coord.Z - viewerChunk.Z
		if abs32(dx) > int32(m.cfg.ViewDistance)+1 || abs32(dz) > int32(m.cfg.ViewDistance)+1 {
			m.evictQ = append(m.evictQ, coord)
		}
	}
	unloaded := 0
	for unloaded < maxUnloadsPerTick && len(m.evictQ) > 0 {
		coord := m.evictQ[0]
		m.evictQ = m.evictQ[1:]
		m.unloadLocked(coord)
		unloaded++
	}
	m.mu.Unlock()
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// requestChunk submits a load/generate task for coord if it is neither
// resident nor already pending (spec §5 ordering guarantee: at most one
// in-flight task per coordinate at a time).
func (m *ChunkManager) requestChunk(coord ChunkCoord, pool *workerpool.Pool) {
	m.mu.Lock()
	if _, ok := m.resident[coord]; ok {
		m.mu.Unlock()
		return
	}
	if _, ok := m.pending[coord]; ok {
		m.mu.Unlock()
		return
	}
	future, err := workerpool.Submit(pool, func() (*Chunk, error) {
		return m.loadOrGenerate(coord)
	})
	if err != nil {
		m.mu.Unlock()
		return
	}
	m.pending[coord] = future
	m.mu.Unlock()
}

// unloadLocked saves coord if dirty, then removes it from the resident
// map. Must be called with mu held (spec §4.D eviction semantics).
func (m *ChunkManager) unloadLocked(coord ChunkCoord) {
	c, ok := m.resident[coord]
	if !ok {
		return
	}
	if c.IsDirty() {
		if err := m.saveChunk(c); err != nil {
			fmt.Printf("world: save on evict failed for %v: %v\n", coord, err)
		}
	}
	delete(m.resident, coord)
}

// ProcessCompletedChunks tests each pending future non-blockingly,
// moving ready ones into the resident map. A task that failed is logged
// and its slot cleared without inserting (spec §4.D, §7 TaskFailure).
// Returns the count transferred.
func (m *ChunkManager) ProcessCompletedChunks() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	transferred := 0
	for coord, future := range m.pending {
		value, err, ready := future.Poll()
		if !ready {
			continue
		}
		delete(m.pending, coord)
		if err != nil || value == nil {
			fmt.Printf("world: chunk task %s failed for %v: %v\n", future.ID, coord, err)
			continue
		}
		m.resident[coord] = value
		transferred++
	}
	return transferred
}

// saveChunk serializes and writes c under the manager's save directory,
// clearing its dirty bit on success.
func (m *ChunkManager) saveChunk(c *Chunk) error {
	path := chunkFilePath(m.cfg.SaveDirectory, c.Coord())
	payload := wrapPayload(c.Serialize(), m.cfg.UseCompression)
	if err := writeFileAtomic(path, payload); err != nil {
		return err
	}
	c.markClean()
	return nil
}

// SaveChunks serializes and writes every dirty resident chunk. Returns
// the count successfully written; a chunk whose write fails keeps its
// dirty bit set so the next tick retries (spec §7 IOFailure).
func (m *ChunkManager) SaveChunks() int {
	defer profiling.Track("world.ChunkManager.SaveChunks")()
	m.mu.Lock()
	defer m.mu.Unlock()

	written := 0
	for _, c := range m.resident {
		if !c.IsDirty() {
			continue
		}
		if err := m.saveChunk(c); err != nil {
			fmt.Printf("world: save failed: %v\n", err)
			continue
		}
		written++
	}
	return written
}

// GetActiveChunks returns a snapshot of resident chunk references.
func (m *ChunkManager) GetActiveChunks() []*Chunk {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Chunk, 0, len(m.resident))
	for _, c := range m.resident {
		out = append(out, c)
	}
	return out
}

// GetChunk returns the resident chunk at pos, or nil if absent.
func (m *ChunkManager) GetChunk(pos ChunkCoord) *Chunk {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resident[pos]
}

// residentCount reports the number of resident chunks (test helper).
func (m *ChunkManager) residentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.resident)
}

// pendingCount reports the number of in-flight futures (test helper).
func (m *ChunkManager) pendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
