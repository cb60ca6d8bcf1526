package world

import (
	"encoding/binary"
	"fmt"
	"path/filepath"

	"mini-mc/internal/profiling"
	"mini-mc/internal/workerpool"
)

// worldMetaFileName is the filename, under Config.SaveDirectory, that
// stores the world's seed and dimensions (spec §6).
const worldMetaFileName = "world.dat"

// World is the thin facade spec §4.E describes: it owns the config and
// the chunk manager, tracks the last known viewer position, and
// forwards client calls without itself holding generation logic.
type World struct {
	cfg     Config
	manager *ChunkManager
	pool    *workerpool.Pool

	lastViewerPos WorldPos
}

// New constructs a world from cfg and starts its worker pool.
func New(cfg Config) *World {
	return &World{
		cfg:     cfg,
		manager: NewChunkManager(cfg),
		pool:    workerpool.New(cfg.NumThreads),
	}
}

// Close shuts down the world's worker pool. Does not implicitly save.
func (w *World) Close() {
	w.pool.Shutdown()
}

// UpdateChunks drives the streaming cycle from the viewer's current
// world position (spec §4.D/§6's updateChunks contract).
func (w *World) UpdateChunks(viewerPos WorldPos) {
	w.lastViewerPos = viewerPos
	w.manager.Update(viewerPos, w.pool)
}

// IntegrateCompletedChunks drains whatever generation/load tasks have
// finished since the last call, returning how many chunks were
// transferred into residency.
func (w *World) IntegrateCompletedChunks() int {
	return w.manager.ProcessCompletedChunks()
}

// GetActiveChunks returns every currently resident chunk.
func (w *World) GetActiveChunks() []*Chunk {
	return w.manager.GetActiveChunks()
}

// GetChunk returns the resident chunk at coord, or nil.
func (w *World) GetChunk(coord ChunkCoord) *Chunk {
	return w.manager.GetChunk(coord)
}

// GetVoxel returns the voxel kind at an absolute world position. A
// position inside a non-resident chunk reads as Air (spec §6).
func (w *World) GetVoxel(pos WorldPos) VoxelKind {
	coord := worldToChunkPos(pos, w.cfg.ChunkSize, w.cfg.WorldHeight)
	c := w.manager.GetChunk(coord)
	if c == nil {
		return Air
	}
	lx, ly, lz := worldToLocalPos(pos, w.cfg.ChunkSize, w.cfg.WorldHeight)
	return c.GetVoxel(lx, ly, lz)
}

// SetVoxel writes kind at an absolute world position, marking the owning
// chunk dirty. A write into a non-resident chunk is a silent no-op
// (spec §6, §7 OutOfBoundsAccess handling).
func (w *World) SetVoxel(pos WorldPos, kind VoxelKind) {
	coord := worldToChunkPos(pos, w.cfg.ChunkSize, w.cfg.WorldHeight)
	c := w.manager.GetChunk(coord)
	if c == nil {
		return
	}
	lx, ly, lz := worldToLocalPos(pos, w.cfg.ChunkSize, w.cfg.WorldHeight)
	c.SetVoxel(lx, ly, lz, kind)
}

// Save writes every dirty resident chunk plus the world's seed/size
// metadata file. Returns the number of chunks written.
func (w *World) Save() (int, error) {
	defer profiling.Track("world.World.Save")()
	written := w.manager.SaveChunks()
	if err := w.saveMeta(); err != nil {
		return written, err
	}
	return written, nil
}

func (w *World) saveMeta() error {
	buf := make([]byte, 4+2+2)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(w.cfg.Seed))
	binary.LittleEndian.PutUint16(buf[4:6], w.cfg.ChunkSize)
	binary.LittleEndian.PutUint16(buf[6:8], w.cfg.WorldHeight)
	path := filepath.Join(w.cfg.SaveDirectory, worldMetaFileName)
	return writeFileAtomic(path, wrapPayload(buf, w.cfg.UseCompression))
}

// worldMeta is the decoded contents of world.dat.
type worldMeta struct {
	Seed        int64
	ChunkSize   uint16
	WorldHeight uint16
}

// LoadWorldMeta reads the seed/size metadata from saveDir, reporting
// ok=false if no metadata file exists yet (a fresh world).
func LoadWorldMeta(saveDir string) (worldMeta, bool) {
	path := filepath.Join(saveDir, worldMetaFileName)
	raw := readFileSoft(path)
	if raw == nil {
		return worldMeta{}, false
	}
	buf := unwrapPayload(raw)
	if len(buf) < 8 {
		return worldMeta{}, false
	}
	return worldMeta{
		Seed:        int64(binary.LittleEndian.Uint32(buf[0:4])),
		ChunkSize:   binary.LittleEndian.Uint16(buf[4:6]),
		WorldHeight: binary.LittleEndian.Uint16(buf[6:8]),
	}, true
}

// Load builds a World for saveDir, reusing the persisted seed and chunk
// dimensions when metadata is present; any other cfg field (view
// distance, thread count, noise tuning...) always comes from cfg, since
// those govern runtime behavior rather than the data format on disk
// (spec §6).
func Load(cfg Config) (*World, error) {
	if meta, ok := LoadWorldMeta(cfg.SaveDirectory); ok {
		cfg.Seed = meta.Seed
		cfg.ChunkSize = meta.ChunkSize
		cfg.WorldHeight = meta.WorldHeight
	}
	return New(cfg), nil
}

// String renders a short human-readable summary, used by the driver's
// status line.
func (w *World) String() string {
	return fmt.Sprintf("world(seed=%d chunkSize=%d worldHeight=%d resident=%d pending=%d)",
		w.cfg.Seed, w.cfg.ChunkSize, w.cfg.WorldHeight, w.manager.residentCount(), w.manager.pendingCount())
}

// NewTestWorldWithChunk builds a World whose manager holds exactly c as
// its sole resident chunk, with no generation pipeline wired in. Used by
// other packages' tests to exercise chunk-consuming code (such as the
// physics step) without full world streaming.
func NewTestWorldWithChunk(c *Chunk) *World {
	cfg := DefaultConfig()
	cfg.ChunkSize = c.Size
	cfg.WorldHeight = c.Height
	m := &ChunkManager{
		cfg:      cfg,
		resident: map[ChunkCoord]*Chunk{c.Coord(): c},
		pending:  make(map[ChunkCoord]*workerpool.Future[*Chunk]),
	}
	return &World{cfg: cfg, manager: m}
}
