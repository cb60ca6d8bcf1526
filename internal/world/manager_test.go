package world

import (
	"testing"
	"time"

	"mini-mc/internal/workerpool"
)

func testConfig(t *testing.T) Config {
	cfg := DefaultConfig()
	cfg.ChunkSize = 8
	cfg.WorldHeight = 32
	cfg.ViewDistance = 1
	cfg.NumThreads = 2
	cfg.SaveDirectory = t.TempDir()
	cfg.Seed = 1234
	return cfg
}

func waitForPending(m *ChunkManager, timeout time.Duration) int {
	deadline := time.Now().Add(timeout)
	transferred := 0
	for time.Now().Before(deadline) {
		transferred += m.ProcessCompletedChunks()
		m.mu.Lock()
		empty := len(m.pending) == 0
		m.mu.Unlock()
		if empty {
			return transferred
		}
		time.Sleep(time.Millisecond)
	}
	return transferred
}

func TestManagerUpdateLoadsSpiral(t *testing.T) {
	cfg := testConfig(t)
	m := NewChunkManager(cfg)
	pool := workerpool.New(cfg.NumThreads)
	defer pool.Shutdown()

	m.Update(WorldPos{0, 0, 0}, pool)
	waitForPending(m, 2*time.Second)

	want := (2*cfg.ViewDistance + 1) * (2*cfg.ViewDistance + 1)
	if got := m.residentCount(); got != want {
		t.Fatalf("expected %d resident chunks after first update, got %d", want, got)
	}
}

func TestManagerRequestChunkIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	m := NewChunkManager(cfg)
	pool := workerpool.New(cfg.NumThreads)
	defer pool.Shutdown()

	coord := ChunkCoord{0, 0, 0}
	m.requestChunk(coord, pool)
	m.requestChunk(coord, pool)

	if got := m.pendingCount(); got != 1 {
		t.Fatalf("expected exactly one in-flight task for a repeated request, got %d", got)
	}
}

func TestManagerSaveAndReloadChunk(t *testing.T) {
	cfg := testConfig(t)
	m := NewChunkManager(cfg)
	pool := workerpool.New(cfg.NumThreads)
	defer pool.Shutdown()

	coord := ChunkCoord{0, 0, 0}
	m.requestChunk(coord, pool)
	waitForPending(m, 2*time.Second)

	c := m.GetChunk(coord)
	if c == nil {
		t.Fatalf("expected chunk to be resident after generation")
	}
	c.SetVoxel(0, 0, 0, Diamond)

	if n := m.SaveChunks(); n == 0 {
		t.Fatalf("expected at least one chunk written")
	}

	m2 := NewChunkManager(cfg)
	pool2 := workerpool.New(cfg.NumThreads)
	defer pool2.Shutdown()
	m2.requestChunk(coord, pool2)
	waitForPending(m2, 2*time.Second)

	reloaded := m2.GetChunk(coord)
	if reloaded == nil {
		t.Fatalf("expected reloaded chunk to be resident")
	}
	if got := reloaded.GetVoxel(0, 0, 0); got != Diamond {
		t.Fatalf("expected reloaded chunk to keep the saved voxel, got %v", got)
	}
}
