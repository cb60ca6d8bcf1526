package world

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigThreadsFloorAtOne(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.NumThreads < 1 {
		t.Fatalf("expected NumThreads >= 1, got %d", cfg.NumThreads)
	}
}

func TestLoadConfigFileMissingIsNotAnError(t *testing.T) {
	cfg := DefaultConfig()
	got, err := LoadConfigFile(cfg, filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not error, got %v", err)
	}
	if got != cfg {
		t.Fatalf("expected config unchanged when file is absent")
	}
}

func TestLoadConfigFileOverlaysFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.yaml")
	yamlBody := "seed: 42\nviewDistance: 9\n"
	if err := os.WriteFile(path, []byte(yamlBody), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := DefaultConfig()
	got, err := LoadConfigFile(cfg, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Seed != 42 {
		t.Fatalf("expected seed overlay to 42, got %d", got.Seed)
	}
	if got.ViewDistance != 9 {
		t.Fatalf("expected viewDistance overlay to 9, got %d", got.ViewDistance)
	}
	if got.ChunkSize != cfg.ChunkSize {
		t.Fatalf("expected unspecified fields to keep their default")
	}
}
