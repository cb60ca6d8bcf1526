package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mini-mc/internal/physics"
	"mini-mc/internal/profiling"
	"mini-mc/internal/workerpool"
	"mini-mc/internal/world"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file overlaying defaults")
	saveDir := flag.String("save-dir", "", "world save directory (overrides config)")
	seed := flag.Int64("seed", 0, "world seed for a new world (a save with world metadata keeps its stored seed), 0 keeps the default")
	viewDistance := flag.Int("view-distance", 0, "chunk view distance, 0 keeps the default/loaded value")
	spawnX := flag.Int("spawn-x", 0, "viewer spawn world X")
	spawnZ := flag.Int("spawn-z", 0, "viewer spawn world Z")
	physicsHz := flag.Int("physics-hz", 10, "cellular physics steps per second")
	flag.Parse()

	cfg := world.DefaultConfig()
	if *configPath != "" {
		loaded, err := world.LoadConfigFile(cfg, *configPath)
		if err != nil {
			panic(fmt.Sprintf("load config %s: %v", *configPath, err))
		}
		cfg = loaded
	}
	if *saveDir != "" {
		cfg.SaveDirectory = *saveDir
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *viewDistance != 0 {
		cfg.ViewDistance = *viewDistance
	}

	w, err := world.Load(cfg)
	if err != nil {
		panic(fmt.Sprintf("load world: %v", err))
	}
	defer w.Close()

	pool := workerpool.New(cfg.NumThreads)
	defer pool.Shutdown()

	viewer := world.WorldPos{X: int32(*spawnX), Y: 0, Z: int32(*spawnZ)}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	physicsInterval := time.Second / time.Duration(max(1, *physicsHz))
	lastPhysics := time.Now()
	lastSave := time.Now()
	lastReport := time.Now()
	frames := 0

	fmt.Printf("voxelworld: starting %s\n", w)

	for {
		select {
		case <-stop:
			fmt.Println("voxelworld: shutting down")
			if _, err := w.Save(); err != nil {
				fmt.Printf("voxelworld: save on exit failed: %v\n", err)
			}
			return
		default:
		}

		profiling.ResetFrame()

		func() { defer profiling.Track("world.UpdateChunks")(); w.UpdateChunks(viewer) }()
		func() { defer profiling.Track("world.IntegrateCompletedChunks")(); w.IntegrateCompletedChunks() }()

		if time.Since(lastPhysics) >= physicsInterval {
			physics.Step(w, pool)
			lastPhysics = time.Now()
		}

		if time.Since(lastSave) >= 30*time.Second {
			if n, err := w.Save(); err != nil {
				fmt.Printf("voxelworld: periodic save failed: %v\n", err)
			} else if n > 0 {
				fmt.Printf("voxelworld: saved %d dirty chunks\n", n)
			}
			lastSave = time.Now()
		}

		frames++
		if time.Since(lastReport) >= time.Second {
			fmt.Printf("voxelworld: tick=%d %s top=%s\n", frames, w, profiling.TopN(3))
			lastReport = time.Now()
		}

		time.Sleep(time.Duration(cfg.FrameDelayMS) * time.Millisecond)
	}
}
