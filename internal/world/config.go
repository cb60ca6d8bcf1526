package world

import (
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the single record of world-generation and streaming
// parameters, sourced from an optional YAML file and then overridden by
// command-line flags (spec §6).
type Config struct {
	Seed             int64   `yaml:"seed"`
	ViewDistance     int     `yaml:"viewDistance"`
	ChunkSize        uint16  `yaml:"chunkSize"`
	WorldHeight      uint16  `yaml:"worldHeight"`
	NumThreads       int     `yaml:"numThreads"`
	FrameDelayMS     int     `yaml:"frameDelay"`
	BaseNoiseScale   float64 `yaml:"baseNoiseScale"`
	DetailNoiseScale float64 `yaml:"detailNoiseScale"`
	CaveIterations   int     `yaml:"caveIterations"`
	OreDensity       float64 `yaml:"oreDensity"`
	TemperatureScale float64 `yaml:"temperatureScale"`
	HumidityScale    float64 `yaml:"humidityScale"`
	SaveDirectory    string  `yaml:"saveDirectory"`
	UseCompression   bool    `yaml:"useCompression"`
}

// DefaultConfig returns the spec §6 default values. Seed is wall-clock
// derived; numThreads defaults to hardware threads minus one, floored
// at one.
func DefaultConfig() Config {
	workers := runtime.NumCPU() - 1
	if workers < 1 {
		workers = 1
	}
	return Config{
		Seed:             time.Now().UnixNano(),
		ViewDistance:     5,
		ChunkSize:        16,
		WorldHeight:      256,
		NumThreads:       workers,
		FrameDelayMS:     50,
		BaseNoiseScale:   0.01,
		DetailNoiseScale: 0.05,
		CaveIterations:   3,
		OreDensity:       0.05,
		TemperatureScale: 0.002,
		HumidityScale:    0.002,
		SaveDirectory:    "saves",
		UseCompression:   true,
	}
}

// LoadConfigFile overlays cfg with whatever fields are present in the
// YAML file at path. A missing file is not an error: cfg is returned
// unchanged, since the file is optional and defaults already apply.
func LoadConfigFile(cfg Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
