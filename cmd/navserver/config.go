package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration, read from YAML.
type Config struct {
	Listen string      `yaml:"listen"`
	Log    LogConfig   `yaml:"log"`
	Nav    NavConfig   `yaml:"nav"`
	Walk   WalkConfig  `yaml:"walk"`
	Scene  SceneConfig `yaml:"scene"`
}

// LogConfig selects the log level and optional rotating log file.
type LogConfig struct {
	// File receives JSON logs with rotation; empty logs to stderr only.
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

// NavConfig holds the pathfinder options.
type NavConfig struct {
	InflateAmount       float64 `yaml:"inflateAmount"`
	MinWaypointDistance float64 `yaml:"minWaypointDistance"`
}

// WalkConfig paces walkers on /walk.
type WalkConfig struct {
	// Speed is in world units per second.
	Speed float64 `yaml:"speed"`
	// TickRate is the number of walk steps per second.
	TickRate float64 `yaml:"tickRate"`
	// Footprint is the side of the square obstacle a walker occupies.
	Footprint float64 `yaml:"footprint"`
}

// SceneConfig controls how scenes are loaded.
type SceneConfig struct {
	// Path is a GeoJSON scene loaded at startup.
	Path          string  `yaml:"path"`
	Tolerance     float64 `yaml:"tolerance"`
	KeepContained bool    `yaml:"keepContained"`
	// FallbackTolerance, when positive, builds a second, coarser
	// pathfinder that answers when the primary one finds no route.
	FallbackTolerance float64 `yaml:"fallbackTolerance"`
}

func defaultConfig() Config {
	return Config{
		Listen: ":8080",
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
		Nav: NavConfig{
			InflateAmount:       0.01,
			MinWaypointDistance: 1,
		},
		Walk: WalkConfig{
			Speed:     40,
			TickRate:  20,
			Footprint: 4,
		},
	}
}

// loadConfig reads path over the defaults. An empty path returns the
// defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Walk.Speed <= 0 {
		return fmt.Errorf("walk.speed must be positive, got %v", c.Walk.Speed)
	}
	if c.Walk.TickRate <= 0 {
		return fmt.Errorf("walk.tickRate must be positive, got %v", c.Walk.TickRate)
	}
	if c.Walk.Footprint <= 0 {
		return fmt.Errorf("walk.footprint must be positive, got %v", c.Walk.Footprint)
	}
	return nil
}
