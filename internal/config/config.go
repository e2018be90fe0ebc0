// Package config loads the Mudra application configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// Camera capture settings.
	CameraID     int     `yaml:"camera_id"`
	MotionThresh float64 `yaml:"motion_threshold"`

	// Particle field settings.
	ParticleCount int   `yaml:"particle_count"`
	Seed          int64 `yaml:"seed"`
	SimRate       int   `yaml:"sim_rate"` // simulation steps per second

	// Server settings.
	Addr      string `yaml:"addr"`
	StaticDir string `yaml:"static_dir"`

	// Storage and plugins.
	DBPath    string `yaml:"db_path"`
	PluginDir string `yaml:"plugin_dir"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, ".mudra")

	return Config{
		CameraID:      0,
		MotionThresh:  1.0, // 1% pixel change
		ParticleCount: 15000,
		Seed:          0, // 0 means time-based
		SimRate:       60,
		Addr:          ":8080",
		StaticDir:     "",
		DBPath:        filepath.Join(dataDir, "mudra.db"),
		PluginDir:     filepath.Join(dataDir, "plugins"),
	}
}

// Load reads a YAML config file and merges it over the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.clampInvalid()
	return cfg, nil
}

// clampInvalid replaces out-of-range values with defaults rather than
// failing startup over a bad config file.
func (c *Config) clampInvalid() {
	def := Default()

	if c.MotionThresh <= 0 {
		c.MotionThresh = def.MotionThresh
	}
	if c.ParticleCount <= 0 {
		c.ParticleCount = def.ParticleCount
	}
	if c.SimRate <= 0 || c.SimRate > 240 {
		c.SimRate = def.SimRate
	}
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
}
