// Package config loads tunetrace's runtime settings from a YAML file,
// with environment variables (optionally loaded from a .env file) taking
// precedence over file values.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable knob the pipeline and CLI need.
type Config struct {
	SampleRate    int     `yaml:"sample_rate"`
	Scheme        string  `yaml:"scheme"` // "pair" or "quad"
	PeakModifier  float64 `yaml:"peak_modifier"`
	MatchThreshold int    `yaml:"match_threshold"`
	Workers       int     `yaml:"workers"`
	IndexPath     string  `yaml:"index_path"`
	CatalogPath   string  `yaml:"catalog_path"`
}

// Default returns the config used when no file or overrides are present.
func Default() Config {
	return Config{
		SampleRate:     11025,
		Scheme:         "pair",
		PeakModifier:   2.0,
		MatchThreshold: 10,
		Workers:        0, // 0 means "use runtime.NumCPU()"
		IndexPath:      "tunetrace.index",
		CatalogPath:    "tunetrace.catalog.db",
	}
}

// Load reads path (if it exists) over the defaults, loads a .env file
// from the current working directory (if present) into the process
// environment, and applies any
// TUNETRACE_* environment overrides. A missing config file is not an
// error — Load falls back to defaults so the CLI works unconfigured.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// fall through with defaults
		default:
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	_ = godotenv.Load() // optional; missing .env is not an error

	applyEnvOverrides(&cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("TUNETRACE_SAMPLE_RATE"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SampleRate = n
		}
	}
	if v, ok := os.LookupEnv("TUNETRACE_SCHEME"); ok {
		cfg.Scheme = v
	}
	if v, ok := os.LookupEnv("TUNETRACE_PEAK_MODIFIER"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.PeakModifier = f
		}
	}
	if v, ok := os.LookupEnv("TUNETRACE_MATCH_THRESHOLD"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MatchThreshold = n
		}
	}
	if v, ok := os.LookupEnv("TUNETRACE_WORKERS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v, ok := os.LookupEnv("TUNETRACE_INDEX_PATH"); ok {
		cfg.IndexPath = v
	}
	if v, ok := os.LookupEnv("TUNETRACE_CATALOG_PATH"); ok {
		cfg.CatalogPath = v
	}
}
