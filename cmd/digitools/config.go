package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Garik-/digitools/pkg/table"
)

const defaultWorkers = 10

type config struct {
	Debug     bool
	Mark      string
	Workers   int
	OutputDir string

	// List is the file list for scan. It is only set from the command line.
	List string
}

func defaultConfig() config {
	return config{
		Mark:      table.DefaultMark,
		Workers:   defaultWorkers,
		OutputDir: ".",
	}
}

type fileConfig struct {
	Debug     bool   `toml:"debug"`
	Mark      string `toml:"mark"`
	Workers   int    `toml:"workers"`
	OutputDir string `toml:"output_dir"`
}

// loadConfig overlays the keys present in the TOML file at path on top of cfg.
func loadConfig(path string, cfg config) (config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("debug") {
		cfg.Debug = raw.Debug
	}

	if meta.IsDefined("mark") {
		cfg.Mark = strings.TrimSpace(raw.Mark)
	}

	if meta.IsDefined("workers") {
		cfg.Workers = raw.Workers
	}

	if meta.IsDefined("output_dir") {
		cfg.OutputDir = strings.TrimSpace(raw.OutputDir)
	}

	return cfg, validateConfig(cfg)
}

func validateConfig(cfg config) error {
	if cfg.Mark == "" {
		return fmt.Errorf("config: mark must not be empty")
	}
	if cfg.Workers <= 0 {
		return fmt.Errorf("config: workers must be > 0, got %d", cfg.Workers)
	}
	if cfg.OutputDir == "" {
		return fmt.Errorf("config: output_dir must not be empty")
	}
	return nil
}
