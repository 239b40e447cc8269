// Package config loads kernel and logging settings from a YAML file on
// disk, falling back to in-code defaults for anything the file omits.
package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"puctkernel/kernel"
)

// LogConfig controls the console logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// File is the on-disk shape of a kernel config file: kernel settings plus
// the ambient logging level, loaded together so a single file governs one
// run.
type File struct {
	Kernel kernel.Settings `yaml:"kernel"`
	Log    LogConfig       `yaml:"log"`
}

// Default returns a File seeded with kernel.DefaultSettings and an info
// log level.
func Default() File {
	return File{
		Kernel: kernel.DefaultSettings(),
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads and parses a YAML config file at path. The file is unmarshalled
// over Default(), so fields absent from the file keep their default values.
func Load(path string) (File, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// ParseLevel maps the config file's log.level string to a zerolog.Level,
// defaulting to Info on an empty or unrecognized value rather than erroring
// — a typo in a log level shouldn't stop the process from starting.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
