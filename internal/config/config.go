// Package config loads CLI defaults from a .solparse.yaml file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"solparse/parser"
)

// File is the on-disk shape of .solparse.yaml. Pointer fields keep an
// absent key apart from an explicit false or zero, so a sparse file
// only overrides what it names.
type File struct {
	Loc      *bool `yaml:"loc"`
	Range    *bool `yaml:"range"`
	Tokens   *bool `yaml:"tokens"`
	Tolerant *bool `yaml:"tolerant"`
	MaxDepth *int  `yaml:"max_depth"`
}

// Config carries the resolved parser defaults. Path names the file the
// values came from, empty when only built-ins applied.
type Config struct {
	Path    string
	Options parser.Options
}

// Load reads the named config file, or searches the usual locations
// when path is empty. No file found is not an error: the built-in
// defaults come back unchanged.
func Load(path string) (*Config, error) {
	cfg := &Config{Options: parser.DefaultOptions()}
	if path == "" {
		path = findConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Path = path
	apply(&cfg.Options, &f)
	if cfg.Options.MaxDepth <= 0 {
		return nil, fmt.Errorf("config file %s: max_depth must be positive", path)
	}
	return cfg, nil
}

func apply(o *parser.Options, f *File) {
	if f.Loc != nil {
		o.Loc = *f.Loc
	}
	if f.Range != nil {
		o.Range = *f.Range
	}
	if f.Tokens != nil {
		o.Tokens = *f.Tokens
	}
	if f.Tolerant != nil {
		o.Tolerant = *f.Tolerant
	}
	if f.MaxDepth != nil {
		o.MaxDepth = *f.MaxDepth
	}
}

func findConfigFile() string {
	possiblePaths := []string{
		".solparse.yaml",
		".solparse.yml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		possiblePaths = append(possiblePaths, filepath.Join(home, ".solparse.yaml"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
