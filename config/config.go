// Package config resolves the flat options record shared by all commands
// from a small search path of YAML (or JSON) files. Resolution is a pure
// function; no config state leaks into the core packages.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the resolved, immutable options record.
type Config struct {
	// FilenameTemplate is empty when no file set it; each command applies
	// its own default template in that case.
	FilenameTemplate string

	SlugMaxLen       int
	IncludeSHA256    bool
	DefaultSliceName string
	DefaultTags      []string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SlugMaxLen:       50,
		IncludeSHA256:    true,
		DefaultSliceName: "slice",
		DefaultTags:      []string{},
	}
}

// DefaultSearchPaths returns the config file locations probed in order.
func DefaultSearchPaths() []string {
	paths := []string{filepath.Join(".", "parashu.yaml")}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".parashu", "config.yaml"))
	}
	return paths
}

// fileConfig mirrors the on-disk config schema.
type fileConfig struct {
	Output struct {
		FilenameTemplate string `yaml:"filename_template" json:"filename_template"`
		SlugMaxLen       *int   `yaml:"slug_maxlen" json:"slug_maxlen"`
		IncludeSHA256    *bool  `yaml:"include_sha256" json:"include_sha256"`
	} `yaml:"output" json:"output"`
	Defaults struct {
		SliceName string   `yaml:"slice_name" json:"slice_name"`
		Tags      []string `yaml:"tags" json:"tags"`
	} `yaml:"defaults" json:"defaults"`
}

// Resolve reads the first usable file on the search path and layers it over
// the built-in defaults. A file that parses as neither YAML nor JSON is
// skipped; a missing file is not an error.
func Resolve(paths []string) Config {
	cfg := Default()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			if err := json.Unmarshal(data, &fc); err != nil {
				continue
			}
		}

		if fc.Output.FilenameTemplate != "" {
			cfg.FilenameTemplate = fc.Output.FilenameTemplate
		}
		if fc.Output.SlugMaxLen != nil {
			cfg.SlugMaxLen = *fc.Output.SlugMaxLen
		}
		if fc.Output.IncludeSHA256 != nil {
			cfg.IncludeSHA256 = *fc.Output.IncludeSHA256
		}
		if fc.Defaults.SliceName != "" {
			cfg.DefaultSliceName = fc.Defaults.SliceName
		}
		if fc.Defaults.Tags != nil {
			cfg.DefaultTags = fc.Defaults.Tags
		}
		break
	}

	return cfg
}
