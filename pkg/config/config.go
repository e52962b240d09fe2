package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	rigerrors "github.com/siyuan-infoblox/rs-imports-group/pkg/errors"
)

// FileNames are the config file names looked up in a directory, in order of preference
var FileNames = []string{".rig.toml", "rig.toml", ".rig.yaml", ".rig.yml", "rig.yaml", "rig.yml"}

var editions = map[string]bool{
	"2015": true,
	"2018": true,
	"2021": true,
	"2024": true,
}

type Config struct {
	StdCrates   []string `toml:"std_crates" yaml:"std_crates"`     // crates grouped with std, core and alloc
	SkipRustfmt bool     `toml:"skip_rustfmt" yaml:"skip_rustfmt"` // don't pass results through rustfmt
	Jobs        int      `toml:"jobs" yaml:"jobs"`                 // parallel workers, 0 means GOMAXPROCS
	Exclude     []string `toml:"exclude" yaml:"exclude"`           // directory names skipped when walking
	Rustfmt     Rustfmt  `toml:"rustfmt" yaml:"rustfmt"`
}

type Rustfmt struct {
	Path    string   `toml:"path" yaml:"path"`
	Edition string   `toml:"edition" yaml:"edition"` // inferred from Cargo.toml when empty
	Args    []string `toml:"args" yaml:"args"`
}

// Default returns the configuration used when no config file is found
func Default() *Config {
	return &Config{
		Rustfmt: Rustfmt{Path: "rustfmt"},
	}
}

// Find looks for a config file in dir and its parents, returning an empty path if there is none
func Find(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", rigerrors.ErrMsgFailedToResolvePath, err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(abs, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("%s %q: %w", rigerrors.ErrMsgFailedToStatConfig, candidate, err)
			}
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", nil
		}
		abs = parent
	}
}

// Load reads a config file, decoding it as TOML or YAML depending on its extension
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", rigerrors.ErrMsgFailedToReadConfig, path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: failed to parse yaml: %w", path, err)
		}
	default:
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFrom finds and loads the config file for dir, falling back to Default
func LoadFrom(dir string) (*Config, string, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// Validate checks the values that can be rejected before any file is processed
func (c *Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	if c.Rustfmt.Edition != "" && !editions[c.Rustfmt.Edition] {
		return fmt.Errorf("unknown rust edition %q", c.Rustfmt.Edition)
	}
	for _, name := range c.StdCrates {
		if strings.TrimSpace(name) == "" || strings.Contains(name, "::") {
			return fmt.Errorf("invalid std crate name %q", name)
		}
	}
	return nil
}
