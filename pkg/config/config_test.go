package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_TOML(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), ".rig.toml")
	writeFile(t, path, `
std_crates = ["proc_macro", "test"]
skip_rustfmt = true
jobs = 4
exclude = ["generated"]

[rustfmt]
path = "/opt/rust/bin/rustfmt"
edition = "2021"
args = ["--config", "max_width=80"]
`)

	cfg, err := Load(path)
	req.NoError(err)
	req.Equal([]string{"proc_macro", "test"}, cfg.StdCrates)
	req.True(cfg.SkipRustfmt)
	req.Equal(4, cfg.Jobs)
	req.Equal([]string{"generated"}, cfg.Exclude)
	req.Equal("/opt/rust/bin/rustfmt", cfg.Rustfmt.Path)
	req.Equal("2021", cfg.Rustfmt.Edition)
	req.Equal([]string{"--config", "max_width=80"}, cfg.Rustfmt.Args)
}

func TestLoad_YAML(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), ".rig.yaml")
	writeFile(t, path, `
std_crates:
  - proc_macro
jobs: 2
rustfmt:
  edition: "2018"
`)

	cfg, err := Load(path)
	req.NoError(err)
	req.Equal([]string{"proc_macro"}, cfg.StdCrates)
	req.Equal(2, cfg.Jobs)
	req.Equal("2018", cfg.Rustfmt.Edition)
	req.Equal("rustfmt", cfg.Rustfmt.Path, "unset keys keep their defaults")
}

func TestLoad_EmptyYAML(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "rig.yml")
	writeFile(t, path, "")

	cfg, err := Load(path)
	req.NoError(err)
	req.Equal(Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		contains string
	}{
		{"unknown toml key", "rig.toml", "colour = true\n", "unknown key"},
		{"unknown yaml key", ".rig.yaml", "colour: true\n", "colour"},
		{"invalid toml", "rig.toml", "jobs = \n", "failed to parse TOML"},
		{"negative jobs", "rig.toml", "jobs = -1\n", "jobs must not be negative"},
		{"unknown edition", ".rig.yml", "rustfmt:\n  edition: \"2019\"\n", "unknown rust edition"},
		{"path as std crate", "rig.toml", "std_crates = [\"std::io\"]\n", "invalid std crate name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)

			_, err := Load(path)
			req.Error(err)
			req.Contains(err.Error(), tt.contains)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "rig.toml"))
	require.Error(t, err)
}

func TestFind(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()
	nested := filepath.Join(root, "crates", "core", "src")
	req.NoError(os.MkdirAll(nested, 0755))

	writeFile(t, filepath.Join(root, "rig.yaml"), "jobs: 1\n")
	writeFile(t, filepath.Join(root, "crates", "rig.toml"), "jobs = 3\n")
	writeFile(t, filepath.Join(root, "crates", ".rig.toml"), "jobs = 2\n")

	path, err := Find(nested)
	req.NoError(err)
	req.Equal(filepath.Join(root, "crates", ".rig.toml"), path)

	path, err = Find(root)
	req.NoError(err)
	req.Equal(filepath.Join(root, "rig.yaml"), path)

	writeFile(t, filepath.Join(root, "sub", "rig.yml"), "jobs: 4\n")
	path, err = Find(filepath.Join(root, "sub"))
	req.NoError(err)
	req.Equal(filepath.Join(root, "sub", "rig.yml"), path)
}

func TestLoadFrom(t *testing.T) {
	req := require.New(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".rig.toml"), "skip_rustfmt = true\n")

	cfg, path, err := LoadFrom(filepath.Join(root))
	req.NoError(err)
	req.Equal(filepath.Join(root, ".rig.toml"), path)
	req.True(cfg.SkipRustfmt)
}
