package utils

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultEdition is the edition cargo assumes when a package does not declare one
const DefaultEdition = "2015"

type cargoManifest struct {
	Package *struct {
		Name    string `toml:"name"`
		Edition any    `toml:"edition"` // a string, or {workspace = true}
	} `toml:"package"`
	Workspace *struct {
		Package *struct {
			Edition string `toml:"edition"`
		} `toml:"package"`
	} `toml:"workspace"`
}

func readCargoManifest(path string) (*cargoManifest, error) {
	var manifest cargoManifest
	if _, err := toml.DecodeFile(path, &manifest); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// FindCargoManifest returns the path of the nearest Cargo.toml in dir or its parents
func FindCargoManifest(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(abs, "Cargo.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return ""
		}
		abs = parent
	}
}

// GetCrateEdition returns the Rust edition of the package containing dir.
// Editions inherited from a workspace are resolved from the workspace manifest.
// It returns an empty string when no manifest is found.
func GetCrateEdition(dir string) string {
	inherit := false
	for {
		manifestPath := FindCargoManifest(dir)
		if manifestPath == "" {
			return ""
		}
		manifest, err := readCargoManifest(manifestPath)
		if err != nil {
			return ""
		}

		if !inherit && manifest.Package != nil {
			switch edition := manifest.Package.Edition.(type) {
			case string:
				return edition
			case map[string]any:
				if workspace, _ := edition["workspace"].(bool); !workspace {
					return ""
				}
				inherit = true
			case nil:
				return DefaultEdition
			default:
				return ""
			}
		}

		// a virtual workspace root has no edition of its own
		if !inherit && manifest.Package == nil && manifest.Workspace != nil {
			return ""
		}

		if inherit && manifest.Workspace != nil {
			if manifest.Workspace.Package != nil && manifest.Workspace.Package.Edition != "" {
				return manifest.Workspace.Package.Edition
			}
			return DefaultEdition
		}

		parent := filepath.Dir(filepath.Dir(manifestPath))
		if parent == filepath.Dir(manifestPath) {
			return ""
		}
		dir = parent
	}
}
