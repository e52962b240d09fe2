package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// skippedDirs are never descended into when walking a project
var skippedDirs = map[string]bool{
	"target": true,
	"vendor": true,
}

// IsRustFile checks if a file is a Rust source file
func IsRustFile(filename string) bool {
	return strings.HasSuffix(filename, ".rs")
}

// FindRustFiles recursively finds all Rust source files in a directory
func FindRustFiles(root string, exclude []string) ([]string, error) {
	var rustFiles []string

	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip build output, vendored crates, hidden and excluded directories (but not the root directory)
		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if skippedDirs[name] || excluded[name] || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if IsRustFile(d.Name()) {
			rustFiles = append(rustFiles, path)
		}

		return nil
	})

	return rustFiles, err
}

// IsDirectory checks if the given path is a directory
func IsDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
