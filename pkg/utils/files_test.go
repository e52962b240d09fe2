package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsRustFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected bool
	}{
		{
			name:     "regular rust file",
			filename: "main.rs",
			expected: true,
		},
		{
			name:     "rust file with path",
			filename: "src/bin/cli.rs",
			expected: true,
		},
		{
			name:     "module file",
			filename: "src/parser/mod.rs",
			expected: true,
		},
		{
			name:     "build script",
			filename: "build.rs",
			expected: true,
		},
		{
			name:     "non-rust file",
			filename: "Cargo.toml",
			expected: false,
		},
		{
			name:     "file with .rs in middle",
			filename: "file.rs.bak",
			expected: false,
		},
		{
			name:     "empty string",
			filename: "",
			expected: false,
		},
		{
			name:     "just .rs",
			filename: ".rs",
			expected: true,
		},
		{
			name:     "go file",
			filename: "main.go",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			result := IsRustFile(tt.filename)
			req.Equal(tt.expected, result, "IsRustFile(%q) = %v, want %v", tt.filename, result, tt.expected)
		})
	}
}

func TestIsDirectory(t *testing.T) {
	req := require.New(t)
	// Create a temporary directory for testing
	tempDir := t.TempDir()

	// Create a temporary file
	tempFile := filepath.Join(tempDir, "test.txt")
	err := os.WriteFile(tempFile, []byte("test"), 0644)
	req.NoError(err, "Failed to create temp file: %v", err)

	tests := []struct {
		name      string
		path      string
		expected  bool
		expectErr bool
	}{
		{
			name:      "existing directory",
			path:      tempDir,
			expected:  true,
			expectErr: false,
		},
		{
			name:      "existing file",
			path:      tempFile,
			expected:  false,
			expectErr: false,
		},
		{
			name:      "non-existent path",
			path:      "/non/existent/path",
			expected:  false,
			expectErr: true,
		},
		{
			name:      "current directory",
			path:      ".",
			expected:  true,
			expectErr: false,
		},
		{
			name:      "parent directory",
			path:      "..",
			expected:  true,
			expectErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			result, err := IsDirectory(tt.path)

			if tt.expectErr {
				req.Error(err, "IsDirectory(%q) expected error, got nil", tt.path)
			} else {
				req.NoError(err, "IsDirectory(%q) unexpected error: %v", tt.path, err)
				req.Equal(tt.expected, result, "IsDirectory(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestFindRustFiles(t *testing.T) {
	req := require.New(t)
	// Create a temporary directory structure for testing
	tempDir := t.TempDir()

	// Create test directory structure
	dirs := []string{
		"src/bin",
		"src/parser",
		"tests",
		"target/debug/build",
		"vendor/serde/src",
		"generated",
		".git",
		".hidden",
	}

	for _, dir := range dirs {
		err := os.MkdirAll(filepath.Join(tempDir, dir), 0755)
		req.NoError(err, "Failed to create directory %s: %v", dir, err)
	}

	// Create test files
	files := map[string]string{
		"build.rs":                   "fn main() {}",
		"src/main.rs":                "fn main() {}",
		"src/bin/cli.rs":             "fn main() {}",
		"src/parser/mod.rs":          "pub mod lexer;",
		"tests/format.rs":            "#[test] fn t() {}",
		"target/debug/build/out.rs":  "// generated", // Should be excluded (target dir)
		"vendor/serde/src/lib.rs":    "// vendored",  // Should be excluded (vendor dir)
		"generated/bindings.rs":      "// generated", // Should be excluded (configured)
		".git/config":                "config",       // Should be excluded (hidden dir)
		".hidden/hidden.rs":          "fn main() {}", // Should be excluded (hidden dir)
		"Cargo.toml":                 "[package]",    // Should be excluded (not .rs)
		"README.md":                  "# README",     // Should be excluded (not .rs)
	}

	for filePath, content := range files {
		fullPath := filepath.Join(tempDir, filePath)
		err := os.WriteFile(fullPath, []byte(content), 0644)
		req.NoError(err, "Failed to create file %s: %v", filePath, err)
	}

	tests := []struct {
		name          string
		root          string
		expectedFiles []string
		expectErr     bool
	}{
		{
			name: "find rust files in temp directory",
			root: tempDir,
			expectedFiles: []string{
				filepath.Join(tempDir, "build.rs"),
				filepath.Join(tempDir, "src/main.rs"),
				filepath.Join(tempDir, "src/bin/cli.rs"),
				filepath.Join(tempDir, "src/parser/mod.rs"),
				filepath.Join(tempDir, "tests/format.rs"),
			},
			expectErr: false,
		},
		{
			name:      "non-existent directory",
			root:      "/non/existent/path",
			expectErr: true,
		},
		{
			name:      "empty directory",
			root:      filepath.Join(tempDir, "empty"),
			expectErr: false,
		},
	}

	// Create empty directory for test
	err := os.Mkdir(filepath.Join(tempDir, "empty"), 0755)
	req.NoError(err, "Failed to create empty directory: %v", err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			result, err := FindRustFiles(tt.root, []string{"generated"})

			if tt.expectErr {
				req.Error(err, "FindRustFiles(%q) expected error, got nil", tt.root)
				return
			}

			req.NoError(err, "FindRustFiles(%q) unexpected error: %v", tt.root, err)
			req.ElementsMatch(tt.expectedFiles, result, "FindRustFiles(%q) returned %v", tt.root, result)
		})
	}
}

func TestFindRustFiles_RootNamedTarget(t *testing.T) {
	req := require.New(t)
	root := filepath.Join(t.TempDir(), "target")
	req.NoError(os.MkdirAll(root, 0755))
	req.NoError(os.WriteFile(filepath.Join(root, "lib.rs"), []byte(""), 0644))

	result, err := FindRustFiles(root, nil)
	req.NoError(err)
	req.Equal([]string{filepath.Join(root, "lib.rs")}, result)
}
