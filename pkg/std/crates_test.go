package std

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsStandardCrate(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name      string
		crateName string
		expected  bool
	}{
		{"standard crate - std", "std", true},
		{"standard crate - core", "core", true},
		{"standard crate - alloc", "alloc", true},
		{"external crate - serde", "serde", false},
		{"external crate - tokio", "tokio", false},
		{"crate keyword", "crate", false},
		{"empty string", "", false},
		{"case sensitive", "Std", false},
		{"proc_macro is not in the default family", "proc_macro", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsStandardCrate(tt.crateName)
			req.Equal(tt.expected, result, "IsStandardCrate(%q)", tt.crateName)
		})
	}
}

func TestStandardCratesMapNotEmpty(t *testing.T) {
	req := require.New(t)
	req.NotEmpty(StandardCrates, "StandardCrates map should not be empty")

	for _, name := range []string{"std", "core", "alloc"} {
		req.True(StandardCrates[name], "Expected standard crate %q not found in StandardCrates map", name)
	}
}
