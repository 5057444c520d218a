package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryColor(t *testing.T) {
	t.Run("is stable for the same name", func(t *testing.T) {
		assert.Equal(t, CategoryColor("science"), CategoryColor("science"))
	})

	t.Run("ignores case and surrounding space", func(t *testing.T) {
		assert.Equal(t, CategoryColor("science"), CategoryColor("  Science "))
	})

	t.Run("always returns a palette colour", func(t *testing.T) {
		for _, name := range []string{"", "history", "fun", "deep", "work", "a very long category name"} {
			color := CategoryColor(name)
			assert.True(t, IsHexColor(color), "got %q for %q", color, name)
			assert.Contains(t, categoryPalette, color)
		}
	})
}

func TestIsHexColor(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"#FF0000", true},
		{"#abcdef", true},
		{"FF0000", false},
		{"#FFF", false},
		{"#GG0000", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsHexColor(tt.input), tt.input)
	}
}
