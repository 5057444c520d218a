package utils

import (
	"hash/fnv"
	"regexp"
	"strings"
)

// categoryPalette holds the display colours assigned to categories created on the fly.
var categoryPalette = []string{
	"#E4572E", // vermilion
	"#17BEBB", // teal
	"#FFC914", // saffron
	"#2E282A", // charcoal
	"#76B041", // green
	"#7B5EA7", // violet
	"#F28AB2", // pink
	"#3A86FF", // blue
	"#FB8500", // orange
	"#8D99AE", // slate
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CategoryColor picks a palette colour for a category name.
// The choice depends only on the lower-cased name, so "Science" and "science" match.
func CategoryColor(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(name))))
	return categoryPalette[h.Sum32()%uint32(len(categoryPalette))]
}

// IsHexColor reports whether s is a #RRGGBB colour.
func IsHexColor(s string) bool {
	return hexColor.MatchString(s)
}
