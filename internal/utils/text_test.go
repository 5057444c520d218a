package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly10!", Truncate("exactly10!", 10))
	assert.Equal(t, "a long ...", Truncate("a long sentence here", 10))
	assert.Equal(t, "caf", Truncate("café au lait", 3))
	assert.Equal(t, "unchanged", Truncate("unchanged", 0))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"science", "fun"}, SplitList("science, fun"))
	assert.Equal(t, []string{"a", "b"}, SplitList(" a ,, b ,"))
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList(" , "))
}
