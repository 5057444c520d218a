package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal_Input(t *testing.T) {
	t.Run("returns typed answer", func(t *testing.T) {
		var out bytes.Buffer
		term := NewTerminal(strings.NewReader("  https://qotd.example.com  \n"), &out)

		answer, err := term.Input("API URL:", "http://localhost:3000")
		require.NoError(t, err)
		assert.Equal(t, "https://qotd.example.com", answer)
		assert.Equal(t, "? API URL: (http://localhost:3000) ", out.String())
	})

	t.Run("empty answer falls back to default", func(t *testing.T) {
		term := NewTerminal(strings.NewReader("\n"), &bytes.Buffer{})

		answer, err := term.Input("API URL:", "http://localhost:3000")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3000", answer)
	})

	t.Run("last line without newline", func(t *testing.T) {
		term := NewTerminal(strings.NewReader("secret"), &bytes.Buffer{})

		answer, err := term.Input("API Key:", "")
		require.NoError(t, err)
		assert.Equal(t, "secret", answer)
	})

	t.Run("exhausted input", func(t *testing.T) {
		term := NewTerminal(strings.NewReader(""), &bytes.Buffer{})

		_, err := term.Input("API Key:", "")
		assert.ErrorIs(t, err, ErrNoInput)
	})
}

func TestTerminal_Confirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		def      bool
		expected bool
	}{
		{"yes", "y\n", false, true},
		{"full no", "No\n", true, false},
		{"default yes", "\n", true, true},
		{"default no", "\n", false, false},
		{"retries on garbage", "maybe\nyes\n", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := NewTerminal(strings.NewReader(tt.input), &bytes.Buffer{})
			got, err := term.Confirm("Save?", tt.def)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTerminal_Select(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("9\n2\n"), &out)

	idx, err := term.Select("Action", []string{"list", "generate", "stats"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Contains(t, out.String(), "2) generate")
	assert.Contains(t, out.String(), "Please enter a number between 1 and 3.")

	_, err = term.Select("Action", nil, 0)
	assert.Error(t, err)
}
