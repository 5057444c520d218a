package interactive

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/qotd/internal/prompt"
)

func runWizard(t *testing.T, answers string, modeFlag string) []string {
	t.Helper()

	w := &Wizard{
		Prompter: prompt.NewTerminal(strings.NewReader(answers), &bytes.Buffer{}),
		Builder:  NewBuilder(),
		ModeFlag: modeFlag,
		Out:      &bytes.Buffer{},
	}
	args, err := w.Run()
	require.NoError(t, err)
	return args
}

func TestWizard_Generate(t *testing.T) {
	args := runWizard(t, "1\n3\nfun\n2\ny\n", "")
	assert.Equal(t, []string{"qotd", "generate", "-n", "3", "-c", "fun", "-l", "2", "--dry-run"}, args)
}

func TestWizard_GenerateDefaults(t *testing.T) {
	args := runWizard(t, "1\n\n\n\n\n", "--local")
	assert.Equal(t, []string{"qotd", "--local", "generate", "-n", "5"}, args)
}

func TestWizard_ListIsDefaultAction(t *testing.T) {
	args := runWizard(t, "\nscience\n\n\n", "")
	assert.Equal(t, []string{"qotd", "list", "-c", "science"}, args)
}

func TestWizard_ListRetriesBadLevel(t *testing.T) {
	args := runWizard(t, "2\n\n9\n4\nwhy\n", "")
	assert.Equal(t, []string{"qotd", "list", "-l", "4", "-s", "why"}, args)
}

func TestWizard_Edit(t *testing.T) {
	args := runWizard(t, "3\nabc\n12\nBetter text?\n\ndeep, life\n", "")
	assert.Equal(t, []string{"qotd", "edit", "12", "-t", "Better text?", "-c", "deep, life"}, args)
}

func TestWizard_Delete(t *testing.T) {
	t.Run("all", func(t *testing.T) {
		args := runWizard(t, "4\ny\n", "--remote")
		assert.Equal(t, []string{"qotd", "--remote", "delete", "--all"}, args)
	})

	t.Run("by id", func(t *testing.T) {
		args := runWizard(t, "4\nn\nx\n3, 5\n", "")
		assert.Equal(t, []string{"qotd", "delete", "3", "5"}, args)
	})
}

func TestWizard_Stats(t *testing.T) {
	args := runWizard(t, "5\n", "")
	assert.Equal(t, []string{"qotd", "stats"}, args)
}

func TestWizard_InputExhausted(t *testing.T) {
	w := &Wizard{
		Prompter: prompt.NewTerminal(strings.NewReader("1\n"), &bytes.Buffer{}),
		Builder:  NewBuilder(),
	}
	_, err := w.Run()
	assert.ErrorIs(t, err, prompt.ErrNoInput)
}
