package exporters

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mrlokans/qotd/internal/entities"
	"github.com/mrlokans/qotd/internal/importers"
)

func sampleQuestions() []entities.Question {
	return []entities.Question{
		{ID: 2, Text: "What scares you *most*?", SeriousnessLevel: 4, Categories: []entities.Category{{Name: "deep"}}},
		{ID: 1, Text: "Cats or dogs?", SeriousnessLevel: 1, Categories: []entities.Category{{Name: "fun"}, {Name: "pets"}}},
		{ID: 3, Text: "Favourite snack?", SeriousnessLevel: 1},
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"json": FormatJSON, "YML": FormatYAML, "md": FormatMarkdown, "markdown": FormatMarkdown} {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("bank.yaml"))
	assert.Equal(t, FormatMarkdown, FormatFromPath("bank.md"))
	assert.Equal(t, FormatJSON, FormatFromPath("bank.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("bank"))
}

func TestExport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatJSON, sampleQuestions()))

	var doc document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Questions, 3)
	assert.Equal(t, []string{"fun", "pets"}, doc.Questions[1].Categories)
}

func TestExport_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatYAML, sampleQuestions()))

	var doc document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Questions, 3)
	assert.Equal(t, "What scares you *most*?", doc.Questions[0].Text)
}

func TestExport_ReadableByImporters(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		require.NoError(t, Export(&buf, format, sampleQuestions()))

		inputs, err := importers.Parse(&buf, importers.Format(format), importers.Options{})
		require.NoError(t, err, format)
		require.Len(t, inputs, 3, format)
		assert.Equal(t, 4, inputs[0].SeriousnessLevel, format)
		assert.Equal(t, []string{"deep"}, inputs[0].CategoryNames, format)
	}
}

func TestExport_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatMarkdown, sampleQuestions()))

	want := "# Questions\n\n3 questions\n" +
		"\n## Level 1\n\n" +
		"- Cats or dogs? _(fun, pets)_\n" +
		"- Favourite snack?\n" +
		"\n## Level 4\n\n" +
		"- What scares you \\*most\\*? _(deep)_\n"
	assert.Equal(t, want, buf.String())
}

func TestExport_UnknownFormat(t *testing.T) {
	assert.Error(t, Export(&bytes.Buffer{}, Format("xml"), nil))
}
