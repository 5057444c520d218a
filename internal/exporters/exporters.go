// Package exporters writes the question bank as JSON, YAML or Markdown.
// JSON and YAML output can be read back by the importers package.
package exporters

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrlokans/qotd/internal/entities"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// Formats lists the accepted format names.
var Formats = []Format{FormatJSON, FormatYAML, FormatMarkdown}

// Record is the exported shape of one question.
type Record struct {
	ID               uint     `json:"id" yaml:"id"`
	Text             string   `json:"text" yaml:"text"`
	SeriousnessLevel int      `json:"seriousnessLevel" yaml:"seriousnessLevel"`
	Categories       []string `json:"categories,omitempty" yaml:"categories,omitempty"`
}

type document struct {
	Questions []Record `json:"questions" yaml:"questions"`
}

// ParseFormat accepts a format name; "md" and "yml" are aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown export format %q (use json, yaml or markdown)", name)
}

// FormatFromPath guesses the format from an output file name, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatJSON
	}
}

func toRecords(qs []entities.Question) []Record {
	records := make([]Record, 0, len(qs))
	for _, q := range qs {
		records = append(records, Record{
			ID:               q.ID,
			Text:             q.Text,
			SeriousnessLevel: q.SeriousnessLevel,
			Categories:       q.CategoryNames(),
		})
	}
	return records
}

// Export writes qs to w in the given format.
func Export(w io.Writer, format Format, qs []entities.Question) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(document{Questions: toRecords(qs)})
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document{Questions: toRecords(qs)}); err != nil {
			return err
		}
		return enc.Close()
	case FormatMarkdown:
		return writeMarkdown(w, qs)
	}
	return fmt.Errorf("unsupported export format %q", format)
}
