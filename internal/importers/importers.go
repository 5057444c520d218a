package importers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrlokans/qotd/internal/dataclient"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

var ErrNoQuestions = errors.New("file contains no questions")

// Record is one question as stored in an import file.
type Record struct {
	Text             string   `json:"text" yaml:"text"`
	SeriousnessLevel int      `json:"seriousnessLevel,omitempty" yaml:"seriousnessLevel,omitempty"`
	Categories       []string `json:"categories,omitempty" yaml:"categories,omitempty"`
}

type document struct {
	Questions []Record `json:"questions" yaml:"questions"`
}

// Options supply values for records that leave them out.
type Options struct {
	DefaultLevel      int
	DefaultCategories []string
}

// DetectFormat picks the format from a file name.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// Parse reads r in the given format and returns one input per question, in file order.
func Parse(r io.Reader, format Format, opts Options) ([]dataclient.CreateQuestionInput, error) {
	var (
		records []Record
		err     error
	)
	switch format {
	case FormatJSON:
		records, err = parseJSON(r)
	case FormatYAML:
		records, err = parseYAML(r)
	case FormatText:
		records, err = parseText(r)
	default:
		return nil, fmt.Errorf("unsupported import format %q", format)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoQuestions
	}

	inputs := make([]dataclient.CreateQuestionInput, 0, len(records))
	for _, rec := range records {
		inputs = append(inputs, rec.toInput(opts))
	}
	return inputs, nil
}

func (rec Record) toInput(opts Options) dataclient.CreateQuestionInput {
	input := dataclient.CreateQuestionInput{
		Text:             strings.TrimSpace(rec.Text),
		SeriousnessLevel: rec.SeriousnessLevel,
		CategoryNames:    rec.Categories,
	}
	if input.SeriousnessLevel == 0 {
		input.SeriousnessLevel = opts.DefaultLevel
	}
	if len(input.CategoryNames) == 0 && len(opts.DefaultCategories) > 0 {
		input.CategoryNames = append([]string(nil), opts.DefaultCategories...)
	}
	return input
}

func parseJSON(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON: %w", err)
	}
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '[' {
		var records []Record
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return records, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return doc.Questions, nil
}

func parseYAML(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	if node.Content[0].Kind == yaml.SequenceNode {
		var records []Record
		if err := node.Content[0].Decode(&records); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		return records, nil
	}

	var doc document
	if err := node.Content[0].Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return doc.Questions, nil
}

func parseText(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		records = append(records, Record{Text: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read text: %w", err)
	}
	return records, nil
}
