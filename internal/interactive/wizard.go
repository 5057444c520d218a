package interactive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mrlokans/qotd/internal/entities"
	"github.com/mrlokans/qotd/internal/prompt"
)

var actions = []string{"generate", "list", "edit", "delete", "stats"}

// Wizard asks which command to run and collects its answers.
type Wizard struct {
	Prompter prompt.Prompter
	Builder  Builder
	ModeFlag string
	// Out receives retry hints. Defaults to stdout.
	Out io.Writer
}

func (w *Wizard) hint(format string, args ...any) {
	out := w.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "  "+format+"\n", args...)
}

// Run returns the command line for the operator's choices.
func (w *Wizard) Run() ([]string, error) {
	idx, err := w.Prompter.Select("What would you like to do?", actions, 1)
	if err != nil {
		return nil, err
	}

	switch actions[idx] {
	case "generate":
		return w.generate()
	case "list":
		return w.list()
	case "edit":
		return w.edit()
	case "delete":
		return w.delete()
	default:
		return w.Builder.Stats(w.ModeFlag), nil
	}
}

func (w *Wizard) generate() ([]string, error) {
	count, err := w.askInt("How many questions?", "5", 1)
	if err != nil {
		return nil, err
	}
	category, err := w.Prompter.Input("Category (blank for any):", "")
	if err != nil {
		return nil, err
	}
	level, err := w.askLevel()
	if err != nil {
		return nil, err
	}
	dryRun, err := w.Prompter.Confirm("Dry run?", false)
	if err != nil {
		return nil, err
	}

	return w.Builder.Generate(GenerateAnswers{
		Count:    count,
		Category: strings.TrimSpace(category),
		Level:    level,
		DryRun:   dryRun,
	}, w.ModeFlag), nil
}

func (w *Wizard) list() ([]string, error) {
	category, err := w.Prompter.Input("Category (blank for any):", "")
	if err != nil {
		return nil, err
	}
	level, err := w.askLevel()
	if err != nil {
		return nil, err
	}
	search, err := w.Prompter.Input("Search text (blank for none):", "")
	if err != nil {
		return nil, err
	}

	return w.Builder.List(ListAnswers{
		Category: strings.TrimSpace(category),
		Level:    level,
		Search:   strings.TrimSpace(search),
	}, w.ModeFlag), nil
}

func (w *Wizard) edit() ([]string, error) {
	id, err := w.askInt("Question ID:", "", 1)
	if err != nil {
		return nil, err
	}
	text, err := w.Prompter.Input("New text (blank to keep):", "")
	if err != nil {
		return nil, err
	}
	level, err := w.askLevel()
	if err != nil {
		return nil, err
	}
	categories, err := w.Prompter.Input("Categories, comma separated (blank to keep):", "")
	if err != nil {
		return nil, err
	}

	return w.Builder.Edit(EditAnswers{
		ID:         uint(id),
		Text:       strings.TrimSpace(text),
		Level:      level,
		Categories: strings.TrimSpace(categories),
	}, w.ModeFlag), nil
}

func (w *Wizard) delete() ([]string, error) {
	all, err := w.Prompter.Confirm("Delete ALL questions?", false)
	if err != nil {
		return nil, err
	}
	if all {
		return w.Builder.Delete(DeleteAnswers{All: true}, w.ModeFlag), nil
	}

	for {
		raw, err := w.Prompter.Input("Question IDs, space separated:", "")
		if err != nil {
			return nil, err
		}
		ids, err := parseIDs(raw)
		if err == nil {
			return w.Builder.Delete(DeleteAnswers{IDs: ids}, w.ModeFlag), nil
		}
		w.hint("%s", err)
	}
}

// askInt repeats the question until it gets an integer >= min.
func (w *Wizard) askInt(message, def string, min int) (int, error) {
	for {
		raw, err := w.Prompter.Input(message, def)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err == nil && n >= min {
			return n, nil
		}
		w.hint("Please enter a whole number of at least %d.", min)
	}
}

// askLevel returns 0 for "any level".
func (w *Wizard) askLevel() (int, error) {
	message := fmt.Sprintf("Seriousness level %d-%d (blank for any):", entities.MinSeriousnessLevel, entities.MaxSeriousnessLevel)
	for {
		raw, err := w.Prompter.Input(message, "")
		if err != nil {
			return 0, err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(raw)
		if err == nil && n >= entities.MinSeriousnessLevel && n <= entities.MaxSeriousnessLevel {
			return n, nil
		}
		w.hint("Level must be between %d and %d.", entities.MinSeriousnessLevel, entities.MaxSeriousnessLevel)
	}
}

func parseIDs(raw string) ([]string, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) == 0 {
		return nil, errors.New("enter at least one ID")
	}
	for _, f := range fields {
		if n, err := strconv.ParseUint(f, 10, 32); err != nil || n == 0 {
			return nil, fmt.Errorf("%q is not a valid question ID", f)
		}
	}
	return fields, nil
}
