// Package interactive turns wizard answers into qotd command lines.
package interactive

import "strconv"

// DefaultPrefix is the program identifier prepended to every command line.
var DefaultPrefix = []string{"qotd"}

type GenerateAnswers struct {
	Count    int
	Category string
	Level    int
	DryRun   bool
}

type ListAnswers struct {
	Category string
	Level    int
	Search   string
}

type EditAnswers struct {
	ID         uint
	Text       string
	Level      int
	Categories string
}

// DeleteAnswers selects either every question (All) or the listed IDs.
type DeleteAnswers struct {
	All bool
	IDs []string
}

// Builder renders answers as command-line tokens. Empty, zero and false
// answers contribute no tokens; a non-empty modeFlag follows the prefix.
type Builder struct {
	Prefix []string
}

func NewBuilder() Builder {
	return Builder{Prefix: DefaultPrefix}
}

func (b Builder) command(modeFlag string, args ...string) []string {
	out := make([]string, 0, len(b.Prefix)+1+len(args))
	out = append(out, b.Prefix...)
	if modeFlag != "" {
		out = append(out, modeFlag)
	}
	return append(out, args...)
}

func (b Builder) Generate(a GenerateAnswers, modeFlag string) []string {
	args := []string{"generate", "-n", strconv.Itoa(a.Count)}
	if a.Category != "" {
		args = append(args, "-c", a.Category)
	}
	if a.Level != 0 {
		args = append(args, "-l", strconv.Itoa(a.Level))
	}
	if a.DryRun {
		args = append(args, "--dry-run")
	}
	return b.command(modeFlag, args...)
}

func (b Builder) List(a ListAnswers, modeFlag string) []string {
	args := []string{"list"}
	if a.Category != "" {
		args = append(args, "-c", a.Category)
	}
	if a.Level != 0 {
		args = append(args, "-l", strconv.Itoa(a.Level))
	}
	if a.Search != "" {
		args = append(args, "-s", a.Search)
	}
	return b.command(modeFlag, args...)
}

func (b Builder) Edit(a EditAnswers, modeFlag string) []string {
	args := []string{"edit", strconv.FormatUint(uint64(a.ID), 10)}
	if a.Text != "" {
		args = append(args, "-t", a.Text)
	}
	if a.Level != 0 {
		args = append(args, "-l", strconv.Itoa(a.Level))
	}
	if a.Categories != "" {
		args = append(args, "-c", a.Categories)
	}
	return b.command(modeFlag, args...)
}

func (b Builder) Delete(a DeleteAnswers, modeFlag string) []string {
	if a.All {
		return b.command(modeFlag, "delete", "--all")
	}
	return b.command(modeFlag, append([]string{"delete"}, a.IDs...)...)
}

func (b Builder) Stats(modeFlag string) []string {
	return b.command(modeFlag, "stats")
}
