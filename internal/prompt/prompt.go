// Package prompt asks the operator questions on a terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrNoInput is returned when the input stream ends before an answer is read.
var ErrNoInput = errors.New("no input available")

type Prompter interface {
	Input(message, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
	Select(message string, options []string, defaultIndex int) (int, error)
}

// Terminal is a line-oriented Prompter over a reader and writer.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Stdio returns a Terminal over os.Stdin and os.Stdout.
func Stdio() *Terminal {
	return NewTerminal(os.Stdin, os.Stdout)
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// StdinIsInteractive reports whether both stdin and stdout are terminals.
func StdinIsInteractive() bool {
	return IsInteractive(os.Stdin) && IsInteractive(os.Stdout)
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Input asks for a free-form value. An empty answer yields defaultValue.
func (t *Terminal) Input(message, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(t.out, "? %s (%s) ", message, defaultValue)
	} else {
		fmt.Fprintf(t.out, "? %s ", message)
	}

	answer, err := t.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question, repeating until the answer is recognised.
func (t *Terminal) Confirm(message string, defaultValue bool) (bool, error) {
	hint := "y/N"
	if defaultValue {
		hint = "Y/n"
	}

	for {
		fmt.Fprintf(t.out, "? %s (%s) ", message, hint)
		answer, err := t.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "":
			return defaultValue, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(t.out, "  Please answer yes or no.")
	}
}

// Select prints numbered options and returns the chosen index.
func (t *Terminal) Select(message string, options []string, defaultIndex int) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("no options to choose from")
	}
	if defaultIndex < 0 || defaultIndex >= len(options) {
		defaultIndex = 0
	}

	fmt.Fprintf(t.out, "? %s\n", message)
	for i, opt := range options {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, opt)
	}

	for {
		fmt.Fprintf(t.out, "  Choice (%d) ", defaultIndex+1)
		answer, err := t.readLine()
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return defaultIndex, nil
		}

		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintf(t.out, "  Please enter a number between 1 and %d.\n", len(options))
	}
}
