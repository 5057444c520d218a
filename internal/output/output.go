// Package output prints CLI messages with consistent colouring.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
)

// Printer writes user-facing messages. Errors go to Err, everything else to Out.
type Printer struct {
	Out     io.Writer
	Err     io.Writer
	NoColor bool
}

// New returns a Printer on stdout/stderr. NO_COLOR disables colouring.
func New() *Printer {
	return &Printer{
		Out:     os.Stdout,
		Err:     os.Stderr,
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

func (p *Printer) paint(style color.Color, s string) string {
	if p.NoColor {
		return s
	}
	return style.Sprint(s)
}

func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.Out, p.paint(color.Green, fmt.Sprintf(format, args...)))
}

// Error prints "Error: <msg>" to Err.
func (p *Printer) Error(format string, args ...any) {
	fmt.Fprintln(p.Err, p.paint(color.Red, "Error: "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.Out, p.paint(color.Cyan, fmt.Sprintf(format, args...)))
}

func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.Out, p.paint(color.Yellow, fmt.Sprintf(format, args...)))
}

func (p *Printer) Dim(format string, args ...any) {
	fmt.Fprintln(p.Out, p.paint(color.Gray, fmt.Sprintf(format, args...)))
}

func (p *Printer) Println(args ...any) {
	fmt.Fprintln(p.Out, args...)
}

func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.Out, format, args...)
}

// ModeBanner prints which backend the command talks to, e.g. "[remote (https://qotd.example.com)]".
func (p *Printer) ModeBanner(mode, detail string) {
	label := "local (SQLite)"
	if mode != "local" {
		label = fmt.Sprintf("remote (%s)", detail)
	}
	p.Dim("[%s]", label)
}
