// Package ui renders human-readable workflow output: colored status
// lines, section headers, and a TTY-aware progress spinner.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	headerColor  = color.New(color.FgHiMagenta, color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
	stepColor    = color.New(color.Bold)
)

// Printer writes status lines for the workflow. A zero Out defaults to
// stdout.
type Printer struct {
	Out io.Writer
}

func (p Printer) writer() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}

// Header prints a banner line framed by = rules.
func (p Printer) Header(text string) {
	w := p.writer()
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w)
	headerColor.Fprintln(w, rule)
	headerColor.Fprintln(w, centerText(text, 60))
	headerColor.Fprintln(w, rule)
	fmt.Fprintln(w)
}

// Step prints a bold step heading, e.g. "Step 1: Add Files".
func (p Printer) Step(text string) {
	fmt.Fprintln(p.writer())
	stepColor.Fprintln(p.writer(), text)
}

func (p Printer) Success(format string, args ...any) {
	successColor.Fprintf(p.writer(), "✓ "+format+"\n", args...)
}

func (p Printer) Error(format string, args ...any) {
	errorColor.Fprintf(p.writer(), "✗ "+format+"\n", args...)
}

func (p Printer) Info(format string, args ...any) {
	infoColor.Fprintf(p.writer(), "ℹ "+format+"\n", args...)
}

func (p Printer) Warning(format string, args ...any) {
	warnColor.Fprintf(p.writer(), "⚠ "+format+"\n", args...)
}

// Plain prints an uncolored line.
func (p Printer) Plain(format string, args ...any) {
	fmt.Fprintf(p.writer(), format+"\n", args...)
}

func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	left := (width - len(text)) / 2
	return strings.Repeat(" ", left) + text
}
