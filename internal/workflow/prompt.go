package workflow

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ErrNotATerminal is returned when an interactive prompt is required
// but stdin is not a TTY. Callers should suggest --yes.
var ErrNotATerminal = errors.New("stdin is not a terminal, use --yes for non-interactive runs")

// Prompter gathers interactive decisions from the user.
type Prompter interface {
	// Confirm asks a yes/no question; only "y"/"yes" count as yes.
	Confirm(question string) (bool, error)
	// Input asks for a free-form line and returns it trimmed.
	Input(prompt string) (string, error)
}

// InteractivePrompter reads answers from stdin. Stdin and Out are
// injectable for tests and default to os.Stdin / os.Stderr.
type InteractivePrompter struct {
	Stdin io.Reader
	Out   io.Writer

	reader *bufio.Reader
}

func (p *InteractivePrompter) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stderr
}

func (p *InteractivePrompter) readLine() (string, error) {
	if p.reader == nil {
		stdin := p.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		if f, ok := stdin.(*os.File); ok {
			if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
				return "", ErrNotATerminal
			}
		}
		p.reader = bufio.NewReader(stdin)
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read user input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (p *InteractivePrompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out(), "%s (y/n): ", question)
	response, err := p.readLine()
	if err != nil {
		return false, err
	}
	response = strings.ToLower(response)
	return response == "y" || response == "yes", nil
}

func (p *InteractivePrompter) Input(prompt string) (string, error) {
	fmt.Fprint(p.out(), prompt)
	return p.readLine()
}
