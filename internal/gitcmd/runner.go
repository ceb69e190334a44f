// Package gitcmd executes git as an external process with shared
// logging and output handling.
package gitcmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner executes git commands. The zero value is usable and runs git
// in the current directory with output captured.
type Runner struct {
	Verbose bool
	Dir     string
	Env     []string
	Logger  io.Writer
}

// Result contains captured stdout/stderr for a git command.
type Result struct {
	Stdout []byte
	Stderr []byte
}

func (r Result) StdoutString(trim bool) string {
	output := string(r.Stdout)
	if trim {
		return strings.TrimSpace(output)
	}
	return output
}

func (r Result) StderrString(trim bool) string {
	output := string(r.Stderr)
	if trim {
		return strings.TrimSpace(output)
	}
	return output
}

func (r Runner) withDefaults() Runner {
	if r.Logger == nil {
		r.Logger = os.Stderr
	}
	return r
}

func (r Runner) command(args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	return cmd
}

func (r Runner) log(args []string) {
	if !r.Verbose {
		return
	}
	r = r.withDefaults()
	fmt.Fprintf(r.Logger, "Running: git %s\n", strings.Join(args, " "))
}

// Run executes a git command and captures stdout/stderr. A failure to
// launch the process is returned as an ordinary error with an empty
// Result; callers treat any non-nil error as command failure.
func (r Runner) Run(args ...string) (Result, error) {
	cmd := r.command(args...)
	r.log(args)

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()
	return Result{Stdout: outBuf.Bytes(), Stderr: errBuf.Bytes()}, err
}

// RunStreaming executes a git command with stdout/stderr streamed to
// the terminal. Used for push/pull, where git's progress lines matter.
func (r Runner) RunStreaming(args ...string) error {
	return r.RunWithWriters(os.Stdout, os.Stderr, args...)
}

// RunWithWriters executes a git command with output sent to the
// provided writers. Nil writers discard the corresponding stream.
func (r Runner) RunWithWriters(stdout io.Writer, stderr io.Writer, args ...string) error {
	cmd := r.command(args...)
	r.log(args)

	if stdout != nil {
		cmd.Stdout = stdout
	}
	if stderr != nil {
		cmd.Stderr = stderr
	}
	return cmd.Run()
}
