// Package git wraps the git command line with the queries and
// mutations the commit-and-push workflow needs. The repository on disk
// is the single source of truth: every query re-runs git, nothing is
// cached across calls.
package git

import (
	"io"
	"strings"

	"github.com/gitauto-cli/gitauto/internal/gitcmd"
	"github.com/gitauto-cli/gitauto/internal/gitutil"
	"github.com/gitauto-cli/gitauto/internal/stringsutil"
)

// NoRemoteConfigured is reported when origin has no URL.
const NoRemoteConfigured = "No remote configured"

// fallbackBranch is used when the current branch cannot be determined,
// e.g. detached HEAD.
const fallbackBranch = "main"

// Options configures a Client.
type Options struct {
	Verbose bool
	Dir     string
	Logger  io.Writer
}

// Client runs git operations in a single repository.
type Client struct {
	runner gitcmd.Runner
}

func NewClient(opts Options) *Client {
	return &Client{
		runner: gitcmd.Runner{
			Verbose: opts.Verbose,
			Dir:     opts.Dir,
			Logger:  opts.Logger,
		},
	}
}

// IsRepository reports whether the working directory is inside a git
// repository.
func (c *Client) IsRepository() bool {
	_, err := c.runner.Run("rev-parse", "--git-dir")
	return err == nil
}

// Status returns the short-form status output, trimmed. An empty string
// means a clean working tree.
func (c *Client) Status() string {
	result, err := c.runner.Run("status", "--short")
	if err != nil {
		return ""
	}
	return result.StdoutString(true)
}

// Diff returns the staged diff, falling back to the unstaged diff when
// nothing is staged. Returns an empty string when both are empty or the
// underlying commands fail.
func (c *Client) Diff() string {
	result, err := c.runner.Run("diff", "--cached")
	if err == nil && result.StdoutString(true) != "" {
		return result.StdoutString(false)
	}

	result, err = c.runner.Run("diff")
	if err != nil {
		return ""
	}
	return result.StdoutString(false)
}

// CurrentBranch returns the checked-out branch name. Falls back to
// "main" when the query fails (detached HEAD is treated as non-fatal).
func (c *Client) CurrentBranch() string {
	result, err := c.runner.Run("branch", "--show-current")
	if err != nil {
		return fallbackBranch
	}
	branch := result.StdoutString(true)
	if branch == "" {
		return fallbackBranch
	}
	return branch
}

// Branches lists local and remote branch names with the current-branch
// marker and remote prefix stripped, HEAD pointer entries removed, and
// duplicates dropped preserving first-seen order.
func (c *Client) Branches() []string {
	result, err := c.runner.Run("branch", "-a")
	if err != nil {
		return nil
	}

	var branches []string
	for _, line := range stringsutil.SplitNonEmpty(result.StdoutString(true), "\n") {
		branch := strings.TrimSpace(line)
		branch = strings.TrimPrefix(branch, "* ")
		branch = strings.TrimPrefix(branch, "remotes/origin/")
		if branch == "" || strings.HasPrefix(branch, "HEAD") {
			continue
		}
		branches = append(branches, branch)
	}
	return stringsutil.UniqueStrings(branches)
}

// RemoteURL returns the origin URL, or "No remote configured".
func (c *Client) RemoteURL() string {
	result, err := c.runner.Run("remote", "get-url", "origin")
	if err != nil {
		return NoRemoteConfigured
	}
	return result.StdoutString(true)
}

// AddAll stages every change in the working tree.
func (c *Client) AddAll() error {
	result, err := c.runner.Run("add", ".")
	if err != nil {
		return gitutil.WrapGitError("failed to add files", result, err)
	}
	return nil
}

// AddFiles stages the given paths.
func (c *Client) AddFiles(files []string) error {
	args := append([]string{"add"}, files...)
	result, err := c.runner.Run(args...)
	if err != nil {
		return gitutil.WrapGitError("failed to add files", result, err)
	}
	return nil
}

// Commit creates a commit with the given message.
func (c *Client) Commit(message string) error {
	result, err := c.runner.Run("commit", "-m", message)
	if err != nil {
		return gitutil.WrapGitError("failed to commit", result, err)
	}
	return nil
}

// UndoLastCommit soft-resets HEAD by one commit, keeping the changes
// staged.
func (c *Client) UndoLastCommit() error {
	result, err := c.runner.Run("reset", "--soft", "HEAD~1")
	if err != nil {
		return gitutil.WrapGitError("failed to undo commit", result, err)
	}
	return nil
}

// Checkout switches to an existing branch.
func (c *Client) Checkout(branch string) error {
	result, err := c.runner.Run("checkout", branch)
	if err != nil {
		return gitutil.WrapGitError("failed to checkout branch", result, err)
	}
	return nil
}

// CreateAndSwitchBranch creates a branch and switches to it.
func (c *Client) CreateAndSwitchBranch(branch string) error {
	result, err := c.runner.Run("checkout", "-b", branch)
	if err != nil {
		return gitutil.WrapGitError("failed to create branch", result, err)
	}
	return nil
}
