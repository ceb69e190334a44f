package git

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// Push pushes branch to origin with progress streamed to the terminal.
// Stderr is additionally captured so callers can classify rejections.
func (c *Client) Push(branch string) (stderr string, err error) {
	return c.streamingPush("push", "origin", branch)
}

// PushSetUpstream pushes branch to origin and sets the upstream
// tracking reference.
func (c *Client) PushSetUpstream(branch string) (stderr string, err error) {
	return c.streamingPush("push", "--set-upstream", "origin", branch)
}

// ForcePush force-pushes branch to origin. Callers are responsible for
// obtaining explicit confirmation first.
func (c *Client) ForcePush(branch string) (stderr string, err error) {
	return c.streamingPush("push", "--force", "origin", branch)
}

// git writes push progress to stderr, so stderr is teed: the user sees
// it live while the resolver still gets the text for rejection matching.
func (c *Client) streamingPush(args ...string) (string, error) {
	var errBuf bytes.Buffer
	err := c.runner.RunWithWriters(os.Stdout, io.MultiWriter(os.Stderr, &errBuf), args...)
	return errBuf.String(), err
}

// PullRebase pulls branch from origin, replaying local commits on top.
func (c *Client) PullRebase(branch string) error {
	if err := c.runner.RunStreaming("pull", "--rebase", "origin", branch); err != nil {
		return fmt.Errorf("failed to pull with rebase: %w", err)
	}
	return nil
}

// PullMerge pulls branch from origin with a merge.
func (c *Client) PullMerge(branch string) error {
	if err := c.runner.RunStreaming("pull", "--no-rebase", "origin", branch); err != nil {
		return fmt.Errorf("failed to pull with merge: %w", err)
	}
	return nil
}
