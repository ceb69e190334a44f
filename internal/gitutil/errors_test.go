package gitutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitauto-cli/gitauto/internal/gitcmd"
)

func TestWrapGitError(t *testing.T) {
	base := errors.New("exit status 1")

	t.Run("prefers stderr text", func(t *testing.T) {
		result := gitcmd.Result{Stderr: []byte("fatal: pathspec 'x' did not match\n")}
		err := WrapGitError("failed to add files", result, base)

		require.ErrorIs(t, err, base)
		assert.Contains(t, err.Error(), "fatal: pathspec 'x' did not match")
		assert.Contains(t, err.Error(), "failed to add files")
	})

	t.Run("falls back to the underlying error", func(t *testing.T) {
		err := WrapGitError("failed to commit", gitcmd.Result{}, base)

		require.ErrorIs(t, err, base)
		assert.Equal(t, "failed to commit: exit status 1", err.Error())
	})
}
