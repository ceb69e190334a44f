package gitcmd

import (
	"bytes"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func TestRunCapturesOutput(t *testing.T) {
	requireGit(t)

	result, err := Runner{}.Run("version")
	require.NoError(t, err)
	assert.Contains(t, result.StdoutString(true), "git version")
	assert.Empty(t, result.StderrString(true))
}

func TestRunCapturesStderrOnFailure(t *testing.T) {
	requireGit(t)

	result, err := Runner{Dir: t.TempDir()}.Run("rev-parse", "--git-dir")
	require.Error(t, err)
	assert.NotEmpty(t, result.StderrString(true))
}

func TestRunVerboseLogsCommandLine(t *testing.T) {
	requireGit(t)

	var log bytes.Buffer
	runner := Runner{Verbose: true, Logger: &log}

	_, err := runner.Run("version")
	require.NoError(t, err)
	assert.Equal(t, "Running: git version\n", log.String())
}

func TestRunQuietByDefault(t *testing.T) {
	requireGit(t)

	var log bytes.Buffer
	runner := Runner{Logger: &log}

	_, err := runner.Run("version")
	require.NoError(t, err)
	assert.Empty(t, log.String())
}

func TestRunWithWriters(t *testing.T) {
	requireGit(t)

	var stdout, stderr bytes.Buffer
	err := Runner{}.RunWithWriters(&stdout, &stderr, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout.String(), "git version"))
}

func TestResultStringTrimming(t *testing.T) {
	result := Result{Stdout: []byte("  main  \n"), Stderr: []byte(" err \n")}

	assert.Equal(t, "main", result.StdoutString(true))
	assert.Equal(t, "  main  \n", result.StdoutString(false))
	assert.Equal(t, "err", result.StderrString(true))
}
