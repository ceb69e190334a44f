package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// newTestRepo creates an isolated repository under t.TempDir and
// returns a Client bound to it. Nothing touches the real working tree.
func newTestRepo(t *testing.T) (string, *Client) {
	t.Helper()

	dir := t.TempDir()
	mustGit(t, dir, "init", "-b", "main")
	mustGit(t, dir, "config", "user.email", "test@example.com")
	mustGit(t, dir, "config", "user.name", "Test User")
	mustGit(t, dir, "config", "commit.gpgsign", "false")

	return dir, NewClient(Options{Dir: dir})
}

// newTestRepoWithCommit additionally creates an initial commit so
// operations like reset and checkout have history to work with.
func newTestRepoWithCommit(t *testing.T) (string, *Client) {
	t.Helper()

	dir, client := newTestRepo(t)
	writeFile(t, dir, "README.md", "hello\n")
	mustGit(t, dir, "add", ".")
	mustGit(t, dir, "commit", "-m", "initial commit")
	return dir, client
}

// newClonedRepoPair creates a bare origin plus a working clone that
// already tracks it, for push/pull scenarios.
func newClonedRepoPair(t *testing.T) (originDir, workDir string, client *Client) {
	t.Helper()

	seedDir, _ := newTestRepoWithCommit(t)

	originDir = filepath.Join(t.TempDir(), "origin.git")
	mustGit(t, seedDir, "clone", "--bare", seedDir, originDir)

	workDir = filepath.Join(t.TempDir(), "work")
	mustGit(t, seedDir, "clone", originDir, workDir)
	mustGit(t, workDir, "config", "user.email", "test@example.com")
	mustGit(t, workDir, "config", "user.name", "Test User")
	mustGit(t, workDir, "config", "commit.gpgsign", "false")

	return originDir, workDir, NewClient(Options{Dir: workDir})
}

// mustCloneForTest produces an extra working clone of origin, used to
// advance the remote behind the primary clone's back.
func mustCloneForTest(t *testing.T, originDir string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "other")
	mustGit(t, filepath.Dir(dir), "clone", originDir, dir)
	mustGit(t, dir, "config", "user.email", "test@example.com")
	mustGit(t, dir, "config", "user.name", "Test User")
	mustGit(t, dir, "config", "commit.gpgsign", "false")
	return dir
}

func mustGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return string(out)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
