package workflow

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gitauto-cli/gitauto/internal/ui"
)

// fakeGit is a scripted GitClient that records every mutating call.
type fakeGit struct {
	isRepo    bool
	status    string
	diff      string
	branch    string
	branches  []string
	remoteURL string

	addAllErr   error
	addFilesErr error
	commitErr   error
	undoErr     error
	checkoutErr error
	createErr   error

	// pushQueue scripts successive Push calls; once drained, pushes
	// succeed.
	pushQueue      []pushScript
	setUpstreamErr error
	forcePushErr   error
	pullRebaseErr  error
	pullMergeErr   error

	calls   []string
	commits []string
	added   [][]string
}

type pushScript struct {
	stderr string
	err    error
}

func newFakeGit() *fakeGit {
	return &fakeGit{
		isRepo:    true,
		status:    "M main.go",
		diff:      "diff --git a/main.go b/main.go",
		branch:    "main",
		branches:  []string{"main"},
		remoteURL: "git@example.com:demo/repo.git",
	}
}

func (g *fakeGit) record(call string) { g.calls = append(g.calls, call) }

func (g *fakeGit) count(call string) int {
	n := 0
	for _, c := range g.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (g *fakeGit) IsRepository() bool    { return g.isRepo }
func (g *fakeGit) Status() string        { return g.status }
func (g *fakeGit) Diff() string          { return g.diff }
func (g *fakeGit) CurrentBranch() string { return g.branch }
func (g *fakeGit) Branches() []string    { return g.branches }
func (g *fakeGit) RemoteURL() string     { return g.remoteURL }

func (g *fakeGit) AddAll() error {
	g.record("add-all")
	return g.addAllErr
}

func (g *fakeGit) AddFiles(files []string) error {
	g.record("add-files")
	g.added = append(g.added, files)
	return g.addFilesErr
}

func (g *fakeGit) Commit(message string) error {
	g.record("commit")
	if g.commitErr != nil {
		return g.commitErr
	}
	g.commits = append(g.commits, message)
	return nil
}

func (g *fakeGit) UndoLastCommit() error {
	g.record("undo")
	return g.undoErr
}

func (g *fakeGit) Checkout(branch string) error {
	g.record("checkout " + branch)
	return g.checkoutErr
}

func (g *fakeGit) CreateAndSwitchBranch(branch string) error {
	g.record("create-branch " + branch)
	if g.createErr == nil {
		g.branch = branch
	}
	return g.createErr
}

func (g *fakeGit) Push(string) (string, error) {
	g.record("push")
	if len(g.pushQueue) == 0 {
		return "", nil
	}
	next := g.pushQueue[0]
	g.pushQueue = g.pushQueue[1:]
	return next.stderr, next.err
}

func (g *fakeGit) PushSetUpstream(string) (string, error) {
	g.record("push-set-upstream")
	return "", g.setUpstreamErr
}

func (g *fakeGit) ForcePush(string) (string, error) {
	g.record("force-push")
	return "", g.forcePushErr
}

func (g *fakeGit) PullRebase(string) error {
	g.record("pull-rebase")
	return g.pullRebaseErr
}

func (g *fakeGit) PullMerge(string) error {
	g.record("pull-merge")
	return g.pullMergeErr
}

// scriptPrompter answers prompts from a fixed script and fails the
// test when asked more than it was scripted for.
type scriptPrompter struct {
	t       *testing.T
	answers []string
	asked   []string
}

func newScriptPrompter(t *testing.T, answers ...string) *scriptPrompter {
	return &scriptPrompter{t: t, answers: answers}
}

func (p *scriptPrompter) next(prompt string) string {
	p.t.Helper()
	if len(p.answers) == 0 {
		p.t.Fatalf("unexpected prompt: %q", prompt)
	}
	p.asked = append(p.asked, prompt)
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer
}

func (p *scriptPrompter) Confirm(question string) (bool, error) {
	answer := p.next(question)
	return answer == "y" || answer == "yes", nil
}

func (p *scriptPrompter) Input(prompt string) (string, error) {
	return p.next(prompt), nil
}

// fakeProvider returns scripted messages, then errors once drained.
type fakeProvider struct {
	messages []string
	err      error
	calls    int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) GenerateCommitMessage(string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if len(f.messages) == 0 {
		return "", errors.New("fake provider drained")
	}
	message := f.messages[0]
	if len(f.messages) > 1 {
		f.messages = f.messages[1:]
	}
	return message, nil
}

func quietPrinter() ui.Printer {
	return ui.Printer{Out: &bytes.Buffer{}}
}

func noSpin(message string, fn func() (string, error)) (string, error) {
	return fn()
}
