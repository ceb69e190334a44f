// Package workflow implements the interactive commit-and-push engine:
// the commit flow state machine, the push conflict resolver, and the
// orchestrator that drives them to a terminal outcome.
package workflow

// GitClient abstracts git operations for testability. Queries re-run
// git on every call; the repository is never modeled in memory.
type GitClient interface {
	IsRepository() bool
	Status() string
	Diff() string
	CurrentBranch() string
	Branches() []string
	RemoteURL() string

	AddAll() error
	AddFiles(files []string) error
	Commit(message string) error
	UndoLastCommit() error
	Checkout(branch string) error
	CreateAndSwitchBranch(branch string) error

	Push(branch string) (stderr string, err error)
	PushSetUpstream(branch string) (stderr string, err error)
	ForcePush(branch string) (stderr string, err error)
	PullRebase(branch string) error
	PullMerge(branch string) error
}

// MessageProvider abstracts AI commit message generation. A nil
// provider means AI is not configured; errors degrade to manual entry.
type MessageProvider interface {
	Name() string
	GenerateCommitMessage(diff string) (string, error)
}
