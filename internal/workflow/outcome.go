package workflow

// Outcome is the terminal result of one commit flow iteration. The
// orchestrator loops on Restart, proceeds to branch/push on Continue,
// and ends the whole run on Abort.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeRestart
	OutcomeAbort
)

func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeRestart:
		return "restart"
	case OutcomeAbort:
		return "abort"
	}
	return "unknown"
}

// Provenance records where a commit message came from.
type Provenance int

const (
	ProvenanceManual Provenance = iota
	ProvenanceAI
)

func (p Provenance) String() string {
	if p == ProvenanceAI {
		return "ai-generated"
	}
	return "manual"
}

// CommitAttempt is a candidate commit message. It is consumed once by
// the commit operation; an undo creates a new attempt, never a
// resurrection of the old one.
type CommitAttempt struct {
	Message    string
	Provenance Provenance
}

// PushStrategy identifies how a push ultimately succeeded (or which
// strategy was being attempted when it failed).
type PushStrategy int

const (
	StrategyNone PushStrategy = iota
	StrategyDirect
	StrategyRebase
	StrategyMerge
	StrategyForce
)

func (s PushStrategy) String() string {
	switch s {
	case StrategyDirect:
		return "direct"
	case StrategyRebase:
		return "rebase"
	case StrategyMerge:
		return "merge"
	case StrategyForce:
		return "force"
	}
	return "none"
}

// PushResult reports the outcome of a push resolution. Cancelled marks
// a user-declined destructive action, which is not an error.
type PushResult struct {
	Success   bool
	Strategy  PushStrategy
	Cancelled bool
	Err       error
}
