package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gitauto-cli/gitauto/internal/ui"
)

// ErrEmptyMessage is the hard error for an empty final commit message.
var ErrEmptyMessage = errors.New("commit message cannot be empty")

// defaultMaxRegenerations bounds the AI regenerate loop.
const defaultMaxRegenerations = 5

// CommitFlowOptions configures a CommitFlow.
type CommitFlowOptions struct {
	// AutoYes runs the flow without prompts: stage everything, accept
	// the first generated message, skip the undo offer.
	AutoYes bool
	// MaxRegenerations caps the regenerate loop; 0 means the default.
	MaxRegenerations int
}

// CommitFlow walks one staging → message → commit → undo/redo cycle
// and reports a tagged Outcome.
type CommitFlow struct {
	git      GitClient
	provider MessageProvider
	prompter Prompter
	printer  ui.Printer
	opts     CommitFlowOptions

	// spin is swapped out in tests.
	spin func(message string, fn func() (string, error)) (string, error)
}

// NewCommitFlow builds a flow. provider may be nil when AI is not
// configured.
func NewCommitFlow(git GitClient, provider MessageProvider, prompter Prompter, printer ui.Printer, opts CommitFlowOptions) *CommitFlow {
	if opts.MaxRegenerations <= 0 {
		opts.MaxRegenerations = defaultMaxRegenerations
	}
	return &CommitFlow{
		git:      git,
		provider: provider,
		prompter: prompter,
		printer:  printer,
		opts:     opts,
		spin:     spinWhile,
	}
}

func spinWhile(message string, fn func() (string, error)) (string, error) {
	sp := ui.NewSpinner(message)
	sp.Start()
	defer sp.Stop()
	return fn()
}

// Run executes one iteration of the commit flow.
func (f *CommitFlow) Run() (Outcome, error) {
	proceed, err := f.stagingDecision()
	if err != nil {
		return OutcomeAbort, err
	}
	if !proceed {
		return OutcomeAbort, nil
	}

	attempt, err := f.acquireMessage()
	if err != nil {
		return OutcomeAbort, err
	}

	if err := f.git.Commit(attempt.Message); err != nil {
		return OutcomeAbort, err
	}
	f.printer.Success("Committed (%s): %s", attempt.Provenance, attempt.Message)

	return f.postCommitDecision()
}

// stagingDecision shows the working tree state and stages changes.
// Returns false when the user declines to continue on a clean tree.
func (f *CommitFlow) stagingDecision() (bool, error) {
	status := f.git.Status()
	if status == "" {
		f.printer.Warning("No changes detected!")
		if f.opts.AutoYes {
			return false, errors.New("no changes to commit")
		}
		proceed, err := f.prompter.Confirm("Continue anyway?")
		if err != nil {
			return false, err
		}
		if !proceed {
			return false, nil
		}
	} else {
		f.printer.Info("Changes detected:")
		f.printer.Plain("%s", status)
	}

	f.printer.Step("Step 1: Add Files")

	files := "."
	if !f.opts.AutoYes {
		input, err := f.prompter.Input("Files to add (. for all, or specific files): ")
		if err != nil {
			return false, err
		}
		if input != "" {
			files = input
		}
	}

	if files == "." {
		if err := f.git.AddAll(); err != nil {
			return false, err
		}
	} else {
		if err := f.git.AddFiles(strings.Fields(files)); err != nil {
			return false, err
		}
	}

	f.printer.Success("Added files: %s", files)
	return true, nil
}

// acquireMessage obtains the commit message, via the AI provider when
// configured and accepted, otherwise manually. An empty final message
// is a hard error.
func (f *CommitFlow) acquireMessage() (CommitAttempt, error) {
	f.printer.Step("Step 2: Commit Message")

	if f.provider != nil {
		useAI := f.opts.AutoYes
		if !useAI {
			var err error
			useAI, err = f.prompter.Confirm("Generate commit message with AI?")
			if err != nil {
				return CommitAttempt{}, err
			}
		}
		if useAI {
			if attempt, ok, err := f.generateWithProvider(); err != nil || ok {
				return attempt, err
			}
			// Provider failed or the user asked for manual entry.
		}
	}

	if f.opts.AutoYes {
		return CommitAttempt{}, fmt.Errorf("%w: no interactive fallback available", ErrEmptyMessage)
	}

	message, err := f.prompter.Input("Enter commit message: ")
	if err != nil {
		return CommitAttempt{}, err
	}
	if message == "" {
		return CommitAttempt{}, ErrEmptyMessage
	}
	return CommitAttempt{Message: message, Provenance: ProvenanceManual}, nil
}

// generateWithProvider runs the bounded regenerate loop. ok=false
// (with nil error) means fall back to manual entry.
func (f *CommitFlow) generateWithProvider() (CommitAttempt, bool, error) {
	diff := f.git.Diff()
	if diff == "" {
		f.printer.Warning("No diff available for AI generation.")
		return CommitAttempt{}, false, nil
	}

	f.printer.Info("Using AI provider: %s", f.provider.Name())

	for i := 0; i < f.opts.MaxRegenerations; i++ {
		message, err := f.spin("Generating commit message...", func() (string, error) {
			return f.provider.GenerateCommitMessage(diff)
		})
		if err != nil {
			// AI failure is never fatal to the workflow.
			f.printer.Warning("AI generation failed: %v", err)
			return CommitAttempt{}, false, nil
		}

		f.printer.Success("AI Generated: %s", message)
		if f.opts.AutoYes {
			return CommitAttempt{Message: message, Provenance: ProvenanceAI}, true, nil
		}

		choice, err := f.prompter.Input("Use this message? [y/r/m] (y=yes, r=regenerate, m=manual): ")
		if err != nil {
			return CommitAttempt{}, false, err
		}
		switch strings.ToLower(choice) {
		case "y", "yes", "":
			return CommitAttempt{Message: message, Provenance: ProvenanceAI}, true, nil
		case "r":
			f.printer.Info("Regenerating commit message...")
			continue
		default:
			return CommitAttempt{}, false, nil
		}
	}

	f.printer.Warning("Regeneration limit reached, falling back to manual entry.")
	return CommitAttempt{}, false, nil
}

// postCommitDecision offers undo with redo. Undo then declining the
// redo is an intentional stop: the run ends without branch or push.
func (f *CommitFlow) postCommitDecision() (Outcome, error) {
	if f.opts.AutoYes {
		return OutcomeContinue, nil
	}

	undo, err := f.prompter.Confirm("Undo this commit (soft reset, keeps changes staged)?")
	if err != nil {
		return OutcomeAbort, err
	}
	if !undo {
		return OutcomeContinue, nil
	}

	if err := f.git.UndoLastCommit(); err != nil {
		f.printer.Warning("Undo unavailable: %v", err)
		return OutcomeContinue, nil
	}
	f.printer.Success("Commit undone, changes restored to the staging area")

	redo, err := f.prompter.Confirm("Recommit now?")
	if err != nil {
		return OutcomeAbort, err
	}
	if redo {
		return OutcomeRestart, nil
	}
	return OutcomeAbort, nil
}
