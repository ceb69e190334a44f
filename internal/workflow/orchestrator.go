package workflow

import (
	"errors"
	"fmt"

	"github.com/gitauto-cli/gitauto/internal/branch"
	"github.com/gitauto-cli/gitauto/internal/ui"
)

// ErrNotARepository is the fatal environment error for running outside
// a git repository.
var ErrNotARepository = errors.New("not a git repository (run 'git init' first)")

// Options configures an Orchestrator run.
type Options struct {
	// AutoYes runs the whole workflow without prompts.
	AutoYes bool
	// AutoRebase permits unattended rebase on push rejection.
	AutoRebase bool
	// BranchDesc, when set, creates and switches to a branch named from
	// the description before the commit flow runs.
	BranchDesc string
	// MaxRegenerations caps the AI regenerate loop; 0 means the default.
	MaxRegenerations int
}

// Orchestrator drives the commit flow to a terminal outcome, then the
// branch step, then the push resolver.
type Orchestrator struct {
	git      GitClient
	provider MessageProvider
	prompter Prompter
	printer  ui.Printer
	opts     Options
}

func NewOrchestrator(git GitClient, provider MessageProvider, prompter Prompter, printer ui.Printer, opts Options) *Orchestrator {
	return &Orchestrator{
		git:      git,
		provider: provider,
		prompter: prompter,
		printer:  printer,
		opts:     opts,
	}
}

// Run executes the full workflow. It returns an error only for fatal
// conditions; user-initiated stops return nil.
func (o *Orchestrator) Run() error {
	if !o.git.IsRepository() {
		return ErrNotARepository
	}

	o.printer.Info("Remote: %s", o.git.RemoteURL())
	o.printer.Info("Current branch: %s", o.git.CurrentBranch())

	if err := o.createBranchFromDesc(); err != nil {
		return err
	}

	flow := NewCommitFlow(o.git, o.provider, o.prompter, o.printer, CommitFlowOptions{
		AutoYes:          o.opts.AutoYes,
		MaxRegenerations: o.opts.MaxRegenerations,
	})

	for {
		outcome, err := flow.Run()
		if outcome == OutcomeRestart {
			continue
		}
		if outcome == OutcomeAbort {
			if err != nil {
				return err
			}
			o.printer.Info("Run aborted, no branch or push performed.")
			return nil
		}
		break
	}

	if err := o.branchStep(); err != nil {
		return err
	}

	return o.pushStep()
}

// createBranchFromDesc handles the -b flag: a branch name is generated
// from the free-form description.
func (o *Orchestrator) createBranchFromDesc() error {
	if o.opts.BranchDesc == "" {
		return nil
	}

	name := branch.GenerateName(o.opts.BranchDesc)
	if name == "" {
		return errors.New("invalid branch description: cannot generate branch name")
	}

	o.printer.Info("Creating and switching to branch: %s", name)
	if err := o.git.CreateAndSwitchBranch(name); err != nil {
		return err
	}
	o.printer.Success("Switched to new branch: %s", name)
	return nil
}

// branchStep shows known branches and offers a switch, creating the
// branch when it does not exist yet.
func (o *Orchestrator) branchStep() error {
	if o.opts.AutoYes {
		return nil
	}

	o.printer.Step("Step 3: Branch Management")

	current := o.git.CurrentBranch()
	branches := o.git.Branches()
	if len(branches) > 0 {
		o.printer.Info("Available branches:")
		for i, b := range branches {
			if i >= 10 {
				break
			}
			marker := " "
			if b == current {
				marker = "→"
			}
			o.printer.Plain("  %s %s", marker, b)
		}
	}

	target, err := o.prompter.Input(fmt.Sprintf("Switch branch? (leave empty to stay on '%s'): ", current))
	if err != nil {
		return err
	}
	if target == "" || target == current {
		return nil
	}

	if err := o.git.Checkout(target); err == nil {
		o.printer.Success("Switched to branch: %s", target)
		return nil
	}

	create, err := o.prompter.Confirm("Branch doesn't exist. Create it?")
	if err != nil {
		return err
	}
	if !create {
		return nil
	}

	if err := o.git.CreateAndSwitchBranch(target); err != nil {
		o.printer.Error("Failed to create branch: %v", err)
		return nil
	}
	o.printer.Success("Created and switched to branch: %s", target)
	return nil
}

// pushStep asks whether to push and runs the resolver, then offers the
// orchestrator-level fallback (set-upstream, then force) on failure.
// First-time pushes fail for a different reason than divergence, which
// is why this second layer exists.
func (o *Orchestrator) pushStep() error {
	o.printer.Step("Step 4: Push Changes")

	push := o.opts.AutoYes
	if !push {
		var err error
		push, err = o.prompter.Confirm("Push to remote?")
		if err != nil {
			return err
		}
	}
	if !push {
		o.printer.Info("Skipped push")
		o.finish()
		return nil
	}

	// Re-query: the branch step may have moved HEAD.
	current := o.git.CurrentBranch()
	o.printer.Info("Pushing to origin/%s...", current)

	resolver := NewPushResolver(o.git, o.prompter, o.printer, PushResolverOptions{
		Interactive: !o.opts.AutoYes,
		AutoRebase:  o.opts.AutoRebase,
	})

	result := resolver.Resolve(current)
	switch {
	case result.Success:
		o.printer.Success("Successfully pushed to origin/%s (strategy: %s)", current, result.Strategy)
	case result.Cancelled:
		// User chose to stop; not an error.
	default:
		result = o.pushFallback(current, result)
		if result.Success {
			o.printer.Success("Successfully pushed to origin/%s (strategy: %s)", current, result.Strategy)
		} else if result.Err != nil {
			o.printer.Error("Failed to push: %v", result.Err)
		}
	}

	o.finish()
	return nil
}

// pushFallback offers one more round of set-upstream-and-push or force
// push before giving up.
func (o *Orchestrator) pushFallback(branchName string, prior PushResult) PushResult {
	if prior.Err != nil {
		o.printer.Error("Push failed: %v", prior.Err)
	}

	if o.opts.AutoYes {
		// Setting upstream is not destructive, so it is the only
		// fallback taken unattended.
		if _, err := o.git.PushSetUpstream(branchName); err != nil {
			return PushResult{Strategy: StrategyDirect, Err: err}
		}
		o.printer.Success("Pushed and set upstream for origin/%s", branchName)
		return PushResult{Success: true, Strategy: StrategyDirect}
	}

	upstream, err := o.prompter.Confirm("Set upstream and push?")
	if err != nil {
		return PushResult{Strategy: StrategyNone, Err: err}
	}
	if upstream {
		_, err := o.git.PushSetUpstream(branchName)
		if err == nil {
			return PushResult{Success: true, Strategy: StrategyDirect}
		}
		o.printer.Error("Failed to push with upstream: %v", err)
	}

	force, err := o.prompter.Confirm("Force push instead?")
	if err != nil {
		return PushResult{Strategy: StrategyNone, Err: err}
	}
	if !force {
		return PushResult{Strategy: StrategyNone, Cancelled: true}
	}
	return ConfirmedForcePush(o.git, o.prompter, o.printer, branchName)
}

func (o *Orchestrator) finish() {
	o.printer.Header("All Done!")
	o.printer.Success("Automation completed")
}
