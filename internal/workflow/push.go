package workflow

import (
	"fmt"
	"strings"

	"github.com/gitauto-cli/gitauto/internal/ui"
)

// ForceConfirmationToken must be typed exactly to execute a force push.
const ForceConfirmationToken = "force"

// rejectionPatterns are matched case-insensitively against push stderr
// to distinguish remote divergence from unrelated failures.
var rejectionPatterns = []string{"fetch first", "non-fast-forward", "rejected"}

// IsPushRejection reports whether stderr text indicates the remote
// rejected the push because it has commits the local branch lacks.
func IsPushRejection(stderr string) bool {
	lower := strings.ToLower(stderr)
	for _, pattern := range rejectionPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// PushResolverOptions configures a PushResolver.
type PushResolverOptions struct {
	// Interactive enables the strategy menu. When false, a rejection is
	// only retried when AutoRebase is set.
	Interactive bool
	// AutoRebase permits one unattended rebase + re-push on rejection.
	// Destructive strategies (merge, force) are never chosen unattended.
	AutoRebase bool
}

// PushResolver attempts a push and walks the recovery decision tree on
// rejection.
type PushResolver struct {
	git      GitClient
	prompter Prompter
	printer  ui.Printer
	opts     PushResolverOptions
}

func NewPushResolver(git GitClient, prompter Prompter, printer ui.Printer, opts PushResolverOptions) *PushResolver {
	return &PushResolver{git: git, prompter: prompter, printer: printer, opts: opts}
}

// Resolve pushes branch to origin, resolving divergence per the
// configured strategy tree.
func (r *PushResolver) Resolve(branch string) PushResult {
	stderr, err := r.git.Push(branch)
	if err == nil {
		return PushResult{Success: true, Strategy: StrategyDirect}
	}

	if !IsPushRejection(stderr) {
		// Unrelated failure (auth, network, missing upstream): no retry
		// here, the orchestrator decides what to offer next.
		return PushResult{Strategy: StrategyNone, Err: err}
	}

	r.printer.Warning("Push rejected: the remote branch has diverged from your local branch.")

	if !r.opts.Interactive {
		return r.resolveUnattended(branch)
	}
	return r.resolveInteractive(branch)
}

// resolveUnattended performs at most one rebase and one re-push. Either
// outcome is terminal.
func (r *PushResolver) resolveUnattended(branch string) PushResult {
	if !r.opts.AutoRebase {
		return PushResult{
			Strategy: StrategyNone,
			Err:      fmt.Errorf("push rejected and auto_rebase is disabled; rerun interactively or enable auto_rebase"),
		}
	}

	r.printer.Info("Rebasing onto origin/%s...", branch)
	if err := r.git.PullRebase(branch); err != nil {
		return PushResult{Strategy: StrategyRebase, Err: err}
	}

	if _, err := r.git.Push(branch); err != nil {
		return PushResult{Strategy: StrategyRebase, Err: err}
	}
	return PushResult{Success: true, Strategy: StrategyRebase}
}

func (r *PushResolver) resolveInteractive(branch string) PushResult {
	r.printer.Plain("How would you like to resolve it?")
	r.printer.Plain("  rebase - rebase your commits onto origin/%s, then push", branch)
	r.printer.Plain("  merge  - pull origin/%s with a merge, then push", branch)
	r.printer.Plain("  force  - overwrite the remote branch (requires confirmation)")
	r.printer.Plain("  abort  - stop and resolve manually")

	choice, err := r.prompter.Input("Choose a strategy [rebase/merge/force/abort]: ")
	if err != nil {
		return PushResult{Strategy: StrategyNone, Err: err}
	}

	switch strings.ToLower(choice) {
	case "rebase", "r", "":
		return r.tryRebase(branch)
	case "merge", "m":
		return r.tryMerge(branch)
	case "force", "f":
		return r.tryForce(branch)
	default:
		return r.abortResolution()
	}
}

// tryRebase rebases and re-pushes. A rebase failure (usually conflicts)
// offers a single nested fallback; the tree never recurses further.
func (r *PushResolver) tryRebase(branch string) PushResult {
	r.printer.Info("Rebasing onto origin/%s...", branch)
	if err := r.git.PullRebase(branch); err != nil {
		r.printer.Error("Rebase failed: %v", err)

		choice, perr := r.prompter.Input("Fall back to [merge/force/abort]: ")
		if perr != nil {
			return PushResult{Strategy: StrategyRebase, Err: perr}
		}
		switch strings.ToLower(choice) {
		case "merge", "m":
			return r.tryMerge(branch)
		case "force", "f":
			return r.tryForce(branch)
		default:
			return r.abortResolution()
		}
	}

	if _, err := r.git.Push(branch); err != nil {
		return PushResult{Strategy: StrategyRebase, Err: err}
	}
	return PushResult{Success: true, Strategy: StrategyRebase}
}

func (r *PushResolver) tryMerge(branch string) PushResult {
	r.printer.Info("Pulling origin/%s with merge...", branch)
	if err := r.git.PullMerge(branch); err != nil {
		return PushResult{Strategy: StrategyMerge, Err: err}
	}

	if _, err := r.git.Push(branch); err != nil {
		return PushResult{Strategy: StrategyMerge, Err: err}
	}
	return PushResult{Success: true, Strategy: StrategyMerge}
}

// tryForce executes the force push only when the confirmation token is
// typed exactly; anything else cancels with no command run.
func (r *PushResolver) tryForce(branch string) PushResult {
	return ConfirmedForcePush(r.git, r.prompter, r.printer, branch)
}

func (r *PushResolver) abortResolution() PushResult {
	r.printer.Info("Leaving the repository as-is. Resolve manually, e.g. with " +
		"'git status', 'git rebase --abort' or 'git merge --abort'.")
	return PushResult{Strategy: StrategyNone, Cancelled: true}
}

// ConfirmedForcePush prompts for the confirmation token and force
// pushes on an exact match. Shared by the resolver and the
// orchestrator's last-resort fallback.
func ConfirmedForcePush(git GitClient, prompter Prompter, printer ui.Printer, branch string) PushResult {
	printer.Warning("A force push overwrites origin/%s and can discard remote commits.", branch)
	token, err := prompter.Input(fmt.Sprintf("Type %q to confirm: ", ForceConfirmationToken))
	if err != nil {
		return PushResult{Strategy: StrategyForce, Err: err}
	}
	if token != ForceConfirmationToken {
		printer.Info("Force push cancelled.")
		return PushResult{Strategy: StrategyForce, Cancelled: true}
	}

	if _, err := git.ForcePush(branch); err != nil {
		return PushResult{Strategy: StrategyForce, Err: err}
	}
	return PushResult{Success: true, Strategy: StrategyForce}
}
