// Package cmd wires the command line interface to the workflow engine.
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitauto-cli/gitauto/internal/config"
	"github.com/gitauto-cli/gitauto/internal/git"
	"github.com/gitauto-cli/gitauto/internal/llm"
	"github.com/gitauto-cli/gitauto/internal/ui"
	"github.com/gitauto-cli/gitauto/internal/workflow"
)

var (
	cfgFile    string
	autoYes    bool
	verbose    bool
	branchDesc string
	configErr  error

	rootCmd = &cobra.Command{
		Use:   "gitauto",
		Short: "gitauto - interactive git commit and push automation",
		Long: `gitauto walks a full local git workflow: stage changes, write or ` +
			`AI-generate a commit message, commit with undo/redo, switch or create ` +
			`a branch, and push with assisted conflict resolution.`,
		Version:       fmt.Sprintf("%s (built at %s)", Version, BuildTime),
		RunE:          runWorkflow,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
)

// Execute runs the root command under ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Configuration file path (default is $HOME/.gitauto/config.yaml)")
	rootCmd.Flags().BoolVarP(&autoYes, "yes", "y", false,
		"Run without prompts: stage all, accept the AI message, push")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "V", false,
		"Show the git commands being run")
	rootCmd.Flags().StringVarP(&branchDesc, "branch", "b", "",
		"Create and switch to a new branch named from this description")
}

func initConfig() {
	configErr = config.InitConfig(cfgFile)
}

func runWorkflow(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return fmt.Errorf("configuration error: %w", configErr)
	}

	printer := ui.Printer{}
	printer.Header(fmt.Sprintf("Git Automation Tool v%s", Version))

	cfg := config.GetConfig()

	provider, err := llm.NewProvider(cfg)
	if err != nil {
		if !errors.Is(err, llm.ErrNotConfigured) {
			return err
		}
		printer.Warning("No AI provider configured, commit messages will be entered manually.")
		printer.Plain("Hint: run 'gitauto setup' to enable AI commit generation.")
		provider = nil
	}

	orchestrator := workflow.NewOrchestrator(
		git.NewClient(git.Options{Verbose: verbose}),
		provider,
		&workflow.InteractivePrompter{},
		printer,
		workflow.Options{
			AutoYes:    autoYes,
			AutoRebase: cfg.AutoRebase,
			BranchDesc: branchDesc,
		},
	)
	return orchestrator.Run()
}
