package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gitauto-cli/gitauto/internal/config"
	"github.com/gitauto-cli/gitauto/internal/ui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure an AI provider for commit message generation",
	Long: `Interactively select an AI provider (openai, anthropic or gemini) and ` +
		`store its API key. The key is written to the config file with 0600 ` +
		`permissions and is only ever sent to the selected backend.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	if configErr != nil {
		return fmt.Errorf("configuration error: %w", configErr)
	}

	printer := ui.Printer{}
	printer.Header("gitauto Setup")
	printer.Plain("To enable AI-powered commit messages, select a provider and enter its API key.")
	printer.Plain("Supported providers: %s", strings.Join(config.SupportedProviders, ", "))

	reader := bufio.NewReader(os.Stdin)
	fmt.Fprint(os.Stderr, "\nAI provider (or leave empty to skip): ")
	provider, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read provider: %w", err)
	}
	provider = strings.ToLower(strings.TrimSpace(provider))

	if provider == "" {
		printer.Info("Skipped AI provider setup. You can run 'gitauto setup' anytime.")
		return nil
	}
	if !config.IsSupportedProvider(provider) {
		return fmt.Errorf("unsupported provider %q (expected one of: %s)",
			provider, strings.Join(config.SupportedProviders, ", "))
	}

	apiKey, err := readAPIKey(provider)
	if err != nil {
		return err
	}
	if apiKey == "" {
		printer.Warning("No API key entered, skipping AI setup.")
		return nil
	}

	if err := config.SetValues(map[string]any{
		"provider": provider,
		"api_key":  apiKey,
	}); err != nil {
		return err
	}

	printer.Success("%s API key saved.", provider)
	return nil
}

// readAPIKey reads the key without echo on a TTY, falling back to a
// plain line read when stdin is piped.
func readAPIKey(provider string) (string, error) {
	fmt.Fprintf(os.Stderr, "API key for %s: ", provider)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		key, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read API key: %w", err)
		}
		return strings.TrimSpace(string(key)), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	return strings.TrimSpace(line), nil
}
