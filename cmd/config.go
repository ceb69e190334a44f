package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gitauto-cli/gitauto/internal/config"
)

// settableKeys maps config keys to a short description and an optional
// value validator.
var settableKeys = map[string]struct {
	description string
	validate    func(string) error
}{
	"provider": {
		description: "AI backend (openai, anthropic, gemini)",
		validate: func(v string) error {
			if v != "" && !config.IsSupportedProvider(v) {
				return fmt.Errorf("unsupported provider %q (expected one of: %s)",
					v, strings.Join(config.SupportedProviders, ", "))
			}
			return nil
		},
	},
	"api_key":  {description: "API key for the selected provider"},
	"api_base": {description: "Override the provider API base URL"},
	"model":    {description: "Override the provider default model"},
	"auto_rebase": {
		description: "Allow unattended rebase when a non-interactive push is rejected",
		validate: func(v string) error {
			if _, err := strconv.ParseBool(v); err != nil {
				return fmt.Errorf("auto_rebase must be true or false, got %q", v)
			}
			return nil
		},
	},
	"prompt_template": {description: "Builtin template name or path to a YAML template file"},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and modify gitauto configuration",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return fmt.Errorf("configuration error: %w", configErr)
		}

		keys := make([]string, 0, len(settableKeys))
		for key := range settableKeys {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			value := viper.GetString(key)
			if key == "api_key" && value != "" {
				value = "(set)"
			}
			fmt.Printf("%s = %s\n", key, value)
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return fmt.Errorf("configuration error: %w", configErr)
		}
		key := args[0]
		if _, ok := settableKeys[key]; !ok {
			return fmt.Errorf("unknown config key %q", key)
		}
		fmt.Println(viper.GetString(key))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return fmt.Errorf("configuration error: %w", configErr)
		}

		key, value := args[0], args[1]
		entry, ok := settableKeys[key]
		if !ok {
			return fmt.Errorf("unknown config key %q", key)
		}
		if entry.validate != nil {
			if err := entry.validate(value); err != nil {
				return err
			}
		}

		if key == "auto_rebase" {
			enabled, _ := strconv.ParseBool(value)
			if err := config.Set(key, enabled); err != nil {
				return err
			}
		} else if err := config.Set(key, value); err != nil {
			return err
		}

		fmt.Printf("Set %s\n", key)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd, configGetCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
