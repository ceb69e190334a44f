// Package config loads and persists gitauto configuration via viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration, loaded once at startup
// and threaded into the components that need it.
type Config struct {
	Provider       string `mapstructure:"provider"`
	APIKey         string `mapstructure:"api_key"`
	APIBase        string `mapstructure:"api_base"`
	Model          string `mapstructure:"model"`
	AutoRebase     bool   `mapstructure:"auto_rebase"`
	PromptTemplate string `mapstructure:"prompt_template"`
}

const (
	DefaultConfigDir      = ".gitauto"
	DefaultConfigName     = "config"
	DefaultPromptTemplate = "default"
	EnvPrefix             = "GITAUTO"
)

// SupportedProviders lists the AI backends an adapter exists for.
var SupportedProviders = []string{"openai", "anthropic", "gemini"}

// IsSupportedProvider reports whether name has an adapter.
func IsSupportedProvider(name string) bool {
	for _, p := range SupportedProviders {
		if p == name {
			return true
		}
	}
	return false
}

// InitConfig points viper at the config file (explicit path or
// ~/.gitauto/config.yaml), applies defaults and environment overrides,
// and creates the file on first run.
func InitConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("unable to find home directory: %w", err)
		}
		viper.AddConfigPath(filepath.Join(home, DefaultConfigDir))
		viper.SetConfigName(DefaultConfigName)
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("provider", "")
	viper.SetDefault("api_key", "")
	viper.SetDefault("api_base", "")
	viper.SetDefault("model", "")
	viper.SetDefault("auto_rebase", false)
	viper.SetDefault("prompt_template", DefaultPromptTemplate)

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// SetConfigFile mode reports a missing file as a plain
		// path error rather than ConfigFileNotFoundError.
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return writeInitialConfig(cfgFile)
		}
		return fmt.Errorf("unable to read config file: %w", err)
	}
	return nil
}

func writeInitialConfig(cfgFile string) error {
	configPath := cfgFile
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("unable to find home directory: %w", err)
		}
		configPath = filepath.Join(home, DefaultConfigDir, DefaultConfigName+".yaml")
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}
	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}
	// The file may carry an API key later.
	if err := os.Chmod(configPath, 0o600); err != nil {
		return fmt.Errorf("unable to restrict config permissions: %w", err)
	}
	return nil
}

// GetConfig unmarshals the current viper state.
func GetConfig() *Config {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return &Config{PromptTemplate: DefaultPromptTemplate}
	}
	return cfg
}

// HasProvider reports whether AI generation is configured: both a
// provider name and a credential are required.
func (c *Config) HasProvider() bool {
	return c.Provider != "" && c.APIKey != ""
}

// Set stores a single key and persists the config file.
func Set(key string, value any) error {
	return SetValues(map[string]any{key: value})
}

// SetValues stores multiple keys and persists the config file once.
// The file is kept at mode 0600 since it may carry an API key.
func SetValues(values map[string]any) error {
	for key, value := range values {
		viper.Set(key, value)
	}
	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	if path := viper.ConfigFileUsed(); path != "" {
		if err := os.Chmod(path, 0o600); err != nil {
			return fmt.Errorf("unable to restrict config permissions: %w", err)
		}
	}
	return nil
}
