package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTempConfig(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, InitConfig(path))
	return path
}

func TestInitConfig_CreatesFileWithDefaults(t *testing.T) {
	path := initTempConfig(t)

	info, err := os.Stat(path)
	require.NoError(t, err, "first run writes the config file")
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(),
			"config may hold an API key and must not be world-readable")
	}

	cfg := GetConfig()
	assert.Empty(t, cfg.Provider)
	assert.Empty(t, cfg.APIKey)
	assert.False(t, cfg.AutoRebase)
	assert.Equal(t, DefaultPromptTemplate, cfg.PromptTemplate)
}

func TestInitConfig_ReadsExistingFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "provider: openai\napi_key: sk-test\nauto_rebase: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	require.NoError(t, InitConfig(path))

	cfg := GetConfig()
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.True(t, cfg.AutoRebase)
}

func TestSetValuesPersists(t *testing.T) {
	path := initTempConfig(t)

	require.NoError(t, SetValues(map[string]any{
		"provider": "anthropic",
		"api_key":  "key-123",
	}))

	// Reload from disk into a fresh viper state.
	viper.Reset()
	require.NoError(t, InitConfig(path))

	cfg := GetConfig()
	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "key-123", cfg.APIKey)
}

func TestHasProvider(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"both set", Config{Provider: "openai", APIKey: "k"}, true},
		{"missing key", Config{Provider: "openai"}, false},
		{"missing provider", Config{APIKey: "k"}, false},
		{"neither", Config{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.HasProvider())
		})
	}
}

func TestIsSupportedProvider(t *testing.T) {
	for _, p := range SupportedProviders {
		assert.True(t, IsSupportedProvider(p))
	}
	assert.False(t, IsSupportedProvider("cohere"))
	assert.False(t, IsSupportedProvider(""))
}

func TestEnvOverride(t *testing.T) {
	initTempConfig(t)
	t.Setenv("GITAUTO_PROVIDER", "gemini")
	t.Setenv("GITAUTO_API_KEY", "env-key")

	cfg := GetConfig()
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "env-key", cfg.APIKey)
}
