package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandFlags(t *testing.T) {
	for _, name := range []string{"yes", "verbose", "branch"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), "missing flag --%s", name)
	}
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{"setup": false, "config": false, "version": false}
	for _, sub := range rootCmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		assert.True(t, found, "subcommand %q not registered", name)
	}
}

func TestConfigKeyValidation(t *testing.T) {
	provider := settableKeys["provider"]
	require.NotNil(t, provider.validate)
	assert.NoError(t, provider.validate("openai"))
	assert.NoError(t, provider.validate(""), "clearing the provider is allowed")
	assert.Error(t, provider.validate("cohere"))

	autoRebase := settableKeys["auto_rebase"]
	require.NotNil(t, autoRebase.validate)
	assert.NoError(t, autoRebase.validate("true"))
	assert.NoError(t, autoRebase.validate("false"))
	assert.Error(t, autoRebase.validate("maybe"))
}

func TestSettableKeysAreDocumented(t *testing.T) {
	for key, entry := range settableKeys {
		assert.NotEmpty(t, entry.description, "key %q has no description", key)
	}
}
