package branch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateName(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{"feature keyword", "add user login", "feature/add-user-login"},
		{"fix keyword", "fix broken parser", "fix/fix-broken-parser"},
		{"docs keyword", "update readme examples", "docs/update-readme-examples"},
		{"default prefix", "misc cleanup work", "chore/misc-cleanup-work"},
		{"special characters stripped", "fix: crash on empty input!", "fix/fix-crash-on-empty-input"},
		{"multiple spaces collapsed", "add   new    widget", "feature/add-new-widget"},
		{"empty description", "", ""},
		{"only special characters", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateName(tt.description))
		})
	}
}

func TestGenerateName_LimitsLength(t *testing.T) {
	long := "add " + strings.Repeat("very ", 30) + "long description"
	name := GenerateName(long)

	assert.NotEmpty(t, name)
	parts := strings.SplitN(name, "/", 2)
	assert.LessOrEqual(t, len(parts[1]), 45)
	assert.False(t, strings.HasSuffix(name, "-"))
}
