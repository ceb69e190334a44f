// Package branch generates git branch names from free-form descriptions.
package branch

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	specialCharsRegex    = regexp.MustCompile(`[^a-zA-Z0-9\s\-]+`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
	multipleHyphensRegex = regexp.MustCompile(`-+`)
)

// Keywords for branch prefix detection.
var prefixKeywords = map[string][]string{
	"feature": {"add", "create", "implement", "new", "support", "feature"},
	"fix":     {"fix", "resolve", "correct", "repair", "patch", "bug"},
	"docs":    {"document", "readme", "guide", "manual", "docs"},
}

// GenerateName creates a branch name from the description with an
// appropriate prefix. Returns "" when no usable name can be derived.
func GenerateName(description string) string {
	if description == "" {
		return ""
	}

	prefix := detectPrefix(description)

	cleaned := sanitizeDescription(description)
	if cleaned == "" {
		return ""
	}

	// Leave room for the prefix.
	cleaned = limitLength(cleaned, 45)

	return fmt.Sprintf("%s/%s", prefix, cleaned)
}

func detectPrefix(description string) string {
	lowerDesc := strings.ToLower(description)

	for prefix, keywords := range prefixKeywords {
		for _, keyword := range keywords {
			if strings.Contains(lowerDesc, keyword) {
				return prefix
			}
		}
	}
	return "chore"
}

func sanitizeDescription(description string) string {
	cleaned := specialCharsRegex.ReplaceAllString(description, "")
	cleaned = strings.ToLower(strings.TrimSpace(cleaned))
	cleaned = multipleSpacesRegex.ReplaceAllString(cleaned, "-")
	cleaned = multipleHyphensRegex.ReplaceAllString(cleaned, "-")
	return strings.Trim(cleaned, "-")
}

func limitLength(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	return strings.Trim(text[:maxLength], "-")
}
