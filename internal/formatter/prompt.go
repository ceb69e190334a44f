// Package formatter builds the text-generation prompt from a diff.
package formatter

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DiffPromptLimit bounds the diff prefix submitted to the backend.
// Generation backends have input-size and cost limits; this is a design
// parameter, not a correctness requirement.
const DiffPromptLimit = 3000

const truncationMarker = "...(content is too long, truncated)"

// PromptTemplate is the on-disk shape of a custom template file.
type PromptTemplate struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Template    string `yaml:"template"`
}

// TemplateData is the data available to prompt templates.
type TemplateData struct {
	Diff string
}

var builtinTemplates = map[string]string{
	"default": `Generate a concise, clear git commit message for these changes.
Follow the Conventional Commits format (type: description).
The type should be the most appropriate of: feat, fix, docs, style, refactor, perf, test, chore.
Keep the subject line under 72 characters and reply with the message only.

Changes:
{{.Diff}}`,

	"detailed": `Carefully analyze the following Git changes and generate a commit message that follows the Conventional Commits specification:

Changes:
{{.Diff}}

Provide a commit message in the format "type(scope): description", where:
1. The type is the most appropriate of: feat, fix, docs, style, refactor, perf, test, chore.
2. The scope (optional) identifies the component that changed.
3. The description is an imperative sentence under 72 characters.

Reply with the commit message only, no surrounding prose.`,
}

// GetPromptTemplate resolves a template by builtin name or file path.
// A YAML file must carry a "template" field; any other file is used
// verbatim.
func GetPromptTemplate(name string) (string, error) {
	if tpl, ok := builtinTemplates[name]; ok {
		return tpl, nil
	}

	content, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("unknown prompt template %q: %w", name, err)
	}

	var tpl PromptTemplate
	if yaml.Unmarshal(content, &tpl) == nil && tpl.Template != "" {
		return tpl.Template, nil
	}
	return string(content), nil
}

// BuildPrompt renders the named template with the diff truncated to
// DiffPromptLimit bytes.
func BuildPrompt(templateName, diff string) (string, error) {
	if templateName == "" {
		templateName = "default"
	}

	text, err := GetPromptTemplate(templateName)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New("prompt").Parse(text)
	if err != nil {
		return "", fmt.Errorf("invalid prompt template %q: %w", templateName, err)
	}

	var buf bytes.Buffer
	data := TemplateData{Diff: TruncateDiff(diff, DiffPromptLimit)}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt template: %w", err)
	}
	return buf.String(), nil
}

// TruncateDiff bounds diff to limit bytes on a valid UTF-8 boundary,
// appending a marker when content was dropped.
func TruncateDiff(diff string, limit int) string {
	if len(diff) <= limit {
		return diff
	}
	truncated := truncateToValidUTF8(diff, limit)
	return strings.TrimRight(truncated, "\n") + "\n" + truncationMarker
}

func truncateToValidUTF8(input string, maxBytes int) string {
	if len(input) <= maxBytes {
		return input
	}

	end := maxBytes
	for end > 0 && !utf8.ValidString(input[:end]) {
		end--
	}
	return input[:end]
}
