// Package llm generates commit messages through a pluggable AI backend.
//
// All supported backends speak the OpenAI-compatible chat completion
// protocol, so a single client implementation serves every adapter;
// each backend contributes its endpoint and default model.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/gitauto-cli/gitauto/internal/config"
	"github.com/gitauto-cli/gitauto/internal/formatter"
)

// Provider generates a commit message from a diff. Any error is
// non-fatal to the workflow: callers fall back to manual entry.
type Provider interface {
	Name() string
	GenerateCommitMessage(diff string) (string, error)
}

var (
	ErrNotConfigured   = errors.New("no AI provider or API key configured")
	ErrUnknownProvider = errors.New("unknown AI provider")
	errEmptyResponse   = errors.New("backend returned an empty response")
)

const requestTimeout = 30 * time.Second

const systemPrompt = "You are a professional Git commit message generator, " +
	"helping developers write commit messages that comply with the " +
	"Conventional Commits specification."

// backend carries the per-provider connection defaults.
type backend struct {
	baseURL      string
	defaultModel string
}

var backends = map[string]backend{
	"openai": {
		defaultModel: "gpt-4o-mini",
	},
	"anthropic": {
		baseURL:      "https://api.anthropic.com/v1",
		defaultModel: "claude-3-5-sonnet-20241022",
	},
	"gemini": {
		baseURL:      "https://generativelanguage.googleapis.com/v1beta/openai",
		defaultModel: "gemini-1.5-flash",
	},
}

// NewProvider builds the configured backend adapter. Returns
// ErrNotConfigured when provider or credential is missing.
func NewProvider(cfg *config.Config) (Provider, error) {
	if cfg == nil || !cfg.HasProvider() {
		return nil, ErrNotConfigured
	}

	b, ok := backends[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	switch {
	case cfg.APIBase != "":
		clientConfig.BaseURL = cfg.APIBase
	case b.baseURL != "":
		clientConfig.BaseURL = b.baseURL
	}

	model := cfg.Model
	if model == "" {
		model = b.defaultModel
	}

	return &chatProvider{
		name:           cfg.Provider,
		model:          model,
		promptTemplate: cfg.PromptTemplate,
		client:         openai.NewClientWithConfig(clientConfig),
	}, nil
}

// completionClient is the slice of the go-openai client the provider
// needs; tests substitute it.
type completionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type chatProvider struct {
	name           string
	model          string
	promptTemplate string
	client         completionClient
}

func (p *chatProvider) Name() string { return p.name }

func (p *chatProvider) GenerateCommitMessage(diff string) (string, error) {
	prompt, err := formatter.BuildPrompt(p.promptTemplate, diff)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call %s backend: %w", p.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", errEmptyResponse
	}

	message := strings.TrimSpace(resp.Choices[0].Message.Content)
	if message == "" {
		return "", errEmptyResponse
	}
	return message, nil
}
