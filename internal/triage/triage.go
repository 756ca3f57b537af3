// Package triage is an optional external collaborator that drafts a
// one-line notes suggestion for a newly created issue by calling Claude.
// It is strictly outside the core: it reads an *core.Issue through the
// store's public API and returns a plain string for the caller to apply
// as it sees fit (cmd/bd's create --suggest flag applies it via
// core.SetTo into an IssueUpdate.Notes patch).
package triage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/ttrei/bd/internal/core"
)

// errAPIKeyRequired is returned when an API key is needed but not provided.
var errAPIKeyRequired = errors.New("triage: API key required")

const defaultModel = anthropic.Model("claude-3-5-haiku-latest")

// Client wraps the Anthropic API for one-line issue triage suggestions.
type Client struct {
	client  anthropic.Client
	model   anthropic.Model
	timeout time.Duration
}

// NewClient builds a Client. ANTHROPIC_API_KEY takes precedence over an
// explicit apiKey argument.
func NewClient(apiKey string) (*Client, error) {
	if envKey := os.Getenv("ANTHROPIC_API_KEY"); envKey != "" {
		apiKey = envKey
	}
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}
	return &Client{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:   defaultModel,
		timeout: 20 * time.Second,
	}, nil
}

// Suggest asks the model for a single-sentence triage note covering likely
// priority and risk, given only the title and description a caller has in
// hand before the issue is even created.
func (c *Client) Suggest(ctx context.Context, title, description string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"You triage incoming software issues. In ONE short sentence, note likely "+
			"priority and risk for this issue. No preamble, no markdown.\n\nTitle: %s\nDescription: %s",
		title, description,
	)

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 128,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("triage: calling model: %w", err)
	}
	if len(message.Content) == 0 || message.Content[0].Type != "text" {
		return "", fmt.Errorf("triage: unexpected response format")
	}
	return strings.TrimSpace(message.Content[0].Text), nil
}

// SuggestForIssue is a convenience wrapper over Suggest for an issue already
// resolved through a core.Store.
func (c *Client) SuggestForIssue(ctx context.Context, issue *core.Issue) (string, error) {
	return c.Suggest(ctx, issue.Title, issue.Description)
}
