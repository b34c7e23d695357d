// Package llm provides generative model clients for the conversational
// assistant. Clients turn a prompt into raw text; command extraction
// from that text lives in parser.go.
package llm

import (
	"context"
	"time"
)

// Client generates a completion for a prompt.
type Client interface {
	// Generate sends the prompt and returns the raw model text.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config holds provider-agnostic client configuration.
type Config struct {
	// Provider selects the backend: "gemini" or "anthropic".
	Provider string
	// APIKey authenticates with the provider.
	APIKey string
	// Model overrides the provider's default model name.
	Model string
	// Timeout bounds a single request. Zero means 15 seconds.
	Timeout time.Duration
	// Temperature controls sampling randomness. Zero means 0.3.
	Temperature float64
	// MaxTokens caps the response length. Zero means 500.
	MaxTokens int
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 15 * time.Second
	}
	return c.Timeout
}

func (c Config) temperature() float64 {
	if c.Temperature == 0 {
		return 0.3
	}
	return c.Temperature
}

func (c Config) maxTokens() int {
	if c.MaxTokens == 0 {
		return 500
	}
	return c.MaxTokens
}
