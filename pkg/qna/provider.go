// Package qna generates educational question-answer pairs from cleaned
// Hindi or bilingual text using an LLM provider.
package qna

import "context"

// ProviderConfig holds common provider configuration.
type ProviderConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	MaxRetries int
}

// Provider is the interface all LLM backends must implement.
type Provider interface {
	// Complete sends a prompt and returns the raw model output.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name returns the provider identifier (e.g. "openai", "anthropic").
	Name() string

	// Model returns the configured model name.
	Model() string
}
