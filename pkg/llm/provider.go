package llm

import (
	"context"
)

// Standard roles shared by every provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a chat message in a provider-agnostic format.
type Message struct {
	Role    string
	Content string
}

// Option sets optional request parameters.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
	JSONOutput  bool   // Ask the provider for a JSON object response
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithJSONOutput requests structured JSON output from providers that support
// a JSON response format. Providers without the capability ignore it; the
// caller still parses defensively either way.
func WithJSONOutput() Option {
	return func(o *Options) {
		o.JSONOutput = true
	}
}

// LLMProvider is the contract for any language model backend.
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response text.
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method).
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
