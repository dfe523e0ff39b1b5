package factory

import (
	"fmt"

	"teen-coach-be/pkg/llm"
	"teen-coach-be/pkg/llm/ollama"
	"teen-coach-be/pkg/llm/openai"
)

// NewLLMProvider builds the configured provider. An openai provider without
// an API key returns nil with no error: the pipeline treats a nil provider
// as "no model configured" and degrades to placeholder replies rather than
// refusing to start.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "openai":
		if apiKey == "" {
			return nil, nil
		}
		return openai.NewOpenAIProvider(baseURL, apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
