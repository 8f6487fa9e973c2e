package ai

import "fmt"

// DynamicConfig holds AI provider configuration with runtime-updatable
// Ollama settings.
type DynamicConfig struct {
	Provider ProviderType // "openai", "ollama" or "auto"

	// OpenAI config
	OpenAIAPIKey string
	OpenAIModel  string

	// Ollama config (getters so the settings API can change them live)
	GetOllamaBaseURL func() string
	GetOllamaModel   func() string

	// User timezone for date interpretation
	Timezone string
}

// NewParser creates a Parser based on the config
// This is the factory function - switch AI provider by changing cfg.Provider
func NewParser(cfg DynamicConfig) (Parser, error) {
	ollama := NewOllamaParserWithGetters(cfg.GetOllamaBaseURL, cfg.GetOllamaModel, cfg.Timezone)

	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return NewOpenAIParser(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.Timezone), nil

	case ProviderOllama:
		return ollama, nil

	default:
		// Auto: fallback chain when an OpenAI key is present, Ollama alone
		// otherwise.
		if cfg.OpenAIAPIKey != "" {
			openai := NewOpenAIParser(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.Timezone)
			return NewFallbackParser(openai, ollama), nil
		}
		return ollama, nil
	}
}
