package ai

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"
)

// FallbackParser routes parse requests across providers:
// - OpenAI first (better quality), fallback to Ollama on quota/network error
// - If only one provider is configured, it is used directly
type FallbackParser struct {
	openai Parser
	ollama *OllamaParser
}

// NewFallbackParser creates a new fallback parser with both providers
func NewFallbackParser(openai Parser, ollama *OllamaParser) *FallbackParser {
	return &FallbackParser{
		openai: openai,
		ollama: ollama,
	}
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := err.(net.Error); ok {
		return true
	}

	errStr := strings.ToLower(err.Error())
	connectionIndicators := []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"dial tcp",
		"eof",
	}
	for _, indicator := range connectionIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}
	return false
}

// isQuotaError checks if the error indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	quotaIndicators := []string{
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"insufficient_quota",
	}
	for _, indicator := range quotaIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}
	return false
}

// ParseItem tries OpenAI first, falls back to Ollama on quota or connection
// errors, and retries OpenAI once if Ollama is unreachable too.
func (f *FallbackParser) ParseItem(ctx context.Context, userInput string) (*ParsedItem, error) {
	if f.openai != nil {
		log.Println("[AI] Trying OpenAI for parsing...")
		item, err := f.openai.ParseItem(ctx, userInput)
		if err == nil {
			return item, nil
		}

		if isQuotaError(err) {
			log.Printf("[AI] OpenAI quota exhausted: %v, falling back to Ollama", err)
		} else {
			log.Printf("[AI] OpenAI error: %v, falling back to Ollama", err)
		}
	}

	if f.ollama != nil {
		log.Println("[AI] Using Ollama for parsing...")
		item, err := f.ollama.ParseItem(ctx, userInput)
		if err == nil {
			return item, nil
		}

		if isConnectionError(err) && f.openai != nil {
			log.Printf("[AI] Ollama connection failed: %v, retrying OpenAI", err)
			return f.openai.ParseItem(ctx, userInput)
		}

		return nil, fmt.Errorf("ollama parsing failed: %w", err)
	}

	return nil, fmt.Errorf("no AI provider available for parsing")
}
