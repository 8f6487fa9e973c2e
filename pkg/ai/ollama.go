package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// OllamaParser implements Parser using a local Ollama server
type OllamaParser struct {
	getBaseURL func() string // Dynamic getter for BaseURL
	getModel   func() string // Dynamic getter for Model
	timezone   string
}

// NewOllamaParser creates a new Ollama parser
func NewOllamaParser(baseURL, model, timezone string) *OllamaParser {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3"
	}
	return &OllamaParser{
		getBaseURL: func() string { return baseURL },
		getModel:   func() string { return model },
		timezone:   timezone,
	}
}

// NewOllamaParserWithGetters creates a new Ollama parser with dynamic getters,
// so runtime settings updates take effect without a restart.
func NewOllamaParserWithGetters(getBaseURL, getModel func() string, timezone string) *OllamaParser {
	return &OllamaParser{
		getBaseURL: getBaseURL,
		getModel:   getModel,
		timezone:   timezone,
	}
}

// ParseItem implements Parser
func (o *OllamaParser) ParseItem(ctx context.Context, userInput string) (*ParsedItem, error) {
	url := o.getBaseURL() + "/api/chat"

	payload := map[string]interface{}{
		"model": o.getModel(),
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt(userInput, o.timezone)},
		},
		"stream": false,
		"options": map[string]interface{}{
			"temperature": 0.2,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		Done bool `json:"done"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return decodeParsedItem(result.Message.Content)
}
