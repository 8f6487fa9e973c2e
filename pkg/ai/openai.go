package ai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// OpenAIParser implements Parser using the OpenAI chat completions API
type OpenAIParser struct {
	client   openai.Client
	model    string
	timezone string
}

// NewOpenAIParser creates a new OpenAI parser
func NewOpenAIParser(apiKey, model, timezone string) *OpenAIParser {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIParser{
		client:   openai.NewClient(option.WithAPIKey(apiKey)),
		model:    model,
		timezone: timezone,
	}
}

// ParseItem implements Parser
func (p *OpenAIParser) ParseItem(ctx context.Context, userInput string) (*ParsedItem, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt(userInput, p.timezone)),
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	return decodeParsedItem(resp.Choices[0].Message.Content)
}
