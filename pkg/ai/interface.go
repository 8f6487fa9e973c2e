package ai

import "context"

// ItemType distinguishes calendar events from to-do tasks.
type ItemType string

const (
	ItemTypeEvent ItemType = "event"
	ItemTypeTask  ItemType = "task"
)

// ParsedItem is the structured record an LLM produces from a natural-language
// utterance. Timestamps are ISO-8601 strings with offsets; DueDate is
// date-only. Fields the model could not determine are empty.
type ParsedItem struct {
	Type        ItemType `json:"type"`
	Title       string   `json:"title"`
	StartTime   string   `json:"start_time,omitempty"`
	EndTime     string   `json:"end_time,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	Location    string   `json:"location,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Assumptions []string `json:"assumptions,omitempty"`
}

// Parser is the interface for natural-language item extraction.
// Implement this interface to add new AI providers (OpenAI, Ollama, etc.)
type Parser interface {
	ParseItem(ctx context.Context, userInput string) (*ParsedItem, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)
