package ai

import (
	"strings"
	"testing"
)

func TestDecodeParsedItem(t *testing.T) {
	raw := `{
		"type": "event",
		"title": "dinner with Sam",
		"start_time": "2026-01-28T20:00:00-08:00",
		"end_time": "2026-01-28T22:00:00-08:00",
		"due_date": null,
		"location": "downtown",
		"notes": null,
		"assumptions": ["assumed 2h duration"]
	}`
	item, err := decodeParsedItem(raw)
	if err != nil {
		t.Fatalf("decodeParsedItem: %v", err)
	}
	if item.Type != ItemTypeEvent {
		t.Fatalf("expected event, got %q", item.Type)
	}
	if item.StartTime != "2026-01-28T20:00:00-08:00" {
		t.Fatalf("unexpected start_time %q", item.StartTime)
	}
	if len(item.Assumptions) != 1 {
		t.Fatalf("expected 1 assumption, got %d", len(item.Assumptions))
	}
}

func TestDecodeParsedItemMarkdownFences(t *testing.T) {
	raw := "```json\n{\"type\": \"task\", \"title\": \"finish essay\", \"due_date\": \"2026-01-30\"}\n```"
	item, err := decodeParsedItem(raw)
	if err != nil {
		t.Fatalf("decodeParsedItem: %v", err)
	}
	if item.Type != ItemTypeTask || item.DueDate != "2026-01-30" {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestDecodeParsedItemSurroundingProse(t *testing.T) {
	raw := `Sure! Here is the JSON: {"type": "task", "title": "read ch 4"} Hope that helps.`
	item, err := decodeParsedItem(raw)
	if err != nil {
		t.Fatalf("decodeParsedItem: %v", err)
	}
	if item.Title != "read ch 4" {
		t.Fatalf("unexpected title %q", item.Title)
	}
}

func TestDecodeParsedItemRejectsGarbage(t *testing.T) {
	for _, raw := range []string{
		"no json here",
		`{"type": "meeting", "title": "x"}`,
		`{"type": "task", "title": ""}`,
	} {
		if _, err := decodeParsedItem(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestUserPromptContainsSchemaAndDate(t *testing.T) {
	p := userPrompt("submit homework friday", "America/Los_Angeles")
	if !strings.Contains(p, `"submit homework friday"`) {
		t.Fatal("prompt missing user input")
	}
	if !strings.Contains(p, "America/Los_Angeles") {
		t.Fatal("prompt missing timezone")
	}
	if !strings.Contains(p, `"assumptions": string[]`) {
		t.Fatal("prompt missing schema")
	}
}
