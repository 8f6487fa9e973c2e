package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const systemPrompt = `You are a scheduling assistant that converts natural language into structured calendar event or task data.

STRICT OUTPUT RULES:
- Output ONLY valid JSON. No extra keys. No explanations. No markdown.
- Follow the schema exactly and include every field.
- Use double quotes for all JSON keys and string values.

INTERPRETATION RULES:
- Prefer future dates when interpreting relative dates (e.g., "Friday", "tomorrow").
- Use the provided user timezone for interpretation.
- Do NOT hallucinate missing information. If unknown/ambiguous, use null.
- However, for EVENTS: if start_time is known and end_time is missing, you MUST set end_time using default_duration_minutes.
- If no due date/time is specified for a task, assume that it is due today.
- default_duration_minutes:
  - dinner/meal/restaurant = 120
  - meeting/appointment/interview = 60
  - class/lecture = 75
  - otherwise = 60

FORMATTING RULES:
- start_time and end_time must be ISO-8601 timestamps WITH timezone offset, e.g. "2026-01-28T20:00:00-08:00".
- due_date must be ISO-8601 date only, e.g. "2026-01-30".
- assumptions must be short phrases (max 60 chars each), max 4 items.

CLASSIFICATION RULES:
- type="event" if there is a specific time OR an explicit scheduled occurrence.
- type="task" for to-dos/homework/submit/finish/complete/study etc., especially if phrased as something to complete.

You are not allowed to ask questions.`

// userPrompt renders the per-request prompt with the user's timezone and
// today's local date, so relative phrases resolve deterministically.
func userPrompt(userInput, timezone string) string {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	currentDate := time.Now().In(loc).Format("2006-01-02")

	return fmt.Sprintf(`Parse the following text into structured data.

Text: %q

User timezone: %s
Current date (local): %s

Return JSON using EXACTLY this schema (include every key, no extras):

{
  "type": "event" | "task",
  "title": string,
  "start_time": string | null,
  "end_time": string | null,
  "due_date": string | null,
  "location": string | null,
  "notes": string | null,
  "assumptions": string[]
}

Extra requirements:
- If type="event" and start_time is not null, end_time must not be null (use defaults).
- If type="task", start_time and end_time must be null.
- If type="event", due_date must be null.
`, userInput, timezone, currentDate)
}

// decodeParsedItem extracts the first JSON object from a model response and
// decodes it. Models occasionally wrap the object in markdown fences or
// prose; everything outside the outermost braces is discarded.
func decodeParsedItem(responseText string) (*ParsedItem, error) {
	text := strings.TrimSpace(responseText)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object in model response")
	}
	text = text[start : end+1]

	var item ParsedItem
	if err := json.Unmarshal([]byte(text), &item); err != nil {
		return nil, fmt.Errorf("failed to parse item JSON: %w", err)
	}

	if item.Type != ItemTypeEvent && item.Type != ItemTypeTask {
		return nil, fmt.Errorf("model returned unknown item type %q", item.Type)
	}
	if item.Title == "" {
		return nil, fmt.Errorf("model returned empty title")
	}
	return &item, nil
}
