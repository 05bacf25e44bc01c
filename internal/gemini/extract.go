package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// ItemDraft is the structured metadata extracted from raw search text.
type ItemDraft struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// extractMaxInput caps how much raw text goes into the extraction prompt.
const extractMaxInput = 5000

const extractPrompt = `Analyze the following text and extract/generate metadata for a reading library item.

Text: %s

Return ONLY a JSON object with these keys:
- title: A suitable title
- author: The author or source name
- description: A short 2-sentence description
- content: The full text formatted nicely in Markdown. If the input was short, expand it slightly to be readable (approx 300-500 words) so it looks like a proper article/chapter.`

// Extract asks the model for a structured reading item built from rawText.
// A malformed or empty response is an error; the pipeline treats it the same
// as a failed call and falls back to a minimal item.
func (c *Client) Extract(ctx context.Context, rawText string) (ItemDraft, error) {
	input := rawText
	if len(input) > extractMaxInput {
		input = input[:extractMaxInput] + "…"
	}

	req := textRequest(fmt.Sprintf(extractPrompt, input))
	req.GenerationConfig = &generationConfig{ResponseMIMEType: "application/json"}

	resp, err := c.generate(ctx, req)
	if err != nil {
		return ItemDraft{}, fmt.Errorf("extracting item: %w", err)
	}

	text := strings.TrimSpace(resp.text())
	if text == "" {
		return ItemDraft{}, ErrEmptyResponse
	}

	var draft ItemDraft
	if err := json.Unmarshal([]byte(stripFences(text)), &draft); err != nil {
		return ItemDraft{}, fmt.Errorf("malformed extraction response: %w", err)
	}
	if draft.Title == "" && draft.Content == "" {
		return ItemDraft{}, ErrEmptyResponse
	}
	return draft, nil
}

// stripFences removes a surrounding markdown code fence, which some models
// wrap around JSON output even in JSON mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
