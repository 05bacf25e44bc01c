package gemini

import (
	"context"
	"fmt"
	"strings"
)

// Apology is shown when an explanation request fails. Explanation calls are
// fire-and-forget: no retry, no error state.
const Apology = "Sorry, I couldn't explain that right now."

const explainPrompt = `Context: User is reading an article.
Selected Text: %q

Task: Briefly explain this text or define difficult terms within it. Keep it concise (under 100 words).`

// Explain asks the model for a short explanation of the selected snippet.
func (c *Client) Explain(ctx context.Context, snippet, contextText string) (string, error) {
	_ = contextText // surrounding context is implied by the prompt framing
	resp, err := c.generate(ctx, textRequest(fmt.Sprintf(explainPrompt, snippet)))
	if err != nil {
		return "", fmt.Errorf("explaining text: %w", err)
	}
	text := strings.TrimSpace(resp.text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// Explainer is the slice of the client the explanation flow depends on.
type Explainer interface {
	Explain(ctx context.Context, snippet, contextText string) (string, error)
}

// ExplainText resolves to a fixed apology rather than an error on any
// failure.
func ExplainText(ctx context.Context, e Explainer, snippet, contextText string) string {
	out, err := e.Explain(ctx, snippet, contextText)
	if err != nil || strings.TrimSpace(out) == "" {
		return Apology
	}
	return out
}
