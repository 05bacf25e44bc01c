// Package gemini is the client for the external AI service: grounded search,
// structured extraction, image synthesis, and short explanations. Every call
// is fallible and slow; callers own the fallback policy.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultAPIBase    = "https://generativelanguage.googleapis.com"
	defaultModel      = "gemini-2.5-flash"
	defaultImageModel = "imagen-4.0-generate-001"
)

// Client is an authenticated Generative Language API client.
type Client struct {
	apiKey     string
	apiBase    string
	model      string
	imageModel string
	http       *http.Client
	limiter    *rate.Limiter
}

// New creates a Client. Empty apiBase, model, or imageModel fall back to the
// public API and the default models.
func New(apiKey, apiBase, model, imageModel string) *Client {
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	apiBase = strings.TrimRight(apiBase, "/")
	if model == "" {
		model = defaultModel
	}
	if imageModel == "" {
		imageModel = defaultImageModel
	}
	return &Client{
		apiKey:     apiKey,
		apiBase:    apiBase,
		model:      model,
		imageModel: imageModel,
		http: &http.Client{
			Timeout: 2 * time.Minute, // image synthesis is slow
		},
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
	}
}

// Available reports whether an API key is configured.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// doJSON posts body to an API path and decodes the JSON response into out.
// Calls are paced by the shared limiter.
func (c *Client) doJSON(ctx context.Context, path string, body, out interface{}) error {
	if !c.Available() {
		return ErrNoAPIKey
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// checkStatus returns a typed error for non-2xx responses.
func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gemini API: %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}
}

// --- generateContent wire types ---

type generateRequest struct {
	Contents         []reqContent      `json:"contents"`
	Tools            []reqTool         `json:"tools,omitempty"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type reqContent struct {
	Parts []reqPart `json:"parts"`
}

type reqPart struct {
	Text string `json:"text"`
}

type reqTool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []reqPart `json:"parts"`
		} `json:"content"`
		GroundingMetadata *struct {
			GroundingChunks []struct {
				Web *struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// text concatenates the text parts of the first candidate.
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

func (c *Client) generate(ctx context.Context, req generateRequest) (*generateResponse, error) {
	var resp generateResponse
	path := "/v1beta/models/" + c.model + ":generateContent"
	if err := c.doJSON(ctx, path, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("%w: %s", ErrBlocked, resp.PromptFeedback.BlockReason)
	}
	return &resp, nil
}

func textRequest(prompt string) generateRequest {
	return generateRequest{
		Contents: []reqContent{{Parts: []reqPart{{Text: prompt}}}},
	}
}
