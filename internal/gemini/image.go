package gemini

import (
	"context"
	"fmt"
)

const imagePrompt = `A high quality, artistic, digital art cover image for an article titled %q. Context: %s. Minimalist, modern, clean style, cinematic lighting, 4k resolution.`

type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

type predictInstance struct {
	Prompt string `json:"prompt"`
}

type predictParameters struct {
	SampleCount int    `json:"sampleCount"`
	AspectRatio string `json:"aspectRatio"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
	} `json:"predictions"`
}

// SynthesizeImage asks the image model for a cover image and returns it as a
// PNG data URI. An empty string with nil error means the service completed
// but produced nothing; callers treat both outcomes as "no image".
func (c *Client) SynthesizeImage(ctx context.Context, title, description string) (string, error) {
	req := predictRequest{
		Instances:  []predictInstance{{Prompt: fmt.Sprintf(imagePrompt, title, description)}},
		Parameters: predictParameters{SampleCount: 1, AspectRatio: "16:9"},
	}

	var resp predictResponse
	path := "/v1beta/models/" + c.imageModel + ":predict"
	if err := c.doJSON(ctx, path, req, &resp); err != nil {
		return "", fmt.Errorf("synthesizing image: %w", err)
	}

	if len(resp.Predictions) == 0 || resp.Predictions[0].BytesBase64Encoded == "" {
		return "", nil
	}
	return "data:image/png;base64," + resp.Predictions[0].BytesBase64Encoded, nil
}
