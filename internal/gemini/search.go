package gemini

import (
	"context"
	"fmt"
)

// Source is one citation attached to a grounded search result.
type Source struct {
	Title string
	URI   string
}

// SearchResult is the raw outcome of one grounded search call. The source
// list is exactly what the service reported; de-duplication belongs to the
// ingestion pipeline.
type SearchResult struct {
	Text    string
	Sources []Source
}

const searchPrompt = `Find detailed information about books, news, or articles related to: %q.
Provide a comprehensive summary of the top findings.
If it's a book, include author and plot summary.
If it's news, include the latest updates.`

// Search runs one grounded search call. The result text is accompanied by
// whatever citation sources the grounding metadata carried.
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	req := textRequest(fmt.Sprintf(searchPrompt, query))
	req.Tools = []reqTool{{GoogleSearch: &struct{}{}}}

	resp, err := c.generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("grounded search: %w", err)
	}

	text := resp.text()
	if text == "" {
		text = "No results found."
	}

	var sources []Source
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk.Web == nil {
				continue
			}
			sources = append(sources, Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
		}
	}

	return &SearchResult{Text: text, Sources: sources}, nil
}
