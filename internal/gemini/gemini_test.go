package gemini_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blackwell-systems/lumina/internal/gemini"
)

// newTestClient points a client at a handler-backed server.
func newTestClient(t *testing.T, handler http.HandlerFunc) *gemini.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return gemini.New("test-key", srv.URL, "", "")
}

const searchBody = `{
  "candidates": [{
    "content": {"parts": [{"text": "Three notable sci-fi releases…"}]},
    "groundingMetadata": {
      "groundingChunks": [
        {"web": {"uri": "https://a.example/1", "title": "Review A"}},
        {"web": {"uri": "https://b.example/2", "title": "Review B"}},
        {}
      ]
    }
  }]
}`

func TestSearch_ParsesTextAndSources(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		_, _ = w.Write([]byte(searchBody))
	})

	res, err := c.Search(context.Background(), "sci-fi books 2024")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !strings.Contains(res.Text, "sci-fi") {
		t.Errorf("Text = %q", res.Text)
	}
	if len(res.Sources) != 2 {
		t.Fatalf("Sources = %d, want 2 (chunk without web dropped)", len(res.Sources))
	}
	if res.Sources[0].URI != "https://a.example/1" || res.Sources[0].Title != "Review A" {
		t.Errorf("Sources[0] = %+v", res.Sources[0])
	}
}

func TestSearch_EmptyCandidatesYieldsPlaceholder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	})
	res, err := c.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Text != "No results found." {
		t.Errorf("Text = %q", res.Text)
	}
	if len(res.Sources) != 0 {
		t.Errorf("Sources = %d, want 0", len(res.Sources))
	}
}

func TestSearch_BlockedPrompt(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": [], "promptFeedback": {"blockReason": "SAFETY"}}`))
	})
	_, err := c.Search(context.Background(), "anything")
	if !errors.Is(err, gemini.ErrBlocked) {
		t.Errorf("err = %v, want ErrBlocked", err)
	}
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, gemini.ErrUnauthorized},
		{http.StatusForbidden, gemini.ErrUnauthorized},
		{http.StatusNotFound, gemini.ErrNotFound},
		{http.StatusTooManyRequests, gemini.ErrRateLimited},
	}
	for _, tc := range cases {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})
		_, err := c.Search(context.Background(), "q")
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: err = %v, want %v", tc.status, err, tc.want)
		}
	}
}

func TestExtract_ParsesDraft(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":
			"{\"title\":\"Dune\",\"author\":\"Frank Herbert\",\"description\":\"Desert planet.\",\"content\":\"# Dune\"}"
		}]}}]}`))
	})
	draft, err := c.Extract(context.Background(), "raw search text")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if draft.Title != "Dune" || draft.Author != "Frank Herbert" {
		t.Errorf("draft = %+v", draft)
	}
}

func TestExtract_FencedJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":
			"` + "```json\\n{\\\"title\\\":\\\"Dune\\\"}\\n```" + `"
		}]}}]}`))
	})
	draft, err := c.Extract(context.Background(), "raw")
	if err != nil {
		t.Fatalf("Extract fenced: %v", err)
	}
	if draft.Title != "Dune" {
		t.Errorf("Title = %q", draft.Title)
	}
}

func TestExtract_MalformedJSONIsError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"not json at all"}]}}]}`))
	})
	if _, err := c.Extract(context.Background(), "raw"); err == nil {
		t.Error("expected error for malformed extraction response")
	}
}

func TestSynthesizeImage_DataURI(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":predict") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"predictions":[{"bytesBase64Encoded":"aGVsbG8="}]}`))
	})
	uri, err := c.SynthesizeImage(context.Background(), "Dune", "Desert planet.")
	if err != nil {
		t.Fatalf("SynthesizeImage: %v", err)
	}
	if uri != "data:image/png;base64,aGVsbG8=" {
		t.Errorf("uri = %q", uri)
	}
}

func TestSynthesizeImage_NoPredictions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"predictions":[]}`))
	})
	uri, err := c.SynthesizeImage(context.Background(), "t", "d")
	if err != nil {
		t.Fatalf("SynthesizeImage: %v", err)
	}
	if uri != "" {
		t.Errorf("uri = %q, want empty", uri)
	}
}

func TestNoAPIKey(t *testing.T) {
	c := gemini.New("", "", "", "")
	if c.Available() {
		t.Error("Available() = true with no key")
	}
	if _, err := c.Search(context.Background(), "q"); !errors.Is(err, gemini.ErrNoAPIKey) {
		t.Errorf("err = %v, want ErrNoAPIKey", err)
	}
}

type fakeExplainer struct {
	out string
	err error
}

func (f fakeExplainer) Explain(ctx context.Context, snippet, contextText string) (string, error) {
	return f.out, f.err
}

func TestExplainText_Apology(t *testing.T) {
	ctx := context.Background()
	if got := gemini.ExplainText(ctx, fakeExplainer{err: errors.New("boom")}, "x", ""); got != gemini.Apology {
		t.Errorf("failure: got %q, want apology", got)
	}
	if got := gemini.ExplainText(ctx, fakeExplainer{out: "   "}, "x", ""); got != gemini.Apology {
		t.Errorf("blank: got %q, want apology", got)
	}
	if got := gemini.ExplainText(ctx, fakeExplainer{out: "It means X."}, "x", ""); got != "It means X." {
		t.Errorf("success: got %q", got)
	}
}
