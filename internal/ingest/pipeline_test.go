package ingest_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/blackwell-systems/lumina/internal/gemini"
	"github.com/blackwell-systems/lumina/internal/ingest"
	"github.com/blackwell-systems/lumina/internal/library"
	"github.com/blackwell-systems/lumina/internal/settings"
)

// fakeAI scripts the three service capabilities independently.
type fakeAI struct {
	searchRes  *gemini.SearchResult
	searchErr  error
	extractRes gemini.ItemDraft
	extractErr error
	imageURI   string
	imageErr   error

	extractCalls int
	imageCalls   int
	block        chan struct{} // non-nil: Extract blocks until closed
}

func (f *fakeAI) Search(ctx context.Context, query string) (*gemini.SearchResult, error) {
	return f.searchRes, f.searchErr
}

func (f *fakeAI) Extract(ctx context.Context, rawText string) (gemini.ItemDraft, error) {
	f.extractCalls++
	if f.block != nil {
		<-f.block
	}
	return f.extractRes, f.extractErr
}

func (f *fakeAI) SynthesizeImage(ctx context.Context, title, description string) (string, error) {
	f.imageCalls++
	return f.imageURI, f.imageErr
}

func newPipeline(t *testing.T, ai ingest.Service) (*ingest.Pipeline, *library.Store) {
	t.Helper()
	lib, err := library.Open(filepath.Join(t.TempDir(), "library.yml"))
	if err != nil {
		t.Fatal(err)
	}
	return ingest.New(ai, lib, nil, nil), lib
}

func TestSearch_EmptyQueryGuard(t *testing.T) {
	p, _ := newPipeline(t, &fakeAI{})
	for _, q := range []string{"", "   ", "\t\n"} {
		if _, err := p.Search(context.Background(), q); !errors.Is(err, ingest.ErrEmptyQuery) {
			t.Errorf("Search(%q) err = %v, want ErrEmptyQuery", q, err)
		}
	}
}

func TestSearch_DedupesSourcesFirstSeenWins(t *testing.T) {
	ai := &fakeAI{searchRes: &gemini.SearchResult{
		Text: "overview",
		Sources: []gemini.Source{
			{Title: "First", URI: "https://a.example"},
			{Title: "Other", URI: "https://b.example"},
			{Title: "Duplicate", URI: "https://a.example"},
		},
	}}
	p, _ := newPipeline(t, ai)

	res, err := p.Search(context.Background(), "sci-fi books 2024")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(res.Sources))
	}
	if res.Sources[0].Title != "First" {
		t.Errorf("dedup kept %q, want first-seen entry", res.Sources[0].Title)
	}
	seen := map[string]bool{}
	for _, s := range res.Sources {
		if seen[s.URI] {
			t.Errorf("duplicate URI survived: %s", s.URI)
		}
		seen[s.URI] = true
	}
}

func TestSearch_ServiceFailureYieldsNoResult(t *testing.T) {
	stages := []ingest.Stage{}
	ai := &fakeAI{searchErr: errors.New("network down")}
	lib, _ := library.Open(filepath.Join(t.TempDir(), "library.yml"))
	p := ingest.New(ai, lib, nil, func(s ingest.Stage) { stages = append(stages, s) })

	res, err := p.Search(context.Background(), "anything")
	if res != nil {
		t.Error("expected nil result on service failure")
	}
	if err == nil {
		t.Error("expected error on service failure")
	}
	// The pipeline reports searching then returns to idle.
	if len(stages) != 2 || stages[0] != ingest.StageSearching || stages[1] != ingest.StageIdle {
		t.Errorf("stages = %v", stages)
	}
}

func TestImport_NilResultGuard(t *testing.T) {
	p, _ := newPipeline(t, &fakeAI{})
	if _, _, err := p.Import(context.Background(), nil, settings.Default()); !errors.Is(err, ingest.ErrNoResult) {
		t.Errorf("err = %v, want ErrNoResult", err)
	}
}

func TestImport_ExtractionFailureFallsBack(t *testing.T) {
	ai := &fakeAI{extractErr: errors.New("malformed response")}
	p, lib := newPipeline(t, ai)
	st := settings.Default()
	st.EnableAIImages = false

	res := &ingest.Result{Text: "raw search text, kept verbatim"}
	item, stages, err := p.Import(context.Background(), res, st)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if item.Title != "New Item" || item.Author != "Unknown" {
		t.Errorf("fallback metadata = %q / %q", item.Title, item.Author)
	}
	if item.Description != "Imported from search" {
		t.Errorf("Description = %q", item.Description)
	}
	if item.Content != res.Text {
		t.Errorf("fallback content not verbatim: %q", item.Content)
	}
	if lib.ByID(item.ID) == nil {
		t.Error("fallback item not committed")
	}

	var analyzing *ingest.StageResult
	for i := range stages {
		if stages[i].Stage == ingest.StageAnalyzing {
			analyzing = &stages[i]
		}
	}
	if analyzing == nil || analyzing.Outcome != ingest.OutcomeFallback {
		t.Errorf("analyzing stage = %+v, want fallback", analyzing)
	}
}

func TestImport_ImagesDisabledSkipsSynthesis(t *testing.T) {
	ai := &fakeAI{extractRes: gemini.ItemDraft{Title: "T", Content: "c"}}
	p, _ := newPipeline(t, ai)
	st := settings.Default()
	st.EnableAIImages = false

	item, _, err := p.Import(context.Background(), &ingest.Result{Text: "raw"}, st)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if ai.imageCalls != 0 {
		t.Errorf("image synthesis called %d times with images disabled", ai.imageCalls)
	}
	if item.CoverImage != "" {
		t.Errorf("CoverImage = %q, want empty", item.CoverImage)
	}
}

func TestImport_ImageFailureIsAbsorbed(t *testing.T) {
	ai := &fakeAI{
		extractRes: gemini.ItemDraft{Title: "T", Content: "c"},
		imageErr:   errors.New("imagen unavailable"),
	}
	p, lib := newPipeline(t, ai)

	item, stages, err := p.Import(context.Background(), &ingest.Result{Text: "raw"}, settings.Default())
	if err != nil {
		t.Fatalf("Import should absorb image failure, got %v", err)
	}
	if item.CoverImage != "" {
		t.Errorf("CoverImage = %q, want empty after failed synthesis", item.CoverImage)
	}
	if lib.ByID(item.ID) == nil {
		t.Error("item not committed after image failure")
	}
	for _, s := range stages {
		if s.Stage == ingest.StageGeneratingArt && s.Outcome != ingest.OutcomeFailed {
			t.Errorf("art stage outcome = %v", s.Outcome)
		}
	}
}

func TestImport_ScenarioImagesDisabled(t *testing.T) {
	ai := &fakeAI{
		searchRes: &gemini.SearchResult{
			Text: "Three standout science fiction novels arrived in 2024…",
			Sources: []gemini.Source{
				{Title: "A", URI: "https://a.example/review"},
				{Title: "B", URI: "https://b.example/list"},
				{Title: "A again", URI: "https://a.example/review"},
			},
		},
		extractRes: gemini.ItemDraft{
			Title: "Sci-Fi of 2024", Author: "Various",
			Description: "A roundup.", Content: "# Sci-Fi of 2024\n\nBody.",
		},
	}
	p, lib := newPipeline(t, ai)
	st := settings.Default()
	st.EnableAIImages = false

	res, err := p.Search(context.Background(), "sci-fi books 2024")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Sources) != 2 {
		t.Fatalf("sources = %d, want duplicates collapsed to 2", len(res.Sources))
	}

	item, _, err := p.Import(context.Background(), res, st)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if item.Kind != library.KindArticle {
		t.Errorf("Kind = %q, want article", item.Kind)
	}
	if item.Content == "" {
		t.Error("empty content")
	}
	if item.CoverImage != "" {
		t.Errorf("CoverImage = %q, want none", item.CoverImage)
	}
	if item.SourceURL != "https://a.example/review" {
		t.Errorf("SourceURL = %q, want first source", item.SourceURL)
	}
	if time.Since(item.DateAdded) > time.Minute {
		t.Errorf("DateAdded = %v, want ≈ now", item.DateAdded)
	}
	if lib.Items()[0].ID != item.ID {
		t.Error("committed item is not newest-first in the library")
	}
}

func TestImport_AtMostOneInFlight(t *testing.T) {
	ai := &fakeAI{
		extractRes: gemini.ItemDraft{Title: "T", Content: "c"},
		block:      make(chan struct{}),
	}
	p, _ := newPipeline(t, ai)
	st := settings.Default()
	st.EnableAIImages = false

	done := make(chan error, 1)
	go func() {
		_, _, err := p.Import(context.Background(), &ingest.Result{Text: "raw"}, st)
		done <- err
	}()

	// Wait until the first import is inside the extract stage.
	deadline := time.After(2 * time.Second)
	for !p.Importing() {
		select {
		case <-deadline:
			t.Fatal("first import never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if _, _, err := p.Import(context.Background(), &ingest.Result{Text: "raw"}, st); !errors.Is(err, ingest.ErrImportInFlight) {
		t.Errorf("overlapping import err = %v, want ErrImportInFlight", err)
	}

	close(ai.block)
	if err := <-done; err != nil {
		t.Fatalf("first import: %v", err)
	}
	if p.Importing() {
		t.Error("Importing() still true after completion")
	}
}

func TestStageLabels(t *testing.T) {
	if ingest.StageSearching.Label() == "" || ingest.StageAnalyzing.Label() == "" || ingest.StageGeneratingArt.Label() == "" {
		t.Error("active stages must carry progress labels")
	}
	if ingest.StageIdle.Label() != "" {
		t.Error("idle stage should have no label")
	}
}
