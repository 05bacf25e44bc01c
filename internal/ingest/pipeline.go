// Package ingest turns a user query into a stored reading item: grounded
// search, structured extraction, optional cover synthesis, then one library
// commit. Each stage fails independently; only the final commit can fail the
// whole import.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/lumina/internal/covers"
	"github.com/blackwell-systems/lumina/internal/gemini"
	"github.com/blackwell-systems/lumina/internal/library"
	"github.com/blackwell-systems/lumina/internal/settings"
)

// Stage identifies where a pipeline run currently is.
type Stage string

const (
	StageIdle          Stage = "idle"
	StageSearching     Stage = "searching"
	StageAnalyzing     Stage = "analyzing"
	StageGeneratingArt Stage = "generating-art"
	StageCommitted     Stage = "committed"
)

// Label returns the user-facing progress label for a stage.
func (s Stage) Label() string {
	switch s {
	case StageSearching:
		return "Gemini is researching…"
	case StageAnalyzing:
		return "Analyzing content…"
	case StageGeneratingArt:
		return "Generating AI art…"
	default:
		return ""
	}
}

// Outcome classifies how one stage resolved.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFallback Outcome = "fallback"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeFailed   Outcome = "failed"
)

// StageResult records how one stage of an import resolved. Stages are
// composed sequentially; there is no parallel stage execution.
type StageResult struct {
	Stage   Stage
	Outcome Outcome
	Err     error
}

// ProgressFunc observes stage transitions so a caller can render feedback.
type ProgressFunc func(Stage)

// Service is the slice of the AI client the pipeline depends on.
type Service interface {
	Search(ctx context.Context, query string) (*gemini.SearchResult, error)
	Extract(ctx context.Context, rawText string) (gemini.ItemDraft, error)
	SynthesizeImage(ctx context.Context, title, description string) (string, error)
}

// Guard errors. These reject bad input before any external call; the UI
// treats them as local no-ops rather than user-visible failures.
var (
	ErrEmptyQuery     = errors.New("empty query")
	ErrNoResult       = errors.New("no search result to import")
	ErrImportInFlight = errors.New("an import is already in progress")
)

// Result is the transient outcome of one search, held only until the user
// imports it or searches again. Sources are de-duplicated by URI.
type Result struct {
	Query   string
	Text    string
	Sources []gemini.Source
}

// Pipeline orchestrates search → extract → (optional) image → commit.
type Pipeline struct {
	ai       Service
	lib      *library.Store
	covers   *covers.Cache
	progress ProgressFunc

	importing atomic.Bool
}

// New creates a Pipeline. covers may be nil to keep synthesized images as
// inline data URIs; progress may be nil.
func New(ai Service, lib *library.Store, cc *covers.Cache, progress ProgressFunc) *Pipeline {
	if progress == nil {
		progress = func(Stage) {}
	}
	return &Pipeline{ai: ai, lib: lib, covers: cc, progress: progress}
}

// Search runs one grounded search. An empty trimmed query is rejected before
// any external call. On service failure the pipeline returns to idle and the
// caller gets no result. Overlapping searches are not serialized here; the
// surrounding UI disables the trigger while one is in flight.
func (p *Pipeline) Search(ctx context.Context, query string) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	p.progress(StageSearching)
	defer p.progress(StageIdle)

	res, err := p.ai.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	return &Result{
		Query:   query,
		Text:    res.Text,
		Sources: dedupeSources(res.Sources),
	}, nil
}

// Import turns a prior search result into a committed library item. The
// extraction stage degrades to a minimal fallback item, the image stage is
// skipped or absorbed, and only a library write failure fails the import.
// At most one import runs at a time.
func (p *Pipeline) Import(ctx context.Context, res *Result, st settings.Settings) (library.Item, []StageResult, error) {
	if res == nil {
		return library.Item{}, nil, ErrNoResult
	}
	if !p.importing.CompareAndSwap(false, true) {
		return library.Item{}, nil, ErrImportInFlight
	}
	defer p.importing.Store(false)

	var stages []StageResult

	// Stage 1: structured extraction, with fallback.
	p.progress(StageAnalyzing)
	draft, err := p.ai.Extract(ctx, res.Text)
	if err != nil {
		draft = fallbackDraft(res.Text)
		stages = append(stages, StageResult{StageAnalyzing, OutcomeFallback, err})
	} else {
		stages = append(stages, StageResult{StageAnalyzing, OutcomeSuccess, nil})
	}

	// Stage 2: cover synthesis, optional and fully absorbed.
	cover := ""
	if st.EnableAIImages {
		p.progress(StageGeneratingArt)
		cover, err = p.synthesizeCover(ctx, draft)
		if err != nil {
			stages = append(stages, StageResult{StageGeneratingArt, OutcomeFailed, err})
			cover = ""
		} else if cover == "" {
			stages = append(stages, StageResult{StageGeneratingArt, OutcomeFallback, nil})
		} else {
			stages = append(stages, StageResult{StageGeneratingArt, OutcomeSuccess, nil})
		}
	} else {
		stages = append(stages, StageResult{StageGeneratingArt, OutcomeSkipped, nil})
	}

	// Stage 3: commit. The only hard failure point.
	item := library.Item{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Author:      draft.Author,
		Description: draft.Description,
		Content:     draft.Content,
		Kind:        library.KindArticle,
		DateAdded:   time.Now(),
		CoverImage:  cover,
	}
	if len(res.Sources) > 0 {
		item.SourceURL = res.Sources[0].URI
	}

	if cover != "" && p.covers != nil {
		// Spill the data URI to the cover cache; fall back to inline on error.
		if path, err := p.covers.StoreDataURI(item.ID, cover); err == nil {
			item.CoverImage = path
		}
	}

	if err := p.lib.Insert(item); err != nil {
		stages = append(stages, StageResult{StageCommitted, OutcomeFailed, err})
		return library.Item{}, stages, fmt.Errorf("committing item: %w", err)
	}
	stages = append(stages, StageResult{StageCommitted, OutcomeSuccess, nil})
	p.progress(StageCommitted)

	return item, stages, nil
}

// Importing reports whether an import is currently in flight.
func (p *Pipeline) Importing() bool {
	return p.importing.Load()
}

func (p *Pipeline) synthesizeCover(ctx context.Context, draft gemini.ItemDraft) (string, error) {
	return p.ai.SynthesizeImage(ctx, draft.Title, draft.Description)
}

// fallbackDraft builds the minimal item used when extraction fails: the raw
// search text is kept verbatim.
func fallbackDraft(rawText string) gemini.ItemDraft {
	return gemini.ItemDraft{
		Title:       "New Item",
		Author:      "Unknown",
		Description: "Imported from search",
		Content:     rawText,
	}
}

// dedupeSources drops sources whose URI was already seen, first-seen-wins.
func dedupeSources(in []gemini.Source) []gemini.Source {
	seen := make(map[string]bool, len(in))
	var out []gemini.Source
	for _, s := range in {
		if seen[s.URI] {
			continue
		}
		seen[s.URI] = true
		out = append(out, s)
	}
	return out
}
