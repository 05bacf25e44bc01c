package app

import (
	"fmt"

	"github.com/blackwell-systems/lumina/internal/annotation"
	"github.com/blackwell-systems/lumina/internal/config"
	"github.com/blackwell-systems/lumina/internal/covers"
	"github.com/blackwell-systems/lumina/internal/gemini"
	"github.com/blackwell-systems/lumina/internal/ingest"
	"github.com/blackwell-systems/lumina/internal/library"
	"github.com/blackwell-systems/lumina/internal/settings"
)

// Session owns the per-run store instances and the AI client. It replaces
// ambient globals: every command and TUI view receives the session
// explicitly.
type Session struct {
	Cfg        *config.Config
	Library    *library.Store
	Highlights *annotation.Store
	Settings   settings.Settings
	Covers     *covers.Cache
	AI         *gemini.Client
}

// newSession loads config and opens every durable store. Each snapshot is
// read exactly once here; afterwards the stores are the only writers.
func newSession() (*Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	lib, err := library.Open(cfg.LibraryPath())
	if err != nil {
		return nil, fmt.Errorf("opening library: %w", err)
	}
	hl, err := annotation.Open(cfg.HighlightsPath())
	if err != nil {
		return nil, fmt.Errorf("opening highlights: %w", err)
	}
	st, err := settings.LoadOrDefault(cfg.SettingsPath())
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	return &Session{
		Cfg:        cfg,
		Library:    lib,
		Highlights: hl,
		Settings:   st,
		Covers:     covers.New(cfg.CoversDir()),
		AI:         gemini.New(cfg.Gemini.Key, cfg.Gemini.APIBase, cfg.Gemini.Model, cfg.Gemini.ImageModel),
	}, nil
}

// NewPipeline builds an ingestion pipeline bound to this session's stores.
func (s *Session) NewPipeline(progress ingest.ProgressFunc) *ingest.Pipeline {
	return ingest.New(s.AI, s.Library, s.Covers, progress)
}

// SaveSettings persists the settings record after an in-place mutation.
func (s *Session) SaveSettings() error {
	return settings.Save(s.Cfg.SettingsPath(), s.Settings)
}

// DeleteItem removes an item, cascades to its highlights, and drops any
// cached cover. The caller sees one logical operation.
func (s *Session) DeleteItem(id string) error {
	if err := s.Library.Remove(id); err != nil {
		return fmt.Errorf("removing item: %w", err)
	}
	if err := s.Highlights.RemoveForItem(id); err != nil {
		return fmt.Errorf("removing highlights: %w", err)
	}
	_ = s.Covers.Remove(id) // cover cleanup is best-effort
	return nil
}
