package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/blackwell-systems/lumina/internal/ingest"
	"github.com/blackwell-systems/lumina/internal/settings"
)

func TestGreeting(t *testing.T) {
	tests := []struct {
		hour int
		name string
		want string
	}{
		{8, "Ada", "Good morning, Ada"},
		{13, "Ada", "Good afternoon, Ada"},
		{21, "Ada", "Good evening, Ada"},
		{21, "", "Good evening"},
	}
	for _, tt := range tests {
		now := time.Date(2024, 6, 1, tt.hour, 0, 0, 0, time.UTC)
		if got := greeting(tt.name, now); got != tt.want {
			t.Errorf("greeting(%q, %dh) = %q, want %q", tt.name, tt.hour, got, tt.want)
		}
	}
}

func TestStageNotes(t *testing.T) {
	stages := []ingest.StageResult{
		{Stage: ingest.StageAnalyzing, Outcome: ingest.OutcomeFallback, Err: errors.New("boom")},
		{Stage: ingest.StageGeneratingArt, Outcome: ingest.OutcomeFailed, Err: errors.New("boom")},
		{Stage: ingest.StageCommitted, Outcome: ingest.OutcomeSuccess},
	}
	notes := stageNotes(stages)
	if len(notes) != 2 {
		t.Fatalf("expected 2 notes, got %d: %v", len(notes), notes)
	}

	// Clean runs produce no notes.
	clean := []ingest.StageResult{
		{Stage: ingest.StageAnalyzing, Outcome: ingest.OutcomeSuccess},
		{Stage: ingest.StageGeneratingArt, Outcome: ingest.OutcomeSkipped},
		{Stage: ingest.StageCommitted, Outcome: ingest.OutcomeSuccess},
	}
	if notes := stageNotes(clean); len(notes) != 0 {
		t.Errorf("expected no notes for a clean run, got %v", notes)
	}
}

func TestSearchFailureNotice(t *testing.T) {
	if got := searchFailureNotice(ingest.ErrEmptyQuery); got != "" {
		t.Errorf("empty-query errors should produce no notice, got %q", got)
	}
	if got := searchFailureNotice(errors.New("dial tcp: timeout")); got == "" {
		t.Error("real failures should produce a notice")
	}
}

func TestNextTheme(t *testing.T) {
	if got := nextTheme(settings.ThemeTeal, true); got != settings.ThemeBlue {
		t.Errorf("teal forward = %v, want blue", got)
	}
	if got := nextTheme(settings.ThemeTeal, false); got != settings.ThemeViolet {
		t.Errorf("teal backward = %v, want violet", got)
	}
	if got := nextTheme(settings.ThemeViolet, true); got != settings.ThemeTeal {
		t.Errorf("violet forward = %v, want teal", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("a very long title indeed", 10); got != "a very lo…" {
		t.Errorf("truncate long = %q", got)
	}
}
