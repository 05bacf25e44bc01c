package library_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blackwell-systems/lumina/internal/library"
)

func item(id, title string) library.Item {
	return library.Item{
		ID:        id,
		Title:     title,
		Content:   "body",
		Kind:      library.KindArticle,
		DateAdded: time.Now(),
	}
}

func TestOpen_SeedsDemoOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.yml")
	s, err := library.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 seeded item, got %d", s.Len())
	}
	if s.Items()[0].ID != "demo-1" {
		t.Errorf("seeded item ID = %q, want demo-1", s.Items()[0].ID)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("seed snapshot not written: %v", err)
	}
}

func TestInsert_Prepends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.yml")
	s, err := library.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Insert(item("a", "First")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := s.Insert(item("b", "Second")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	items := s.Items()
	if items[0].ID != "b" || items[1].ID != "a" {
		t.Errorf("order = [%s %s %s], want newest first", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestRemove_MissingIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.yml")
	s, _ := library.Open(path)
	before := s.Len()
	if err := s.Remove("nope"); err != nil {
		t.Fatalf("Remove missing: %v", err)
	}
	if s.Len() != before {
		t.Errorf("Len changed from %d to %d on no-op remove", before, s.Len())
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.yml")
	s, _ := library.Open(path)
	it := item("kept", "Kept Item")
	it.SourceURL = "https://example.com/kept"
	if err := s.Insert(it); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := s.Remove("demo-1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	s2, err := library.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if s2.Len() != 1 {
		t.Fatalf("reopened store has %d items, want 1", s2.Len())
	}
	got := s2.ByID("kept")
	if got == nil {
		t.Fatal("ByID(kept) = nil after reopen")
	}
	if got.SourceURL != "https://example.com/kept" {
		t.Errorf("SourceURL = %q", got.SourceURL)
	}
	// Reopening an existing snapshot must not re-seed the demo item.
	if s2.ByID("demo-1") != nil {
		t.Error("demo item re-seeded over an existing snapshot")
	}
}

func TestByID_NotFound(t *testing.T) {
	s, _ := library.Open(filepath.Join(t.TempDir(), "library.yml"))
	if s.ByID("missing") != nil {
		t.Error("ByID returned non-nil for missing item")
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := library.Parse([]byte(":: bad yaml [")); err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

func TestParse_Empty(t *testing.T) {
	items, err := library.Parse(nil)
	if err != nil {
		t.Fatalf("Parse empty: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected 0 items, got %d", len(items))
	}
}
