package annotation

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Store is the durable highlight collection. Persistence mirrors the library
// store: every mutation rewrites the whole snapshot file.
type Store struct {
	mu         sync.Mutex
	path       string
	highlights []Highlight
}

// Open reads the snapshot at path. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Store{path: path, highlights: []Highlight{}}, nil
		}
		return nil, fmt.Errorf("reading highlights: %w", err)
	}
	hs, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, highlights: hs}, nil
}

// Parse decodes YAML bytes into a highlight list.
func Parse(data []byte) ([]Highlight, error) {
	if len(data) == 0 {
		return []Highlight{}, nil
	}
	var hs []Highlight
	if err := yaml.Unmarshal(data, &hs); err != nil {
		return nil, fmt.Errorf("parsing highlights YAML: %w", err)
	}
	if hs == nil {
		return []Highlight{}, nil
	}
	return hs, nil
}

// Marshal encodes a highlight list to YAML bytes.
func Marshal(hs []Highlight) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(hs); err != nil {
		return nil, fmt.Errorf("encoding highlights: %w", err)
	}
	return buf.Bytes(), nil
}

// Add appends h and persists the snapshot.
func (s *Store) Add(h Highlight) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.highlights = append(s.highlights, h)
	return s.persist()
}

// Remove deletes the highlight with the given ID. Missing IDs are a no-op.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, h := range s.highlights {
		if h.ID == id {
			s.highlights = append(s.highlights[:i], s.highlights[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// ForItem returns every highlight owned by itemID in insertion order, which
// approximates creation order rather than position in the text.
func (s *Store) ForItem(itemID string) []Highlight {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Highlight
	for _, h := range s.highlights {
		if h.ItemID == itemID {
			out = append(out, h)
		}
	}
	return out
}

// RemoveForItem deletes every highlight owned by itemID in one snapshot
// write. It is the cascade half of reading-item deletion.
func (s *Store) RemoveForItem(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.highlights[:0]
	for _, h := range s.highlights {
		if h.ItemID != itemID {
			kept = append(kept, h)
		}
	}
	if len(kept) == len(s.highlights) {
		return nil
	}
	s.highlights = kept
	return s.persist()
}

// Len returns the number of highlights in the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.highlights)
}

func (s *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	data, err := Marshal(s.highlights)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}
