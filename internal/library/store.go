package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is the durable reading-item collection. Every mutation rewrites the
// whole snapshot file, so the on-disk copy always matches memory.
//
// The mutex only guards against a TUI command goroutine racing the event
// loop; there is still exactly one logical writer per session.
type Store struct {
	mu    sync.Mutex
	path  string
	items []Item
}

// Open reads the snapshot at path. If none exists yet, the store seeds itself
// with the demo item and writes the initial snapshot, so a first run never
// shows an empty library.
func Open(path string) (*Store, error) {
	items, existed, err := readSnapshot(path)
	if err != nil {
		return nil, err
	}
	s := &Store{path: path, items: items}
	if !existed {
		s.items = []Item{DemoItem()}
		if err := s.persist(); err != nil {
			return nil, fmt.Errorf("seeding library: %w", err)
		}
	}
	return s, nil
}

// Insert prepends item, keeping the collection newest-first without a sort
// step, and persists the snapshot.
func (s *Store) Insert(item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]Item{item}, s.items...)
	return s.persist()
}

// Remove deletes the item with the given ID. Removing an absent ID is a
// no-op and still succeeds.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// Items returns the ordered collection, newest first.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// ByID returns the item with the given ID, or nil if not found.
func (s *Store) ByID(id string) *Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			it := s.items[i]
			return &it
		}
	}
	return nil
}

// Len returns the number of items in the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	return writeSnapshot(s.path, s.items)
}
