package recent

import (
	"fmt"
	"sync"

	"github.com/sahilm/fuzzy"
)

// Capacity is the maximum number of remembered paths
const Capacity = 10

// Persistence is the key-value store backing the list
type Persistence interface {
	Strings(key string) ([]string, error)
	SetStrings(key string, values []string) error
}

// Store is the most-recent-first, de-duplicated list of file paths.
// It is hydrated once and written back on every mutation.
type Store struct {
	mu    sync.RWMutex
	key   string
	store Persistence
	paths []string
}

// New hydrates a Store from persistence. Stored lists that violate the
// capacity or contain duplicates are normalized.
func New(store Persistence, key string) (*Store, error) {
	s := &Store{key: key, store: store}

	stored, err := store.Strings(key)
	if err != nil {
		return s, fmt.Errorf("failed to load recent files: %w", err)
	}

	for i := len(stored) - 1; i >= 0; i-- {
		if stored[i] != "" {
			s.paths = pushFront(s.paths, stored[i])
		}
	}
	return s, nil
}

// Add moves path to the front of the list (inserting it if new) and persists
func (s *Store) Add(path string) error {
	if path == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.paths = pushFront(s.paths, path)
	return s.persist()
}

// Remove drops path from the list and persists. Unknown paths are ignored.
func (s *Store) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := without(s.paths, path)
	if len(filtered) == len(s.paths) {
		return nil
	}
	s.paths = filtered
	return s.persist()
}

// Clear empties the list and persists
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.paths = nil
	return s.persist()
}

// Paths returns a copy of the list, most recent first
func (s *Store) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.paths...)
}

// MostRecent returns the front entry
func (s *Store) MostRecent() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.paths) == 0 {
		return "", false
	}
	return s.paths[0], true
}

// Filter returns the entries matching query, best match first.
// An empty query returns the whole list in recency order.
func (s *Store) Filter(query string) []string {
	return FilterPaths(s.Paths(), query)
}

// FilterPaths fuzzy-matches query against paths, best match first
func FilterPaths(paths []string, query string) []string {
	if query == "" {
		return paths
	}

	matches := fuzzy.Find(query, paths)
	result := make([]string, 0, len(matches))
	for _, match := range matches {
		result = append(result, match.Str)
	}
	return result
}

func (s *Store) persist() error {
	if err := s.store.SetStrings(s.key, s.paths); err != nil {
		return fmt.Errorf("failed to save recent files: %w", err)
	}
	return nil
}

func pushFront(paths []string, path string) []string {
	updated := append([]string{path}, without(paths, path)...)
	if len(updated) > Capacity {
		updated = updated[:Capacity]
	}
	return updated
}

func without(paths []string, path string) []string {
	filtered := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != path {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
