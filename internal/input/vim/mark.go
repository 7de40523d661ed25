package vim

import (
	"errors"
	"fmt"
	"sync"
)

// ErrInvalidMark is returned for a name that cannot hold a mark.
var ErrInvalidMark = errors.New("invalid mark")

// Mark is a saved position.
type Mark struct {
	Surface string
	Offset  int
}

// MarkStore holds the marks of a session. Lowercase marks belong to one
// surface; uppercase marks are global and remember their surface.
// MarkStore is safe for concurrent use.
type MarkStore struct {
	mu     sync.RWMutex
	local  map[string]map[rune]int
	global map[rune]Mark
}

// NewMarkStore creates an empty store.
func NewMarkStore() *MarkStore {
	return &MarkStore{
		local:  make(map[string]map[rune]int),
		global: make(map[rune]Mark),
	}
}

func isMarkName(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Set saves offset under name for surface.
func (s *MarkStore) Set(surface string, name rune, offset int) error {
	if !isMarkName(name) {
		return fmt.Errorf("mark %q: %w", name, ErrInvalidMark)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if name >= 'A' && name <= 'Z' {
		s.global[name] = Mark{Surface: surface, Offset: offset}
		return nil
	}
	m := s.local[surface]
	if m == nil {
		m = make(map[rune]int)
		s.local[surface] = m
	}
	m[name] = offset
	return nil
}

// Get looks up name as seen from surface.
func (s *MarkStore) Get(surface string, name rune) (Mark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if name >= 'A' && name <= 'Z' {
		m, ok := s.global[name]
		return m, ok
	}
	off, ok := s.local[surface][name]
	if !ok {
		return Mark{}, false
	}
	return Mark{Surface: surface, Offset: off}, true
}

// Forget drops every local mark of surface.
func (s *MarkStore) Forget(surface string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.local, surface)
}
