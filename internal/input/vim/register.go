package vim

import (
	"errors"
	"fmt"
	"sync"
	"unicode"
)

// Register names with special behaviour.
const (
	RegisterUnnamed      = '"'
	RegisterYank         = '0'
	RegisterSmallDelete  = '-'
	RegisterBlackHole    = '_'
	RegisterLastInserted = '.'
	RegisterSearch       = '/'
)

var (
	// ErrInvalidRegister is returned for a name that is not a register.
	ErrInvalidRegister = errors.New("invalid register")

	// ErrReadOnlyRegister is returned when writing a read-only register.
	ErrReadOnlyRegister = errors.New("register is read-only")
)

// Register is the content of one register slot.
type Register struct {
	Content  string
	Linewise bool
}

// IsValidRegister reports whether r names a register.
func IsValidRegister(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	switch r {
	case RegisterUnnamed, RegisterSmallDelete, RegisterBlackHole,
		RegisterLastInserted, RegisterSearch:
		return true
	}
	return false
}

func isReadOnlyRegister(r rune) bool {
	return r == RegisterLastInserted || r == RegisterSearch
}

// RegisterStore holds the registers of a session. It is shared by every
// surface and safe for concurrent use.
type RegisterStore struct {
	mu    sync.RWMutex
	slots map[rune]Register
}

// NewRegisterStore creates an empty store.
func NewRegisterStore() *RegisterStore {
	return &RegisterStore{slots: make(map[rune]Register)}
}

// Get returns the content of register name. Uppercase names read their
// lowercase register.
func (s *RegisterStore) Get(name rune) (Register, bool) {
	if name == 0 {
		name = RegisterUnnamed
	}
	if !IsValidRegister(name) || name == RegisterBlackHole {
		return Register{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	reg, ok := s.slots[unicode.ToLower(name)]
	return reg, ok
}

// Set writes register name directly. Uppercase names append to their
// lowercase register. Writes to the black hole register are dropped.
func (s *RegisterStore) Set(name rune, reg Register) error {
	if name == 0 {
		name = RegisterUnnamed
	}
	if !IsValidRegister(name) {
		return fmt.Errorf("set %q: %w", name, ErrInvalidRegister)
	}
	if isReadOnlyRegister(name) {
		return fmt.Errorf("set %q: %w", name, ErrReadOnlyRegister)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(name, reg)
	return nil
}

// store writes without validation. Callers hold mu.
func (s *RegisterStore) store(name rune, reg Register) {
	if name == RegisterBlackHole {
		return
	}
	if unicode.IsUpper(name) {
		lower := unicode.ToLower(name)
		prev := s.slots[lower]
		reg.Content = prev.Content + reg.Content
		reg.Linewise = reg.Linewise || prev.Linewise
		name = lower
	}
	s.slots[name] = reg
}

// Yank records yanked text: into name when one was given, into the yank
// register otherwise, and always into the unnamed register.
func (s *RegisterStore) Yank(name rune, reg Register) {
	if name == RegisterBlackHole {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if name != 0 && name != RegisterUnnamed && !isReadOnlyRegister(name) {
		s.store(name, reg)
	} else {
		s.slots[RegisterYank] = reg
	}
	s.slots[RegisterUnnamed] = reg
}

// Delete records deleted text. Without a register name, linewise or
// multi-line deletes shift the numbered registers 1-9 and smaller deletes
// go to the small delete register.
func (s *RegisterStore) Delete(name rune, reg Register) {
	if name == RegisterBlackHole {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case name != 0 && name != RegisterUnnamed && !isReadOnlyRegister(name):
		s.store(name, reg)
	case reg.Linewise || containsNewline(reg.Content):
		for i := '9'; i > '1'; i-- {
			if prev, ok := s.slots[i-1]; ok {
				s.slots[i] = prev
			}
		}
		s.slots['1'] = reg
	default:
		s.slots[RegisterSmallDelete] = reg
	}
	s.slots[RegisterUnnamed] = reg
}

// SetLastInserted records the text typed during the last insert.
func (s *RegisterStore) SetLastInserted(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[RegisterLastInserted] = Register{Content: text}
}

// SetLastSearch records the last search pattern.
func (s *RegisterStore) SetLastSearch(pattern string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[RegisterSearch] = Register{Content: pattern}
}

func containsNewline(s string) bool {
	for _, r := range s {
		if r == '\n' {
			return true
		}
	}
	return false
}
