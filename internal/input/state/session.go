package state

import (
	"sync"

	"github.com/dshills/vicore/internal/dispatcher/resolver"
	"github.com/dshills/vicore/internal/input/vim"
	"github.com/dshills/vicore/internal/logging"
)

// DefaultStatusFormat wraps the mode name shown in the status line.
const DefaultStatusFormat = "-- %s --"

// Session is the state shared by every surface of one editor process.
type Session struct {
	Registers *vim.RegisterStore
	Marks     *vim.MarkStore
	Resolvers *resolver.Registry

	statusFormat string
	log          *logging.Logger

	mu               sync.Mutex
	repeat           RepeatRecord
	hasRepeat        bool
	suppressNextInit bool
	states           map[string]*State
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithStatusFormat sets the format used to show the mode name.
func WithStatusFormat(format string) Option {
	return func(s *Session) {
		if format != "" {
			s.statusFormat = format
		}
	}
}

// WithRegisters shares an existing register store.
func WithRegisters(r *vim.RegisterStore) Option {
	return func(s *Session) {
		if r != nil {
			s.Registers = r
		}
	}
}

// NewSession creates a session resolving commands through resolvers.
// A nil registry uses the built-in catalog.
func NewSession(resolvers *resolver.Registry, opts ...Option) *Session {
	if resolvers == nil {
		resolvers = resolver.NewDefault()
	}
	s := &Session{
		Registers:    vim.NewRegisterStore(),
		Marks:        vim.NewMarkStore(),
		Resolvers:    resolvers,
		statusFormat: DefaultStatusFormat,
		log:          logging.Discard(),
		states:       make(map[string]*State),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("state")
	return s
}

// SuppressNextInit makes the next State.Init a no-op. It is set before a
// prompt surface hands focus back to the surface that opened it.
func (s *Session) SuppressNextInit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppressNextInit = true
}

// consumeSuppressedInit reports and clears the suppress flag.
func (s *Session) consumeSuppressedInit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	suppressed := s.suppressNextInit
	s.suppressNextInit = false
	return suppressed
}

func (s *Session) attach(st *State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[st.id] = st
}

// Detach forgets a state, for example when its surface closes.
func (s *Session) Detach(st *State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, st.id)
	s.Marks.Forget(st.id)
}

// Unload turns command input off on every attached surface.
func (s *Session) Unload() {
	s.mu.Lock()
	states := make([]*State, 0, len(s.states))
	for _, st := range s.states {
		states = append(states, st)
	}
	s.mu.Unlock()

	for _, st := range states {
		st.view.SetCommandMode(false)
	}
	s.log.Debug("session unloaded", "surfaces", len(states))
}
