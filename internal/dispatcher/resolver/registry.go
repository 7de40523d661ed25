package resolver

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dshills/vicore/internal/dispatcher/execctx"
	"github.com/dshills/vicore/internal/input/vim"
)

// MotionFunc resolves a motion.
type MotionFunc func(execctx.Context) execctx.Context

// ActionFunc resolves an action.
type ActionFunc func(execctx.Context) execctx.Context

// Registry holds motion and action resolvers by name.
type Registry struct {
	mu      sync.RWMutex
	motions map[vim.Name]MotionFunc
	actions map[vim.Name]ActionFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		motions: make(map[vim.Name]MotionFunc),
		actions: make(map[vim.Name]ActionFunc),
	}
}

// NewDefault creates a registry holding the built-in catalog.
func NewDefault() *Registry {
	r := NewRegistry()
	for name, fn := range builtinMotions {
		r.motions[name] = fn
	}
	for name, fn := range builtinActions {
		r.actions[name] = fn
	}
	return r
}

// RegisterMotion adds a motion. Registering a name twice is an error.
func (r *Registry) RegisterMotion(name vim.Name, fn MotionFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.motions[name]; ok {
		return fmt.Errorf("motion %s: %w", name, ErrDuplicateCommand)
	}
	r.motions[name] = fn
	return nil
}

// RegisterAction adds an action. Registering a name twice is an error.
func (r *Registry) RegisterAction(name vim.Name, fn ActionFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.actions[name]; ok {
		return fmt.Errorf("action %s: %w", name, ErrDuplicateCommand)
	}
	r.actions[name] = fn
	return nil
}

// OverrideMotion adds or replaces a motion.
func (r *Registry) OverrideMotion(name vim.Name, fn MotionFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.motions[name] = fn
}

// OverrideAction adds or replaces an action.
func (r *Registry) OverrideAction(name vim.Name, fn ActionFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[name] = fn
}

// Motion returns the resolver for name.
func (r *Registry) Motion(name vim.Name) (MotionFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.motions[name]
	if !ok {
		return nil, fmt.Errorf("motion %s: %w", name, ErrUnknownCommand)
	}
	return fn, nil
}

// Action returns the resolver for name.
func (r *Registry) Action(name vim.Name) (ActionFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.actions[name]
	if !ok {
		return nil, fmt.Errorf("action %s: %w", name, ErrUnknownCommand)
	}
	return fn, nil
}

// HasMotion reports whether name is a registered motion.
func (r *Registry) HasMotion(name vim.Name) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.motions[name]
	return ok
}

// HasAction reports whether name is a registered action.
func (r *Registry) HasAction(name vim.Name) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.actions[name]
	return ok
}

// Motions returns the registered motion names, sorted.
func (r *Registry) Motions() []vim.Name {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]vim.Name, 0, len(r.motions))
	for name := range r.motions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Actions returns the registered action names, sorted.
func (r *Registry) Actions() []vim.Name {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]vim.Name, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Validate checks that every name has a resolver of the right kind and
// that every digraph resolves to a registered command.
func (r *Registry) Validate(motions, actions []vim.Name) error {
	var errs []error
	for _, name := range motions {
		if !r.HasMotion(name) {
			errs = append(errs, fmt.Errorf("motion %s: %w", name, ErrUnknownCommand))
		}
	}
	for _, name := range actions {
		if !r.HasAction(name) {
			errs = append(errs, fmt.Errorf("action %s: %w", name, ErrUnknownCommand))
		}
	}
	for _, pair := range vim.Digraphs() {
		resolved, kind := vim.ResolveDigraph(pair[0], pair[1])
		switch {
		case kind == vim.DigraphMotion && !r.HasMotion(resolved):
			errs = append(errs, fmt.Errorf("digraph %s+%s: motion %s: %w", pair[0], pair[1], resolved, ErrUnknownCommand))
		case kind == vim.DigraphAction && !r.HasAction(resolved):
			errs = append(errs, fmt.Errorf("digraph %s+%s: action %s: %w", pair[0], pair[1], resolved, ErrUnknownCommand))
		}
	}
	return errors.Join(errs...)
}
