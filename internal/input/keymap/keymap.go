package keymap

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dshills/vicore/internal/dispatcher/resolver"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/vim"
)

// ErrInvalidBinding is returned for bindings that cannot be added.
var ErrInvalidBinding = errors.New("invalid binding")

// Keymap holds bindings indexed by key.
type Keymap struct {
	mu    sync.RWMutex
	byKey map[key.Event][]Binding
}

// New creates an empty keymap.
func New() *Keymap {
	return &Keymap{byKey: make(map[key.Event][]Binding)}
}

// Add adds b. A binding for the same key and condition replaces the
// earlier one in the modes they share.
func (k *Keymap) Add(b Binding) error {
	ev, err := key.Parse(b.Keys)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBinding, err)
	}
	if len(b.Modes) == 0 {
		return fmt.Errorf("%w: %q has no modes", ErrInvalidBinding, b.Keys)
	}
	if b.Command == "" && b.Kind != KindRegister {
		return fmt.Errorf("%w: %q has no command", ErrInvalidBinding, b.Keys)
	}
	b.event = ev
	b.Modes = slices.Clone(b.Modes)

	k.mu.Lock()
	defer k.mu.Unlock()

	list := k.byKey[ev]
	kept := list[:0]
	for _, old := range list {
		if old.sameSlot(b) {
			old.Modes = slices.DeleteFunc(slices.Clone(old.Modes), b.appliesIn)
			if len(old.Modes) == 0 {
				continue
			}
		}
		kept = append(kept, old)
	}
	k.byKey[ev] = append(kept, b)
	return nil
}

// AddAll adds every binding, stopping at the first error.
func (k *Keymap) AddAll(bindings ...Binding) error {
	for _, b := range bindings {
		if err := k.Add(b); err != nil {
			return err
		}
	}
	return nil
}

// Lookup finds the most specific binding for ev in mode m given the
// pending action and motion.
func (k *Keymap) Lookup(m mode.Mode, ev key.Event, action, motion vim.Name) (Binding, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var (
		best  Binding
		score = -1
	)
	for _, b := range k.byKey[ev] {
		if !b.appliesIn(m) {
			continue
		}
		if s := b.score(action, motion); s >= score && s >= 0 {
			best, score = b, s
		}
	}
	return best, score >= 0
}

// Bindings returns all bindings ordered by key.
func (k *Keymap) Bindings() []Binding {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var out []Binding
	for _, list := range k.byKey {
		out = append(out, list...)
	}
	slices.SortStableFunc(out, func(a, b Binding) int {
		if c := strings.Compare(a.Keys, b.Keys); c != 0 {
			return c
		}
		return strings.Compare(string(a.Pending), string(b.Pending))
	})
	return out
}

// Len returns the number of bindings.
func (k *Keymap) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	n := 0
	for _, list := range k.byKey {
		n += len(list)
	}
	return n
}

// Validate checks that every action and motion binding names a command
// known to r. An action binding that completes a motion digraph is checked
// as that motion.
func (k *Keymap) Validate(r *resolver.Registry) error {
	var motions, actions []vim.Name
	for _, b := range k.Bindings() {
		switch b.Kind {
		case KindAction:
			if b.Pending != "" {
				if target, kind := vim.ResolveDigraph(b.Pending, b.Name()); kind == vim.DigraphMotion {
					motions = append(motions, target)
					continue
				}
			}
			actions = append(actions, b.Name())
		case KindMotion:
			motions = append(motions, b.Name())
		}
		if b.Pending != "" && !r.HasAction(b.Pending) && !r.HasMotion(b.Pending) {
			motions = append(motions, b.Pending)
		}
	}
	return r.Validate(motions, actions)
}
