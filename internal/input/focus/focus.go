// Package focus restores surface state when focus moves between surfaces.
//
// A deactivation starts a short timer. An activation that arrives before
// the timer fires belongs to the same focus change: if it reactivates the
// surface that just lost focus, nothing happens. Any other activation
// reinitializes the activated surface.
package focus

import (
	"sync"
	"time"

	"github.com/dshills/vicore/internal/logging"
)

// DefaultDelay is how long a deactivation waits for a matching activation.
const DefaultDelay = 250 * time.Millisecond

// ReinitFunc reinitializes the surface with the given id.
type ReinitFunc func(surface string)

// Timer is the part of *time.Timer the restorer needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it.
type AfterFunc func(d time.Duration, f func()) Timer

// Restorer tracks the most recently deactivated surface.
type Restorer struct {
	delay  time.Duration
	reinit ReinitFunc
	after  AfterFunc
	log    *logging.Logger

	mu         sync.Mutex
	last       string
	seen       bool
	timer      Timer
	running    bool
	generation uint64
}

// Option configures a Restorer.
type Option func(*Restorer)

// WithDelay sets the timer delay. Non-positive values are ignored.
func WithDelay(d time.Duration) Option {
	return func(r *Restorer) {
		if d > 0 {
			r.delay = d
		}
	}
}

// WithAfterFunc replaces the timer source, for tests.
func WithAfterFunc(f AfterFunc) Option {
	return func(r *Restorer) {
		if f != nil {
			r.after = f
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Restorer) {
		if l != nil {
			r.log = l.WithComponent("focus")
		}
	}
}

// New creates a restorer that calls reinit for surfaces needing it.
func New(reinit ReinitFunc, opts ...Option) *Restorer {
	r := &Restorer{
		delay:  DefaultDelay,
		reinit: reinit,
		after: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		log: logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Deactivated records that surface lost focus and starts the timer.
func (r *Restorer) Deactivated(surface string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
	}
	r.last = surface
	r.seen = true
	r.generation++
	gen := r.generation
	r.running = true
	r.timer = r.after(r.delay, func() { r.expire(gen) })
}

func (r *Restorer) expire(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen == r.generation {
		r.running = false
	}
}

// Activated handles surface gaining focus.
func (r *Restorer) Activated(surface string) {
	r.mu.Lock()
	if !r.seen {
		r.mu.Unlock()
		return
	}
	reinit := true
	if r.running {
		r.timer.Stop()
		r.running = false
		r.generation++
		reinit = surface != r.last
	}
	r.mu.Unlock()

	if !reinit {
		r.log.Debug("focus returned", "surface", surface)
		return
	}
	r.log.Debug("reinitializing surface", "surface", surface)
	if r.reinit != nil {
		r.reinit(surface)
	}
}

// Pending reports whether a deactivation timer is running.
func (r *Restorer) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Stop cancels a running timer.
func (r *Restorer) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		r.timer.Stop()
		r.running = false
		r.generation++
	}
}
