package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/vicore/internal/dispatcher/execctx"
	"github.com/dshills/vicore/internal/engine/buffer"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is used when a non-positive limit is given.
const DefaultMaxEntries = 1000

// Entry is one recorded command.
type Entry struct {
	Invocation execctx.Invocation
	Edits      []Edit

	// Before and After are the selections around the command.
	Before []buffer.Selection
	After  []buffer.Selection

	Automatic bool
	Timestamp time.Time
}

// History manages the command log and undo/redo state of one document.
type History struct {
	mu sync.Mutex

	undoStack []*Entry
	redoStack []*Entry

	// lastAutomatic is newer than the top of undoStack when set.
	lastAutomatic *Entry

	marked    bool
	markDepth int

	maxEntries int
}

// NewHistory creates a history keeping at most maxEntries undo entries.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Record adds an undoable entry and clears the redo stack.
func (h *History) Record(e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if e.Automatic {
		h.lastAutomatic = &e
		return
	}
	h.lastAutomatic = nil
	h.undoStack = append(h.undoStack, &e)
	h.redoStack = nil

	if excess := len(h.undoStack) - h.maxEntries; excess > 0 {
		h.undoStack = h.undoStack[excess:]
		if h.marked {
			h.markDepth = max(h.markDepth-excess, 0)
		}
	}
}

// MostRecent returns the newest command, how many times it was run in a
// row, and whether there is one. With skipAutomatic only undoable entries
// are considered.
func (h *History) MostRecent(skipAutomatic bool) (execctx.Invocation, int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !skipAutomatic && h.lastAutomatic != nil {
		return h.lastAutomatic.Invocation, 1, true
	}
	if len(h.undoStack) == 0 {
		return execctx.Invocation{}, 0, false
	}

	top := h.undoStack[len(h.undoStack)-1].Invocation
	times := 1
	for i := len(h.undoStack) - 2; i >= 0; i-- {
		if !h.undoStack[i].Invocation.Equal(top) {
			break
		}
		times++
	}
	return top, times, true
}

// Undo reverts the newest entry on buf and returns it.
func (h *History) Undo(buf *buffer.Buffer) (Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return Entry{}, ErrNothingToUndo
	}
	entry := h.undoStack[len(h.undoStack)-1]
	if err := revertAll(buf, entry.Edits); err != nil {
		return Entry{}, err
	}

	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, entry)
	h.lastAutomatic = nil
	if h.marked && h.markDepth > len(h.undoStack) {
		h.markDepth = len(h.undoStack)
	}
	return *entry, nil
}

// Redo re-applies the newest undone entry on buf and returns it.
func (h *History) Redo(buf *buffer.Buffer) (Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return Entry{}, ErrNothingToRedo
	}
	entry := h.redoStack[len(h.redoStack)-1]
	if err := applyAll(buf, entry.Edits); err != nil {
		return Entry{}, err
	}

	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, entry)
	h.lastAutomatic = nil
	return *entry, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo entries.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// MarkGroupsForGluing remembers the current position. Entries recorded
// after it are glued by GlueMarkedGroups. An existing mark is kept.
func (h *History) MarkGroupsForGluing() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.marked {
		return
	}
	h.marked = true
	h.markDepth = len(h.undoStack)
}

// IsMarked reports whether a glue mark is set.
func (h *History) IsMarked() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.marked
}

// GlueMarkedGroups folds the entries recorded since the mark into one
// sequence entry and clears the mark. Without a mark it does nothing.
func (h *History) GlueMarkedGroups() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.marked {
		return
	}
	h.marked = false

	tail := h.undoStack[h.markDepth:]
	if len(tail) < 2 {
		return
	}

	glued := &Entry{
		Before:    tail[0].Before,
		After:     tail[len(tail)-1].After,
		Timestamp: tail[len(tail)-1].Timestamp,
	}
	steps := make([]execctx.Invocation, 0, len(tail))
	for _, e := range tail {
		steps = append(steps, e.Invocation)
		glued.Edits = append(glued.Edits, e.Edits...)
	}
	glued.Invocation = execctx.Sequence(steps...)

	h.undoStack = append(h.undoStack[:h.markDepth], glued)
}

// Clear removes all history and any glue mark.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.lastAutomatic = nil
	h.marked = false
	h.markDepth = 0
}
