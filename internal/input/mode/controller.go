package mode

import (
	"fmt"

	"github.com/dshills/vicore/internal/engine/buffer"
)

// OverlaySearch names the highlight overlay left behind by searches.
const OverlaySearch = "vi_search"

// Surface is the part of the buffer/view layer touched by mode transitions.
type Surface interface {
	// Selections returns the current selections in order.
	Selections() []buffer.Selection

	// RowCol converts an offset to a 0-indexed (row, col) pair.
	RowCol(offset int) (row, col int)

	// SetCommandMode turns command input on (keys are commands) or off
	// (keys pass through as text).
	SetCommandMode(on bool)

	// SetCursorStyle changes the drawn cursor.
	SetCursorStyle(style CursorStyle)

	// Overwrite reports whether typed text overwrites.
	Overwrite() bool

	// SetOverwrite toggles overwrite.
	SetOverwrite(on bool)

	// EraseOverlay removes a named highlight overlay.
	EraseOverlay(name string)

	// GlueMarkedUndoGroups folds the undo steps recorded since the last
	// mark into one unit.
	GlueMarkedUndoGroups()
}

// ChangeCallback is called after the mode changes.
type ChangeCallback func(from, to Mode)

// Controller owns the current mode of one surface and the cached
// horizontal column (xpos) that vertical motions align to.
//
// Controller is not safe for concurrent use.
type Controller struct {
	surface Surface
	current Mode

	xpos    int
	hasXPos bool

	callbacks []ChangeCallback
}

// NewController creates a controller for surface. The initial mode is None
// until the first Enter.
func NewController(surface Surface) *Controller {
	return &Controller{surface: surface}
}

// Current returns the active mode.
func (c *Controller) Current() Mode {
	return c.current
}

// Is reports whether the active mode is any of modes.
func (c *Controller) Is(modes ...Mode) bool {
	for _, m := range modes {
		if c.current == m {
			return true
		}
	}
	return false
}

// Set records m as the current mode without any side effects. It is used
// when a caller performs the transition effects itself, such as leaving a
// counted insert.
func (c *Controller) Set(m Mode) {
	c.change(m)
}

// Enter performs the side effects of transitioning to m and makes it the
// current mode.
func (c *Controller) Enter(m Mode) error {
	switch m {
	case Normal:
		c.surface.SetCommandMode(true)
		c.surface.SetCursorStyle(CursorBlock)
		c.refreshXPos()
		if c.surface.Overwrite() {
			c.surface.SetOverwrite(false)
		}
		c.surface.EraseOverlay(OverlaySearch)
		c.surface.GlueMarkedUndoGroups()
	case Insert:
		c.surface.SetCommandMode(false)
		c.surface.SetCursorStyle(CursorBar)
		if c.surface.Overwrite() {
			c.surface.SetOverwrite(false)
		}
	case Replace:
		c.surface.SetCommandMode(false)
		c.surface.SetCursorStyle(CursorUnderline)
		c.surface.SetOverwrite(true)
	case Visual, VisualLine:
	case NormalInsert:
		c.surface.SetCommandMode(false)
		c.surface.SetCursorStyle(CursorBar)
	default:
		return fmt.Errorf("enter %s: %w", m, ErrUnknownMode)
	}

	c.change(m)
	return nil
}

func (c *Controller) change(m Mode) {
	from := c.current
	c.current = m
	if from == m {
		return
	}
	for _, cb := range c.callbacks {
		if cb != nil {
			cb(from, m)
		}
	}
}

// refreshXPos caches the column of the first selection's head, or clears
// xpos when there is no selection.
func (c *Controller) refreshXPos() {
	sels := c.surface.Selections()
	if len(sels) == 0 {
		c.ClearXPos()
		return
	}
	_, col := c.surface.RowCol(sels[0].Head)
	c.SetXPos(col)
}

// XPos returns the cached column and whether one is set.
func (c *Controller) XPos() (int, bool) {
	return c.xpos, c.hasXPos
}

// SetXPos caches col as the horizontal position.
func (c *Controller) SetXPos(col int) {
	c.xpos = col
	c.hasXPos = true
}

// ClearXPos forgets the horizontal position.
func (c *Controller) ClearXPos() {
	c.xpos = 0
	c.hasXPos = false
}

// OnChange registers a callback for mode changes. Re-entering the current
// mode does not notify. Returns a function that unregisters the callback.
func (c *Controller) OnChange(cb ChangeCallback) func() {
	c.callbacks = append(c.callbacks, cb)
	index := len(c.callbacks) - 1
	return func() {
		if index < len(c.callbacks) {
			c.callbacks[index] = nil
		}
	}
}
