package mode

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned when a mode name cannot be parsed.
var ErrUnknownMode = errors.New("unknown mode")

// Mode identifies how keys are interpreted on a surface.
type Mode uint8

const (
	// None is the zero value. A surface that has never been initialised is
	// in None; command contexts use it for "no mode change requested".
	None Mode = iota

	// Normal interprets keys as commands.
	Normal

	// Insert passes keys through as literal text.
	Insert

	// Replace passes keys through as text that overwrites.
	Replace

	// Visual extends a character-wise selection.
	Visual

	// VisualLine extends a line-wise selection.
	VisualLine

	// NormalInsert is a counted insert excursion out of Normal.
	NormalInsert

	// InternalNormal only appears in command contexts. It marks an action
	// running with a motion from Normal mode, so the motion extends the
	// selection instead of moving the caret.
	InternalNormal
)

var modeNames = map[Mode]string{
	None:           "none",
	Normal:         "normal",
	Insert:         "insert",
	Replace:        "replace",
	Visual:         "visual",
	VisualLine:     "visual-line",
	NormalInsert:   "normal-insert",
	InternalNormal: "internal-normal",
}

// String returns the mode identifier used in configuration files.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// DisplayName returns the name shown on the status line. Modes the user
// never sees directly return an empty string.
func (m Mode) DisplayName() string {
	switch m {
	case Normal:
		return "NORMAL"
	case Insert, NormalInsert:
		return "INSERT"
	case Replace:
		return "REPLACE"
	case Visual:
		return "VISUAL"
	case VisualLine:
		return "VISUAL LINE"
	default:
		return ""
	}
}

// IsVisual reports whether m is one of the selection modes.
func (m Mode) IsVisual() bool {
	return m == Visual || m == VisualLine
}

// IsTextEntry reports whether keys are passed through as text in m.
func (m Mode) IsTextEntry() bool {
	return m == Insert || m == Replace || m == NormalInsert
}

// CursorStyle returns the cursor drawn for m.
func (m Mode) CursorStyle() CursorStyle {
	switch m {
	case Insert, NormalInsert:
		return CursorBar
	case Replace:
		return CursorUnderline
	default:
		return CursorBlock
	}
}

// Parse converts a configuration name such as "normal" or "visual-line"
// to a Mode. Only modes a surface can be in are accepted.
func Parse(name string) (Mode, error) {
	name = strings.TrimSpace(name)
	if name == "V" {
		return VisualLine, nil
	}
	switch strings.ToLower(name) {
	case "normal", "n":
		return Normal, nil
	case "insert", "i":
		return Insert, nil
	case "replace", "r":
		return Replace, nil
	case "visual", "v":
		return Visual, nil
	case "visual-line", "visualline":
		return VisualLine, nil
	case "normal-insert":
		return NormalInsert, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (command input).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (text entry).
	CursorBar

	// CursorUnderline is an underline cursor (overwrite).
	CursorUnderline
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	default:
		return "unknown"
	}
}
