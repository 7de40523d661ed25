package renderer

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vicore/internal/input/mode"
)

// Terminal wraps a tcell screen.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen
	view   View
}

// NewTerminal creates a terminal on the controlling tty.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen creates a terminal on screen, which is usually a
// simulation screen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Screen returns the underlying screen.
func (t *Terminal) Screen() tcell.Screen { return t.screen }

// Init takes over the terminal and asks for focus reports.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableFocus()
	t.screen.EnablePaste()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Beep rings the terminal bell. It is the editor's blink.
func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	_ = t.screen.Beep() // best-effort; terminal may not support beep
}

// Size returns the screen size in cells.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) setCursorStyle(style mode.CursorStyle) {
	var ts tcell.CursorStyle
	switch style {
	case mode.CursorBar:
		ts = tcell.CursorStyleSteadyBar
	case mode.CursorUnderline:
		ts = tcell.CursorStyleSteadyUnderline
	default:
		ts = tcell.CursorStyleSteadyBlock
	}
	t.screen.SetCursorStyle(ts)
}
