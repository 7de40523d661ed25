package renderer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vicore/internal/app"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/input/mode"
)

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		name string
		in   *tcell.EventKey
		want key.Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), key.Rune('x')},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModShift), key.Rune('X')},
		{"ctrl key", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), key.Ctrl('r')},
		{"ctrl rune", tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModCtrl), key.Ctrl('r')},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), key.Escape},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.Enter},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), key.Special(key.KeyBackspace)},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), key.Special(key.KeyLeft)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KeyEvent(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := KeyEvent(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone))
	assert.False(t, ok)
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

// rowText returns row y of the screen with trailing blanks removed.
func rowText(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

func TestDrawFrame(t *testing.T) {
	s := newScreen(t, 30, 4)
	var v View
	v.Draw(s, app.Frame{
		Name:   "notes",
		Lines:  []string{"hello", "world"},
		Mode:   mode.Normal,
		Cursor: app.Position{Row: 1, Col: 2},
		Status: "-- NORMAL --",
	})
	s.Show()

	assert.Equal(t, "hello", rowText(s, 0))
	assert.Equal(t, "world", rowText(s, 1))
	assert.Equal(t, "~", rowText(s, 2))
	assert.True(t, strings.HasPrefix(rowText(s, 3), "-- NORMAL --"))
	assert.True(t, strings.HasSuffix(rowText(s, 3), "notes  2,3"))

	x, y, visible := s.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 2, x)
	assert.Equal(t, 1, y)
}

func TestDrawScrollsToCursor(t *testing.T) {
	s := newScreen(t, 10, 3)
	var v View
	v.Draw(s, app.Frame{
		Lines:  []string{"a", "b", "c", "d", "e"},
		Cursor: app.Position{Row: 4},
	})
	s.Show()

	assert.Equal(t, "d", rowText(s, 0))
	assert.Equal(t, "e", rowText(s, 1))
	_, y, _ := s.GetCursor()
	assert.Equal(t, 1, y)
}

func TestDrawSelection(t *testing.T) {
	s := newScreen(t, 10, 3)
	var v View
	v.Draw(s, app.Frame{
		Lines:    []string{"abcdef"},
		Mode:     mode.Visual,
		Selected: true,
		SelStart: app.Position{Col: 1},
		SelEnd:   app.Position{Col: 3},
	})
	s.Show()

	cells, _, _ := s.GetContents()
	for x, want := range []bool{false, true, true, false} {
		_, _, attrs := cells[x].Style.Decompose()
		assert.Equal(t, want, attrs&tcell.AttrReverse != 0, "column %d", x)
	}
}

func TestDrawPrompt(t *testing.T) {
	s := newScreen(t, 20, 3)
	var v View
	v.Draw(s, app.Frame{
		Lines:     []string{"text"},
		Prompting: true,
		Prompt:    "/ab",
		Status:    "-- NORMAL --",
	})
	s.Show()

	assert.Equal(t, "/ab", rowText(s, 2))
	x, y, _ := s.GetCursor()
	assert.Equal(t, 3, x)
	assert.Equal(t, 2, y)
}

func TestRunFeedsEditor(t *testing.T) {
	s := newScreen(t, 40, 5)
	term := NewTerminalWithScreen(s)

	ed := app.New(app.Options{OnBlink: term.Beep})
	_, err := ed.Open("buf", "one\ntwo")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- term.Run(context.Background(), ed, nil) }()

	for _, r := range "dd" {
		s.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	s.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}
	assert.Equal(t, "two", ed.Active().Text())
	assert.Equal(t, "two", rowText(s, 0))
}

func TestRunStopsOnCancel(t *testing.T) {
	s := newScreen(t, 20, 3)
	term := NewTerminalWithScreen(s)
	ed := app.New(app.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- term.Run(ctx, ed, nil) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestRunForwardsFocusAndSave(t *testing.T) {
	s := newScreen(t, 20, 3)
	term := NewTerminalWithScreen(s)
	ed := &fakeEditor{}

	done := make(chan error, 1)
	go func() { done <- term.Run(context.Background(), ed, nil) }()

	require.NoError(t, s.PostEvent(tcell.NewEventFocus(false)))
	require.NoError(t, s.PostEvent(tcell.NewEventFocus(true)))
	s.InjectKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)
	s.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not stop")
	}
	assert.Equal(t, []string{"lost", "gained"}, ed.focus)
	assert.Equal(t, 1, ed.saves)
}

type fakeEditor struct {
	focus []string
	saves int
}

func (f *fakeEditor) HandleKey(key.Event) error { return nil }
func (f *fakeEditor) FocusLost()                { f.focus = append(f.focus, "lost") }
func (f *fakeEditor) FocusGained()              { f.focus = append(f.focus, "gained") }
func (f *fakeEditor) Frame() app.Frame          { return app.Frame{} }
func (f *fakeEditor) Save() error               { f.saves++; return nil }
