package renderer

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vicore/internal/app"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/logging"
)

// Editor is what the event loop drives.
type Editor interface {
	HandleKey(ev key.Event) error
	FocusLost()
	FocusGained()
	Frame() app.Frame
	Save() error
}

// Redraw draws the editor's current frame.
func (t *Terminal) Redraw(ed Editor) {
	f := ed.Frame()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.view.Draw(t.screen, f)
	t.setCursorStyle(f.Style)
	t.screen.Show()
}

// Run processes terminal events until CTRL-Q is pressed, ctx is done, or
// the screen is finalized. CTRL-S saves the focused document. Key handling
// errors are logged and the loop continues.
func (t *Terminal) Run(ctx context.Context, ed Editor, log *logging.Logger) error {
	if log == nil {
		log = logging.Discard()
	}
	log = log.WithComponent("renderer")

	stop := context.AfterFunc(ctx, func() {
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	t.Redraw(ed)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch e := ev.(type) {
		case *tcell.EventKey:
			k, ok := KeyEvent(e)
			if !ok {
				continue
			}
			if isQuit(k) {
				return nil
			}
			if isSave(k) {
				if err := ed.Save(); err != nil {
					log.Warn("save failed", "error", err)
					t.Beep()
				}
				break
			}
			if err := ed.HandleKey(k); err != nil {
				log.Warn("key failed", "key", k.String(), "error", err)
			}

		case *tcell.EventFocus:
			if e.Focused {
				ed.FocusGained()
			} else {
				ed.FocusLost()
			}

		case *tcell.EventResize:
			t.mu.Lock()
			t.screen.Sync()
			t.mu.Unlock()

		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
		t.Redraw(ed)
	}
}
