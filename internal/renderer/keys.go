package renderer

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vicore/internal/input/key"
)

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
}

// KeyEvent translates a tcell key. It returns false for keys the
// interpreter has no name for.
func KeyEvent(ev *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(ev.Modifiers())

	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if mods.Has(key.ModCtrl) {
			if r > 0 && r < ' ' {
				r += 'a' - 1
			}
			return key.Ctrl(r), true
		}
		out := key.Rune(r)
		out.Mod = mods &^ key.ModShift
		return out, true
	}

	if k, ok := specialKeys[ev.Key()]; ok {
		return key.Special(k), true
	}

	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		return key.Ctrl(rune('a' + ev.Key() - tcell.KeyCtrlA)), true
	}
	return key.Event{}, false
}

func convertMod(m tcell.ModMask) key.Modifier {
	var out key.Modifier
	if m&tcell.ModShift != 0 {
		out |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= key.ModCtrl
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		out |= key.ModAlt
	}
	return out
}

func isCtrl(ev key.Event, r rune) bool {
	return ev.Key == key.KeyRune && ev.Mod.Has(key.ModCtrl) && unicode.ToLower(ev.Rune) == r
}

func isQuit(ev key.Event) bool { return isCtrl(ev, 'q') }

func isSave(ev key.Event) bool { return isCtrl(ev, 's') }
