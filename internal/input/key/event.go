package key

import (
	"unicode"
)

// Event is a single key press.
type Event struct {
	Key  Key
	Rune rune
	Mod  Modifier
}

// Rune returns the event for typing r.
func Rune(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// Ctrl returns the event for control-r. Letters are stored lowercase.
func Ctrl(r rune) Event {
	return Event{Key: KeyRune, Rune: unicode.ToLower(r), Mod: ModCtrl}
}

// Special returns the event for a non-character key.
func Special(k Key) Event {
	return Event{Key: k}
}

// Escape is the escape key.
var Escape = Special(KeyEscape)

// Enter is the enter key.
var Enter = Special(KeyEnter)

// IsRune reports whether the event is an unmodified character, the kind
// of key that can be typed as text.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0 && e.Mod&(ModCtrl|ModAlt) == 0
}

// IsDigit reports whether the event is an unmodified ASCII digit.
func (e Event) IsDigit() bool {
	return e.IsRune() && e.Rune >= '0' && e.Rune <= '9'
}

// IsZero reports whether e is the zero event.
func (e Event) IsZero() bool {
	return e == Event{}
}

// String returns the event in Vim notation.
func (e Event) String() string {
	return e.VimString()
}

// VimString returns the event in Vim notation: plain characters as
// themselves and everything else in angle brackets.
func (e Event) VimString() string {
	if e.Key == KeyRune {
		name := string(e.Rune)
		switch e.Rune {
		case ' ':
			name = "Space"
		case '<':
			name = "lt"
		}
		if e.Mod&(ModCtrl|ModAlt) == 0 && len(name) == len(string(e.Rune)) {
			return name
		}
		return "<" + (e.Mod &^ ModShift).String() + name + ">"
	}
	return "<" + e.Mod.String() + e.Key.String() + ">"
}
