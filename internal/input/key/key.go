package key

import (
	"fmt"
	"strings"
)

// Key identifies a key. Character keys are KeyRune with Event.Rune set.
type Key uint8

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
)

var keyNames = map[Key]string{
	KeyEscape:    "Esc",
	KeyEnter:     "CR",
	KeyTab:       "Tab",
	KeyBackspace: "BS",
	KeyDelete:    "Del",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
}

// String returns the Vim name of the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyRune:
		return "Rune"
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", k)
}

// aliases maps lowercase names in <...> notation to keys or runes.
var aliases = map[string]Event{
	"esc":       {Key: KeyEscape},
	"escape":    {Key: KeyEscape},
	"cr":        {Key: KeyEnter},
	"enter":     {Key: KeyEnter},
	"return":    {Key: KeyEnter},
	"tab":       {Key: KeyTab},
	"bs":        {Key: KeyBackspace},
	"backspace": {Key: KeyBackspace},
	"del":       {Key: KeyDelete},
	"delete":    {Key: KeyDelete},
	"up":        {Key: KeyUp},
	"down":      {Key: KeyDown},
	"left":      {Key: KeyLeft},
	"right":     {Key: KeyRight},
	"home":      {Key: KeyHome},
	"end":       {Key: KeyEnd},
	"space":     {Key: KeyRune, Rune: ' '},
	"lt":        {Key: KeyRune, Rune: '<'},
	"gt":        {Key: KeyRune, Rune: '>'},
	"bar":       {Key: KeyRune, Rune: '|'},
	"bslash":    {Key: KeyRune, Rune: '\\'},
}

// Modifier is a set of modifier keys.
type Modifier uint8

const (
	ModNone Modifier = 0
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
)

// Has reports whether all of m2 are set in m.
func (m Modifier) Has(m2 Modifier) bool {
	return m&m2 == m2
}

// String returns the modifiers in Vim prefix form, e.g. "C-A-".
func (m Modifier) String() string {
	var b strings.Builder
	if m.Has(ModCtrl) {
		b.WriteString("C-")
	}
	if m.Has(ModAlt) {
		b.WriteString("A-")
	}
	if m.Has(ModShift) {
		b.WriteString("S-")
	}
	return b.String()
}
