// Package renderer draws an editor on a tcell screen and feeds terminal
// events back to it.
//
// Terminal owns the screen. Run is the event loop: every key is
// translated to a key.Event and handed to the editor, focus changes drive
// the focus timer, and the screen is redrawn from app.Frame after each
// event. CTRL-S saves and CTRL-Q leaves the loop.
package renderer
