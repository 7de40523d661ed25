// Package key models keyboard input as the command interpreter sees it.
//
// An Event is one key press: a character, a control character, or a
// special key such as Escape. Events are written in Vim notation:
//
//	a        the character a
//	<Esc>    escape
//	<CR>     enter
//	<C-r>    control-r
//	<lt>     a literal <
//
// ParseSequence turns a string such as "3dw<Esc>" into events, which is how
// replayed input and key bindings are written.
package key
