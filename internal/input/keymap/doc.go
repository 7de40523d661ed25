// Package keymap maps key presses to interpreter names.
//
// A binding applies in a set of modes and may be restricted to a pending
// chord: Pending names an action or motion that must already be pending,
// and Operator requires any pending action. When several bindings match a
// key the most specific wins, so "g" can start gg, complete gg, or start
// an operator-pending gg depending on what came before it.
package keymap
