// Package mode provides the modal editing modes and the controller that
// switches an editing surface between them.
//
// A surface is always in exactly one of Normal, Insert, Replace, Visual,
// VisualLine or NormalInsert. NormalInsert is a transient excursion out of
// Normal used by counted insertions such as "5ifoo<Esc>": it behaves like
// Insert for the user but keeps the pending count alive.
//
// # Transitions
//
// Controller.Enter performs the side effects of a transition on the
// Surface and then records the new mode:
//
//	Normal        command input on, block cursor, xpos recomputed,
//	              overwrite off, search overlay erased, undo groups glued
//	Insert        command input off, bar cursor, overwrite off
//	Replace       command input off, underline cursor, overwrite on
//	Visual(Line)  mode only
//	NormalInsert  command input off, bar cursor
//
// Entering the mode a surface is already in repeats the same side effects and
// leaves the surface in the same observable state, so callers never need to
// guard a transition.
package mode
