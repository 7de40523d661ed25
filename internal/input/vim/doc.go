// Package vim holds the vocabulary and pending-command bookkeeping of the
// vi command language.
//
// A command is typed as a chord:
//
//	[count]["register][action][count][motion]
//	[count]["register][action][action]   (digraphs such as dd, yy, cc)
//	[count][motion]
//
// Pending accumulates one chord for one editing surface. Action and motion
// slots hold Names; the resolvers behind those names live in the dispatcher.
// Setting an action while one is already pending consults the digraph table:
// a declared pair replaces the action (or moves into the motion slot for
// motion digraphs such as gg), an undeclared pair marks the chord cancelled.
//
// The package also provides the register and mark stores, which are shared
// by every surface of a session.
package vim
