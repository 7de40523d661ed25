// Package resolver maps motion and action names to the functions that
// resolve them.
//
// A resolver receives an execctx.Context and returns an updated copy: motion
// resolvers fill in the motion step, action resolvers the action step plus
// any flow flags (motion required, digraph start, exit mode). Resolvers are
// pure; the buffer layer executes the steps they produce.
//
// The Registry is a closed table built at startup. Looking up a name that
// was never registered is a programming error reported as ErrUnknownCommand,
// and Validate lets callers check a keymap against the table before any key
// is pressed.
package resolver
