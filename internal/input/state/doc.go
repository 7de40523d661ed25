// Package state implements the per-surface command state machine.
//
// A State owns the mode controller and pending chord of one editing surface.
// After every key that changes the chord, the input layer calls Eval, which
// decides whether the chord is complete, still pending or invalid:
//
//   - an invalid chord is cancelled: the action is resolved only for its
//     exit metadata, the surface may blink, and the chord is reset;
//   - a complete chord is resolved through the session's resolver registry
//     and sent to the view as a single execctx.RunCommand invocation;
//   - a partial chord is left in place for the next key.
//
// Reset clears the chord and applies any deferred mode transition. While the
// surface is in NormalInsert the count digits survive the reset, so that a
// counted insert can replay its text when it ends.
//
// The Session holds everything shared between surfaces: registers, marks,
// the resolver registry and the record of the last repeatable command.
package state
