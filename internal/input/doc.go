// Package input turns key presses into interpreter state.
//
// The Handler looks each key up in a keymap, feeds the result into the
// pending chord of the focused surface, and evaluates the chord when it
// is complete. Keys that read extra input, such as the character after f
// or the register name after CTRL-R, are held in the chord until that
// input arrives. Unbound keys are typed as text in the text-entry modes
// and cancel any pending chord elsewhere.
//
//	h := input.NewHandler(keymap.Default(), input.WithPrompter(editor))
//	for ev := range keys {
//	    if err := h.HandleKey(st, ev); err != nil {
//	        log.Error("key failed", "key", ev, "error", err)
//	    }
//	}
package input
