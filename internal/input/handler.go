package input

import (
	"github.com/dshills/vicore/internal/dispatcher/execctx"
	"github.com/dshills/vicore/internal/dispatcher/resolver"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/input/keymap"
	"github.com/dshills/vicore/internal/input/state"
	"github.com/dshills/vicore/internal/input/vim"
	"github.com/dshills/vicore/internal/logging"
)

// SearchPrompt is the label of the search prompt.
const SearchPrompt = "/"

// Prompter reads a line of input on behalf of a surface.
type Prompter interface {
	// Prompt opens a prompt labelled prefix. done receives the entered
	// text, or ok false when the prompt was cancelled.
	Prompt(prefix string, done func(text string, ok bool))
}

// Handler routes key presses into surface states.
type Handler struct {
	keymap   *keymap.Keymap
	prompter Prompter
	log      *logging.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithPrompter sets the prompt used by bindings that read a line. Without
// one those bindings evaluate immediately with no input.
func WithPrompter(p Prompter) Option {
	return func(h *Handler) {
		h.prompter = p
	}
}

// WithLogger sets the handler logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// NewHandler creates a handler for km. A nil keymap uses the defaults.
func NewHandler(km *keymap.Keymap, opts ...Option) *Handler {
	if km == nil {
		km = keymap.Default()
	}
	h := &Handler{keymap: km, log: logging.Discard()}
	for _, opt := range opts {
		opt(h)
	}
	h.log = h.log.WithComponent("input")
	return h
}

// Keymap returns the handler's keymap.
func (h *Handler) Keymap() *keymap.Keymap {
	return h.keymap
}

// SetKeymap replaces the keymap. Keys must not be handled concurrently.
func (h *Handler) SetKeymap(km *keymap.Keymap) {
	if km != nil {
		h.keymap = km
	}
}

// HandleKey processes one key press for st.
func (h *Handler) HandleKey(st *state.State, ev key.Event) error {
	p := st.Pending()

	if p.ExpectingRegister() && ev.IsRune() && vim.IsValidRegister(ev.Rune) {
		p.SetRegister(ev.Rune)
		if p.Action() != "" {
			return st.Eval()
		}
		return nil
	}

	if p.ExpectingUserInput() {
		if !ev.IsRune() {
			p.Cancel()
			return st.Eval()
		}
		p.SetUserInput(string(ev.Rune))
		if isCharSearch(p.Motion()) {
			p.SetLastCharacterSearch(ev.Rune)
		}
		return st.Eval()
	}

	m := st.Mode()
	if !m.IsTextEntry() && h.pushDigit(p, ev) {
		return nil
	}

	b, ok := h.keymap.Lookup(m, ev, p.Action(), p.Motion())
	if !ok {
		return h.unbound(st, ev)
	}
	h.log.Debug("key", "key", ev.VimString(), "binding", b.String())

	switch b.Kind {
	case keymap.KindRegister:
		p.ExpectRegister()
		return nil
	case keymap.KindHost:
		return st.Run(execctx.Command(b.Command, nil))
	case keymap.KindAction:
		p.SetAction(b.Name())
	case keymap.KindMotion:
		p.SetMotion(b.Name())
	}

	if !p.Cancelled() {
		switch b.Input {
		case keymap.InputChar:
			p.ExpectUserInput()
			return nil
		case keymap.InputLine:
			if h.prompter != nil {
				h.prompt(st)
				return nil
			}
		}
	}

	err := st.Eval()
	if b.Input == keymap.InputRegister && p.Action() == b.Name() {
		p.ExpectRegister()
	}
	return err
}

// pushDigit adds ev to the count when it is a count digit. A zero only
// continues a count that has started.
func (h *Handler) pushDigit(p *vim.Pending, ev key.Event) bool {
	if !ev.IsDigit() {
		return false
	}
	if p.Action() != "" {
		if ev.Rune == '0' && len(p.ActionDigits()) == 0 {
			return false
		}
		return p.PushActionDigit(ev.Rune)
	}
	if ev.Rune == '0' && len(p.MotionDigits()) == 0 {
		return false
	}
	return p.PushMotionDigit(ev.Rune)
}

// unbound types text in the text-entry modes and cancels pending chords
// in the others.
func (h *Handler) unbound(st *state.State, ev key.Event) error {
	if st.Mode().IsTextEntry() {
		text := ""
		switch {
		case ev.IsRune():
			text = string(ev.Rune)
		case ev.Key == key.KeyEnter:
			text = "\n"
		case ev.Key == key.KeyTab:
			text = "\t"
		}
		if text == "" {
			return nil
		}
		return st.Run(execctx.Command(resolver.HostInsertText, execctx.Args{resolver.ArgCharacters: text}))
	}

	p := st.Pending()
	if p.IsIdle() {
		return nil
	}
	h.log.Debug("unbound key cancels chord", "key", ev.VimString())
	p.Cancel()
	return st.Eval()
}

func (h *Handler) prompt(st *state.State) {
	h.prompter.Prompt(SearchPrompt, func(text string, ok bool) {
		p := st.Pending()
		if ok {
			p.SetUserInput(text)
			if text != "" {
				p.SetLastBufferSearch(text)
			}
		} else {
			p.Cancel()
		}
		if err := st.Eval(); err != nil {
			h.log.Error("search failed", "pattern", text, "error", err)
		}
	})
}

func isCharSearch(name vim.Name) bool {
	switch name {
	case vim.MotionFindChar, vim.MotionFindCharBackward, vim.MotionTillChar, vim.MotionTillCharBackward:
		return true
	}
	return false
}
