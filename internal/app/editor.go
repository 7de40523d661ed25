package app

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dshills/vicore/internal/dispatcher/resolver"
	"github.com/dshills/vicore/internal/input"
	"github.com/dshills/vicore/internal/input/focus"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/input/keymap"
	"github.com/dshills/vicore/internal/input/state"
	"github.com/dshills/vicore/internal/logging"
)

// Options configures an Editor.
type Options struct {
	// Keymap maps keys to commands. Nil uses the default bindings.
	Keymap *keymap.Keymap

	// Resolvers resolves command names. Nil uses the built-in catalog.
	Resolvers *resolver.Registry

	// StatusFormat wraps the mode name in the status line.
	StatusFormat string

	// FocusDelay is how long a surface may lose focus before it is
	// reinitialized on return.
	FocusDelay time.Duration

	// HistorySize limits the undo history of each document.
	HistorySize int

	// ShiftWidth is the indent width of > and <.
	ShiftWidth int

	// OnBlink is called whenever a document blinks.
	OnBlink func()

	// AfterFunc replaces time.AfterFunc for the focus timer.
	AfterFunc focus.AfterFunc

	Logger *logging.Logger
}

// Editor owns the open documents, the session they share, and the search
// prompt.
//
// Editor methods are safe to call from several goroutines; keys are still
// processed one at a time.
type Editor struct {
	mu sync.Mutex

	session  *state.Session
	handler  *input.Handler
	restorer *focus.Restorer
	patterns *PatternCache
	opts     Options
	log      *logging.Logger

	docs   map[string]*Document
	order  []string
	active *Document
	status string

	prompt *prompt
}

// prompt is the open search prompt: a widget document and the callback
// waiting for its text.
type prompt struct {
	doc    *Document
	prefix string
	owner  *Document
	done   func(text string, ok bool)
}

// New creates an editor with no documents.
func New(opts Options) *Editor {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	km := opts.Keymap
	if km == nil {
		km = keymap.Default()
	}

	e := &Editor{
		patterns: NewPatternCache(),
		opts:     opts,
		log:      log.WithComponent("editor"),
		docs:     make(map[string]*Document),
	}
	e.session = state.NewSession(opts.Resolvers,
		state.WithLogger(log),
		state.WithStatusFormat(opts.StatusFormat),
	)
	e.handler = input.NewHandler(km, input.WithPrompter(e), input.WithLogger(log))

	focusOpts := []focus.Option{focus.WithLogger(log)}
	if opts.FocusDelay > 0 {
		focusOpts = append(focusOpts, focus.WithDelay(opts.FocusDelay))
	}
	if opts.AfterFunc != nil {
		focusOpts = append(focusOpts, focus.WithAfterFunc(opts.AfterFunc))
	}
	e.restorer = focus.New(e.reinit, focusOpts...)
	return e
}

// SetKeymap swaps the key bindings between two keys.
func (e *Editor) SetKeymap(km *keymap.Keymap) {
	if km == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handler.SetKeymap(km)
	e.log.Info("keymap replaced", "bindings", km.Len())
}

// Session returns the session shared by all documents.
func (e *Editor) Session() *state.Session { return e.session }

// Handler returns the key handler.
func (e *Editor) Handler() *input.Handler { return e.handler }

func (e *Editor) documentOptions(extra ...DocumentOption) []DocumentOption {
	opts := []DocumentOption{
		WithPatternCache(e.patterns),
		WithShiftWidth(e.opts.ShiftWidth),
		WithHistorySize(e.opts.HistorySize),
		WithDocumentLogger(e.log),
		WithBlinkFunc(e.blink),
	}
	return append(opts, extra...)
}

func (e *Editor) blink() {
	if e.opts.OnBlink != nil {
		e.opts.OnBlink()
	}
}

// statusFor routes the status text of doc to the editor while doc has
// focus.
func (e *Editor) statusFor(doc **Document) state.StatusFunc {
	return func(text string) {
		if *doc == e.active {
			e.status = text
		}
	}
}

// Open creates a document holding text and gives it focus.
func (e *Editor) Open(name, text string) (*Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var doc *Document
	doc = NewDocument(e.session, name, text, e.statusFor(&doc), e.documentOptions()...)
	return doc, e.add(doc)
}

// OpenFile loads path into a document and gives it focus.
func (e *Editor) OpenFile(path string) (*Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var doc *Document
	doc, err := OpenFile(e.session, path, e.statusFor(&doc), e.documentOptions()...)
	if err != nil {
		return nil, err
	}
	return doc, e.add(doc)
}

func (e *Editor) add(doc *Document) error {
	e.docs[doc.ID()] = doc
	e.order = append(e.order, doc.ID())
	e.log.Info("document opened", "surface", doc.ID(), "name", doc.Name())
	e.focus(doc)
	return doc.State().Init()
}

// Documents returns the open documents in the order they were opened.
func (e *Editor) Documents() []*Document {
	e.mu.Lock()
	defer e.mu.Unlock()

	docs := make([]*Document, 0, len(e.order))
	for _, id := range e.order {
		docs = append(docs, e.docs[id])
	}
	return docs
}

// Document returns the document with surface id.
func (e *Editor) Document(id string) (*Document, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	doc, ok := e.docs[id]
	return doc, ok
}

// Active returns the focused document, nil when none is open.
func (e *Editor) Active() *Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// Focus moves focus to the document with surface id.
func (e *Editor) Focus(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc, ok := e.docs[id]
	if !ok {
		return fmt.Errorf("focus %s: %w", id, ErrDocumentNotFound)
	}
	e.focus(doc)
	return nil
}

func (e *Editor) focus(doc *Document) {
	if e.active == doc {
		return
	}
	if e.active != nil {
		e.restorer.Deactivated(e.active.ID())
	}
	e.active = doc
	e.restorer.Activated(doc.ID())
	doc.State().UpdateStatus()
}

// reinit brings a refocused surface back to Normal.
func (e *Editor) reinit(id string) {
	doc := e.docs[id]
	if e.prompt != nil && e.prompt.doc.ID() == id {
		doc = e.prompt.doc
	}
	if doc == nil {
		return
	}
	if err := doc.State().Init(); err != nil {
		e.log.Error("reinitialize failed", "surface", id, "error", err)
	}
}

// Close removes the document with surface id. Focus moves to the most
// recently opened remaining document.
func (e *Editor) Close(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc, ok := e.docs[id]
	if !ok {
		return fmt.Errorf("close %s: %w", id, ErrDocumentNotFound)
	}
	delete(e.docs, id)
	e.order = slices.DeleteFunc(e.order, func(s string) bool { return s == id })
	e.session.Detach(doc.State())
	e.log.Info("document closed", "surface", id)

	if e.active != doc {
		return nil
	}
	e.active = nil
	e.status = ""
	if len(e.order) > 0 {
		e.focus(e.docs[e.order[len(e.order)-1]])
	}
	return nil
}

// HandleKey sends a key press to the prompt when one is open, otherwise
// to the focused document.
func (e *Editor) HandleKey(ev key.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.prompt != nil {
		return e.promptKey(ev)
	}
	if e.active == nil {
		return ErrNoActiveDocument
	}
	return e.handler.HandleKey(e.active.State(), ev)
}

// HandleKeys sends each key of a Vim-notation sequence.
func (e *Editor) HandleKeys(keys string) error {
	events, err := key.ParseSequence(keys)
	if err != nil {
		return err
	}
	var errs []error
	for _, ev := range events {
		if err := e.HandleKey(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Prompt opens the search prompt. It implements input.Prompter and is
// called with the editor lock held.
func (e *Editor) Prompt(prefix string, done func(text string, ok bool)) {
	var doc *Document
	doc = NewDocument(e.session, "prompt", "", e.statusFor(&doc), e.documentOptions(AsWidget())...)
	e.prompt = &prompt{doc: doc, prefix: prefix, owner: e.active, done: done}
	e.focus(doc)
	e.status = prefix
}

// PromptText returns the prompt label and text, and whether a prompt is
// open.
func (e *Editor) PromptText() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.prompt == nil {
		return "", false
	}
	return e.prompt.prefix + e.prompt.doc.Text(), true
}

func (e *Editor) promptKey(ev key.Event) error {
	p := e.prompt
	switch {
	case ev.Key == key.KeyEnter:
		e.closePrompt()
		p.done(p.doc.Text(), true)
		return nil
	case ev.Key == key.KeyEscape:
		e.closePrompt()
		p.done("", false)
		return nil
	case ev.Key == key.KeyBackspace:
		if p.doc.Buffer().Len() == 0 {
			e.closePrompt()
			p.done("", false)
			return nil
		}
		p.doc.Select(p.doc.Buffer().Len(), p.doc.Buffer().Len())
		if err := p.doc.deleteLeft(); err != nil {
			return err
		}
	case ev.IsRune():
		p.doc.Select(p.doc.Buffer().Len(), p.doc.Buffer().Len())
		if err := p.doc.insertText(string(ev.Rune)); err != nil {
			return err
		}
	}
	e.status = p.prefix + p.doc.Text()
	return nil
}

// closePrompt hands focus back to the surface that opened the prompt
// without reinitializing it.
func (e *Editor) closePrompt() {
	p := e.prompt
	e.prompt = nil
	e.session.SuppressNextInit()
	e.session.Detach(p.doc.State())
	if p.owner != nil {
		e.focus(p.owner)
	} else {
		e.active = nil
	}
}

// Status returns the status line text.
func (e *Editor) Status() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Shutdown stops the focus timer and turns command input off on every
// document.
func (e *Editor) Shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.restorer.Stop()
	e.session.Unload()
	e.log.Info("editor shut down", "documents", len(e.docs))
}

// FocusLost records that the terminal lost focus.
func (e *Editor) FocusLost() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != nil {
		e.restorer.Deactivated(e.active.ID())
	}
}

// FocusGained records that the terminal regained focus. A document that
// was away for longer than the focus delay is reinitialized.
func (e *Editor) FocusGained() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != nil {
		e.restorer.Activated(e.active.ID())
	}
}
