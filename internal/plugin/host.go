package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/vicore/internal/dispatcher/execctx"
	"github.com/dshills/vicore/internal/dispatcher/resolver"
	"github.com/dshills/vicore/internal/input/keymap"
	"github.com/dshills/vicore/internal/input/vim"
	"github.com/dshills/vicore/internal/logging"
)

// Host runs plugin scripts against a resolver registry.
type Host struct {
	st       *state
	registry *resolver.Registry
	log      *logging.Logger

	mu       sync.Mutex
	bindings []keymap.Spec
	scripts  []string
	current  string
}

// Option configures a Host.
type Option func(*hostConfig)

type hostConfig struct {
	timeout time.Duration
	log     *logging.Logger
}

// WithTimeout bounds each script and resolver call.
func WithTimeout(d time.Duration) Option {
	return func(c *hostConfig) { c.timeout = d }
}

// WithLogger sets the plugin logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *hostConfig) { c.log = l }
}

// NewHost creates a host that registers commands into registry.
func NewHost(registry *resolver.Registry, opts ...Option) *Host {
	cfg := hostConfig{timeout: DefaultTimeout, log: logging.Discard()}
	for _, opt := range opts {
		opt(&cfg)
	}
	h := &Host{
		st:       newState(cfg.timeout),
		registry: registry,
		log:      cfg.log.WithComponent("plugin"),
	}
	h.install()
	return h
}

func (h *Host) install() {
	L := h.st.L
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"motion": h.luaMotion,
		"action": h.luaAction,
		"bind":   h.luaBind,
		"log":    h.luaLog,
	})
	L.SetGlobal("vicore", mod)
}

// LoadFile runs the script at path.
func (h *Host) LoadFile(path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return &ScriptError{Script: path, Err: err}
	}
	return h.LoadString(filepath.Base(path), string(code))
}

// LoadFiles runs each script in order, stopping at the first failure.
func (h *Host) LoadFiles(paths ...string) error {
	for _, p := range paths {
		if err := h.LoadFile(p); err != nil {
			return err
		}
	}
	return nil
}

// LoadString runs code under the given script name.
func (h *Host) LoadString(name, code string) error {
	h.mu.Lock()
	h.current = name
	h.mu.Unlock()

	err := h.st.do(func(L *lua.LState) error {
		fn, err := L.LoadString(code)
		if err != nil {
			return err
		}
		L.Push(fn)
		return L.PCall(0, 0, nil)
	})
	if err != nil {
		return &ScriptError{Script: name, Err: err}
	}

	h.mu.Lock()
	h.scripts = append(h.scripts, name)
	h.mu.Unlock()
	h.log.Info("plugin loaded", "script", name)
	return nil
}

// Scripts returns the names of the loaded scripts.
func (h *Host) Scripts() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.scripts...)
}

// Bindings returns the key bindings the scripts asked for.
func (h *Host) Bindings() []keymap.Spec {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]keymap.Spec(nil), h.bindings...)
}

// Apply adds the scripts' bindings to km.
func (h *Host) Apply(km *keymap.Keymap) error {
	for _, spec := range h.Bindings() {
		b, err := spec.Binding()
		if err != nil {
			return err
		}
		if err := km.Add(b); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the interpreter. Registered resolvers stop working.
func (h *Host) Close() {
	h.st.close()
}

func (h *Host) luaMotion(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	if err := h.registry.RegisterMotion(vim.Name(name), h.resolve(name, fn, true)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (h *Host) luaAction(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	if err := h.registry.RegisterAction(vim.Name(name), h.resolve(name, fn, false)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (h *Host) luaBind(L *lua.LState) int {
	t := L.CheckTable(1)
	spec := keymap.Spec{
		Keys:     lua.LVAsString(t.RawGetString("keys")),
		Kind:     lua.LVAsString(t.RawGetString("kind")),
		Command:  lua.LVAsString(t.RawGetString("command")),
		Pending:  lua.LVAsString(t.RawGetString("pending")),
		Operator: lua.LVAsBool(t.RawGetString("operator")),
		Input:    lua.LVAsString(t.RawGetString("input")),
	}
	switch modes := t.RawGetString("modes").(type) {
	case lua.LString:
		spec.Modes = []string{string(modes)}
	case *lua.LTable:
		modes.ForEach(func(_, v lua.LValue) {
			spec.Modes = append(spec.Modes, lua.LVAsString(v))
		})
	}
	if _, err := spec.Binding(); err != nil {
		L.RaiseError("%v", err)
		return 0
	}

	h.mu.Lock()
	h.bindings = append(h.bindings, spec)
	h.mu.Unlock()
	return 0
}

func (h *Host) luaLog(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	h.mu.Lock()
	script := h.current
	h.mu.Unlock()
	h.log.Info(strings.Join(parts, " "), "script", script)
	return 0
}

// resolve wraps a Lua resolver. A failing resolver leaves the context
// unchanged, which cancels the chord.
func (h *Host) resolve(name string, fn *lua.LFunction, motion bool) func(execctx.Context) execctx.Context {
	return func(ctx execctx.Context) execctx.Context {
		out := ctx
		err := h.st.do(func(L *lua.LState) error {
			if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, contextTable(L, ctx)); err != nil {
				return err
			}
			ret := L.Get(-1)
			L.Pop(1)
			var err error
			out, err = applyResult(ctx, ret, motion)
			return err
		})
		if err != nil {
			h.log.Warn("resolver failed", "command", name, "error", fmt.Sprint(err))
			return ctx
		}
		return out
	}
}
