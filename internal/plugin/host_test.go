package plugin

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/vicore/internal/app"
	"github.com/dshills/vicore/internal/dispatcher/execctx"
	"github.com/dshills/vicore/internal/dispatcher/resolver"
	"github.com/dshills/vicore/internal/input/keymap"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/vim"
)

const rightTwo = `
vicore.motion("_plugin_right2", function(ctx)
  return { step = "_vi_move_chars", args = { delta = 2 * ctx.count } }
end)
vicore.bind{ keys = "Q", modes = { "normal" }, kind = "motion", command = "_plugin_right2" }

vicore.action("_plugin_x2", function(ctx)
  return {
    step = "_vi_delete_char",
    args = { count = 2 },
    motion_required = false,
    follow_up = "normal",
    can_yank = true,
  }
end)
vicore.bind{ keys = "X", modes = "normal", kind = "action", command = "_plugin_x2" }
`

func newHost(t *testing.T, opts ...Option) (*Host, *resolver.Registry) {
	t.Helper()
	reg := resolver.NewDefault()
	h := NewHost(reg, opts...)
	t.Cleanup(h.Close)
	return h, reg
}

func editorWith(t *testing.T, h *Host, reg *resolver.Registry, text string) *app.Editor {
	t.Helper()
	km := keymap.Default()
	require.NoError(t, h.Apply(km))
	require.NoError(t, km.Validate(reg))
	e := app.New(app.Options{Keymap: km, Resolvers: reg})
	_, err := e.Open("test", text)
	require.NoError(t, err)
	return e
}

func TestScriptCommandsDriveEditor(t *testing.T) {
	h, reg := newHost(t)
	require.NoError(t, h.LoadString("right2.lua", rightTwo))

	assert.True(t, reg.HasMotion("_plugin_right2"))
	assert.True(t, reg.HasAction("_plugin_x2"))
	assert.Len(t, h.Bindings(), 2)
	assert.Equal(t, []string{"right2.lua"}, h.Scripts())

	tests := []struct {
		keys   string
		want   string
		cursor int
	}{
		{"Q", "abcdef", 2},
		{"2Q", "abcdef", 4},
		{"dQ", "cdef", 0},
		{"X", "cdef", 0},
		{"lX.", "af", 1},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			e := editorWith(t, h, reg, "abcdef")
			require.NoError(t, e.HandleKeys(tt.keys))
			doc := e.Active()
			assert.Equal(t, tt.want, doc.Text())
			assert.Equal(t, tt.cursor, doc.Cursor())
			assert.Equal(t, mode.Normal, doc.Mode())
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "right2.lua")
	require.NoError(t, os.WriteFile(path, []byte(rightTwo), 0o644))

	h, reg := newHost(t)
	require.NoError(t, h.LoadFiles(path))
	assert.True(t, reg.HasMotion("_plugin_right2"))

	err := h.LoadFile(filepath.Join(t.TempDir(), "missing.lua"))
	var serr *ScriptError
	require.ErrorAs(t, err, &serr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"syntax", "vicore.motion(", ""},
		{"duplicate", `
local f = function(ctx) return nil end
vicore.motion("_dup", f)
vicore.motion("_dup", f)`, "duplicate"},
		{"bad binding", `vicore.bind{ keys = "Q", kind = "motion", command = "x" }`, "no modes"},
		{"no os", `os.exit(1)`, ""},
		{"no io", `io.open("/etc/passwd")`, ""},
		{"no dofile", `dofile("/etc/passwd")`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newHost(t)
			err := h.LoadString(tt.name, tt.code)
			var serr *ScriptError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.name, serr.Script)
			if tt.want != "" {
				assert.Contains(t, err.Error(), tt.want)
			}
			assert.Empty(t, h.Scripts())
		})
	}
}

func TestScriptTimeout(t *testing.T) {
	h, _ := newHost(t, WithTimeout(50*time.Millisecond))

	start := time.Now()
	err := h.LoadString("spin", "while true do end")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestFailingResolverLeavesContext(t *testing.T) {
	h, reg := newHost(t)
	require.NoError(t, h.LoadString("bad", `
vicore.motion("_number", function(ctx) return 42 end)
vicore.motion("_raise", function(ctx) error("boom") end)
vicore.motion("_nested", function(ctx) return { step = "_vi_move_chars", args = { delta = {} } } end)
`))

	for _, name := range []string{"_number", "_raise", "_nested"} {
		fn, err := reg.Motion(vim.Name(name))
		require.NoError(t, err)
		out := fn(execctx.New())
		assert.True(t, out.MotionStep.IsZero(), name)
	}
}

func TestClosedHost(t *testing.T) {
	h, reg := newHost(t)
	require.NoError(t, h.LoadString("right2.lua", rightTwo))
	h.Close()

	assert.ErrorIs(t, h.LoadString("late", "x = 1"), ErrStateClosed)

	fn, err := reg.Motion("_plugin_right2")
	require.NoError(t, err)
	assert.True(t, fn(execctx.New()).MotionStep.IsZero())
}

func TestApplyResult(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	require.NoError(t, L.DoString(`result = {
  step = "_vi_enter_insert",
  args = { where = "after", ratio = 1.5 },
  motion_step = "_vi_select_lines",
  motion_args = { count = 3 },
  motion_required = false,
  follow_up = "insert",
  irreversible = true,
  reclassify_as_motion = "vi_l",
}`))

	ctx, err := applyResult(execctx.New(), L.GetGlobal("result"), false)
	require.NoError(t, err)

	assert.Equal(t, "_vi_enter_insert", ctx.ActionStep.Command)
	assert.Equal(t, "after", ctx.ActionStep.Args.String("where"))
	assert.Equal(t, 1.5, ctx.ActionStep.Args["ratio"])
	assert.Equal(t, "_vi_select_lines", ctx.MotionStep.Command)
	assert.Equal(t, 3, ctx.MotionStep.Args.Int("count"))
	assert.False(t, ctx.MotionRequired)
	assert.True(t, ctx.Irreversible)
	assert.Equal(t, mode.Insert, ctx.FollowUpMode)
	assert.Equal(t, "vi_l", string(ctx.ReclassifyAsMotion))

	_, err = applyResult(execctx.New(), lua.LString("x"), true)
	assert.ErrorIs(t, err, ErrBadResult)

	L.SetGlobal("bad", L.NewTable())
	L.GetGlobal("bad").(*lua.LTable).RawSetString("follow_up", lua.LString("command"))
	_, err = applyResult(execctx.New(), L.GetGlobal("bad"), true)
	assert.ErrorIs(t, err, mode.ErrUnknownMode)
}

func TestContextTable(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	ctx := execctx.New()
	ctx.Action = "vi_d"
	ctx.Mode = mode.InternalNormal
	ctx.Count = 3
	ctx.Register = 'a'

	tbl := contextTable(L, ctx)
	assert.Equal(t, "vi_d", lua.LVAsString(tbl.RawGetString("action")))
	assert.Equal(t, lua.LNumber(3), tbl.RawGetString("count"))
	assert.Equal(t, "a", lua.LVAsString(tbl.RawGetString("register")))
	assert.Equal(t, lua.LTrue, tbl.RawGetString("operator_pending"))
	assert.Equal(t, "", lua.LVAsString(tbl.RawGetString("last_character_search")))
}
