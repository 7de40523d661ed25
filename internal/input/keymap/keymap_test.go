package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vicore/internal/dispatcher/resolver"
	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/vim"
)

func lookup(t *testing.T, k *Keymap, m mode.Mode, keys string, action, motion vim.Name) Binding {
	t.Helper()
	b, ok := k.Lookup(m, key.MustParse(keys), action, motion)
	require.True(t, ok, "no binding for %s in %s", keys, m)
	return b
}

func TestDefaultsValidate(t *testing.T) {
	require.NoError(t, Default().Validate(resolver.NewDefault()))
}

func TestGPositions(t *testing.T) {
	k := Default()

	b := lookup(t, k, mode.Normal, "g", "", "")
	assert.Equal(t, KindAction, b.Kind)
	assert.Equal(t, vim.ActionGPrefix, b.Name())

	b = lookup(t, k, mode.Normal, "g", vim.ActionGPrefix, "")
	assert.Equal(t, vim.MotionGotoFirstLine, b.Name())

	b = lookup(t, k, mode.Normal, "g", vim.ActionDelete, "")
	assert.Equal(t, KindMotion, b.Kind)
	assert.Equal(t, vim.MotionGPrefix, b.Name())

	b = lookup(t, k, mode.Normal, "g", vim.ActionDelete, vim.MotionGPrefix)
	assert.Equal(t, KindMotion, b.Kind)
	assert.Equal(t, vim.MotionGotoFirstLine, b.Name())
}

func TestCaseOperators(t *testing.T) {
	k := Default()

	assert.Equal(t, vim.ActionUndo, lookup(t, k, mode.Normal, "u", "", "").Name())
	assert.Equal(t, vim.ActionLowercase, lookup(t, k, mode.Normal, "u", vim.ActionGPrefix, "").Name())
	assert.Equal(t, vim.ActionLowercase, lookup(t, k, mode.Normal, "u", vim.ActionLowercase, "").Name())
	assert.Equal(t, vim.ActionUppercase, lookup(t, k, mode.Normal, "U", vim.ActionUppercase, "").Name())
	assert.Equal(t, vim.ActionLowercase, lookup(t, k, mode.Visual, "u", "", "").Name())

	_, ok := k.Lookup(mode.Normal, key.Rune('U'), "", "")
	assert.False(t, ok)
}

func TestModeScoping(t *testing.T) {
	k := Default()

	b := lookup(t, k, mode.Insert, "<Esc>", "", "")
	assert.Equal(t, KindHost, b.Kind)
	assert.Equal(t, resolver.HostExitInsertMode, b.Command)

	b = lookup(t, k, mode.NormalInsert, "<Esc>", "", "")
	assert.Equal(t, resolver.HostRunNormalInsertModeAction, b.Command)

	b = lookup(t, k, mode.Visual, "<Esc>", "", "")
	assert.Equal(t, vim.ActionEsc, b.Name())

	b = lookup(t, k, mode.Insert, "<C-r>", "", "")
	assert.Equal(t, vim.ActionInsertRegister, b.Name())
	assert.Equal(t, InputRegister, b.Input)

	b = lookup(t, k, mode.Normal, "<C-r>", "", "")
	assert.Equal(t, vim.ActionRedo, b.Name())

	_, ok := k.Lookup(mode.Insert, key.Rune('d'), "", "")
	assert.False(t, ok, "typed text is not bound")
	_, ok = k.Lookup(mode.Visual, key.Rune('i'), "", "")
	assert.False(t, ok)
}

func TestInputs(t *testing.T) {
	k := Default()
	assert.Equal(t, InputChar, lookup(t, k, mode.Normal, "f", "", "").Input)
	assert.Equal(t, InputChar, lookup(t, k, mode.Normal, "r", "", "").Input)
	assert.Equal(t, InputLine, lookup(t, k, mode.Normal, "/", "", "").Input)
	assert.Equal(t, KindRegister, lookup(t, k, mode.Normal, `"`, "", "").Kind)
	assert.Equal(t, vim.ActionUnindent, lookup(t, k, mode.Normal, "<", "", "").Name())
}

func TestAddOverrides(t *testing.T) {
	k := Default()
	before := k.Len()

	require.NoError(t, k.Add(Binding{Keys: "x", Kind: KindMotion, Command: string(vim.MotionRight), Modes: []mode.Mode{mode.Normal}}))

	assert.Equal(t, vim.MotionRight, lookup(t, k, mode.Normal, "x", "", "").Name())
	assert.Equal(t, vim.ActionDeleteChar, lookup(t, k, mode.Visual, "x", "", "").Name(), "other modes keep the old binding")
	assert.Equal(t, before+1, k.Len())

	require.NoError(t, k.Add(Binding{Keys: "x", Kind: KindMotion, Command: string(vim.MotionLeft), Modes: commandModes}))
	assert.Equal(t, before, k.Len())
}

func TestAddErrors(t *testing.T) {
	k := New()
	assert.ErrorIs(t, k.Add(Binding{Keys: "", Command: "vi_x", Modes: normalOnly}), ErrInvalidBinding)
	assert.ErrorIs(t, k.Add(Binding{Keys: "x", Command: "vi_x"}), ErrInvalidBinding)
	assert.ErrorIs(t, k.Add(Binding{Keys: "x", Modes: normalOnly}), ErrInvalidBinding)
}

func TestValidateReportsUnknownNames(t *testing.T) {
	k := New()
	require.NoError(t, k.Add(action("z", "vi_zz")))
	require.NoError(t, k.Add(motion("Z", "vi_big_zz")))

	err := k.Validate(resolver.NewDefault())
	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrUnknownCommand)
	assert.Contains(t, err.Error(), "vi_zz")
	assert.Contains(t, err.Error(), "vi_big_zz")
}

func TestSpec(t *testing.T) {
	b, err := Spec{
		Keys:    "Q",
		Modes:   []string{"normal", "visual"},
		Kind:    "motion",
		Command: string(vim.MotionFindChar),
		Input:   "char",
	}.Binding()
	require.NoError(t, err)
	assert.Equal(t, []mode.Mode{mode.Normal, mode.Visual}, b.Modes)
	assert.Equal(t, KindMotion, b.Kind)
	assert.Equal(t, InputChar, b.Input)

	_, err = Spec{Keys: "Q", Modes: []string{"normal"}, Kind: "macro"}.Binding()
	assert.ErrorIs(t, err, ErrInvalidBinding)
	_, err = Spec{Keys: "Q", Kind: "action"}.Binding()
	assert.ErrorIs(t, err, ErrInvalidBinding)
	_, err = Spec{Keys: "Q", Modes: []string{"command"}, Kind: "action"}.Binding()
	assert.ErrorIs(t, err, mode.ErrUnknownMode)
}
