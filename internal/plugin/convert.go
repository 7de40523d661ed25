package plugin

import (
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/vicore/internal/dispatcher/execctx"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/vim"
)

// contextTable exposes the inputs of ctx to a resolver.
func contextTable(L *lua.LState, ctx execctx.Context) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("action", lua.LString(ctx.Action))
	t.RawSetString("motion", lua.LString(ctx.Motion))
	t.RawSetString("mode", lua.LString(ctx.Mode.String()))
	t.RawSetString("count", lua.LNumber(ctx.GetCount()))
	t.RawSetString("user_count", lua.LNumber(ctx.UserCount))
	t.RawSetString("has_user_count", lua.LBool(ctx.HasUserCount))
	t.RawSetString("register", lua.LString(runeString(ctx.Register)))
	t.RawSetString("user_input", lua.LString(ctx.UserInput))
	t.RawSetString("last_buffer_search", lua.LString(ctx.LastBufferSearch))
	t.RawSetString("last_character_search", lua.LString(runeString(ctx.LastCharacterSearch)))
	t.RawSetString("xpos", lua.LNumber(ctx.XPos))
	t.RawSetString("operator_pending", lua.LBool(ctx.IsOperatorPending()))
	return t
}

func runeString(r rune) string {
	if r == 0 {
		return ""
	}
	return string(r)
}

// applyResult folds a resolver's result table into ctx. step and args set
// the resolver's own command; motion_step and motion_args let an action
// supply its motion.
func applyResult(ctx execctx.Context, v lua.LValue, motion bool) (execctx.Context, error) {
	if v == lua.LNil {
		return ctx, nil
	}
	t, ok := v.(*lua.LTable)
	if !ok {
		return ctx, fmt.Errorf("%w: got %s", ErrBadResult, v.Type())
	}

	if step := lua.LVAsString(t.RawGetString("step")); step != "" {
		args, err := argsFrom(t.RawGetString("args"))
		if err != nil {
			return ctx, err
		}
		if motion {
			ctx = ctx.WithMotionStep(step, args)
		} else {
			ctx = ctx.WithActionStep(step, args)
		}
	}
	if step := lua.LVAsString(t.RawGetString("motion_step")); step != "" && !motion {
		args, err := argsFrom(t.RawGetString("motion_args"))
		if err != nil {
			return ctx, err
		}
		ctx = ctx.WithMotionStep(step, args)
	}

	flags := []struct {
		key string
		dst *bool
	}{
		{"motion_required", &ctx.MotionRequired},
		{"can_yank", &ctx.CanYank},
		{"yanks_linewise", &ctx.YanksLinewise},
		{"is_jump", &ctx.IsJump},
		{"align_with_xpos", &ctx.AlignWithXPos},
		{"irreversible", &ctx.Irreversible},
		{"must_blink_on_error", &ctx.MustBlinkOnError},
		{"digraph_start", &ctx.IsDigraphStart},
		{"glue", &ctx.MarkGroupsForGluing},
	}
	for _, f := range flags {
		if b, ok := t.RawGetString(f.key).(lua.LBool); ok {
			*f.dst = bool(b)
		}
	}

	if name := lua.LVAsString(t.RawGetString("follow_up")); name != "" {
		m, err := mode.Parse(name)
		if err != nil {
			return ctx, err
		}
		ctx.FollowUpMode = m
	}
	if name := lua.LVAsString(t.RawGetString("reclassify_as_motion")); name != "" {
		ctx.ReclassifyAsMotion = vim.Name(name)
	}
	return ctx, nil
}

// argsFrom converts a Lua table of scalars to command arguments.
func argsFrom(v lua.LValue) (execctx.Args, error) {
	args := execctx.Args{}
	if v == lua.LNil {
		return args, nil
	}
	t, ok := v.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: args must be a table, got %s", ErrBadResult, v.Type())
	}
	var err error
	t.ForEach(func(k, val lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok || err != nil {
			return
		}
		switch x := val.(type) {
		case lua.LBool:
			args[string(key)] = bool(x)
		case lua.LString:
			args[string(key)] = string(x)
		case lua.LNumber:
			f := float64(x)
			if f == math.Trunc(f) {
				args[string(key)] = int(f)
			} else {
				args[string(key)] = f
			}
		default:
			err = fmt.Errorf("%w: arg %s has type %s", ErrBadResult, key, val.Type())
		}
	})
	return args, err
}
