package vim

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/vicore/internal/input/mode"
)

func TestResolveDigraph(t *testing.T) {
	tests := []struct {
		pending, incoming Name
		want              Name
		kind              DigraphKind
	}{
		{ActionDelete, ActionDelete, ActionDeleteLine, DigraphAction},
		{ActionYank, ActionYank, ActionYankLine, DigraphAction},
		{ActionChange, ActionChange, ActionChangeLine, DigraphAction},
		{ActionGPrefix, ActionUppercase, ActionUppercase, DigraphAction},
		{ActionGPrefix, MotionGotoFirstLine, MotionGotoFirstLine, DigraphMotion},
		{ActionDelete, ActionYank, "", DigraphNone},
		{ActionInsertRegister, MotionDown, "", DigraphNone},
	}

	for _, tt := range tests {
		got, kind := ResolveDigraph(tt.pending, tt.incoming)
		assert.Equal(t, tt.want, got, "%s+%s", tt.pending, tt.incoming)
		assert.Equal(t, tt.kind, kind, "%s+%s", tt.pending, tt.incoming)
	}
}

func TestSetActionDigraphs(t *testing.T) {
	t.Run("action digraph replaces the action", func(t *testing.T) {
		var p Pending
		p.SetAction(ActionDelete)
		p.SetAction(ActionDelete)

		assert.Equal(t, ActionDeleteLine, p.Action())
		assert.Empty(t, p.Motion())
		assert.False(t, p.Cancelled())
	})

	t.Run("motion digraph moves to the motion slot", func(t *testing.T) {
		var p Pending
		p.SetAction(ActionGPrefix)
		p.SetAction(MotionGotoFirstLine)

		assert.Empty(t, p.Action())
		assert.Equal(t, MotionGotoFirstLine, p.Motion())
	})

	t.Run("undeclared pair cancels", func(t *testing.T) {
		var p Pending
		p.SetAction(ActionDelete)
		p.SetAction(ActionPasteAfter)

		assert.True(t, p.Cancelled())
		assert.Equal(t, ActionDelete, p.Action())
	})

	t.Run("empty name clears", func(t *testing.T) {
		var p Pending
		p.SetAction(ActionDelete)
		p.SetAction("")

		assert.Empty(t, p.Action())
		assert.False(t, p.Cancelled())
	})
}

func TestDigraphsResolveAfterDigits(t *testing.T) {
	pairs := Digraphs()
	require.NotEmpty(t, pairs)

	rapid.Check(t, func(t *rapid.T) {
		pair := rapid.SampledFrom(pairs).Draw(t, "pair")
		before := rapid.StringMatching(`[1-9][0-9]{0,2}`).Draw(t, "before")

		var p Pending
		for _, r := range before {
			p.PushActionDigit(r)
		}
		p.SetAction(pair[0])
		p.SetAction(pair[1])

		want, kind := ResolveDigraph(pair[0], pair[1])
		switch kind {
		case DigraphAction:
			if p.Action() != want || p.Motion() != "" {
				t.Fatalf("got action=%q motion=%q, want action %q", p.Action(), p.Motion(), want)
			}
		case DigraphMotion:
			if p.Motion() != want || p.Action() != "" {
				t.Fatalf("got action=%q motion=%q, want motion %q", p.Action(), p.Motion(), want)
			}
		default:
			t.Fatalf("declared pair %v did not resolve", pair)
		}
		if p.Cancelled() {
			t.Fatal("declared pair cancelled the chord")
		}
	})
}

func TestCountIsProductOfDigitBuffers(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		action := rapid.StringMatching(`([1-9][0-9]{0,3})?`).Draw(t, "action")
		motion := rapid.StringMatching(`([1-9][0-9]{0,3})?`).Draw(t, "motion")

		var p Pending
		for _, r := range action {
			p.PushActionDigit(r)
		}
		for _, r := range motion {
			p.PushMotionDigit(r)
		}

		want := parseOrOne(t, action) * parseOrOne(t, motion)
		if got := p.Count(); got != want {
			t.Fatalf("Count() = %d, want %d", got, want)
		}

		got, ok := p.UserProvidedCount()
		if ok != (action != "" || motion != "") {
			t.Fatalf("UserProvidedCount ok = %v for %q/%q", ok, action, motion)
		}
		if ok && got != want {
			t.Fatalf("UserProvidedCount() = %d, want %d", got, want)
		}
	})
}

func parseOrOne(t *rapid.T, s string) int {
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestCountSaturates(t *testing.T) {
	var p Pending
	for range 40 {
		p.PushMotionDigit('9')
	}
	p.PushActionDigit('9')

	assert.Equal(t, maxCount, p.Count())
	assert.Equal(t, maxCount, CombineCounts(maxCount, 2))
	assert.Equal(t, 1, CombineCounts(0, -3))
}

func TestPushDigitRejectsNonDigits(t *testing.T) {
	var p Pending
	assert.False(t, p.PushMotionDigit('x'))
	assert.False(t, p.PushActionDigit('-'))
	assert.False(t, p.HasDigits())
}

func TestImplicitPromptClears(t *testing.T) {
	var p Pending

	p.ExpectRegister()
	p.SetRegister('a')
	assert.False(t, p.ExpectingRegister())
	r, ok := p.Register()
	assert.True(t, ok)
	assert.Equal(t, 'a', r)

	p.ExpectUserInput()
	p.SetUserInput("x")
	assert.False(t, p.ExpectingUserInput())

	p.ExpectUserInput()
	p.SetLastBufferSearch("foo")
	assert.False(t, p.ExpectingUserInput())

	p.ExpectUserInput()
	p.SetLastCharacterSearch('z')
	assert.False(t, p.ExpectingUserInput())
}

func TestClear(t *testing.T) {
	var p Pending
	p.PushActionDigit('2')
	p.SetAction(ActionDelete)
	p.PushMotionDigit('3')
	p.SetMotion(MotionWordForward)
	p.SetRegister('a')
	p.SetUserInput("x")
	p.SetLastBufferSearch("needle")
	p.SetNextMode(mode.Insert)
	p.SetNextModeCommand("vi_noop")
	p.Cancel()

	p.ClearCommand()
	assert.True(t, p.HasDigits(), "digits survive ClearCommand")
	assert.Equal(t, "needle", p.LastBufferSearch(), "searches are sticky")
	assert.False(t, p.Cancelled())

	p.ClearDigits()
	assert.True(t, p.IsIdle())
	assert.Equal(t, mode.Insert, p.NextMode())

	p.ClearDeferred()
	assert.Equal(t, mode.Normal, p.NextMode())
	assert.Empty(t, p.NextModeCommand())
}

func TestZeroPendingDefersToNormal(t *testing.T) {
	var p Pending
	assert.Equal(t, mode.Normal, p.NextMode())
	assert.True(t, p.IsIdle())
}

func TestRegisterStore(t *testing.T) {
	s := NewRegisterStore()

	s.Yank(0, Register{Content: "word"})
	got, ok := s.Get(0)
	require.True(t, ok)
	assert.Equal(t, "word", got.Content)
	got, _ = s.Get(RegisterYank)
	assert.Equal(t, "word", got.Content)

	s.Yank('a', Register{Content: "one"})
	s.Yank('A', Register{Content: " two"})
	got, _ = s.Get('a')
	assert.Equal(t, "one two", got.Content)

	s.Delete(0, Register{Content: "line\n", Linewise: true})
	s.Delete(0, Register{Content: "next\n", Linewise: true})
	got, _ = s.Get('2')
	assert.Equal(t, "line\n", got.Content, "numbered registers shift")
	got, _ = s.Get('1')
	assert.Equal(t, "next\n", got.Content)

	s.Delete(0, Register{Content: "x"})
	got, _ = s.Get(RegisterSmallDelete)
	assert.Equal(t, "x", got.Content)

	s.Delete(RegisterBlackHole, Register{Content: "gone"})
	got, _ = s.Get(RegisterUnnamed)
	assert.Equal(t, "x", got.Content)

	assert.ErrorIs(t, s.Set('.', Register{}), ErrReadOnlyRegister)
	assert.ErrorIs(t, s.Set('!', Register{}), ErrInvalidRegister)
}

func TestMarkStore(t *testing.T) {
	s := NewMarkStore()

	require.NoError(t, s.Set("one", 'a', 4))
	require.NoError(t, s.Set("one", 'B', 9))
	assert.ErrorIs(t, s.Set("one", '1', 0), ErrInvalidMark)

	m, ok := s.Get("one", 'a')
	require.True(t, ok)
	assert.Equal(t, 4, m.Offset)

	_, ok = s.Get("two", 'a')
	assert.False(t, ok, "lowercase marks are per surface")

	m, ok = s.Get("two", 'B')
	require.True(t, ok)
	assert.Equal(t, Mark{Surface: "one", Offset: 9}, m)

	s.Forget("one")
	_, ok = s.Get("one", 'a')
	assert.False(t, ok)
}
