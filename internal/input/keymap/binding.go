package keymap

import (
	"fmt"
	"strings"

	"github.com/dshills/vicore/internal/input/key"
	"github.com/dshills/vicore/internal/input/mode"
	"github.com/dshills/vicore/internal/input/vim"
)

// Kind says what a binding feeds into the pending chord.
type Kind uint8

const (
	// KindAction sets the pending action.
	KindAction Kind = iota
	// KindMotion sets the pending motion.
	KindMotion
	// KindHost runs a host command directly.
	KindHost
	// KindRegister reads a register name for the next command.
	KindRegister
)

var kindNames = []string{"action", "motion", "host", "register"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind parses a kind name.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: kind %q", ErrInvalidBinding, s)
}

// Input is extra input a binding reads before the chord is evaluated.
type Input uint8

const (
	InputNone Input = iota
	// InputChar reads one character, as for f or r.
	InputChar
	// InputLine reads a line from a prompt, as for /.
	InputLine
	// InputRegister reads a register name, as for CTRL-R in Insert mode.
	InputRegister
)

var inputNames = []string{"", "char", "line", "register"}

func (i Input) String() string {
	if int(i) < len(inputNames) {
		return inputNames[i]
	}
	return fmt.Sprintf("Input(%d)", i)
}

// ParseInput parses an input name. The empty string is InputNone.
func ParseInput(s string) (Input, error) {
	for i, name := range inputNames {
		if strings.EqualFold(s, name) {
			return Input(i), nil
		}
	}
	return 0, fmt.Errorf("%w: input %q", ErrInvalidBinding, s)
}

// Binding maps one key to a name.
type Binding struct {
	Keys     string
	Modes    []mode.Mode
	Kind     Kind
	Command  string
	Pending  vim.Name
	Operator bool
	Input    Input

	event key.Event
}

// Event returns the parsed key.
func (b Binding) Event() key.Event {
	return b.event
}

// Name returns the command as an interpreter name.
func (b Binding) Name() vim.Name {
	return vim.Name(b.Command)
}

// When restricts the binding to a pending action or motion.
func (b Binding) When(pending vim.Name) Binding {
	b.Pending = pending
	return b
}

// OperatorPending restricts the binding to chords with a pending action.
func (b Binding) OperatorPending() Binding {
	b.Operator = true
	return b
}

// Reading sets the extra input the binding needs.
func (b Binding) Reading(in Input) Binding {
	b.Input = in
	return b
}

// In sets the modes the binding applies in.
func (b Binding) In(modes ...mode.Mode) Binding {
	b.Modes = modes
	return b
}

func (b Binding) appliesIn(m mode.Mode) bool {
	for _, bm := range b.Modes {
		if bm == m {
			return true
		}
	}
	return false
}

// score is how specific the binding is for the pending chord, or -1 when
// it does not apply.
func (b Binding) score(action, motion vim.Name) int {
	switch {
	case b.Pending != "":
		if b.Pending == action || b.Pending == motion {
			return 2
		}
		return -1
	case b.Operator:
		if action != "" {
			return 1
		}
		return -1
	}
	return 0
}

// sameSlot reports whether b and o would shadow each other.
func (b Binding) sameSlot(o Binding) bool {
	return b.event == o.event && b.Pending == o.Pending && b.Operator == o.Operator
}

func (b Binding) String() string {
	var cond string
	switch {
	case b.Pending != "":
		cond = " after " + string(b.Pending)
	case b.Operator:
		cond = " operator-pending"
	}
	return fmt.Sprintf("%s -> %s %s%s", b.Keys, b.Kind, b.Command, cond)
}

// Spec is the configuration form of a binding.
type Spec struct {
	Keys     string   `toml:"keys" yaml:"keys" mapstructure:"keys"`
	Modes    []string `toml:"modes" yaml:"modes" mapstructure:"modes"`
	Kind     string   `toml:"kind" yaml:"kind" mapstructure:"kind"`
	Command  string   `toml:"command" yaml:"command" mapstructure:"command"`
	Pending  string   `toml:"pending,omitempty" yaml:"pending,omitempty" mapstructure:"pending"`
	Operator bool     `toml:"operator,omitempty" yaml:"operator,omitempty" mapstructure:"operator"`
	Input    string   `toml:"input,omitempty" yaml:"input,omitempty" mapstructure:"input"`
}

// Binding converts the spec.
func (s Spec) Binding() (Binding, error) {
	kind, err := ParseKind(s.Kind)
	if err != nil {
		return Binding{}, err
	}
	in, err := ParseInput(s.Input)
	if err != nil {
		return Binding{}, err
	}
	if len(s.Modes) == 0 {
		return Binding{}, fmt.Errorf("%w: %q has no modes", ErrInvalidBinding, s.Keys)
	}
	modes := make([]mode.Mode, 0, len(s.Modes))
	for _, name := range s.Modes {
		m, err := mode.Parse(name)
		if err != nil {
			return Binding{}, fmt.Errorf("binding %q: %w", s.Keys, err)
		}
		modes = append(modes, m)
	}
	return Binding{
		Keys:     s.Keys,
		Modes:    modes,
		Kind:     kind,
		Command:  s.Command,
		Pending:  vim.Name(s.Pending),
		Operator: s.Operator,
		Input:    in,
	}, nil
}
