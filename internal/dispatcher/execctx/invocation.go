package execctx

import "reflect"

// Commands with structure the repeat tracker understands.
const (
	// RunCommand runs a resolved motion and action.
	RunCommand = "vi_run"

	// SequenceCommand is a composite of several commands glued together.
	SequenceCommand = "sequence"
)

// Invocation is one command sent to the buffer layer and recorded in its
// history.
type Invocation struct {
	Command string
	Args    Args

	// Context is set for RunCommand.
	Context *Context

	// Steps is set for SequenceCommand.
	Steps []Invocation
}

// Run wraps a resolved context.
func Run(ctx Context) Invocation {
	return Invocation{Command: RunCommand, Context: &ctx}
}

// Command creates a plain named invocation.
func Command(name string, args Args) Invocation {
	return Invocation{Command: name, Args: args}
}

// Sequence glues steps into a composite invocation.
func Sequence(steps ...Invocation) Invocation {
	return Invocation{Command: SequenceCommand, Steps: steps}
}

// IsZero reports whether the invocation is empty.
func (inv Invocation) IsZero() bool {
	return inv.Command == ""
}

// HasAction reports whether inv is a RunCommand carrying an action.
func (inv Invocation) HasAction() bool {
	return inv.Command == RunCommand && inv.Context != nil && inv.Context.Action != ""
}

// Equal compares command name and arguments deeply.
func (inv Invocation) Equal(other Invocation) bool {
	if inv.Command != other.Command {
		return false
	}
	return reflect.DeepEqual(inv.Args, other.Args) &&
		reflect.DeepEqual(inv.Context, other.Context) &&
		reflect.DeepEqual(inv.Steps, other.Steps)
}
