package vim

// DigraphKind tells how a resolved digraph is stored.
type DigraphKind uint8

const (
	// DigraphNone means the pair is not a digraph.
	DigraphNone DigraphKind = iota

	// DigraphAction means the resolved name replaces the pending action.
	DigraphAction

	// DigraphMotion means the resolved name is a motion even though it was
	// typed through the action slot, as with gg.
	DigraphMotion
)

// String returns a human-readable kind name.
func (k DigraphKind) String() string {
	switch k {
	case DigraphAction:
		return "action"
	case DigraphMotion:
		return "motion"
	default:
		return "none"
	}
}

type digraphKey struct {
	pending  Name
	incoming Name
}

type digraphTarget struct {
	name Name
	kind DigraphKind
}

var digraphs = map[digraphKey]digraphTarget{
	{ActionDelete, ActionDelete}:       {ActionDeleteLine, DigraphAction},
	{ActionChange, ActionChange}:       {ActionChangeLine, DigraphAction},
	{ActionYank, ActionYank}:           {ActionYankLine, DigraphAction},
	{ActionIndent, ActionIndent}:       {ActionIndentLine, DigraphAction},
	{ActionUnindent, ActionUnindent}:   {ActionUnindentLine, DigraphAction},
	{ActionGPrefix, ActionUppercase}:   {ActionUppercase, DigraphAction},
	{ActionGPrefix, ActionLowercase}:   {ActionLowercase, DigraphAction},
	{ActionUppercase, ActionUppercase}: {ActionUppercaseLine, DigraphAction},
	{ActionLowercase, ActionLowercase}: {ActionLowercaseLine, DigraphAction},
	{ActionGPrefix, MotionGotoFirstLine}: {MotionGotoFirstLine, DigraphMotion},
}

// ResolveDigraph looks up the command formed by typing incoming while
// pending is waiting. Undeclared pairs return ("", DigraphNone).
func ResolveDigraph(pending, incoming Name) (Name, DigraphKind) {
	t, ok := digraphs[digraphKey{pending, incoming}]
	if !ok {
		return "", DigraphNone
	}
	return t.name, t.kind
}

// Digraphs returns every declared (pending, incoming) pair.
func Digraphs() [][2]Name {
	pairs := make([][2]Name, 0, len(digraphs))
	for k := range digraphs {
		pairs = append(pairs, [2]Name{k.pending, k.incoming})
	}
	return pairs
}
