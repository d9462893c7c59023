package syntax

// Direction tells which side of the current position a lookaround inspects.
type Direction uint8

const (
	Ahead Direction = iota
	Behind
)

// Range is an inclusive rune range inside a character set.
type Range struct {
	Lo, Hi rune
}

// CharSet is the payload of a KindCharSet node.
type CharSet struct {
	Negated bool
	Ranges  []Range
	// Classes holds class escapes kept verbatim, such as `\d` or `\p{L}`.
	Classes []string
	// Subtract is the .NET class subtraction operand of `[a-z-[aeiou]]`.
	Subtract *Node
}

// Node is one construct of a parsed pattern. Pos and End delimit its source
// text as byte offsets.
type Node struct {
	Kind Kind
	Pos  int
	End  int

	// KindLiteral, KindNotLiteral.
	Rune rune

	// KindCharSet.
	Set *CharSet

	// KindRepeat. Max is -1 when unbounded.
	Min, Max int
	Lazy     bool

	// KindSubpattern (Group 0 means non-capturing), KindGroupRef and
	// KindConditional (the referenced group, if any).
	Group int
	Name  string
	// Balance names the group popped by a .NET balancing group (?<a-b>...).
	Balance string

	// KindSubpattern and KindInlineFlags.
	AddFlags Flags
	DelFlags Flags

	// KindAssert.
	Dir    Direction
	Negate bool

	// KindAnchor.
	Anchor AnchorKind

	// Cond is the expression condition of a KindConditional node; nil when
	// the condition is a group reference.
	Cond *Node

	Sub []*Node
}

// HasLocalFlags reports whether a group toggles options for its own body.
func (n *Node) HasLocalFlags() bool {
	return n.AddFlags != 0 || n.DelFlags != 0
}

// Tree is the result of Parse.
type Tree struct {
	Root *Node
	// Flags were switched on by inline flag groups at the very start of the
	// pattern, such as `(?im)abc`. They apply to the whole pattern.
	Flags Flags
	// FlagsEnd is the byte offset just past the leading flag groups.
	FlagsEnd int
	// Captures counts capturing groups.
	Captures int
}

// Walk visits n and its descendants depth first. Children are skipped when
// fn returns false.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	if n.Cond != nil {
		Walk(n.Cond, fn)
	}
	if n.Set != nil && n.Set.Subtract != nil {
		Walk(n.Set.Subtract, fn)
	}
	for _, sub := range n.Sub {
		Walk(sub, fn)
	}
}
