// Package feature rejects host constructs that have no JavaScript meaning.
package feature

import (
	"fmt"

	"go.dw1.io/x/jsregex/internal/scan"
	"go.dw1.io/x/jsregex/internal/syntax"
)

// Error describes one unsupported construct.
type Error struct {
	// Construct names the offending feature.
	Construct string
	// Pos is the byte offset of Snippet in the checked pattern, or -1.
	Pos     int
	Snippet string
	// Hint suggests a portable alternative, if there is one.
	Hint string
}

func (e *Error) Error() string {
	msg := e.Construct + " are not supported in JavaScript regular expressions"
	if e.Snippet != "" {
		msg += fmt.Sprintf(" (found `%s` at offset %d)", e.Snippet, e.Pos)
	}
	if e.Hint != "" {
		msg += "; " + e.Hint
	}

	return msg
}

// hostOnlyFlags may not appear in a leading flag group. Only i, m and s have
// a JavaScript flag to stand for.
const hostOnlyFlags = syntax.Verbose | syntax.ExplicitCapture | syntax.RightToLeft |
	syntax.Debug | syntax.ECMAScript | syntax.Unicode

// Check walks every node of t and returns an *Error for the first construct
// JavaScript cannot express. pattern is the text t was parsed from. unicode
// reports whether the pattern is compiled in Unicode mode, where property
// escapes are JavaScript syntax.
func Check(pattern string, t *syntax.Tree, unicode bool) error {
	if bad := t.Flags & hostOnlyFlags; bad != 0 {
		return &Error{
			Construct: fmt.Sprintf("inline flags %q", bad.String()),
			Pos:       0,
			Snippet:   pattern[:t.FlagsEnd],
			Hint:      "pass the flags to Compile instead",
		}
	}

	c := checker{pattern: pattern, unicode: unicode}
	return c.check(t.Root)
}

type checker struct {
	pattern string
	unicode bool
}

func (c checker) unsupported(n *syntax.Node, construct, hint string) error {
	return &Error{
		Construct: construct,
		Pos:       n.Pos,
		Snippet:   c.pattern[n.Pos:n.End],
		Hint:      hint,
	}
}

func (c checker) check(n *syntax.Node) error {
	switch n.Kind {
	case syntax.KindEmpty, syntax.KindAny, syntax.KindGroupRef:
		return nil

	case syntax.KindLiteral, syntax.KindNotLiteral:
		return c.escapes(n)

	case syntax.KindCharSet:
		if n.Set.Subtract != nil {
			return c.unsupported(n, "character class subtractions", "")
		}
		if !c.unicode {
			for _, class := range n.Set.Classes {
				if class[1] == 'p' || class[1] == 'P' {
					return c.unsupported(n, "Unicode property escapes without the Unicode flag",
						"set the Unicode flag or escape the letter")
				}
			}
		}
		return c.escapes(n)

	case syntax.KindAssert, syntax.KindRepeat, syntax.KindConcat, syntax.KindBranch:
		return c.children(n)

	case syntax.KindSubpattern:
		if n.HasLocalFlags() {
			return c.unsupported(n, "local flags", "")
		}
		if n.Balance != "" {
			return c.unsupported(n, "balancing groups", "")
		}
		return c.children(n)

	case syntax.KindAnchor:
		switch n.Anchor {
		case syntax.BeginText:
			return c.unsupported(n, `absolute start anchors (\A)`, "use ^ instead")
		case syntax.EndTextOptNewline, syntax.EndText:
			return c.unsupported(n, fmt.Sprintf("absolute end anchors (%s)", n.Anchor), "use $ instead")
		case syntax.StartOfMatch:
			return c.unsupported(n, `contiguous match anchors (\G)`, "use the sticky flag of the caller instead")
		}
		return nil

	case syntax.KindConditional:
		return c.unsupported(n, "conditional group references", "")

	case syntax.KindAtomicGroup:
		return c.unsupported(n, "atomic groups", "")

	case syntax.KindInlineFlags:
		return c.unsupported(n, "local flags", "set flags for the whole pattern instead")
	}

	panic(fmt.Sprintf("feature: unhandled node kind %s (%d)", n.Kind, n.Kind))
}

// escapes rejects `\e`. The host reads it as ESC, JavaScript as the letter e.
func (c checker) escapes(n *syntax.Node) error {
	text := c.pattern[n.Pos:n.End]

	var err error
	scan.Each(text, `\e`, func(m scan.Match) bool {
		err = &Error{
			Construct: "host escape sequences (\\e)",
			Pos:       n.Pos + m.Pos,
			Snippet:   `\e`,
			Hint:      `use \x1b instead`,
		}
		return false
	})

	return err
}

func (c checker) children(n *syntax.Node) error {
	for _, sub := range n.Sub {
		if err := c.check(sub); err != nil {
			return err
		}
	}

	return nil
}

// CheckText rejects inline comments. The parser discards them, so they never
// reach Check.
func CheckText(pattern string) error {
	var err error
	scan.Each(pattern, "(?#", func(m scan.Match) bool {
		if m.InClass {
			return true
		}

		end := len(pattern)
		for i := m.Pos; i < len(pattern); i++ {
			if pattern[i] == ')' {
				end = i + 1
				break
			}
		}

		err = &Error{Construct: "inline comments", Pos: m.Pos, Snippet: pattern[m.Pos:end]}
		return false
	})

	return err
}
