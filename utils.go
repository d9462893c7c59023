package jsregex

import (
	"github.com/dlclark/regexp2"

	"go.dw1.io/x/jsregex/internal/syntax"
)

// needsBacktracking reports whether t uses a construct an automaton engine
// cannot run, or one whose group numbering differs between the engines.
// Named groups fall in the second class: regexp2 numbers them after the
// unnamed ones.
func needsBacktracking(t *syntax.Tree) bool {
	found := false
	syntax.Walk(t.Root, func(n *syntax.Node) bool {
		switch n.Kind {
		case syntax.KindAssert, syntax.KindGroupRef:
			found = true
		case syntax.KindSubpattern:
			found = n.Name != ""
		}

		return !found
	})

	return found
}

func groupsToStrings(s string, groups []regexp2.Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		start, end := runeRangeToByte(s, g.Index, g.Length)
		if start < 0 || len(g.Captures) == 0 {
			continue
		}
		out[i] = s[start:end]
	}

	return out
}

func groupsToIndexes(s string, groups []regexp2.Group) []int {
	out := make([]int, 0, len(groups)*2)
	for _, g := range groups {
		if len(g.Captures) == 0 {
			out = append(out, -1, -1)
			continue
		}

		start, end := runeRangeToByte(s, g.Index, g.Length)
		out = append(out, start, end)
	}

	return out
}

// runeRangeToByte converts a regexp2 match position, counted in runes, to
// byte offsets into s.
func runeRangeToByte(s string, startRune, length int) (int, int) {
	if startRune < 0 || length < 0 {
		return -1, -1
	}

	start := runeToByteOffset(s, startRune)
	end := start + runeToByteOffset(s[start:], length)
	return start, end
}

func runeToByteOffset(s string, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}

	count := 0
	for i := range s {
		if count == runeIndex {
			return i
		}
		count++
	}

	return len(s)
}
