package syntax

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// kinds lists the kinds of t in walk order.
func kinds(t *Tree) []Kind {
	var out []Kind
	Walk(t.Root, func(n *Node) bool {
		out = append(out, n.Kind)
		return true
	})

	return out
}

func mustParse(t *testing.T, pattern string, flags Flags) *Tree {
	t.Helper()

	tree, err := Parse(pattern, flags)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", pattern, err)
	}

	return tree
}

func TestParseKinds(t *testing.T) {
	tests := []struct {
		pattern string
		want    []Kind
	}{
		{"", []Kind{KindEmpty}},
		{"a", []Kind{KindLiteral}},
		{"ab", []Kind{KindConcat, KindLiteral, KindLiteral}},
		{"a|", []Kind{KindBranch, KindLiteral, KindEmpty}},
		{".", []Kind{KindAny}},
		{"[^a]", []Kind{KindNotLiteral}},
		{"[^ab]", []Kind{KindCharSet}},
		{`\d`, []Kind{KindCharSet}},
		{`\p{L}`, []Kind{KindCharSet}},
		{"a*?", []Kind{KindRepeat, KindLiteral}},
		{"(a)\\1", []Kind{KindConcat, KindSubpattern, KindLiteral, KindGroupRef}},
		{"(?<x>a)\\k<x>", []Kind{KindConcat, KindSubpattern, KindLiteral, KindGroupRef}},
		{"(?:a|b)", []Kind{KindSubpattern, KindBranch, KindLiteral, KindLiteral}},
		{"(?=a)", []Kind{KindAssert, KindLiteral}},
		{"(?<!a)", []Kind{KindAssert, KindLiteral}},
		{"(?>a)", []Kind{KindAtomicGroup, KindLiteral}},
		{"^$", []Kind{KindConcat, KindAnchor, KindAnchor}},
		{`\A\z`, []Kind{KindConcat, KindAnchor, KindAnchor}},
		{"a(?i)b", []Kind{KindConcat, KindLiteral, KindInlineFlags, KindLiteral}},
		{"a(?u)b", []Kind{KindConcat, KindLiteral, KindInlineFlags, KindLiteral}},
		{"(?e:a)", []Kind{KindSubpattern, KindLiteral}},
		{"(?!)", []Kind{KindAssert, KindEmpty}},
		{"(?(1)a|b)", []Kind{KindConditional, KindLiteral, KindLiteral}},
		{"(?(?=a)a|b)", []Kind{KindConditional, KindAssert, KindLiteral, KindLiteral, KindLiteral}},
		{"[a-z-[aeiou]]", []Kind{KindCharSet, KindCharSet}},
		{"a(?#note)b", []Kind{KindConcat, KindLiteral, KindLiteral}},
		{"a{,2}", []Kind{KindConcat, KindLiteral, KindLiteral, KindLiteral, KindLiteral, KindLiteral}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := kinds(mustParse(t, tt.pattern, 0))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Parse(%q) kinds mismatch (-want +got):\n%s", tt.pattern, diff)
			}
		})
	}
}

func TestParseRepeat(t *testing.T) {
	tests := []struct {
		pattern  string
		min, max int
		lazy     bool
	}{
		{"a*", 0, -1, false},
		{"a+", 1, -1, false},
		{"a?", 0, 1, false},
		{"a{3}", 3, 3, false},
		{"a{3,}", 3, -1, false},
		{"a{2,5}?", 2, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n := mustParse(t, tt.pattern, 0).Root
			if n.Kind != KindRepeat {
				t.Fatalf("root kind = %s, want %s", n.Kind, KindRepeat)
			}
			if n.Min != tt.min || n.Max != tt.max || n.Lazy != tt.lazy {
				t.Fatalf("repeat = {%d,%d lazy=%v}, want {%d,%d lazy=%v}", n.Min, n.Max, n.Lazy, tt.min, tt.max, tt.lazy)
			}
			if n.Pos != 0 || n.End != len(tt.pattern) {
				t.Fatalf("span = [%d,%d), want [0,%d)", n.Pos, n.End, len(tt.pattern))
			}
		})
	}
}

func TestParseGroups(t *testing.T) {
	tree := mustParse(t, `(a)(?:b)(?<name>c)(?'q'd)`, 0)
	if tree.Captures != 3 {
		t.Fatalf("Captures = %d, want 3", tree.Captures)
	}

	var groups []int
	var names []string
	Walk(tree.Root, func(n *Node) bool {
		if n.Kind == KindSubpattern {
			groups = append(groups, n.Group)
			names = append(names, n.Name)
		}
		return true
	})

	if diff := cmp.Diff([]int{1, 0, 2, 3}, groups); diff != "" {
		t.Fatalf("group numbers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"", "", "name", "q"}, names); diff != "" {
		t.Fatalf("group names mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBalancingGroup(t *testing.T) {
	n := mustParse(t, "(?<close-open>a)", 0).Root
	if n.Kind != KindSubpattern || n.Name != "close" || n.Balance != "open" {
		t.Fatalf("node = %+v, want balancing group close-open", n)
	}
}

func TestParseLeadingFlags(t *testing.T) {
	tests := []struct {
		pattern string
		flags   Flags
		end     int
		root    Kind
	}{
		{"(?i)abc", IgnoreCase, 4, KindConcat},
		{"(?im)a", IgnoreCase | Multiline, 5, KindLiteral},
		{"(?i)(?m)a", IgnoreCase | Multiline, 8, KindLiteral},
		{"(?i-i)a", 0, 6, KindLiteral},
		{"(?x) a # comment", Verbose, 4, KindLiteral},
		{"(?u)a", Unicode, 4, KindLiteral},
		{"(?rd)a", RightToLeft | Debug, 5, KindLiteral},
		{"(?i:a)", 0, 0, KindSubpattern},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			tree := mustParse(t, tt.pattern, 0)
			if tree.Flags != tt.flags {
				t.Fatalf("Flags = %q, want %q", tree.Flags, tt.flags)
			}
			if tree.FlagsEnd != tt.end {
				t.Fatalf("FlagsEnd = %d, want %d", tree.FlagsEnd, tt.end)
			}
			if tree.Root.Kind != tt.root {
				t.Fatalf("root kind = %s, want %s", tree.Root.Kind, tt.root)
			}
		})
	}
}

func TestParseLocalFlags(t *testing.T) {
	n := mustParse(t, "(?i-s:a)", 0).Root
	if !n.HasLocalFlags() {
		t.Fatal("expected local flags on (?i-s:a)")
	}
	if n.AddFlags != IgnoreCase || n.DelFlags != Singleline {
		t.Fatalf("flags = +%q -%q, want +i -s", n.AddFlags, n.DelFlags)
	}

	if mustParse(t, "(?:a)", 0).Root.HasLocalFlags() {
		t.Fatal("unexpected local flags on (?:a)")
	}
}

func TestParseHostFlagLetters(t *testing.T) {
	n := mustParse(t, "a(?eU)b", 0).Root.Sub[1]
	if n.Kind != KindInlineFlags || n.AddFlags != ECMAScript|Unicode {
		t.Fatalf("node = %s +%q, want FLAGS +eu", n.Kind, n.AddFlags)
	}
}

func TestParseExplicitCapture(t *testing.T) {
	tree := mustParse(t, "(a)(?<n>b)", ExplicitCapture)
	if tree.Captures != 1 {
		t.Fatalf("Captures = %d, want 1", tree.Captures)
	}
}

func TestParseEscapes(t *testing.T) {
	tests := []struct {
		pattern string
		want    rune
	}{
		{`\t`, '\t'},
		{`\x41`, 'A'},
		{`\0`, 0},
		{`\012`, '\n'},
		{`\cA`, 1},
		{`\e`, 0x1b},
		{`\.`, '.'},
		{`\\`, '\\'},
		{"é", 'é'},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n := mustParse(t, tt.pattern, 0).Root
			if n.Kind != KindLiteral || n.Rune != tt.want {
				t.Fatalf("node = %s %q, want LITERAL %q", n.Kind, n.Rune, tt.want)
			}
		})
	}
}

func TestParseAnchors(t *testing.T) {
	tree := mustParse(t, `^\b\B\A\Z\z\G$`, 0)

	var got []AnchorKind
	for _, n := range tree.Root.Sub {
		got = append(got, n.Anchor)
	}

	want := []AnchorKind{BeginLine, WordBoundary, NonWordBoundary, BeginText, EndTextOptNewline, EndText, StartOfMatch, EndLine}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("anchors mismatch (-want +got):\n%s", diff)
	}
}

func TestParseClass(t *testing.T) {
	tests := []struct {
		pattern string
		want    CharSet
	}{
		{"[a-c]", CharSet{Ranges: []Range{{'a', 'c'}}}},
		{"[]a]", CharSet{Ranges: []Range{{']', ']'}, {'a', 'a'}}}},
		{"[^x-z0]", CharSet{Negated: true, Ranges: []Range{{'x', 'z'}, {'0', '0'}}}},
		{"[a-]", CharSet{Ranges: []Range{{'a', 'a'}, {'-', '-'}}}},
		{`[\d_]`, CharSet{Ranges: []Range{{'_', '_'}}, Classes: []string{`\d`}}},
		{`[\b]`, CharSet{Ranges: []Range{{8, 8}}}},
		{`[\p{Lu}\s]`, CharSet{Classes: []string{`\p{Lu}`, `\s`}}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n := mustParse(t, tt.pattern, 0).Root
			if n.Kind != KindCharSet {
				t.Fatalf("root kind = %s, want %s", n.Kind, KindCharSet)
			}
			if diff := cmp.Diff(tt.want, *n.Set); diff != "" {
				t.Fatalf("set mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		pattern string
		code    ErrorCode
	}{
		{`a\`, ErrTrailingBackslash},
		{"[a", ErrUnterminatedSet},
		{"[z-a]", ErrReversedRange},
		{`[a-\d]`, ErrClassInRange},
		{"(abc(", ErrMissingParen},
		{"a)", ErrUnexpectedParen},
		{"*a", ErrMissingRepeat},
		{"{2}", ErrMissingRepeat},
		{"a**", ErrNestedRepeat},
		{"a{3,2}", ErrInvalidRepeat},
		{"(?<a)", ErrInvalidGroupName},
		{"(?<1a-)b)", ErrInvalidGroupName},
		{"(?q)", ErrUnknownGroup},
		{"(?#open", ErrUnterminatedComment},
		{"(?(1)a|b|c)", ErrTooManyAlternates},
		{`\q`, ErrInvalidEscape},
		{`\xZZ`, ErrInvalidEscape},
		{`\k`, ErrInvalidEscape},
		{`\p`, ErrInvalidProperty},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Parse(tt.pattern, 0)

			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error = %v, want *Error", tt.pattern, err)
			}
			if perr.Code != tt.code {
				t.Fatalf("Parse(%q) code = %q, want %q", tt.pattern, perr.Code, tt.code)
			}
			if perr.Pattern != tt.pattern {
				t.Fatalf("Parse(%q) error pattern = %q", tt.pattern, perr.Pattern)
			}
		})
	}
}

func TestKindsExhaustive(t *testing.T) {
	for _, k := range Kinds() {
		if k.String() == "" {
			t.Fatalf("kind %d has no name", k)
		}
	}
}
