// Package rewrite holds the text passes that turn JavaScript pattern syntax
// into the host dialect: escape rewriting before parsing and anchor
// normalization after validation.
package rewrite

import (
	"strings"

	"go.dw1.io/x/jsregex/internal/scan"
)

// rule replaces one escape. inClass is what the escape becomes inside a
// bracket expression; an empty inClass leaves it to negatedClasses.
type rule struct {
	esc     string
	repl    string
	inClass string
}

// rules run in order, one full pass each. The word class deliberately omits
// digits and underscore.
var rules = []rule{
	{`\a`, "\a", "\a"},
	{`\d`, "[0-9]", "0-9"},
	{`\D`, "[^0-9]", ""},
	{`\w`, "[A-Za-z]", "A-Za-z"},
	{`\W`, "[^A-Za-z]", ""},
	{`\s`, "[ \t\n\r\v\f]", " \t\n\r\v\f"},
	{`\S`, "[^ \t\n\r\v\f]", ""},
}

// negated holds the member lists of the negated shorthands, for use inside
// bracket expressions.
var negated = map[byte]string{
	'D': "0-9",
	'W': "A-Za-z",
	'S': " \t\n\r\v\f",
}

const (
	// never replaces `[]`, which matches nothing in JavaScript.
	never = "(?:(?!))"
	// anyChar replaces `[^]`, which matches any character in JavaScript.
	anyChar = `(?:[^\n]|\n)`
)

// Escapes rewrites JavaScript-only escapes and the ASCII class shorthands
// into explicit host syntax.
func Escapes(pattern string) string {
	pattern = emptyClasses(pattern)
	pattern = classDashes(pattern)
	for _, r := range rules {
		pattern = apply(pattern, r)
	}
	pattern = negatedClasses(pattern)

	return controls(pattern)
}

// emptyClasses replaces `[]` and `[^]`. The host reads a `]` right after
// the opening bracket as a member instead.
func emptyClasses(pattern string) string {
	var b strings.Builder
	last := 0
	inClass := false

	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; {
		case c == '\\':
			i++
		case inClass:
			inClass = c != ']'
		case c == '[':
			var repl string
			var skip int
			switch rest := pattern[i+1:]; {
			case strings.HasPrefix(rest, "]"):
				repl, skip = never, 1
			case strings.HasPrefix(rest, "^]"):
				repl, skip = anyChar, 2
			default:
				inClass = true
				continue
			}

			b.WriteString(pattern[last:i])
			b.WriteString(repl)
			i += skip
			last = i + 1
		}
	}

	if last == 0 {
		return pattern
	}

	b.WriteString(pattern[last:])
	return b.String()
}

// classDashes escapes a dash that comes right before a class escape inside a
// bracket expression. JavaScript reads it as a literal; the host would try
// to build a range.
func classDashes(pattern string) string {
	return scan.Replace(pattern, "-", func(m scan.Match) (string, bool) {
		next := pattern[m.Pos+1:]
		isClass := len(next) >= 2 && next[0] == '\\' && strings.IndexByte("dDwWsS", next[1]) >= 0
		return `\-`, m.InClass && isClass
	})
}

// negatedClasses rewrites bracket expressions that still hold a negated
// shorthand, so that they follow the pinned ASCII sets rather than the
// host's own.
func negatedClasses(pattern string) string {
	var b strings.Builder
	last := 0
	changed := false

	for _, sp := range scan.Spans(pattern) {
		out, ok := splitClass(pattern[sp.Start:sp.End])
		if !ok {
			continue
		}

		b.WriteString(pattern[last:sp.Start])
		b.WriteString(out)
		last = sp.End
		changed = true
	}

	if !changed {
		return pattern
	}

	b.WriteString(pattern[last:])
	return b.String()
}

// splitClass takes the negated shorthands out of one bracket expression. A
// positive expression becomes an alternation of its remaining members and
// the complemented sets. A negated one becomes the intersection of the sets
// minus the remaining members.
func splitClass(class string) (string, bool) {
	if len(class) < 2 || class[len(class)-1] != ']' {
		return "", false
	}

	body := class[1 : len(class)-1]
	neg := strings.HasPrefix(body, "^")
	if neg {
		body = body[1:]
	}

	var rest strings.Builder
	var sets []string
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '-' && i+1 < len(body) && body[i+1] == '[':
			// class subtraction; the validator rejects it
			return "", false
		case c != '\\' || i+1 == len(body):
			rest.WriteByte(c)
		case negated[body[i+1]] != "":
			sets = append(sets, negated[body[i+1]])
			i++
			if i+1 < len(body) && body[i+1] == '-' {
				rest.WriteString(`\-`)
				i++
			}
		default:
			rest.WriteString(body[i : i+2])
			i++
		}
	}

	if len(sets) == 0 {
		return "", false
	}

	members := rest.String()
	if strings.HasPrefix(members, "^") {
		members = `\` + members
	}

	if !neg {
		parts := make([]string, 0, len(sets)+1)
		if members != "" {
			parts = append(parts, "["+members+"]")
		}
		for _, set := range sets {
			parts = append(parts, "[^"+set+"]")
		}
		if len(parts) == 1 {
			return parts[0], true
		}

		return "(?:" + strings.Join(parts, "|") + ")", true
	}

	if members == "" && len(sets) == 1 {
		return "[" + sets[0] + "]", true
	}

	var b strings.Builder
	b.WriteString("(?:")
	if members != "" {
		b.WriteString("(?![" + members + "])")
	}
	for _, set := range sets[1:] {
		b.WriteString("(?=[" + set + "])")
	}
	b.WriteString("[" + sets[0] + "])")

	return b.String(), true
}

func apply(pattern string, r rule) string {
	return scan.Replace(pattern, r.esc, func(m scan.Match) (string, bool) {
		if !m.InClass {
			return r.repl, true
		}
		if r.inClass == "" {
			return "", false
		}

		// keep a following dash literal; the expansion must not start a range
		if end := m.Pos + len(r.esc); end < len(pattern) && pattern[end] == '-' &&
			end+1 < len(pattern) && pattern[end+1] != ']' {
			return r.inClass + `\`, true
		}

		return r.inClass, true
	})
}

// controls replaces `\cA`-`\cZ` (either case) with the control character
// whose ordinal is the uppercase letter minus 64.
func controls(pattern string) string {
	var b strings.Builder
	last := 0

	scan.Each(pattern, `\c`, func(m scan.Match) bool {
		i := m.Pos + 2
		if i >= len(pattern) || !isASCIILetter(pattern[i]) {
			return true
		}

		b.WriteString(pattern[last:m.Pos])
		b.WriteByte(upper(pattern[i]) - 64)
		last = i + 1
		return true
	})

	if last == 0 {
		return pattern
	}

	b.WriteString(pattern[last:])
	return b.String()
}

// Anchors replaces every unescaped `$` outside a bracket expression with
// `\z`, the host's end of input without the trailing newline allowance.
func Anchors(pattern string) string {
	return scan.Replace(pattern, "$", func(m scan.Match) (string, bool) {
		return `\z`, !m.InClass
	})
}

const (
	wordBoundary    = `(?-i:(?<=[0-9A-Za-z_])(?![0-9A-Za-z_])|(?<![0-9A-Za-z_])(?=[0-9A-Za-z_]))`
	nonWordBoundary = `(?-i:(?<=[0-9A-Za-z_])(?=[0-9A-Za-z_])|(?<![0-9A-Za-z_])(?![0-9A-Za-z_]))`
)

// Boundaries spells out `\b` and `\B` with the ASCII word characters
// JavaScript uses. The backtracking engine would otherwise count every
// Unicode letter and digit as a word character.
func Boundaries(pattern string) string {
	pattern = scan.Replace(pattern, `\b`, func(m scan.Match) (string, bool) {
		return wordBoundary, !m.InClass
	})

	return scan.Replace(pattern, `\B`, func(m scan.Match) (string, bool) {
		return nonWordBoundary, !m.InClass
	})
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}

	return c
}
