// Package scan locates tokens in raw pattern text without parsing it.
//
// Both the escape rewriter and the anchor normalizer need the same notion of
// an unescaped token, and so does the inline comment check. It lives here
// once.
package scan

import "strings"

// Escaped reports whether s[i] is escaped, i.e. preceded by an odd number of
// backslashes.
func Escaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}

	return n%2 == 1
}

// Classes marks every byte of s that lies inside a bracket expression,
// brackets included. `]` directly after `[` or `[^` is a member, and `-[`
// opens a nested class subtraction.
func Classes(s string) []bool {
	in := make([]bool, len(s))
	for _, sp := range Spans(s) {
		for i := sp.Start; i < sp.End; i++ {
			in[i] = true
		}
	}

	return in
}

// Span is the byte range of one outermost bracket expression.
type Span struct {
	Start, End int
}

// Spans returns the outermost bracket expressions of s in order. An
// unterminated expression runs to the end of s.
func Spans(s string) []Span {
	var spans []Span
	depth := 0
	first := false
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		if depth == 0 {
			if c == '[' && !Escaped(s, i) {
				depth = 1
				first = true
				start = i
			}
			continue
		}

		switch {
		case c == '\\':
			i++
			first = false
		case c == '^' && first && s[i-1] == '[':
		case c == ']' && !first:
			depth--
			if depth == 0 {
				spans = append(spans, Span{Start: start, End: i + 1})
			}
		case c == '[' && s[i-1] == '-' && !Escaped(s, i-1):
			depth++
			first = true
		default:
			first = false
		}
	}

	if depth > 0 {
		spans = append(spans, Span{Start: start, End: len(s)})
	}

	return spans
}

// Match is an unescaped occurrence of a token.
type Match struct {
	Pos     int
	InClass bool
}

// Each calls fn for every unescaped occurrence of token in s, left to right,
// until fn returns false. Occurrences do not overlap.
func Each(s, token string, fn func(Match) bool) {
	if token == "" {
		return
	}

	var classes []bool
	for i := 0; i+len(token) <= len(s); {
		j := strings.Index(s[i:], token)
		if j < 0 {
			return
		}

		i += j
		if Escaped(s, i) {
			i++
			continue
		}
		if classes == nil {
			classes = Classes(s)
		}
		if !fn(Match{Pos: i, InClass: classes[i]}) {
			return
		}
		i += len(token)
	}
}

// Replace returns a copy of s where every unescaped occurrence of token is
// replaced by what repl returns. Occurrences for which repl reports false are
// kept.
func Replace(s, token string, repl func(Match) (string, bool)) string {
	var b strings.Builder
	last := 0
	changed := false

	Each(s, token, func(m Match) bool {
		out, ok := repl(m)
		if !ok {
			return true
		}

		b.WriteString(s[last:m.Pos])
		b.WriteString(out)
		last = m.Pos + len(token)
		changed = true
		return true
	})

	if !changed {
		return s
	}

	b.WriteString(s[last:])
	return b.String()
}
