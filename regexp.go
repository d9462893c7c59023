package jsregex

import (
	"strconv"

	"github.com/coregx/coregex"
	"github.com/dlclark/regexp2"
)

// Regexp is a compiled JavaScript pattern. It delegates to coregex when the
// translated pattern needs no backtracking and to regexp2 otherwise. Offsets
// are byte offsets into the input on either engine.
//
// A Regexp is safe for concurrent use.
type Regexp struct {
	source string
	flags  Flags
	expr   string
	core   *coregex.Regex
	back   *regexp2.Regexp
}

// String returns the JavaScript source pattern.
func (r *Regexp) String() string {
	return r.source
}

// Flags returns the flags the Regexp was compiled with.
func (r *Regexp) Flags() Flags {
	return r.flags
}

// Expr returns the translated host pattern.
func (r *Regexp) Expr() string {
	return r.expr
}

// Engine names the matcher in use, "coregex" or "regexp2".
func (r *Regexp) Engine() string {
	if r.core != nil {
		return "coregex"
	}

	return "regexp2"
}

// Match reports whether the byte slice b contains any match of the Regexp.
func (r *Regexp) Match(b []byte) bool {
	if r.core != nil {
		return r.core.Match(b)
	}

	matched, err := r.back.MatchString(string(b))
	return err == nil && matched
}

// MatchString reports whether the string s contains any match of the Regexp.
func (r *Regexp) MatchString(s string) bool {
	if r.core != nil {
		return r.core.MatchString(s)
	}

	matched, err := r.back.MatchString(s)
	return err == nil && matched
}

// MatchStart reports whether the Regexp matches a prefix of s. Both engines
// report the leftmost match, so a match at offset zero exists exactly when
// the leftmost one starts there.
func (r *Regexp) MatchStart(s string) bool {
	loc := r.FindStringIndex(s)
	return loc != nil && loc[0] == 0
}

// FindString returns the leftmost match of the Regexp in s.
func (r *Regexp) FindString(s string) string {
	if r.core != nil {
		return r.core.FindString(s)
	}

	m, err := r.back.FindStringMatch(s)
	if err != nil || m == nil {
		return ""
	}

	return m.String()
}

// FindStringIndex returns a two-element slice with the start and end index of
// the leftmost match in s.
func (r *Regexp) FindStringIndex(s string) []int {
	if r.core != nil {
		return r.core.FindStringIndex(s)
	}

	m, err := r.back.FindStringMatch(s)
	if err != nil || m == nil {
		return nil
	}

	start, end := runeRangeToByte(s, m.Index, m.Length)
	return []int{start, end}
}

// FindStringSubmatch returns the leftmost match of the Regexp in s and its
// submatches as strings.
func (r *Regexp) FindStringSubmatch(s string) []string {
	if r.core != nil {
		return r.core.FindStringSubmatch(s)
	}

	m, err := r.back.FindStringMatch(s)
	if err != nil || m == nil {
		return nil
	}

	return groupsToStrings(s, m.Groups())
}

// FindStringSubmatchIndex returns the index pairs identifying the leftmost
// match of the Regexp in s and its submatches. Groups that did not take part
// in the match are -1.
func (r *Regexp) FindStringSubmatchIndex(s string) []int {
	if r.core != nil {
		return r.core.FindStringSubmatchIndex(s)
	}

	m, err := r.back.FindStringMatch(s)
	if err != nil || m == nil {
		return nil
	}

	return groupsToIndexes(s, m.Groups())
}

// FindAllString returns a slice of all successive matches of the Regexp in s.
// A negative n means all matches.
func (r *Regexp) FindAllString(s string, n int) []string {
	if r.core != nil {
		return r.core.FindAllString(s, n)
	}

	var matches []string
	r.each(s, n, func(m *regexp2.Match) {
		matches = append(matches, m.String())
	})

	return matches
}

// FindAllStringIndex returns a slice of all successive match indices of the
// Regexp in s.
func (r *Regexp) FindAllStringIndex(s string, n int) [][]int {
	if r.core != nil {
		return r.core.FindAllStringIndex(s, n)
	}

	var matches [][]int
	r.each(s, n, func(m *regexp2.Match) {
		start, end := runeRangeToByte(s, m.Index, m.Length)
		matches = append(matches, []int{start, end})
	})

	return matches
}

// FindAllStringSubmatch returns a slice of all successive matches of the
// Regexp in s and their submatches.
func (r *Regexp) FindAllStringSubmatch(s string, n int) [][]string {
	if r.core != nil {
		return r.core.FindAllStringSubmatch(s, n)
	}

	var matches [][]string
	r.each(s, n, func(m *regexp2.Match) {
		matches = append(matches, groupsToStrings(s, m.Groups()))
	})

	return matches
}

func (r *Regexp) each(s string, n int, fn func(*regexp2.Match)) {
	count := 0
	m, err := r.back.FindStringMatch(s)
	for err == nil && m != nil {
		if n >= 0 && count >= n {
			return
		}

		fn(m)
		count++
		m, err = r.back.FindNextMatch(m)
	}
}

// ReplaceAllString returns a copy of src, replacing matches of the Regexp with
// repl. Inside repl, $1 and ${name} refer to submatches.
func (r *Regexp) ReplaceAllString(src, repl string) string {
	if r.core != nil {
		return r.core.ReplaceAllString(src, repl)
	}

	replaced, err := r.back.Replace(src, repl, -1, -1)
	if err != nil {
		return src
	}

	return replaced
}

// Split slices s into substrings separated by the Regexp.
func (r *Regexp) Split(s string, n int) []string {
	if r.core != nil {
		return r.core.Split(s, n)
	}

	if n == 0 {
		return nil
	}

	parts := make([]string, 0)
	last := 0
	count := 0

	m, err := r.back.FindStringMatch(s)
	for err == nil && m != nil {
		if n > 0 && count+1 >= n {
			break
		}

		start, end := runeRangeToByte(s, m.Index, m.Length)
		parts = append(parts, s[last:start])
		last = end
		count++

		m, err = r.back.FindNextMatch(m)
	}

	parts = append(parts, s[last:])
	return parts
}

// NumSubexp returns the number of parenthesized subexpressions in this Regexp.
func (r *Regexp) NumSubexp() int {
	if r.core != nil {
		return r.core.NumSubexp()
	}

	return maxGroup(r.back)
}

// SubexpNames returns the names of the parenthesized subexpressions in this
// Regexp. The name for the first sub-expression is names[1]. Unnamed groups
// have an empty name.
func (r *Regexp) SubexpNames() []string {
	if r.core != nil {
		return r.core.SubexpNames()
	}

	n := maxGroup(r.back)
	names := make([]string, n+1)
	for i := 1; i <= n; i++ {
		if name := r.back.GroupNameFromNumber(i); name != strconv.Itoa(i) {
			names[i] = name
		}
	}

	return names
}

func maxGroup(re *regexp2.Regexp) int {
	n := 0
	for _, v := range re.GetGroupNumbers() {
		n = max(n, v)
	}

	return n
}
