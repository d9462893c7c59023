// Package syntax parses patterns of the host regular expression dialect (the
// .NET flavour implemented by regexp2) into a walkable tree.
//
// regexp2 keeps its own parse tree private, so callers are expected to run
// regexp2's parser first for authoritative diagnostics and use Parse for the
// structure. Parse is strict enough to reject the common malformed inputs on
// its own.
package syntax

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type parser struct {
	src   string
	pos   int
	flags Flags
	ncap  int
}

// Parse parses pattern under the given options.
func Parse(pattern string, flags Flags) (*Tree, error) {
	p := &parser{src: pattern, flags: flags}
	t := &Tree{}

	if err := p.leadingFlags(t); err != nil {
		return nil, err
	}

	root, err := p.parseAlternation(0)
	if err != nil {
		return nil, err
	}

	t.Root = root
	t.Captures = p.ncap
	return t, nil
}

// leadingFlags consumes `(?flags)` groups at the start of the pattern. They
// set options for the whole pattern rather than for a scope.
func (p *parser) leadingFlags(t *Tree) error {
	for strings.HasPrefix(p.src[p.pos:], "(?") {
		end := p.pos + 2
		for end < len(p.src) && isFlagChar(p.src[end]) {
			end++
		}
		if end == p.pos+2 || end >= len(p.src) || p.src[end] != ')' {
			return nil
		}

		add, del, err := p.flagLetters(p.pos+2, end)
		if err != nil {
			return err
		}

		t.Flags = (t.Flags | add) &^ del
		p.flags = (p.flags | add) &^ del
		p.pos = end + 1
		t.FlagsEnd = p.pos
	}

	return nil
}

func (p *parser) more() bool { return p.pos < len(p.src) }

func (p *parser) peek() byte { return p.src[p.pos] }

func (p *parser) peekAt(i int) byte {
	if i < len(p.src) {
		return p.src[i]
	}

	return 0
}

func (p *parser) next() rune {
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
	return r
}

func (p *parser) errorf(code ErrorCode, pos int) error {
	return &Error{Code: code, Pos: pos, Pattern: p.src}
}

// skipVerbose skips free-spacing whitespace and `#` comments.
func (p *parser) skipVerbose() {
	if p.flags&Verbose == 0 {
		return
	}

	for p.more() {
		switch c := p.peek(); {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			p.pos++
		case c == '#':
			if i := strings.IndexByte(p.src[p.pos:], '\n'); i >= 0 {
				p.pos += i + 1
			} else {
				p.pos = len(p.src)
			}
		default:
			return
		}
	}
}

func (p *parser) parseAlternation(depth int) (*Node, error) {
	start := p.pos

	var branches []*Node
	for {
		seq, err := p.parseConcat(depth)
		if err != nil {
			return nil, err
		}

		branches = append(branches, seq)
		if p.more() && p.peek() == '|' {
			p.pos++
			continue
		}
		break
	}

	if len(branches) == 1 {
		return branches[0], nil
	}

	return &Node{Kind: KindBranch, Pos: start, End: p.pos, Sub: branches}, nil
}

func (p *parser) parseConcat(depth int) (*Node, error) {
	start := p.pos

	var items []*Node
	for {
		p.skipVerbose()
		if !p.more() {
			break
		}

		c := p.peek()
		if c == '|' {
			break
		}
		if c == ')' {
			if depth > 0 {
				break
			}
			return nil, p.errorf(ErrUnexpectedParen, p.pos)
		}

		atom, err := p.parseAtom(depth)
		if err != nil {
			return nil, err
		}
		if atom == nil {
			continue
		}

		atom, err = p.parseQuantifiers(atom)
		if err != nil {
			return nil, err
		}
		items = append(items, atom)
	}

	switch len(items) {
	case 0:
		return &Node{Kind: KindEmpty, Pos: start, End: start}, nil
	case 1:
		return items[0], nil
	default:
		return &Node{Kind: KindConcat, Pos: start, End: p.pos, Sub: items}, nil
	}
}

func (p *parser) parseQuantifiers(atom *Node) (*Node, error) {
	for {
		p.skipVerbose()
		if !p.more() {
			return atom, nil
		}

		qpos := p.pos
		min, max, ok, err := p.quantifier()
		if err != nil {
			return nil, err
		}
		if !ok {
			return atom, nil
		}
		if atom.Kind == KindRepeat && atom.End == qpos {
			return nil, p.errorf(ErrNestedRepeat, qpos)
		}

		lazy := false
		if p.more() && p.peek() == '?' {
			lazy = true
			p.pos++
		}

		atom = &Node{
			Kind: KindRepeat,
			Pos:  atom.Pos,
			End:  p.pos,
			Min:  min,
			Max:  max,
			Lazy: lazy,
			Sub:  []*Node{atom},
		}
	}
}

// quantifier consumes a quantifier at the current position, if any.
func (p *parser) quantifier() (min, max int, ok bool, err error) {
	switch p.peek() {
	case '*':
		p.pos++
		return 0, -1, true, nil
	case '+':
		p.pos++
		return 1, -1, true, nil
	case '?':
		p.pos++
		return 0, 1, true, nil
	case '{':
		end, min, max, ok := scanBraces(p.src, p.pos)
		if !ok {
			return 0, 0, false, nil
		}
		if max >= 0 && max < min {
			return 0, 0, false, p.errorf(ErrInvalidRepeat, p.pos)
		}
		p.pos = end
		return min, max, true, nil
	}

	return 0, 0, false, nil
}

// scanBraces recognizes `{n}`, `{n,}` and `{n,m}` at src[i]. Anything else is
// a literal brace in this dialect.
func scanBraces(src string, i int) (end, min, max int, ok bool) {
	j := i + 1
	k := j
	for k < len(src) && isDigit(src[k]) {
		k++
	}
	if k == j || k >= len(src) {
		return 0, 0, 0, false
	}

	min, err := strconv.Atoi(src[j:k])
	if err != nil {
		return 0, 0, 0, false
	}

	switch src[k] {
	case '}':
		return k + 1, min, min, true
	case ',':
		k++
		if k < len(src) && src[k] == '}' {
			return k + 1, min, -1, true
		}

		m := k
		for m < len(src) && isDigit(src[m]) {
			m++
		}
		if m == k || m >= len(src) || src[m] != '}' {
			return 0, 0, 0, false
		}

		max, err := strconv.Atoi(src[k:m])
		if err != nil {
			return 0, 0, 0, false
		}
		return m + 1, min, max, true
	}

	return 0, 0, 0, false
}

func (p *parser) parseAtom(depth int) (*Node, error) {
	start := p.pos

	switch p.peek() {
	case '(':
		return p.parseGroup(depth)
	case '[':
		return p.parseClass()
	case '.':
		p.pos++
		return &Node{Kind: KindAny, Pos: start, End: p.pos}, nil
	case '^':
		p.pos++
		return &Node{Kind: KindAnchor, Pos: start, End: p.pos, Anchor: BeginLine}, nil
	case '$':
		p.pos++
		return &Node{Kind: KindAnchor, Pos: start, End: p.pos, Anchor: EndLine}, nil
	case '\\':
		return p.parseEscape()
	case '*', '+', '?':
		return nil, p.errorf(ErrMissingRepeat, start)
	case '{':
		if _, _, _, ok := scanBraces(p.src, p.pos); ok {
			return nil, p.errorf(ErrMissingRepeat, start)
		}
	}

	r := p.next()
	return &Node{Kind: KindLiteral, Pos: start, End: p.pos, Rune: r}, nil
}

func (p *parser) parseGroup(depth int) (*Node, error) {
	start := p.pos
	p.pos++

	if !p.more() || p.peek() != '?' {
		n := &Node{Kind: KindSubpattern, Pos: start}
		if p.flags&ExplicitCapture == 0 {
			p.ncap++
			n.Group = p.ncap
		}
		return p.parseGroupBody(n, depth, 0, 0)
	}

	p.pos++
	rest := p.src[p.pos:]
	switch {
	case strings.HasPrefix(rest, ":"):
		p.pos++
		return p.parseGroupBody(&Node{Kind: KindSubpattern, Pos: start}, depth, 0, 0)
	case strings.HasPrefix(rest, "="), strings.HasPrefix(rest, "!"):
		n := &Node{Kind: KindAssert, Pos: start, Dir: Ahead, Negate: rest[0] == '!'}
		p.pos++
		return p.parseGroupBody(n, depth, 0, 0)
	case strings.HasPrefix(rest, "<="), strings.HasPrefix(rest, "<!"):
		n := &Node{Kind: KindAssert, Pos: start, Dir: Behind, Negate: rest[1] == '!'}
		p.pos += 2
		return p.parseGroupBody(n, depth, 0, 0)
	case strings.HasPrefix(rest, ">"):
		p.pos++
		return p.parseGroupBody(&Node{Kind: KindAtomicGroup, Pos: start}, depth, 0, 0)
	case strings.HasPrefix(rest, "#"):
		i := strings.IndexByte(rest, ')')
		if i < 0 {
			return nil, p.errorf(ErrUnterminatedComment, start)
		}
		p.pos += i + 1
		return nil, nil
	case strings.HasPrefix(rest, "("):
		return p.parseConditional(start, depth)
	case strings.HasPrefix(rest, "<"), strings.HasPrefix(rest, "'"):
		return p.parseNamedGroup(start, depth)
	}

	end := p.pos
	for end < len(p.src) && isFlagChar(p.src[end]) {
		end++
	}
	if end == p.pos || end >= len(p.src) || (p.src[end] != ')' && p.src[end] != ':') {
		return nil, p.errorf(ErrUnknownGroup, start)
	}

	add, del, err := p.flagLetters(p.pos, end)
	if err != nil {
		return nil, err
	}

	if p.src[end] == ')' {
		p.pos = end + 1
		p.flags = (p.flags | add) &^ del
		return &Node{Kind: KindInlineFlags, Pos: start, End: p.pos, AddFlags: add, DelFlags: del}, nil
	}

	p.pos = end + 1
	n := &Node{Kind: KindSubpattern, Pos: start, AddFlags: add, DelFlags: del}
	return p.parseGroupBody(n, depth, add, del)
}

// parseGroupBody parses the contents of a group up to and including its
// closing parenthesis. Option changes made inside the group end with it.
func (p *parser) parseGroupBody(n *Node, depth int, add, del Flags) (*Node, error) {
	saved := p.flags
	p.flags = (p.flags | add) &^ del

	body, err := p.parseAlternation(depth + 1)
	if err != nil {
		return nil, err
	}

	p.flags = saved
	if !p.more() || p.peek() != ')' {
		return nil, p.errorf(ErrMissingParen, n.Pos)
	}

	p.pos++
	n.End = p.pos
	n.Sub = []*Node{body}
	return n, nil
}

func (p *parser) parseNamedGroup(start, depth int) (*Node, error) {
	closer := byte('>')
	if p.peek() == '\'' {
		closer = '\''
	}

	p.pos++
	i := strings.IndexByte(p.src[p.pos:], closer)
	if i < 0 {
		return nil, p.errorf(ErrInvalidGroupName, start)
	}

	name := p.src[p.pos : p.pos+i]
	p.pos += i + 1

	n := &Node{Kind: KindSubpattern, Pos: start}
	if dash := strings.IndexByte(name, '-'); dash >= 0 {
		n.Balance = name[dash+1:]
		name = name[:dash]
		if !isGroupName(n.Balance) {
			return nil, p.errorf(ErrInvalidGroupName, start)
		}
		if name == "" {
			return p.parseGroupBody(n, depth, 0, 0)
		}
	}
	if !isGroupName(name) {
		return nil, p.errorf(ErrInvalidGroupName, start)
	}

	p.ncap++
	if num, err := strconv.Atoi(name); err == nil {
		n.Group = num
	} else {
		n.Group = p.ncap
		n.Name = name
	}

	return p.parseGroupBody(n, depth, 0, 0)
}

// parseConditional parses `(?(ref)yes|no)` and `(?(expr)yes|no)`. The
// position is at the opening parenthesis of the condition.
func (p *parser) parseConditional(start, depth int) (*Node, error) {
	n := &Node{Kind: KindConditional, Pos: start}

	ref := ""
	if i := strings.IndexByte(p.src[p.pos+1:], ')'); i >= 0 {
		ref = p.src[p.pos+1 : p.pos+1+i]
	}

	switch {
	case ref != "" && isGroupName(ref):
		if num, err := strconv.Atoi(ref); err == nil {
			n.Group = num
		} else {
			n.Name = ref
		}
		p.pos += len(ref) + 2
	case strings.HasPrefix(p.src[p.pos:], "(?"):
		cond, err := p.parseGroup(depth + 1)
		if err != nil {
			return nil, err
		}
		n.Cond = cond
	default:
		condStart := p.pos
		p.pos++
		cond := &Node{Kind: KindAssert, Pos: condStart, Dir: Ahead}
		if _, err := p.parseGroupBody(cond, depth, 0, 0); err != nil {
			return nil, err
		}
		n.Cond = cond
	}

	body, err := p.parseAlternation(depth + 1)
	if err != nil {
		return nil, err
	}
	if !p.more() || p.peek() != ')' {
		return nil, p.errorf(ErrMissingParen, start)
	}
	p.pos++
	n.End = p.pos

	if body.Kind == KindBranch {
		if len(body.Sub) > 2 {
			return nil, p.errorf(ErrTooManyAlternates, start)
		}
		n.Sub = body.Sub
	} else {
		n.Sub = []*Node{body}
	}

	return n, nil
}

// flagLetters decodes option letters such as `im-sx` in src[from:to].
func (p *parser) flagLetters(from, to int) (add, del Flags, err error) {
	negate := false
	for i := from; i < to; i++ {
		c := p.src[i]
		if c == '-' {
			if negate {
				return 0, 0, p.errorf(ErrUnknownFlag, i)
			}
			negate = true
			continue
		}

		f, ok := flagForLetter(byte(unicode.ToLower(rune(c))))
		if !ok {
			return 0, 0, p.errorf(ErrUnknownFlag, i)
		}
		if negate {
			del |= f
		} else {
			add |= f
		}
	}

	return add, del, nil
}

func (p *parser) parseEscape() (*Node, error) {
	start := p.pos
	p.pos++
	if !p.more() {
		return nil, p.errorf(ErrTrailingBackslash, start)
	}

	c := p.peek()
	switch c {
	case 'A', 'Z', 'z', 'G', 'b', 'B':
		p.pos++
		return &Node{Kind: KindAnchor, Pos: start, End: p.pos, Anchor: escapeAnchors[c]}, nil
	case 'd', 'D', 'w', 'W', 's', 'S':
		p.pos++
		set := &CharSet{Classes: []string{p.src[start:p.pos]}}
		return &Node{Kind: KindCharSet, Pos: start, End: p.pos, Set: set}, nil
	case 'p', 'P':
		class, err := p.propertyEscape(start)
		if err != nil {
			return nil, err
		}
		set := &CharSet{Classes: []string{class}}
		return &Node{Kind: KindCharSet, Pos: start, End: p.pos, Set: set}, nil
	case 'k':
		return p.namedReference(start)
	}

	if c >= '1' && c <= '9' {
		end := p.pos
		for end < len(p.src) && isDigit(p.src[end]) {
			end++
		}
		num, err := strconv.Atoi(p.src[p.pos:end])
		if err != nil {
			return nil, p.errorf(ErrInvalidEscape, start)
		}
		p.pos = end
		return &Node{Kind: KindGroupRef, Pos: start, End: p.pos, Group: num}, nil
	}

	r, err := p.charEscape(start, false)
	if err != nil {
		return nil, err
	}

	return &Node{Kind: KindLiteral, Pos: start, End: p.pos, Rune: r}, nil
}

var escapeAnchors = map[byte]AnchorKind{
	'A': BeginText,
	'Z': EndTextOptNewline,
	'z': EndText,
	'G': StartOfMatch,
	'b': WordBoundary,
	'B': NonWordBoundary,
}

// namedReference parses `\k<name>` and `\k'name'`.
func (p *parser) namedReference(start int) (*Node, error) {
	p.pos++
	if !p.more() || (p.peek() != '<' && p.peek() != '\'') {
		return nil, p.errorf(ErrInvalidEscape, start)
	}

	closer := byte('>')
	if p.peek() == '\'' {
		closer = '\''
	}
	p.pos++

	i := strings.IndexByte(p.src[p.pos:], closer)
	if i < 0 {
		return nil, p.errorf(ErrInvalidGroupName, start)
	}

	name := p.src[p.pos : p.pos+i]
	if !isGroupName(name) {
		return nil, p.errorf(ErrInvalidGroupName, start)
	}
	p.pos += i + 1

	n := &Node{Kind: KindGroupRef, Pos: start, End: p.pos}
	if num, err := strconv.Atoi(name); err == nil {
		n.Group = num
	} else {
		n.Name = name
	}

	return n, nil
}

// propertyEscape consumes `\p{Name}` or `\P{Name}`; the position is at p/P.
func (p *parser) propertyEscape(start int) (string, error) {
	p.pos++
	if !p.more() || p.peek() != '{' {
		return "", p.errorf(ErrInvalidProperty, start)
	}

	i := strings.IndexByte(p.src[p.pos:], '}')
	if i < 2 {
		return "", p.errorf(ErrInvalidProperty, start)
	}
	p.pos += i + 1

	return p.src[start:p.pos], nil
}

// charEscape decodes a single-character escape. The position is just past
// the backslash.
func (p *parser) charEscape(start int, inClass bool) (rune, error) {
	c := p.next()
	switch c {
	case '0', '1', '2', '3', '4', '5', '6', '7':
		// Outside a class only \0 reaches here; \1-\9 are back-references.
		v := int(c - '0')
		for n := 0; n < 2 && p.more() && p.peek() >= '0' && p.peek() <= '7'; n++ {
			v = v*8 + int(p.peek()-'0')
			p.pos++
		}
		return rune(v), nil
	case 'x':
		return p.hexDigits(start, 2)
	case 'u':
		return p.hexDigits(start, 4)
	case 'c':
		if !p.more() {
			return 0, p.errorf(ErrInvalidEscape, start)
		}
		r := unicode.ToUpper(p.next())
		if r < '@' || r > '_' {
			return 0, p.errorf(ErrInvalidEscape, start)
		}
		return r - '@', nil
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 'f':
		return '\f', nil
	case 'v':
		return '\v', nil
	case 'e':
		return 0x1b, nil
	case 'a':
		return 0x07, nil
	case 'b':
		if inClass {
			return 0x08, nil
		}
	}

	if c < utf8.RuneSelf && (unicode.IsLetter(c) || isDigit(byte(c))) {
		return 0, p.errorf(ErrInvalidEscape, start)
	}

	return c, nil
}

func (p *parser) hexDigits(start, n int) (rune, error) {
	if p.pos+n > len(p.src) {
		return 0, p.errorf(ErrInvalidEscape, start)
	}

	v, err := strconv.ParseUint(p.src[p.pos:p.pos+n], 16, 32)
	if err != nil {
		return 0, p.errorf(ErrInvalidEscape, start)
	}
	p.pos += n

	return rune(v), nil
}

func (p *parser) parseClass() (*Node, error) {
	start := p.pos
	p.pos++

	set := &CharSet{}
	if p.more() && p.peek() == '^' {
		set.Negated = true
		p.pos++
	}

	first := true
	for {
		if !p.more() {
			return nil, p.errorf(ErrUnterminatedSet, start)
		}

		c := p.peek()
		if c == ']' && !first {
			p.pos++
			break
		}
		first = false

		if c == '-' && p.peekAt(p.pos+1) == '[' && (len(set.Ranges) > 0 || len(set.Classes) > 0) {
			p.pos++
			sub, err := p.parseClass()
			if err != nil {
				return nil, err
			}
			set.Subtract = sub
			if !p.more() || p.peek() != ']' {
				return nil, p.errorf(ErrUnterminatedSet, start)
			}
			p.pos++
			break
		}

		atomPos := p.pos
		lo, isChar, err := p.classAtom(set)
		if err != nil {
			return nil, err
		}
		if !isChar {
			continue
		}

		if p.more() && p.peek() == '-' && p.peekAt(p.pos+1) != ']' && p.peekAt(p.pos+1) != '[' && p.pos+1 < len(p.src) {
			p.pos++
			hi, isChar, err := p.classAtom(set)
			if err != nil {
				return nil, err
			}
			if !isChar {
				return nil, p.errorf(ErrClassInRange, atomPos)
			}
			if hi < lo {
				return nil, p.errorf(ErrReversedRange, atomPos)
			}
			set.Ranges = append(set.Ranges, Range{Lo: lo, Hi: hi})
			continue
		}

		set.Ranges = append(set.Ranges, Range{Lo: lo, Hi: lo})
	}

	if set.Negated && set.Subtract == nil && len(set.Classes) == 0 &&
		len(set.Ranges) == 1 && set.Ranges[0].Lo == set.Ranges[0].Hi {
		return &Node{Kind: KindNotLiteral, Pos: start, End: p.pos, Rune: set.Ranges[0].Lo}, nil
	}

	return &Node{Kind: KindCharSet, Pos: start, End: p.pos, Set: set}, nil
}

// classAtom consumes one member of a bracket expression. Class escapes are
// recorded on set and reported with isChar false.
func (p *parser) classAtom(set *CharSet) (r rune, isChar bool, err error) {
	if p.peek() != '\\' {
		return p.next(), true, nil
	}

	start := p.pos
	p.pos++
	if !p.more() {
		return 0, false, p.errorf(ErrTrailingBackslash, start)
	}

	switch p.peek() {
	case 'd', 'D', 'w', 'W', 's', 'S':
		p.pos++
		set.Classes = append(set.Classes, p.src[start:p.pos])
		return 0, false, nil
	case 'p', 'P':
		class, err := p.propertyEscape(start)
		if err != nil {
			return 0, false, err
		}
		set.Classes = append(set.Classes, class)
		return 0, false, nil
	}

	r, err = p.charEscape(start, true)
	if err != nil {
		return 0, false, err
	}

	return r, true, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isFlagChar(c byte) bool {
	switch c {
	case 'i', 'm', 'n', 's', 'x', 'r', 'd', 'e', 'u',
		'I', 'M', 'N', 'S', 'X', 'R', 'D', 'E', 'U', '-':
		return true
	default:
		return false
	}
}

func isGroupName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}
