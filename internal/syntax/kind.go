package syntax

// Kind identifies the construct a Node represents. The set is closed: every
// node produced by Parse carries one of these kinds.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindLiteral
	KindNotLiteral
	KindAny
	KindCharSet
	KindGroupRef
	KindRepeat
	KindConcat
	KindBranch
	KindSubpattern
	KindAssert
	KindAnchor
	KindConditional
	KindAtomicGroup
	KindInlineFlags

	numKinds
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "EMPTY"
	case KindLiteral:
		return "LITERAL"
	case KindNotLiteral:
		return "NOT_LITERAL"
	case KindAny:
		return "ANY"
	case KindCharSet:
		return "IN"
	case KindGroupRef:
		return "GROUPREF"
	case KindRepeat:
		return "REPEAT"
	case KindConcat:
		return "CONCAT"
	case KindBranch:
		return "BRANCH"
	case KindSubpattern:
		return "SUBPATTERN"
	case KindAssert:
		return "ASSERT"
	case KindAnchor:
		return "AT"
	case KindConditional:
		return "GROUPREF_EXISTS"
	case KindAtomicGroup:
		return "ATOMIC_GROUP"
	case KindInlineFlags:
		return "FLAGS"
	default:
		return ""
	}
}

// Kinds returns every defined Kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, numKinds)
	for k := KindEmpty; k < numKinds; k++ {
		kinds = append(kinds, k)
	}

	return kinds
}

// AnchorKind is the payload of a KindAnchor node.
type AnchorKind uint8

const (
	BeginLine         AnchorKind = iota // ^
	EndLine                             // $
	WordBoundary                        // \b
	NonWordBoundary                     // \B
	BeginText                           // \A
	EndTextOptNewline                   // \Z
	EndText                             // \z
	StartOfMatch                        // \G
)

func (a AnchorKind) String() string {
	switch a {
	case BeginLine:
		return "^"
	case EndLine:
		return "$"
	case WordBoundary:
		return `\b`
	case NonWordBoundary:
		return `\B`
	case BeginText:
		return `\A`
	case EndTextOptNewline:
		return `\Z`
	case EndText:
		return `\z`
	case StartOfMatch:
		return `\G`
	default:
		return ""
	}
}

// Flags are the inline option letters understood by the host dialect.
type Flags uint16

const (
	IgnoreCase      Flags = 1 << iota // i
	Multiline                         // m
	ExplicitCapture                   // n
	Singleline                        // s
	Verbose                           // x
	RightToLeft                       // r
	Debug                             // d
	ECMAScript                        // e
	Unicode                           // u
)

var flagLetters = [...]struct {
	letter byte
	flag   Flags
}{
	{'i', IgnoreCase},
	{'m', Multiline},
	{'n', ExplicitCapture},
	{'s', Singleline},
	{'x', Verbose},
	{'r', RightToLeft},
	{'d', Debug},
	{'e', ECMAScript},
	{'u', Unicode},
}

func flagForLetter(c byte) (Flags, bool) {
	for _, fl := range flagLetters {
		if fl.letter == c {
			return fl.flag, true
		}
	}

	return 0, false
}

func (f Flags) String() string {
	var b []byte
	for _, fl := range flagLetters {
		if f&fl.flag != 0 {
			b = append(b, fl.letter)
		}
	}

	return string(b)
}
