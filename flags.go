package jsregex

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"go.dw1.io/x/jsregex/internal/syntax"
)

// Flags is a bitset of compile options. The values match
// [regexp2.RegexOptions], so options of either type can be passed to
// [CompileArgs].
type Flags uint32

// Options with a JavaScript equivalent.
const (
	IgnoreCase Flags = 0x0001 // i
	Multiline  Flags = 0x0002 // m
	DotAll     Flags = 0x0010 // s
	Unicode    Flags = 0x0400 // u
)

// Host-only options. Passing any of them fails with [ErrInvalidFlags].
const (
	ExplicitCapture Flags = 0x0004
	Compiled        Flags = 0x0008
	Verbose         Flags = 0x0020
	RightToLeft     Flags = 0x0040
	Debug           Flags = 0x0080
	ECMAScript      Flags = 0x0100
	RE2             Flags = 0x0200
)

const portableFlags = IgnoreCase | Multiline | DotAll | Unicode

var flagLetters = [...]struct {
	letter byte
	flag   Flags
}{
	{'i', IgnoreCase},
	{'m', Multiline},
	{'s', DotAll},
	{'u', Unicode},
}

// ParseFlags converts JavaScript flag letters such as "gim" to Flags. The
// global and indices flags only affect how a caller iterates matches, so they
// are accepted and dropped.
func ParseFlags(letters string) (Flags, error) {
	var f Flags
	seen := make(map[rune]bool, len(letters))

	for _, c := range letters {
		if seen[c] {
			return 0, fmt.Errorf("%w: duplicate flag %q", ErrInvalidFlags, c)
		}
		seen[c] = true

		switch c {
		case 'g', 'd':
		case 'i':
			f |= IgnoreCase
		case 'm':
			f |= Multiline
		case 's':
			f |= DotAll
		case 'u':
			f |= Unicode
		default:
			return 0, fmt.Errorf("%w: unsupported flag %q", ErrInvalidFlags, c)
		}
	}

	return f, nil
}

// String returns the JavaScript flag letters of f in canonical order.
func (f Flags) String() string {
	var b strings.Builder
	for _, fl := range flagLetters {
		if f&fl.flag != 0 {
			b.WriteByte(fl.letter)
		}
	}

	return b.String()
}

// check rejects bits without a cross-dialect meaning.
func (f Flags) check() error {
	if extra := f &^ portableFlags; extra != 0 {
		return fmt.Errorf("host-only flag bits %#x", uint32(extra))
	}

	return nil
}

// options maps f to regexp2 options. Unicode has no host counterpart since
// the host already matches code points.
func (f Flags) options() regexp2.RegexOptions {
	opts := regexp2.None
	if f&IgnoreCase != 0 {
		opts |= regexp2.IgnoreCase
	}
	if f&Multiline != 0 {
		opts |= regexp2.Multiline
	}
	if f&DotAll != 0 {
		opts |= regexp2.Singleline
	}

	return opts
}

func (f Flags) syntax() syntax.Flags {
	var sf syntax.Flags
	if f&IgnoreCase != 0 {
		sf |= syntax.IgnoreCase
	}
	if f&Multiline != 0 {
		sf |= syntax.Multiline
	}
	if f&DotAll != 0 {
		sf |= syntax.Singleline
	}

	return sf
}

// inline renders f as a leading option group for RE2-style engines.
func (f Flags) inline() string {
	var b strings.Builder
	if f&IgnoreCase != 0 {
		b.WriteByte('i')
	}
	if f&Multiline != 0 {
		b.WriteByte('m')
	}
	if f&DotAll != 0 {
		b.WriteByte('s')
	}
	if b.Len() == 0 {
		return ""
	}

	return "(?" + b.String() + ")"
}
