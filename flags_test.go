package jsregex

import (
	"errors"
	"testing"

	"github.com/dlclark/regexp2"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		letters string
		want    Flags
	}{
		{"", 0},
		{"i", IgnoreCase},
		{"gim", IgnoreCase | Multiline},
		{"s", DotAll},
		{"u", Unicode},
		{"dgimsu", IgnoreCase | Multiline | DotAll | Unicode},
		{"usmi", IgnoreCase | Multiline | DotAll | Unicode},
	}

	for _, tt := range tests {
		t.Run(tt.letters, func(t *testing.T) {
			got, err := ParseFlags(tt.letters)
			if err != nil {
				t.Fatalf("ParseFlags(%q) returned error: %v", tt.letters, err)
			}
			if got != tt.want {
				t.Fatalf("ParseFlags(%q) = %#x, want %#x", tt.letters, got, tt.want)
			}
		})
	}

	for _, letters := range []string{"y", "v", "x", "ii", "gg", "I", "i m"} {
		if _, err := ParseFlags(letters); !errors.Is(err, ErrInvalidFlags) {
			t.Fatalf("ParseFlags(%q) error = %v, want ErrInvalidFlags", letters, err)
		}
	}
}

func TestFlagsString(t *testing.T) {
	tests := []struct {
		flags Flags
		want  string
	}{
		{0, ""},
		{IgnoreCase, "i"},
		{Unicode | IgnoreCase | DotAll | Multiline, "imsu"},
		{DotAll | Verbose, "s"},
	}

	for _, tt := range tests {
		if got := tt.flags.String(); got != tt.want {
			t.Fatalf("Flags(%#x).String() = %q, want %q", uint32(tt.flags), got, tt.want)
		}
	}
}

func TestFlagsMatchHostOptions(t *testing.T) {
	tests := []struct {
		flags Flags
		host  regexp2.RegexOptions
	}{
		{IgnoreCase, regexp2.IgnoreCase},
		{Multiline, regexp2.Multiline},
		{ExplicitCapture, regexp2.ExplicitCapture},
		{Compiled, regexp2.Compiled},
		{DotAll, regexp2.Singleline},
		{Verbose, regexp2.IgnorePatternWhitespace},
		{RightToLeft, regexp2.RightToLeft},
		{Debug, regexp2.Debug},
		{ECMAScript, regexp2.ECMAScript},
		{RE2, regexp2.RE2},
		{Unicode, regexp2.Unicode},
	}

	for _, tt := range tests {
		if uint32(tt.flags) != uint32(tt.host) {
			t.Fatalf("Flags %#x != host option %#x", uint32(tt.flags), uint32(tt.host))
		}
	}

	if got := (IgnoreCase | Multiline | DotAll | Unicode).options(); got != regexp2.IgnoreCase|regexp2.Multiline|regexp2.Singleline {
		t.Fatalf("options() = %#x", got)
	}
}

func TestFlagsInline(t *testing.T) {
	tests := []struct {
		flags Flags
		want  string
	}{
		{0, ""},
		{Unicode, ""},
		{IgnoreCase | DotAll, "(?is)"},
		{Multiline, "(?m)"},
	}

	for _, tt := range tests {
		if got := tt.flags.inline(); got != tt.want {
			t.Fatalf("Flags(%#x).inline() = %q, want %q", uint32(tt.flags), got, tt.want)
		}
	}
}
