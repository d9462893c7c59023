package jsregex

import (
	"errors"

	"go.dw1.io/x/jsregex/internal/feature"
)

// ErrInvalidInputType indicates that the pattern is not text or the flags are
// not an integer bitset.
var ErrInvalidInputType = errors.New("invalid input type")

// ErrInvalidFlags indicates flags with no meaning in JavaScript, such as
// free-spacing mode.
var ErrInvalidFlags = errors.New("invalid flags")

// ErrSyntax indicates a pattern the host parser rejects after escape
// rewriting.
//
// The parser diagnostic is wrapped alongside it.
var ErrSyntax = errors.New("invalid regular expression")

// ErrUnsupported indicates a pattern that is valid for the host engine but
// uses a construct JavaScript does not have, or the reverse.
//
// A [FeatureError] with the offending construct is wrapped alongside it.
var ErrUnsupported = errors.New("not portable to JavaScript")

// FeatureError names the construct behind [ErrUnsupported].
type FeatureError = feature.Error

// Error is returned by every failing compile. Kind is one of the Err*
// sentinels of this package; both Kind and Err match with [errors.Is] and
// [errors.As].
type Error struct {
	Pattern string
	Kind    error
	Err     error
}

func (e *Error) Error() string {
	msg := "jsregex: " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg + " in `" + e.Pattern + "`"
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}
