package syntax

import "fmt"

// ErrorCode describes a failure to parse a pattern.
type ErrorCode string

const (
	ErrTrailingBackslash   ErrorCode = "illegal \\ at end of pattern"
	ErrUnterminatedSet     ErrorCode = "unterminated [] set"
	ErrReversedRange       ErrorCode = "[x-y] range in reverse order"
	ErrClassInRange        ErrorCode = "cannot include class in character range"
	ErrMissingParen        ErrorCode = "not enough )'s"
	ErrUnexpectedParen     ErrorCode = "too many )'s"
	ErrMissingRepeat       ErrorCode = "quantifier following nothing"
	ErrNestedRepeat        ErrorCode = "nested quantifier"
	ErrInvalidRepeat       ErrorCode = "illegal {x,y} with x > y"
	ErrUnknownGroup        ErrorCode = "unrecognized grouping construct"
	ErrInvalidGroupName    ErrorCode = "invalid group name"
	ErrUnknownFlag         ErrorCode = "unrecognized inline option"
	ErrUnterminatedComment ErrorCode = "unterminated (?#...) comment"
	ErrTooManyAlternates   ErrorCode = "too many | in (?()|)"
	ErrInvalidEscape       ErrorCode = "unrecognized escape sequence"
	ErrInvalidProperty     ErrorCode = "incomplete \\p{X} character escape"
)

// Error is returned by Parse.
type Error struct {
	Code    ErrorCode
	Pos     int
	Pattern string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at offset %d in `%s`", e.Code, e.Pos, e.Pattern)
}
