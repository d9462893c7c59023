// Package jsregex compiles JavaScript (ECMAScript) regular expressions so
// that a Go program matches them the way a browser would.
//
// A pattern goes through four stages. JavaScript-only escapes such as \cA and
// the ASCII shorthands \d, \w and \s are rewritten into explicit classes. The
// result is parsed, and the tree is checked for host constructs that
// JavaScript lacks, like \A, (?#...) or atomic groups. Outside multiline mode
// every $ becomes \z, since JavaScript's $ does not match before a trailing
// newline. Finally the translated pattern is compiled.
//
// Patterns without lookaround, back-references or named groups run on
// [coregex]; all others run on the backtracking [regexp2] engine. Both see
// \b and \B with the ASCII word characters [0-9A-Za-z_].
//
// Unicode property escapes such as \p{L} need the [Unicode] flag. Without it
// JavaScript reads them as plain letters, so they are rejected.
//
// Failures are reported as *[Error] and match one of [ErrInvalidInputType],
// [ErrInvalidFlags], [ErrSyntax] or [ErrUnsupported] with [errors.Is].
//
// The \w shorthand is narrowed to [A-Za-z], without digits or underscore,
// inside bracket expressions too. Patterns that depend on the full word
// class should spell it out.
//
// [coregex]: https://github.com/coregx/coregex
// [regexp2]: https://github.com/dlclark/regexp2
package jsregex
