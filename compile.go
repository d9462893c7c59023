package jsregex

import (
	"errors"
	"fmt"

	"github.com/coregx/coregex"
	"github.com/dlclark/regexp2"
	hostsyntax "github.com/dlclark/regexp2/syntax"
	"golang.org/x/sync/singleflight"

	"go.dw1.io/x/jsregex/internal/cast"
	"go.dw1.io/x/jsregex/internal/feature"
	"go.dw1.io/x/jsregex/internal/rewrite"
	"go.dw1.io/x/jsregex/internal/syntax"
)

// Compiler compiles JavaScript patterns. It is safe for concurrent use; with a
// cache, concurrent compiles of the same key run once.
type Compiler struct {
	cfg    config
	flight singleflight.Group
}

// New returns a Compiler with a private cache of [DefaultCacheSize] patterns,
// adjusted by opts.
func New(opts ...Option) *Compiler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Compiler{cfg: cfg}
}

var std = New(envOptions()...)

// Compile compiles a JavaScript pattern with the package-level compiler, whose
// cache is shared by all callers and sized by [EnvCacheSize].
func Compile(pattern string, flags Flags) (*Regexp, error) {
	return std.Compile(pattern, flags)
}

// CompileArgs is like [Compile] for loosely typed arguments. pattern must be a
// string or a byte slice and flags nil or an integer.
func CompileArgs(pattern, flags any) (*Regexp, error) {
	return std.CompileArgs(pattern, flags)
}

// MustCompile is like Compile but panics if the expression cannot be
// compiled.
func MustCompile(pattern string, flags Flags) *Regexp {
	re, err := Compile(pattern, flags)
	if err != nil {
		panic("regexp: Compile(" + quote(pattern) + "): " + err.Error())
	}

	return re
}

func quote(s string) string {
	return "`" + s + "`"
}

// CompileArgs is like [Compiler.Compile] for loosely typed arguments.
func (c *Compiler) CompileArgs(pattern, flags any) (*Regexp, error) {
	text, ok := cast.Text(pattern)
	if !ok {
		return nil, &Error{
			Pattern: fmt.Sprint(pattern),
			Kind:    ErrInvalidInputType,
			Err:     fmt.Errorf("pattern must be a string, got %T", pattern),
		}
	}

	bits, err := cast.Bits(flags)
	if err != nil {
		kind := ErrInvalidFlags
		if errors.Is(err, cast.ErrNotInteger) {
			kind = ErrInvalidInputType
		}

		return nil, &Error{Pattern: text, Kind: kind, Err: fmt.Errorf("flags: %w", err)}
	}

	return c.Compile(text, Flags(bits))
}

// Compile translates a JavaScript pattern to the host dialect and compiles
// it. It fails with an *[Error] when the flags are host-only, the host
// rejects the pattern, or the pattern uses a construct the two dialects do
// not share.
func (c *Compiler) Compile(pattern string, flags Flags) (*Regexp, error) {
	if err := flags.check(); err != nil {
		return nil, &Error{Pattern: pattern, Kind: ErrInvalidFlags, Err: err}
	}

	if c.cfg.cache == nil {
		return c.compile(pattern, flags)
	}

	key := Key{Pattern: pattern, Flags: flags}
	if re, ok := c.cfg.cache.Get(key); ok {
		c.cfg.logger.Debug("cache hit", "pattern", pattern, "flags", flags.String())
		return re, nil
	}

	v, err, _ := c.flight.Do(key.String(), func() (any, error) {
		if re, ok := c.cfg.cache.Get(key); ok {
			return re, nil
		}

		re, err := c.compile(pattern, flags)
		if err != nil {
			return nil, err
		}

		c.cfg.cache.Put(key, re)
		return re, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Regexp), nil
}

func (c *Compiler) compile(pattern string, flags Flags) (*Regexp, error) {
	expr := rewrite.Escapes(pattern)

	if _, err := hostsyntax.Parse(expr, hostsyntax.RegexOptions(flags.options())); err != nil {
		return nil, &Error{Pattern: pattern, Kind: ErrSyntax, Err: err}
	}

	tree, err := syntax.Parse(expr, flags.syntax())
	if err != nil {
		return nil, &Error{Pattern: pattern, Kind: ErrSyntax, Err: err}
	}

	if err := feature.Check(expr, tree, flags&Unicode != 0); err != nil {
		return nil, &Error{Pattern: pattern, Kind: ErrUnsupported, Err: err}
	}
	if err := feature.CheckText(expr); err != nil {
		return nil, &Error{Pattern: pattern, Kind: ErrUnsupported, Err: err}
	}

	if flags&Multiline == 0 && tree.Flags&syntax.Multiline == 0 {
		expr = rewrite.Anchors(expr)
	}

	re, err := c.build(pattern, flags, expr, tree)
	if err != nil {
		// expr passed the host parser and validation above.
		panic(fmt.Sprintf("jsregex: translated pattern `%s` of `%s` failed to compile: %v", expr, pattern, err))
	}

	c.cfg.logger.Debug("compiled pattern",
		"pattern", pattern,
		"flags", flags.String(),
		"expr", expr,
		"engine", re.Engine(),
	)

	return re, nil
}

// build picks the matcher. coregex is tried only when the tree needs no
// backtracking, and any pattern it refuses falls back to regexp2. regexp2
// gets explicit word boundaries since its \b is not ASCII-only.
func (c *Compiler) build(source string, flags Flags, expr string, tree *syntax.Tree) (*Regexp, error) {
	re := &Regexp{source: source, flags: flags, expr: expr}

	if c.cfg.engine == EngineAuto && !needsBacktracking(tree) {
		if core, err := coregex.Compile(flags.inline() + expr); err == nil {
			re.core = core
			return re, nil
		}
	}

	re.expr = rewrite.Boundaries(expr)
	back, err := regexp2.Compile(re.expr, flags.options())
	if err != nil {
		return nil, err
	}
	if c.cfg.matchTimeout > 0 {
		back.MatchTimeout = c.cfg.matchTimeout
	}

	re.back = back
	return re, nil
}
