package jsregex

import (
	"io"
	"log/slog"
	"os"
	"time"

	"go.dw1.io/x/jsregex/internal/cast"
)

// Environment variables read once by the package-level compiler.
const (
	// EnvCacheSize bounds the package-level cache. Zero disables it.
	EnvCacheSize = "JSREGEX_CACHE_SIZE"
	// EnvMatchTimeout sets the match timeout of backtracking matchers, e.g.
	// "250ms".
	EnvMatchTimeout = "JSREGEX_MATCH_TIMEOUT"
)

// DefaultCacheSize is the capacity of the package-level cache.
const DefaultCacheSize = 1024

// Engine selects which matcher a [Compiler] may build.
type Engine uint8

const (
	// EngineAuto uses coregex for patterns without lookaround or
	// back-references, and regexp2 for the rest.
	EngineAuto Engine = iota
	// EngineBacktrack always uses regexp2.
	EngineBacktrack
)

// Option configures a [Compiler].
type Option func(*config)

type config struct {
	cache        Cache
	logger       *slog.Logger
	matchTimeout time.Duration
	engine       Engine
}

// WithCache stores compiled patterns in c.
func WithCache(c Cache) Option {
	return func(cfg *config) {
		cfg.cache = c
	}
}

// WithoutCache compiles every call afresh.
func WithoutCache() Option {
	return func(cfg *config) {
		cfg.cache = nil
	}
}

// WithLogger sets the logger for debug events such as engine selection and
// cache hits. Logging is discarded by default.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithMatchTimeout bounds a single match on a backtracking matcher. A match
// that runs out of time reports no match.
func WithMatchTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.matchTimeout = d
	}
}

// WithEngine restricts engine selection.
func WithEngine(e Engine) Option {
	return func(cfg *config) {
		cfg.engine = e
	}
}

func defaultConfig() config {
	return config{
		cache:  NewCache(DefaultCacheSize),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// envOptions reads the environment overrides of the package-level compiler.
// Malformed values are ignored.
func envOptions() []Option {
	var opts []Option

	if v, ok := os.LookupEnv(EnvCacheSize); ok {
		if n, err := cast.Int(v); err == nil && n >= 0 {
			if n == 0 {
				opts = append(opts, WithoutCache())
			} else {
				opts = append(opts, WithCache(NewCache(n)))
			}
		}
	}

	if v, ok := os.LookupEnv(EnvMatchTimeout); ok {
		if d, err := cast.Duration(v); err == nil && d > 0 {
			opts = append(opts, WithMatchTimeout(d))
		}
	}

	return opts
}
