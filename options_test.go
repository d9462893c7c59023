package jsregex

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func TestEnvOptions(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		cfg := applyOptions(envOptions())
		if cfg.cache == nil {
			t.Fatal("default config has no cache")
		}
		if cfg.matchTimeout != 0 {
			t.Fatalf("matchTimeout = %v, want 0", cfg.matchTimeout)
		}
	})

	t.Run("cache disabled", func(t *testing.T) {
		t.Setenv(EnvCacheSize, "0")

		if cfg := applyOptions(envOptions()); cfg.cache != nil {
			t.Fatal("cache size 0 kept a cache")
		}
	})

	t.Run("cache sized", func(t *testing.T) {
		t.Setenv(EnvCacheSize, "32")

		if cfg := applyOptions(envOptions()); cfg.cache == nil {
			t.Fatal("cache size 32 removed the cache")
		}
	})

	t.Run("match timeout", func(t *testing.T) {
		t.Setenv(EnvMatchTimeout, "250ms")

		if cfg := applyOptions(envOptions()); cfg.matchTimeout != 250*time.Millisecond {
			t.Fatalf("matchTimeout = %v, want 250ms", cfg.matchTimeout)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		t.Setenv(EnvCacheSize, "lots")
		t.Setenv(EnvMatchTimeout, "soon")

		if opts := envOptions(); len(opts) != 0 {
			t.Fatalf("envOptions() returned %d options for malformed values", len(opts))
		}
	})

	t.Run("negative", func(t *testing.T) {
		t.Setenv(EnvCacheSize, "-1")
		t.Setenv(EnvMatchTimeout, "-1s")

		if opts := envOptions(); len(opts) != 0 {
			t.Fatalf("envOptions() returned %d options for negative values", len(opts))
		}
	})
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c := New(WithLogger(logger))

	mustCompileWith(t, c, "a+")
	if out := buf.String(); !strings.Contains(out, "engine=coregex") || !strings.Contains(out, "compiled pattern") {
		t.Fatalf("log output %q does not record the engine", out)
	}

	buf.Reset()
	mustCompileWith(t, c, "a+")
	if out := buf.String(); !strings.Contains(out, "cache hit") {
		t.Fatalf("log output %q does not record the cache hit", out)
	}

	buf.Reset()
	if _, err := c.Compile("(", 0); err == nil {
		t.Fatal("expected error")
	}
	if buf.Len() != 0 {
		t.Fatalf("failed compile logged %q", buf.String())
	}
}

func TestWithLoggerNil(t *testing.T) {
	c := New(WithLogger(nil))
	mustCompileWith(t, c, "a")
}

func TestWithMatchTimeout(t *testing.T) {
	c := New(WithEngine(EngineBacktrack), WithMatchTimeout(10*time.Millisecond))

	re := mustCompileWith(t, c, "^(a+)+b")
	if re.back.MatchTimeout != 10*time.Millisecond {
		t.Fatalf("MatchTimeout = %v, want 10ms", re.back.MatchTimeout)
	}

	start := time.Now()
	if re.MatchString(strings.Repeat("a", 64) + "c") {
		t.Fatal("unexpected match")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("match ran for %v despite the timeout", elapsed)
	}
}
