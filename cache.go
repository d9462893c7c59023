package jsregex

import (
	"strconv"

	"go.dw1.io/fastcache"
)

// Key identifies a compiled pattern.
type Key struct {
	Pattern string
	Flags   Flags
}

func (k Key) String() string {
	return strconv.FormatUint(uint64(k.Flags), 16) + "/" + k.Pattern
}

// Cache stores compiled patterns. Implementations must be safe for concurrent
// use. Only successful compiles are stored.
type Cache interface {
	Get(Key) (*Regexp, bool)
	Put(Key, *Regexp)
}

type boundedCache struct {
	entries *fastcache.Cache[string, *Regexp]
}

// NewCache returns a Cache holding at most about capacity patterns. A
// non-positive capacity uses [DefaultCacheSize].
func NewCache(capacity int) Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}

	return &boundedCache{entries: fastcache.New[string, *Regexp](capacity)}
}

func (c *boundedCache) Get(k Key) (*Regexp, bool) {
	return c.entries.Get(k.String())
}

func (c *boundedCache) Put(k Key, re *Regexp) {
	c.entries.Set(k.String(), re)
}
