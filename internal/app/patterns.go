package app

import (
	"regexp"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// PatternExpiration is how long an unused compiled pattern is kept.
const PatternExpiration = 10 * time.Minute

// PatternCache keeps compiled search patterns so that repeated n searches
// do not recompile. It is safe for concurrent use.
type PatternCache struct {
	cache *gocache.Cache
}

// NewPatternCache creates an empty cache. Expired entries are dropped on
// access rather than by a cleanup goroutine.
func NewPatternCache() *PatternCache {
	return &PatternCache{cache: gocache.New(PatternExpiration, 0)}
}

// Compile returns the compiled form of pattern. A pattern that is not a
// valid regular expression matches itself literally.
func (c *PatternCache) Compile(pattern string) *regexp.Regexp {
	if v, found := c.cache.Get(pattern); found {
		if re, ok := v.(*regexp.Regexp); ok {
			return re
		}
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		re = regexp.MustCompile(regexp.QuoteMeta(pattern))
	}
	c.cache.Set(pattern, re, gocache.DefaultExpiration)
	return re
}

// Len returns the number of cached patterns.
func (c *PatternCache) Len() int {
	return c.cache.ItemCount()
}
