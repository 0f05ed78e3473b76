package keggclient

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ResponseCache memoizes raw response text keyed by request URL for a
// bounded time window. It is transparent to the parser: only the text blob
// is cached, never parsed records.
type ResponseCache struct {
	lru *expirable.LRU[string, string]
}

// NewResponseCache creates a cache holding up to maxEntries responses, each
// expiring after ttl.
func NewResponseCache(maxEntries int, ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		lru: expirable.NewLRU[string, string](maxEntries, nil, ttl),
	}
}

// Get returns the cached response text for url, if present and not expired.
func (c *ResponseCache) Get(url string) (string, bool) {
	return c.lru.Get(url)
}

// Put stores the response text for url.
func (c *ResponseCache) Put(url string, text string) {
	c.lru.Add(url, text)
}

// Len returns the number of live entries.
func (c *ResponseCache) Len() int {
	return c.lru.Len()
}
