// Package cache stores raw GET responses between invocations.
package cache

import "time"

// Entry is a cached response.
type Entry struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Cache is a response cache keyed by request identity.
type Cache interface {
	Get(key string) (*Entry, bool)
	Set(key string, e *Entry) error
	// DeletePrefix drops every entry whose key starts with prefix.
	DeletePrefix(prefix string) error
	Close() error
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(string) (*Entry, bool) { return nil, false }

func (Nop) Set(string, *Entry) error { return nil }

func (Nop) DeletePrefix(string) error { return nil }

func (Nop) Close() error { return nil }

// DefaultTTL bounds how long a cached response is served.
const DefaultTTL = 5 * time.Minute
