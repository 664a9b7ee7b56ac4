package prefetch

import (
	"fmt"
	"sync"
	"time"

	"github.com/algority/algority/internal/questiongen"
)

// Cache stores at most one speculative question per key. It is a
// best-effort side channel, never the system of record: a miss means
// the caller generates synchronously. Put overwrites (newer supersedes
// older); Take reads and clears in one atomic step so two racing
// callers can never consume the same entry.
type Cache interface {
	Put(key string, q *questiongen.Question)
	Take(key string) (*questiongen.Question, bool)
}

// NextKey keys the speculative "next question within the current phase"
// slot for a session.
func NextKey(sessionID string) string {
	return "next:" + sessionID
}

// TransitionKey keys the speculative "first question of the next phase"
// slot. The phase pair is part of the key because it is a distinct
// artifact from the within-phase next question.
func TransitionKey(sessionID, fromPhaseID, toPhaseID string) string {
	return fmt.Sprintf("transition:%s:%s:%s", sessionID, fromPhaseID, toPhaseID)
}

// DefaultTTL bounds how long an unconsumed speculative question lives.
const DefaultTTL = 10 * time.Minute

type entry struct {
	question *questiongen.Question
	expires  time.Time
}

// MemoryCache is an in-process Cache with TTL-based lazy expiry.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates a MemoryCache. A non-positive ttl falls back
// to DefaultTTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put stores q under key, replacing any existing entry.
func (c *MemoryCache) Put(key string, q *questiongen.Question) {
	if q == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{question: q, expires: c.now().Add(c.ttl)}
}

// Take returns and removes the entry under key. Expired entries are
// treated as absent and dropped.
func (c *MemoryCache) Take(key string) (*questiongen.Question, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	delete(c.entries, key)
	if c.now().After(e.expires) {
		return nil, false
	}
	return e.question, true
}

// Len returns the number of live entries, sweeping expired ones.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
		}
	}
	return len(c.entries)
}
