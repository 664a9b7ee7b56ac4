package prefetch

import (
	"testing"
	"time"

	"github.com/algority/algority/internal/questiongen"
)

func q(prompt string) *questiongen.Question {
	return &questiongen.Question{PhaseID: "pattern", Prompt: prompt}
}

func TestTake_Miss(t *testing.T) {
	c := NewMemoryCache(0)
	if _, ok := c.Take(NextKey("s1")); ok {
		t.Fatal("expected miss on empty cache")
	}
}

func TestPutTake_Roundtrip(t *testing.T) {
	c := NewMemoryCache(0)
	key := NextKey("s1")

	c.Put(key, q("first"))

	got, ok := c.Take(key)
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Prompt != "first" {
		t.Errorf("prompt = %q", got.Prompt)
	}

	// Take clears: a second take misses.
	if _, ok := c.Take(key); ok {
		t.Fatal("expected miss after take")
	}
}

func TestPut_LastWriteWins(t *testing.T) {
	c := NewMemoryCache(0)
	key := NextKey("s1")

	c.Put(key, q("stale"))
	c.Put(key, q("fresh"))

	got, ok := c.Take(key)
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Prompt != "fresh" {
		t.Errorf("prompt = %q, want fresh", got.Prompt)
	}
}

func TestKeys_Distinct(t *testing.T) {
	c := NewMemoryCache(0)

	c.Put(NextKey("s1"), q("next"))
	c.Put(TransitionKey("s1", "clarify", "pattern"), q("transition"))

	if got, ok := c.Take(TransitionKey("s1", "clarify", "pattern")); !ok || got.Prompt != "transition" {
		t.Fatalf("transition entry = %v, %t", got, ok)
	}
	if got, ok := c.Take(NextKey("s1")); !ok || got.Prompt != "next" {
		t.Fatalf("next entry = %v, %t", got, ok)
	}
}

func TestTake_Expired(t *testing.T) {
	c := NewMemoryCache(time.Minute)

	current := time.Now()
	c.now = func() time.Time { return current }

	c.Put(NextKey("s1"), q("old"))

	current = current.Add(2 * time.Minute)
	if _, ok := c.Take(NextKey("s1")); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestLen_SweepsExpired(t *testing.T) {
	c := NewMemoryCache(time.Minute)

	current := time.Now()
	c.now = func() time.Time { return current }

	c.Put(NextKey("s1"), q("a"))
	c.Put(NextKey("s2"), q("b"))
	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}

	current = current.Add(2 * time.Minute)
	if c.Len() != 0 {
		t.Fatalf("len = %d, want 0 after expiry", c.Len())
	}
}

func TestPut_NilIgnored(t *testing.T) {
	c := NewMemoryCache(0)
	c.Put(NextKey("s1"), nil)
	if _, ok := c.Take(NextKey("s1")); ok {
		t.Fatal("nil put must not create an entry")
	}
}
