package ai

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	return NewCache(filepath.Join(t.TempDir(), "cache.jsonl"))
}

func TestCacheStoreThenLookup(t *testing.T) {
	c := newTestCache(t)
	key := CacheKey("book-1", "What happens in chapter 2?")
	if err := c.Store(key, "book-1", "A storm hits."); err != nil {
		t.Fatalf("store: %v", err)
	}
	got, ok := c.Lookup(key)
	if !ok || got != "A storm hits." {
		t.Fatalf("lookup = %q, %v, want %q, true", got, ok, "A storm hits.")
	}
}

func TestCacheLookupUnknownKey(t *testing.T) {
	c := newTestCache(t)
	if _, ok := c.Lookup(CacheKey("book-1", "anything")); ok {
		t.Fatalf("lookup on empty cache unexpectedly ok")
	}
	if err := c.Store(CacheKey("book-1", "a"), "book-1", "resp"); err != nil {
		t.Fatalf("store: %v", err)
	}
	if _, ok := c.Lookup(CacheKey("book-2", "a")); ok {
		t.Fatalf("lookup for other book unexpectedly ok")
	}
}

func TestCacheLookupReturnsMostRecent(t *testing.T) {
	c := newTestCache(t)
	key := CacheKey("book-1", "q")
	if err := c.Store(key, "book-1", "old answer"); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := c.Store(key, "book-1", "new answer"); err != nil {
		t.Fatalf("store: %v", err)
	}
	got, ok := c.Lookup(key)
	if !ok || got != "new answer" {
		t.Fatalf("lookup = %q, %v, want newest entry", got, ok)
	}
}

func TestCacheLookupSkipsBlankResponses(t *testing.T) {
	c := newTestCache(t)
	key := CacheKey("book-1", "q")
	if err := c.Store(key, "book-1", "real answer"); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := c.Store(key, "book-1", "   "); err != nil {
		t.Fatalf("store: %v", err)
	}
	got, ok := c.Lookup(key)
	if !ok || got != "real answer" {
		t.Fatalf("lookup = %q, %v, want the newest non-blank response", got, ok)
	}
}

func TestCacheLookupSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.jsonl")
	c := NewCache(path)
	key := CacheKey("book-1", "q")
	if err := c.Store(key, "book-1", "answer"); err != nil {
		t.Fatalf("store: %v", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("{not json\n"); err != nil {
		t.Fatalf("write corrupt line: %v", err)
	}
	f.Close()

	got, ok := c.Lookup(key)
	if !ok || got != "answer" {
		t.Fatalf("lookup = %q, %v, want %q despite corrupt tail", got, ok, "answer")
	}
}

func TestCacheKeyTrimsPrompt(t *testing.T) {
	if CacheKey("b", "  prompt \n") != "b::prompt" {
		t.Fatalf("CacheKey did not trim: %q", CacheKey("b", "  prompt \n"))
	}
}
