package ai

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Cache is an append-only jsonl log of provider responses keyed by
// (book, prompt). The cache is syntactic: two differently-phrased prompts
// for the same intent are distinct keys. Entries are never overwritten or
// deleted; the logical read is the newest non-blank match.
type Cache struct {
	path string
}

func NewCache(path string) *Cache { return &Cache{path: path} }

type cacheEntry struct {
	CacheKey  string `json:"cacheKey"`
	BookID    string `json:"bookId"`
	Response  string `json:"response"`
	Timestamp int64  `json:"timestamp"`
}

// CacheKey derives the lookup key for a book and prompt.
func CacheKey(bookID, prompt string) string {
	return bookID + "::" + strings.TrimSpace(prompt)
}

// Lookup scans newest-first for the first entry matching key with a
// non-blank response. A missing store or corrupt lines are simply "no
// cached value", never an error.
func (c *Cache) Lookup(key string) (string, bool) {
	lines, err := readLines(c.path)
	if err != nil {
		return "", false
	}
	for i := len(lines) - 1; i >= 0; i-- {
		var entry cacheEntry
		if err := json.Unmarshal([]byte(lines[i]), &entry); err != nil {
			continue
		}
		if entry.CacheKey != key {
			continue
		}
		if strings.TrimSpace(entry.Response) == "" {
			continue
		}
		return entry.Response, true
	}
	return "", false
}

// Store appends one entry. Prior entries for the same key are kept; the
// file only grows.
func (c *Cache) Store(key, bookID, response string) error {
	entry := cacheEntry{
		CacheKey:  key,
		BookID:    bookID,
		Response:  response,
		Timestamp: time.Now().UnixMilli(),
	}
	return appendJSONLine(c.path, entry)
}

func appendJSONLine(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append to %s: %w", path, err)
	}
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
