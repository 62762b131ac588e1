package ai

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Queue is the durable FIFO of requests deferred while offline, one JSON
// object per line. Enqueue appends; a flush rewrites the whole file with
// whatever failed, so the store is consistent per flush even without
// transactions.
type Queue struct {
	path string
}

func NewQueue(path string) *Queue { return &Queue{path: path} }

// Enqueue appends one request to the store.
func (q *Queue) Enqueue(req QueuedRequest) error {
	return appendJSONLine(q.path, req)
}

// Load returns the queued requests in enqueue order and whether the store
// exists at all. Unparseable lines are dropped with a warning: forward
// progress is preferred over preserving malformed state. A store that exists
// but cannot be read is an error, so callers never rewrite entries they
// could not see.
func (q *Queue) Load() ([]QueuedRequest, bool, error) {
	lines, err := readLines(q.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, true, fmt.Errorf("read ai queue %s: %w", q.path, err)
	}
	var requests []QueuedRequest
	for _, line := range lines {
		var req QueuedRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil || req.Type == "" {
			slog.Warn("dropping unparseable ai queue entry", "path", q.path)
			continue
		}
		requests = append(requests, req)
	}
	return requests, true, nil
}

// Rewrite replaces the store contents with exactly the given entries.
func (q *Queue) Rewrite(entries []QueuedRequest) error {
	var b strings.Builder
	for _, entry := range entries {
		data, err := json.Marshal(entry)
		if err != nil {
			continue
		}
		b.Write(data)
		b.WriteByte('\n')
	}
	return os.WriteFile(q.path, []byte(b.String()), 0o644)
}
