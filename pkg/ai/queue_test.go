package ai

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func mustRoundTrip(t *testing.T, req QueuedRequest) QueuedRequest {
	t.Helper()
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out QueuedRequest
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return out
}

func TestQueueLoadMissingFile(t *testing.T) {
	q := NewQueue(filepath.Join(t.TempDir(), "queue.jsonl"))
	entries, exists, err := q.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatalf("Load reported a store that does not exist")
	}
	if entries != nil {
		t.Fatalf("Load = %v, want nil", entries)
	}
}

func TestQueueLoadUnreadableStore(t *testing.T) {
	// A directory at the store path exists but cannot be read as a file.
	path := filepath.Join(t.TempDir(), "queue.jsonl")
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	q := NewQueue(path)
	_, exists, err := q.Load()
	if err == nil {
		t.Fatalf("Load on unreadable store returned no error")
	}
	if !exists {
		t.Fatalf("Load reported an existing-but-unreadable store as missing")
	}
}

func TestQueueEnqueuePreservesOrder(t *testing.T) {
	q := NewQueue(filepath.Join(t.TempDir(), "queue.jsonl"))
	first := NewQuestionRequest("b1", "Dune", "Frank Herbert", "first")
	second := NewExplainRequest("b1", "Dune", "second selection")
	if err := q.Enqueue(first); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := q.Enqueue(second); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	entries, exists, err := q.Load()
	if err != nil || !exists || len(entries) != 2 {
		t.Fatalf("Load = %d entries, exists %v, err %v, want 2, true, nil", len(entries), exists, err)
	}
	if entries[0].RequestID != first.RequestID || entries[1].RequestID != second.RequestID {
		t.Fatalf("entries out of order: %q then %q", entries[0].RequestID, entries[1].RequestID)
	}
	if entries[0].Type != RequestQuestion || entries[1].Type != RequestExplainSelection {
		t.Fatalf("types = %q, %q", entries[0].Type, entries[1].Type)
	}
}

func TestQueueLoadDropsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.jsonl")
	q := NewQueue(path)
	good := NewSimilarBooksRequest("b1", "Dune", "Frank Herbert")
	if err := q.Enqueue(good); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("garbage line\n{\"requestId\":\"x\"}\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.Close()

	entries, exists, err := q.Load()
	if err != nil || !exists || len(entries) != 1 {
		t.Fatalf("Load = %d entries, exists %v, err %v, want only the valid entry", len(entries), exists, err)
	}
	if entries[0].RequestID != good.RequestID {
		t.Fatalf("surviving entry = %q, want %q", entries[0].RequestID, good.RequestID)
	}
}

func TestQueueRewrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.jsonl")
	q := NewQueue(path)
	for i := 0; i < 3; i++ {
		if err := q.Enqueue(NewQuestionRequest("b1", "Dune", "", "q")); err != nil {
			t.Fatalf("enqueue: %v", err)
		}
	}
	entries, _, err := q.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := q.Rewrite(entries[1:2]); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	after, exists, err := q.Load()
	if err != nil || !exists || len(after) != 1 || after[0].RequestID != entries[1].RequestID {
		t.Fatalf("after rewrite got %d entries, want the single kept one", len(after))
	}

	if err := q.Rewrite(nil); err != nil {
		t.Fatalf("rewrite empty: %v", err)
	}
	empty, exists, err := q.Load()
	if err != nil || !exists || len(empty) != 0 {
		t.Fatalf("after empty rewrite got %d entries, exists %v", len(empty), exists)
	}
}

func TestQueuedRequestWireFields(t *testing.T) {
	req := NewTranslateRequest("b1", "Dune", "spice", "French")
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, field := range []string{"requestId", "bookId", "bookTitle", "type", "prompt", "selectedText", "targetLanguage", "createdAtEpochMs"} {
		if _, ok := raw[field]; !ok {
			t.Fatalf("serialized request missing field %q: %s", field, data)
		}
	}
	if raw["type"] != "TRANSLATE_SELECTION" {
		t.Fatalf("type = %v, want TRANSLATE_SELECTION", raw["type"])
	}
}
