package ai

import (
	"strings"
	"testing"
)

func TestConversationContextEmpty(t *testing.T) {
	log := NewConversationLog(t.TempDir())
	if got := log.Context("book-1"); got != "(none)" {
		t.Fatalf("Context = %q, want %q", got, "(none)")
	}
}

func TestConversationContextUsesNewestLines(t *testing.T) {
	log := NewConversationLog(t.TempDir())
	for i := 0; i < 8; i++ {
		prompt := "prompt-" + string(rune('a'+i))
		if err := log.Append("book-1", prompt, "resp"); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	got := log.Context("book-1")
	lines := strings.Split(got, "\n")
	if len(lines) != conversationContextLines {
		t.Fatalf("context has %d lines, want %d", len(lines), conversationContextLines)
	}
	if !strings.Contains(lines[0], "prompt-d") {
		t.Fatalf("oldest context line = %q, want the fourth-from-last entry", lines[0])
	}
	if !strings.Contains(lines[len(lines)-1], "prompt-h") {
		t.Fatalf("newest context line = %q, want the last entry", lines[len(lines)-1])
	}
}

func TestConversationCappedAtTwenty(t *testing.T) {
	dir := t.TempDir()
	log := NewConversationLog(dir)
	for i := 0; i < 25; i++ {
		if err := log.Append("book-1", "prompt", "resp"); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	lines, err := readLines(log.filePath("book-1"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(lines) != maxConversationEntries {
		t.Fatalf("log has %d entries, want %d", len(lines), maxConversationEntries)
	}
}

func TestConversationLogsArePerBook(t *testing.T) {
	log := NewConversationLog(t.TempDir())
	if err := log.Append("book-1", "about book one", "resp"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if got := log.Context("book-2"); got != "(none)" {
		t.Fatalf("Context for other book = %q, want %q", got, "(none)")
	}
}
