package ai

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	maxConversationEntries   = 20
	conversationContextLines = 5
)

// ConversationLog keeps a capped per-book jsonl exchange history. The last
// few raw lines feed the context block of future question prompts.
type ConversationLog struct {
	dir string
}

func NewConversationLog(dir string) *ConversationLog { return &ConversationLog{dir: dir} }

type conversationEntry struct {
	Timestamp int64  `json:"timestamp"`
	Prompt    string `json:"prompt"`
	Response  string `json:"response"`
}

func (l *ConversationLog) filePath(bookID string) string {
	return filepath.Join(l.dir, "conversation_"+bookID+".jsonl")
}

// Append records an exchange and prunes the log back to the newest
// maxConversationEntries lines.
func (l *ConversationLog) Append(bookID, prompt, response string) error {
	path := l.filePath(bookID)
	entry := conversationEntry{
		Timestamp: time.Now().UnixMilli(),
		Prompt:    prompt,
		Response:  response,
	}
	if err := appendJSONLine(path, entry); err != nil {
		return err
	}
	lines, err := readLines(path)
	if err != nil {
		return err
	}
	if len(lines) <= maxConversationEntries {
		return nil
	}
	kept := lines[len(lines)-maxConversationEntries:]
	return os.WriteFile(path, []byte(strings.Join(kept, "\n")+"\n"), 0o644)
}

// Context returns the newest conversation lines verbatim for prompt
// context, or "(none)" when there is no usable history.
func (l *ConversationLog) Context(bookID string) string {
	lines, err := readLines(l.filePath(bookID))
	if err != nil || len(lines) == 0 {
		return "(none)"
	}
	if len(lines) > conversationContextLines {
		lines = lines[len(lines)-conversationContextLines:]
	}
	joined := strings.TrimSpace(strings.Join(lines, "\n"))
	if joined == "" {
		return "(none)"
	}
	return joined
}
