// Package ai implements the assistant pipeline: capability gating, prompt
// construction, response caching, durable offline queueing, and the Gemini
// transport.
package ai

import (
	"time"

	"github.com/google/uuid"
)

// RequestType is the closed set of assistant actions. Values match the
// serialized form used in queue.jsonl.
type RequestType string

const (
	RequestQuestion           RequestType = "QUESTION"
	RequestExplainSelection   RequestType = "EXPLAIN_SELECTION"
	RequestTranslateSelection RequestType = "TRANSLATE_SELECTION"
	RequestSimilarBooks       RequestType = "SIMILAR_BOOKS"
	RequestSectionSummary     RequestType = "SECTION_SUMMARY"
)

// QueuedRequest carries everything needed to rebuild a request's prompt
// later, so a deferred request replays exactly like a live one.
type QueuedRequest struct {
	RequestID      string      `json:"requestId"`
	BookID         string      `json:"bookId"`
	BookTitle      string      `json:"bookTitle"`
	Author         string      `json:"author,omitempty"`
	Type           RequestType `json:"type"`
	Prompt         string      `json:"prompt"`
	SelectedText   string      `json:"selectedText,omitempty"`
	TargetLanguage string      `json:"targetLanguage,omitempty"`
	SectionContext string      `json:"sectionContext,omitempty"`
	CreatedAt      int64       `json:"createdAtEpochMs"`
}

// Capability is the three-flag readiness check for assistant actions. It is
// derived on demand and never cached across calls: network presence can
// change between any two actions.
type Capability struct {
	Enabled    bool `json:"enabled"`
	HasAPIKey  bool `json:"hasApiKey"`
	HasNetwork bool `json:"hasNetwork"`
}

// CanRun reports whether an assistant call may proceed.
func (c Capability) CanRun() bool { return c.Enabled && c.HasAPIKey && c.HasNetwork }

func newRequest(bookID, bookTitle, author string, kind RequestType, prompt string) QueuedRequest {
	return QueuedRequest{
		RequestID: uuid.NewString(),
		BookID:    bookID,
		BookTitle: bookTitle,
		Author:    author,
		Type:      kind,
		Prompt:    prompt,
		CreatedAt: time.Now().UnixMilli(),
	}
}

// NewQuestionRequest builds a free-form question about a book.
func NewQuestionRequest(bookID, bookTitle, author, question string) QueuedRequest {
	return newRequest(bookID, bookTitle, author, RequestQuestion, question)
}

// NewExplainRequest asks for a plain-language explanation of a selection.
func NewExplainRequest(bookID, bookTitle, selectedText string) QueuedRequest {
	req := newRequest(bookID, bookTitle, "", RequestExplainSelection, "Explain this selected text.")
	req.SelectedText = selectedText
	return req
}

// NewTranslateRequest asks for a translation of a selection.
func NewTranslateRequest(bookID, bookTitle, selectedText, targetLanguage string) QueuedRequest {
	req := newRequest(bookID, bookTitle, "", RequestTranslateSelection, "Translate selected text.")
	req.SelectedText = selectedText
	req.TargetLanguage = targetLanguage
	return req
}

// NewSimilarBooksRequest asks for reading recommendations.
func NewSimilarBooksRequest(bookID, bookTitle, author string) QueuedRequest {
	return newRequest(bookID, bookTitle, author, RequestSimilarBooks, "Suggest similar books")
}

// NewSectionSummaryRequest asks for a bullet summary of a section.
func NewSectionSummaryRequest(bookID, bookTitle, sectionText string) QueuedRequest {
	req := newRequest(bookID, bookTitle, "", RequestSectionSummary, "Summarize current section.")
	req.SectionContext = sectionText
	return req
}
