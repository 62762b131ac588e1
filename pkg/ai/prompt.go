package ai

import (
	"fmt"
	"strings"
)

// Prompt builders are pure: a prompt derives entirely from the request's
// stored fields (plus the conversation context for questions), so live and
// replayed requests produce identical provider input.

// BuildPromptForRequest rebuilds the provider prompt for a request.
// conversationContext is only consulted for question requests.
func BuildPromptForRequest(req QueuedRequest, conversationContext string) string {
	switch req.Type {
	case RequestQuestion:
		return BuildQuestionPrompt(req.BookTitle, req.Author, conversationContext, req.Prompt)
	case RequestExplainSelection:
		return BuildExplainPrompt(req.BookTitle, req.SelectedText)
	case RequestTranslateSelection:
		return BuildTranslatePrompt(req.BookTitle, req.SelectedText, req.TargetLanguage)
	case RequestSimilarBooks:
		return BuildSimilarBooksPrompt(req.BookTitle, req.Author)
	case RequestSectionSummary:
		return BuildSectionSummaryPrompt(req.BookTitle, req.SectionContext)
	default:
		return strings.TrimSpace(req.Prompt)
	}
}

func BuildQuestionPrompt(bookTitle, author, conversationContext, question string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		author = "Unknown"
	}
	conversationContext = strings.TrimSpace(conversationContext)
	if conversationContext == "" {
		conversationContext = "(none)"
	}
	return fmt.Sprintf(`You are assisting a reader.
Book title: %s
Author: %s
Keep answers concise and grounded in the book context.
Previous conversation context:
%s

User question:
%s`, strings.TrimSpace(bookTitle), author, conversationContext, strings.TrimSpace(question))
}

func BuildExplainPrompt(bookTitle, selectedText string) string {
	return fmt.Sprintf(`Explain the selected passage from %q in clear, simple language.
Include short clarification of hard words.

Selected text:
%s`, strings.TrimSpace(bookTitle), strings.TrimSpace(selectedText))
}

func BuildTranslatePrompt(bookTitle, selectedText, targetLanguage string) string {
	return fmt.Sprintf(`Translate the selected passage from %q into %s.
Keep the original tone and meaning.

Selected text:
%s`, strings.TrimSpace(bookTitle), strings.TrimSpace(targetLanguage), strings.TrimSpace(selectedText))
}

func BuildSimilarBooksPrompt(bookTitle, author string) string {
	author = strings.TrimSpace(author)
	if author == "" {
		author = "the same genre"
	}
	return fmt.Sprintf(`Recommend 5 books similar to %q by %s.
Provide title, author, and one-line reason each.`, strings.TrimSpace(bookTitle), author)
}

func BuildSectionSummaryPrompt(bookTitle, sectionText string) string {
	return fmt.Sprintf(`Summarize the following section from %q.
Keep it under 8 bullet points and include key events/concepts.

Section text:
%s`, strings.TrimSpace(bookTitle), strings.TrimSpace(sectionText))
}
