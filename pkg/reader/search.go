package reader

import (
	"fmt"
	"strconv"
	"strings"

	"pagemark/pkg/domain"
	"pagemark/pkg/locator"
)

const (
	maxSearchResults = 20
	snippetBefore    = 50
	snippetAfter     = 70
)

// Search runs the format-specific scan for a query. A blank query returns
// nil before any scan happens. Scan failures degrade to an empty result,
// they are never surfaced.
func Search(format domain.BookFormat, filePath, query string) []domain.SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	switch format {
	case domain.FormatEpub:
		return searchEpub(filePath, query)
	case domain.FormatPdf:
		return searchPdf(query)
	default:
		return nil
	}
}

// searchEpub is a case-insensitive substring scan over the flattened book
// text. Matches do not overlap: each scan resumes after the previous match.
// The locator is the match offset expressed as a scroll fraction.
func searchEpub(filePath, query string) []domain.SearchResult {
	plain := epubPlainText(filePath)
	if plain == "" {
		return nil
	}
	lowerText := strings.ToLower(plain)
	lowerQuery := strings.ToLower(query)

	var results []domain.SearchResult
	from := 0
	for len(results) < maxSearchResults {
		idx := strings.Index(lowerText[from:], lowerQuery)
		if idx < 0 {
			break
		}
		idx += from

		percent := 0.0
		if len(plain) > 1 {
			percent = float64(idx) / float64(len(plain)-1)
		}
		start := idx - snippetBefore
		if start < 0 {
			start = 0
		}
		end := idx + len(query) + snippetAfter
		if end > len(plain) {
			end = len(plain)
		}
		results = append(results, domain.SearchResult{
			Locator: locator.EncodeEpubScroll(percent),
			Snippet: strings.TrimSpace(plain[start:end]),
			Percent: percent,
		})
		from = idx + len(query)
	}
	return results
}

// searchPdf interprets the query as a page reference ("page 12" or a bare
// integer) and jumps there. The engine does not extract PDF text, so this is
// a navigation shortcut rather than a text search.
func searchPdf(query string) []domain.SearchResult {
	normalized := strings.ToLower(strings.TrimSpace(query))
	raw, found := strings.CutPrefix(normalized, "page ")
	if !found {
		raw = normalized
	}
	pageNumber, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || pageNumber <= 0 {
		return nil
	}
	return []domain.SearchResult{{
		Locator: locator.EncodePdfPage(pageNumber - 1),
		Snippet: fmt.Sprintf("Jump to page %d", pageNumber),
		Percent: 0,
	}}
}
