package reader

import (
	"strings"
	"testing"

	"pagemark/pkg/domain"
)

func TestSearchBlankQueryReturnsNothing(t *testing.T) {
	// The file path is bogus on purpose: a blank query must short-circuit
	// before any format-specific scan touches the file.
	if got := Search(domain.FormatEpub, "/does/not/exist.epub", "   "); got != nil {
		t.Fatalf("blank query = %v, want nil", got)
	}
	if got := Search(domain.FormatPdf, "/does/not/exist.pdf", ""); got != nil {
		t.Fatalf("blank query = %v, want nil", got)
	}
}

func TestSearchEpubFindsMatch(t *testing.T) {
	path := writeTestEpub(t, []string{"<p>A sample chapter with coroutines and flows.</p>"})

	results := Search(domain.FormatEpub, path, "Coroutines")
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if !strings.HasPrefix(results[0].Locator, "epub-scroll:") {
		t.Fatalf("locator = %q, want epub-scroll prefix", results[0].Locator)
	}
	if !strings.Contains(strings.ToLower(results[0].Snippet), "coroutines") {
		t.Fatalf("snippet = %q, want to contain %q", results[0].Snippet, "coroutines")
	}
}

func TestSearchEpubResultsOrderedAndCapped(t *testing.T) {
	chapter := "<p>" + strings.Repeat("needle filler text here. ", 30) + "</p>"
	path := writeTestEpub(t, []string{chapter})

	results := Search(domain.FormatEpub, path, "needle")
	if len(results) != 20 {
		t.Fatalf("results = %d, want capped at 20", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Percent <= results[i-1].Percent {
			t.Fatalf("results out of document order at %d: %v then %v", i, results[i-1].Percent, results[i].Percent)
		}
	}
}

func TestSearchEpubNoOverlappingMatches(t *testing.T) {
	path := writeTestEpub(t, []string{"<p>aaaa</p>"})

	results := Search(domain.FormatEpub, path, "aa")
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2 non-overlapping matches", len(results))
	}
}

func TestSearchPdfPageReference(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"page 12", "pdf-page:11"},
		{"Page 3", "pdf-page:2"},
		{"7", "pdf-page:6"},
	}
	for _, tc := range cases {
		results := Search(domain.FormatPdf, "ignored.pdf", tc.query)
		if len(results) != 1 {
			t.Fatalf("query %q: results = %d, want 1", tc.query, len(results))
		}
		if results[0].Locator != tc.want {
			t.Fatalf("query %q: locator = %q, want %q", tc.query, results[0].Locator, tc.want)
		}
	}
}

func TestSearchPdfRejectsNonPageQueries(t *testing.T) {
	for _, query := range []string{"hello", "page", "page zero", "0", "-2", "page 0"} {
		if got := Search(domain.FormatPdf, "ignored.pdf", query); len(got) != 0 {
			t.Fatalf("query %q: results = %v, want none", query, got)
		}
	}
}
