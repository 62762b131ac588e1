package reader

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"pagemark/pkg/domain"
)

// EpubEngine flattens an EPUB's spine-ordered chapters into one navigable
// HTML unit. Flattening is what lets a single scroll fraction address the
// whole book.
type EpubEngine struct{}

func NewEpubEngine() *EpubEngine { return &EpubEngine{} }

func (e *EpubEngine) Format() domain.BookFormat { return domain.FormatEpub }

func (e *EpubEngine) Open(_ context.Context, src Source) (*Document, error) {
	archive, err := openEpub(src.FilePath)
	if err != nil {
		return nil, err
	}
	defer archive.Close()

	html, chapterCount, err := archive.combinedHTML()
	if err != nil {
		return nil, err
	}
	return &Document{
		Format:         domain.FormatEpub,
		FilePath:       src.FilePath,
		InitialLocator: src.InitialLocator,
		HTMLContent:    html,
		ChapterCount:   chapterCount,
	}, nil
}

var bodyEnvelopeRe = regexp.MustCompile(`(?is)<body[^>]*>(.*?)</body>`)

// stripEnvelope extracts a chapter's body content so chapters can be stitched
// into a single page without nested html/head elements.
func stripEnvelope(chapter string) string {
	if m := bodyEnvelopeRe.FindStringSubmatch(chapter); m != nil {
		return m[1]
	}
	return chapter
}

func (a *epubArchive) combinedHTML() (string, int, error) {
	var b strings.Builder
	b.WriteString(`<html><head><meta charset="utf-8"/></head><body>`)
	count := 0
	for _, entryPath := range a.chapterPaths() {
		data, ok := a.readEntry(entryPath)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, `<section data-chapter="%d">`, count)
		b.WriteString(stripEnvelope(string(data)))
		b.WriteString(`</section>`)
		count++
	}
	if count == 0 {
		return "", 0, fmt.Errorf("%w: no readable chapters in %s", ErrInvalidArchive, a.path)
	}
	b.WriteString(`</body></html>`)
	return b.String(), count, nil
}
