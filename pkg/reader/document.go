package reader

import "pagemark/pkg/domain"

// Document is an opened book ready for rendering. The format set is fixed,
// so one struct carries the per-format fields instead of an open hierarchy:
// HTMLContent/ChapterCount are populated for EPUB, PageCount/InitialPage for
// PDF.
type Document struct {
	Format         domain.BookFormat
	FilePath       string
	InitialLocator string

	// EPUB: the spine-ordered chapters flattened into one HTML unit, so the
	// whole book can be addressed by a single scroll fraction.
	HTMLContent  string
	ChapterCount int

	// PDF
	PageCount   int
	InitialPage int
}
