package reader

import (
	"context"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"pagemark/pkg/domain"
	"pagemark/pkg/locator"
)

// PdfEngine opens a paginated document. The initial page comes from the
// locator, falling back to the first page when the locator is absent or
// carries the wrong tag.
type PdfEngine struct{}

func NewPdfEngine() *PdfEngine { return &PdfEngine{} }

func (e *PdfEngine) Format() domain.BookFormat { return domain.FormatPdf }

func (e *PdfEngine) Open(_ context.Context, src Source) (*Document, error) {
	if _, err := os.Stat(src.FilePath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileMissing, src.FilePath)
	}
	initialPage, ok := locator.DecodePdfPage(src.InitialLocator)
	if !ok {
		initialPage = 0
	}
	return &Document{
		Format:         domain.FormatPdf,
		FilePath:       src.FilePath,
		InitialLocator: src.InitialLocator,
		PageCount:      pdfPageCount(src.FilePath),
		InitialPage:    initialPage,
	}, nil
}

// pdfPageCount is best-effort: a PDF the library cannot parse still opens at
// the locator's page, it just reports an unknown page count.
func pdfPageCount(filePath string) int {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return 0
	}
	defer f.Close()
	return r.NumPage()
}
