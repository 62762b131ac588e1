package reader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pagemark/pkg/domain"
)

func TestPdfEngineOpenMissingFile(t *testing.T) {
	_, err := NewPdfEngine().Open(context.Background(), Source{FilePath: filepath.Join(t.TempDir(), "nope.pdf")})
	if !errors.Is(err, ErrFileMissing) {
		t.Fatalf("err = %v, want ErrFileMissing", err)
	}
}

func TestPdfEngineOpenResolvesInitialPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 stub"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	doc, err := NewPdfEngine().Open(context.Background(), Source{FilePath: path, InitialLocator: "pdf-page:7"})
	if err != nil {
		t.Fatalf("open pdf: %v", err)
	}
	if doc.Format != domain.FormatPdf {
		t.Fatalf("format = %q, want %q", doc.Format, domain.FormatPdf)
	}
	if doc.InitialPage != 7 {
		t.Fatalf("initial page = %d, want 7", doc.InitialPage)
	}
}

func TestPdfEngineOpenDefaultsToFirstPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 stub"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	for _, loc := range []string{"", "epub-scroll:0.5", "pdf-page:junk"} {
		doc, err := NewPdfEngine().Open(context.Background(), Source{FilePath: path, InitialLocator: loc})
		if err != nil {
			t.Fatalf("open pdf with locator %q: %v", loc, err)
		}
		if doc.InitialPage != 0 {
			t.Fatalf("initial page for locator %q = %d, want 0", loc, doc.InitialPage)
		}
	}
}
