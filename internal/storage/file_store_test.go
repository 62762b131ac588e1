package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pagemark/pkg/domain"
)

func TestImportBookCopiesFile(t *testing.T) {
	srcDir := t.TempDir()
	source := filepath.Join(srcDir, "My Great Novel.epub")
	if err := os.WriteFile(source, []byte("epub bytes"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	imported, err := fs.ImportBook(source)
	if err != nil {
		t.Fatalf("ImportBook: %v", err)
	}
	if imported.Format != domain.FormatEpub {
		t.Fatalf("Format = %q, want epub", imported.Format)
	}
	if imported.DisplayName != "My Great Novel" {
		t.Fatalf("DisplayName = %q", imported.DisplayName)
	}
	if !strings.HasSuffix(imported.FilePath, ".epub") {
		t.Fatalf("FilePath = %q, want .epub extension", imported.FilePath)
	}

	rc, err := fs.Open(imported.FilePath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil || string(data) != "epub bytes" {
		t.Fatalf("stored content = %q, %v", data, err)
	}

	// The copy must be independent of the original.
	if err := os.Remove(source); err != nil {
		t.Fatalf("remove original: %v", err)
	}
	if _, err := os.Stat(imported.FilePath); err != nil {
		t.Fatalf("library copy gone with the original: %v", err)
	}
}

func TestImportBookRejectsUnknownExtension(t *testing.T) {
	source := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(source, []byte("text"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, err := fs.ImportBook(source); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("ImportBook = %v, want ErrUnsupportedFormat", err)
	}
}

func TestImportBookMissingSource(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, err := fs.ImportBook(filepath.Join(t.TempDir(), "gone.pdf")); err == nil {
		t.Fatalf("ImportBook accepted a missing source")
	}
}

func TestSaveCover(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	path, err := fs.SaveCover([]byte{0x89, 0x50}, "png")
	if err != nil {
		t.Fatalf("SaveCover: %v", err)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Fatalf("cover path = %q, want .png", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("cover not written: %v", err)
	}
}

func TestRemoveMissingIsNoError(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := fs.Remove(filepath.Join(t.TempDir(), "never-there.epub")); err != nil {
		t.Fatalf("Remove missing = %v, want nil", err)
	}
	if err := fs.Remove(""); err != nil {
		t.Fatalf("Remove blank = %v, want nil", err)
	}
}
