// Package storage copies imported book files and extracted covers into the
// application data directory, so the library never depends on the original
// file staying where the user picked it.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"pagemark/pkg/domain"
)

// ErrUnsupportedFormat is returned for files that are neither EPUB nor PDF.
var ErrUnsupportedFormat = fmt.Errorf("unsupported book format")

// ImportedFile describes a book file copied into the library.
type ImportedFile struct {
	FilePath    string
	Format      domain.BookFormat
	DisplayName string
}

// FileStore owns the books/ and covers/ directories under the base path.
type FileStore struct {
	basePath string
}

// NewFileStore creates the storage directories if missing.
func NewFileStore(basePath string) (*FileStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	for _, sub := range []string{"books", "covers"} {
		if err := os.MkdirAll(filepath.Join(basePath, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	return &FileStore{basePath: basePath}, nil
}

// ImportBook copies sourcePath into books/ under a fresh name and reports
// the detected format plus a display name derived from the filename.
func (f *FileStore) ImportBook(sourcePath string) (ImportedFile, error) {
	format, ext, err := detectFormat(sourcePath)
	if err != nil {
		return ImportedFile{}, err
	}
	src, err := os.Open(sourcePath)
	if err != nil {
		return ImportedFile{}, fmt.Errorf("open source file: %w", err)
	}
	defer src.Close()

	target := filepath.Join(f.basePath, "books", uuid.NewString()+ext)
	out, err := os.Create(target)
	if err != nil {
		return ImportedFile{}, fmt.Errorf("create library file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, src); err != nil {
		os.Remove(target)
		return ImportedFile{}, fmt.Errorf("copy book file: %w", err)
	}
	return ImportedFile{
		FilePath:    target,
		Format:      format,
		DisplayName: displayName(sourcePath),
	}, nil
}

// SaveCover writes extracted cover bytes into covers/ and returns the path.
func (f *FileStore) SaveCover(data []byte, ext string) (string, error) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	target := filepath.Join(f.basePath, "covers", uuid.NewString()+ext)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write cover: %w", err)
	}
	return target, nil
}

// Remove deletes a stored file. Missing files are not an error.
func (f *FileStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stored file: %w", err)
	}
	return nil
}

// Open returns a reader over a stored book file.
func (f *FileStore) Open(path string) (io.ReadCloser, error) {
	rc, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open library file: %w", err)
	}
	return rc, nil
}

func detectFormat(path string) (domain.BookFormat, string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".epub":
		return domain.FormatEpub, ".epub", nil
	case ".pdf":
		return domain.FormatPdf, ".pdf", nil
	default:
		return "", "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func displayName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.TrimSpace(name)
	if name == "" {
		return "Untitled"
	}
	return name
}
