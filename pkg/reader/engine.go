// Package reader opens imported book files into renderable documents and
// runs in-book search. Formats are a closed set; engines are selected
// through a registry keyed by format.
package reader

import (
	"context"
	"errors"
	"fmt"

	"pagemark/pkg/domain"
)

var (
	// ErrFileMissing indicates the book file is gone from disk.
	ErrFileMissing = errors.New("book file missing")
	// ErrInvalidArchive indicates an EPUB that cannot be opened as a book.
	ErrInvalidArchive = errors.New("invalid epub archive")
)

// Source locates a book to open. Both formats need random access to the
// file, so engines read from the path directly.
type Source struct {
	FilePath       string
	InitialLocator string
}

// Engine opens a source into a Document for one format.
type Engine interface {
	Format() domain.BookFormat
	Open(ctx context.Context, src Source) (*Document, error)
}

// Registry resolves the engine for a format.
type Registry struct {
	engines map[domain.BookFormat]Engine
}

// NewRegistry indexes the given engines by format.
func NewRegistry(engines ...Engine) *Registry {
	byFormat := make(map[domain.BookFormat]Engine, len(engines))
	for _, engine := range engines {
		byFormat[engine.Format()] = engine
	}
	return &Registry{engines: byFormat}
}

// Get returns the engine registered for format.
func (r *Registry) Get(format domain.BookFormat) (Engine, error) {
	engine, ok := r.engines[format]
	if !ok {
		return nil, fmt.Errorf("no reader engine registered for %q", format)
	}
	return engine, nil
}
