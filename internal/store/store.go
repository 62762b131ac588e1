// Package store persists the library catalog, reading progress, and
// annotations in a local SQLite database.
package store

import (
	"time"

	"pagemark/pkg/domain"
)

// Store defines persistence operations for books, progress, and annotations.
type Store interface {
	// books
	SaveBook(domain.BookMetadata) error
	GetBook(id string) (domain.BookMetadata, bool, error)
	ListBooks() ([]domain.BookMetadata, error)
	DeleteBook(id string) error
	TouchLastOpened(id string, at time.Time) error

	// progress: one resume point per book, percent clamped to [0,1]
	SaveProgress(domain.ReadingProgress) error
	GetProgress(bookID string) (domain.ReadingProgress, bool, error)

	// annotations
	SaveHighlight(domain.Highlight) error
	ListHighlights(bookID string) ([]domain.Highlight, error)
	DeleteHighlight(id string) error
	SaveNote(domain.Note) error
	ListNotes(bookID string) ([]domain.Note, error)
	DeleteNote(id string) error
}
