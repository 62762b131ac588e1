package domain

import "time"

type BookFormat string

const (
	FormatEpub BookFormat = "epub"
	FormatPdf  BookFormat = "pdf"
)

// BookMetadata describes an imported book. Identity is the ID assigned at
// import time; re-importing the same file produces a new book.
type BookMetadata struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Author         string     `json:"author,omitempty"`
	Format         BookFormat `json:"format"`
	FilePath       string     `json:"filePath"`
	CoverImagePath string     `json:"coverImagePath,omitempty"`
	LastOpenedAt   *time.Time `json:"lastOpenedAt,omitempty"`
}

// ReadingProgress is the single resume point for a book. Percent is always
// stored clamped to [0,1].
type ReadingProgress struct {
	BookID    string    `json:"bookId"`
	Locator   string    `json:"locator"`
	Percent   float64   `json:"percent"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OpenedBook pairs book metadata with the locator reading should resume from.
type OpenedBook struct {
	Metadata     BookMetadata `json:"metadata"`
	StartLocator string       `json:"startLocator,omitempty"`
}

// SearchResult is one in-book match, addressable through its locator.
type SearchResult struct {
	Locator string  `json:"locator"`
	Snippet string  `json:"snippet"`
	Percent float64 `json:"percent"`
}

// Highlight marks a passage at a locator.
type Highlight struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	Locator   string    `json:"locator"`
	Quote     string    `json:"quote"`
	ColorHex  string    `json:"colorHex"`
	CreatedAt time.Time `json:"createdAt"`
}

// Note is free-form reader text anchored at a locator.
type Note struct {
	ID        string    `json:"id"`
	BookID    string    `json:"bookId"`
	Locator   string    `json:"locator"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
