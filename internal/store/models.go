package store

import (
	"time"

	"pagemark/pkg/domain"
)

// GORM models used for persistence. Timestamps are epoch millis so SQLite
// comparisons stay numeric.
type BookModel struct {
	ID                  string `gorm:"primaryKey"`
	Title               string `gorm:"not null"`
	Author              string
	Format              string `gorm:"not null"`
	FilePath            string `gorm:"not null"`
	CoverImagePath      string
	CreatedAtMs         int64 `gorm:"not null"`
	LastOpenedAtMs      int64
	ProgressLocator     string
	ProgressPercent     float64
	ProgressUpdatedAtMs int64
}

type HighlightModel struct {
	ID          string `gorm:"primaryKey"`
	BookID      string `gorm:"not null;index"`
	Locator     string `gorm:"not null"`
	Quote       string `gorm:"not null"`
	ColorHex    string
	CreatedAtMs int64 `gorm:"not null;index"`
}

type NoteModel struct {
	ID          string `gorm:"primaryKey"`
	BookID      string `gorm:"not null;index"`
	Locator     string `gorm:"not null"`
	Text        string `gorm:"not null"`
	CreatedAtMs int64  `gorm:"not null"`
	UpdatedAtMs int64  `gorm:"not null;index"`
}

func bookToModel(b domain.BookMetadata) BookModel {
	model := BookModel{
		ID:             b.ID,
		Title:          b.Title,
		Author:         b.Author,
		Format:         string(b.Format),
		FilePath:       b.FilePath,
		CoverImagePath: b.CoverImagePath,
		CreatedAtMs:    time.Now().UnixMilli(),
	}
	if b.LastOpenedAt != nil {
		model.LastOpenedAtMs = b.LastOpenedAt.UnixMilli()
	}
	return model
}

func bookFromModel(m BookModel) domain.BookMetadata {
	book := domain.BookMetadata{
		ID:             m.ID,
		Title:          m.Title,
		Author:         m.Author,
		Format:         domain.BookFormat(m.Format),
		FilePath:       m.FilePath,
		CoverImagePath: m.CoverImagePath,
	}
	if m.LastOpenedAtMs > 0 {
		t := time.UnixMilli(m.LastOpenedAtMs)
		book.LastOpenedAt = &t
	}
	return book
}

func progressFromModel(m BookModel) domain.ReadingProgress {
	return domain.ReadingProgress{
		BookID:    m.ID,
		Locator:   m.ProgressLocator,
		Percent:   m.ProgressPercent,
		UpdatedAt: time.UnixMilli(m.ProgressUpdatedAtMs),
	}
}

func highlightToModel(h domain.Highlight) HighlightModel {
	return HighlightModel{
		ID:          h.ID,
		BookID:      h.BookID,
		Locator:     h.Locator,
		Quote:       h.Quote,
		ColorHex:    h.ColorHex,
		CreatedAtMs: h.CreatedAt.UnixMilli(),
	}
}

func highlightFromModel(m HighlightModel) domain.Highlight {
	return domain.Highlight{
		ID:        m.ID,
		BookID:    m.BookID,
		Locator:   m.Locator,
		Quote:     m.Quote,
		ColorHex:  m.ColorHex,
		CreatedAt: time.UnixMilli(m.CreatedAtMs),
	}
}

func noteToModel(n domain.Note) NoteModel {
	return NoteModel{
		ID:          n.ID,
		BookID:      n.BookID,
		Locator:     n.Locator,
		Text:        n.Text,
		CreatedAtMs: n.CreatedAt.UnixMilli(),
		UpdatedAtMs: n.UpdatedAt.UnixMilli(),
	}
}

func noteFromModel(m NoteModel) domain.Note {
	return domain.Note{
		ID:        m.ID,
		BookID:    m.BookID,
		Locator:   m.Locator,
		Text:      m.Text,
		CreatedAt: time.UnixMilli(m.CreatedAtMs),
		UpdatedAt: time.UnixMilli(m.UpdatedAtMs),
	}
}
