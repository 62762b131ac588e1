package store

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"pagemark/pkg/domain"
)

// GormStore implements Store using GORM over a local SQLite file.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens (or creates) the database and runs auto-migrations.
func NewGormStore(dbPath string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&BookModel{}, &HighlightModel{}, &NoteModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// SaveBook stores or updates book metadata. Progress and open-time columns
// are owned by their own operations and survive a metadata re-save.
func (s *GormStore) SaveBook(b domain.BookMetadata) error {
	model := bookToModel(b)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "author", "format", "file_path", "cover_image_path"}),
	}).Create(&model).Error
}

// GetBook retrieves a book by ID.
func (s *GormStore) GetBook(id string) (domain.BookMetadata, bool, error) {
	var model BookModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.BookMetadata{}, false, nil
		}
		return domain.BookMetadata{}, false, err
	}
	return bookFromModel(model), true, nil
}

// ListBooks returns the library, most recently opened first; never-opened
// books follow in import order.
func (s *GormStore) ListBooks() ([]domain.BookMetadata, error) {
	var models []BookModel
	if err := s.db.Order("last_opened_at_ms DESC, created_at_ms DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.BookMetadata, 0, len(models))
	for _, m := range models {
		res = append(res, bookFromModel(m))
	}
	return res, nil
}

// DeleteBook removes the book row and its annotations.
func (s *GormStore) DeleteBook(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&HighlightModel{}, "book_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&NoteModel{}, "book_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&BookModel{}, "id = ?", id).Error
	})
}

// TouchLastOpened records when the book was last opened.
func (s *GormStore) TouchLastOpened(id string, at time.Time) error {
	return s.db.Model(&BookModel{}).
		Where("id = ?", id).
		Update("last_opened_at_ms", at.UnixMilli()).Error
}

// SaveProgress updates the single resume point on the book row. Percent is
// clamped to [0,1] before it hits the database.
func (s *GormStore) SaveProgress(p domain.ReadingProgress) error {
	percent := p.Percent
	if percent < 0 {
		percent = 0
	}
	if percent > 1 {
		percent = 1
	}
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	return s.db.Model(&BookModel{}).
		Where("id = ?", p.BookID).
		Updates(map[string]any{
			"progress_locator":       p.Locator,
			"progress_percent":       percent,
			"progress_updated_at_ms": updatedAt.UnixMilli(),
		}).Error
}

// GetProgress returns the book's resume point, reporting false when the
// book has never saved one.
func (s *GormStore) GetProgress(bookID string) (domain.ReadingProgress, bool, error) {
	var model BookModel
	if err := s.db.First(&model, "id = ?", bookID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.ReadingProgress{}, false, nil
		}
		return domain.ReadingProgress{}, false, err
	}
	if model.ProgressUpdatedAtMs == 0 {
		return domain.ReadingProgress{}, false, nil
	}
	return progressFromModel(model), true, nil
}

// SaveHighlight stores or updates a highlight.
func (s *GormStore) SaveHighlight(h domain.Highlight) error {
	model := highlightToModel(h)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"locator", "quote", "color_hex"}),
	}).Create(&model).Error
}

// ListHighlights returns a book's highlights, newest first.
func (s *GormStore) ListHighlights(bookID string) ([]domain.Highlight, error) {
	var models []HighlightModel
	if err := s.db.Where("book_id = ?", bookID).Order("created_at_ms DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Highlight, 0, len(models))
	for _, m := range models {
		res = append(res, highlightFromModel(m))
	}
	return res, nil
}

// DeleteHighlight removes a highlight by ID.
func (s *GormStore) DeleteHighlight(id string) error {
	return s.db.Delete(&HighlightModel{}, "id = ?", id).Error
}

// SaveNote stores or updates a note.
func (s *GormStore) SaveNote(n domain.Note) error {
	model := noteToModel(n)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"locator", "text", "updated_at_ms"}),
	}).Create(&model).Error
}

// ListNotes returns a book's notes, most recently edited first.
func (s *GormStore) ListNotes(bookID string) ([]domain.Note, error) {
	var models []NoteModel
	if err := s.db.Where("book_id = ?", bookID).Order("updated_at_ms DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Note, 0, len(models))
	for _, m := range models {
		res = append(res, noteFromModel(m))
	}
	return res, nil
}

// DeleteNote removes a note by ID.
func (s *GormStore) DeleteNote(id string) error {
	return s.db.Delete(&NoteModel{}, "id = ?", id).Error
}
