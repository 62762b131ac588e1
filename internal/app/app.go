// Package app is the core application service: it wires the library store,
// file storage, reader engines, and the assistant behind one API the CLI
// calls into.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pagemark/internal/storage"
	"pagemark/internal/store"
	"pagemark/internal/util"
	"pagemark/pkg/ai"
	"pagemark/pkg/domain"
	"pagemark/pkg/reader"
)

// Config holds the core application dependencies.
type Config struct {
	Store     store.Store
	Files     *storage.FileStore
	Engines   *reader.Registry
	Assistant *ai.Assistant
}

// App is the core application service.
type App struct {
	store     store.Store
	files     *storage.FileStore
	engines   *reader.Registry
	assistant *ai.Assistant
}

// New validates the wiring and constructs the application.
func New(cfg Config) (*App, error) {
	if cfg.Store == nil || cfg.Files == nil || cfg.Engines == nil || cfg.Assistant == nil {
		return nil, fmt.Errorf("app requires store, files, engines, and assistant")
	}
	return &App{
		store:     cfg.Store,
		files:     cfg.Files,
		engines:   cfg.Engines,
		assistant: cfg.Assistant,
	}, nil
}

// ImportBook copies the file into the library, extracts what metadata the
// format offers, and registers the book. Each import is a new book even for
// a file imported before.
func (a *App) ImportBook(sourcePath string) (domain.BookMetadata, error) {
	imported, err := a.files.ImportBook(sourcePath)
	if err != nil {
		return domain.BookMetadata{}, err
	}
	book := domain.BookMetadata{
		ID:       uuid.NewString(),
		Title:    imported.DisplayName,
		Format:   imported.Format,
		FilePath: imported.FilePath,
	}
	switch imported.Format {
	case domain.FormatEpub:
		meta := reader.ExtractEpubMetadata(imported.FilePath)
		if meta.Title != "" {
			book.Title = meta.Title
		}
		book.Author = meta.Author
		if len(meta.Cover) > 0 {
			coverPath, coverErr := a.files.SaveCover(meta.Cover, meta.CoverExt)
			if coverErr == nil {
				book.CoverImagePath = coverPath
			}
		}
	case domain.FormatPdf:
		book.Title = titleFromName(imported.DisplayName)
	}
	if err := a.store.SaveBook(book); err != nil {
		_ = a.files.Remove(imported.FilePath)
		_ = a.files.Remove(book.CoverImagePath)
		return domain.BookMetadata{}, fmt.Errorf("save book: %w", err)
	}
	return book, nil
}

// Library returns all books, most recently opened first.
func (a *App) Library() ([]domain.BookMetadata, error) {
	return a.store.ListBooks()
}

// GetBook retrieves book metadata by ID.
func (a *App) GetBook(id string) (domain.BookMetadata, error) {
	book, found, err := a.store.GetBook(id)
	if err != nil {
		return domain.BookMetadata{}, err
	}
	if !found {
		return domain.BookMetadata{}, ErrBookNotFound
	}
	return book, nil
}

// DeleteBook removes the book, its stored files, and its annotations.
func (a *App) DeleteBook(id string) error {
	book, err := a.GetBook(id)
	if err != nil {
		return err
	}
	if err := a.store.DeleteBook(id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	_ = a.files.Remove(book.FilePath)
	_ = a.files.Remove(book.CoverImagePath)
	return nil
}

// OpenBook loads the book through its format engine, resuming at the saved
// progress locator when one exists.
func (a *App) OpenBook(ctx context.Context, id string) (*reader.Document, domain.OpenedBook, error) {
	book, err := a.GetBook(id)
	if err != nil {
		return nil, domain.OpenedBook{}, err
	}
	engine, err := a.engines.Get(book.Format)
	if err != nil {
		return nil, domain.OpenedBook{}, err
	}

	var startLocator string
	if progress, found, progErr := a.store.GetProgress(id); progErr == nil && found {
		startLocator = progress.Locator
	}
	doc, err := engine.Open(ctx, reader.Source{
		FilePath:       book.FilePath,
		InitialLocator: startLocator,
	})
	if err != nil {
		return nil, domain.OpenedBook{}, err
	}
	now := time.Now()
	if err := a.store.TouchLastOpened(id, now); err != nil {
		return nil, domain.OpenedBook{}, fmt.Errorf("touch last opened: %w", err)
	}
	book.LastOpenedAt = &now
	return doc, domain.OpenedBook{Metadata: book, StartLocator: startLocator}, nil
}

// SaveProgress records the single resume point for a book.
func (a *App) SaveProgress(bookID, locator string, percent float64) error {
	if _, err := a.GetBook(bookID); err != nil {
		return err
	}
	return a.store.SaveProgress(domain.ReadingProgress{
		BookID:    bookID,
		Locator:   locator,
		Percent:   percent,
		UpdatedAt: time.Now(),
	})
}

// Progress returns the saved resume point, reporting false if none exists.
func (a *App) Progress(bookID string) (domain.ReadingProgress, bool, error) {
	if _, err := a.GetBook(bookID); err != nil {
		return domain.ReadingProgress{}, false, err
	}
	return a.store.GetProgress(bookID)
}

// SearchInBook runs the format-appropriate in-book search.
func (a *App) SearchInBook(bookID, query string) ([]domain.SearchResult, error) {
	book, err := a.GetBook(bookID)
	if err != nil {
		return nil, err
	}
	return reader.Search(book.Format, book.FilePath, query), nil
}

// AIResult is the outcome of an assistant action: either a live answer or
// confirmation that the request was queued for a later flush.
type AIResult struct {
	Answer string
	Queued bool
}

// Ask sends a free-form question about a book to the assistant.
func (a *App) Ask(ctx context.Context, bookID, question string, queueIfOffline bool) (AIResult, error) {
	book, err := a.GetBook(bookID)
	if err != nil {
		return AIResult{}, err
	}
	req := ai.NewQuestionRequest(book.ID, book.Title, book.Author, question)
	return a.runAssistant(ctx, req, queueIfOffline)
}

// Explain asks the assistant to explain a selected passage.
func (a *App) Explain(ctx context.Context, bookID, selectedText string, queueIfOffline bool) (AIResult, error) {
	book, err := a.GetBook(bookID)
	if err != nil {
		return AIResult{}, err
	}
	req := ai.NewExplainRequest(book.ID, book.Title, selectedText)
	return a.runAssistant(ctx, req, queueIfOffline)
}

// Translate asks the assistant to translate a selected passage.
func (a *App) Translate(ctx context.Context, bookID, selectedText, targetLanguage string, queueIfOffline bool) (AIResult, error) {
	book, err := a.GetBook(bookID)
	if err != nil {
		return AIResult{}, err
	}
	req := ai.NewTranslateRequest(book.ID, book.Title, selectedText, targetLanguage)
	return a.runAssistant(ctx, req, queueIfOffline)
}

// SimilarBooks asks the assistant for reading recommendations.
func (a *App) SimilarBooks(ctx context.Context, bookID string, queueIfOffline bool) (AIResult, error) {
	book, err := a.GetBook(bookID)
	if err != nil {
		return AIResult{}, err
	}
	req := ai.NewSimilarBooksRequest(book.ID, book.Title, book.Author)
	return a.runAssistant(ctx, req, queueIfOffline)
}

// SummarizeSection asks the assistant to summarize provided section text.
func (a *App) SummarizeSection(ctx context.Context, bookID, sectionText string, queueIfOffline bool) (AIResult, error) {
	book, err := a.GetBook(bookID)
	if err != nil {
		return AIResult{}, err
	}
	req := ai.NewSectionSummaryRequest(book.ID, book.Title, sectionText)
	return a.runAssistant(ctx, req, queueIfOffline)
}

// runAssistant executes a request, optionally deferring it to the queue
// when only the network is missing. Disabled or key-less states never queue:
// a flush could not help until the user changes settings.
func (a *App) runAssistant(ctx context.Context, req ai.QueuedRequest, queueIfOffline bool) (AIResult, error) {
	answer, err := a.assistant.Run(ctx, req)
	if err != nil {
		if queueIfOffline && errors.Is(err, ai.ErrNetworkUnavailable) {
			if enqueueErr := a.assistant.Enqueue(req); enqueueErr != nil {
				return AIResult{}, fmt.Errorf("enqueue request: %w", enqueueErr)
			}
			return AIResult{Queued: true}, nil
		}
		return AIResult{}, err
	}
	return AIResult{Answer: answer}, nil
}

// FlushQueue replays deferred assistant requests.
func (a *App) FlushQueue(ctx context.Context) (int, error) {
	return a.assistant.FlushQueue(ctx)
}

// AICapability reports the current assistant readiness flags.
func (a *App) AICapability(ctx context.Context) ai.Capability {
	return a.assistant.Capability(ctx)
}

// AddHighlight records a highlighted passage.
func (a *App) AddHighlight(bookID, locator, quote, colorHex string) (domain.Highlight, error) {
	if _, err := a.GetBook(bookID); err != nil {
		return domain.Highlight{}, err
	}
	h := domain.Highlight{
		ID:        util.NewID(),
		BookID:    bookID,
		Locator:   locator,
		Quote:     quote,
		ColorHex:  colorHex,
		CreatedAt: time.Now(),
	}
	if err := a.store.SaveHighlight(h); err != nil {
		return domain.Highlight{}, fmt.Errorf("save highlight: %w", err)
	}
	return h, nil
}

// Highlights lists a book's highlights, newest first.
func (a *App) Highlights(bookID string) ([]domain.Highlight, error) {
	if _, err := a.GetBook(bookID); err != nil {
		return nil, err
	}
	return a.store.ListHighlights(bookID)
}

// RemoveHighlight deletes a highlight.
func (a *App) RemoveHighlight(id string) error {
	return a.store.DeleteHighlight(id)
}

// AddNote records a note anchored at a locator.
func (a *App) AddNote(bookID, locator, text string) (domain.Note, error) {
	if _, err := a.GetBook(bookID); err != nil {
		return domain.Note{}, err
	}
	now := time.Now()
	n := domain.Note{
		ID:        util.NewID(),
		BookID:    bookID,
		Locator:   locator,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.store.SaveNote(n); err != nil {
		return domain.Note{}, fmt.Errorf("save note: %w", err)
	}
	return n, nil
}

// Notes lists a book's notes, most recently edited first.
func (a *App) Notes(bookID string) ([]domain.Note, error) {
	if _, err := a.GetBook(bookID); err != nil {
		return nil, err
	}
	return a.store.ListNotes(bookID)
}

// RemoveNote deletes a note.
func (a *App) RemoveNote(id string) error {
	return a.store.DeleteNote(id)
}

func titleFromName(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "Untitled"
	}
	return name
}
