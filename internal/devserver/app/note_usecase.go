// Package app содержит бизнес-логику devserver.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	clientEntities "notesboard/internal/client/domain/entities"
	"notesboard/internal/client/validation"
	"notesboard/internal/devserver/domain/entities"
	"notesboard/internal/devserver/ports/repositories"
	"notesboard/pkg/logger"
)

// MaxLimit ограничивает размер страницы.
const MaxLimit = 100

// Ошибки уровня бизнес-логики.
var (
	ErrNotFound      = errors.New("note not found")
	ErrInvalidParams = errors.New("invalid parameters")
)

const (
	LogNoteCreated = "note created"
	LogNoteUpdated = "note updated"
	LogNoteDeleted = "note deleted"
)

// Option настраивает NoteUseCase.
type Option func(*NoteUseCase)

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(uc *NoteUseCase) {
		uc.now = now
	}
}

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	noteRepo repositories.NoteRepository
	schema   *validation.Schema
	now      func() time.Time
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(noteRepo repositories.NoteRepository, opts ...Option) *NoteUseCase {
	uc := &NoteUseCase{
		noteRepo: noteRepo,
		schema:   validation.NewSchema(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ListNotes возвращает страницу заметок. page начинается с 1.
func (uc *NoteUseCase) ListNotes(ctx context.Context, page, limit int) ([]*entities.Note, error) {
	if page < 1 || limit < 1 || limit > MaxLimit {
		return nil, fmt.Errorf("%w: page=%d limit=%d", ErrInvalidParams, page, limit)
	}

	notes, err := uc.noteRepo.List(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	return notes, nil
}

// CreateNote проверяет поля и сохраняет новую заметку.
func (uc *NoteUseCase) CreateNote(ctx context.Context, title, content string) (*entities.Note, error) {
	if err := uc.validate(title, content); err != nil {
		return nil, err
	}

	note := entities.NewNote(title, content, uc.now())
	if err := uc.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	logger.Log(ctx).Info(ctx, LogNoteCreated, zap.String("id", note.ID))
	return note, nil
}

// GetNote возвращает заметку по ID.
func (uc *NoteUseCase) GetNote(ctx context.Context, noteID string) (*entities.Note, error) {
	note, err := uc.noteRepo.Get(ctx, noteID)
	if err != nil {
		return nil, mapRepoError("failed to get note", err)
	}
	return note, nil
}

// UpdateNote применяет частичное обновление. Итоговая заметка проходит ту же
// проверку, что и при создании.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, noteID string, patch entities.NotePatch) (*entities.Note, error) {
	note, err := uc.noteRepo.Get(ctx, noteID)
	if err != nil {
		return nil, mapRepoError("failed to get note", err)
	}

	if patch.Empty() {
		return note, nil
	}

	note.Apply(patch, uc.now())
	if err := uc.validate(note.Title, note.Content); err != nil {
		return nil, err
	}

	if err := uc.noteRepo.Update(ctx, note); err != nil {
		return nil, mapRepoError("failed to update note", err)
	}

	logger.Log(ctx).Info(ctx, LogNoteUpdated, zap.String("id", note.ID))
	return note, nil
}

// DeleteNote удаляет заметку.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, noteID string) error {
	if err := uc.noteRepo.Delete(ctx, noteID); err != nil {
		return mapRepoError("failed to delete note", err)
	}

	logger.Log(ctx).Info(ctx, LogNoteDeleted, zap.String("id", noteID))
	return nil
}

func (uc *NoteUseCase) validate(title, content string) error {
	_, err := uc.schema.Validate(clientEntities.NoteInput{Title: title, Content: content})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return nil
}

func mapRepoError(msg string, err error) error {
	if errors.Is(err, repositories.ErrNoteNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
