// Package repositories описывает интерфейсы хранилищ devserver.
package repositories

import (
	"context"
	"errors"

	"notesboard/internal/devserver/domain/entities"
)

// ErrNoteNotFound возвращается, если заметки с таким ID нет.
var ErrNoteNotFound = errors.New("note not found")

// NoteRepository определяет интерфейс для работы с хранилищем заметок.
// Заметки возвращаются в порядке создания.
type NoteRepository interface {
	List(ctx context.Context, page, limit int) ([]*entities.Note, error)
	Create(ctx context.Context, note *entities.Note) error
	Get(ctx context.Context, id string) (*entities.Note, error)
	Update(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// Offset переводит номер страницы (с 1) и размер в смещение.
func Offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
