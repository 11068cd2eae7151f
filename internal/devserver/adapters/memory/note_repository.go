// Package memory хранит заметки в памяти процесса.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"notesboard/internal/devserver/domain/entities"
	"notesboard/internal/devserver/ports/repositories"
)

// NoteRepository реализует repositories.NoteRepository в памяти.
type NoteRepository struct {
	mu    sync.RWMutex
	order []string
	notes map[string]entities.Note
}

// NewNoteRepository создает пустое хранилище.
func NewNoteRepository() *NoteRepository {
	return &NoteRepository{notes: make(map[string]entities.Note)}
}

// List возвращает страницу заметок в порядке создания.
func (r *NoteRepository) List(_ context.Context, page, limit int) ([]*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	offset := repositories.Offset(page, limit)
	if limit <= 0 || offset >= len(r.order) {
		return []*entities.Note{}, nil
	}

	end := min(offset+limit, len(r.order))
	result := make([]*entities.Note, 0, end-offset)
	for _, id := range r.order[offset:end] {
		note := r.notes[id]
		result = append(result, &note)
	}

	return result, nil
}

// Create сохраняет новую заметку.
func (r *NoteRepository) Create(_ context.Context, note *entities.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[note.ID]; ok {
		return fmt.Errorf("note %s already exists", note.ID)
	}

	r.notes[note.ID] = *note
	r.order = append(r.order, note.ID)

	return nil
}

// Get возвращает заметку по ID.
func (r *NoteRepository) Get(_ context.Context, id string) (*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[id]
	if !ok {
		return nil, repositories.ErrNoteNotFound
	}

	return &note, nil
}

// Update перезаписывает существующую заметку.
func (r *NoteRepository) Update(_ context.Context, note *entities.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[note.ID]; !ok {
		return repositories.ErrNoteNotFound
	}

	r.notes[note.ID] = *note

	return nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return repositories.ErrNoteNotFound
	}

	delete(r.notes, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })

	return nil
}

// Close ничего не делает.
func (r *NoteRepository) Close() error {
	return nil
}
