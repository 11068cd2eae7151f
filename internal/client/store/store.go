// Package store хранит копию заметок сервера на время сессии клиента.
package store

import (
	"slices"
	"sync"

	"notesboard/internal/client/domain/entities"
)

// Store владеет коллекцией заметок. Все мутаторы тотальны: они никогда не
// возвращают ошибку. Уникальность идентификаторов предполагается, но не проверяется.
type Store struct {
	mu       sync.RWMutex
	notes    []entities.Note
	selected *entities.Note
}

// New создает пустое хранилище.
func New() *Store {
	return &Store{notes: []entities.Note{}}
}

// ReplaceAll заменяет коллекцию целиком, сохраняя порядок notes.
func (s *Store) ReplaceAll(notes []entities.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = slices.Clone(notes)
	if s.notes == nil {
		s.notes = []entities.Note{}
	}
}

// Append добавляет заметку в конец коллекции.
func (s *Store) Append(note entities.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, note)
}

// UpdateByID сливает поля note в запись с тем же ID.
// Возвращает false, если такой записи нет; коллекция при этом не меняется.
func (s *Store) UpdateByID(note entities.Note) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(note.ID)
	if idx < 0 {
		return false
	}
	s.notes[idx].Merge(note)
	if s.selected != nil && s.selected.ID == note.ID {
		selected := s.notes[idx]
		s.selected = &selected
	}
	return true
}

// RemoveByID удаляет все записи с указанным ID.
// Возвращает false, если удалять было нечего.
func (s *Store) RemoveByID(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.notes)
	s.notes = slices.DeleteFunc(s.notes, func(n entities.Note) bool { return n.ID == id })
	removed := len(s.notes) != before
	if removed && s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	return removed
}

// Notes возвращает копию коллекции.
func (s *Store) Notes() []entities.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.notes)
}

// Len возвращает размер коллекции.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Find ищет заметку по ID.
func (s *Store) Find(id string) (entities.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.notes[idx], true
	}
	return entities.Note{}, false
}

// Select делает заметку с указанным ID текущей. Пустой id сбрасывает выбор.
func (s *Store) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" {
		s.selected = nil
		return true
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	selected := s.notes[idx]
	s.selected = &selected
	return true
}

// Selected возвращает текущую заметку, если она выбрана.
func (s *Store) Selected() (entities.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return entities.Note{}, false
	}
	return *s.selected, true
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.notes, func(n entities.Note) bool { return n.ID == id })
}
