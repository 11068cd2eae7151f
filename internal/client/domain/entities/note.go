// Package entities содержит доменные типы клиента доски заметок.
package entities

import "time"

// Значения пагинации по умолчанию.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Note представляет заметку в том виде, в каком ее возвращает сервер.
// Идентификатор всегда назначается сервером.
type Note struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// NoteInput содержит редактируемые пользователем поля заметки.
type NoteInput struct {
	Title   string `json:"title" validate:"required,min=1"`
	Content string `json:"content" validate:"required,min=1"`
}

// Input возвращает редактируемые поля заметки.
func (n Note) Input() NoteInput {
	return NoteInput{Title: n.Title, Content: n.Content}
}

// Merge переносит в n непустые поля other. Идентификатор не меняется.
// Пустые поля пропускаются намеренно: ответ сервера с неполной заметкой
// не должен стирать уже показанные значения.
func (n *Note) Merge(other Note) {
	if other.Title != "" {
		n.Title = other.Title
	}
	if other.Content != "" {
		n.Content = other.Content
	}
	if other.CreatedAt != nil {
		n.CreatedAt = other.CreatedAt
	}
	if other.UpdatedAt != nil {
		n.UpdatedAt = other.UpdatedAt
	}
}

// Page - курсор пагинации, отправляемый при запросе списка.
type Page struct {
	Page  int
	Limit int
}

// DefaultPageCursor возвращает первую страницу с лимитом по умолчанию.
func DefaultPageCursor() Page {
	return Page{Page: DefaultPage, Limit: DefaultLimit}
}

// Normalize подставляет значения по умолчанию вместо неположительных.
func (p Page) Normalize() Page {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}
