// Package entities содержит доменные сущности devserver.
package entities

import (
	"time"

	"github.com/google/uuid"
)

// Note представляет собой заметку на сервере.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewNote создает заметку с новым идентификатором и метками времени now.
func NewNote(title, content string, now time.Time) *Note {
	return &Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NotePatch описывает частичное обновление. Nil-поля не меняются.
type NotePatch struct {
	Title   *string
	Content *string
}

// Empty сообщает, что патч ничего не меняет.
func (p NotePatch) Empty() bool {
	return p.Title == nil && p.Content == nil
}

// Apply применяет патч к заметке и обновляет UpdatedAt.
func (n *Note) Apply(p NotePatch, now time.Time) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	n.UpdatedAt = now
}
