// Package dto содержит структуры запросов и ответов HTTP API devserver.
package dto

import (
	"time"

	"notesboard/internal/devserver/domain/entities"
)

// Значения поля status в ответах.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// CreateNoteRequest содержит данные для создания заметки.
type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateNoteRequest содержит данные для частичного обновления заметки.
type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Patch переводит запрос в доменный патч.
func (r UpdateNoteRequest) Patch() entities.NotePatch {
	return entities.NotePatch{Title: r.Title, Content: r.Content}
}

// Note представляет заметку в ответе.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromEntity конвертирует доменную заметку.
func FromEntity(n *entities.Note) *Note {
	return &Note{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// ListNotesResponse отвечает на GET /notes.
type ListNotesResponse struct {
	Status  string  `json:"status"`
	Results int     `json:"results"`
	Notes   []*Note `json:"notes"`
}

// NoteData оборачивает заметку в ответе на создание.
type NoteData struct {
	Note *Note `json:"note"`
}

// CreateNoteResponse отвечает на POST /notes/. Заметка вложена в data.
type CreateNoteResponse struct {
	Status string   `json:"status"`
	Data   NoteData `json:"data"`
}

// UpdateNoteResponse отвечает на PATCH /notes/{id} и GET /notes/{id}.
// Заметка лежит на верхнем уровне.
type UpdateNoteResponse struct {
	Status string `json:"status"`
	Note   *Note  `json:"note"`
}

// FailResponse описывает ошибку запроса.
type FailResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DetailResponse описывает ошибку в форме {"detail": ...}.
type DetailResponse struct {
	Detail string `json:"detail"`
}
