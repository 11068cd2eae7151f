// Package api определяет порт удаленного API заметок.
package api

import (
	"context"
	"errors"

	"notesboard/internal/client/domain/entities"
)

// MsgGenericFailure показывается, когда из ответа сервера не удалось извлечь сообщение.
const MsgGenericFailure = "Something bad happened"

// ErrMalformedResponse возвращается, когда успешный ответ не удалось разобрать.
var ErrMalformedResponse = errors.New("malformed response")

// NotesAPI - граница с сервером заметок. Реализации не изменяют общее состояние:
// применение результата к хранилищу остается на вызывающей стороне.
type NotesAPI interface {
	// ListNotes возвращает заметки одной страницы в порядке сервера.
	ListNotes(ctx context.Context, page entities.Page) ([]entities.Note, error)

	// CreateNote создает заметку и возвращает ее с назначенным сервером ID.
	CreateNote(ctx context.Context, input entities.NoteInput) (*entities.Note, error)

	// UpdateNote обновляет заметку id.
	UpdateNote(ctx context.Context, id string, input entities.NoteInput) (*entities.Note, error)

	// DeleteNote удаляет заметку id.
	DeleteNote(ctx context.Context, id string) error
}

// APIError - неуспешный HTTP-ответ сервера.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// UserMessage возвращает текст уведомления для ошибки удаленного вызова.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return MsgGenericFailure
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgGenericFailure
}
