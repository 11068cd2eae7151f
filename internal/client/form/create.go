package form

import (
	"context"

	"notesboard/internal/client/domain/entities"
	"notesboard/internal/client/notify"
	"notesboard/internal/client/store"
)

// NoteCreator - часть API, нужная форме создания.
type NoteCreator interface {
	CreateNote(ctx context.Context, input entities.NoteInput) (*entities.Note, error)
}

// CreateForm создает заметку и добавляет ее в конец хранилища.
type CreateForm struct {
	base
	api   NoteCreator
	store *store.Store
}

// NewCreateForm открывает пустую форму создания.
func NewCreateForm(creator NoteCreator, st *store.Store, notifier notify.Notifier, opts ...Option) *CreateForm {
	f := &CreateForm{api: creator, store: st}
	f.init("create", notifier, entities.NoteInput{}, opts)
	return f
}

// Submit валидирует ввод и, если он корректен, отправляет его на сервер.
// Ошибки сервера превращаются в уведомление и отражаются в состоянии;
// ошибка возвращается только при повторной отправке или отправке в закрытую форму.
func (f *CreateForm) Submit(ctx context.Context, input entities.NoteInput) (State, error) {
	return f.submit(ctx, input, f.api.CreateNote, func(_ context.Context, note entities.Note) {
		f.store.Append(note)
	}, MsgNoteCreated)
}
