package form

import (
	"context"

	"go.uber.org/zap"

	"notesboard/internal/client/domain/entities"
	"notesboard/internal/client/notify"
	"notesboard/internal/client/store"
	"notesboard/pkg/logger"
)

// NoteUpdater - часть API, нужная форме редактирования.
type NoteUpdater interface {
	UpdateNote(ctx context.Context, id string, input entities.NoteInput) (*entities.Note, error)
}

// UpdateForm редактирует заметку. Поля заполняются из note один раз при открытии;
// последующие изменения этой заметки в хранилище форму не затрагивают.
type UpdateForm struct {
	base
	api    NoteUpdater
	store  *store.Store
	noteID string
}

// NewUpdateForm открывает форму редактирования note.
func NewUpdateForm(updater NoteUpdater, st *store.Store, notifier notify.Notifier, note entities.Note, opts ...Option) *UpdateForm {
	f := &UpdateForm{api: updater, store: st, noteID: note.ID}
	f.init("update", notifier, note.Input(), opts)
	return f
}

// NoteID возвращает ID редактируемой заметки.
func (f *UpdateForm) NoteID() string {
	return f.noteID
}

// Submit валидирует ввод и отправляет изменения заметки на сервер.
func (f *UpdateForm) Submit(ctx context.Context, input entities.NoteInput) (State, error) {
	call := func(ctx context.Context, in entities.NoteInput) (*entities.Note, error) {
		return f.api.UpdateNote(ctx, f.noteID, in)
	}
	return f.submit(ctx, input, call, f.apply, MsgNoteUpdated)
}

func (f *UpdateForm) apply(ctx context.Context, note entities.Note) {
	if !f.store.UpdateByID(note) {
		logger.Log(ctx).Debug(ctx, logStoreMissingID, zap.String("note_id", note.ID))
	}
}
