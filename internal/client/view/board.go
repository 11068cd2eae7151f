// Package view отображает коллекцию заметок и открывает формы над ней.
package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"notesboard/internal/client/domain/entities"
	"notesboard/internal/client/form"
	"notesboard/internal/client/notify"
	"notesboard/internal/client/ports/api"
	"notesboard/internal/client/store"
	"notesboard/pkg/logger"
)

// Сообщения Board.
const (
	MsgNoteDeleted = "Note deleted successfully"
	MsgAddNewNote  = "+ Add new note"
	MsgNoNotes     = "(no notes)"

	logBoardMounted  = "board mounted"
	logFetchFailed   = "failed to fetch notes"
	logDeleteFailed  = "failed to delete note"
	logDeleteMissing = "deleted note was not in store"

	timeLayout = "2006-01-02 15:04"
)

// ErrNoteNotFound возвращается, когда заметки нет в хранилище.
var ErrNoteNotFound = errors.New("note not found")

// Board связывает API, хранилище и уведомления.
type Board struct {
	api      api.NotesAPI
	store    *store.Store
	notifier notify.Notifier
	page     entities.Page
	formOpts []form.Option
}

// BoardOption настраивает Board.
type BoardOption func(*Board)

// WithPage задает курсор пагинации для загрузки списка.
func WithPage(page entities.Page) BoardOption {
	return func(b *Board) { b.page = page.Normalize() }
}

// WithFormOptions передает опции всем открываемым формам.
func WithFormOptions(opts ...form.Option) BoardOption {
	return func(b *Board) { b.formOpts = append(b.formOpts, opts...) }
}

// NewBoard создает Board.
func NewBoard(notesAPI api.NotesAPI, st *store.Store, notifier notify.Notifier, opts ...BoardOption) *Board {
	b := &Board{
		api:      notesAPI,
		store:    st,
		notifier: notifier,
		page:     entities.DefaultPageCursor(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Store возвращает хранилище Board.
func (b *Board) Store() *store.Store {
	return b.store
}

// Page возвращает текущий курсор пагинации.
func (b *Board) Page() entities.Page {
	return b.page
}

// Mount загружает текущую страницу и заменяет ею коллекцию.
// При ошибке пользователь уже получил уведомление, хранилище не меняется.
func (b *Board) Mount(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.Int("page", b.page.Page), zap.Int("limit", b.page.Limit))

	notes, err := b.api.ListNotes(ctx, b.page)
	if err != nil {
		log.Debug(ctx, logFetchFailed, zap.Error(err))
		notify.Error(ctx, b.notifier, api.UserMessage(err))
		return err
	}

	b.store.ReplaceAll(notes)
	log.Debug(ctx, logBoardMounted, zap.Int("notes", len(notes)))
	return nil
}

// OpenCreate открывает форму создания.
func (b *Board) OpenCreate() *form.CreateForm {
	return form.NewCreateForm(b.api, b.store, b.notifier, b.formOpts...)
}

// OpenUpdate открывает форму редактирования заметки из хранилища.
func (b *Board) OpenUpdate(id string) (*form.UpdateForm, error) {
	note, ok := b.store.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return form.NewUpdateForm(b.api, b.store, b.notifier, note, b.formOpts...), nil
}

// Delete удаляет заметку на сервере, затем из хранилища.
func (b *Board) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("note_id", id))

	if err := b.api.DeleteNote(ctx, id); err != nil {
		log.Debug(ctx, logDeleteFailed, zap.Error(err))
		notify.Error(ctx, b.notifier, api.UserMessage(err))
		return err
	}

	if !b.store.RemoveByID(id) {
		log.Debug(ctx, logDeleteMissing)
	}
	notify.Success(ctx, b.notifier, MsgNoteDeleted)
	return nil
}

// Render выводит кнопку создания и все заметки хранилища.
func (b *Board) Render(w io.Writer) error {
	var sb strings.Builder
	sb.WriteString(MsgAddNewNote)
	sb.WriteByte('\n')

	notes := b.store.Notes()
	if len(notes) == 0 {
		sb.WriteString(MsgNoNotes)
		sb.WriteByte('\n')
	}
	for _, note := range notes {
		writeNote(&sb, note)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderNote выводит одну заметку и делает ее текущей.
func (b *Board) RenderNote(w io.Writer, id string) error {
	if !b.store.Select(id) {
		return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	note, _ := b.store.Selected()

	var sb strings.Builder
	writeNote(&sb, note)
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeNote(sb *strings.Builder, note entities.Note) {
	fmt.Fprintf(sb, "[%s] %s\n", note.ID, note.Title)
	for _, line := range strings.Split(note.Content, "\n") {
		sb.WriteString("    ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	switch {
	case note.UpdatedAt != nil:
		fmt.Fprintf(sb, "    updated %s\n", note.UpdatedAt.Local().Format(timeLayout))
	case note.CreatedAt != nil:
		fmt.Fprintf(sb, "    created %s\n", note.CreatedAt.Local().Format(timeLayout))
	}
}
