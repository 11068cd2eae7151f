package shell_test

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesboard/internal/client/domain/entities"
	"notesboard/internal/client/form"
	"notesboard/internal/client/notify"
	"notesboard/internal/client/ports/api"
	"notesboard/internal/client/shell"
	"notesboard/internal/client/store"
	"notesboard/internal/client/view"
)

type memoryAPI struct {
	notes     []entities.Note
	failWrite error
}

func (m *memoryAPI) ListNotes(context.Context, entities.Page) ([]entities.Note, error) {
	return append([]entities.Note(nil), m.notes...), nil
}

func (m *memoryAPI) CreateNote(_ context.Context, in entities.NoteInput) (*entities.Note, error) {
	if m.failWrite != nil {
		return nil, m.failWrite
	}
	note := entities.Note{ID: strconv.Itoa(len(m.notes) + 1), Title: in.Title, Content: in.Content}
	m.notes = append(m.notes, note)
	return &note, nil
}

func (m *memoryAPI) UpdateNote(_ context.Context, id string, in entities.NoteInput) (*entities.Note, error) {
	if m.failWrite != nil {
		return nil, m.failWrite
	}
	for i := range m.notes {
		if m.notes[i].ID == id {
			m.notes[i].Title, m.notes[i].Content = in.Title, in.Content
			note := m.notes[i]
			return &note, nil
		}
	}
	return nil, &api.APIError{StatusCode: 404, Message: "note not found"}
}

func (m *memoryAPI) DeleteNote(_ context.Context, id string) error {
	for i := range m.notes {
		if m.notes[i].ID == id {
			m.notes = append(m.notes[:i], m.notes[i+1:]...)
			return nil
		}
	}
	return &api.APIError{StatusCode: 404, Message: "note not found"}
}

func run(t *testing.T, backend *memoryAPI, script string, opts ...view.BoardOption) (*view.Board, *notifications, string) {
	t.Helper()

	q := &notifications{}
	board := view.NewBoard(backend, store.New(), q, opts...)
	var out bytes.Buffer

	err := shell.New(board, strings.NewReader(script), &out).Run(context.Background())
	require.NoError(t, err)

	return board, q, out.String()
}

func TestShellMountsAndLists(t *testing.T) {
	backend := &memoryAPI{notes: []entities.Note{{ID: "1", Title: "A", Content: "B"}}}

	board, _, out := run(t, backend, "ls\nquit\n")

	assert.Equal(t, 1, board.Store().Len())
	assert.Equal(t, 2, strings.Count(out, "[1] A"), "rendered on mount and on ls")
}

func TestShellCreateWithValidationRetry(t *testing.T) {
	backend := &memoryAPI{notes: []entities.Note{{ID: "1", Title: "A", Content: "B"}}}

	board, q, out := run(t, backend, "new\n\nC\ny\nT\n\nquit\n")

	assert.Contains(t, out, "title: Title is required")
	assert.Contains(t, out, "Content [C]: ")
	assert.Equal(t, []entities.Note{
		{ID: "1", Title: "A", Content: "B"},
		{ID: "2", Title: "T", Content: "C"},
	}, board.Store().Notes())
	assert.Equal(t, []notify.Notification{{Level: notify.LevelSuccess, Message: form.MsgNoteCreated}}, q.Drain())
}

func TestShellCreateGiveUp(t *testing.T) {
	backend := &memoryAPI{}

	board, q, _ := run(t, backend, "new\n\n\nn\nquit\n")

	assert.Equal(t, 0, board.Store().Len())
	assert.Empty(t, q.Drain())
}

func TestShellEditKeepsUnchangedFields(t *testing.T) {
	backend := &memoryAPI{notes: []entities.Note{{ID: "1", Title: "A", Content: "B"}}}

	board, q, out := run(t, backend, "edit 1\nX\n\nquit\n")

	assert.Contains(t, out, "Title [A]: ")
	note, ok := board.Store().Find("1")
	require.True(t, ok)
	assert.Equal(t, entities.Note{ID: "1", Title: "X", Content: "B"}, note)
	assert.Equal(t, []notify.Notification{{Level: notify.LevelSuccess, Message: form.MsgNoteUpdated}}, q.Drain())
}

func TestShellEditFailureClosesForm(t *testing.T) {
	backend := &memoryAPI{
		notes:     []entities.Note{{ID: "1", Title: "A", Content: "B"}},
		failWrite: &api.APIError{StatusCode: 500, Message: "server error"},
	}

	board, q, out := run(t, backend, "edit 1\nX\nY\nquit\n")

	assert.NotContains(t, out, "retry?")
	note, _ := board.Store().Find("1")
	assert.Equal(t, "A", note.Title)
	assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Message: "server error"}}, q.Drain())
}

func TestShellRetryWhenKeptOpen(t *testing.T) {
	backend := &memoryAPI{failWrite: errors.New("connection refused")}

	_, q, out := run(t, backend, "new\nT\nC\nn\nquit\n",
		view.WithFormOptions(form.WithKeepOpenOnError(true)))

	assert.Contains(t, out, "retry? ")
	assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Message: "connection refused"}}, q.Drain())
}

func TestShellShowAndDelete(t *testing.T) {
	backend := &memoryAPI{notes: []entities.Note{
		{ID: "1", Title: "A", Content: "B"},
		{ID: "2", Title: "C", Content: "D"},
	}}

	board, q, out := run(t, backend, "show 2\nrm 1\nrm\nshow 9\nquit\n")

	assert.Contains(t, out, "usage: rm <id>")
	assert.Contains(t, out, "error: note not found: 9")
	assert.Equal(t, []entities.Note{{ID: "2", Title: "C", Content: "D"}}, board.Store().Notes())
	selected, ok := board.Store().Selected()
	require.True(t, ok)
	assert.Equal(t, "2", selected.ID)
	assert.Equal(t, []notify.Notification{{Level: notify.LevelSuccess, Message: view.MsgNoteDeleted}}, q.Drain())
}

func TestShellUnknownCommandAndEOF(t *testing.T) {
	_, _, out := run(t, &memoryAPI{}, "frobnicate\nhelp\n")

	assert.Contains(t, out, `unknown command "frobnicate"`)
	assert.Contains(t, out, "edit <id>")
}

func TestShellStopsOnCanceledContext(t *testing.T) {
	board := view.NewBoard(&memoryAPI{}, store.New(), &notifications{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := shell.New(board, strings.NewReader("ls\n"), &bytes.Buffer{}).Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

// notifications накапливает уведомления для проверок в тестах.
type notifications struct {
	mu    sync.Mutex
	items []notify.Notification
}

func (n *notifications) Notify(_ context.Context, item notify.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, item)
}

// Drain возвращает накопленное и очищает список.
func (n *notifications) Drain() []notify.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	items := n.items
	n.items = nil
	return items
}
