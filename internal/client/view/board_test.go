package view_test

import (
	"bytes"
	"context"
	"io"
	"sync"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"notesboard/internal/client/adapters/rest"
	"notesboard/internal/client/domain/entities"
	"notesboard/internal/client/form"
	"notesboard/internal/client/notify"
	"notesboard/internal/client/store"
	"notesboard/internal/client/view"
	"notesboard/pkg/logger"
)

// backend отвечает фиксированными телами по методу запроса.
type backend map[string]struct {
	status int
	body   string
}

func newBoard(t *testing.T, routes backend, opts ...view.BoardOption) (*view.Board, *notifications) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, ok := routes[r.Method]
		if !ok {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(route.status)
		_, _ = io.WriteString(w, route.body)
	}))
	t.Cleanup(srv.Close)

	client, err := rest.New(srv.URL + "/api")
	require.NoError(t, err)

	q := &notifications{}
	return view.NewBoard(client, store.New(), q, opts...), q
}

func TestMountPopulatesStore(t *testing.T) {
	board, q := newBoard(t, backend{
		http.MethodGet: {http.StatusOK, `{"notes":[{"id":"1","title":"A","content":"B"}]}`},
	})

	require.NoError(t, board.Mount(context.Background()))

	assert.Equal(t, []entities.Note{{ID: "1", Title: "A", Content: "B"}}, board.Store().Notes())
	assert.Empty(t, q.Drain())
}

func TestMountFailureNotifies(t *testing.T) {
	board, q := newBoard(t, backend{
		http.MethodGet: {http.StatusServiceUnavailable, `{"message":"maintenance"}`},
	})
	board.Store().ReplaceAll([]entities.Note{{ID: "keep", Title: "A", Content: "B"}})

	err := board.Mount(context.Background())

	require.Error(t, err)
	assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Message: "maintenance"}}, q.Drain())
	assert.Equal(t, 1, board.Store().Len(), "store unchanged on failure")
}

func TestFailuresOnlyReachNotifier(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger.SetGlobalLogger(logger.New(zap.New(core)))
	t.Cleanup(func() { logger.SetGlobalLogger(nil) })

	board, q := newBoard(t, backend{
		http.MethodGet:    {http.StatusInternalServerError, `{"message":"database is down"}`},
		http.MethodPost:   {http.StatusInternalServerError, `{"message":"database is down"}`},
		http.MethodDelete: {http.StatusNotFound, `{"detail":"note not found"}`},
	})
	ctx := context.Background()

	require.Error(t, board.Mount(ctx))
	state, err := board.OpenCreate().Submit(ctx, entities.NoteInput{Title: "T", Content: "C"})
	require.NoError(t, err)
	assert.Equal(t, form.StateClosedUnsynced, state)
	require.Error(t, board.Delete(ctx, "1"))

	assert.Len(t, q.Drain(), 3)
	assert.Zero(t, logs.Len(), "failed requests must not be logged at warn or above")
}

func TestCreateAppendsToStore(t *testing.T) {
	board, q := newBoard(t, backend{
		http.MethodGet:  {http.StatusOK, `{"notes":[{"id":"1","title":"A","content":"B"}]}`},
		http.MethodPost: {http.StatusCreated, `{"data":{"note":{"id":"2","title":"T","content":"C"}}}`},
	})
	require.NoError(t, board.Mount(context.Background()))

	state, err := board.OpenCreate().Submit(context.Background(), entities.NoteInput{Title: "T", Content: "C"})

	require.NoError(t, err)
	assert.Equal(t, form.StateClosedSynced, state)
	notes := board.Store().Notes()
	require.Len(t, notes, 2)
	assert.Equal(t, entities.Note{ID: "2", Title: "T", Content: "C"}, notes[1])
	assert.Equal(t, []notify.Notification{{Level: notify.LevelSuccess, Message: form.MsgNoteCreated}}, q.Drain())
}

func TestUpdateServerErrorKeepsEntry(t *testing.T) {
	board, q := newBoard(t, backend{
		http.MethodGet:   {http.StatusOK, `{"notes":[{"id":"1","title":"A","content":"B"}]}`},
		http.MethodPatch: {http.StatusInternalServerError, `{"detail":"server error"}`},
	})
	require.NoError(t, board.Mount(context.Background()))

	f, err := board.OpenUpdate("1")
	require.NoError(t, err)
	state, err := f.Submit(context.Background(), entities.NoteInput{Title: "X", Content: "Y"})

	require.NoError(t, err)
	assert.Equal(t, form.StateClosedUnsynced, state)
	assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Message: "server error"}}, q.Drain())
	note, ok := board.Store().Find("1")
	require.True(t, ok)
	assert.Equal(t, entities.Note{ID: "1", Title: "A", Content: "B"}, note)
}

func TestOpenUpdateUnknownID(t *testing.T) {
	board, _ := newBoard(t, backend{})

	f, err := board.OpenUpdate("404")

	require.ErrorIs(t, err, view.ErrNoteNotFound)
	assert.Nil(t, f)
}

func TestFormOptionsPropagate(t *testing.T) {
	board, _ := newBoard(t, backend{
		http.MethodPost: {http.StatusInternalServerError, `{}`},
	}, view.WithFormOptions(form.WithKeepOpenOnError(true)))

	state, err := board.OpenCreate().Submit(context.Background(), entities.NoteInput{Title: "T", Content: "C"})

	require.NoError(t, err)
	assert.Equal(t, form.StateIdle, state)
}

func TestDelete(t *testing.T) {
	t.Run("success removes from store", func(t *testing.T) {
		board, q := newBoard(t, backend{
			http.MethodGet:    {http.StatusOK, `{"notes":[{"id":"1","title":"A","content":"B"},{"id":"2","title":"C","content":"D"}]}`},
			http.MethodDelete: {http.StatusNoContent, ``},
		})
		require.NoError(t, board.Mount(context.Background()))

		require.NoError(t, board.Delete(context.Background(), "1"))

		assert.Equal(t, []entities.Note{{ID: "2", Title: "C", Content: "D"}}, board.Store().Notes())
		assert.Equal(t, []notify.Notification{{Level: notify.LevelSuccess, Message: view.MsgNoteDeleted}}, q.Drain())
	})

	t.Run("failure keeps store", func(t *testing.T) {
		board, q := newBoard(t, backend{
			http.MethodGet:    {http.StatusOK, `{"notes":[{"id":"1","title":"A","content":"B"}]}`},
			http.MethodDelete: {http.StatusNotFound, `{"detail":"note not found"}`},
		})
		require.NoError(t, board.Mount(context.Background()))

		require.Error(t, board.Delete(context.Background(), "1"))

		assert.Equal(t, 1, board.Store().Len())
		assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Message: "note not found"}}, q.Drain())
	})
}

func TestPageOption(t *testing.T) {
	board, _ := newBoard(t, backend{}, view.WithPage(entities.Page{Page: 3}))

	assert.Equal(t, entities.Page{Page: 3, Limit: 10}, board.Page())
}

func TestRender(t *testing.T) {
	board, _ := newBoard(t, backend{})

	var empty bytes.Buffer
	require.NoError(t, board.Render(&empty))
	assert.Equal(t, view.MsgAddNewNote+"\n"+view.MsgNoNotes+"\n", empty.String())

	board.Store().ReplaceAll([]entities.Note{
		{ID: "1", Title: "Groceries", Content: "milk\neggs"},
		{ID: "2", Title: "Todo", Content: "ship it"},
	})

	var buf bytes.Buffer
	require.NoError(t, board.Render(&buf))
	assert.Equal(t, "+ Add new note\n"+
		"[1] Groceries\n    milk\n    eggs\n"+
		"[2] Todo\n    ship it\n", buf.String())
}

func TestRenderNoteSelects(t *testing.T) {
	board, _ := newBoard(t, backend{})
	updated := time.Date(2024, 5, 6, 7, 8, 0, 0, time.Local)
	board.Store().ReplaceAll([]entities.Note{{ID: "1", Title: "A", Content: "B", UpdatedAt: &updated}})

	var buf bytes.Buffer
	require.NoError(t, board.RenderNote(&buf, "1"))

	assert.Equal(t, "[1] A\n    B\n    updated 2024-05-06 07:08\n", buf.String())
	selected, ok := board.Store().Selected()
	require.True(t, ok)
	assert.Equal(t, "1", selected.ID)

	assert.ErrorIs(t, board.RenderNote(&buf, "404"), view.ErrNoteNotFound)
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
