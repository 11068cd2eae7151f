package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesboard/internal/client/adapters/rest"
	"notesboard/internal/client/domain/entities"
	"notesboard/internal/client/ports/api"
	"notesboard/pkg/logger"
	"notesboard/pkg/metrics"
)

type recordedRequest struct {
	Method  string
	Path    string
	Query   string
	Body    map[string]string
	Headers http.Header
}

type recorder struct {
	mu   sync.Mutex
	last recordedRequest
}

func (r *recorder) Last() recordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

func newServer(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()

	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := recordedRequest{
			Method:  r.Method,
			Path:    r.URL.Path,
			Query:   r.URL.RawQuery,
			Headers: r.Header.Clone(),
		}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			assert.NoError(t, json.Unmarshal(raw, &got.Body))
		}
		rec.mu.Lock()
		rec.last = got
		rec.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv, rec
}

func newClient(t *testing.T, srv *httptest.Server, opts ...rest.Option) *rest.Client {
	t.Helper()

	client, err := rest.New(srv.URL+"/api", opts...)
	require.NoError(t, err)
	return client
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{"valid", "http://localhost:8000/api", false},
		{"trailing slash", "http://localhost:8000/api/", false},
		{"missing scheme", "localhost:8000/api", true},
		{"empty", "", true},
		{"garbage", "http://[::1", true},
		{"unsupported scheme", "ftp://example.com", true},
		{"missing host", "http:///api", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, err := rest.New(tc.baseURL)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), rest.ErrMsgInvalidBaseURL)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestListNotes(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv, rec := newServer(t, http.StatusOK, `{"status":"success","results":1,"notes":[{"id":"1","title":"A","content":"B"}]}`)
		client := newClient(t, srv)

		notes, err := client.ListNotes(context.Background(), entities.Page{Page: 1, Limit: 10})

		require.NoError(t, err)
		assert.Equal(t, []entities.Note{{ID: "1", Title: "A", Content: "B"}}, notes)
		assert.Equal(t, http.MethodGet, rec.Last().Method)
		assert.Equal(t, "/api/notes", rec.Last().Path)
		assert.Equal(t, "limit=10&page=1", rec.Last().Query)
	})

	t.Run("zero cursor uses defaults", func(t *testing.T) {
		srv, rec := newServer(t, http.StatusOK, `{"notes":[]}`)
		client := newClient(t, srv)

		_, err := client.ListNotes(context.Background(), entities.Page{})

		require.NoError(t, err)
		assert.Equal(t, "limit=10&page=1", rec.Last().Query)
	})

	t.Run("missing notes field yields empty list", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusOK, `{}`)
		client := newClient(t, srv)

		notes, err := client.ListNotes(context.Background(), entities.DefaultPageCursor())

		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
	})

	t.Run("decodes timestamps", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusOK, `{"notes":[{"id":"1","title":"A","content":"B","createdAt":"2024-01-02T03:04:05Z"}]}`)
		client := newClient(t, srv)

		notes, err := client.ListNotes(context.Background(), entities.DefaultPageCursor())

		require.NoError(t, err)
		require.Len(t, notes, 1)
		require.NotNil(t, notes[0].CreatedAt)
		assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), notes[0].CreatedAt.UTC())
		assert.Nil(t, notes[0].UpdatedAt)
	})

	t.Run("malformed body", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusOK, `not json`)
		client := newClient(t, srv)

		notes, err := client.ListNotes(context.Background(), entities.DefaultPageCursor())

		require.Error(t, err)
		assert.Nil(t, notes)
		assert.ErrorIs(t, err, api.ErrMalformedResponse)
	})
}

func TestCreateNote(t *testing.T) {
	t.Run("success decodes data.note", func(t *testing.T) {
		srv, rec := newServer(t, http.StatusCreated, `{"status":"success","data":{"note":{"id":"2","title":"T","content":"C"}}}`)
		client := newClient(t, srv)

		note, err := client.CreateNote(context.Background(), entities.NoteInput{Title: "T", Content: "C"})

		require.NoError(t, err)
		assert.Equal(t, &entities.Note{ID: "2", Title: "T", Content: "C"}, note)
		assert.Equal(t, http.MethodPost, rec.Last().Method)
		assert.Equal(t, "/api/notes/", rec.Last().Path)
		assert.Equal(t, map[string]string{"title": "T", "content": "C"}, rec.Last().Body)
		assert.Equal(t, "application/json", rec.Last().Headers.Get("Content-Type"))
		assert.Equal(t, "no-cache", rec.Last().Headers.Get("Cache-Control"))
	})

	t.Run("note at top level is malformed", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusCreated, `{"note":{"id":"2","title":"T","content":"C"}}`)
		client := newClient(t, srv)

		note, err := client.CreateNote(context.Background(), entities.NoteInput{Title: "T", Content: "C"})

		require.Error(t, err)
		assert.Nil(t, note)
		assert.ErrorIs(t, err, api.ErrMalformedResponse)
	})
}

func TestUpdateNote(t *testing.T) {
	t.Run("success decodes note", func(t *testing.T) {
		srv, rec := newServer(t, http.StatusOK, `{"status":"success","note":{"id":"1","title":"X","content":"Y"}}`)
		client := newClient(t, srv)

		note, err := client.UpdateNote(context.Background(), "1", entities.NoteInput{Title: "X", Content: "Y"})

		require.NoError(t, err)
		assert.Equal(t, &entities.Note{ID: "1", Title: "X", Content: "Y"}, note)
		assert.Equal(t, http.MethodPatch, rec.Last().Method)
		assert.Equal(t, "/api/notes/1", rec.Last().Path)
		assert.Equal(t, map[string]string{"title": "X", "content": "Y"}, rec.Last().Body)
	})

	t.Run("escapes id", func(t *testing.T) {
		srv, rec := newServer(t, http.StatusOK, `{"note":{"id":"a b","title":"X","content":"Y"}}`)
		client := newClient(t, srv)

		_, err := client.UpdateNote(context.Background(), "a b", entities.NoteInput{Title: "X", Content: "Y"})

		require.NoError(t, err)
		assert.Equal(t, "/api/notes/a b", rec.Last().Path)
	})

	t.Run("server error with detail", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusInternalServerError, `{"detail":"server error"}`)
		client := newClient(t, srv)

		note, err := client.UpdateNote(context.Background(), "1", entities.NoteInput{Title: "X", Content: "Y"})

		require.Error(t, err)
		assert.Nil(t, note)
		var apiErr *api.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Equal(t, "server error", apiErr.Message)
		assert.Equal(t, "server error", api.UserMessage(err))
	})
}

func TestDeleteNote(t *testing.T) {
	t.Run("no content", func(t *testing.T) {
		srv, rec := newServer(t, http.StatusNoContent, ``)
		client := newClient(t, srv)

		require.NoError(t, client.DeleteNote(context.Background(), "1"))
		assert.Equal(t, http.MethodDelete, rec.Last().Method)
		assert.Equal(t, "/api/notes/1", rec.Last().Path)
	})

	t.Run("not found", func(t *testing.T) {
		srv, _ := newServer(t, http.StatusNotFound, `{"detail":"note not found"}`)
		client := newClient(t, srv)

		err := client.DeleteNote(context.Background(), "404")

		var apiErr *api.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "note not found", api.UserMessage(err))
	})
}

func TestErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message wins over detail", `{"message":"bad title","detail":"other"}`, "bad title"},
		{"detail string", `{"detail":"server error"}`, "server error"},
		{"detail not a string", `{"detail":[{"loc":["body","title"],"msg":"field required"}]}`, api.MsgGenericFailure},
		{"empty object", `{}`, api.MsgGenericFailure},
		{"not json", `<html>oops</html>`, api.MsgGenericFailure},
		{"empty body", ``, api.MsgGenericFailure},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newServer(t, http.StatusBadRequest, tc.body)
			client := newClient(t, srv)

			_, err := client.CreateNote(context.Background(), entities.NoteInput{Title: "T", Content: "C"})

			var apiErr *api.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			assert.Equal(t, tc.want, apiErr.Message)
		})
	}
}

func TestRequestHeaders(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, `{"notes":[]}`)
	client := newClient(t, srv, rest.WithToken("secret-token"))

	ctx := logger.NewRequestIDContext(context.Background(), "req-1")
	_, err := client.ListNotes(ctx, entities.DefaultPageCursor())

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", rec.Last().Headers.Get("Authorization"))
	assert.Equal(t, "req-1", rec.Last().Headers.Get("X-Request-ID"))
	assert.Empty(t, rec.Last().Headers.Get("Cache-Control"))
	assert.Empty(t, rec.Last().Headers.Get("Content-Type"))
}

func TestCancellationAndTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(block)
		srv.Close()
	})

	t.Run("canceled context", func(t *testing.T) {
		client := newClient(t, srv)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.ListNotes(ctx, entities.DefaultPageCursor())

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("configured timeout", func(t *testing.T) {
		client := newClient(t, srv, rest.WithTimeout(50*time.Millisecond))

		_, err := client.ListNotes(context.Background(), entities.DefaultPageCursor())

		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestWithMetrics(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, `{"notes":[]}`)
	reg := prometheus.NewRegistry()
	m := metrics.NewClientMetrics(reg)
	client := newClient(t, srv, rest.WithMetrics(m))

	_, err := client.ListNotes(context.Background(), entities.DefaultPageCursor())

	require.NoError(t, err)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Requests.WithLabelValues("200", "get")), 0)
}
