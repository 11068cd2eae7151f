// Package rest реализует порт api.NotesAPI поверх HTTP/JSON.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"notesboard/internal/client/domain/entities"
	"notesboard/internal/client/ports/api"
	"notesboard/pkg/logger"
	"notesboard/pkg/metrics"
)

// Константы для логирования и ошибок.
const (
	LogRequestSent   = "notes api request completed"
	LogRequestFailed = "notes api request failed"

	ErrMsgInvalidBaseURL = "invalid base url"
	ErrMsgBuildRequest   = "failed to build request"
	ErrMsgSendRequest    = "failed to send request"
	ErrMsgReadResponse   = "failed to read response"
	ErrMsgEncodeBody     = "failed to encode request body"

	headerRequestID = "X-Request-ID"
	contentTypeJSON = "application/json"
	notesPath       = "/notes"

	maxResponseBytes = 4 << 20
)

// Client - HTTP-клиент API заметок. Повторных попыток не делает.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	timeout    time.Duration
	metrics    *metrics.ClientMetrics
}

var _ api.NotesAPI = (*Client)(nil)

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient задает HTTP-клиент.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithToken добавляет заголовок Authorization: Bearer к каждому запросу.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout ограничивает длительность каждого запроса. Ноль - без ограничения.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithMetrics включает сбор метрик исходящих запросов.
func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New создает клиент для baseURL вида http://host:port/api.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%s: %q", ErrMsgInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.metrics != nil {
		instrumented := *c.httpClient
		instrumented.Transport = c.metrics.InstrumentRoundTripper(c.httpClient.Transport)
		c.httpClient = &instrumented
	}

	return c, nil
}

type listNotesResponse struct {
	Notes []entities.Note `json:"notes"`
}

type createNoteResponse struct {
	Data struct {
		Note *entities.Note `json:"note"`
	} `json:"data"`
}

type updateNoteResponse struct {
	Note *entities.Note `json:"note"`
}

type errorResponse struct {
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail"`
}

// ListNotes выполняет GET /notes?page=&limit=.
func (c *Client) ListNotes(ctx context.Context, page entities.Page) ([]entities.Note, error) {
	page = page.Normalize()
	query := url.Values{}
	query.Set("page", strconv.Itoa(page.Page))
	query.Set("limit", strconv.Itoa(page.Limit))

	var resp listNotesResponse
	if err := c.do(ctx, http.MethodGet, notesPath+"?"+query.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if resp.Notes == nil {
		resp.Notes = []entities.Note{}
	}
	return resp.Notes, nil
}

// CreateNote выполняет POST /notes/. Созданная заметка лежит в data.note.
func (c *Client) CreateNote(ctx context.Context, input entities.NoteInput) (*entities.Note, error) {
	var resp createNoteResponse
	if err := c.do(ctx, http.MethodPost, notesPath+"/", input, &resp); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	if resp.Data.Note == nil {
		return nil, fmt.Errorf("create note: %w: missing data.note", api.ErrMalformedResponse)
	}
	return resp.Data.Note, nil
}

// UpdateNote выполняет PATCH /notes/{id}. Обновленная заметка лежит в note.
func (c *Client) UpdateNote(ctx context.Context, id string, input entities.NoteInput) (*entities.Note, error) {
	var resp updateNoteResponse
	if err := c.do(ctx, http.MethodPatch, notesPath+"/"+url.PathEscape(id), input, &resp); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	if resp.Note == nil {
		return nil, fmt.Errorf("update note: %w: missing note", api.ErrMalformedResponse)
	}
	return resp.Note, nil
}

// DeleteNote выполняет DELETE /notes/{id}.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, notesPath+"/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("path", path))

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug(ctx, LogRequestFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrMsgSendRequest, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Debug(ctx, LogRequestFailed, zap.Int("status", resp.StatusCode), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrMsgReadResponse, err)
	}

	log.Debug(ctx, LogRequestSent,
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := decodeAPIError(resp.StatusCode, payload)
		log.Debug(ctx, LogRequestFailed, zap.Int("status", resp.StatusCode), zap.String("message", apiErr.Message))
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		log.Debug(ctx, LogRequestFailed, zap.Error(err))
		return fmt.Errorf("%w: %w", api.ErrMalformedResponse, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgEncodeBody, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBuildRequest, err)
	}

	req.Header.Set("Accept", contentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	if method != http.MethodGet {
		req.Header.Set("Cache-Control", "no-cache")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if id, ok := logger.GetRequestID(ctx); ok {
		req.Header.Set(headerRequestID, id)
	}
	return req, nil
}

// decodeAPIError извлекает message, затем detail (только строку),
// иначе использует общее сообщение.
func decodeAPIError(status int, payload []byte) *api.APIError {
	apiErr := &api.APIError{StatusCode: status, Message: api.MsgGenericFailure}

	var body errorResponse
	if err := json.Unmarshal(payload, &body); err != nil {
		return apiErr
	}
	if body.Message != "" {
		apiErr.Message = body.Message
		return apiErr
	}
	var detail string
	if len(body.Detail) > 0 && json.Unmarshal(body.Detail, &detail) == nil && detail != "" {
		apiErr.Message = detail
	}
	return apiErr
}
