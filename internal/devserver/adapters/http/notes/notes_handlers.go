// Package notes содержит HTTP обработчики для работы с заметками.
package notes

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notesboard/internal/client/validation"
	"notesboard/internal/devserver/adapters/http/middleware"
	"notesboard/internal/devserver/app"
	"notesboard/internal/devserver/app/dto"
	"notesboard/internal/devserver/domain/entities"
	"notesboard/pkg/logger"
)

// Константы для логирования и ответов.
const (
	LogHandlerList   = "notes handler: list"
	LogHandlerGet    = "notes handler: get"
	LogHandlerCreate = "notes handler: create"
	LogHandlerUpdate = "notes handler: update"
	LogHandlerDelete = "notes handler: delete"

	ErrorInvalidRequest    = "invalid request body"
	ErrorInvalidPagination = "invalid pagination parameters"
	ErrorNoteNotFound      = "note not found"
	ErrorInternal          = "internal server error"
)

// Значения пагинации по умолчанию.
const (
	defaultPage  = 1
	defaultLimit = 10
)

// NoteService описывает бизнес-логику, которую используют обработчики.
type NoteService interface {
	ListNotes(ctx context.Context, page, limit int) ([]*entities.Note, error)
	GetNote(ctx context.Context, noteID string) (*entities.Note, error)
	CreateNote(ctx context.Context, title, content string) (*entities.Note, error)
	UpdateNote(ctx context.Context, noteID string, patch entities.NotePatch) (*entities.Note, error)
	DeleteNote(ctx context.Context, noteID string) error
}

// Handler содержит HTTP обработчики заметок.
type Handler struct {
	noteService NoteService
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(noteService NoteService) *Handler {
	return &Handler{
		noteService: noteService,
	}
}

// List обрабатывает GET /notes?page=&limit=.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerList)

	page, pageErr := queryInt(ctx, "page", defaultPage)
	limit, limitErr := queryInt(ctx, "limit", defaultLimit)
	if pageErr != nil || limitErr != nil {
		return fail(ctx, fiber.StatusBadRequest, ErrorInvalidPagination)
	}

	notes, err := h.noteService.ListNotes(requestCtx, page, limit)
	if err != nil {
		if errors.Is(err, app.ErrInvalidParams) {
			return fail(ctx, fiber.StatusBadRequest, ErrorInvalidPagination)
		}
		log.Error(requestCtx, ErrorInternal, zap.Error(err))
		return detail(ctx, fiber.StatusInternalServerError, ErrorInternal)
	}

	response := dto.ListNotesResponse{
		Status:  dto.StatusSuccess,
		Results: len(notes),
		Notes:   make([]*dto.Note, 0, len(notes)),
	}
	for _, note := range notes {
		response.Notes = append(response.Notes, dto.FromEntity(note))
	}

	return ctx.Status(fiber.StatusOK).JSON(response)
}

// Get обрабатывает GET /notes/{id}.
func (h *Handler) Get(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGet, zap.String("id", ctx.Params("id")))

	note, err := h.noteService.GetNote(requestCtx, ctx.Params("id"))
	if err != nil {
		return h.writeError(ctx, requestCtx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.UpdateNoteResponse{
		Status: dto.StatusSuccess,
		Note:   dto.FromEntity(note),
	})
}

// Create обрабатывает POST /notes/.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Debug(requestCtx, LogHandlerCreate)

	var req dto.CreateNoteRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return fail(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	note, err := h.noteService.CreateNote(requestCtx, req.Title, req.Content)
	if err != nil {
		return h.writeError(ctx, requestCtx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.CreateNoteResponse{
		Status: dto.StatusSuccess,
		Data:   dto.NoteData{Note: dto.FromEntity(note)},
	})
}

// Update обрабатывает PATCH /notes/{id}.
func (h *Handler) Update(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("id", ctx.Params("id")))
	log.Debug(requestCtx, LogHandlerUpdate)

	var req dto.UpdateNoteRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return fail(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	note, err := h.noteService.UpdateNote(requestCtx, ctx.Params("id"), req.Patch())
	if err != nil {
		return h.writeError(ctx, requestCtx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(dto.UpdateNoteResponse{
		Status: dto.StatusSuccess,
		Note:   dto.FromEntity(note),
	})
}

// Delete обрабатывает DELETE /notes/{id}.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDelete, zap.String("id", ctx.Params("id")))

	if err := h.noteService.DeleteNote(requestCtx, ctx.Params("id")); err != nil {
		return h.writeError(ctx, requestCtx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// NotFound отвечает на запросы к несуществующим маршрутам.
func NotFound(ctx fiber.Ctx) error {
	return detail(ctx, fiber.StatusNotFound, "route not found")
}

func (h *Handler) writeError(ctx fiber.Ctx, requestCtx context.Context, err error) error {
	switch {
	case errors.Is(err, app.ErrNotFound):
		return detail(ctx, fiber.StatusNotFound, ErrorNoteNotFound)
	case errors.Is(err, app.ErrInvalidParams):
		message := err.Error()
		if fieldErrs, ok := validation.AsFieldErrors(err); ok {
			message = fieldErrs.Error()
		}
		return fail(ctx, fiber.StatusBadRequest, message)
	default:
		logger.Log(requestCtx).Error(requestCtx, ErrorInternal, zap.Error(err))
		return detail(ctx, fiber.StatusInternalServerError, ErrorInternal)
	}
}

func queryInt(ctx fiber.Ctx, key string, def int) (int, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func fail(ctx fiber.Ctx, status int, message string) error {
	return ctx.Status(status).JSON(dto.FailResponse{Status: dto.StatusFail, Message: message})
}

func detail(ctx fiber.Ctx, status int, message string) error {
	return ctx.Status(status).JSON(dto.DetailResponse{Detail: message})
}
