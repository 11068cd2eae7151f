// Package form реализует формы создания и редактирования заметки.
//
// Жизненный цикл формы:
//
//	idle -> validating -> invalid                      (ошибки полей, сеть не трогаем)
//	idle -> validating -> submitting -> closed-synced  (хранилище обновлено)
//	idle -> validating -> submitting -> closed-unsynced (уведомление об ошибке)
//
// С WithKeepOpenOnError неуспешная отправка возвращает форму в idle.
package form

import (
	"context"
	"errors"
	"maps"
	"sync"

	"go.uber.org/zap"

	"notesboard/internal/client/domain/entities"
	"notesboard/internal/client/notify"
	"notesboard/internal/client/ports/api"
	"notesboard/internal/client/validation"
	"notesboard/pkg/logger"
)

// State - состояние формы.
type State int

// Состояния формы.
const (
	StateIdle State = iota
	StateValidating
	StateInvalid
	StateSubmitting
	StateClosedSynced
	StateClosedUnsynced
	StateDismissed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateInvalid:
		return "invalid"
	case StateSubmitting:
		return "submitting"
	case StateClosedSynced:
		return "closed-synced"
	case StateClosedUnsynced:
		return "closed-unsynced"
	case StateDismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// Closed сообщает, что форма больше не принимает отправку.
func (s State) Closed() bool {
	return s == StateClosedSynced || s == StateClosedUnsynced || s == StateDismissed
}

// Ошибки неправильного использования формы.
var (
	ErrFormClosed       = errors.New("form is closed")
	ErrSubmitInProgress = errors.New("submit already in progress")
)

// Сообщения уведомлений и логов.
const (
	MsgNoteCreated = "Note created successfully"
	MsgNoteUpdated = "Note updated successfully"

	logSubmitInvalid   = "form submit blocked by validation"
	logSubmitFailed    = "form submit failed"
	logSubmitSucceeded = "form submit succeeded"
	logStoreMissingID  = "updated note is missing from store"
)

// Option настраивает форму.
type Option func(*base)

// WithKeepOpenOnError оставляет форму открытой после неуспешной отправки.
func WithKeepOpenOnError(keep bool) Option {
	return func(b *base) { b.keepOpenOnError = keep }
}

type base struct {
	mu              sync.Mutex
	name            string
	state           State
	values          entities.NoteInput
	fieldErrs       validation.FieldErrors
	lastErr         error
	notifier        notify.Notifier
	schema          *validation.Schema
	keepOpenOnError bool
}

func (b *base) init(name string, notifier notify.Notifier, values entities.NoteInput, opts []Option) {
	b.name = name
	b.state = StateIdle
	b.values = values
	b.notifier = notifier
	b.schema = validation.NewSchema()
	for _, opt := range opts {
		opt(b)
	}
}

// State возвращает текущее состояние.
func (b *base) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Values возвращает текущие значения полей.
func (b *base) Values() entities.NoteInput {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.values
}

// Errors возвращает ошибки полей последней валидации.
func (b *base) Errors() validation.FieldErrors {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.fieldErrs)
}

// Err возвращает ошибку последней неуспешной отправки.
func (b *base) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

// Dismiss закрывает форму без отправки. Запрос в полете не отменяется.
func (b *base) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.state.Closed() {
		b.state = StateDismissed
	}
}

type remoteCall func(ctx context.Context, input entities.NoteInput) (*entities.Note, error)

func (b *base) submit(ctx context.Context, input entities.NoteInput, call remoteCall, apply func(context.Context, entities.Note), successMsg string) (State, error) {
	log := logger.Log(ctx).With(zap.String("form", b.name))

	b.mu.Lock()
	if b.state.Closed() {
		state := b.state
		b.mu.Unlock()
		return state, ErrFormClosed
	}
	if b.state == StateSubmitting {
		b.mu.Unlock()
		return StateSubmitting, ErrSubmitInProgress
	}

	b.state = StateValidating
	b.values = input
	validated, err := b.schema.Validate(input)
	if err != nil {
		fieldErrs, ok := validation.AsFieldErrors(err)
		if !ok {
			fieldErrs = validation.FieldErrors{}
		}
		b.fieldErrs = fieldErrs
		b.state = StateInvalid
		b.mu.Unlock()
		log.Debug(ctx, logSubmitInvalid, zap.Error(err))
		return StateInvalid, nil
	}
	b.fieldErrs = nil
	b.lastErr = nil
	b.state = StateSubmitting
	b.mu.Unlock()

	note, err := call(ctx, validated)
	if err != nil {
		log.Debug(ctx, logSubmitFailed, zap.Error(err))
		notify.Error(ctx, b.notifier, api.UserMessage(err))

		b.mu.Lock()
		defer b.mu.Unlock()
		b.lastErr = err
		switch {
		case b.state == StateDismissed:
		case b.keepOpenOnError:
			b.state = StateIdle
		default:
			b.state = StateClosedUnsynced
		}
		return b.state, nil
	}

	apply(ctx, *note)
	notify.Success(ctx, b.notifier, successMsg)
	log.Debug(ctx, logSubmitSucceeded, zap.String("note_id", note.ID))

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state != StateDismissed {
		b.state = StateClosedSynced
	}
	return b.state, nil
}
