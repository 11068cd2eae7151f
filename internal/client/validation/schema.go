// Package validation проверяет пользовательский ввод заметки до обращения к серверу.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"notesboard/internal/client/domain/entities"
)

// Имена полей формы и сообщения об ошибках.
const (
	FieldTitle   = "title"
	FieldContent = "content"

	MsgTitleRequired   = "Title is required"
	MsgContentRequired = "Content is required"

	msgInvalidField = "%s is invalid"
)

var messages = map[string]string{
	FieldTitle:   MsgTitleRequired,
	FieldContent: MsgContentRequired,
}

// FieldErrors сопоставляет имя поля с читаемым сообщением об ошибке.
type FieldErrors map[string]string

// Error перечисляет ошибки в стабильном порядке.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Schema проверяет NoteInput. Безопасна для конкурентного использования.
type Schema struct {
	validate *validator.Validate
}

// NewSchema создает схему, которая сообщает об ошибках по json-именам полей.
func NewSchema() *Schema {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Schema{validate: v}
}

var defaultSchema = NewSchema()

// Validate проверяет ввод схемой по умолчанию.
func Validate(input entities.NoteInput) (entities.NoteInput, error) {
	return defaultSchema.Validate(input)
}

// Validate возвращает ввод без изменений либо FieldErrors.
func (s *Schema) Validate(input entities.NoteInput) (entities.NoteInput, error) {
	err := s.validate.Struct(input)
	if err == nil {
		return input, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return entities.NoteInput{}, fmt.Errorf("validate note input: %w", err)
	}

	fieldErrs := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := fieldErrs[field]; seen {
			continue
		}
		msg, ok := messages[field]
		if !ok {
			msg = fmt.Sprintf(msgInvalidField, field)
		}
		fieldErrs[field] = msg
	}
	return entities.NoteInput{}, fieldErrs
}

// AsFieldErrors извлекает FieldErrors из err.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fieldErrs FieldErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs, true
	}
	return nil, false
}
