// Package shell реализует интерактивную построчную сессию поверх Board.
// Доска загружается один раз, дальше сессия работает с хранилищем.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"notesboard/internal/client/domain/entities"
	"notesboard/internal/client/form"
	"notesboard/internal/client/validation"
	"notesboard/internal/client/view"
)

const (
	prompt = "notes> "

	helpText = `commands:
  ls            list notes
  show <id>     show a single note
  new           create a note
  edit <id>     edit a note
  rm <id>       delete a note
  reload        fetch the current page again
  help          show this help
  quit          leave the session
`

	msgUnknownCommand = "unknown command %q, type help"
	msgUsage          = "usage: %s <id>"
	msgRetry          = "retry? [Y/n] "
)

type submitter interface {
	Submit(ctx context.Context, input entities.NoteInput) (form.State, error)
	Values() entities.NoteInput
	Errors() validation.FieldErrors
	Dismiss()
}

// Shell читает команды из in и выводит доску в out.
type Shell struct {
	board   *view.Board
	scanner *bufio.Scanner
	out     io.Writer
}

// New создает Shell.
func New(board *view.Board, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		board:   board,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Run загружает доску и обрабатывает команды до quit, конца ввода или отмены ctx.
func (s *Shell) Run(ctx context.Context) error {
	if err := s.board.Mount(ctx); err == nil {
		s.render()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, ok := s.readLine(prompt)
		if !ok {
			return s.scanner.Err()
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "":
		case "ls", "list":
			s.render()
		case "reload":
			if err := s.board.Mount(ctx); err == nil {
				s.render()
			}
		case "show":
			if s.requireArg(cmd, arg) {
				s.check(s.board.RenderNote(s.out, arg))
			}
		case "new":
			s.runForm(ctx, s.board.OpenCreate())
		case "edit":
			if !s.requireArg(cmd, arg) {
				continue
			}
			f, err := s.board.OpenUpdate(arg)
			if err != nil {
				s.check(err)
				continue
			}
			s.runForm(ctx, f)
		case "rm", "delete":
			if s.requireArg(cmd, arg) {
				_ = s.board.Delete(ctx, arg)
			}
		case "help":
			s.printf("%s", helpText)
		case "quit", "exit":
			return nil
		default:
			s.printf(msgUnknownCommand+"\n", cmd)
		}
	}
}

// runForm запрашивает поля, пока форма не закроется или пользователь не откажется.
// Пустой ответ оставляет текущее значение поля.
func (s *Shell) runForm(ctx context.Context, f submitter) {
	for {
		current := f.Values()

		title, ok := s.readField("Title", current.Title)
		if !ok {
			f.Dismiss()
			return
		}
		content, ok := s.readField("Content", current.Content)
		if !ok {
			f.Dismiss()
			return
		}

		state, err := f.Submit(ctx, entities.NoteInput{Title: title, Content: content})
		if err != nil {
			s.check(err)
			return
		}

		switch state {
		case form.StateInvalid:
			s.printErrors(f.Errors())
		case form.StateIdle:
		default:
			if state == form.StateClosedSynced {
				s.render()
			}
			return
		}

		answer, ok := s.readLine(msgRetry)
		if !ok || strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "n") {
			f.Dismiss()
			return
		}
	}
}

func (s *Shell) readField(name, current string) (string, bool) {
	label := name + ": "
	if current != "" {
		label = fmt.Sprintf("%s [%s]: ", name, current)
	}
	value, ok := s.readLine(label)
	if !ok {
		return "", false
	}
	if value == "" {
		return current, true
	}
	return value, true
}

func (s *Shell) readLine(label string) (string, bool) {
	s.printf("%s", label)
	if !s.scanner.Scan() {
		return "", false
	}
	return s.scanner.Text(), true
}

func (s *Shell) printErrors(errs validation.FieldErrors) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		s.printf("  %s: %s\n", field, errs[field])
	}
}

func (s *Shell) requireArg(cmd, arg string) bool {
	if arg == "" {
		s.printf(msgUsage+"\n", cmd)
		return false
	}
	return true
}

func (s *Shell) render() {
	s.check(s.board.Render(s.out))
}

func (s *Shell) check(err error) {
	if err != nil {
		s.printf("error: %v\n", err)
	}
}

func (s *Shell) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}
