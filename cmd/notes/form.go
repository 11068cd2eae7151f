package main

import (
	"fmt"
	"sort"

	"notesboard/internal/client/form"
	"notesboard/internal/client/validation"
)

// finishForm переводит итоговое состояние формы в результат команды.
// show вызывается только после успешной синхронизации.
func (c *cli) finishForm(state form.State, errs validation.FieldErrors, show func() error) error {
	switch state {
	case form.StateClosedSynced:
		return show()
	case form.StateInvalid:
		fields := make([]string, 0, len(errs))
		for field := range errs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(c.errOut, "  %s: %s\n", field, errs[field])
		}
		return errReported
	default:
		// Уведомление об ошибке уже выведено формой.
		return errReported
	}
}
