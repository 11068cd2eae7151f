package api_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"notesboard/internal/client/ports/api"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"api error", &api.APIError{StatusCode: 500, Message: "server error"}, "server error"},
		{"wrapped api error", fmt.Errorf("update note: %w", &api.APIError{StatusCode: 404, Message: "gone"}), "gone"},
		{"api error without message", &api.APIError{StatusCode: 502}, api.MsgGenericFailure},
		{"transport error", errors.New("connection refused"), "connection refused"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, api.UserMessage(tc.err))
		})
	}
}
