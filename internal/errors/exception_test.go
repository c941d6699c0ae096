package errors

import (
	"fmt"
	"io"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"bad request", ErrBadRequest, http.StatusBadRequest},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"not found", ErrTaskNotFound, http.StatusNotFound},
		{"internal", ErrInternal, http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("update task: %w", ErrTaskNotFound), http.StatusNotFound},
		{"unknown", io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusCode(tc.err); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
