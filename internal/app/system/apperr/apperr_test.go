package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("league not found"), http.StatusNotFound},
		{"conflict", Conflict("already activated"), http.StatusConflict},
		{"forbidden", Forbidden("not a moderator"), http.StatusForbidden},
		{"bad request", BadRequest("panelId is required"), http.StatusBadRequest},
		{"generic", errors.New("boom"), http.StatusInternalServerError},
		{"nil kind wrap", Wrap(KindConflict, "team is full", errors.New("raced")), http.StatusConflict},
		{"wrapped deeper", fmt.Errorf("outer: %w", NotFound("gone")), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.err); got != tt.want {
				t.Errorf("Status(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	if got := Message(Forbidden("nope")); got != "nope" {
		t.Errorf("Message = %q, want %q", got, "nope")
	}
	if got := Message(errors.New("mongo: connection reset")); got != "internal server error" {
		t.Errorf("Message leaked internals: %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("dup key")
	err := Wrap(KindConflict, "duplicate entry", inner)
	if !errors.Is(err, inner) {
		t.Error("expected wrapped error to match with errors.Is")
	}
	if KindOf(err) != KindConflict {
		t.Errorf("KindOf = %v, want KindConflict", KindOf(err))
	}
}
