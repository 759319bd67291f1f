package ecode

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		code int
		want int
	}{
		{OK, http.StatusOK},
		{NoLogin, http.StatusUnauthorized},
		{AccessDenied, http.StatusForbidden},
		{NotFound, http.StatusNotFound},
		{RequestErr, http.StatusBadRequest},
		{ParamErr, http.StatusBadRequest},
		{Conflict, http.StatusBadRequest},
		{ServiceUnavailable, http.StatusServiceUnavailable},
		{ServerErr, http.StatusInternalServerError},
		{-9999, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := ToHTTPStatus(tt.code); got != tt.want {
			t.Errorf("ToHTTPStatus(%d) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestNewDefaultsMessage(t *testing.T) {
	err := New(NotFound, "")
	if err.Message != Text(NotFound) {
		t.Errorf("Message = %q, want %q", err.Message, Text(NotFound))
	}
}

func TestFromErrorThroughWrapping(t *testing.T) {
	cause := errors.New("boom")
	wrapped := fmt.Errorf("loading post: %w", InternalError("Error fetching post", cause))

	e, ok := FromError(wrapped)
	if !ok {
		t.Fatal("FromError() did not find *Error in chain")
	}
	if e.Code != ServerErr {
		t.Errorf("Code = %d, want %d", e.Code, ServerErr)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is() should reach the original cause")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(nil); got != OK {
		t.Errorf("CodeOf(nil) = %d, want %d", got, OK)
	}
	if got := CodeOf(errors.New("plain")); got != ServerErr {
		t.Errorf("CodeOf(plain) = %d, want %d", got, ServerErr)
	}
	if got := CodeOf(AccessDeniedError("Access denied")); got != AccessDenied {
		t.Errorf("CodeOf(access denied) = %d, want %d", got, AccessDenied)
	}
}

func TestFieldMessages(t *testing.T) {
	if got := FieldIsRequired("email"); got != "email required" {
		t.Errorf("FieldIsRequired() = %q", got)
	}
	if got := FieldIsInvalid(); got != "invalid" {
		t.Errorf("FieldIsInvalid() = %q", got)
	}
}
