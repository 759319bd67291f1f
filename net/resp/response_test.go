package resp

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ncobase/qeonaru/ecode"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestSuccessWritesPayload(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, map[string]any{"users": []string{"alice"}})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	body := decode(t, w)
	if _, ok := body["users"]; !ok {
		t.Errorf("body = %v, want users key", body)
	}
}

func TestWithStatusCodeWrapsString(t *testing.T) {
	w := httptest.NewRecorder()
	WithStatusCode(w, http.StatusCreated, "User registered successfully")

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if got := decode(t, w)["message"]; got != "User registered successfully" {
		t.Errorf("message = %v", got)
	}
}

func TestFailWritesErrorBody(t *testing.T) {
	w := httptest.NewRecorder()
	Fail(w, BadRequest("Missing required fields", map[string]string{"email": "email required"}))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	body := decode(t, w)
	if body["error"] != "Missing required fields" {
		t.Errorf("error = %v", body["error"])
	}
	if body["code"] != float64(ecode.RequestErr) {
		t.Errorf("code = %v, want %d", body["code"], ecode.RequestErr)
	}
	errs, ok := body["errors"].(map[string]any)
	if !ok || errs["email"] != "email required" {
		t.Errorf("errors = %v", body["errors"])
	}
}

func TestFailNil(t *testing.T) {
	w := httptest.NewRecorder()
	Fail(w, nil)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if got := decode(t, w)["error"]; got != "Internal server error" {
		t.Errorf("error = %v", got)
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", ecode.NotFoundError("Post not found"), http.StatusNotFound, "Post not found"},
		{"auth", ecode.AuthError("Invalid email or password"), http.StatusUnauthorized, "Invalid email or password"},
		{"conflict", ecode.ConflictError("Email is already in use"), http.StatusBadRequest, "Email is already in use"},
		{"foreign", errors.New("socket closed"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := FromError(tt.err)
			if r.Status != tt.status {
				t.Errorf("Status = %d, want %d", r.Status, tt.status)
			}
			if r.Message != tt.message {
				t.Errorf("Message = %q, want %q", r.Message, tt.message)
			}
		})
	}
}

func TestExceptionHelpers(t *testing.T) {
	tests := []struct {
		r      *Exception
		status int
		code   int
	}{
		{UnAuthorized(""), http.StatusUnauthorized, ecode.NoLogin},
		{Forbidden("Access denied"), http.StatusForbidden, ecode.AccessDenied},
		{NotFound("Route not found"), http.StatusNotFound, ecode.NotFound},
		{ServiceUnavailable(""), http.StatusServiceUnavailable, ecode.ServiceUnavailable},
	}
	for _, tt := range tests {
		if tt.r.Status != tt.status || tt.r.Code != tt.code || tt.r.Message == "" {
			t.Errorf("exception = %+v, want status %d code %d", tt.r, tt.status, tt.code)
		}
	}
}
