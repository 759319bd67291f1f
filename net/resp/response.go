package resp

import (
	"encoding/json"
	"net/http"

	"github.com/ncobase/qeonaru/ecode"
)

// Exception represents a failure response.
type Exception struct {
	Status  int               `json:"-"`                // HTTP status
	Code    int               `json:"code,omitempty"`   // Business code
	Message string            `json:"error"`            // Message
	Errors  map[string]string `json:"errors,omitempty"` // Validation errors
}

// Success handles success responses.
func Success(w http.ResponseWriter, data ...any) {
	WithStatusCode(w, http.StatusOK, data...)
}

// WithStatusCode handles success responses with custom status code.
func WithStatusCode(w http.ResponseWriter, statusCode int, data ...any) {
	var body any = map[string]any{"message": "ok"}
	if len(data) > 0 && data[0] != nil {
		body = data[0]
		if msg, ok := body.(string); ok {
			body = map[string]any{"message": msg}
		}
	}
	writeJSON(w, statusCode, body)
}

// Fail handles failure responses.
func Fail(w http.ResponseWriter, r *Exception) {
	if r == nil {
		r = InternalServer("")
	}
	status := r.Status
	if status == 0 {
		status = http.StatusBadRequest
	}
	if r.Code == 0 {
		r.Code = ecode.RequestErr
	}
	if r.Message == "" {
		r.Message = ecode.Text(r.Code)
	}
	writeJSON(w, status, r)
}

// FromError converts a service error into a failure response.
// Errors that do not carry an ecode are reported as a generic server error.
func FromError(err error) *Exception {
	e, ok := ecode.FromError(err)
	if !ok {
		return InternalServer("")
	}
	return &Exception{
		Status:  e.Status(),
		Code:    e.Code,
		Message: e.Message,
		Errors:  e.Fields,
	}
}

// BadRequest creates a 400 response.
func BadRequest(message string, errs ...map[string]string) *Exception {
	r := newException(http.StatusBadRequest, ecode.RequestErr, message)
	if len(errs) > 0 {
		r.Errors = errs[0]
	}
	return r
}

// UnAuthorized creates a 401 response.
func UnAuthorized(message string) *Exception {
	return newException(http.StatusUnauthorized, ecode.NoLogin, message)
}

// Forbidden creates a 403 response.
func Forbidden(message string) *Exception {
	return newException(http.StatusForbidden, ecode.AccessDenied, message)
}

// NotFound creates a 404 response.
func NotFound(message string) *Exception {
	return newException(http.StatusNotFound, ecode.NotFound, message)
}

// InternalServer creates a 500 response.
func InternalServer(message string) *Exception {
	return newException(http.StatusInternalServerError, ecode.ServerErr, message)
}

// ServiceUnavailable creates a 503 response.
func ServiceUnavailable(message string) *Exception {
	return newException(http.StatusServiceUnavailable, ecode.ServiceUnavailable, message)
}

func newException(status, code int, message string) *Exception {
	if message == "" {
		message = ecode.Text(code)
	}
	return &Exception{Status: status, Code: code, Message: message}
}

// writeJSON writes the JSON body with the given status code.
func writeJSON(w http.ResponseWriter, code int, res any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
	}
}
