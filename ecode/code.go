package ecode

import "net/http"

const (
	OK = 0

	NoLogin = -101 // missing, invalid or expired credentials

	RequestErr   = -400
	ParamErr     = -401
	AccessDenied = -403
	NotFound     = -404
	Conflict     = -409

	ServerErr          = -500
	ServiceUnavailable = -503
)

var messages = map[int]string{
	OK:                 "ok",
	NoLogin:            "Account not logged in",
	RequestErr:         "Invalid request",
	ParamErr:           "Invalid parameters",
	AccessDenied:       "Access denied",
	NotFound:           "Resource not found",
	Conflict:           "Resource conflict",
	ServerErr:          "Internal server error",
	ServiceUnavailable: "Service unavailable",
}

// Text returns the default message for a code.
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[ServerErr]
}

// ToHTTPStatus maps a business code to its HTTP status.
// Conflicts are reported as 400 to match the registration contract.
func ToHTTPStatus(code int) int {
	switch code {
	case OK:
		return http.StatusOK
	case NoLogin:
		return http.StatusUnauthorized
	case AccessDenied:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case RequestErr, ParamErr, Conflict:
		return http.StatusBadRequest
	case ServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
