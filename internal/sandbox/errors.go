package sandbox

import (
	"errors"
	"net/http"
)

// Error rechazo con status HTTP; el mensaje viaja textual en {"error": ...}.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func badRequest(msg string) error {
	return &Error{Status: http.StatusBadRequest, Code: "VALIDATION", Message: msg}
}
func unauthorized(msg string) error {
	return &Error{Status: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: msg}
}
func forbidden(msg string) error {
	return &Error{Status: http.StatusForbidden, Code: "FORBIDDEN", Message: msg}
}
func notFound(msg string) error {
	return &Error{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: msg}
}
func conflict(msg string) error {
	return &Error{Status: http.StatusConflict, Code: "CONFLICT", Message: msg}
}

// statusOf status HTTP y código de err; errores desconocidos son 500.
func statusOf(err error) (int, string) {
	var e *Error
	if errors.As(err, &e) {
		return e.Status, e.Code
	}
	return http.StatusInternalServerError, "INTERNAL"
}
