package apperror

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Repositories and services wrap these so handlers can map
// errors to HTTP status codes with errors.Is instead of string matching.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)

type AppError struct {
	Err     error  // sentinel kind
	Message string // human-readable message returned to the client
	Cause   error  // optional underlying error, logged but never serialized
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing parent or child entity. A malformed document id
// maps here as well: at the response level it is indistinguishable from a
// genuinely absent record.
func NotFound(message string) *AppError {
	return &AppError{Err: ErrNotFound, Message: message}
}

func NotFoundf(format string, args ...any) *AppError {
	return &AppError{Err: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(message string) *AppError {
	return &AppError{Err: ErrUnauthorized, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Err: ErrConflict, Message: message}
}

func Validation(message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message}
}

// Internal wraps an unexpected error. The cause stays attached for logging
// but the client only ever sees a generic message.
func Internal(cause error) *AppError {
	return &AppError{Err: ErrInternal, Message: "Server Error", Cause: cause}
}

