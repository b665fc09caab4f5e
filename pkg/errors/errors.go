// ================== pkg/errors/errors.go =================
package errors

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrInternal     = errors.New("internal server error")
	ErrDuplicate    = errors.New("resource already exists")
	ErrValidation   = errors.New("validation failed")
)

// Domain errors surfaced to the user as messages. None of them is fatal.
var (
	ErrDuplicateUser      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("please login to report")
	ErrMissingField       = errors.New("required field is missing")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrCorruptLocalState  = errors.New("local state is corrupt")
)
