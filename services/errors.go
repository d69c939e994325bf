package services

import "errors"

// Failure kinds surfaced by services. Handlers translate these to HTTP
// statuses; anything else coming out of a service is an unexpected store
// failure and maps to a generic 500 with the detail kept server-side.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrBadRequest         = errors.New("bad request")
)
