package service

import "errors"

// Error kinds shared across services. Callers match with errors.Is; the REST
// layer maps them to 404, 400, and 409 respectively. Wrapped messages carry
// the human-readable detail.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state")
)
