package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrNotFound            = errors.New("not found")
	ErrUnavailable         = errors.New("relay unavailable")
	ErrInternalServerError = errors.New("internal server error")
	ErrNoEndpoints         = errors.New("relay reported no endpoints")
)
