package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("conflict")
	ErrTransport          = errors.New("transport failure")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
