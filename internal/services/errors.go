package services

import "errors"

// Business failure kinds. Services wrap these with fmt.Errorf("%w: ...") so
// handlers can errors.Is on the kind while the message keeps the detail.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnavailable       = errors.New("service unavailable")
)
