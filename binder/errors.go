package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrInvalidForm          = errors.New("invalid form data")
	ErrMissingContentType   = errors.New("missing content type")
	ErrBodyTooLarge         = errors.New("request body too large")

	// ErrUnsupportedTarget is returned when the bind target is not *validator.Input.
	ErrUnsupportedTarget = errors.New("binder: target must be *validator.Input")

	// ErrNotApplicable lets a binder decline a request so the next one runs.
	ErrNotApplicable = errors.New("binder: not applicable")
)
