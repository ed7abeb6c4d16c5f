package app

import "errors"

var (
	ErrUnknownStorage = errors.New("unknown storage backend")
	ErrLoadRoles      = errors.New("failed to load roles")
	ErrLoadMessages   = errors.New("failed to load validation messages")
	ErrStorage        = errors.New("failed to set up storage")
)
