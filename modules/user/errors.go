package user

import "errors"

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrHashPassword = errors.New("failed to hash password")
)
