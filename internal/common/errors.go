package common

import "errors"

var (
	// ErrValidation marks input rejected locally, before any request is sent.
	ErrValidation = errors.New("validation error")

	// ErrNotLoggedIn is returned when an operation needs a stored session.
	ErrNotLoggedIn = errors.New("not logged in")
)
