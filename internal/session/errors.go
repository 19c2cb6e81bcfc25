package session

import "errors"

var (
	// ErrEmptySessionID is a caller error, not a store fault.
	ErrEmptySessionID = errors.New("session id must not be empty")
)
