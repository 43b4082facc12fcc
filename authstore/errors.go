package authstore

import "errors"

var (
	// ErrNoSession is returned by operations that require a signed-in user.
	ErrNoSession = errors.New("no active session")

	// ErrProfileNotFound is returned when no profile row exists for an id.
	ErrProfileNotFound = errors.New("profile not found")
)
