package errors

import "errors"

var (
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateEmail reports a registration or profile update whose email
	// is already taken by another user. Emails are compared after trimming,
	// case-sensitively.
	ErrDuplicateEmail = errors.New("email is already registered")
)
