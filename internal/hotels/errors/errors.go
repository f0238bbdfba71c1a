package errors

import "errors"

var (
	// ErrNotFound reports a lookup for a hotel ID the registry does not hold.
	ErrNotFound = errors.New("hotel not found")

	// ErrDuplicateID reports an attempt to register a hotel under an ID that
	// is already taken.
	ErrDuplicateID = errors.New("hotel with this ID already exists")
)
