package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	ErrDuplicateID = errors.New("reservation with this ID already exists")
)
