package errors

import "errors"

var (
	ErrNotFound = errors.New("work order not found")

	ErrInvalidID = errors.New("invalid work order ID format")
)
