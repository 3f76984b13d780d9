package loadcalc

import "errors"

var (
	// ErrInvalidInput is returned when a name is empty or a rating is not strictly positive.
	ErrInvalidInput = errors.New("loadcalc: invalid input")
	// ErrNotFound is returned when a circuit or device id does not exist.
	ErrNotFound = errors.New("loadcalc: not found")
	// ErrDuplicateID is returned when an id is already used within its collection.
	ErrDuplicateID = errors.New("loadcalc: duplicate id")
)
