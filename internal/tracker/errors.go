package tracker

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches any NotFoundError via errors.Is.
	ErrNotFound = errors.New("task not found")
	// ErrInvalidStatus is returned when Mark is given a status outside
	// the two explicit mark targets.
	ErrInvalidStatus = errors.New("invalid status")
)

// NotFoundError reports an operation against an id that is not in the store.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task with ID %d not found", e.ID)
}

// Is makes errors.Is(err, ErrNotFound) succeed for NotFoundError values.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
