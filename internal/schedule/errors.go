package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInterval means start >= end; rejected before any store access.
	ErrInvalidInterval = errors.New("invalid interval")
	// ErrInvalidRequest means a required field (venue, owner) is missing.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotFound means the reservation id does not exist.
	ErrNotFound = errors.New("reservation not found")
)

// ConflictError rejects a proposal that overlaps existing reservations.
// It always carries the complete conflicting set, not just the first match,
// so callers can show the user every clashing booking.
type ConflictError struct {
	Conflicts []Reservation
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 1 {
		c := e.Conflicts[0]
		return fmt.Sprintf("conflicts with %q (%s - %s)",
			c.Title(), c.Interval.Start, c.Interval.End)
	}
	return fmt.Sprintf("conflicts with %d existing reservations", len(e.Conflicts))
}

// AsConflict unwraps err into a *ConflictError, if it is one.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	ok := errors.As(err, &ce)
	return ce, ok
}
