package schedule

import (
	"context"
	"time"
)

// Store is the persistence collaborator behind the scheduling service. The
// backing store is the single serialization point: InsertIfNoConflict must
// run the conflict check and the insert as one atomic operation per venue,
// so two racing proposals for overlapping intervals can never both commit.
type Store interface {
	// InsertIfNoConflict persists res iff no non-cancelled reservation on the
	// same venue overlaps res.Interval. On conflict it returns the complete
	// overlapping set, sorted by start time, and persists nothing. If
	// res.IdempotencyKey is set and a reservation with the same key already
	// exists, that reservation is returned via res without inserting again.
	InsertIfNoConflict(ctx context.Context, res *Reservation) ([]Reservation, error)

	// MarkCancelled sets the reservation status to cancelled and returns the
	// updated reservation. Cancelling an already-cancelled reservation is a
	// no-op: the reservation comes back with changed=false. Returns
	// ErrNotFound when the id does not exist.
	MarkCancelled(ctx context.Context, id string) (res *Reservation, changed bool, err error)

	// FindConflicts returns every non-cancelled reservation on the venue
	// whose interval overlaps iv, sorted by start time ascending.
	FindConflicts(ctx context.Context, iv Interval) ([]Reservation, error)

	// ListByVenue returns the non-cancelled reservations on the venue that
	// overlap [from, to), sorted by start time ascending. A zero "to" means
	// no upper bound.
	ListByVenue(ctx context.Context, venue string, from, to time.Time) ([]Reservation, error)
}

// Notifier receives post-commit callbacks for admitted and cancelled
// reservations. Implementations must not block admission: the service calls
// these only after the store has committed, and ignores their failures.
type Notifier interface {
	ReservationCreated(res Reservation)
	ReservationCancelled(res Reservation)
}
