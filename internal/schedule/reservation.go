package schedule

import "time"

const (
	StatusScheduled = "scheduled"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Reservation is an admitted booking of a venue for an interval. Metadata is
// an opaque bag (title, description, department, ...) the scheduler stores
// but never interprets, except that callers conventionally put the display
// title under "title".
type Reservation struct {
	ID             string
	Interval       Interval
	OwnerID        string
	Status         string
	IdempotencyKey string
	Metadata       map[string]string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Title returns the display title from the metadata bag, if any.
func (r Reservation) Title() string {
	return r.Metadata["title"]
}

// Active reports whether the reservation still counts toward conflicts.
func (r Reservation) Active() bool {
	return r.Status != StatusCancelled
}
