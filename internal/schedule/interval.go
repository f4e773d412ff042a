package schedule

import (
	"fmt"
	"time"
)

// Interval is a half-open time range [Start, End) bound to a venue.
// Instances are built through NewInterval and never mutated afterwards.
type Interval struct {
	Venue string
	Start time.Time
	End   time.Time
}

func NewInterval(venue string, start, end time.Time) (Interval, error) {
	if venue == "" {
		return Interval{}, fmt.Errorf("%w: venue is required", ErrInvalidRequest)
	}
	if !start.Before(end) {
		return Interval{}, fmt.Errorf("%w: start %s must be before end %s",
			ErrInvalidInterval, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{Venue: venue, Start: start, End: end}, nil
}

// Overlaps reports whether two intervals on the same venue conflict.
// Intervals on different venues never conflict. Abutting intervals
// (a.End == b.Start) do not conflict.
func Overlaps(a, b Interval) bool {
	if a.Venue != b.Venue {
		return false
	}
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}
