package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProposeRequest is a candidate reservation submitted for admission.
type ProposeRequest struct {
	Venue          string
	Start          time.Time
	End            time.Time
	OwnerID        string
	IdempotencyKey string
	Metadata       map[string]string
}

// Service admits or rejects proposed reservations against the store. The
// store is the only shared mutable state: all conflict checks and inserts
// are serialized per venue inside Store.InsertIfNoConflict, so concurrent
// proposals for the same venue have exactly one winner.
type Service struct {
	Store    Store
	Notifier Notifier
}

func NewService(store Store, notifier Notifier) *Service {
	return &Service{Store: store, Notifier: notifier}
}

// Propose validates the candidate, checks it against existing reservations
// on the venue and either persists it with status "scheduled" or rejects it
// with a *ConflictError carrying the full conflicting set. Validation
// failures never reach the store.
func (s *Service) Propose(ctx context.Context, req ProposeRequest) (*Reservation, error) {
	if !req.Start.Before(req.End) {
		return nil, fmt.Errorf("%w: start %s must be before end %s",
			ErrInvalidInterval, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))
	}
	if req.Venue == "" {
		return nil, fmt.Errorf("%w: venue is required", ErrInvalidRequest)
	}
	if req.OwnerID == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidRequest)
	}

	now := time.Now().UTC()
	res := &Reservation{
		ID:             uuid.NewString(),
		Interval:       Interval{Venue: req.Venue, Start: req.Start, End: req.End},
		OwnerID:        req.OwnerID,
		Status:         StatusScheduled,
		IdempotencyKey: req.IdempotencyKey,
		Metadata:       req.Metadata,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	conflicts, err := s.Store.InsertIfNoConflict(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("admitting reservation for venue %q: %w", req.Venue, err)
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}

	if s.Notifier != nil {
		s.Notifier.ReservationCreated(*res)
	}
	return res, nil
}

// Cancel marks the reservation cancelled so it immediately stops counting
// toward conflicts. Cancelling twice is a no-op success; a missing id is
// ErrNotFound.
func (s *Service) Cancel(ctx context.Context, id string) error {
	res, changed, err := s.Store.MarkCancelled(ctx, id)
	if err != nil {
		return err
	}
	if changed && s.Notifier != nil {
		s.Notifier.ReservationCancelled(*res)
	}
	return nil
}

// ListForVenue returns the non-cancelled reservations on the venue that
// overlap [from, to), sorted by start time ascending. A zero "to" means no
// upper bound.
func (s *Service) ListForVenue(ctx context.Context, venue string, from, to time.Time) ([]Reservation, error) {
	if venue == "" {
		return nil, fmt.Errorf("%w: venue is required", ErrInvalidRequest)
	}
	return s.Store.ListByVenue(ctx, venue, from, to)
}
