package service

import (
	"context"
	"fmt"
	"time"

	"venuebook/internal/schedule"
	"venuebook/internal/utils"
)

// BookingService is what the API layer talks to. It normalizes the incoming
// metadata and delegates admission, cancellation and listing to the
// scheduling core.
type BookingService struct {
	Scheduler *schedule.Service
}

func NewBookingService(scheduler *schedule.Service) *BookingService {
	return &BookingService{Scheduler: scheduler}
}

func (s *BookingService) CreateReservation(ctx context.Context, req schedule.ProposeRequest) (*schedule.Reservation, error) {
	if et, ok := req.Metadata["event_type"]; ok {
		normalized, err := utils.NormalizeEventType(et)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", schedule.ErrInvalidRequest, err)
		}
		req.Metadata["event_type"] = normalized
	}
	return s.Scheduler.Propose(ctx, req)
}

func (s *BookingService) CancelReservation(ctx context.Context, id string) error {
	return s.Scheduler.Cancel(ctx, id)
}

func (s *BookingService) ListVenueReservations(ctx context.Context, venue string, from, to time.Time) ([]schedule.Reservation, error) {
	return s.Scheduler.ListForVenue(ctx, venue, from, to)
}
