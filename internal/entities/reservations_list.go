package entities

import (
	"time"

	"venuebook/internal/schedule"
)

type ReservationResponse struct {
	ID       string            `json:"id"`
	Venue    string            `json:"venue"`
	Start    time.Time         `json:"start"`
	End      time.Time         `json:"end"`
	OwnerID  string            `json:"owner_id"`
	Status   string            `json:"status"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func NewReservationResponse(res schedule.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:       res.ID,
		Venue:    res.Interval.Venue,
		Start:    res.Interval.Start,
		End:      res.Interval.End,
		OwnerID:  res.OwnerID,
		Status:   res.Status,
		Metadata: res.Metadata,
	}
}

type ReservationsList struct {
	Total        int                   `json:"total"`
	Reservations []ReservationResponse `json:"reservations"`
}

func NewReservationsList(rs []schedule.Reservation) ReservationsList {
	out := ReservationsList{Total: len(rs), Reservations: make([]ReservationResponse, 0, len(rs))}
	for _, r := range rs {
		out.Reservations = append(out.Reservations, NewReservationResponse(r))
	}
	return out
}
