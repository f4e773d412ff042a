package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"venuebook/internal/schedule"
)

// ReservationRow mirrors one row of the reservations table.
type ReservationRow struct {
	ID             string
	Venue          string
	StartTime      time.Time
	EndTime        time.Time
	OwnerID        string
	Status         string
	IdempotencyKey sql.NullString
	Metadata       []byte
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ToReservation converts a row into the domain type.
func (r ReservationRow) ToReservation() (schedule.Reservation, error) {
	res := schedule.Reservation{
		ID: r.ID,
		Interval: schedule.Interval{
			Venue: r.Venue,
			Start: r.StartTime,
			End:   r.EndTime,
		},
		OwnerID:   r.OwnerID,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.IdempotencyKey.Valid {
		res.IdempotencyKey = r.IdempotencyKey.String
	}
	if len(r.Metadata) > 0 {
		if err := json.Unmarshal(r.Metadata, &res.Metadata); err != nil {
			return schedule.Reservation{}, fmt.Errorf("decoding reservation %s metadata: %w", r.ID, err)
		}
	}
	return res, nil
}

// FromReservation converts the domain type into a row ready for insert.
func FromReservation(res schedule.Reservation) (ReservationRow, error) {
	row := ReservationRow{
		ID:        res.ID,
		Venue:     res.Interval.Venue,
		StartTime: res.Interval.Start,
		EndTime:   res.Interval.End,
		OwnerID:   res.OwnerID,
		Status:    res.Status,
		CreatedAt: res.CreatedAt,
		UpdatedAt: res.UpdatedAt,
	}
	if res.IdempotencyKey != "" {
		row.IdempotencyKey = sql.NullString{String: res.IdempotencyKey, Valid: true}
	}
	if len(res.Metadata) > 0 {
		raw, err := json.Marshal(res.Metadata)
		if err != nil {
			return ReservationRow{}, fmt.Errorf("encoding reservation metadata: %w", err)
		}
		row.Metadata = raw
	}
	return row, nil
}

// StaffAccount is a staff login row.
type StaffAccount struct {
	ID           int
	Email        string
	Role         string
	PasswordHash string
}
