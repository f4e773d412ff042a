package repository

import (
	"context"
	"database/sql"
	"strconv"

	"venuebook/internal/schedule"
)

// AdminRepository backs the staff dashboard listing: cross-venue queries with
// optional filters, cancelled reservations included.
type AdminRepository struct {
	DB *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{DB: db}
}

func (r *AdminRepository) ListReservations(ctx context.Context, date, venue, status string) ([]schedule.Reservation, error) {
	query := `
	SELECT ` + reservationColumns + `
	FROM reservations
	WHERE 1=1`
	args := []any{}
	idx := 1

	if date != "" {
		query += " AND DATE(start_time) = $" + strconv.Itoa(idx)
		args = append(args, date)
		idx++
	}
	if venue != "" {
		query += " AND venue = $" + strconv.Itoa(idx)
		args = append(args, venue)
		idx++
	}
	if status != "" {
		query += " AND status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}
	query += " ORDER BY start_time DESC"

	return scanMany(ctx, r.DB, query, args...)
}
