package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"venuebook/internal/db"
	"venuebook/internal/schedule"
)

const reservationColumns = `id, venue, start_time, end_time, owner_id, status, idempotency_key, metadata, created_at, updated_at`

// ReservationRepository implements schedule.Store on Postgres. The
// check-then-insert window in InsertIfNoConflict is serialized per venue with
// a transaction-scoped advisory lock, so two racing proposals for the same
// venue cannot both pass the conflict check.
type ReservationRepository struct {
	DB *sql.DB
}

func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

func (r *ReservationRepository) InsertIfNoConflict(ctx context.Context, res *schedule.Reservation) ([]schedule.Reservation, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning admission transaction: %w", err)
	}
	defer tx.Rollback()

	// Serializes all admissions for this venue; released at commit/rollback.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, res.Interval.Venue); err != nil {
		return nil, fmt.Errorf("locking venue %q: %w", res.Interval.Venue, err)
	}

	if res.IdempotencyKey != "" {
		existing, err := scanOneTx(ctx, tx, `
			SELECT `+reservationColumns+`
			FROM reservations
			WHERE idempotency_key = $1`, res.IdempotencyKey)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("checking idempotency key: %w", err)
		}
		if err == nil {
			*res = *existing
			return nil, tx.Commit()
		}
	}

	conflicts, err := scanManyTx(ctx, tx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE venue = $1
		  AND status <> 'cancelled'
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time`,
		res.Interval.Venue, res.Interval.Start, res.Interval.End)
	if err != nil {
		return nil, fmt.Errorf("querying conflicts for venue %q: %w", res.Interval.Venue, err)
	}
	if len(conflicts) > 0 {
		return conflicts, tx.Commit()
	}

	row, err := db.FromReservation(*res)
	if err != nil {
		return nil, err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO reservations (`+reservationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		row.ID, row.Venue, row.StartTime, row.EndTime, row.OwnerID,
		row.Status, row.IdempotencyKey, row.Metadata, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting reservation for venue %q: %w", res.Interval.Venue, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing reservation for venue %q: %w", res.Interval.Venue, err)
	}
	return nil, nil
}

func (r *ReservationRepository) MarkCancelled(ctx context.Context, id string) (*schedule.Reservation, bool, error) {
	row := db.ReservationRow{}
	err := r.DB.QueryRowContext(ctx, `
		UPDATE reservations
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND status <> 'cancelled'
		RETURNING `+reservationColumns,
		id).Scan(
		&row.ID, &row.Venue, &row.StartTime, &row.EndTime, &row.OwnerID,
		&row.Status, &row.IdempotencyKey, &row.Metadata, &row.CreatedAt, &row.UpdatedAt)
	if err == nil {
		res, convErr := row.ToReservation()
		if convErr != nil {
			return nil, false, convErr
		}
		return &res, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("cancelling reservation %s: %w", id, err)
	}

	// Either the id does not exist or it was already cancelled.
	existing, err := r.getByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *ReservationRepository) FindConflicts(ctx context.Context, iv schedule.Interval) ([]schedule.Reservation, error) {
	return scanMany(ctx, r.DB, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE venue = $1
		  AND status <> 'cancelled'
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time`,
		iv.Venue, iv.Start, iv.End)
}

func (r *ReservationRepository) ListByVenue(ctx context.Context, venue string, from, to time.Time) ([]schedule.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE venue = $1
		  AND status <> 'cancelled'`
	args := []any{venue}
	if !from.IsZero() {
		args = append(args, from)
		query += fmt.Sprintf(" AND end_time > $%d", len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		query += fmt.Sprintf(" AND start_time < $%d", len(args))
	}
	query += " ORDER BY start_time"
	return scanMany(ctx, r.DB, query, args...)
}

func (r *ReservationRepository) getByID(ctx context.Context, id string) (*schedule.Reservation, error) {
	row := db.ReservationRow{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations WHERE id = $1`, id).Scan(
		&row.ID, &row.Venue, &row.StartTime, &row.EndTime, &row.OwnerID,
		&row.Status, &row.IdempotencyKey, &row.Metadata, &row.CreatedAt, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, schedule.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying reservation %s: %w", id, err)
	}
	res, err := row.ToReservation()
	if err != nil {
		return nil, err
	}
	return &res, nil
}

type rowQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func scanMany(ctx context.Context, q rowQuerier, query string, args ...any) ([]schedule.Reservation, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.Reservation
	for rows.Next() {
		row := db.ReservationRow{}
		if err := rows.Scan(
			&row.ID, &row.Venue, &row.StartTime, &row.EndTime, &row.OwnerID,
			&row.Status, &row.IdempotencyKey, &row.Metadata, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning reservation row: %w", err)
		}
		res, err := row.ToReservation()
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reservation rows: %w", err)
	}
	return out, nil
}

func scanManyTx(ctx context.Context, tx *sql.Tx, query string, args ...any) ([]schedule.Reservation, error) {
	return scanMany(ctx, tx, query, args...)
}

func scanOneTx(ctx context.Context, tx *sql.Tx, query string, args ...any) (*schedule.Reservation, error) {
	row := db.ReservationRow{}
	err := tx.QueryRowContext(ctx, query, args...).Scan(
		&row.ID, &row.Venue, &row.StartTime, &row.EndTime, &row.OwnerID,
		&row.Status, &row.IdempotencyKey, &row.Metadata, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		return nil, err
	}
	res, err := row.ToReservation()
	if err != nil {
		return nil, err
	}
	return &res, nil
}
