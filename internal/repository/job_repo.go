package repository

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// GetScheduledIDsPastStart returns ids of scheduled reservations whose start
// time has passed.
func (r *JobRepository) GetScheduledIDsPastStart() ([]string, error) {
	return r.queryIDs(`SELECT id FROM reservations WHERE status = 'scheduled' AND start_time <= NOW()`)
}

// GetOngoingIDsPastEnd returns ids of ongoing reservations whose end time has
// passed.
func (r *JobRepository) GetOngoingIDsPastEnd() ([]string, error) {
	return r.queryIDs(`SELECT id FROM reservations WHERE status = 'ongoing' AND end_time <= NOW()`)
}

// UpdateReservationStatuses moves the given reservations to newStatus.
func (r *JobRepository) UpdateReservationStatuses(ids []string, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = ANY($2)`
	result, err := r.DB.Exec(query, newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating reservation statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d reservations to '%s'", rowsAffected, newStatus)
	}
	return nil
}

func (r *JobRepository) queryIDs(query string) ([]string, error) {
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying reservation ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning reservation ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}
