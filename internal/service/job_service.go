package service

import (
	"fmt"
	"log"

	"venuebook/internal/repository"
	"venuebook/internal/schedule"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// RolloverReservationStatuses moves scheduled reservations whose start time
// has passed to "ongoing" and ongoing reservations whose end time has passed
// to "completed". Cancelled reservations are never touched.
func (s *JobService) RolloverReservationStatuses() error {
	if err := s.transition(s.Repo.GetScheduledIDsPastStart, schedule.StatusOngoing); err != nil {
		return err
	}
	return s.transition(s.Repo.GetOngoingIDsPastEnd, schedule.StatusCompleted)
}

func (s *JobService) transition(fetch func() ([]string, error), newStatus string) error {
	ids, err := fetch()
	if err != nil {
		return fmt.Errorf("cron job: failed to get reservations for %s rollover: %w", newStatus, err)
	}
	if len(ids) == 0 {
		return nil
	}

	log.Printf("Cron Job: Found %d reservations to mark as '%s'.", len(ids), newStatus)

	if err := s.Repo.UpdateReservationStatuses(ids, newStatus); err != nil {
		return fmt.Errorf("cron job: failed to update reservation statuses: %w", err)
	}
	return nil
}
