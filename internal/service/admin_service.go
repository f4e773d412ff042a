package service

import (
	"context"

	"venuebook/internal/repository"
	"venuebook/internal/schedule"
)

// AdminService backs the staff dashboard: cross-venue listing with filters,
// including cancelled reservations.
type AdminService struct {
	adminRepo *repository.AdminRepository
}

func NewAdminService(adminRepo *repository.AdminRepository) *AdminService {
	return &AdminService{adminRepo: adminRepo}
}

func (s *AdminService) ListReservations(ctx context.Context, date, venue, status string) ([]schedule.Reservation, error) {
	return s.adminRepo.ListReservations(ctx, date, venue, status)
}
