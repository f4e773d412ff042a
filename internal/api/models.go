package api

import "time"

// Reservation
type CreateReservationRequest struct {
	Venue          string            `json:"venue"`
	Start          time.Time         `json:"start"`
	End            time.Time         `json:"end"`
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

type ConflictEntry struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type ConflictResponse struct {
	Error     string          `json:"error"`
	Conflicts []ConflictEntry `json:"conflicts"`
}

// Auth
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type CreateStaffRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
