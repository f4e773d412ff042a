package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"venuebook/internal/auth"
	"venuebook/internal/entities"
	httperrors "venuebook/internal/errors"
	"venuebook/internal/schedule"
	"venuebook/internal/service"
)

type ReservationHandler struct {
	Service *service.BookingService
}

func NewReservationHandler(svc *service.BookingService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, httperrors.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	res, err := h.Service.CreateReservation(r.Context(), schedule.ProposeRequest{
		Venue:          req.Venue,
		Start:          req.Start,
		End:            req.End,
		OwnerID:        auth.StaffIDFromContext(r.Context()),
		IdempotencyKey: req.IdempotencyKey,
		Metadata:       req.Metadata,
	})
	if err != nil {
		if ce, ok := schedule.AsConflict(err); ok {
			writeConflict(w, ce)
			return
		}
		if errors.Is(err, schedule.ErrInvalidInterval) || errors.Is(err, schedule.ErrInvalidRequest) {
			writeError(w, httperrors.NewHTTPError(http.StatusBadRequest, err.Error()))
			return
		}
		log.Printf("Error creating reservation: %v", err)
		writeError(w, httperrors.NewHTTPError(http.StatusInternalServerError, "Could not create reservation"))
		return
	}

	writeJSON(w, http.StatusCreated, entities.NewReservationResponse(*res))
}

func (h *ReservationHandler) ListVenueReservations(w http.ResponseWriter, r *http.Request) {
	venue := mux.Vars(r)["venue"]

	from, err := parseTimeParam(r, "from")
	if err != nil {
		writeError(w, httperrors.NewHTTPError(http.StatusBadRequest, "Invalid 'from' timestamp"))
		return
	}
	to, err := parseTimeParam(r, "to")
	if err != nil {
		writeError(w, httperrors.NewHTTPError(http.StatusBadRequest, "Invalid 'to' timestamp"))
		return
	}

	reservations, err := h.Service.ListVenueReservations(r.Context(), venue, from, to)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidRequest) {
			writeError(w, httperrors.NewHTTPError(http.StatusBadRequest, err.Error()))
			return
		}
		log.Printf("Error listing reservations for venue %q: %v", venue, err)
		writeError(w, httperrors.NewHTTPError(http.StatusInternalServerError, "Could not list reservations"))
		return
	}

	writeJSON(w, http.StatusOK, entities.NewReservationsList(reservations))
}

func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.Service.CancelReservation(r.Context(), id); err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			writeError(w, httperrors.NewHTTPError(http.StatusNotFound, "Reservation not found"))
			return
		}
		log.Printf("Error cancelling reservation %s: %v", id, err)
		writeError(w, httperrors.NewHTTPError(http.StatusInternalServerError, "Could not cancel reservation"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Reservation cancelled"})
}

func writeConflict(w http.ResponseWriter, ce *schedule.ConflictError) {
	resp := ConflictResponse{Error: "Conflict detected"}
	for _, c := range ce.Conflicts {
		resp.Conflicts = append(resp.Conflicts, ConflictEntry{
			ID:    c.ID,
			Title: c.Title(),
			Start: c.Interval.Start,
			End:   c.Interval.End,
		})
	}
	writeJSON(w, http.StatusConflict, resp)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err *httperrors.HTTPError) {
	writeJSON(w, err.Code, map[string]string{"error": err.Message})
}

func parseTimeParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
