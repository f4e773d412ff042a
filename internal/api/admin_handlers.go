package api

import (
	"log"
	"net/http"

	"venuebook/internal/entities"
	httperrors "venuebook/internal/errors"
	"venuebook/internal/service"
)

type AdminHandler struct {
	Service *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (h *AdminHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	venue := r.URL.Query().Get("venue")
	status := r.URL.Query().Get("status")
	reservations, err := h.Service.ListReservations(r.Context(), date, venue, status)
	if err != nil {
		log.Printf("Error listing reservations for admin: %v", err)
		writeError(w, httperrors.NewHTTPError(http.StatusInternalServerError, "Database error"))
		return
	}
	writeJSON(w, http.StatusOK, entities.NewReservationsList(reservations))
}
