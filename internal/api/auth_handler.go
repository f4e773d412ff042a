package api

import (
	"encoding/json"
	"net/http"

	httperrors "venuebook/internal/errors"
	"venuebook/internal/service"
)

type StaffAuthHandler struct {
	service service.StaffAuthService
}

func NewStaffAuthHandler(svc service.StaffAuthService) *StaffAuthHandler {
	return &StaffAuthHandler{service: svc}
}

func (h *StaffAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, httperrors.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	token, err := h.service.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, httperrors.ErrUnauthorized("Invalid credentials"))
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}

func (h *StaffAuthHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, httperrors.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	if err := h.service.CreateStaff(req.Email, req.Password, req.Role); err != nil {
		writeError(w, httperrors.NewHTTPError(http.StatusInternalServerError, err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Staff account created"})
}
