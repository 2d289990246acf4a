package handler

import (
	"encoding/json"
	"net/http"

	"vetsupport/internal/model"
	"vetsupport/internal/service"
	"vetsupport/internal/transport/rest/middleware"
)

// ProfileHandler handles veteran profile endpoints
type ProfileHandler struct {
	profileSvc *service.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileSvc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// Get handles GET /v1/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	veteranID := middleware.GetVeteranID(r.Context())
	if veteranID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profile, err := h.profileSvc.Get(r.Context(), veteranID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Update handles PUT /v1/profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	veteranID := middleware.GetVeteranID(r.Context())
	if veteranID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.VeteranProfile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.profileSvc.Update(r.Context(), veteranID, &req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// CompleteOnboarding handles POST /v1/profile/onboarding
func (h *ProfileHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	veteranID := middleware.GetVeteranID(r.Context())
	if veteranID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.VeteranProfile
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.profileSvc.CompleteOnboarding(r.Context(), veteranID, &req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
