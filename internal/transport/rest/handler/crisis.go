package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"vetsupport/internal/service"
	"vetsupport/internal/transport/rest/middleware"
)

// CrisisHandler handles crisis state endpoints
type CrisisHandler struct {
	crisisSvc *service.CrisisService
}

// NewCrisisHandler creates a new crisis handler
func NewCrisisHandler(crisisSvc *service.CrisisService) *CrisisHandler {
	return &CrisisHandler{crisisSvc: crisisSvc}
}

// GetState handles GET /v1/crisis/state
func (h *CrisisHandler) GetState(w http.ResponseWriter, r *http.Request) {
	veteranID := middleware.GetVeteranID(r.Context())
	if veteranID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	writeJSON(w, http.StatusOK, h.crisisSvc.State(veteranID))
}

// Acknowledge handles POST /v1/crisis/alerts/{alertId}/ack
func (h *CrisisHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	veteranID := middleware.GetVeteranID(r.Context())
	if veteranID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	alertID := mux.Vars(r)["alertId"]
	if !h.crisisSvc.AcknowledgeAlert(veteranID, alertID) {
		writeError(w, http.StatusNotFound, "alert not found")
		return
	}

	writeJSON(w, http.StatusOK, h.crisisSvc.State(veteranID))
}

// DismissOverlay handles POST /v1/crisis/overlay/dismiss
func (h *CrisisHandler) DismissOverlay(w http.ResponseWriter, r *http.Request) {
	veteranID := middleware.GetVeteranID(r.Context())
	if veteranID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.crisisSvc.DismissOverlay(veteranID)
	writeJSON(w, http.StatusOK, h.crisisSvc.State(veteranID))
}

// Resources handles GET /v1/crisis/resources. Public: crisis resources
// must be reachable without a login.
func (h *CrisisHandler) Resources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"resources": h.crisisSvc.Resources(),
	})
}
