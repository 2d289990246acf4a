package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"vetsupport/internal/model"
	"vetsupport/internal/scoring"
	"vetsupport/internal/service"
	"vetsupport/internal/transport/rest/middleware"
)

// AssessmentHandler handles assessment endpoints
type AssessmentHandler struct {
	assessmentSvc *service.AssessmentService
}

// NewAssessmentHandler creates a new assessment handler
func NewAssessmentHandler(assessmentSvc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentSvc: assessmentSvc}
}

// Instruments handles GET /v1/assessments/instruments
func (h *AssessmentHandler) Instruments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"instruments": h.assessmentSvc.Instruments(),
	})
}

// Submit handles POST /v1/assessments
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	veteranID := middleware.GetVeteranID(r.Context())
	if veteranID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.SubmitAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.assessmentSvc.Submit(r.Context(), veteranID, &req)
	if err != nil {
		var verr *scoring.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// History handles GET /v1/assessments
func (h *AssessmentHandler) History(w http.ResponseWriter, r *http.Request) {
	veteranID := middleware.GetVeteranID(r.Context())
	if veteranID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	assessments, err := h.assessmentSvc.History(r.Context(), veteranID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if assessments == nil {
		assessments = []*model.Assessment{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"assessments": assessments})
}
