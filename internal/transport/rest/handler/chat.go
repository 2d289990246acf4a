package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"vetsupport/internal/model"
	"vetsupport/internal/service"
	"vetsupport/internal/transport/rest/middleware"
)

// ChatHandler handles companion chat endpoints
type ChatHandler struct {
	companionSvc *service.CompanionService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(companionSvc *service.CompanionService) *ChatHandler {
	return &ChatHandler{companionSvc: companionSvc}
}

// StartSession handles POST /v1/chat/session
func (h *ChatHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	veteranID := middleware.GetVeteranID(r.Context())
	if veteranID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	session, greeting, err := h.companionSvc.StartSession(r.Context(), veteranID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session":  session,
		"greeting": greeting,
	})
}

// GetSession handles GET /v1/chat/session
func (h *ChatHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	veteranID := middleware.GetVeteranID(r.Context())
	if veteranID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	session, err := h.companionSvc.Session(r.Context(), veteranID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if session == nil {
		writeError(w, http.StatusNotFound, "no active session")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

// SendMessage handles POST /v1/chat/messages
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	veteranID := middleware.GetVeteranID(r.Context())
	if veteranID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "message content required")
		return
	}

	reply, err := h.companionSvc.SendMessage(r.Context(), veteranID, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSession) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

// History handles GET /v1/chat/messages
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	veteranID := middleware.GetVeteranID(r.Context())
	if veteranID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	messages, err := h.companionSvc.History(r.Context(), veteranID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if messages == nil {
		messages = []*model.ChatMessage{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// EndSession handles DELETE /v1/chat/session
func (h *ChatHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	veteranID := middleware.GetVeteranID(r.Context())
	if veteranID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.companionSvc.EndSession(r.Context(), veteranID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ended"})
}
