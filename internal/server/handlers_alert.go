package server

import (
	"net/http"

	"github.com/arolsen/finboard/internal/models"
)

// handleAlerts handles /api/alerts (GET list, POST create).
func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		alerts, err := s.app.AlertService.List(r.Context(), userID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"alerts": alerts,
		})

	case http.MethodPost:
		var alert models.Alert
		if !DecodeJSON(w, r, &alert) {
			return
		}

		created, err := s.app.AlertService.Create(r.Context(), userID, &alert)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleAlertByID handles /api/alerts/{id} (GET, PUT, DELETE).
func (s *Server) handleAlertByID(w http.ResponseWriter, r *http.Request, alertID string) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		alert, err := s.app.AlertService.Get(r.Context(), userID, alertID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, alert)

	case http.MethodPut:
		var alert models.Alert
		if !DecodeJSON(w, r, &alert) {
			return
		}
		alert.ID = alertID

		updated, err := s.app.AlertService.Update(r.Context(), userID, &alert)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.app.AlertService.Delete(r.Context(), userID, alertID); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

// handleAlertTrigger handles POST /api/alerts/{id}/trigger. The workflow
// engine calls this after it fires a notification for the alert.
func (s *Server) handleAlertTrigger(w http.ResponseWriter, r *http.Request, alertID string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	alert, err := s.app.AlertService.MarkTriggered(r.Context(), userID, alertID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, alert)
}
