package server

import (
	"net/http"

	"github.com/arolsen/finboard/internal/models"
)

// handleAnalyses handles /api/analyses (GET list, POST request new).
func (s *Server) handleAnalyses(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		analyses, err := s.app.AnalysisService.List(r.Context(), userID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"analyses": analyses,
		})

	case http.MethodPost:
		var req struct {
			Kind     string `json:"kind" validate:"required,oneof=analysis suggestion"`
			Scope    string `json:"scope" validate:"required,oneof=asset portfolio"`
			TargetID string `json:"target_id" validate:"required"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if err := validate.Struct(&req); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		analysis, err := s.app.AnalysisService.Request(r.Context(), userID, models.AnalysisKind(req.Kind), req.Scope, req.TargetID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, analysis)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleAnalysisByID handles /api/analyses/{id} (GET, DELETE).
func (s *Server) handleAnalysisByID(w http.ResponseWriter, r *http.Request, analysisID string) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		analysis, err := s.app.AnalysisService.Get(r.Context(), userID, analysisID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, analysis)

	case http.MethodDelete:
		if err := s.app.AnalysisService.Delete(r.Context(), userID, analysisID); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}
