package server

import (
	"net/http"
	"strings"
)

// handleCalibrationReference handles POST /api/calibration/reference:
// anchor a portfolio valuation to an external reference value.
func (s *Server) handleCalibrationReference(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req struct {
		PortfolioID    string  `json:"portfolio_id" validate:"required"`
		ReferenceValue float64 `json:"reference_value" validate:"required,gt=0"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.app.CalibrationService.SetReference(r.Context(), userID, req.PortfolioID, req.ReferenceValue)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// handleCalibrationStatus handles GET /api/calibration/status/{portfolioID}.
func (s *Server) handleCalibrationStatus(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	portfolioID := strings.TrimPrefix(r.URL.Path, "/api/calibration/status/")
	if portfolioID == "" {
		WriteError(w, http.StatusBadRequest, "portfolio id is required in path")
		return
	}

	status, err := s.app.CalibrationService.Status(r.Context(), userID, portfolioID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, status)
}

// handleCalibrationReset handles POST /api/calibration/reset.
func (s *Server) handleCalibrationReset(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := s.app.CalibrationService.Reset(r.Context(), userID); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// handleAssetCalibration handles /api/calibration/assets/{assetID}
// (PUT set reference price, GET current calibration).
func (s *Server) handleAssetCalibration(w http.ResponseWriter, r *http.Request, assetID string) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodPut, http.MethodPost:
		var req struct {
			ReferencePrice float64 `json:"reference_price" validate:"required,gt=0"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if err := validate.Struct(&req); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		cal, err := s.app.CalibrationService.SetAssetCalibration(r.Context(), userID, assetID, req.ReferencePrice)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, cal)

	case http.MethodGet:
		cal, err := s.app.CalibrationService.GetAssetCalibration(r.Context(), userID, assetID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, cal)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}
