package server

import (
	"net/http"

	"github.com/arolsen/finboard/internal/interfaces"
)

// handlePortfolios handles /api/portfolios (GET list, POST create).
func (s *Server) handlePortfolios(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		portfolios, err := s.app.PortfolioService.ListPortfolios(r.Context(), userID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"portfolios": portfolios,
		})

	case http.MethodPost:
		var req struct {
			Name string `json:"name" validate:"required"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if err := validate.Struct(&req); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		p, err := s.app.PortfolioService.CreatePortfolio(r.Context(), userID, req.Name)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, p)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handlePortfolioByID handles /api/portfolios/{id} (GET, DELETE).
func (s *Server) handlePortfolioByID(w http.ResponseWriter, r *http.Request, portfolioID string) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		p, err := s.app.PortfolioService.GetPortfolio(r.Context(), userID, portfolioID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, p)

	case http.MethodDelete:
		if err := s.app.PortfolioService.DeletePortfolio(r.Context(), userID, portfolioID); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}

// handlePortfolioPerformance handles GET /api/portfolios/{id}/performance.
func (s *Server) handlePortfolioPerformance(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	perf, err := s.app.PortfolioService.GetPerformance(r.Context(), userID, portfolioID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, perf)
}

// handlePortfolioHoldings handles POST /api/portfolios/{id}/holdings.
func (s *Server) handlePortfolioHoldings(w http.ResponseWriter, r *http.Request, portfolioID string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req interfaces.AddHoldingRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.PortfolioID = portfolioID
	if err := validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h, err := s.app.PortfolioService.AddHolding(r.Context(), userID, req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, h)
}

// handleHoldingCreate handles POST /api/holdings (portfolio id in body).
func (s *Server) handleHoldingCreate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req interfaces.AddHoldingRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	h, err := s.app.PortfolioService.AddHolding(r.Context(), userID, req)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, h)
}

// handleHoldingByID handles /api/holdings/{id} (PUT update, DELETE).
func (s *Server) handleHoldingByID(w http.ResponseWriter, r *http.Request, holdingID string) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req struct {
			Quantity    float64 `json:"quantity" validate:"required,gt=0"`
			AvgBuyPrice float64 `json:"avg_buy_price" validate:"required,gt=0"`
		}
		if !DecodeJSON(w, r, &req) {
			return
		}
		if err := validate.Struct(&req); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		h, err := s.app.PortfolioService.UpdateHolding(r.Context(), userID, holdingID, req.Quantity, req.AvgBuyPrice)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, h)

	case http.MethodDelete:
		if err := s.app.PortfolioService.DeleteHolding(r.Context(), userID, holdingID); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		RequireMethod(w, r, http.MethodPut, http.MethodDelete)
	}
}
