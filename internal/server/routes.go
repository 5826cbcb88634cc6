package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/arolsen/finboard/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Auth
	mux.HandleFunc("/api/auth/register", s.handleAuthRegister)
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/api/auth/me", s.handleAuthMe)

	// Portfolios and holdings
	mux.HandleFunc("/api/portfolios/", s.routePortfolios)
	mux.HandleFunc("/api/portfolios", s.handlePortfolios)
	mux.HandleFunc("/api/holdings/", s.routeHoldings)
	mux.HandleFunc("/api/holdings", s.handleHoldingCreate)

	// Asset catalog and price ingest
	mux.HandleFunc("/api/assets/", s.routeAssets)
	mux.HandleFunc("/api/assets", s.handleAssets)

	// Calibration
	mux.HandleFunc("/api/calibration/reference", s.handleCalibrationReference)
	mux.HandleFunc("/api/calibration/status/", s.handleCalibrationStatus)
	mux.HandleFunc("/api/calibration/reset", s.handleCalibrationReset)
	mux.HandleFunc("/api/calibration/assets/", s.routeAssetCalibration)

	// Alerts
	mux.HandleFunc("/api/alerts/", s.routeAlerts)
	mux.HandleFunc("/api/alerts", s.handleAlerts)

	// Analyses
	mux.HandleFunc("/api/analyses/", s.routeAnalyses)
	mux.HandleFunc("/api/analyses", s.handleAnalyses)

	// FX rates (cached)
	mux.HandleFunc("/api/fx/rates", s.handleFxRates)
}

// requireUser resolves the authenticated user from the request context.
// Returns ("", false) after writing a 401 when no identity is present.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := common.ResolveUserID(r.Context())
	if userID == "" {
		w.Header().Set("WWW-Authenticate", "Bearer")
		WriteError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return userID, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"uptime":  time.Since(s.app.StartupTime).Round(time.Second).String(),
		"version": common.Version,
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetFullVersion(),
	})
}

// routePortfolios dispatches /api/portfolios/{id}[/performance|/holdings].
func (s *Server) routePortfolios(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/portfolios/")
	if path == "" {
		s.handlePortfolios(w, r)
		return
	}

	switch {
	case strings.HasSuffix(path, "/performance"):
		id := PathParam(r, "/api/portfolios/", "/performance")
		s.handlePortfolioPerformance(w, r, id)
	case strings.HasSuffix(path, "/holdings"):
		id := PathParam(r, "/api/portfolios/", "/holdings")
		s.handlePortfolioHoldings(w, r, id)
	default:
		s.handlePortfolioByID(w, r, path)
	}
}

// routeHoldings dispatches /api/holdings/{id}.
func (s *Server) routeHoldings(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/holdings/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "holding id is required in path")
		return
	}
	s.handleHoldingByID(w, r, id)
}

// routeAssets dispatches /api/assets/{id}[/price].
func (s *Server) routeAssets(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/assets/")
	if path == "" {
		s.handleAssets(w, r)
		return
	}

	if strings.HasSuffix(path, "/price") {
		id := PathParam(r, "/api/assets/", "/price")
		s.handleAssetPrice(w, r, id)
		return
	}
	s.handleAssetByID(w, r, path)
}

// routeAssetCalibration dispatches /api/calibration/assets/{assetID}.
func (s *Server) routeAssetCalibration(w http.ResponseWriter, r *http.Request) {
	assetID := strings.TrimPrefix(r.URL.Path, "/api/calibration/assets/")
	if assetID == "" {
		WriteError(w, http.StatusBadRequest, "asset id is required in path")
		return
	}
	s.handleAssetCalibration(w, r, assetID)
}

// routeAlerts dispatches /api/alerts/{id}[/trigger].
func (s *Server) routeAlerts(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/alerts/")
	if path == "" {
		s.handleAlerts(w, r)
		return
	}

	if strings.HasSuffix(path, "/trigger") {
		id := PathParam(r, "/api/alerts/", "/trigger")
		s.handleAlertTrigger(w, r, id)
		return
	}
	s.handleAlertByID(w, r, path)
}

// routeAnalyses dispatches /api/analyses/{id}.
func (s *Server) routeAnalyses(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/analyses/")
	if id == "" {
		s.handleAnalyses(w, r)
		return
	}
	s.handleAnalysisByID(w, r, id)
}
