package server

import (
	"net/http"

	"github.com/arolsen/finboard/internal/models"
)

// handleAssets handles /api/assets (GET list, POST upsert).
func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if _, ok := requireUser(w, r); !ok {
			return
		}
		assets, err := s.app.MarketService.ListAssets(r.Context())
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"assets": assets,
		})

	case http.MethodPost:
		if _, ok := requireUser(w, r); !ok {
			return
		}
		var asset models.Asset
		if !DecodeJSON(w, r, &asset) {
			return
		}

		saved, err := s.app.MarketService.UpsertAsset(r.Context(), &asset)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, saved)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleAssetByID handles /api/assets/{id} (GET, DELETE).
func (s *Server) handleAssetByID(w http.ResponseWriter, r *http.Request, assetID string) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		asset, err := s.app.MarketService.GetAsset(r.Context(), assetID)
		if err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, asset)

	case http.MethodDelete:
		if err := s.app.MarketService.DeleteAsset(r.Context(), assetID); err != nil {
			WriteServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodDelete)
	}
}

// handleAssetPrice handles PUT /api/assets/{id}/price. The workflow engine
// calls this to push refreshed market prices.
func (s *Server) handleAssetPrice(w http.ResponseWriter, r *http.Request, assetID string) {
	if !RequireMethod(w, r, http.MethodPut, http.MethodPost) {
		return
	}
	if _, ok := requireUser(w, r); !ok {
		return
	}

	var req struct {
		Price float64 `json:"price" validate:"gte=0"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	asset, err := s.app.MarketService.UpdatePrice(r.Context(), assetID, req.Price)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, asset)
}

// handleFxRates handles GET /api/fx/rates; the cached FX table.
func (s *Server) handleFxRates(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if _, ok := requireUser(w, r); !ok {
		return
	}

	rates, err := s.app.Storage.FxRateStore().ListRates(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"rates": rates,
	})
}
