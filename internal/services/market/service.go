// Package market manages the asset catalog and price ingestion
package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arolsen/finboard/internal/common"
	"github.com/arolsen/finboard/internal/interfaces"
	"github.com/arolsen/finboard/internal/models"
)

// Service implements MarketService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new market service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// UpsertAsset creates or updates a catalog entry. Symbol and currency are
// uppercased; prices are left untouched (price updates go through
// UpdatePrice).
func (s *Service) UpsertAsset(ctx context.Context, asset *models.Asset) (*models.Asset, error) {
	if asset.Symbol == "" {
		return nil, fmt.Errorf("asset symbol is required: %w", models.ErrInvalidArgument)
	}
	if asset.Currency == "" {
		return nil, fmt.Errorf("asset currency is required: %w", models.ErrInvalidArgument)
	}
	if !models.ValidAssetType(asset.Type) {
		return nil, fmt.Errorf("unknown asset type '%s': %w", asset.Type, models.ErrInvalidArgument)
	}

	asset.Symbol = strings.ToUpper(asset.Symbol)
	asset.Currency = strings.ToUpper(asset.Currency)

	now := time.Now()
	if asset.ID == "" {
		if existing, err := s.storage.AssetStore().GetAssetBySymbol(ctx, asset.Symbol); err == nil {
			asset.ID = existing.ID
			asset.CreatedAt = existing.CreatedAt
			asset.CurrentPrice = existing.CurrentPrice
			asset.PreviousClose = existing.PreviousClose
			asset.PriceUpdatedAt = existing.PriceUpdatedAt
		} else {
			asset.ID = uuid.New().String()
			asset.CreatedAt = now
		}
	}
	asset.UpdatedAt = now

	if err := s.storage.AssetStore().SaveAsset(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to save asset: %w", err)
	}

	s.logger.Info().Str("asset_id", asset.ID).Str("symbol", asset.Symbol).Msg("Asset upserted")
	return asset, nil
}

// GetAsset retrieves an asset by ID.
func (s *Service) GetAsset(ctx context.Context, assetID string) (*models.Asset, error) {
	asset, err := s.storage.AssetStore().GetAsset(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("asset '%s': %w", assetID, models.ErrNotFound)
	}
	return asset, nil
}

// ListAssets returns the full catalog.
func (s *Service) ListAssets(ctx context.Context) ([]*models.Asset, error) {
	return s.storage.AssetStore().ListAssets(ctx)
}

// DeleteAsset removes a catalog entry.
func (s *Service) DeleteAsset(ctx context.Context, assetID string) error {
	if _, err := s.storage.AssetStore().GetAsset(ctx, assetID); err != nil {
		return fmt.Errorf("asset '%s': %w", assetID, models.ErrNotFound)
	}
	if err := s.storage.AssetStore().DeleteAsset(ctx, assetID); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

// UpdatePrice ingests a new price, shifting the current price to previous
// close. Negative prices are rejected; zero is allowed and values the asset
// to nothing, matching the degrade-gracefully display policy.
func (s *Service) UpdatePrice(ctx context.Context, assetID string, price float64) (*models.Asset, error) {
	if price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", models.ErrInvalidArgument)
	}

	asset, err := s.storage.AssetStore().GetAsset(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("asset '%s': %w", assetID, models.ErrNotFound)
	}

	now := time.Now()
	asset.PreviousClose = asset.CurrentPrice
	asset.CurrentPrice = &price
	asset.PriceUpdatedAt = &now
	asset.UpdatedAt = now

	if err := s.storage.AssetStore().SaveAsset(ctx, asset); err != nil {
		return nil, fmt.Errorf("failed to save price update: %w", err)
	}

	s.logger.Debug().
		Str("asset_id", assetID).
		Str("symbol", asset.Symbol).
		Float64("price", price).
		Msg("Price updated")

	return asset, nil
}

// Ensure Service implements MarketService
var _ interfaces.MarketService = (*Service)(nil)
