package financedb

import (
	"context"
	"fmt"
	"sort"

	"github.com/timshannon/badgerhold/v4"

	"github.com/arolsen/finboard/internal/models"
)

// --- Asset catalog ---

func (s *Store) SaveAsset(_ context.Context, a *models.Asset) error {
	if err := s.db.Upsert(a.ID, a); err != nil {
		return fmt.Errorf("failed to save asset '%s': %w", a.ID, err)
	}
	return nil
}

func (s *Store) GetAsset(_ context.Context, assetID string) (*models.Asset, error) {
	var a models.Asset
	if err := s.db.Get(assetID, &a); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("asset '%s': %w", assetID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get asset '%s': %w", assetID, err)
	}
	return &a, nil
}

func (s *Store) GetAssetBySymbol(_ context.Context, symbol string) (*models.Asset, error) {
	var assets []models.Asset
	if err := s.db.Find(&assets, badgerhold.Where("Symbol").Eq(symbol)); err != nil {
		return nil, fmt.Errorf("failed to find asset by symbol: %w", err)
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("asset with symbol '%s': %w", symbol, models.ErrNotFound)
	}
	return &assets[0], nil
}

func (s *Store) ListAssets(_ context.Context) ([]*models.Asset, error) {
	var assets []models.Asset
	if err := s.db.Find(&assets, nil); err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].Symbol < assets[j].Symbol
	})
	out := make([]*models.Asset, len(assets))
	for i := range assets {
		out[i] = &assets[i]
	}
	return out, nil
}

func (s *Store) DeleteAsset(_ context.Context, assetID string) error {
	if err := s.db.Delete(assetID, models.Asset{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete asset '%s': %w", assetID, err)
	}
	return nil
}
