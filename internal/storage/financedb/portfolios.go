package financedb

import (
	"context"
	"fmt"
	"sort"

	"github.com/timshannon/badgerhold/v4"

	"github.com/arolsen/finboard/internal/models"
)

// --- Portfolios ---

func (s *Store) SavePortfolio(_ context.Context, p *models.Portfolio) error {
	if err := s.db.Upsert(p.ID, p); err != nil {
		return fmt.Errorf("failed to save portfolio '%s': %w", p.ID, err)
	}
	return nil
}

func (s *Store) GetPortfolio(_ context.Context, portfolioID string) (*models.Portfolio, error) {
	var p models.Portfolio
	if err := s.db.Get(portfolioID, &p); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("portfolio '%s': %w", portfolioID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get portfolio '%s': %w", portfolioID, err)
	}
	return &p, nil
}

func (s *Store) ListPortfolios(_ context.Context, userID string) ([]*models.Portfolio, error) {
	var portfolios []models.Portfolio
	if err := s.db.Find(&portfolios, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	sort.Slice(portfolios, func(i, j int) bool {
		return portfolios[i].CreatedAt.Before(portfolios[j].CreatedAt)
	})
	out := make([]*models.Portfolio, len(portfolios))
	for i := range portfolios {
		out[i] = &portfolios[i]
	}
	return out, nil
}

// DeletePortfolio removes a portfolio and all of its holdings.
func (s *Store) DeletePortfolio(ctx context.Context, portfolioID string) error {
	if err := s.db.Delete(portfolioID, models.Portfolio{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete portfolio '%s': %w", portfolioID, err)
	}
	if err := s.db.DeleteMatching(models.Holding{}, badgerhold.Where("PortfolioID").Eq(portfolioID)); err != nil {
		return fmt.Errorf("failed to delete holdings of portfolio '%s': %w", portfolioID, err)
	}
	s.logger.Debug().Str("portfolio_id", portfolioID).Msg("Portfolio and holdings deleted")
	return nil
}

// --- Holdings ---

func (s *Store) SaveHolding(_ context.Context, h *models.Holding) error {
	if err := s.db.Upsert(h.ID, h); err != nil {
		return fmt.Errorf("failed to save holding '%s': %w", h.ID, err)
	}
	return nil
}

func (s *Store) GetHolding(_ context.Context, holdingID string) (*models.Holding, error) {
	var h models.Holding
	if err := s.db.Get(holdingID, &h); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("holding '%s': %w", holdingID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get holding '%s': %w", holdingID, err)
	}
	return &h, nil
}

func (s *Store) DeleteHolding(_ context.Context, holdingID string) error {
	if err := s.db.Delete(holdingID, models.Holding{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete holding '%s': %w", holdingID, err)
	}
	return nil
}

// GetHoldingsForPortfolio joins each holding with its asset. Holdings whose
// asset has been deleted from the catalog are skipped with a warning rather
// than failing the valuation.
func (s *Store) GetHoldingsForPortfolio(ctx context.Context, portfolioID string) ([]models.HoldingWithAsset, error) {
	var holdings []models.Holding
	if err := s.db.Find(&holdings, badgerhold.Where("PortfolioID").Eq(portfolioID).Index("PortfolioID")); err != nil {
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}
	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].CreatedAt.Before(holdings[j].CreatedAt)
	})

	out := make([]models.HoldingWithAsset, 0, len(holdings))
	for _, h := range holdings {
		var a models.Asset
		if err := s.db.Get(h.AssetID, &a); err != nil {
			s.logger.Warn().Str("holding_id", h.ID).Str("asset_id", h.AssetID).Msg("Holding references missing asset, skipping")
			continue
		}
		out = append(out, models.HoldingWithAsset{Holding: h, Asset: a})
	}
	return out, nil
}
