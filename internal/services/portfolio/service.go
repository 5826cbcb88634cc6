// Package portfolio provides portfolio and holding management services
package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arolsen/finboard/internal/common"
	"github.com/arolsen/finboard/internal/interfaces"
	"github.com/arolsen/finboard/internal/models"
	"github.com/arolsen/finboard/internal/services/valuation"
)

// Service implements PortfolioService
type Service struct {
	storage interfaces.StorageManager
	fx      interfaces.FxService
	engine  *valuation.Engine
	logger  *common.Logger
}

// NewService creates a new portfolio service
func NewService(storage interfaces.StorageManager, fx interfaces.FxService, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		fx:      fx,
		engine:  valuation.NewEngine(),
		logger:  logger,
	}
}

// CreatePortfolio creates an empty portfolio for a user.
func (s *Service) CreatePortfolio(ctx context.Context, userID, name string) (*models.Portfolio, error) {
	if name == "" {
		return nil, fmt.Errorf("portfolio name is required: %w", models.ErrInvalidArgument)
	}

	now := time.Now()
	p := &models.Portfolio{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.PortfolioStore().SavePortfolio(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}

	s.logger.Info().Str("portfolio_id", p.ID).Str("user_id", userID).Msg("Portfolio created")
	return p, nil
}

// GetPortfolio retrieves a portfolio, enforcing ownership.
func (s *Service) GetPortfolio(ctx context.Context, userID, portfolioID string) (*models.Portfolio, error) {
	return s.resolveOwned(ctx, userID, portfolioID)
}

// ListPortfolios returns all portfolios for a user.
func (s *Service) ListPortfolios(ctx context.Context, userID string) ([]*models.Portfolio, error) {
	return s.storage.PortfolioStore().ListPortfolios(ctx, userID)
}

// DeletePortfolio removes a portfolio and its holdings.
func (s *Service) DeletePortfolio(ctx context.Context, userID, portfolioID string) error {
	if _, err := s.resolveOwned(ctx, userID, portfolioID); err != nil {
		return err
	}
	if err := s.storage.PortfolioStore().DeletePortfolio(ctx, portfolioID); err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	s.logger.Info().Str("portfolio_id", portfolioID).Msg("Portfolio deleted")
	return nil
}

// AddHolding creates a holding. The buy price is converted to EUR exactly
// once, here; the valuation engine never converts cost basis.
func (s *Service) AddHolding(ctx context.Context, userID string, req interfaces.AddHoldingRequest) (*models.Holding, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", models.ErrInvalidArgument)
	}
	if req.BuyPrice <= 0 {
		return nil, fmt.Errorf("buy price must be positive: %w", models.ErrInvalidArgument)
	}

	if _, err := s.resolveOwned(ctx, userID, req.PortfolioID); err != nil {
		return nil, err
	}

	asset, err := s.storage.AssetStore().GetAsset(ctx, req.AssetID)
	if err != nil {
		return nil, fmt.Errorf("asset '%s': %w", req.AssetID, models.ErrNotFound)
	}

	buyCurrency := req.BuyCurrency
	if buyCurrency == "" {
		buyCurrency = asset.Currency
	}

	avgBuyPriceEur := req.BuyPrice
	if buyCurrency != "EUR" {
		table, err := s.fx.ResolveTable(ctx, []string{buyCurrency})
		if err != nil {
			return nil, fmt.Errorf("failed to resolve FX rate for %s: %w", buyCurrency, err)
		}
		avgBuyPriceEur = req.BuyPrice * table.Rate(buyCurrency)
	}

	now := time.Now()
	h := &models.Holding{
		ID:          uuid.New().String(),
		PortfolioID: req.PortfolioID,
		AssetID:     req.AssetID,
		Quantity:    req.Quantity,
		AvgBuyPrice: avgBuyPriceEur,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.storage.PortfolioStore().SaveHolding(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to save holding: %w", err)
	}

	s.logger.Info().
		Str("holding_id", h.ID).
		Str("asset_id", req.AssetID).
		Float64("quantity", req.Quantity).
		Str("buy_currency", buyCurrency).
		Msg("Holding added")

	return h, nil
}

// UpdateHolding changes quantity and EUR cost basis of an existing holding.
func (s *Service) UpdateHolding(ctx context.Context, userID, holdingID string, quantity, avgBuyPrice float64) (*models.Holding, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", models.ErrInvalidArgument)
	}
	if avgBuyPrice <= 0 {
		return nil, fmt.Errorf("avg buy price must be positive: %w", models.ErrInvalidArgument)
	}

	h, err := s.resolveOwnedHolding(ctx, userID, holdingID)
	if err != nil {
		return nil, err
	}

	h.Quantity = quantity
	h.AvgBuyPrice = avgBuyPrice
	h.UpdatedAt = time.Now()

	if err := s.storage.PortfolioStore().SaveHolding(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to update holding: %w", err)
	}
	return h, nil
}

// DeleteHolding removes a holding.
func (s *Service) DeleteHolding(ctx context.Context, userID, holdingID string) error {
	if _, err := s.resolveOwnedHolding(ctx, userID, holdingID); err != nil {
		return err
	}
	if err := s.storage.PortfolioStore().DeleteHolding(ctx, holdingID); err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	return nil
}

// GetPerformance values the portfolio with the user's persisted adjustment
// factor.
func (s *Service) GetPerformance(ctx context.Context, userID, portfolioID string) (*models.PortfolioPerformance, error) {
	settings, err := s.storage.SettingsStore().GetSettings(ctx, userID)
	if err != nil {
		settings = models.DefaultUserSettings(userID)
	}
	factor := settings.EurAdjustmentFactor
	if factor <= 0 {
		factor = 1.0
	}
	return s.GetPerformanceWithFactor(ctx, userID, portfolioID, factor)
}

// GetPerformanceWithFactor values the portfolio with an explicit adjustment
// factor. This is the single valuation code path: holdings listing,
// portfolio detail, and calibration all route through here.
func (s *Service) GetPerformanceWithFactor(ctx context.Context, userID, portfolioID string, factor float64) (*models.PortfolioPerformance, error) {
	if _, err := s.resolveOwned(ctx, userID, portfolioID); err != nil {
		return nil, err
	}

	holdings, err := s.storage.PortfolioStore().GetHoldingsForPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}

	if len(holdings) == 0 {
		return s.engine.Compute(valuation.Input{PortfolioID: portfolioID}), nil
	}

	currencies := make([]string, 0, len(holdings))
	for _, hw := range holdings {
		currencies = append(currencies, hw.Asset.Currency)
	}

	table, err := s.fx.ResolveTable(ctx, currencies)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve FX rates: %w", err)
	}

	perf := s.engine.Compute(valuation.Input{
		PortfolioID:      portfolioID,
		Holdings:         holdings,
		FxRates:          table,
		AdjustmentFactor: factor,
	})

	s.logger.Debug().
		Str("portfolio_id", portfolioID).
		Int("holdings", len(holdings)).
		Float64("total_value_eur", perf.TotalValueEur).
		Msg("Portfolio valued")

	return perf, nil
}

// resolveOwned loads a portfolio and verifies it belongs to the user.
// Portfolios owned by someone else surface as NotFound, not Forbidden, so
// the API does not leak which IDs exist.
func (s *Service) resolveOwned(ctx context.Context, userID, portfolioID string) (*models.Portfolio, error) {
	p, err := s.storage.PortfolioStore().GetPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("portfolio '%s': %w", portfolioID, models.ErrNotFound)
	}
	if p.UserID != userID {
		return nil, fmt.Errorf("portfolio '%s': %w", portfolioID, models.ErrNotFound)
	}
	return p, nil
}

func (s *Service) resolveOwnedHolding(ctx context.Context, userID, holdingID string) (*models.Holding, error) {
	h, err := s.storage.PortfolioStore().GetHolding(ctx, holdingID)
	if err != nil {
		return nil, fmt.Errorf("holding '%s': %w", holdingID, models.ErrNotFound)
	}
	if _, err := s.resolveOwned(ctx, userID, h.PortfolioID); err != nil {
		return nil, fmt.Errorf("holding '%s': %w", holdingID, models.ErrNotFound)
	}
	return h, nil
}

// Ensure Service implements PortfolioService
var _ interfaces.PortfolioService = (*Service)(nil)
