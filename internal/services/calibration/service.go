// Package calibration anchors computed EUR valuations to trusted external
// reference values.
package calibration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arolsen/finboard/internal/common"
	"github.com/arolsen/finboard/internal/interfaces"
	"github.com/arolsen/finboard/internal/models"
)

// Service implements CalibrationService. Calibration writes for the same
// user are serialized with a per-user mutex: SetReference computes a raw
// valuation and then persists a factor derived from it, and a concurrent
// second calibration could otherwise interleave between the read and the
// write.
type Service struct {
	storage   interfaces.StorageManager
	portfolio interfaces.PortfolioService
	logger    *common.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a new calibration service
func NewService(storage interfaces.StorageManager, portfolio interfaces.PortfolioService, logger *common.Logger) *Service {
	return &Service{
		storage:   storage,
		portfolio: portfolio,
		logger:    logger,
		locks:     make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex serializing calibration for one user.
func (s *Service) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// SetReference derives and persists the EUR adjustment factor from a
// user-supplied reference portfolio value. The raw valuation is measured
// with a factor override of 1.0; the persisted factor is never touched
// until the final write, so concurrent reads cannot observe a transient
// reset.
func (s *Service) SetReference(ctx context.Context, userID, portfolioID string, referenceValue float64) (*interfaces.CalibrationResult, error) {
	if referenceValue <= 0 {
		return nil, fmt.Errorf("reference value must be positive: %w", models.ErrInvalidArgument)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	// Ownership enforced inside the valuation call (NotFound on miss).
	raw, err := s.portfolio.GetPerformanceWithFactor(ctx, userID, portfolioID, 1.0)
	if err != nil {
		return nil, err
	}

	if raw.TotalValueEur == 0 {
		// A zero raw valuation would produce an infinite factor. Reject
		// rather than persist a degenerate calibration.
		return nil, fmt.Errorf("cannot calibrate a portfolio with zero computed value: %w", models.ErrInvalidArgument)
	}

	factor := referenceValue / raw.TotalValueEur

	now := time.Now()
	settings, err := s.storage.SettingsStore().GetSettings(ctx, userID)
	if err != nil {
		settings = models.DefaultUserSettings(userID)
	}
	settings.EurAdjustmentFactor = factor
	settings.ReferencePortfolioValue = &referenceValue
	settings.LastCalibrationAt = &now
	settings.UpdatedAt = now

	if err := s.storage.SettingsStore().UpsertSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to persist calibration: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("portfolio_id", portfolioID).
		Float64("raw_value_eur", raw.TotalValueEur).
		Float64("reference_value", referenceValue).
		Float64("factor", factor).
		Msg("Portfolio calibrated")

	return &interfaces.CalibrationResult{
		AdjustmentFactor:  factor,
		AdjustmentPercent: (factor - 1) * 100,
		RawValueEur:       raw.TotalValueEur,
		ReferenceValue:    referenceValue,
	}, nil
}

// Reset restores the uncalibrated state. Idempotent.
func (s *Service) Reset(ctx context.Context, userID string) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	settings, err := s.storage.SettingsStore().GetSettings(ctx, userID)
	if err != nil {
		settings = models.DefaultUserSettings(userID)
	}
	settings.EurAdjustmentFactor = 1.0
	settings.ReferencePortfolioValue = nil
	settings.LastCalibrationAt = nil
	settings.UpdatedAt = time.Now()

	if err := s.storage.SettingsStore().UpsertSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to reset calibration: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Msg("Calibration reset")
	return nil
}

// Status returns the current calibration state and the portfolio value under
// the active factor. An uncalibrated user gets calibrated=false, not an
// error.
func (s *Service) Status(ctx context.Context, userID, portfolioID string) (*interfaces.CalibrationStatus, error) {
	settings, err := s.storage.SettingsStore().GetSettings(ctx, userID)
	if err != nil {
		settings = models.DefaultUserSettings(userID)
	}

	perf, err := s.portfolio.GetPerformance(ctx, userID, portfolioID)
	if err != nil {
		return nil, err
	}

	status := &interfaces.CalibrationStatus{
		Calibrated:       settings.ReferencePortfolioValue != nil,
		AdjustmentFactor: settings.EurAdjustmentFactor,
		CurrentValueEur:  perf.TotalValueEur,
	}
	if status.Calibrated {
		status.AdjustmentPercent = (settings.EurAdjustmentFactor - 1) * 100
		status.ReferenceValue = settings.ReferencePortfolioValue
		if settings.LastCalibrationAt != nil {
			ts := settings.LastCalibrationAt.Format(time.RFC3339)
			status.LastCalibrationAt = &ts
		}
	}

	return status, nil
}

// SetAssetCalibration derives a per-asset factor from a single price ratio.
// The record is a stored extension point; it does not feed back into the
// portfolio valuation path.
func (s *Service) SetAssetCalibration(ctx context.Context, userID, assetID string, referencePrice float64) (*models.AssetCalibration, error) {
	if referencePrice <= 0 {
		return nil, fmt.Errorf("reference price must be positive: %w", models.ErrInvalidArgument)
	}

	asset, err := s.storage.AssetStore().GetAsset(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("asset '%s': %w", assetID, models.ErrNotFound)
	}
	if asset.CurrentPrice == nil || *asset.CurrentPrice == 0 {
		return nil, fmt.Errorf("asset '%s' has no current price to calibrate against: %w", assetID, models.ErrInvalidArgument)
	}

	now := time.Now()
	cal, err := s.storage.SettingsStore().GetAssetCalibration(ctx, userID, assetID)
	if err != nil {
		cal = &models.AssetCalibration{
			ID:        uuid.New().String(),
			UserID:    userID,
			AssetID:   assetID,
			CreatedAt: now,
		}
	}
	cal.AdjustmentFactor = referencePrice / *asset.CurrentPrice
	cal.ReferencePrice = referencePrice
	cal.UpdatedAt = now

	if err := s.storage.SettingsStore().UpsertAssetCalibration(ctx, cal); err != nil {
		return nil, fmt.Errorf("failed to persist asset calibration: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("asset_id", assetID).
		Float64("factor", cal.AdjustmentFactor).
		Msg("Asset calibrated")

	return cal, nil
}

// GetAssetCalibration returns a stored per-asset calibration.
func (s *Service) GetAssetCalibration(ctx context.Context, userID, assetID string) (*models.AssetCalibration, error) {
	cal, err := s.storage.SettingsStore().GetAssetCalibration(ctx, userID, assetID)
	if err != nil {
		return nil, fmt.Errorf("asset calibration for '%s': %w", assetID, models.ErrNotFound)
	}
	return cal, nil
}

// Ensure Service implements CalibrationService
var _ interfaces.CalibrationService = (*Service)(nil)
