package financedb

import (
	"context"
	"fmt"
	"sort"

	"github.com/timshannon/badgerhold/v4"

	"github.com/arolsen/finboard/internal/models"
)

// --- User settings ---

func (s *Store) GetSettings(_ context.Context, userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	if err := s.db.Get(userID, &settings); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("settings for user '%s': %w", userID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get settings for user '%s': %w", userID, err)
	}
	return &settings, nil
}

func (s *Store) UpsertSettings(_ context.Context, settings *models.UserSettings) error {
	if err := s.db.Upsert(settings.UserID, settings); err != nil {
		return fmt.Errorf("failed to save settings for user '%s': %w", settings.UserID, err)
	}
	s.logger.Debug().
		Str("user_id", settings.UserID).
		Float64("factor", settings.EurAdjustmentFactor).
		Msg("User settings saved")
	return nil
}

// --- Per-asset calibrations ---

func (s *Store) GetAssetCalibration(_ context.Context, userID, assetID string) (*models.AssetCalibration, error) {
	compositeKey := userID + calSep + assetID
	var cal models.AssetCalibration
	if err := s.db.Get(compositeKey, &cal); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("asset calibration '%s/%s': %w", userID, assetID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get asset calibration: %w", err)
	}
	return &cal, nil
}

func (s *Store) UpsertAssetCalibration(_ context.Context, cal *models.AssetCalibration) error {
	compositeKey := cal.UserID + calSep + cal.AssetID
	if err := s.db.Upsert(compositeKey, cal); err != nil {
		return fmt.Errorf("failed to save asset calibration: %w", err)
	}
	return nil
}

func (s *Store) ListAssetCalibrations(_ context.Context, userID string) ([]*models.AssetCalibration, error) {
	var cals []models.AssetCalibration
	if err := s.db.Find(&cals, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list asset calibrations: %w", err)
	}
	sort.Slice(cals, func(i, j int) bool {
		return cals[i].AssetID < cals[j].AssetID
	})
	out := make([]*models.AssetCalibration, len(cals))
	for i := range cals {
		out[i] = &cals[i]
	}
	return out, nil
}
