// Package alert manages price and technical alert configuration.
// Alert evaluation runs in the external workflow engine; this service owns
// the configuration records it evaluates against.
package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arolsen/finboard/internal/common"
	"github.com/arolsen/finboard/internal/interfaces"
	"github.com/arolsen/finboard/internal/models"
)

// Service implements AlertService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new alert service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

func validateAlert(a *models.Alert) error {
	if a.AssetID == "" {
		return fmt.Errorf("asset_id is required: %w", models.ErrInvalidArgument)
	}
	if a.Kind != models.AlertKindPrice && a.Kind != models.AlertKindTechnical {
		return fmt.Errorf("unknown alert kind '%s': %w", a.Kind, models.ErrInvalidArgument)
	}
	if a.Kind == models.AlertKindTechnical && a.Indicator == "" {
		return fmt.Errorf("technical alerts require an indicator: %w", models.ErrInvalidArgument)
	}
	if a.Direction != models.AlertDirectionAbove && a.Direction != models.AlertDirectionBelow {
		return fmt.Errorf("direction must be 'above' or 'below': %w", models.ErrInvalidArgument)
	}
	return nil
}

// Create stores a new alert for a user.
func (s *Service) Create(ctx context.Context, userID string, alert *models.Alert) (*models.Alert, error) {
	if err := validateAlert(alert); err != nil {
		return nil, err
	}
	if _, err := s.storage.AssetStore().GetAsset(ctx, alert.AssetID); err != nil {
		return nil, fmt.Errorf("asset '%s': %w", alert.AssetID, models.ErrNotFound)
	}

	now := time.Now()
	alert.ID = uuid.New().String()
	alert.UserID = userID
	alert.Active = true
	alert.LastTriggeredAt = nil
	alert.CreatedAt = now
	alert.UpdatedAt = now

	if err := s.storage.AlertStore().SaveAlert(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to save alert: %w", err)
	}

	s.logger.Info().Str("alert_id", alert.ID).Str("asset_id", alert.AssetID).Str("kind", string(alert.Kind)).Msg("Alert created")
	return alert, nil
}

// Get retrieves one alert, enforcing ownership.
func (s *Service) Get(ctx context.Context, userID, alertID string) (*models.Alert, error) {
	return s.resolveOwned(ctx, userID, alertID)
}

// List returns all alerts for a user.
func (s *Service) List(ctx context.Context, userID string) ([]*models.Alert, error) {
	return s.storage.AlertStore().ListAlerts(ctx, userID)
}

// Update replaces the mutable fields of an alert.
func (s *Service) Update(ctx context.Context, userID string, alert *models.Alert) (*models.Alert, error) {
	if err := validateAlert(alert); err != nil {
		return nil, err
	}

	existing, err := s.resolveOwned(ctx, userID, alert.ID)
	if err != nil {
		return nil, err
	}

	existing.AssetID = alert.AssetID
	existing.Kind = alert.Kind
	existing.Indicator = alert.Indicator
	existing.Direction = alert.Direction
	existing.Threshold = alert.Threshold
	existing.Active = alert.Active
	existing.UpdatedAt = time.Now()

	if err := s.storage.AlertStore().SaveAlert(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update alert: %w", err)
	}
	return existing, nil
}

// Delete removes an alert.
func (s *Service) Delete(ctx context.Context, userID, alertID string) error {
	if _, err := s.resolveOwned(ctx, userID, alertID); err != nil {
		return err
	}
	if err := s.storage.AlertStore().DeleteAlert(ctx, alertID); err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}
	return nil
}

// MarkTriggered records a trigger timestamp. Called by the workflow engine
// after it fires a notification.
func (s *Service) MarkTriggered(ctx context.Context, userID, alertID string) (*models.Alert, error) {
	alert, err := s.resolveOwned(ctx, userID, alertID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	alert.LastTriggeredAt = &now
	alert.UpdatedAt = now

	if err := s.storage.AlertStore().SaveAlert(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to mark alert triggered: %w", err)
	}
	return alert, nil
}

func (s *Service) resolveOwned(ctx context.Context, userID, alertID string) (*models.Alert, error) {
	a, err := s.storage.AlertStore().GetAlert(ctx, alertID)
	if err != nil || a.UserID != userID {
		return nil, fmt.Errorf("alert '%s': %w", alertID, models.ErrNotFound)
	}
	return a, nil
}

// Ensure Service implements AlertService
var _ interfaces.AlertService = (*Service)(nil)
