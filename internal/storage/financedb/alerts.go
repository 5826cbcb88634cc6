package financedb

import (
	"context"
	"fmt"
	"sort"

	"github.com/timshannon/badgerhold/v4"

	"github.com/arolsen/finboard/internal/models"
)

// --- Alerts ---

func (s *Store) SaveAlert(_ context.Context, a *models.Alert) error {
	if err := s.db.Upsert(a.ID, a); err != nil {
		return fmt.Errorf("failed to save alert '%s': %w", a.ID, err)
	}
	return nil
}

func (s *Store) GetAlert(_ context.Context, alertID string) (*models.Alert, error) {
	var a models.Alert
	if err := s.db.Get(alertID, &a); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("alert '%s': %w", alertID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get alert '%s': %w", alertID, err)
	}
	return &a, nil
}

func (s *Store) ListAlerts(_ context.Context, userID string) ([]*models.Alert, error) {
	var alerts []models.Alert
	if err := s.db.Find(&alerts, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].CreatedAt.Before(alerts[j].CreatedAt)
	})
	out := make([]*models.Alert, len(alerts))
	for i := range alerts {
		out[i] = &alerts[i]
	}
	return out, nil
}

func (s *Store) DeleteAlert(_ context.Context, alertID string) error {
	if err := s.db.Delete(alertID, models.Alert{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete alert '%s': %w", alertID, err)
	}
	return nil
}
