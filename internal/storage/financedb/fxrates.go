package financedb

import (
	"context"
	"fmt"
	"sort"

	"github.com/timshannon/badgerhold/v4"

	"github.com/arolsen/finboard/internal/models"
)

// --- FX rate cache ---

func (s *Store) SaveRate(_ context.Context, rate *models.FxRate) error {
	if err := s.db.Upsert(rate.Currency, rate); err != nil {
		return fmt.Errorf("failed to save fx rate '%s': %w", rate.Currency, err)
	}
	return nil
}

func (s *Store) GetRate(_ context.Context, currency string) (*models.FxRate, error) {
	var r models.FxRate
	if err := s.db.Get(currency, &r); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("fx rate '%s': %w", currency, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get fx rate '%s': %w", currency, err)
	}
	return &r, nil
}

func (s *Store) ListRates(_ context.Context) ([]*models.FxRate, error) {
	var rates []models.FxRate
	if err := s.db.Find(&rates, nil); err != nil {
		return nil, fmt.Errorf("failed to list fx rates: %w", err)
	}
	sort.Slice(rates, func(i, j int) bool {
		return rates[i].Currency < rates[j].Currency
	})
	out := make([]*models.FxRate, len(rates))
	for i := range rates {
		out[i] = &rates[i]
	}
	return out, nil
}
