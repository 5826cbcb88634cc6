// Package fx resolves currency→EUR rate tables for valuation calls.
package fx

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/arolsen/finboard/internal/common"
	"github.com/arolsen/finboard/internal/interfaces"
	"github.com/arolsen/finboard/internal/models"
)

// Service implements FxService with a TTL cache in front of the rate
// provider. Lookups for distinct currencies fan out concurrently; holdings
// across many currencies would otherwise pay serialized network latency.
type Service struct {
	store  interfaces.FxRateStore
	client interfaces.FxRateClient
	logger *common.Logger
	ttl    time.Duration
}

// NewService creates a new FX service
func NewService(store interfaces.FxRateStore, client interfaces.FxRateClient, logger *common.Logger, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Service{
		store:  store,
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

// ResolveTable builds the FX table for a set of currencies. EUR is excluded
// by invariant (rate 1, never looked up). The USD rate is always resolved;
// it is the fallback for unresolvable currencies and the divisor for the
// secondary USD totals.
func (s *Service) ResolveTable(ctx context.Context, currencies []string) (models.FxTable, error) {
	distinct := distinctNonEur(currencies)
	if !contains(distinct, "USD") {
		distinct = append(distinct, "USD")
	}
	sort.Strings(distinct)

	type result struct {
		currency string
		rate     float64
		err      error
	}

	results := make(chan result, len(distinct))
	var wg sync.WaitGroup
	for _, currency := range distinct {
		wg.Add(1)
		go func(currency string) {
			defer wg.Done()
			rate, err := s.rateFor(ctx, currency)
			results <- result{currency: currency, rate: rate, err: err}
		}(currency)
	}
	wg.Wait()
	close(results)

	table := models.FxTable{Rates: make(map[string]float64, len(distinct))}
	for r := range results {
		if r.err != nil {
			// Omitted currencies fall back to the USD rate at lookup time.
			s.logger.Warn().Err(r.err).Str("currency", r.currency).Msg("FX rate unavailable")
			continue
		}
		table.Rates[r.currency] = r.rate
		if r.currency == "USD" {
			table.UsdRate = r.rate
		}
	}

	if table.UsdRate <= 0 {
		return models.FxTable{}, fmt.Errorf("USD fallback rate unavailable")
	}

	return table, nil
}

// rateFor returns a cached rate when fresh, otherwise fetches from the
// provider and caches the result. A stale cached rate is better than no
// rate, so provider failures fall back to the last known value.
func (s *Service) rateFor(ctx context.Context, currency string) (float64, error) {
	cached, err := s.store.GetRate(ctx, currency)
	if err == nil && time.Since(cached.FetchedAt) < s.ttl {
		return cached.RateToEur, nil
	}

	rate, fetchErr := s.client.GetRateToEur(ctx, currency)
	if fetchErr != nil {
		if cached != nil && cached.RateToEur > 0 {
			s.logger.Warn().Err(fetchErr).Str("currency", currency).Msg("FX fetch failed, using stale cached rate")
			return cached.RateToEur, nil
		}
		return 0, fetchErr
	}
	if rate <= 0 {
		return 0, fmt.Errorf("provider returned non-positive rate %v for %s", rate, currency)
	}

	if err := s.store.SaveRate(ctx, &models.FxRate{
		Currency:  currency,
		RateToEur: rate,
		FetchedAt: time.Now(),
	}); err != nil {
		s.logger.Warn().Err(err).Str("currency", currency).Msg("Failed to cache FX rate")
	}

	return rate, nil
}

func distinctNonEur(currencies []string) []string {
	seen := make(map[string]bool, len(currencies))
	out := make([]string, 0, len(currencies))
	for _, c := range currencies {
		if c == "" || c == "EUR" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Ensure Service implements FxService
var _ interfaces.FxService = (*Service)(nil)
