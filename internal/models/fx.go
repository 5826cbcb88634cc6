package models

import "time"

// FxRate is a cached currency-to-EUR conversion rate.
type FxRate struct {
	Currency  string    `json:"currency" badgerhold:"key"` // ISO code, e.g. "USD"
	RateToEur float64   `json:"rate_to_eur"`
	FetchedAt time.Time `json:"fetched_at"`
}

// FxTable maps currency codes to EUR rates for one valuation call.
// EUR itself is never present; callers short-circuit it to 1.0.
// UsdRate is the distinguished fallback used when a currency cannot be
// resolved, and the divisor for the secondary USD totals.
type FxTable struct {
	Rates   map[string]float64 `json:"rates"`
	UsdRate float64            `json:"usd_rate"`
}

// Rate resolves the EUR rate for a currency: exact match, else the USD
// fallback.
func (t FxTable) Rate(currency string) float64 {
	if r, ok := t.Rates[currency]; ok {
		return r
	}
	return t.UsdRate
}
