package models

import "time"

// Portfolio groups a user's holdings.
type Portfolio struct {
	ID        string    `json:"id" badgerhold:"key"`
	UserID    string    `json:"user_id" badgerhold:"index"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Holding is a position in one asset within one portfolio.
// AvgBuyPrice is stored in EUR, converted once at creation time; the
// valuation engine never converts cost basis.
type Holding struct {
	ID          string    `json:"id" badgerhold:"key"`
	PortfolioID string    `json:"portfolio_id" badgerhold:"index"`
	AssetID     string    `json:"asset_id"`
	Quantity    float64   `json:"quantity"`
	AvgBuyPrice float64   `json:"avg_buy_price"` // EUR
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HoldingWithAsset is the joined record the valuation engine consumes.
type HoldingWithAsset struct {
	Holding Holding `json:"holding"`
	Asset   Asset   `json:"asset"`
}

// HoldingPerformance is the per-holding valuation result. Derived, never
// persisted.
type HoldingPerformance struct {
	HoldingID string    `json:"holding_id"`
	AssetID   string    `json:"asset_id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Type      AssetType `json:"type"`
	Quantity  float64   `json:"quantity"`
	Currency  string    `json:"currency"`

	// Native figures (no conversion, no rounding)
	CurrentPrice float64 `json:"current_price"`
	CurrentValue float64 `json:"current_value"`

	// EUR figures
	CurrentPriceEur   float64 `json:"current_price_eur"`   // rounded to 8 decimals for display
	CurrentValueEur   float64 `json:"current_value_eur"`   // rounded to 2 decimals
	CostEur           float64 `json:"cost_eur"`            // rounded to 2 decimals
	ProfitLossEur     float64 `json:"profit_loss_eur"`     // rounded to 2 decimals
	ProfitLossPercent float64 `json:"profit_loss_percent"`
	DailyChangeEur    float64 `json:"daily_change_eur"` // rounded to 2 decimals
	Weight            float64 `json:"weight"`           // percent of total portfolio value
}

// PortfolioPerformance aggregates HoldingPerformance for one portfolio.
// Derived, never persisted. The USD totals are indicative only: EUR totals
// divided by the USD fallback rate, not a multi-currency ledger.
type PortfolioPerformance struct {
	PortfolioID    string               `json:"portfolio_id"`
	TotalValue     float64              `json:"total_value"` // sum of native values
	TotalValueEur  float64              `json:"total_value_eur"`
	TotalCostEur   float64              `json:"total_cost_eur"`
	TotalReturnEur float64              `json:"total_return_eur"`
	TotalReturnPct float64              `json:"total_return_pct"`
	DailyChangeEur float64              `json:"daily_change_eur"`
	DailyChangePct float64              `json:"daily_change_pct"`
	TotalValueUsd  float64              `json:"total_value_usd"`
	EurRate        float64              `json:"eur_rate"` // USD to EUR rate used for secondary totals
	Holdings       []HoldingPerformance `json:"holdings"`
	CalculatedAt   time.Time            `json:"calculated_at"`
}
