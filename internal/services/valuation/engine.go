// Package valuation converts heterogeneous holdings into EUR-denominated
// performance figures.
package valuation

import (
	"math"
	"time"

	"github.com/arolsen/finboard/internal/models"
)

// Engine computes per-holding and aggregate portfolio performance. It is
// pure computation: no I/O, no shared state, safe for concurrent use.
type Engine struct{}

// NewEngine creates a new valuation engine
func NewEngine() *Engine {
	return &Engine{}
}

// Input carries everything one valuation call needs. AdjustmentFactor is
// passed directly rather than read from storage so callers can value with a
// factor override (calibration measures the raw valuation at 1.0 without
// mutating persisted state).
type Input struct {
	PortfolioID      string
	Holdings         []models.HoldingWithAsset
	FxRates          models.FxTable
	AdjustmentFactor float64
}

// pricing is the per-holding conversion strategy, resolved once before the
// numeric pipeline. An EUR holding is scaled by the adjustment factor and
// never goes through FX; a non-EUR holding uses its FX rate and never
// receives the factor.
type pricing struct {
	useAdjustment bool
	rate          float64 // adjustment factor or FX rate, depending on useAdjustment
}

func (p pricing) toEur(native float64) float64 {
	return native * p.rate
}

func resolvePricing(currency string, fxRates models.FxTable, adjustmentFactor float64) pricing {
	if currency == "EUR" {
		return pricing{useAdjustment: true, rate: adjustmentFactor}
	}
	return pricing{rate: fxRates.Rate(currency)}
}

// round2 rounds to cents, round8 to display precision for unit prices.
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round8(v float64) float64 { return math.Round(v*1e8) / 1e8 }

// deref treats a missing price as 0 so an unpriced asset values to zero
// instead of failing the whole dashboard render.
func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Compute values all holdings in EUR and aggregates portfolio totals.
// Calling it twice with identical inputs yields identical output.
func (e *Engine) Compute(in Input) *models.PortfolioPerformance {
	if len(in.Holdings) == 0 {
		// Canonical zero aggregate; avoids division-by-zero paths entirely.
		return &models.PortfolioPerformance{
			PortfolioID:  in.PortfolioID,
			EurRate:      1,
			Holdings:     []models.HoldingPerformance{},
			CalculatedAt: time.Now().UTC(),
		}
	}

	perf := &models.PortfolioPerformance{
		PortfolioID:  in.PortfolioID,
		EurRate:      in.FxRates.UsdRate,
		Holdings:     make([]models.HoldingPerformance, 0, len(in.Holdings)),
		CalculatedAt: time.Now().UTC(),
	}

	var totalValueEur, totalCostEur, dailyChangeEur, totalValueNative float64

	// First pass: per-holding figures and running totals. Raw EUR prices keep
	// full precision through the pipeline; rounding happens only at the
	// recorded values.
	for _, hw := range in.Holdings {
		h := hw.Holding
		a := hw.Asset

		strategy := resolvePricing(a.Currency, in.FxRates, in.AdjustmentFactor)

		currentPrice := deref(a.CurrentPrice)
		previousClose := deref(a.PreviousClose)

		currentPriceEurRaw := strategy.toEur(currentPrice)
		previousCloseEurRaw := strategy.toEur(previousClose)

		currentValueEur := round2(h.Quantity * currentPriceEurRaw)
		costEur := round2(h.Quantity * h.AvgBuyPrice)
		profitLossEur := round2(currentValueEur - costEur)

		profitLossPercent := 0.0
		if costEur > 0 {
			profitLossPercent = profitLossEur / costEur * 100
		}

		dailyChange := round2(h.Quantity * (currentPriceEurRaw - previousCloseEurRaw))

		hp := models.HoldingPerformance{
			HoldingID:         h.ID,
			AssetID:           a.ID,
			Symbol:            a.Symbol,
			Name:              a.Name,
			Type:              a.Type,
			Quantity:          h.Quantity,
			Currency:          a.Currency,
			CurrentPrice:      currentPrice,
			CurrentValue:      h.Quantity * currentPrice,
			CurrentPriceEur:   round8(currentPriceEurRaw),
			CurrentValueEur:   currentValueEur,
			CostEur:           costEur,
			ProfitLossEur:     profitLossEur,
			ProfitLossPercent: profitLossPercent,
			DailyChangeEur:    dailyChange,
		}

		totalValueEur += currentValueEur
		totalCostEur += costEur
		dailyChangeEur += dailyChange
		totalValueNative += hp.CurrentValue

		perf.Holdings = append(perf.Holdings, hp)
	}

	// Second pass: weights need the grand total.
	for i := range perf.Holdings {
		if totalValueEur > 0 {
			perf.Holdings[i].Weight = perf.Holdings[i].CurrentValueEur / totalValueEur * 100
		}
	}

	perf.TotalValue = totalValueNative
	perf.TotalValueEur = round2(totalValueEur)
	perf.TotalCostEur = round2(totalCostEur)
	perf.TotalReturnEur = round2(totalValueEur - totalCostEur)
	if perf.TotalCostEur > 0 {
		perf.TotalReturnPct = perf.TotalReturnEur / perf.TotalCostEur * 100
	}

	perf.DailyChangeEur = round2(dailyChangeEur)
	// Yesterday's total approximated by backing out today's change.
	if prev := perf.TotalValueEur - perf.DailyChangeEur; prev > 0 {
		perf.DailyChangePct = perf.DailyChangeEur / prev * 100
	}

	// Indicative only: EUR totals divided by the USD fallback rate.
	if in.FxRates.UsdRate > 0 {
		perf.TotalValueUsd = round2(perf.TotalValueEur / in.FxRates.UsdRate)
	}

	return perf
}
