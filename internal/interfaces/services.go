package interfaces

import (
	"context"

	"github.com/arolsen/finboard/internal/models"
)

// FxService resolves the FX table for a valuation call, caching provider
// rates with a TTL.
type FxService interface {
	// ResolveTable returns currency→EUR rates for every currency in
	// currencies (EUR excluded) plus the USD fallback rate. Lookups are
	// issued concurrently.
	ResolveTable(ctx context.Context, currencies []string) (models.FxTable, error)
}

// PortfolioService manages portfolios and holdings and produces valuations.
type PortfolioService interface {
	CreatePortfolio(ctx context.Context, userID, name string) (*models.Portfolio, error)
	GetPortfolio(ctx context.Context, userID, portfolioID string) (*models.Portfolio, error)
	ListPortfolios(ctx context.Context, userID string) ([]*models.Portfolio, error)
	DeletePortfolio(ctx context.Context, userID, portfolioID string) error

	AddHolding(ctx context.Context, userID string, req AddHoldingRequest) (*models.Holding, error)
	UpdateHolding(ctx context.Context, userID, holdingID string, quantity, avgBuyPrice float64) (*models.Holding, error)
	DeleteHolding(ctx context.Context, userID, holdingID string) error

	// GetPerformance values the portfolio in EUR using live FX rates and the
	// user's adjustment factor. The single valuation code path shared by
	// listing, detail, and calibration.
	GetPerformance(ctx context.Context, userID, portfolioID string) (*models.PortfolioPerformance, error)

	// GetPerformanceWithFactor values the portfolio with an explicit
	// adjustment factor, ignoring the persisted one. Calibration uses it to
	// measure the raw valuation at factor 1.0 without mutating stored state.
	GetPerformanceWithFactor(ctx context.Context, userID, portfolioID string, factor float64) (*models.PortfolioPerformance, error)
}

// AddHoldingRequest carries a new holding. BuyPrice is in BuyCurrency and is
// converted to EUR once at creation time.
type AddHoldingRequest struct {
	PortfolioID string  `json:"portfolio_id" validate:"required"`
	AssetID     string  `json:"asset_id" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	BuyPrice    float64 `json:"buy_price" validate:"required,gt=0"`
	BuyCurrency string  `json:"buy_currency,omitempty"`
}

// CalibrationService anchors computed valuations to a trusted external value.
type CalibrationService interface {
	SetReference(ctx context.Context, userID, portfolioID string, referenceValue float64) (*CalibrationResult, error)
	Reset(ctx context.Context, userID string) error
	Status(ctx context.Context, userID, portfolioID string) (*CalibrationStatus, error)
	SetAssetCalibration(ctx context.Context, userID, assetID string, referencePrice float64) (*models.AssetCalibration, error)
	GetAssetCalibration(ctx context.Context, userID, assetID string) (*models.AssetCalibration, error)
}

// CalibrationResult is returned by SetReference.
type CalibrationResult struct {
	AdjustmentFactor  float64 `json:"adjustment_factor"`
	AdjustmentPercent float64 `json:"adjustment_percent"` // (factor - 1) * 100
	RawValueEur       float64 `json:"raw_value_eur"`
	ReferenceValue    float64 `json:"reference_value"`
}

// CalibrationStatus is the read-only calibration projection. Calibrated is
// an explicit sentinel; absence of a reference is not an error.
type CalibrationStatus struct {
	Calibrated        bool     `json:"calibrated"`
	AdjustmentFactor  float64  `json:"adjustment_factor"`
	AdjustmentPercent float64  `json:"adjustment_percent"`
	ReferenceValue    *float64 `json:"reference_value,omitempty"`
	CurrentValueEur   float64  `json:"current_value_eur"`
	LastCalibrationAt *string  `json:"last_calibration_at,omitempty"`
}

// MarketService manages the asset catalog and price ingestion.
type MarketService interface {
	UpsertAsset(ctx context.Context, asset *models.Asset) (*models.Asset, error)
	GetAsset(ctx context.Context, assetID string) (*models.Asset, error)
	ListAssets(ctx context.Context) ([]*models.Asset, error)
	DeleteAsset(ctx context.Context, assetID string) error

	// UpdatePrice shifts current price to previous close and sets the new
	// current price. Called by the workflow engine's price-ingest webhooks.
	UpdatePrice(ctx context.Context, assetID string, price float64) (*models.Asset, error)
}

// AlertService manages alert configuration. Evaluation belongs to the
// workflow engine.
type AlertService interface {
	Create(ctx context.Context, userID string, alert *models.Alert) (*models.Alert, error)
	Get(ctx context.Context, userID, alertID string) (*models.Alert, error)
	List(ctx context.Context, userID string) ([]*models.Alert, error)
	Update(ctx context.Context, userID string, alert *models.Alert) (*models.Alert, error)
	Delete(ctx context.Context, userID, alertID string) error
	MarkTriggered(ctx context.Context, userID, alertID string) (*models.Alert, error)
}

// AnalysisService requests AI analyses from the workflow engine and serves
// stored results.
type AnalysisService interface {
	Request(ctx context.Context, userID string, kind models.AnalysisKind, scope, targetID string) (*models.Analysis, error)
	Get(ctx context.Context, userID, analysisID string) (*models.Analysis, error)
	List(ctx context.Context, userID string) ([]*models.Analysis, error)
	Delete(ctx context.Context, userID, analysisID string) error
}
