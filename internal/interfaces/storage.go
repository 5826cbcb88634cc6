package interfaces

import (
	"context"

	"github.com/arolsen/finboard/internal/models"
)

// StorageManager coordinates all storage backends.
type StorageManager interface {
	UserStore() UserStore
	PortfolioStore() PortfolioStore
	AssetStore() AssetStore
	SettingsStore() SettingsStore
	AlertStore() AlertStore
	AnalysisStore() AnalysisStore
	FxRateStore() FxRateStore

	Close() error
}

// UserStore manages user accounts.
type UserStore interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, userID string) error
	ListUsers(ctx context.Context) ([]string, error)
}

// PortfolioStore manages portfolios and their holdings.
type PortfolioStore interface {
	SavePortfolio(ctx context.Context, p *models.Portfolio) error
	GetPortfolio(ctx context.Context, portfolioID string) (*models.Portfolio, error)
	ListPortfolios(ctx context.Context, userID string) ([]*models.Portfolio, error)
	DeletePortfolio(ctx context.Context, portfolioID string) error

	SaveHolding(ctx context.Context, h *models.Holding) error
	GetHolding(ctx context.Context, holdingID string) (*models.Holding, error)
	DeleteHolding(ctx context.Context, holdingID string) error

	// GetHoldingsForPortfolio returns holdings joined with their assets,
	// ordered by holding creation time.
	GetHoldingsForPortfolio(ctx context.Context, portfolioID string) ([]models.HoldingWithAsset, error)
}

// AssetStore manages the asset catalog.
type AssetStore interface {
	SaveAsset(ctx context.Context, a *models.Asset) error
	GetAsset(ctx context.Context, assetID string) (*models.Asset, error)
	GetAssetBySymbol(ctx context.Context, symbol string) (*models.Asset, error)
	ListAssets(ctx context.Context) ([]*models.Asset, error)
	DeleteAsset(ctx context.Context, assetID string) error
}

// SettingsStore manages user settings and per-asset calibrations.
type SettingsStore interface {
	GetSettings(ctx context.Context, userID string) (*models.UserSettings, error)
	UpsertSettings(ctx context.Context, settings *models.UserSettings) error

	GetAssetCalibration(ctx context.Context, userID, assetID string) (*models.AssetCalibration, error)
	UpsertAssetCalibration(ctx context.Context, cal *models.AssetCalibration) error
	ListAssetCalibrations(ctx context.Context, userID string) ([]*models.AssetCalibration, error)
}

// AlertStore manages alert configurations.
type AlertStore interface {
	SaveAlert(ctx context.Context, a *models.Alert) error
	GetAlert(ctx context.Context, alertID string) (*models.Alert, error)
	ListAlerts(ctx context.Context, userID string) ([]*models.Alert, error)
	DeleteAlert(ctx context.Context, alertID string) error
}

// AnalysisStore persists opaque workflow-engine responses.
type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, a *models.Analysis) error
	GetAnalysis(ctx context.Context, analysisID string) (*models.Analysis, error)
	ListAnalyses(ctx context.Context, userID string) ([]*models.Analysis, error)
	DeleteAnalysis(ctx context.Context, analysisID string) error
}

// FxRateStore caches fetched FX rates.
type FxRateStore interface {
	SaveRate(ctx context.Context, rate *models.FxRate) error
	GetRate(ctx context.Context, currency string) (*models.FxRate, error)
	ListRates(ctx context.Context) ([]*models.FxRate, error)
}
