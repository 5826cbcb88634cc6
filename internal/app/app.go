// Package app wires configuration, storage, clients, and services into a
// single shared core used by cmd/finboard-server.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arolsen/finboard/internal/clients/fxrates"
	"github.com/arolsen/finboard/internal/clients/workflow"
	"github.com/arolsen/finboard/internal/common"
	"github.com/arolsen/finboard/internal/interfaces"
	"github.com/arolsen/finboard/internal/services/alert"
	"github.com/arolsen/finboard/internal/services/analysis"
	"github.com/arolsen/finboard/internal/services/calibration"
	"github.com/arolsen/finboard/internal/services/fx"
	"github.com/arolsen/finboard/internal/services/market"
	"github.com/arolsen/finboard/internal/services/portfolio"
	"github.com/arolsen/finboard/internal/storage"
)

// App holds all initialized services and clients.
type App struct {
	Config             *common.Config
	Logger             *common.Logger
	Storage            interfaces.StorageManager
	FxRateClient       interfaces.FxRateClient
	WorkflowClient     interfaces.WorkflowClient
	FxService          interfaces.FxService
	PortfolioService   interfaces.PortfolioService
	CalibrationService interfaces.CalibrationService
	MarketService      interfaces.MarketService
	AlertService       interfaces.AlertService
	AnalysisService    interfaces.AnalysisService
	StartupTime        time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes config, logging, storage, clients, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupTime := time.Now()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("FINBOARD_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "finboard.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/finboard.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	fxClient := fxrates.NewClient(
		fxrates.WithBaseURL(config.Clients.FxRates.BaseURL),
		fxrates.WithAPIKey(config.Clients.FxRates.APIKey),
		fxrates.WithLogger(logger),
		fxrates.WithRateLimit(config.Clients.FxRates.RateLimit),
		fxrates.WithTimeout(config.Clients.FxRates.GetTimeout()),
	)

	workflowClient := workflow.NewClient(
		config.Clients.Workflow.BaseURL,
		config.Clients.Workflow.WebhookKey,
		workflow.WithLogger(logger),
		workflow.WithRateLimit(config.Clients.Workflow.RateLimit),
		workflow.WithTimeout(config.Clients.Workflow.GetTimeout()),
	)

	fxService := fx.NewService(storageManager.FxRateStore(), fxClient, logger, config.Clients.FxRates.GetCacheTTL())
	portfolioService := portfolio.NewService(storageManager, fxService, logger)
	calibrationService := calibration.NewService(storageManager, portfolioService, logger)
	marketService := market.NewService(storageManager, logger)
	alertService := alert.NewService(storageManager, logger)
	analysisService := analysis.NewService(storageManager, workflowClient, logger)

	logger.Info().
		Str("environment", config.Environment).
		Str("version", common.GetFullVersion()).
		Dur("startup", time.Since(startupTime)).
		Msg("Application initialized")

	return &App{
		Config:             config,
		Logger:             logger,
		Storage:            storageManager,
		FxRateClient:       fxClient,
		WorkflowClient:     workflowClient,
		FxService:          fxService,
		PortfolioService:   portfolioService,
		CalibrationService: calibrationService,
		MarketService:      marketService,
		AlertService:       alertService,
		AnalysisService:    analysisService,
		StartupTime:        startupTime,
	}, nil
}

// Shutdown releases application resources.
func (a *App) Shutdown(ctx context.Context) error {
	a.Logger.Info().Msg("Shutting down application")
	if err := a.Storage.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return nil
}
