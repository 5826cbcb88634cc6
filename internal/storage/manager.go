// Package storage provides the top-level StorageManager backed by a
// single BadgerHold database.
package storage

import (
	"fmt"

	"github.com/arolsen/finboard/internal/common"
	"github.com/arolsen/finboard/internal/interfaces"
	"github.com/arolsen/finboard/internal/storage/financedb"
)

// Manager implements interfaces.StorageManager.
type Manager struct {
	db     *financedb.Store
	logger *common.Logger
}

// NewManager opens the finance database at the configured path.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	db, err := financedb.NewStore(logger, config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create finance store: %w", err)
	}

	logger.Info().
		Str("path", config.Storage.Path).
		Msg("Storage manager initialized")

	return &Manager{
		db:     db,
		logger: logger,
	}, nil
}

func (m *Manager) UserStore() interfaces.UserStore {
	return m.db
}

func (m *Manager) PortfolioStore() interfaces.PortfolioStore {
	return m.db
}

func (m *Manager) AssetStore() interfaces.AssetStore {
	return m.db
}

func (m *Manager) SettingsStore() interfaces.SettingsStore {
	return m.db
}

func (m *Manager) AlertStore() interfaces.AlertStore {
	return m.db
}

func (m *Manager) AnalysisStore() interfaces.AnalysisStore {
	return m.db
}

func (m *Manager) FxRateStore() interfaces.FxRateStore {
	return m.db
}

func (m *Manager) Close() error {
	return m.db.Close()
}

var _ interfaces.StorageManager = (*Manager)(nil)
