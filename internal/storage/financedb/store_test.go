package financedb

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arolsen/finboard/internal/common"
	"github.com/arolsen/finboard/internal/models"
)

func newUnitTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	logger := common.NewSilentLogger()
	store, err := NewStore(logger, dir)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUserCRUD(t *testing.T) {
	store := newUnitTestStore(t)
	ctx := context.Background()

	user := &models.User{
		UserID:       "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         models.RoleUser,
		DisplayName:  "Alice",
	}
	require.NoError(t, store.SaveUser(ctx, user))

	got, err := store.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set on first save")

	byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", byEmail.UserID)

	// Update preserves CreatedAt.
	created := got.CreatedAt
	got.DisplayName = "Alice B"
	require.NoError(t, store.SaveUser(ctx, got))
	got, err = store.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(created), "CreatedAt changed on update")
	assert.Equal(t, "Alice B", got.DisplayName)

	require.NoError(t, store.DeleteUser(ctx, "alice"))
	_, err = store.GetUser(ctx, "alice")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetUserByEmailNotFound(t *testing.T) {
	store := newUnitTestStore(t)

	_, err := store.GetUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestPortfolioAndHoldings(t *testing.T) {
	store := newUnitTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	p := &models.Portfolio{ID: "p1", UserID: "alice", Name: "Growth", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.SavePortfolio(ctx, p))
	require.NoError(t, store.SavePortfolio(ctx, &models.Portfolio{ID: "p2", UserID: "alice", Name: "Income", CreatedAt: now.Add(time.Second), UpdatedAt: now}))
	require.NoError(t, store.SavePortfolio(ctx, &models.Portfolio{ID: "p3", UserID: "bob", Name: "Other", CreatedAt: now, UpdatedAt: now}))

	list, err := store.ListPortfolios(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Growth", list[0].Name, "portfolios should sort by creation time")
	assert.Equal(t, "Income", list[1].Name)

	price := 42.5
	asset := &models.Asset{ID: "a1", Symbol: "VAS", Name: "Vanguard Australian Shares", Type: models.AssetTypeETF, Currency: "AUD", CurrentPrice: &price}
	require.NoError(t, store.SaveAsset(ctx, asset))

	h := &models.Holding{ID: "h1", PortfolioID: "p1", AssetID: "a1", Quantity: 10, AvgBuyPrice: 40, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.SaveHolding(ctx, h))
	// Holding whose asset was removed is skipped in the join.
	require.NoError(t, store.SaveHolding(ctx, &models.Holding{ID: "h2", PortfolioID: "p1", AssetID: "missing", Quantity: 1, AvgBuyPrice: 1, CreatedAt: now.Add(time.Second), UpdatedAt: now}))

	joined, err := store.GetHoldingsForPortfolio(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, joined, 1)
	assert.Equal(t, "VAS", joined[0].Asset.Symbol)

	// Deleting the portfolio removes its holdings.
	require.NoError(t, store.DeletePortfolio(ctx, "p1"))
	_, err = store.GetHolding(ctx, "h1")
	assert.ErrorIs(t, err, models.ErrNotFound, "holding should be gone after portfolio delete")
}

func TestAssetBySymbol(t *testing.T) {
	store := newUnitTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAsset(ctx, &models.Asset{ID: "a1", Symbol: "BTC", Name: "Bitcoin", Type: models.AssetTypeCrypto, Currency: "USD"}))
	require.NoError(t, store.SaveAsset(ctx, &models.Asset{ID: "a2", Symbol: "AAPL", Name: "Apple", Type: models.AssetTypeStock, Currency: "USD"}))

	got, err := store.GetAssetBySymbol(ctx, "BTC")
	require.NoError(t, err)
	assert.Equal(t, "a1", got.ID)

	list, err := store.ListAssets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "AAPL", list[0].Symbol, "assets should sort by symbol")
}

func TestSettingsUpsert(t *testing.T) {
	store := newUnitTestStore(t)
	ctx := context.Background()

	_, err := store.GetSettings(ctx, "alice")
	require.ErrorIs(t, err, models.ErrNotFound)

	ref := 25000.0
	settings := models.DefaultUserSettings("alice")
	settings.EurAdjustmentFactor = 1.05
	settings.ReferencePortfolioValue = &ref
	require.NoError(t, store.UpsertSettings(ctx, settings))

	got, err := store.GetSettings(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1.05, got.EurAdjustmentFactor)
	require.NotNil(t, got.ReferencePortfolioValue)
	assert.Equal(t, 25000.0, *got.ReferencePortfolioValue)
}

func TestAssetCalibrationCompositeKey(t *testing.T) {
	store := newUnitTestStore(t)
	ctx := context.Background()

	cal := &models.AssetCalibration{
		ID:               "c1",
		UserID:           "alice",
		AssetID:          "a1",
		AdjustmentFactor: 0.98,
		ReferencePrice:   100,
	}
	require.NoError(t, store.UpsertAssetCalibration(ctx, cal))
	// Same asset id under a different user must not collide.
	require.NoError(t, store.UpsertAssetCalibration(ctx, &models.AssetCalibration{ID: "c2", UserID: "bob", AssetID: "a1", AdjustmentFactor: 1.1, ReferencePrice: 110}))

	got, err := store.GetAssetCalibration(ctx, "alice", "a1")
	require.NoError(t, err)
	assert.Equal(t, 0.98, got.AdjustmentFactor)

	list, err := store.ListAssetCalibrations(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAlertLifecycle(t *testing.T) {
	store := newUnitTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	a := &models.Alert{ID: "al1", UserID: "alice", AssetID: "a1", Kind: models.AlertKindPrice, Direction: models.AlertDirectionAbove, Threshold: 150, Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.SaveAlert(ctx, a))
	require.NoError(t, store.SaveAlert(ctx, &models.Alert{ID: "al2", UserID: "bob", AssetID: "a1", Kind: models.AlertKindPrice, Direction: models.AlertDirectionBelow, Threshold: 90, Active: true, CreatedAt: now, UpdatedAt: now}))

	list, err := store.ListAlerts(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "al1", list[0].ID)

	require.NoError(t, store.DeleteAlert(ctx, "al1"))
	_, err = store.GetAlert(ctx, "al1")
	assert.ErrorIs(t, err, models.ErrNotFound)
	// Deleting again is a no-op.
	assert.NoError(t, store.DeleteAlert(ctx, "al1"))
}

func TestAnalysesNewestFirst(t *testing.T) {
	store := newUnitTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	require.NoError(t, store.SaveAnalysis(ctx, &models.Analysis{ID: "an1", UserID: "alice", Kind: models.AnalysisKindAnalysis, Scope: models.AnalysisScopeAsset, TargetID: "a1", Payload: json.RawMessage(`{"v":1}`), CreatedAt: base}))
	require.NoError(t, store.SaveAnalysis(ctx, &models.Analysis{ID: "an2", UserID: "alice", Kind: models.AnalysisKindSuggestion, Scope: models.AnalysisScopePortfolio, TargetID: "p1", Payload: json.RawMessage(`{"v":2}`), CreatedAt: base.Add(time.Minute)}))

	list, err := store.ListAnalyses(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "an2", list[0].ID, "newest analysis should come first")
}

func TestFxRateCache(t *testing.T) {
	store := newUnitTestStore(t)
	ctx := context.Background()

	rate := &models.FxRate{Currency: "USD", RateToEur: 0.85, FetchedAt: time.Now().UTC()}
	require.NoError(t, store.SaveRate(ctx, rate))

	got, err := store.GetRate(ctx, "USD")
	require.NoError(t, err)
	assert.Equal(t, 0.85, got.RateToEur)

	// Upsert replaces.
	rate.RateToEur = 0.86
	require.NoError(t, store.SaveRate(ctx, rate))
	got, err = store.GetRate(ctx, "USD")
	require.NoError(t, err)
	assert.Equal(t, 0.86, got.RateToEur)

	_, err = store.GetRate(ctx, "GBP")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
