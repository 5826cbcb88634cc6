package market

import (
	"context"
	"errors"
	"testing"

	"github.com/arolsen/finboard/internal/common"
	"github.com/arolsen/finboard/internal/models"
	"github.com/arolsen/finboard/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	cfg := common.NewDefaultConfig()
	cfg.Storage.Path = t.TempDir()
	logger := common.NewSilentLogger()

	mgr, err := storage.NewManager(logger, cfg)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })

	return NewService(mgr, logger)
}

func TestUpsertAssetValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		asset models.Asset
	}{
		{"missing symbol", models.Asset{Currency: "EUR", Type: models.AssetTypeStock}},
		{"missing currency", models.Asset{Symbol: "BMW", Type: models.AssetTypeStock}},
		{"unknown type", models.Asset{Symbol: "BMW", Currency: "EUR", Type: "derivative"}},
	}
	for _, tc := range cases {
		asset := tc.asset
		if _, err := svc.UpsertAsset(ctx, &asset); !errors.Is(err, models.ErrInvalidArgument) {
			t.Errorf("%s: expected ErrInvalidArgument, got %v", tc.name, err)
		}
	}
}

func TestUpsertAssetNormalizesAndMergesBySymbol(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.UpsertAsset(ctx, &models.Asset{
		Symbol:   "bmw",
		Name:     "BMW AG",
		Type:     models.AssetTypeStock,
		Currency: "eur",
	})
	if err != nil {
		t.Fatalf("UpsertAsset: %v", err)
	}
	if created.Symbol != "BMW" || created.Currency != "EUR" {
		t.Errorf("expected uppercased symbol/currency, got %s/%s", created.Symbol, created.Currency)
	}

	if _, err := svc.UpdatePrice(ctx, created.ID, 92.5); err != nil {
		t.Fatalf("UpdatePrice: %v", err)
	}

	// Upserting the same symbol without an ID reuses the record and keeps
	// its price history.
	merged, err := svc.UpsertAsset(ctx, &models.Asset{
		Symbol:   "BMW",
		Name:     "Bayerische Motoren Werke",
		Type:     models.AssetTypeStock,
		Currency: "EUR",
	})
	if err != nil {
		t.Fatalf("merge UpsertAsset: %v", err)
	}
	if merged.ID != created.ID {
		t.Errorf("expected merge onto existing asset, got new id %s", merged.ID)
	}
	if merged.CurrentPrice == nil || *merged.CurrentPrice != 92.5 {
		t.Errorf("merge dropped current price: %v", merged.CurrentPrice)
	}
	if merged.Name != "Bayerische Motoren Werke" {
		t.Errorf("merge should take the new name, got %s", merged.Name)
	}
}

func TestUpdatePriceShiftsPreviousClose(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	asset, err := svc.UpsertAsset(ctx, &models.Asset{
		Symbol:   "AAPL",
		Name:     "Apple",
		Type:     models.AssetTypeStock,
		Currency: "USD",
	})
	if err != nil {
		t.Fatalf("UpsertAsset: %v", err)
	}

	// First update: no previous close yet.
	updated, err := svc.UpdatePrice(ctx, asset.ID, 200)
	if err != nil {
		t.Fatalf("UpdatePrice: %v", err)
	}
	if updated.PreviousClose != nil {
		t.Errorf("expected nil previous close on first update, got %v", *updated.PreviousClose)
	}
	if updated.PriceUpdatedAt == nil {
		t.Error("expected PriceUpdatedAt to be set")
	}

	updated, err = svc.UpdatePrice(ctx, asset.ID, 205)
	if err != nil {
		t.Fatalf("second UpdatePrice: %v", err)
	}
	if updated.PreviousClose == nil || *updated.PreviousClose != 200 {
		t.Errorf("expected previous close 200, got %v", updated.PreviousClose)
	}
	if *updated.CurrentPrice != 205 {
		t.Errorf("expected current price 205, got %f", *updated.CurrentPrice)
	}
}

func TestUpdatePriceBounds(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	asset, _ := svc.UpsertAsset(ctx, &models.Asset{
		Symbol: "AAPL", Name: "Apple", Type: models.AssetTypeStock, Currency: "USD",
	})

	if _, err := svc.UpdatePrice(ctx, asset.ID, -1); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for negative price, got %v", err)
	}
	// Zero is a legal price.
	if _, err := svc.UpdatePrice(ctx, asset.ID, 0); err != nil {
		t.Errorf("zero price should be accepted: %v", err)
	}
	if _, err := svc.UpdatePrice(ctx, "missing", 10); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown asset, got %v", err)
	}
}

func TestDeleteAsset(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	asset, _ := svc.UpsertAsset(ctx, &models.Asset{
		Symbol: "AAPL", Name: "Apple", Type: models.AssetTypeStock, Currency: "USD",
	})

	if err := svc.DeleteAsset(ctx, asset.ID); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}
	if err := svc.DeleteAsset(ctx, asset.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
	if _, err := svc.GetAsset(ctx, asset.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
