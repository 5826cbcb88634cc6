package alert

import (
	"context"
	"errors"
	"testing"

	"github.com/arolsen/finboard/internal/common"
	"github.com/arolsen/finboard/internal/interfaces"
	"github.com/arolsen/finboard/internal/models"
	"github.com/arolsen/finboard/internal/storage"
)

func newTestService(t *testing.T) (*Service, interfaces.StorageManager) {
	t.Helper()

	cfg := common.NewDefaultConfig()
	cfg.Storage.Path = t.TempDir()
	logger := common.NewSilentLogger()

	mgr, err := storage.NewManager(logger, cfg)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })

	price := 200.0
	if err := mgr.AssetStore().SaveAsset(context.Background(), &models.Asset{
		ID: "aapl", Symbol: "AAPL", Name: "Apple", Type: models.AssetTypeStock,
		Currency: "USD", CurrentPrice: &price,
	}); err != nil {
		t.Fatalf("SaveAsset: %v", err)
	}

	return NewService(mgr, logger), mgr
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		alert models.Alert
	}{
		{"missing asset", models.Alert{Kind: models.AlertKindPrice, Direction: models.AlertDirectionAbove}},
		{"unknown kind", models.Alert{AssetID: "aapl", Kind: "sentiment", Direction: models.AlertDirectionAbove}},
		{"technical without indicator", models.Alert{AssetID: "aapl", Kind: models.AlertKindTechnical, Direction: models.AlertDirectionAbove}},
		{"bad direction", models.Alert{AssetID: "aapl", Kind: models.AlertKindPrice, Direction: "sideways"}},
	}
	for _, tc := range cases {
		a := tc.alert
		if _, err := svc.Create(ctx, "alice", &a); !errors.Is(err, models.ErrInvalidArgument) {
			t.Errorf("%s: expected ErrInvalidArgument, got %v", tc.name, err)
		}
	}

	// Unknown asset is NotFound, not InvalidArgument.
	a := models.Alert{AssetID: "missing", Kind: models.AlertKindPrice, Direction: models.AlertDirectionAbove, Threshold: 100}
	if _, err := svc.Create(ctx, "alice", &a); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown asset, got %v", err)
	}
}

func TestCreateDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", &models.Alert{
		AssetID:   "aapl",
		Kind:      models.AlertKindPrice,
		Direction: models.AlertDirectionAbove,
		Threshold: 250,
		// Client-supplied fields that the service must own.
		ID:     "client-chosen-id",
		Active: false,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "client-chosen-id" {
		t.Error("service must assign its own alert ID")
	}
	if !created.Active {
		t.Error("new alerts start active")
	}
	if created.LastTriggeredAt != nil {
		t.Error("new alerts start untriggered")
	}
}

func TestOwnershipAndLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "alice", &models.Alert{
		AssetID: "aapl", Kind: models.AlertKindPrice, Direction: models.AlertDirectionBelow, Threshold: 150,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(ctx, "bob", created.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign alert, got %v", err)
	}

	// Update mutable fields.
	created.Threshold = 140
	created.Active = false
	updated, err := svc.Update(ctx, "alice", created)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Threshold != 140 || updated.Active {
		t.Errorf("update not applied: %+v", updated)
	}

	// Trigger.
	triggered, err := svc.MarkTriggered(ctx, "alice", created.ID)
	if err != nil {
		t.Fatalf("MarkTriggered: %v", err)
	}
	if triggered.LastTriggeredAt == nil {
		t.Error("expected trigger timestamp")
	}

	// List only sees the owner's alerts.
	if list, _ := svc.List(ctx, "alice"); len(list) != 1 {
		t.Errorf("expected 1 alert for alice, got %d", len(list))
	}
	if list, _ := svc.List(ctx, "bob"); len(list) != 0 {
		t.Errorf("expected 0 alerts for bob, got %d", len(list))
	}

	if err := svc.Delete(ctx, "alice", created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, "alice", created.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}
