package common

import (
	"context"
	"testing"
)

func TestUserContext_RoundTrip(t *testing.T) {
	ctx := context.Background()

	// Absent by default
	if uc := UserContextFromContext(ctx); uc != nil {
		t.Error("Expected nil UserContext from empty context")
	}

	uc := &UserContext{
		UserID: "user-123",
		Email:  "alice@example.com",
		Role:   "user",
	}
	ctx = WithUserContext(ctx, uc)

	got := UserContextFromContext(ctx)
	if got == nil {
		t.Fatal("Expected non-nil UserContext")
	}
	if got.UserID != "user-123" {
		t.Errorf("Expected user-123, got %s", got.UserID)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("Expected alice@example.com, got %s", got.Email)
	}
}

func TestResolveUserID(t *testing.T) {
	if id := ResolveUserID(context.Background()); id != "" {
		t.Errorf("Expected empty user id, got %q", id)
	}

	ctx := WithUserContext(context.Background(), &UserContext{UserID: "alice"})
	if id := ResolveUserID(ctx); id != "alice" {
		t.Errorf("Expected alice, got %q", id)
	}
}
