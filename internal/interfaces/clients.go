// Package interfaces defines service contracts for finboard
package interfaces

import (
	"context"
	"encoding/json"
)

// FxRateClient fetches currency→EUR conversion rates from the external
// rate provider. Callers must short-circuit EUR itself to 1.0 and never
// request it.
type FxRateClient interface {
	// GetRateToEur returns the EUR rate for one currency code.
	GetRateToEur(ctx context.Context, currency string) (float64, error)

	// GetUsdToEurRate returns the distinguished USD fallback rate.
	GetUsdToEurRate(ctx context.Context) (float64, error)
}

// WorkflowRequest is the payload posted to a workflow-engine webhook.
type WorkflowRequest struct {
	UserID   string `json:"user_id"`
	Scope    string `json:"scope"`     // "asset" or "portfolio"
	TargetID string `json:"target_id"` // asset or portfolio ID
	Context  any    `json:"context,omitempty"`
}

// WorkflowClient reaches the external workflow-automation engine over HTTP
// webhooks. Responses are opaque JSON stored as-is.
type WorkflowClient interface {
	TriggerAnalysis(ctx context.Context, req WorkflowRequest) (json.RawMessage, error)
	TriggerSuggestion(ctx context.Context, req WorkflowRequest) (json.RawMessage, error)
	Notify(ctx context.Context, event string, payload any) error
}
