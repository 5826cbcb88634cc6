// Package workflow provides a client for the external workflow-automation
// engine reached over HTTP webhooks.
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/arolsen/finboard/internal/common"
	"github.com/arolsen/finboard/internal/interfaces"
)

const (
	DefaultTimeout   = 60 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Webhook paths on the engine. The engine owns the workflows behind them;
// finboard only posts triggers and stores whatever JSON comes back.
const (
	pathAnalysis   = "/finboard-analysis"
	pathSuggestion = "/finboard-suggestion"
	pathNotify     = "/finboard-notify"
)

// Client implements the WorkflowClient interface.
type Client struct {
	baseURL    string
	webhookKey string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new workflow engine client. baseURL is the engine's
// webhook root (e.g. http://host:5678/webhook); webhookKey is sent as a
// bearer token.
func NewClient(baseURL, webhookKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		webhookKey: webhookKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an engine error response
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("workflow engine error (%d) on %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// post sends a JSON payload to a webhook path and returns the raw response.
func (c *Client) post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.webhookKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.webhookKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webhook %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read webhook response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
			Endpoint:   path,
		}
	}

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Int("bytes", len(respBody)).
		Dur("duration", time.Since(start)).
		Msg("Workflow webhook complete")

	return json.RawMessage(respBody), nil
}

// TriggerAnalysis posts an analysis request and returns the opaque result.
func (c *Client) TriggerAnalysis(ctx context.Context, req interfaces.WorkflowRequest) (json.RawMessage, error) {
	return c.post(ctx, pathAnalysis, req)
}

// TriggerSuggestion posts a trading-suggestion request and returns the
// opaque result.
func (c *Client) TriggerSuggestion(ctx context.Context, req interfaces.WorkflowRequest) (json.RawMessage, error) {
	return c.post(ctx, pathSuggestion, req)
}

// Notify posts a fire-and-forget event to the engine's notification workflow.
func (c *Client) Notify(ctx context.Context, event string, payload any) error {
	_, err := c.post(ctx, pathNotify, map[string]any{
		"event":   event,
		"payload": payload,
	})
	return err
}

// Ensure Client implements WorkflowClient
var _ interfaces.WorkflowClient = (*Client)(nil)
