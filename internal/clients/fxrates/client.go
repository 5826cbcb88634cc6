// Package fxrates provides a client for the external FX rate provider
package fxrates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/arolsen/finboard/internal/common"
	"github.com/arolsen/finboard/internal/interfaces"
)

const (
	DefaultBaseURL   = "https://api.frankfurter.dev/v1"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// Client implements the FxRateClient interface against a Frankfurter-style
// rates API: GET /latest?base=USD&symbols=EUR.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithAPIKey sets the API key sent with each request
func WithAPIKey(apiKey string) ClientOption {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

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

// NewClient creates a new FX rates client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
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

// APIError represents a provider error response
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fxrates API error (%d) on %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// latestResponse is the provider's rate payload.
type latestResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// GetRateToEur returns the EUR rate for one unit of currency.
func (c *Client) GetRateToEur(ctx context.Context, currency string) (float64, error) {
	if currency == "" {
		return 0, fmt.Errorf("currency code is required")
	}
	if currency == "EUR" {
		// Callers short-circuit EUR; guard anyway.
		return 1, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	endpoint := fmt.Sprintf("%s/latest", c.baseURL)
	params := url.Values{}
	params.Set("base", currency)
	params.Set("symbols", "EUR")
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build FX request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("FX request for %s failed: %w", currency, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read FX response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   "/latest",
		}
	}

	var parsed latestResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("failed to parse FX response for %s: %w", currency, err)
	}

	rate, ok := parsed.Rates["EUR"]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("no EUR rate in response for %s", currency)
	}

	c.logger.Debug().
		Str("currency", currency).
		Float64("rate", rate).
		Dur("duration", time.Since(start)).
		Msg("FX rate fetched")

	return rate, nil
}

// GetUsdToEurRate returns the distinguished USD fallback rate.
func (c *Client) GetUsdToEurRate(ctx context.Context) (float64, error) {
	return c.GetRateToEur(ctx, "USD")
}

// Ensure Client implements FxRateClient
var _ interfaces.FxRateClient = (*Client)(nil)
