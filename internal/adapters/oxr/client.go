// Package oxr is a client for the Open Exchange Rates API.
//
// See https://docs.openexchangerates.org for the endpoints used here.
package oxr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/SscSPs/aud_rates_app/internal/apperrors"
	"github.com/SscSPs/aud_rates_app/internal/core/domain"
	portsupstream "github.com/SscSPs/aud_rates_app/internal/core/ports/upstream"
	"github.com/SscSPs/aud_rates_app/internal/platform/config"
	"github.com/SscSPs/aud_rates_app/internal/utils/dateutil"
)

const (
	latestPath             = "/latest.json"
	historicalPathTemplate = "/historical/%s.json"

	// maxErrorBodyBytes bounds how much of a failed response is kept.
	maxErrorBodyBytes = 4 << 10
)

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// ClientWithHTTPClient sets the HTTP client to use for requests.
func ClientWithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client talks to the rate provider over HTTP.
type Client struct {
	baseURL    string
	appID      string
	httpClient *http.Client
}

var _ portsupstream.RateProvider = (*Client)(nil)

// NewClient validates cfg and returns a client bound to it.
// It fails with apperrors.ErrConfiguration when the base URL or app id is missing.
func NewClient(cfg config.UpstreamConfig, options ...ClientOption) (*Client, error) {
	cfg = cfg.Normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		baseURL:    cfg.BaseURL,
		appID:      cfg.AppID,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, option := range options {
		option(c)
	}
	return c, nil
}

// FetchLatest implements upstream.RateProvider.
func (c *Client) FetchLatest(ctx context.Context) (*domain.RateSnapshot, error) {
	snapshot, err := c.get(ctx, latestPath)
	if err != nil {
		return nil, fmt.Errorf("fetch latest rates: %w", err)
	}
	return snapshot, nil
}

// FetchHistorical implements upstream.RateProvider.
func (c *Client) FetchHistorical(ctx context.Context, date string) (*domain.RateSnapshot, error) {
	if _, err := time.Parse(dateutil.DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: historical date %q must be YYYY-MM-DD", apperrors.ErrValidation, date)
	}
	snapshot, err := c.get(ctx, fmt.Sprintf(historicalPathTemplate, date))
	if err != nil {
		return nil, fmt.Errorf("fetch historical rates for %s: %w", date, err)
	}
	return snapshot, nil
}

func (c *Client) get(ctx context.Context, path string) (*domain.RateSnapshot, error) {
	reqURL := c.baseURL + path + "?app_id=" + url.QueryEscape(c.appID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	// Always fetch fresh.
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperrors.UpstreamError{StatusCode: resp.StatusCode, Body: readErrorBody(resp)}
	}

	var snapshot domain.RateSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &snapshot, nil
}

// readErrorBody returns what it can of a failed response, falling back to the status text.
// Read errors are swallowed.
func readErrorBody(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if len(body) > 0 {
		return string(body)
	}
	return http.StatusText(resp.StatusCode)
}
