// Package verseapi is the HTTP client for the verse-lookup backend: one
// plain-text GET per allowed query.
package verseapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chikere/verseguide/internal/bot"
	"github.com/chikere/verseguide/internal/metrics"
)

// Client implements bot.Backend over HTTP.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *zap.Logger
}

// Config holds the backend client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewClient creates a verse backend client.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   &http.Client{Timeout: cfg.Timeout},
		logger:  cfg.Logger,
	}
}

var _ bot.Backend = (*Client)(nil)

// Lookup fetches the verse reply for a query. The response body is relayed
// verbatim; a blank body maps to bot.ErrNoResult.
func (c *Client) Lookup(ctx context.Context, query string) (string, error) {
	u := c.baseURL + "?query=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("build verse request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	metrics.BackendRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("verse request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("read verse response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.BackendRequestsTotal.WithLabelValues("error").Inc()
		c.logger.Warn("Verse backend returned non-OK status",
			zap.Int("status", resp.StatusCode),
			zap.String("query", query),
		)
		return "", fmt.Errorf("verse backend status %d", resp.StatusCode)
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		metrics.BackendRequestsTotal.WithLabelValues("empty").Inc()
		return "", bot.ErrNoResult
	}

	metrics.BackendRequestsTotal.WithLabelValues("success").Inc()
	return text, nil
}
