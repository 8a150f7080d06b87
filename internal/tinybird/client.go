// Package tinybird is a client for Tinybird's SQL query endpoint. The
// endpoint accepts a raw SELECT statement as the request body and returns a
// JSON envelope; it supports no parameter binding, so callers are
// responsible for building safe query text.
package tinybird

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const sqlEndpointPath = "/v0/sql"

// Config carries the connection settings for a client. It is injected at
// construction; there is no process-wide client state.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client issues queries against the Tinybird SQL endpoint.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client from explicit configuration.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Query posts the query text and decodes the response envelope. Non-2xx
// responses are surfaced as errors without retry.
func (c *Client) Query(ctx context.Context, query string) (*Result, error) {
	url := c.baseURL + sqlEndpointPath + "?format=JSON"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(query))
	if err != nil {
		return nil, fmt.Errorf("building query request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "text/plain")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading query response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("Query failed",
			slog.Int("status", resp.StatusCode),
			slog.String("body", truncateForLog(string(body))))
		return nil, fmt.Errorf("query endpoint returned status %d", resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding query response: %w", err)
	}

	c.logger.Debug("Query executed",
		slog.Int("rows", result.Rows),
		slog.Duration("elapsed", time.Since(started)))

	return &result, nil
}

func truncateForLog(s string) string {
	const max = 512
	if len(s) > max {
		return s[:max]
	}
	return s
}
