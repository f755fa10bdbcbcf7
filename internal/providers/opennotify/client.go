package opennotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// API Docs: http://open-notify.org/Open-Notify-API/ISS-Location-Now/
// Sample request: http://api.open-notify.org/iss-now.json
const (
	baseURL        = "http://api.open-notify.org/iss-now.json"
	defaultTimeout = 10 * time.Second
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an Open Notify client. An empty url or zero timeout falls
// back to the public endpoint and a 10s timeout.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	if url == "" {
		url = baseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    url,
		logger:     logger.With("component", "opennotify-client"),
	}
}

func (c *Client) Now(ctx context.Context) (*NowAPIResponse, error) {
	c.logger.Debug("fetching ISS position", "url", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch ISS position",
			"duration", time.Since(start),
			"error", err,
		)
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Open Notify API returned error",
			"status_code", resp.StatusCode,
			"response_body", string(body),
		)
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp NowAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.logger.Error("failed to decode Open Notify response", "error", err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("successfully fetched ISS position",
		"duration", time.Since(start),
		"message", apiResp.Message,
		"latitude", apiResp.ISSPosition.Latitude,
		"longitude", apiResp.ISSPosition.Longitude,
	)

	return &apiResp, nil
}
