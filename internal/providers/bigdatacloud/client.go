package bigdatacloud

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// API Docs: https://www.bigdatacloud.com/free-api/free-reverse-geocode-to-city-api
// Sample request: https://api.bigdatacloud.net/data/reverse-geocode-client?latitude=39.11&longitude=-107.65&localityLanguage=en
const (
	baseURL         = "https://api.bigdatacloud.net/data/reverse-geocode-client"
	defaultLanguage = "en"
	defaultTimeout  = 10 * time.Second
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	language   string
	logger     *slog.Logger
}

// NewClient creates a BigDataCloud client. Empty values fall back to the public
// endpoint, English names and a 10s timeout.
func NewClient(endpoint, language string, timeout time.Duration, logger *slog.Logger) *Client {
	if endpoint == "" {
		endpoint = baseURL
	}
	if language == "" {
		language = defaultLanguage
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    endpoint,
		language:   language,
		logger:     logger.With("component", "bigdatacloud-client"),
	}
}

func (c *Client) ReverseGeocode(ctx context.Context, latitude, longitude float64) (*ReverseGeocodeAPIResponse, error) {
	// Build URL with query parameters
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("localityLanguage", c.language)
	u.RawQuery = q.Encode()

	c.logger.Debug("fetching BigDataCloud location data",
		"latitude", latitude,
		"longitude", longitude,
		"url", u.String(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch BigDataCloud data",
			"latitude", latitude,
			"longitude", longitude,
			"error", err,
		)
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("BigDataCloud API returned error",
			"status_code", resp.StatusCode,
			"latitude", latitude,
			"longitude", longitude,
			"response_body", string(body),
		)
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp ReverseGeocodeAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		c.logger.Error("failed to decode BigDataCloud response",
			"latitude", latitude,
			"longitude", longitude,
			"error", err,
		)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	apiResp.Raw = json.RawMessage(body)

	c.logger.Debug("successfully fetched BigDataCloud location data",
		"latitude", latitude,
		"longitude", longitude,
		"country_code", apiResp.CountryCode,
		"locality", apiResp.Locality,
	)

	return &apiResp, nil
}
