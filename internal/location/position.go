package location

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/providers/opennotify"
	"iss-sky-scanner/internal/types"
)

func (s *locationService) FetchCurrentPosition(ctx context.Context) (*types.LocationReading, error) {
	resp, err := s.positionProvider.Now(ctx)
	if err != nil {
		return nil, apperr.Upstream("Failed to fetch ISS location", fmt.Errorf("failed to get position: %w", err))
	}

	reading, err := translatePosition(resp)
	if err != nil {
		return nil, apperr.Upstream("Failed to fetch ISS location", err)
	}
	return reading, nil
}

// translatePosition converts an Open Notify payload to a domain reading
func translatePosition(resp *opennotify.NowAPIResponse) (*types.LocationReading, error) {
	if resp == nil {
		return nil, fmt.Errorf("position response is nil")
	}
	if resp.Message != "success" {
		return nil, fmt.Errorf("position source returned message %q", resp.Message)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(resp.ISSPosition.Latitude), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", resp.ISSPosition.Latitude, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(resp.ISSPosition.Longitude), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", resp.ISSPosition.Longitude, err)
	}

	reading := types.NewLocationReading(time.Unix(resp.Timestamp, 0), lat, lon)
	if !reading.Valid() {
		return nil, fmt.Errorf("position out of range: lat=%f, lon=%f", lat, lon)
	}
	return &reading, nil
}
