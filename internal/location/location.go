package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/config"
	"iss-sky-scanner/internal/history"
	"iss-sky-scanner/internal/providers/bigdatacloud"
	"iss-sky-scanner/internal/providers/opennotify"
	"iss-sky-scanner/internal/providers/openstreetmap"
	"iss-sky-scanner/internal/timezone"
	"iss-sky-scanner/internal/types"
)

// LocatedFact is the latest stored record together with a fact about it
type LocatedFact struct {
	Record types.HistoryRecord
	Fact   *types.Fact
}

// locationService implements the Service interface
type locationService struct {
	positionProvider PositionProvider
	geocoder         Geocoder
	zones            ZoneFinder
	store            HistoryStore
	facts            FactGenerator
	logger           *slog.Logger
}

// NewLocationService creates a location service with real provider clients
// built from the providers configuration
func NewLocationService(cfg config.ProvidersConfig, store HistoryStore, facts FactGenerator, logger *slog.Logger) (Service, error) {
	zones, err := timezone.NewService()
	if err != nil {
		return nil, err
	}

	return NewLocationServiceWithProviders(
		opennotify.NewClient(cfg.Position.URL, cfg.Position.Timeout, logger),
		NewGeocoder(cfg.Geocoder, logger),
		zones,
		store,
		facts,
		logger,
	), nil
}

// NewGeocoder builds the configured geocoder backend
func NewGeocoder(cfg config.GeocoderConfig, logger *slog.Logger) Geocoder {
	if cfg.Backend == "nominatim" {
		return NewNominatimGeocoder(openstreetmap.NewClient(cfg.URL, cfg.Language, cfg.Timeout, logger))
	}
	return NewBigDataCloudGeocoder(bigdatacloud.NewClient(cfg.URL, cfg.Language, cfg.Timeout, logger))
}

// NewLocationServiceWithProviders creates a location service with custom providers
// This is useful for testing with mock providers
func NewLocationServiceWithProviders(
	positionProvider PositionProvider,
	geocoder Geocoder,
	zones ZoneFinder,
	store HistoryStore,
	facts FactGenerator,
	logger *slog.Logger,
) Service {
	return &locationService{
		positionProvider: positionProvider,
		geocoder:         geocoder,
		zones:            zones,
		store:            store,
		facts:            facts,
		logger:           logger.With("component", "location-service"),
	}
}

func (s *locationService) Describe(ctx context.Context, latitude, longitude float64) (*types.LocationDetails, error) {
	return s.geocoder.Describe(ctx, latitude, longitude)
}

func (s *locationService) EnrichCurrent(ctx context.Context) (*types.EnrichedLocation, error) {
	start := time.Now()
	reading, err := s.FetchCurrentPosition(ctx)
	if err != nil {
		s.logger.Error("failed to fetch position", "error", err)
		return nil, err
	}
	positionDuration := time.Since(start)

	start = time.Now()
	details, err := s.geocoder.Describe(ctx, reading.Latitude, reading.Longitude)
	if err != nil {
		s.logger.Error("failed to describe position",
			"latitude", reading.Latitude,
			"longitude", reading.Longitude,
			"error", err,
		)
		return nil, err
	}

	enriched := &types.EnrichedLocation{
		LocationReading: *reading,
		Details:         *details,
	}
	if s.zones != nil {
		enriched.Timezone = s.zones.ZoneOf(reading.Coords)
	}

	s.logger.Info("enriched current position",
		"location_name", details.LocationName,
		"position_duration", positionDuration,
		"geocode_duration", time.Since(start),
	)

	return enriched, nil
}

func (s *locationService) StoreCurrent(ctx context.Context) (*types.HistoryRecord, error) {
	enriched, err := s.EnrichCurrent(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.store.Append(ctx, *enriched)
	if err != nil {
		s.logger.Error("failed to store position", "error", err)
		return nil, err
	}

	s.logger.Info("stored position", "id", record.ID, "location_name", record.Details.LocationName)
	return record, nil
}

func (s *locationService) Latest(ctx context.Context) (*types.HistoryRecord, error) {
	record, err := s.store.Latest(ctx)
	if err != nil {
		return nil, noDataOnNotFound(err, "No location data found")
	}
	return record, nil
}

func (s *locationService) LatestOver(ctx context.Context, country string) (*types.HistoryRecord, error) {
	record, err := s.store.LatestOver(ctx, country)
	if err != nil {
		return nil, noDataOnNotFound(err, fmt.Sprintf("No location data found over %s", country))
	}
	return record, nil
}

// LatestWithFact returns the latest record and a fact about its location. A
// failed fact returns the record together with the error so callers may degrade.
func (s *locationService) LatestWithFact(ctx context.Context) (*LocatedFact, error) {
	record, err := s.Latest(ctx)
	if err != nil {
		return nil, err
	}

	result := &LocatedFact{Record: *record}

	fact, err := s.facts.Generate(ctx, record.Details.LocationName)
	if err != nil {
		s.logger.Warn("failed to generate fact",
			"location_name", record.Details.LocationName,
			"error", err,
		)
		return result, err
	}

	result.Fact = fact
	return result, nil
}

func noDataOnNotFound(err error, message string) error {
	if errors.Is(err, history.ErrNotFound) {
		return apperr.NoData(message)
	}
	return err
}
