package location

import (
	"context"

	"iss-sky-scanner/internal/providers/bigdatacloud"
	"iss-sky-scanner/internal/providers/opennotify"
	"iss-sky-scanner/internal/providers/openstreetmap"
	"iss-sky-scanner/internal/types"
)

// Service tracks the station and enriches its position
type Service interface {
	// FetchCurrentPosition returns the live sub-satellite point
	FetchCurrentPosition(ctx context.Context) (*types.LocationReading, error)
	// Describe reverse-geocodes a point into a place description
	Describe(ctx context.Context, latitude, longitude float64) (*types.LocationDetails, error)
	// EnrichCurrent fetches the live position and describes it. All or nothing.
	EnrichCurrent(ctx context.Context) (*types.EnrichedLocation, error)
	// LatestWithFact returns the most recent stored record and a fact about it
	LatestWithFact(ctx context.Context) (*LocatedFact, error)
	// StoreCurrent enriches the live position and appends it to the history
	StoreCurrent(ctx context.Context) (*types.HistoryRecord, error)
	// Latest returns the most recent stored record
	Latest(ctx context.Context) (*types.HistoryRecord, error)
	// LatestOver returns the most recent stored record over the given country
	LatestOver(ctx context.Context, country string) (*types.HistoryRecord, error)
}

// PositionProvider defines the interface for satellite position providers
type PositionProvider interface {
	Now(ctx context.Context) (*opennotify.NowAPIResponse, error)
}

// ReverseGeocodeProvider defines the interface for the BigDataCloud geocoder
type ReverseGeocodeProvider interface {
	ReverseGeocode(ctx context.Context, latitude, longitude float64) (*bigdatacloud.ReverseGeocodeAPIResponse, error)
}

// LookupProvider defines the interface for the Nominatim geocoder
type LookupProvider interface {
	Lookup(ctx context.Context, latitude, longitude float64) (*openstreetmap.LookupAPIResponse, error)
}

// Geocoder turns a point into a place description, whatever the backend
type Geocoder interface {
	Describe(ctx context.Context, latitude, longitude float64) (*types.LocationDetails, error)
}

// ZoneFinder resolves the IANA zone of a point
type ZoneFinder interface {
	ZoneOf(coords types.Coords) string
}

// HistoryStore is the part of the history store the pipeline needs
type HistoryStore interface {
	Append(ctx context.Context, loc types.EnrichedLocation) (*types.HistoryRecord, error)
	Latest(ctx context.Context) (*types.HistoryRecord, error)
	LatestOver(ctx context.Context, country string) (*types.HistoryRecord, error)
}

// FactGenerator produces a short fact about a named place
type FactGenerator interface {
	Generate(ctx context.Context, location string) (*types.Fact, error)
}
