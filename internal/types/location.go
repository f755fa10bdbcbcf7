package types

import (
	"encoding/json"
	"time"
)

// LocationReading is a single poll of the satellite position source
type LocationReading struct {
	Timestamp time.Time `json:"timestamp"`
	Coords
}

func NewLocationReading(timestamp time.Time, latitude, longitude float64) LocationReading {
	return LocationReading{
		Timestamp: timestamp.UTC(),
		Coords:    NewCoords(latitude, longitude),
	}
}

// LocationDetails is the reverse-geocoded description of a reading
type LocationDetails struct {
	LocationName string          `json:"location_name"`
	Country      string          `json:"country,omitempty"`
	CountryCode  string          `json:"country_code,omitempty"`
	OverWater    bool            `json:"over_water"`
	Raw          json.RawMessage `json:"raw_geocoder_response,omitempty"`
}

// EnrichedLocation pairs a reading with exactly one set of details.
// Timestamp is the ordering key.
type EnrichedLocation struct {
	LocationReading
	Details  LocationDetails `json:"location_details"`
	Timezone string          `json:"timezone,omitempty"`
}

// HistoryRecord is a stored EnrichedLocation with its storage-assigned identity
type HistoryRecord struct {
	ID string `json:"id"`
	EnrichedLocation
	StoredAt time.Time `json:"stored_at"`
}
