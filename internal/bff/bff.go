// Package bff shapes the latest location and its fact for each client: a flat
// document for the ESP display and a nested one for the web front-end.
package bff

import (
	"time"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/location"
	"iss-sky-scanner/internal/types"
)

const (
	Version       = "1.0"
	StatusSuccess = "success"
	StatusError   = "error"

	FallbackFact        = "Fun fact coming soon!"
	UnavailableLocation = "Location details unavailable"
)

// ESPResponse is flat so the device can read it with a small JSON parser
type ESPResponse struct {
	Timestamp       string  `json:"timestamp"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	LocationDetails string  `json:"location_details"`
	FunFact         string  `json:"fun_fact"`
	Status          string  `json:"status"`
	Version         string  `json:"version"`
}

type WebLocation struct {
	Timestamp       string  `json:"timestamp"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	LocationDetails string  `json:"location_details"`
	CountryCode     string  `json:"country_code"`
	Timezone        string  `json:"timezone"`
}

type WebResponse struct {
	Status   string      `json:"status"`
	Version  string      `json:"version"`
	Location WebLocation `json:"location"`
	Fact     types.Fact  `json:"fact"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

func ESP(lf *location.LocatedFact) ESPResponse {
	rec := lf.Record
	return ESPResponse{
		Timestamp:       formatTimestamp(rec.Timestamp),
		Latitude:        rec.Latitude,
		Longitude:       rec.Longitude,
		LocationDetails: locationName(rec),
		FunFact:         factText(lf.Fact),
		Status:          StatusSuccess,
		Version:         Version,
	}
}

func Web(lf *location.LocatedFact) WebResponse {
	rec := lf.Record
	name := locationName(rec)
	return WebResponse{
		Status:  StatusSuccess,
		Version: Version,
		Location: WebLocation{
			Timestamp:       formatTimestamp(rec.Timestamp),
			Latitude:        rec.Latitude,
			Longitude:       rec.Longitude,
			LocationDetails: name,
			CountryCode:     rec.Details.CountryCode,
			Timezone:        rec.Timezone,
		},
		Fact: types.Fact{
			Location: name,
			Fact:     factText(lf.Fact),
		},
	}
}

// Error returns the client-safe error document for err
func Error(err error) ErrorResponse {
	return ErrorResponse{
		Error:  apperr.PublicMessage(err),
		Status: StatusError,
	}
}

func formatTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339)
}

func locationName(rec types.HistoryRecord) string {
	if rec.Details.LocationName == "" {
		return UnavailableLocation
	}
	return rec.Details.LocationName
}

func factText(f *types.Fact) string {
	if f == nil || f.Fact == "" {
		return FallbackFact
	}
	return f.Fact
}
