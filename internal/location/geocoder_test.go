package location

import (
	"context"
	"errors"
	"strings"
	"testing"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/providers/bigdatacloud"
	"iss-sky-scanner/internal/providers/openstreetmap"
)

type mockReverseGeocodeProvider struct {
	response *bigdatacloud.ReverseGeocodeAPIResponse
	err      error
}

func (m *mockReverseGeocodeProvider) ReverseGeocode(ctx context.Context, latitude, longitude float64) (*bigdatacloud.ReverseGeocodeAPIResponse, error) {
	return m.response, m.err
}

type mockLookupProvider struct {
	response *openstreetmap.LookupAPIResponse
	err      error
}

func (m *mockLookupProvider) Lookup(ctx context.Context, latitude, longitude float64) (*openstreetmap.LookupAPIResponse, error) {
	return m.response, m.err
}

func informative(names ...string) bigdatacloud.LocalityInfo {
	var info bigdatacloud.LocalityInfo
	for i, name := range names {
		info.Informative = append(info.Informative, bigdatacloud.LocalityEntry{Name: name, Order: i + 1})
	}
	return info
}

func TestBigDataCloudGeocoder_Describe(t *testing.T) {
	tests := []struct {
		name          string
		response      *bigdatacloud.ReverseGeocodeAPIResponse
		err           error
		wantName      string
		wantOverWater bool
		wantCode      string
		wantErr       error
	}{
		{
			name: "land uses city, subdivision and country",
			response: &bigdatacloud.ReverseGeocodeAPIResponse{
				City:                 "Houston",
				Locality:             "Clear Lake",
				PrincipalSubdivision: "Texas",
				CountryName:          "United States of America (the)",
				CountryCode:          "us",
			},
			wantName: "Houston, Texas, United States of America (the)",
			wantCode: "US",
		},
		{
			name: "land falls back to locality without city",
			response: &bigdatacloud.ReverseGeocodeAPIResponse{
				Locality:             "Outback",
				PrincipalSubdivision: "Northern Territory",
				CountryName:          "Australia",
				CountryCode:          "AU",
			},
			wantName: "Outback, Northern Territory, Australia",
			wantCode: "AU",
		},
		{
			name: "land omits empty parts",
			response: &bigdatacloud.ReverseGeocodeAPIResponse{
				CountryName: "Greenland",
				CountryCode: "GL",
			},
			wantName: "Greenland",
			wantCode: "GL",
		},
		{
			name: "water uses informative ocean name",
			response: &bigdatacloud.ReverseGeocodeAPIResponse{
				Locality:     "somewhere",
				LocalityInfo: informative("Earth", "Indian Ocean"),
			},
			wantName:      "Over the Indian Ocean",
			wantOverWater: true,
		},
		{
			name: "water matches sea case-insensitively",
			response: &bigdatacloud.ReverseGeocodeAPIResponse{
				LocalityInfo: informative("CORAL SEA"),
			},
			wantName:      "Over the CORAL SEA",
			wantOverWater: true,
		},
		{
			name: "water falls back to locality",
			response: &bigdatacloud.ReverseGeocodeAPIResponse{
				Locality:     "Drake Passage",
				LocalityInfo: informative("Earth"),
			},
			wantName:      "Over the Drake Passage",
			wantOverWater: true,
		},
		{
			name: "water does not double the article",
			response: &bigdatacloud.ReverseGeocodeAPIResponse{
				Locality: "the Bering Strait",
			},
			wantName:      "Over the Bering Strait",
			wantOverWater: true,
		},
		{
			name:          "water with nothing known",
			response:      &bigdatacloud.ReverseGeocodeAPIResponse{CountryCode: "XX"},
			wantName:      "Over the open ocean",
			wantOverWater: true,
		},
		{
			name:    "transport error",
			err:     errors.New("dial tcp: timeout"),
			wantErr: apperr.ErrUpstreamUnavailable,
		},
		{
			name:    "nil response",
			wantErr: apperr.ErrUpstreamUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewBigDataCloudGeocoder(&mockReverseGeocodeProvider{response: tt.response, err: tt.err})

			got, err := g.Describe(context.Background(), 10, 20)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				if got != nil {
					t.Error("expected no details on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.LocationName != tt.wantName {
				t.Errorf("LocationName = %q, want %q", got.LocationName, tt.wantName)
			}
			if got.OverWater != tt.wantOverWater {
				t.Errorf("OverWater = %v, want %v", got.OverWater, tt.wantOverWater)
			}
			if got.CountryCode != tt.wantCode {
				t.Errorf("CountryCode = %q, want %q", got.CountryCode, tt.wantCode)
			}
			if tt.wantOverWater && !strings.HasPrefix(got.LocationName, "Over the ") {
				t.Errorf("water name %q does not start with \"Over the \"", got.LocationName)
			}
		})
	}
}

func TestNominatimGeocoder_Describe(t *testing.T) {
	tests := []struct {
		name     string
		response *openstreetmap.LookupAPIResponse
		err      error
		wantName string
		wantErr  bool
	}{
		{
			name: "land prefers city then town",
			response: &openstreetmap.LookupAPIResponse{
				Address: openstreetmap.Address{Town: "Aspen", County: "Pitkin County", State: "Colorado", Country: "United States", CountryCode: "us"},
			},
			wantName: "Aspen, Colorado, United States",
		},
		{
			name:     "unable to geocode is open water",
			response: &openstreetmap.LookupAPIResponse{Error: "Unable to geocode"},
			wantName: "Over the open ocean",
		},
		{
			name: "named water feature",
			response: &openstreetmap.LookupAPIResponse{
				Name:    "North Pacific Ocean",
				Address: openstreetmap.Address{},
			},
			wantName: "Over the North Pacific Ocean",
		},
		{
			name:    "upstream failure",
			err:     errors.New("status 500"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewNominatimGeocoder(&mockLookupProvider{response: tt.response, err: tt.err})

			got, err := g.Describe(context.Background(), 39.1, -107.6)

			if tt.wantErr {
				if !errors.Is(err, apperr.ErrUpstreamUnavailable) {
					t.Fatalf("error = %v, want UpstreamUnavailable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.LocationName != tt.wantName {
				t.Errorf("LocationName = %q, want %q", got.LocationName, tt.wantName)
			}
		})
	}
}
