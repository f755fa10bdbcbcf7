//go:build integration

package bigdatacloud

import (
	"context"
	"testing"
)

func TestClient_ReverseGeocode_Integration(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		wantLand bool
	}{
		{name: "Aspen, CO", lat: 39.11539, lon: -107.65840, wantLand: true},
		{name: "mid Pacific", lat: 0.0, lon: -160.0, wantLand: false},
	}

	client := NewClient("", "", 0, testLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.ReverseGeocode(context.Background(), tt.lat, tt.lon)
			if err != nil {
				t.Fatalf("Failed to reverse geocode: %v", err)
			}

			t.Logf("Raw API Response:\n%s", string(resp.Raw))

			if tt.wantLand && resp.CountryCode == "" {
				t.Error("expected a country code on land")
			}
			if !tt.wantLand && resp.CountryCode != "" {
				t.Errorf("expected no country over water, got %q", resp.CountryCode)
			}
		})
	}
}
