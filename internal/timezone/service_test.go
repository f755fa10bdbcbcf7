package timezone

import (
	"testing"

	"iss-sky-scanner/internal/types"
)

func TestService_GetTimezone(t *testing.T) {
	svc, err := NewService()
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}

	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		want      string
	}{
		{
			name:      "Houston, Texas",
			latitude:  29.5502,
			longitude: -95.0970,
			want:      "America/Chicago",
		},
		{
			name:      "Moscow, Russia",
			latitude:  55.7558,
			longitude: 37.6173,
			want:      "Europe/Moscow",
		},
		{
			name:      "London, UK",
			latitude:  51.5074,
			longitude: -0.1278,
			want:      "Europe/London",
		},
		{
			name:      "Tokyo, Japan",
			latitude:  35.6762,
			longitude: 139.6503,
			want:      "Asia/Tokyo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.GetTimezone(tt.latitude, tt.longitude)
			if err != nil {
				t.Errorf("GetTimezone() error = %v", err)
				return
			}
			if got != tt.want {
				t.Errorf("GetTimezone() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestService_ZoneOf(t *testing.T) {
	svc, err := NewService()
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}

	if got := svc.ZoneOf(types.NewCoords(-33.8688, 151.2093)); got != "Australia/Sydney" {
		t.Errorf("ZoneOf(Sydney) = %q, want Australia/Sydney", got)
	}
}

func TestNewService_Singleton(t *testing.T) {
	a, err := NewService()
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewService()
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("expected NewService to return the same instance")
	}
}
