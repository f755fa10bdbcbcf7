package location

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/history"
	"iss-sky-scanner/internal/providers/opennotify"
	"iss-sky-scanner/internal/types"
)

// Mock providers for testing

type mockPositionProvider struct {
	response *opennotify.NowAPIResponse
	err      error
}

func (m *mockPositionProvider) Now(ctx context.Context) (*opennotify.NowAPIResponse, error) {
	return m.response, m.err
}

type mockGeocoder struct {
	details *types.LocationDetails
	err     error
	calls   int
}

func (m *mockGeocoder) Describe(ctx context.Context, latitude, longitude float64) (*types.LocationDetails, error) {
	m.calls++
	return m.details, m.err
}

type mockZones struct{ zone string }

func (m mockZones) ZoneOf(coords types.Coords) string { return m.zone }

type mockStore struct {
	records   []types.HistoryRecord
	appendErr error
	latestErr error
}

func (m *mockStore) Append(ctx context.Context, loc types.EnrichedLocation) (*types.HistoryRecord, error) {
	if m.appendErr != nil {
		return nil, m.appendErr
	}
	rec := types.HistoryRecord{ID: "01TEST", EnrichedLocation: loc, StoredAt: time.Now().UTC()}
	m.records = append(m.records, rec)
	return &rec, nil
}

func (m *mockStore) Latest(ctx context.Context) (*types.HistoryRecord, error) {
	if m.latestErr != nil {
		return nil, m.latestErr
	}
	if len(m.records) == 0 {
		return nil, history.ErrNotFound
	}
	rec := m.records[len(m.records)-1]
	return &rec, nil
}

func (m *mockStore) LatestOver(ctx context.Context, country string) (*types.HistoryRecord, error) {
	for i := len(m.records) - 1; i >= 0; i-- {
		if strings.Contains(strings.ToLower(m.records[i].Details.Country), strings.ToLower(country)) {
			rec := m.records[i]
			return &rec, nil
		}
	}
	return nil, history.ErrNotFound
}

type mockFacts struct {
	fact *types.Fact
	err  error
}

func (m *mockFacts) Generate(ctx context.Context, location string) (*types.Fact, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.fact, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func nowResponse(lat, lon string) *opennotify.NowAPIResponse {
	resp := &opennotify.NowAPIResponse{Message: "success", Timestamp: 1700000000}
	resp.ISSPosition.Latitude = lat
	resp.ISSPosition.Longitude = lon
	return resp
}

func TestLocationService_FetchCurrentPosition(t *testing.T) {
	tests := []struct {
		name     string
		response *opennotify.NowAPIResponse
		err      error
		wantErr  bool
		validate func(*testing.T, *types.LocationReading)
	}{
		{
			name:     "parses string coordinates",
			response: nowResponse("12.3456", "-45.6789"),
			validate: func(t *testing.T, r *types.LocationReading) {
				if r.Latitude != 12.3456 || r.Longitude != -45.6789 {
					t.Errorf("Coords = %+v", r.Coords)
				}
				if !r.Timestamp.Equal(time.Unix(1700000000, 0)) {
					t.Errorf("Timestamp = %v", r.Timestamp)
				}
				if r.Timestamp.Location() != time.UTC {
					t.Errorf("Timestamp not in UTC: %v", r.Timestamp.Location())
				}
			},
		},
		{
			name:    "transport error",
			err:     errors.New("connection refused"),
			wantErr: true,
		},
		{
			name:     "non success message",
			response: &opennotify.NowAPIResponse{Message: "failure"},
			wantErr:  true,
		},
		{
			name:     "unparsable latitude",
			response: nowResponse("north", "10"),
			wantErr:  true,
		},
		{
			name:     "out of range longitude",
			response: nowResponse("10", "200.5"),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLocationServiceWithProviders(
				&mockPositionProvider{response: tt.response, err: tt.err},
				&mockGeocoder{}, nil, &mockStore{}, &mockFacts{}, testLogger(),
			)

			got, err := svc.FetchCurrentPosition(context.Background())

			if tt.wantErr {
				if !errors.Is(err, apperr.ErrUpstreamUnavailable) {
					t.Fatalf("error = %v, want UpstreamUnavailable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.validate(t, got)
		})
	}
}

func TestLocationService_EnrichCurrent(t *testing.T) {
	details := &types.LocationDetails{LocationName: "Over the Pacific Ocean", OverWater: true}

	t.Run("combines position, details and zone", func(t *testing.T) {
		svc := NewLocationServiceWithProviders(
			&mockPositionProvider{response: nowResponse("-10.5", "-150.25")},
			&mockGeocoder{details: details},
			mockZones{zone: "Etc/GMT+10"},
			&mockStore{}, &mockFacts{}, testLogger(),
		)

		got, err := svc.EnrichCurrent(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Details.LocationName != "Over the Pacific Ocean" {
			t.Errorf("LocationName = %q", got.Details.LocationName)
		}
		if got.Latitude != -10.5 || got.Longitude != -150.25 {
			t.Errorf("Coords = %+v", got.Coords)
		}
		if got.Timezone != "Etc/GMT+10" {
			t.Errorf("Timezone = %q", got.Timezone)
		}
	})

	t.Run("geocoder failure returns no partial result", func(t *testing.T) {
		svc := NewLocationServiceWithProviders(
			&mockPositionProvider{response: nowResponse("1", "2")},
			&mockGeocoder{err: apperr.Upstream("Failed to reverse geocode location", errors.New("503"))},
			nil, &mockStore{}, &mockFacts{}, testLogger(),
		)

		got, err := svc.EnrichCurrent(context.Background())
		if got != nil {
			t.Errorf("expected nil result, got %+v", got)
		}
		if !errors.Is(err, apperr.ErrUpstreamUnavailable) {
			t.Errorf("error = %v, want UpstreamUnavailable", err)
		}
	})

	t.Run("position failure skips the geocoder", func(t *testing.T) {
		geocoder := &mockGeocoder{details: details}
		svc := NewLocationServiceWithProviders(
			&mockPositionProvider{err: errors.New("timeout")},
			geocoder, nil, &mockStore{}, &mockFacts{}, testLogger(),
		)

		if _, err := svc.EnrichCurrent(context.Background()); err == nil {
			t.Fatal("expected error, got nil")
		}
		if geocoder.calls != 0 {
			t.Errorf("geocoder called %d times, want 0", geocoder.calls)
		}
	})
}

func TestLocationService_StoreCurrent(t *testing.T) {
	details := &types.LocationDetails{LocationName: "Paris, Île-de-France, France", Country: "France", CountryCode: "FR"}

	t.Run("appends the enriched location", func(t *testing.T) {
		store := &mockStore{}
		svc := NewLocationServiceWithProviders(
			&mockPositionProvider{response: nowResponse("48.85", "2.35")},
			&mockGeocoder{details: details}, nil, store, &mockFacts{}, testLogger(),
		)

		rec, err := svc.StoreCurrent(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.ID == "" {
			t.Error("record has no id")
		}
		if len(store.records) != 1 {
			t.Fatalf("store has %d records, want 1", len(store.records))
		}
		if store.records[0].Details.CountryCode != "FR" {
			t.Errorf("stored CountryCode = %q", store.records[0].Details.CountryCode)
		}
	})

	t.Run("persistence failure propagates", func(t *testing.T) {
		store := &mockStore{appendErr: apperr.Persistence("Failed to store location", errors.New("disk full"))}
		svc := NewLocationServiceWithProviders(
			&mockPositionProvider{response: nowResponse("48.85", "2.35")},
			&mockGeocoder{details: details}, nil, store, &mockFacts{}, testLogger(),
		)

		if _, err := svc.StoreCurrent(context.Background()); !errors.Is(err, apperr.ErrPersistence) {
			t.Errorf("error = %v, want PersistenceError", err)
		}
	})
}

func TestLocationService_LatestWithFact(t *testing.T) {
	stored := types.HistoryRecord{
		ID: "01A",
		EnrichedLocation: types.EnrichedLocation{
			LocationReading: types.NewLocationReading(time.Unix(1700000000, 0), 35.6, 139.6),
			Details:         types.LocationDetails{LocationName: "Tokyo, Japan", Country: "Japan"},
		},
	}

	tests := []struct {
		name       string
		store      *mockStore
		facts      *mockFacts
		wantErr    error
		wantRecord bool
		wantFact   string
	}{
		{
			name:       "record and fact",
			store:      &mockStore{records: []types.HistoryRecord{stored}},
			facts:      &mockFacts{fact: &types.Fact{Location: "Tokyo, Japan", Fact: "Tokyo hosts the world's busiest pedestrian crossing."}},
			wantRecord: true,
			wantFact:   "Tokyo hosts the world's busiest pedestrian crossing.",
		},
		{
			name:    "empty history is no data",
			store:   &mockStore{},
			facts:   &mockFacts{},
			wantErr: apperr.ErrNoDataAvailable,
		},
		{
			name:    "store failure propagates",
			store:   &mockStore{latestErr: apperr.Persistence("read failed", errors.New("locked"))},
			facts:   &mockFacts{},
			wantErr: apperr.ErrPersistence,
		},
		{
			name:       "fact failure is surfaced with the record",
			store:      &mockStore{records: []types.HistoryRecord{stored}},
			facts:      &mockFacts{err: apperr.Upstream("Failed to generate fact", errors.New("quota"))},
			wantErr:    apperr.ErrUpstreamUnavailable,
			wantRecord: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewLocationServiceWithProviders(&mockPositionProvider{}, &mockGeocoder{}, nil, tt.store, tt.facts, testLogger())

			got, err := svc.LatestWithFact(context.Background())

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !tt.wantRecord {
				if got != nil {
					t.Errorf("expected nil result, got %+v", got)
				}
				return
			}
			if got == nil || got.Record.ID != "01A" {
				t.Fatalf("result = %+v, want record 01A", got)
			}
			if tt.wantFact == "" {
				if got.Fact != nil {
					t.Errorf("expected no fact, got %+v", got.Fact)
				}
				return
			}
			if got.Fact == nil || got.Fact.Fact != tt.wantFact {
				t.Errorf("Fact = %+v, want %q", got.Fact, tt.wantFact)
			}
		})
	}
}

func TestLocationService_LatestOver(t *testing.T) {
	store := &mockStore{records: []types.HistoryRecord{{
		ID: "01B",
		EnrichedLocation: types.EnrichedLocation{
			Details: types.LocationDetails{LocationName: "Lima, Peru", Country: "Peru", CountryCode: "PE"},
		},
	}}}
	svc := NewLocationServiceWithProviders(&mockPositionProvider{}, &mockGeocoder{}, nil, store, &mockFacts{}, testLogger())

	if rec, err := svc.LatestOver(context.Background(), "Peru"); err != nil || rec.ID != "01B" {
		t.Errorf("LatestOver(Peru) = %+v, %v", rec, err)
	}
	if _, err := svc.LatestOver(context.Background(), "Chile"); !errors.Is(err, apperr.ErrNoDataAvailable) {
		t.Errorf("LatestOver(Chile) error = %v, want NoDataAvailable", err)
	}
}
