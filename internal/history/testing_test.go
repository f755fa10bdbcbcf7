package history

import (
	"io"
	"log/slog"
	"time"

	"iss-sky-scanner/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var baseTime = time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

func enriched(offset time.Duration, lat, lon float64, name, country, code string) types.EnrichedLocation {
	return types.EnrichedLocation{
		LocationReading: types.NewLocationReading(baseTime.Add(offset), lat, lon),
		Details: types.LocationDetails{
			LocationName: name,
			Country:      country,
			CountryCode:  code,
			OverWater:    country == "",
		},
	}
}
