package types

import "fmt"

type Coords struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewCoords(latitude, longitude float64) Coords {
	return Coords{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

// Valid reports whether the coordinates are within the WGS84 range
func (c Coords) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// Label formats the coordinates as "12.3456°N, 45.6789°W"
func (c Coords) Label() string {
	ns := "N"
	if c.Latitude < 0 {
		ns = "S"
	}
	ew := "E"
	if c.Longitude < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%.4f°%s, %.4f°%s", abs(c.Latitude), ns, abs(c.Longitude), ew)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
