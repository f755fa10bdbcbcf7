package history

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/types"

	"github.com/paulmach/orb"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000

	DefaultRangeMinutes = 60
	MaxRangeMinutes     = 1440
)

// Order fields accepted by Query
const (
	OrderTimestamp   = "timestamp"
	OrderLatitude    = "latitude"
	OrderLongitude   = "longitude"
	OrderCountryCode = "country_code"
)

// Sort directions
const (
	Ascending  = "ASCENDING"
	Descending = "DESCENDING"
)

// Filter selects history records. Zero values mean "no constraint" and a nil
// Bounds covers the whole globe.
type Filter struct {
	Start       time.Time
	End         time.Time
	CountryCode string
	Bounds      *orb.Bound
	OrderBy     string
	Direction   string
	Limit       int
}

// Range is an inclusive [Min, Max] interval
type Range struct {
	Min float64
	Max float64
}

// ParseRange parses "min,max"
func ParseRange(s string) (Range, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Range{}, apperr.InvalidQuery(fmt.Sprintf("Invalid range %q: expected min,max", s))
	}

	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Range{}, apperr.InvalidQueryCause(fmt.Sprintf("Invalid range %q: bounds must be numbers", s), err)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Range{}, apperr.InvalidQueryCause(fmt.Sprintf("Invalid range %q: bounds must be numbers", s), err)
	}
	if lo > hi {
		return Range{}, apperr.InvalidQuery(fmt.Sprintf("Invalid range %q: min is greater than max", s))
	}
	return Range{Min: lo, Max: hi}, nil
}

// NewBounds builds a bounding box from optional latitude and longitude ranges.
// It returns nil when neither is set.
func NewBounds(lat, lon *Range) *orb.Bound {
	if lat == nil && lon == nil {
		return nil
	}
	bound := orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}
	if lat != nil {
		bound.Min[1], bound.Max[1] = lat.Min, lat.Max
	}
	if lon != nil {
		bound.Min[0], bound.Max[0] = lon.Min, lon.Max
	}
	return &bound
}

// Normalize applies defaults and validates the filter
func (f Filter) Normalize() (Filter, error) {
	switch {
	case f.Limit <= 0:
		f.Limit = DefaultLimit
	case f.Limit > MaxLimit:
		f.Limit = MaxLimit
	}

	if f.OrderBy == "" {
		f.OrderBy = OrderTimestamp
	}
	switch f.OrderBy {
	case OrderTimestamp, OrderLatitude, OrderLongitude, OrderCountryCode:
	default:
		return f, apperr.InvalidQuery(fmt.Sprintf("Invalid order_by field %q", f.OrderBy))
	}

	f.Direction = strings.ToUpper(f.Direction)
	switch f.Direction {
	case "":
		f.Direction = Descending
	case Ascending, Descending:
	default:
		return f, apperr.InvalidQuery(fmt.Sprintf("Invalid order_direction %q", f.Direction))
	}

	f.CountryCode = strings.ToUpper(strings.TrimSpace(f.CountryCode))

	if !f.Start.IsZero() && !f.End.IsZero() && f.Start.After(f.End) {
		return f, apperr.InvalidQuery("start_time must not be after end_time")
	}

	return f, nil
}

// Matches reports whether rec satisfies the filter's constraints
func (f Filter) Matches(rec types.HistoryRecord) bool {
	if !f.Start.IsZero() && rec.Timestamp.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && rec.Timestamp.After(f.End) {
		return false
	}
	if f.CountryCode != "" && !strings.EqualFold(rec.Details.CountryCode, f.CountryCode) {
		return false
	}
	if f.Bounds != nil && !f.Bounds.Contains(orb.Point{rec.Longitude, rec.Latitude}) {
		return false
	}
	return true
}

// Less orders two records by the filter's field and direction. Equal keys
// fall back to the timestamp, most recent first.
func (f Filter) Less(a, b types.HistoryRecord) bool {
	var cmp int
	switch f.OrderBy {
	case OrderLatitude:
		cmp = compareFloat(a.Latitude, b.Latitude)
	case OrderLongitude:
		cmp = compareFloat(a.Longitude, b.Longitude)
	case OrderCountryCode:
		cmp = strings.Compare(a.Details.CountryCode, b.Details.CountryCode)
	default:
		cmp = a.Timestamp.Compare(b.Timestamp)
	}
	if cmp == 0 {
		return a.Timestamp.After(b.Timestamp)
	}
	if f.Direction == Ascending {
		return cmp < 0
	}
	return cmp > 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// ClampMinutes maps a requested window onto [1, 1440]; 0 means the default 60
func ClampMinutes(minutes int) int {
	switch {
	case minutes == 0:
		return DefaultRangeMinutes
	case minutes < 1:
		return 1
	case minutes > MaxRangeMinutes:
		return MaxRangeMinutes
	}
	return minutes
}

// TimeRange returns a filter for the records of the last minutes minutes,
// newest first. minutes is clamped with ClampMinutes.
func TimeRange(minutes int, now time.Time) Filter {
	minutes = ClampMinutes(minutes)
	return Filter{
		Start:     now.Add(-time.Duration(minutes) * time.Minute),
		End:       now,
		OrderBy:   OrderTimestamp,
		Direction: Descending,
		Limit:     MaxLimit,
	}
}
