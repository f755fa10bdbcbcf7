package timezone

import (
	"errors"
	"fmt"
	"sync"

	"iss-sky-scanner/internal/types"

	"github.com/ringsaturn/tzf"
)

// ErrUnknownZone is returned when no zone polygon contains the point
var ErrUnknownZone = errors.New("could not determine timezone")

// Service provides timezone lookup for the sub-satellite point
type Service interface {
	GetTimezone(latitude, longitude float64) (string, error)
	// ZoneOf returns the IANA zone of the point or "" when none is known
	ZoneOf(coords types.Coords) string
}

// service implements timezone lookup using tzf
type service struct {
	finder tzf.F
}

var (
	instance *service
	initErr  error
	once     sync.Once
)

// NewService creates or returns the singleton timezone service.
// tzf loads its polygons into memory, so the finder is built once per process.
func NewService() (Service, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &service{finder: finder}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// GetTimezone returns the IANA timezone name for the given coordinates,
// e.g. "America/Denver". Open ocean resolves to an Etc/GMT zone.
func (s *service) GetTimezone(latitude, longitude float64) (string, error) {
	zone := s.finder.GetTimezoneName(longitude, latitude)
	if zone == "" {
		return "", fmt.Errorf("%w: lat=%f, lon=%f", ErrUnknownZone, latitude, longitude)
	}
	return zone, nil
}

func (s *service) ZoneOf(coords types.Coords) string {
	zone, err := s.GetTimezone(coords.Latitude, coords.Longitude)
	if err != nil {
		return ""
	}
	return zone
}
