// Package history stores enriched ISS positions. Records are append-only and
// ordered by the reading timestamp; ties go to the record inserted last.
package history

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"iss-sky-scanner/internal/types"

	"github.com/oklog/ulid/v2"
)

// ErrNotFound is returned when no record matches
var ErrNotFound = errors.New("no matching history record")

// Store is the location history
type Store interface {
	Append(ctx context.Context, loc types.EnrichedLocation) (*types.HistoryRecord, error)
	Latest(ctx context.Context) (*types.HistoryRecord, error)
	LatestOver(ctx context.Context, country string) (*types.HistoryRecord, error)
	Query(ctx context.Context, filter Filter) ([]types.HistoryRecord, error)
	Close() error
}

// idSource hands out monotonic ULIDs, safe for concurrent use
type idSource struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newIDSource() *idSource {
	return &idSource{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

func (s *idSource) next(t time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

func newRecord(ids *idSource, loc types.EnrichedLocation, now time.Time) types.HistoryRecord {
	now = now.UTC()
	loc.Timestamp = loc.Timestamp.UTC()
	return types.HistoryRecord{
		ID:               ids.next(now),
		EnrichedLocation: loc,
		StoredAt:         now,
	}
}
