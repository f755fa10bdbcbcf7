package assistant

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLocator struct {
	latest      *types.HistoryRecord
	latestErr   error
	over        *types.HistoryRecord
	overErr     error
	overCountry string
	calls       int
}

func (m *mockLocator) Latest(_ context.Context) (*types.HistoryRecord, error) {
	m.calls++
	return m.latest, m.latestErr
}

func (m *mockLocator) LatestOver(_ context.Context, country string) (*types.HistoryRecord, error) {
	m.calls++
	m.overCountry = country
	return m.over, m.overErr
}

type mockRecorder struct {
	err       error
	text      string
	rating    int
	userAgent string
	calls     int
}

func (m *mockRecorder) Record(_ context.Context, text string, rating int, userAgent string) (*types.FeedbackEntry, error) {
	m.calls++
	m.text, m.rating, m.userAgent = text, rating, userAgent
	if m.err != nil {
		return nil, m.err
	}
	return &types.FeedbackEntry{ID: "fb-1", Rating: rating, Feedback: text}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func record(name string, ts time.Time, lat, lon float64) *types.HistoryRecord {
	return &types.HistoryRecord{
		ID: "01J0000000000000000000000",
		EnrichedLocation: types.EnrichedLocation{
			LocationReading: types.NewLocationReading(ts, lat, lon),
			Details:         types.LocationDetails{LocationName: name},
		},
	}
}

var stamp = time.Date(2006, time.January, 2, 15, 4, 5, 0, time.UTC)

func newTestRouter(loc *mockLocator, rec *mockRecorder) *Router {
	r := NewRouter(nil, loc, rec, testLogger())
	r.now = func() time.Time { return stamp.Add(2 * time.Hour) }
	return r
}

func TestAnswerCurrentLocation(t *testing.T) {
	loc := &mockLocator{latest: record("Houston, Texas, United States", stamp, 12.3456, -45.6789)}
	r := newTestRouter(loc, &mockRecorder{})

	reply, err := r.Answer(context.Background(), Query{Text: "Where is the ISS right now?"})
	require.NoError(t, err)

	assert.Equal(t, IntentCurrentLocation, reply.Intent)
	assert.Equal(t, ActionQueryDB, reply.Action)
	assert.Equal(t, StatusSuccess, reply.Status)
	assert.Contains(t, reply.Response, "Houston, Texas, United States")
	assert.Equal(t,
		"The ISS was at 12.3456°N, 45.6789°W over Houston, Texas, United States at 03:04 PM UTC on January 02, 2006.",
		reply.Response,
	)
	assert.Same(t, loc.latest, reply.Data["location"])
}

func TestAnswerCurrentLocationOverWater(t *testing.T) {
	loc := &mockLocator{latest: record("Over the Pacific Ocean", stamp, -10, -140)}
	r := newTestRouter(loc, &mockRecorder{})

	reply, err := r.Answer(context.Background(), Query{Text: "where is the station?"})
	require.NoError(t, err)
	assert.Equal(t,
		"The ISS was at 10.0000°S, 140.0000°W (Over the Pacific Ocean) at 03:04 PM UTC on January 02, 2006.",
		reply.Response,
	)
	assert.Contains(t, reply.Response, loc.latest.Details.LocationName)
}

func TestAnswerHistorical(t *testing.T) {
	loc := &mockLocator{over: record("Denver, Colorado, United States", stamp, 39.7392, -104.9903)}
	r := newTestRouter(loc, &mockRecorder{})

	reply, err := r.Answer(context.Background(), Query{Text: "When was the ISS last over the United States?"})
	require.NoError(t, err)

	assert.Equal(t, "United States", loc.overCountry)
	assert.Equal(t, IntentHistoricalLocation, reply.Intent)
	assert.Equal(t, "United States", reply.Data["country"])
	assert.Equal(t,
		"The ISS was last over United States 2 hours ago. The ISS was at 39.7392°N, 104.9903°W over Denver, Colorado, United States at 03:04 PM UTC on January 02, 2006.",
		reply.Response,
	)
}

func TestAnswerBackendFailures(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		locator *mockLocator
		want    string
	}{
		{
			name:    "empty history",
			text:    "Where is the ISS?",
			locator: &mockLocator{latestErr: apperr.NoData("No location data found")},
			want:    "I don't have any ISS location data yet. Please check back in a few minutes!",
		},
		{
			name:    "database error",
			text:    "Where is the ISS?",
			locator: &mockLocator{latestErr: apperr.Persistence("query failed", errors.New("disk I/O error"))},
			want:    "I encountered an issue retrieving that information. Please try again!",
		},
		{
			name:    "never over country",
			text:    "When did the ISS last pass over Atlantis?",
			locator: &mockLocator{overErr: apperr.NoData("No location data found over Atlantis")},
			want:    "I couldn't find a time the ISS passed over Atlantis in my records yet.",
		},
		{
			name:    "unclassified error",
			text:    "When did the ISS last pass over France?",
			locator: &mockLocator{overErr: errors.New("boom")},
			want:    "I encountered an issue retrieving that information. Please try again!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(tt.locator, &mockRecorder{})

			reply, err := r.Answer(context.Background(), Query{Text: tt.text})
			require.NoError(t, err)
			assert.Equal(t, StatusSuccess, reply.Status)
			assert.Equal(t, tt.want, reply.Response)
			assert.NotContains(t, reply.Response, "disk")
		})
	}
}

func TestAnswerFeedback(t *testing.T) {
	t.Run("stored", func(t *testing.T) {
		rec := &mockRecorder{}
		r := newTestRouter(&mockLocator{}, rec)

		reply, err := r.Answer(context.Background(), Query{Text: "I love it! 5 stars", UserAgent: "test-agent"})
		require.NoError(t, err)

		assert.Equal(t, IntentStoreFeedback, reply.Intent)
		assert.Equal(t, ActionStoreFeedback, reply.Action)
		assert.Equal(t, "I love it! 5 stars", rec.text)
		assert.Equal(t, 5, rec.rating)
		assert.Equal(t, "test-agent", rec.userAgent)
		assert.Equal(t, "fb-1", reply.Data["feedback_id"])
		assert.Equal(t, 5, reply.Data["rating"])
		assert.Contains(t, reply.Response, "Thanks for your feedback")
	})

	t.Run("sink failure", func(t *testing.T) {
		rec := &mockRecorder{err: apperr.Persistence("Failed to store feedback", errors.New("locked"))}
		r := newTestRouter(&mockLocator{}, rec)

		reply, err := r.Answer(context.Background(), Query{Text: "some feedback for you"})
		require.NoError(t, err)
		assert.Equal(t, StatusSuccess, reply.Status)
		assert.Equal(t, "I encountered an issue storing your feedback. Please try again!", reply.Response)
	})

	t.Run("rejected feedback", func(t *testing.T) {
		rec := &mockRecorder{err: apperr.InvalidQuery("Feedback must not exceed 100 words")}
		r := newTestRouter(&mockLocator{}, rec)

		reply, err := r.Answer(context.Background(), Query{Text: "feedback: too long"})
		require.NoError(t, err)
		assert.Equal(t, "Feedback must not exceed 100 words", reply.Response)
	})
}

func TestAnswerWithoutBackend(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantIntent Intent
		want       string
	}{
		{
			name:       "unsupported",
			text:       "What is the weather today?",
			wantIntent: IntentUnsupported,
			want:       "I can only answer questions about the International Space Station.",
		},
		{
			name:       "general topic",
			text:       "How many astronauts are on the ISS?",
			wantIntent: IntentGeneral,
			want:       "The ISS usually hosts a crew of around seven astronauts from several space agencies.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := &mockLocator{}
			rec := &mockRecorder{}
			r := newTestRouter(loc, rec)

			reply, err := r.Answer(context.Background(), Query{Text: tt.text})
			require.NoError(t, err)
			assert.Equal(t, tt.wantIntent, reply.Intent)
			assert.Equal(t, ActionNone, reply.Action)
			assert.Equal(t, StatusSuccess, reply.Status)
			assert.Equal(t, tt.want, reply.Response)
			assert.Zero(t, loc.calls)
			assert.Zero(t, rec.calls)
		})
	}
}

func TestAnswerEmptyQuery(t *testing.T) {
	r := newTestRouter(&mockLocator{}, &mockRecorder{})

	_, err := r.Answer(context.Background(), Query{Text: "  "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidQuery))
}
