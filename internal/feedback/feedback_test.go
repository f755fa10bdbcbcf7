package feedback

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/storage"
	"iss-sky-scanner/internal/types"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memorySink struct {
	entries []types.FeedbackEntry
	err     error
}

func (m *memorySink) Store(ctx context.Context, entry types.FeedbackEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, entry)
	return nil
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestSubmission_Validate(t *testing.T) {
	tests := []struct {
		name        string
		sub         Submission
		errContains string
	}{
		{name: "valid", sub: Submission{Rating: intPtr(5), Feedback: strPtr("Great tracker!")}},
		{name: "missing rating", sub: Submission{Feedback: strPtr("hi")}, errContains: "rating"},
		{name: "missing feedback", sub: Submission{Rating: intPtr(3)}, errContains: "feedback"},
		{name: "rating too low", sub: Submission{Rating: intPtr(0), Feedback: strPtr("x")}, errContains: "between 1 and 5"},
		{name: "rating too high", sub: Submission{Rating: intPtr(6), Feedback: strPtr("x")}, errContains: "between 1 and 5"},
		{name: "exactly 100 words", sub: Submission{Rating: intPtr(4), Feedback: strPtr(strings.Repeat("word ", 100))}},
		{name: "101 words", sub: Submission{Rating: intPtr(4), Feedback: strPtr(strings.Repeat("word ", 101))}, errContains: "100 words"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sub.Validate()
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, apperr.ErrInvalidQuery)
			assert.Contains(t, apperr.PublicMessage(err), tt.errContains)
		})
	}
}

func TestService_Submit(t *testing.T) {
	sink := &memorySink{}
	svc := NewService(sink, testLogger())

	entry, err := svc.Submit(context.Background(), Submission{Rating: intPtr(4), Feedback: strPtr("  Love the ESP display  ")})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "Love the ESP display", entry.Feedback)
	assert.Equal(t, DefaultUserAgent, entry.UserAgent)
	assert.Equal(t, SourceAPI, entry.Source)
	require.Len(t, sink.entries, 1)
	assert.Equal(t, entry.ID, sink.entries[0].ID)
}

func TestService_Record(t *testing.T) {
	sink := &memorySink{}
	svc := NewService(sink, testLogger())

	entry, err := svc.Record(context.Background(), "I love this app, 5 stars", 5, "Mozilla/5.0")
	require.NoError(t, err)
	assert.Equal(t, 5, entry.Rating)
	assert.Equal(t, SourceAssistant, entry.Source)
	assert.Equal(t, "Mozilla/5.0", entry.UserAgent)

	entry, err = svc.Record(context.Background(), "nice", 0, "")
	require.NoError(t, err)
	assert.Equal(t, 0, entry.Rating)

	_, err = svc.Record(context.Background(), "   ", 0, "")
	assert.ErrorIs(t, err, apperr.ErrInvalidQuery)
}

func TestService_SinkFailureIsPersistenceError(t *testing.T) {
	svc := NewService(&memorySink{err: errors.New("disk full")}, testLogger())

	_, err := svc.Submit(context.Background(), Submission{Rating: intPtr(1), Feedback: strPtr("meh")})
	assert.ErrorIs(t, err, apperr.ErrPersistence)
}

func TestSQLiteSink_Store(t *testing.T) {
	db, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "feedback.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc := NewService(NewSQLiteSink(db), testLogger())
	entry, err := svc.Submit(context.Background(), Submission{Rating: intPtr(5), Feedback: strPtr("stellar"), UserAgent: "curl"})
	require.NoError(t, err)

	var (
		rating   int
		text, ua string
	)
	err = db.QueryRow(`SELECT rating, feedback, user_agent FROM feedback WHERE id = ?`, entry.ID).Scan(&rating, &text, &ua)
	require.NoError(t, err)
	assert.Equal(t, 5, rating)
	assert.Equal(t, "stellar", text)
	assert.Equal(t, "curl", ua)
}

type fakePutItem struct {
	input *dynamodb.PutItemInput
}

func (f *fakePutItem) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.input = params
	return &dynamodb.PutItemOutput{}, nil
}

func TestDynamoDBSink_Store(t *testing.T) {
	fake := &fakePutItem{}
	svc := NewService(NewDynamoDBSink(fake, "iss_sky_scanner_feedback"), testLogger())

	entry, err := svc.Submit(context.Background(), Submission{Rating: intPtr(3), Feedback: strPtr("ok")})
	require.NoError(t, err)

	require.NotNil(t, fake.input)
	assert.Equal(t, "iss_sky_scanner_feedback", *fake.input.TableName)
	id, ok := fake.input.Item["id"].(*dynamodbtypes.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, entry.ID, id.Value)
	rating, ok := fake.input.Item["rating"].(*dynamodbtypes.AttributeValueMemberN)
	require.True(t, ok)
	assert.Equal(t, "3", rating.Value)
}
