// Package feedback validates and stores user feedback about the service.
package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/types"

	"github.com/google/uuid"
)

const (
	MaxWords         = 100
	DefaultUserAgent = "Not provided"

	SourceAPI       = "feedback_api"
	SourceAssistant = "assistant"
)

// Submission is the body of a feedback request
type Submission struct {
	Rating    *int    `json:"rating"`
	Feedback  *string `json:"feedback"`
	UserAgent string  `json:"userAgent"`
}

// Validate checks a submission from the feedback endpoint, where a rating is
// required.
func (s Submission) Validate() error {
	if s.Rating == nil {
		return apperr.InvalidQuery("Missing required field: rating")
	}
	if s.Feedback == nil {
		return apperr.InvalidQuery("Missing required field: feedback")
	}
	if *s.Rating < 1 || *s.Rating > 5 {
		return apperr.InvalidQuery("Rating must be an integer between 1 and 5")
	}
	return validateText(*s.Feedback)
}

func validateText(text string) error {
	if len(strings.Fields(text)) > MaxWords {
		return apperr.InvalidQuery(fmt.Sprintf("Feedback must not exceed %d words", MaxWords))
	}
	return nil
}

// Sink persists feedback entries
type Sink interface {
	Store(ctx context.Context, entry types.FeedbackEntry) error
}

// Service validates feedback and hands it to a sink
type Service struct {
	sink   Sink
	now    func() time.Time
	logger *slog.Logger
}

func NewService(sink Sink, logger *slog.Logger) *Service {
	return &Service{
		sink:   sink,
		now:    time.Now,
		logger: logger.With("component", "feedback-service"),
	}
}

// Submit validates and stores a submission from the feedback endpoint
func (s *Service) Submit(ctx context.Context, sub Submission) (*types.FeedbackEntry, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	return s.store(ctx, *sub.Rating, *sub.Feedback, sub.UserAgent, SourceAPI)
}

// Record stores free text captured by the assistant. rating is 0 when the user
// gave none.
func (s *Service) Record(ctx context.Context, text string, rating int, userAgent string) (*types.FeedbackEntry, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.InvalidQuery("Feedback must not be empty")
	}
	if rating < 0 || rating > 5 {
		return nil, apperr.InvalidQuery("Rating must be an integer between 1 and 5")
	}
	if err := validateText(text); err != nil {
		return nil, err
	}
	return s.store(ctx, rating, text, userAgent, SourceAssistant)
}

func (s *Service) store(ctx context.Context, rating int, text, userAgent, source string) (*types.FeedbackEntry, error) {
	if strings.TrimSpace(userAgent) == "" {
		userAgent = DefaultUserAgent
	}

	entry := types.FeedbackEntry{
		ID:        uuid.NewString(),
		Rating:    rating,
		Feedback:  strings.TrimSpace(text),
		UserAgent: userAgent,
		Source:    source,
		Timestamp: s.now().UTC(),
	}

	if err := s.sink.Store(ctx, entry); err != nil {
		s.logger.Error("failed to store feedback", "id", entry.ID, "error", err)
		return nil, apperr.Persistence("Failed to store feedback", err)
	}

	s.logger.Info("stored feedback", "id", entry.ID, "source", source, "rating", rating)
	return &entry, nil
}
