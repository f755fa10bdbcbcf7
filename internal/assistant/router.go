package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/types"

	"github.com/dustin/go-humanize"
)

const StatusSuccess = "success"

// timeLayout renders instants as "03:04 PM UTC on January 02, 2006"
const timeLayout = "03:04 PM UTC on January 02, 2006"

// Locator reads stored positions
type Locator interface {
	Latest(ctx context.Context) (*types.HistoryRecord, error)
	LatestOver(ctx context.Context, country string) (*types.HistoryRecord, error)
}

// Recorder stores feedback captured from a question
type Recorder interface {
	Record(ctx context.Context, text string, rating int, userAgent string) (*types.FeedbackEntry, error)
}

// Query is a question put to the assistant
type Query struct {
	Text      string `json:"query"`
	UserAgent string `json:"userAgent,omitempty"`
}

// Reply is the assistant's answer. Status is "success" even when a backend
// failed; the failure is reported in Response.
type Reply struct {
	Response string         `json:"response"`
	Intent   Intent         `json:"intent"`
	Action   Action         `json:"action"`
	Data     map[string]any `json:"data"`
	Status   string         `json:"status"`
}

type Router struct {
	policy   *Policy
	locator  Locator
	recorder Recorder
	now      func() time.Time
	logger   *slog.Logger
}

// NewRouter creates a router. A nil policy uses the built-in one.
func NewRouter(policy *Policy, locator Locator, recorder Recorder, logger *slog.Logger) *Router {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Router{
		policy:   policy,
		locator:  locator,
		recorder: recorder,
		now:      time.Now,
		logger:   logger.With("component", "assistant"),
	}
}

// Classify classifies text with the router's policy
func (r *Router) Classify(text string) (QueryIntent, error) {
	return r.policy.Classify(text)
}

// Answer classifies q and dispatches it. The only error returned is an
// InvalidQuery for empty text.
func (r *Router) Answer(ctx context.Context, q Query) (*Reply, error) {
	intent, err := r.policy.Classify(q.Text)
	if err != nil {
		return nil, err
	}

	r.logger.Info("classified query", "intent", intent.Intent, "action", intent.Action)

	reply := &Reply{
		Intent: intent.Intent,
		Action: intent.Action,
		Data:   map[string]any{},
		Status: StatusSuccess,
	}

	switch intent.Intent {
	case IntentCurrentLocation:
		r.answerCurrent(ctx, reply)
	case IntentHistoricalLocation:
		r.answerHistorical(ctx, intent.Country, reply)
	case IntentStoreFeedback:
		r.answerFeedback(ctx, intent, q.UserAgent, reply)
	case IntentGeneral:
		if intent.Topic != "" {
			reply.Data["topic"] = intent.Topic
		}
		reply.Response = r.policy.topicAnswer(intent.Topic)
	default:
		reply.Response = r.policy.replies.Unsupported
	}

	return reply, nil
}

func (r *Router) answerCurrent(ctx context.Context, reply *Reply) {
	record, err := r.locator.Latest(ctx)
	if err != nil {
		reply.Response = r.retrievalFailure(err, r.policy.replies.NoData)
		return
	}

	reply.Data["location"] = record
	reply.Response = describeRecord(record)
}

func (r *Router) answerHistorical(ctx context.Context, country string, reply *Reply) {
	reply.Data["country"] = country

	record, err := r.locator.LatestOver(ctx, country)
	if err != nil {
		reply.Response = r.retrievalFailure(err, fmt.Sprintf(r.policy.replies.NoMatch, country))
		return
	}

	reply.Data["location"] = record
	reply.Response = fmt.Sprintf("The ISS was last over %s %s. %s",
		country,
		humanize.RelTime(record.Timestamp, r.now(), "ago", "from now"),
		describeRecord(record),
	)
}

func (r *Router) answerFeedback(ctx context.Context, intent QueryIntent, userAgent string, reply *Reply) {
	entry, err := r.recorder.Record(ctx, intent.Feedback, intent.Rating, userAgent)
	if err != nil {
		r.logger.Error("failed to store feedback", "error", err)
		if errors.Is(err, apperr.ErrInvalidQuery) {
			reply.Response = apperr.PublicMessage(err)
			return
		}
		reply.Response = r.policy.replies.FeedbackError
		return
	}

	reply.Data["feedback_id"] = entry.ID
	if entry.Rating > 0 {
		reply.Data["rating"] = entry.Rating
	}
	reply.Response = r.policy.replies.Feedback
}

func (r *Router) retrievalFailure(err error, noData string) string {
	if errors.Is(err, apperr.ErrNoDataAvailable) {
		return noData
	}
	r.logger.Error("failed to query history", "error", err)
	return r.policy.replies.RetrievalError
}

// describeRecord renders a record as "The ISS was at 12.3456°N, 45.6789°W over
// <place> at 03:04 PM UTC on January 02, 2006." The stored location name
// always appears verbatim.
func describeRecord(record *types.HistoryRecord) string {
	msg := "The ISS was at " + record.Coords.Label()
	if name := record.Details.LocationName; name != "" {
		msg += " " + overPhrase(name)
	}
	return msg + " at " + record.Timestamp.UTC().Format(timeLayout) + "."
}

// overPhrase avoids "over Over the Pacific Ocean" for open water names by
// quoting them as a label
func overPhrase(name string) string {
	if strings.HasPrefix(name, "Over ") {
		return "(" + name + ")"
	}
	return "over " + name
}
