package types

import "time"

type FeedbackEntry struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating,omitempty"`
	Feedback  string    `json:"feedback"`
	UserAgent string    `json:"user_agent"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}
