// Package assistant answers free-text questions about the station. Questions
// are classified by a keyword policy and dispatched to the history store or
// the feedback sink.
package assistant

import (
	"regexp"
	"strconv"
	"strings"

	"iss-sky-scanner/internal/apperr"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Intent string

const (
	IntentCurrentLocation    Intent = "current_location"
	IntentHistoricalLocation Intent = "historical_location_lookup"
	IntentStoreFeedback      Intent = "store_feedback"
	IntentGeneral            Intent = "iss_general"
	IntentUnsupported        Intent = "unsupported"
)

type Action string

const (
	ActionQueryDB       Action = "query_db"
	ActionStoreFeedback Action = "store_feedback"
	ActionNone          Action = "none"
)

// QueryIntent is the result of classifying a question. Only the fields of
// the matching intent are set.
type QueryIntent struct {
	Intent   Intent
	Action   Action
	Country  string
	Feedback string
	Rating   int
	Topic    string
}

// Classify applies p to text. Empty text fails with an InvalidQuery error.
func (p *Policy) Classify(text string) (QueryIntent, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return QueryIntent{}, apperr.InvalidQuery("Empty query provided")
	}

	if matchesAny(p.feedback, text) {
		return QueryIntent{
			Intent:   IntentStoreFeedback,
			Action:   ActionStoreFeedback,
			Feedback: text,
			Rating:   p.extractRating(text),
		}, nil
	}

	if matchesAny(p.current, text) {
		return QueryIntent{Intent: IntentCurrentLocation, Action: ActionQueryDB}, nil
	}

	if country, ok := p.extractCountry(text); ok {
		return QueryIntent{Intent: IntentHistoricalLocation, Action: ActionQueryDB, Country: country}, nil
	}

	if matchesAny(p.iss, text) {
		return QueryIntent{Intent: IntentGeneral, Action: ActionNone, Topic: p.topicOf(text)}, nil
	}

	return QueryIntent{Intent: IntentUnsupported, Action: ActionNone}, nil
}

func (p *Policy) extractRating(text string) int {
	if p.rating == nil {
		return 0
	}
	m := p.rating.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	rating, err := strconv.Atoi(m[1])
	if err != nil || rating < 1 || rating > 5 {
		return 0
	}
	return rating
}

func (p *Policy) extractCountry(text string) (string, bool) {
	for _, re := range p.historical {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		country := normalizeCountry(m[re.SubexpIndex("country")])
		if country != "" {
			return country, true
		}
	}
	return "", false
}

// trailingTime matches a time qualifier at the end of a captured country, as in
// "over France yesterday" or "over Japan 3 days ago"
var trailingTime = regexp.MustCompile(`(?i)\s+(?:` +
	`(?:in|during|back\s+in)\s+\d{4}|` +
	`(?:last|this|past|previous)\s+(?:night|week|weekend|month|year|time)|` +
	`(?:\d+|a|an|one|two|three|a\s+few|few|some)\s+(?:minutes?|hours?|days?|weeks?|months?|years?)\s+ago|` +
	`yesterday|today|tonight|recently|lately|ago|last|before|earlier|ever` +
	`)$`)

// normalizeCountry drops a leading article and trailing time qualifiers and
// title-cases names written in lower case. Mixed or upper case input such as
// "UK" is kept as written.
func normalizeCountry(raw string) string {
	country := strings.Trim(strings.Join(strings.Fields(raw), " "), " ,;:'\"")
	for {
		stripped := strings.Trim(trailingTime.ReplaceAllString(country, ""), " ,;:'\"")
		if stripped == country {
			break
		}
		country = stripped
	}
	if len(country) > 4 && strings.EqualFold(country[:4], "the ") {
		country = strings.TrimSpace(country[4:])
	}
	if country == strings.ToLower(country) {
		country = cases.Title(language.English).String(country)
	}
	return country
}

func (p *Policy) topicOf(text string) string {
	for _, t := range p.topics {
		if matchesAny(t.patterns, text) {
			return t.name
		}
	}
	return ""
}

func (p *Policy) topicAnswer(name string) string {
	for _, t := range p.topics {
		if t.name == name {
			return t.answer
		}
	}
	return p.replies.General
}
