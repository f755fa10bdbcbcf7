package assistant

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed default_policy.yaml
var defaultPolicyYAML []byte

// PolicyFile is the YAML form of the classification rules and canned replies
type PolicyFile struct {
	Feedback struct {
		Patterns []string `yaml:"patterns"`
		Rating   string   `yaml:"rating"`
	} `yaml:"feedback"`
	CurrentLocation struct {
		Patterns []string `yaml:"patterns"`
	} `yaml:"current_location"`
	Historical struct {
		Patterns []string `yaml:"patterns"`
	} `yaml:"historical"`
	ISS struct {
		Patterns []string `yaml:"patterns"`
	} `yaml:"iss"`
	Topics  []TopicFile `yaml:"topics"`
	Replies Replies     `yaml:"replies"`
}

type TopicFile struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
	Answer   string   `yaml:"answer"`
}

// Replies holds the canned sentences of the assistant. NoMatch is a format
// string taking the country.
type Replies struct {
	General        string `yaml:"general"`
	Unsupported    string `yaml:"unsupported"`
	Feedback       string `yaml:"feedback"`
	NoData         string `yaml:"no_data"`
	NoMatch        string `yaml:"no_match"`
	RetrievalError string `yaml:"retrieval_error"`
	FeedbackError  string `yaml:"feedback_error"`
}

// Policy is a compiled PolicyFile
type Policy struct {
	feedback   []*regexp.Regexp
	rating     *regexp.Regexp
	current    []*regexp.Regexp
	historical []*regexp.Regexp
	iss        []*regexp.Regexp
	topics     []topic
	replies    Replies
}

type topic struct {
	name     string
	patterns []*regexp.Regexp
	answer   string
}

// DefaultPolicy returns the built-in policy
func DefaultPolicy() *Policy {
	p, err := ParsePolicy(defaultPolicyYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in assistant policy is invalid: %v", err))
	}
	return p
}

// LoadPolicy reads a policy file. An empty path returns the built-in policy.
// Replies missing from the file keep their built-in wording.
func LoadPolicy(path string) (*Policy, error) {
	if path == "" {
		return DefaultPolicy(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	return ParsePolicy(data)
}

// ParsePolicy compiles a YAML policy document
func ParsePolicy(data []byte) (*Policy, error) {
	var file PolicyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse policy: %w", err)
	}
	return compile(file)
}

func compile(file PolicyFile) (*Policy, error) {
	p := &Policy{replies: file.Replies}

	var err error
	if p.feedback, err = compileAll("feedback", file.Feedback.Patterns); err != nil {
		return nil, err
	}
	if p.current, err = compileAll("current_location", file.CurrentLocation.Patterns); err != nil {
		return nil, err
	}
	if p.historical, err = compileAll("historical", file.Historical.Patterns); err != nil {
		return nil, err
	}
	for _, re := range p.historical {
		if re.SubexpIndex("country") < 0 {
			return nil, fmt.Errorf("historical pattern %q has no country group", re.String())
		}
	}
	if p.iss, err = compileAll("iss", file.ISS.Patterns); err != nil {
		return nil, err
	}

	if file.Feedback.Rating != "" {
		if p.rating, err = regexp.Compile(file.Feedback.Rating); err != nil {
			return nil, fmt.Errorf("invalid feedback rating pattern: %w", err)
		}
		if p.rating.NumSubexp() < 1 {
			return nil, fmt.Errorf("feedback rating pattern %q has no capture group", file.Feedback.Rating)
		}
	}

	for _, t := range file.Topics {
		patterns, err := compileAll("topic "+t.Name, t.Patterns)
		if err != nil {
			return nil, err
		}
		p.topics = append(p.topics, topic{name: t.Name, patterns: patterns, answer: t.Answer})
	}

	if !isComplete(p.replies) {
		var defaults PolicyFile
		if err := yaml.Unmarshal(defaultPolicyYAML, &defaults); err != nil {
			return nil, fmt.Errorf("failed to parse built-in policy: %w", err)
		}
		p.replies = mergeReplies(p.replies, defaults.Replies)
	}

	return p, nil
}

func compileAll(section string, patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid %s pattern %q: %w", section, pattern, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func isComplete(r Replies) bool {
	return r.General != "" && r.Unsupported != "" && r.Feedback != "" && r.NoData != "" &&
		r.NoMatch != "" && r.RetrievalError != "" && r.FeedbackError != ""
}

func mergeReplies(r, defaults Replies) Replies {
	pick := func(v, d string) string {
		if v == "" {
			return d
		}
		return v
	}
	return Replies{
		General:        pick(r.General, defaults.General),
		Unsupported:    pick(r.Unsupported, defaults.Unsupported),
		Feedback:       pick(r.Feedback, defaults.Feedback),
		NoData:         pick(r.NoData, defaults.NoData),
		NoMatch:        pick(r.NoMatch, defaults.NoMatch),
		RetrievalError: pick(r.RetrievalError, defaults.RetrievalError),
		FeedbackError:  pick(r.FeedbackError, defaults.FeedbackError),
	}
}

func matchesAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
