// Package fact generates short factoids about the place under the station.
package fact

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/types"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const (
	// DefaultTemplate is used whenever no valid override is configured
	DefaultTemplate = "Tell me a surprising fact about {location}, in no more than 12 words."

	// Placeholder is replaced by the location name
	Placeholder = "{location}"

	DefaultMaxWords = 12
)

// ChatModel is the eino chat model surface the generator needs
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// Options bound the model output
type Options struct {
	MaxWords    int
	MaxTokens   int
	Temperature float32
}

// Generator builds a prompt from a template and asks a chat model for a fact
type Generator struct {
	model     ChatModel
	template  string
	opts      Options
	configErr error // fails every call when the model could not be configured
	logger    *slog.Logger
}

// NewGenerator creates a generator. An invalid template falls back to
// DefaultTemplate.
func NewGenerator(chatModel ChatModel, template string, opts Options, logger *slog.Logger) *Generator {
	if opts.MaxWords <= 0 {
		opts.MaxWords = DefaultMaxWords
	}
	logger = logger.With("component", "fact-generator")

	if !ValidTemplate(template) {
		if template != "" {
			logger.Warn("prompt template has no {location} placeholder, using default")
		}
		template = DefaultTemplate
	}

	return &Generator{
		model:    chatModel,
		template: template,
		opts:     opts,
		logger:   logger,
	}
}

// NewUnconfiguredGenerator creates a generator whose every call fails with a
// ConfigurationError wrapping err, so the rest of the service can still run.
func NewUnconfiguredGenerator(err error, logger *slog.Logger) *Generator {
	return &Generator{
		template:  DefaultTemplate,
		opts:      Options{MaxWords: DefaultMaxWords},
		configErr: apperr.Configuration("Fact generation is not configured", err),
		logger:    logger.With("component", "fact-generator"),
	}
}

// Template returns the prompt template in use
func (g *Generator) Template() string {
	return g.template
}

// Prompt renders the template for location
func (g *Generator) Prompt(location string) string {
	return strings.ReplaceAll(g.template, Placeholder, location)
}

func (g *Generator) Generate(ctx context.Context, location string) (*types.Fact, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, apperr.InvalidQuery("No location provided")
	}
	if g.configErr != nil {
		return nil, g.configErr
	}

	prompt := g.Prompt(location)
	g.logger.Debug("generating fact", "location", location, "prompt", prompt)

	var opts []model.Option
	if g.opts.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(g.opts.MaxTokens))
	}
	if g.opts.Temperature > 0 {
		opts = append(opts, model.WithTemperature(g.opts.Temperature))
	}

	out, err := g.model.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)}, opts...)
	if err != nil {
		g.logger.Error("failed to generate fact", "location", location, "error", err)
		return nil, apperr.Upstream("Failed to generate fact", fmt.Errorf("error generating fact: %w", err))
	}
	if out == nil {
		return nil, apperr.Upstream("Failed to generate fact", fmt.Errorf("model returned no message"))
	}

	text := Truncate(Clean(out.Content), g.opts.MaxWords)
	if text == "" {
		return nil, apperr.Upstream("Failed to generate fact", fmt.Errorf("model returned empty text"))
	}

	return &types.Fact{Location: location, Fact: text}, nil
}

// ValidTemplate reports whether an override template can be used
func ValidTemplate(template string) bool {
	return strings.TrimSpace(template) != "" && strings.Contains(template, Placeholder)
}

// Clean trims whitespace and wrapping quotes and collapses internal whitespace
func Clean(text string) string {
	text = strings.TrimSpace(text)
	for _, pair := range [][2]string{{`"`, `"`}, {"'", "'"}, {"“", "”"}, {"`", "`"}} {
		if len(text) >= len(pair[0])+len(pair[1]) && strings.HasPrefix(text, pair[0]) && strings.HasSuffix(text, pair[1]) {
			text = strings.TrimSpace(text[len(pair[0]) : len(text)-len(pair[1])])
		}
	}
	return strings.Join(strings.Fields(text), " ")
}

// Truncate keeps at most maxWords whitespace-separated words
func Truncate(text string, maxWords int) string {
	words := strings.Fields(text)
	if maxWords <= 0 || len(words) <= maxWords {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:maxWords], " ")
}
