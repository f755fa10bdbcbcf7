package fact

import (
	"context"
	"fmt"
	"strings"

	"iss-sky-scanner/internal/config"

	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	ollamaBaseURL = "http://localhost:11434"
)

// NewChatModel builds the configured eino chat model. Gemini is reached through
// its OpenAI-compatible endpoint. apiKey is ignored for ollama.
func NewChatModel(ctx context.Context, cfg config.FactConfig, apiKey string) (ChatModel, error) {
	switch strings.ToLower(cfg.Provider) {
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = ollamaBaseURL
		}
		chatModel, err := ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: baseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("error creating ollama chat model: %w", err)
		}
		return chatModel, nil

	case "gemini", "openai":
		baseURL := cfg.BaseURL
		if baseURL == "" && strings.EqualFold(cfg.Provider, "gemini") {
			baseURL = geminiBaseURL
		}
		maxTokens := cfg.MaxTokens
		temperature := cfg.Temperature

		chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:      apiKey,
			BaseURL:     baseURL,
			Model:       cfg.Model,
			Timeout:     cfg.Timeout,
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("error creating chat model: %w", err)
		}
		return chatModel, nil

	default:
		return nil, fmt.Errorf("unsupported fact provider %q", cfg.Provider)
	}
}

// NeedsAPIKey reports whether the provider authenticates with an API key
func NeedsAPIKey(provider string) bool {
	return !strings.EqualFold(provider, "ollama")
}
