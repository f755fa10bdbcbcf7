// Package bootstrap builds every service from configuration. It is shared by
// the HTTP server and the operator CLI.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/assistant"
	"iss-sky-scanner/internal/config"
	"iss-sky-scanner/internal/fact"
	"iss-sky-scanner/internal/feedback"
	"iss-sky-scanner/internal/history"
	"iss-sky-scanner/internal/location"
	"iss-sky-scanner/internal/secrets"
	"iss-sky-scanner/internal/storage"
)

// Services holds the process-wide components. Everything in it is built once
// and read-only afterwards.
type Services struct {
	Locations location.Service
	History   history.Store
	Feedback  *feedback.Service
	Facts     *fact.Generator
	Assistant *assistant.Router
	Keys      APIKeys
}

// New builds the services described by cfg
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	resolver := secrets.NewResolver(cfg.Secrets.Dir, logger)
	svc := &Services{}

	var (
		sink    feedback.Sink
		objects fact.ObjectGetter
	)

	switch cfg.Storage.Driver {
	case "dynamodb":
		awsCfg, err := storage.LoadAWSConfig(ctx, cfg.Storage.DynamoDB.Region)
		if err != nil {
			return nil, err
		}
		client := storage.NewDynamoDBClient(awsCfg, cfg.Storage.DynamoDB.Endpoint)
		svc.History = history.NewDynamoDBStore(client, cfg.Storage.DynamoDB.LocationsTable, logger)
		sink = feedback.NewDynamoDBSink(client, cfg.Storage.DynamoDB.FeedbackTable)
		if strings.HasPrefix(cfg.Fact.PromptSource, "s3://") {
			objects = storage.NewS3Client(awsCfg)
		}
		logger.Info("using dynamodb storage", "region", awsCfg.Region, "table", cfg.Storage.DynamoDB.LocationsTable)

	default:
		db, err := storage.OpenSQLite(cfg.Storage.SQLite.Path)
		if err != nil {
			return nil, err
		}
		svc.History = history.NewSQLiteStore(db, logger)
		sink = feedback.NewSQLiteSink(db)
		logger.Info("using sqlite storage", "path", cfg.Storage.SQLite.Path)
	}

	if objects == nil && strings.HasPrefix(cfg.Fact.PromptSource, "s3://") {
		awsCfg, err := storage.LoadAWSConfig(ctx, cfg.Storage.DynamoDB.Region)
		if err != nil {
			logger.Warn("failed to load AWS config for prompt override", "error", err)
		} else {
			objects = storage.NewS3Client(awsCfg)
		}
	}

	svc.Facts = newFactGenerator(ctx, cfg.Fact, resolver, objects, logger)
	svc.Feedback = feedback.NewService(sink, logger)

	locations, err := location.NewLocationService(cfg.Providers, svc.History, svc.Facts, logger)
	if err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("failed to create location service: %w", err)
	}
	svc.Locations = locations

	policy, err := assistant.LoadPolicy(cfg.Assistant.PolicyFile)
	if err != nil {
		_ = svc.Close()
		return nil, apperr.Configuration("Invalid assistant policy", err)
	}
	svc.Assistant = assistant.NewRouter(policy, locations, svc.Feedback, logger)

	svc.Keys = resolveKeys(cfg.Auth, resolver, logger)

	return svc, nil
}

// Close releases the storage handles. The feedback sink shares the history
// database and needs no separate close.
func (s *Services) Close() error {
	if s.History == nil {
		return nil
	}
	return s.History.Close()
}

func newFactGenerator(ctx context.Context, cfg config.FactConfig, resolver *secrets.Resolver, objects fact.ObjectGetter, logger *slog.Logger) *fact.Generator {
	template := fact.LoadTemplate(ctx, cfg.PromptSource, objects, logger)

	var apiKey string
	if fact.NeedsAPIKey(cfg.Provider) {
		key, err := resolver.Resolve(cfg.APIKeySecret)
		if err != nil {
			logger.Warn("fact generator disabled", "provider", cfg.Provider, "error", err)
			return fact.NewUnconfiguredGenerator(err, logger)
		}
		apiKey = key
	}

	chatModel, err := fact.NewChatModel(ctx, cfg, apiKey)
	if err != nil {
		logger.Warn("fact generator disabled", "provider", cfg.Provider, "error", err)
		return fact.NewUnconfiguredGenerator(err, logger)
	}

	return fact.NewGenerator(chatModel, template, fact.Options{
		MaxWords:    cfg.MaxWords,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}, logger)
}
