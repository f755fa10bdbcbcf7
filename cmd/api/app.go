package main

import (
	"context"
	"log/slog"

	"iss-sky-scanner/internal/assistant"
	"iss-sky-scanner/internal/bootstrap"
	"iss-sky-scanner/internal/config"
	"iss-sky-scanner/internal/feedback"
	"iss-sky-scanner/internal/history"
	"iss-sky-scanner/internal/location"
	"iss-sky-scanner/internal/types"

	"github.com/gin-gonic/gin"

	_ "iss-sky-scanner/docs" // Ensure docs are imported
)

// historyQuerier is the filtered read side of the history store
type historyQuerier interface {
	Query(ctx context.Context, filter history.Filter) ([]types.HistoryRecord, error)
}

type feedbackSubmitter interface {
	Submit(ctx context.Context, sub feedback.Submission) (*types.FeedbackEntry, error)
}

type factGenerator interface {
	Generate(ctx context.Context, location string) (*types.Fact, error)
}

type queryAnswerer interface {
	Answer(ctx context.Context, q assistant.Query) (*assistant.Reply, error)
}

// App encapsulates application dependencies
type App struct {
	router          *gin.Engine
	logger          *slog.Logger
	locationService location.Service
	history         historyQuerier
	feedback        feedbackSubmitter
	facts           factGenerator
	assistant       queryAnswerer
	keys            bootstrap.APIKeys
	cfg             *config.Config
}

// NewApp creates a new application from the bootstrapped services
func NewApp(cfg *config.Config, logger *slog.Logger, svc *bootstrap.Services) *App {
	return newApp(cfg, logger, &App{
		locationService: svc.Locations,
		history:         svc.History,
		feedback:        svc.Feedback,
		facts:           svc.Facts,
		assistant:       svc.Assistant,
		keys:            svc.Keys,
	})
}

// newApp sets up the router around deps. Tests pass mocks through it.
func newApp(cfg *config.Config, logger *slog.Logger, deps *App) *App {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))

	deps.router = router
	deps.logger = logger
	deps.cfg = cfg

	// Register routes
	deps.registerRoutes()

	return deps
}

// Run starts the HTTP server
func (app *App) Run(addr string) error {
	return app.router.Run(addr)
}
