package main

import (
	"context"
	"fmt"
	"io"
	"slices"

	"iss-sky-scanner/internal/assistant"
	"iss-sky-scanner/internal/bootstrap"
	"iss-sky-scanner/internal/config"
	"iss-sky-scanner/internal/history"
	"iss-sky-scanner/internal/location"
	"iss-sky-scanner/internal/types"

	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
)

var validFormats = []string{formatText, formatJSON}

// RootOptions holds global flags for all commands
type RootOptions struct {
	Format     string
	ConfigPath string
}

type historyQuerier interface {
	Query(ctx context.Context, filter history.Filter) ([]types.HistoryRecord, error)
}

type factGenerator interface {
	Generate(ctx context.Context, location string) (*types.Fact, error)
}

type queryAnswerer interface {
	Answer(ctx context.Context, q assistant.Query) (*assistant.Reply, error)
}

// services is the part of bootstrap.Services the commands use
type services struct {
	locations location.Service
	history   historyQuerier
	facts     factGenerator
	assistant queryAnswerer
	close     func() error
}

// opener builds the services for one command invocation. Logs go to stderr so
// they never mix with JSON output.
type opener func(ctx context.Context, opts *RootOptions, stderr io.Writer) (*services, error)

func newRootCommand(open opener) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:          "isstrack",
		Short:        "ISS Sky Scanner operator tool",
		Long:         "Store, inspect and ask about International Space Station positions using the same services as the API.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", formatText, "output format (text|json)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default: ./config.yaml)")

	cmd.AddCommand(newStoreCommand(opts, open))
	cmd.AddCommand(newLatestCommand(opts, open))
	cmd.AddCommand(newRealtimeCommand(opts, open))
	cmd.AddCommand(newFactCommand(opts, open))
	cmd.AddCommand(newAskCommand(opts, open))
	cmd.AddCommand(newHistoryCommand(opts, open))

	return cmd
}

func openServices(ctx context.Context, opts *RootOptions, stderr io.Writer) (*services, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = config.LoadFile(opts.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	svc, err := bootstrap.New(ctx, cfg, cfg.NewLoggerTo(stderr))
	if err != nil {
		return nil, fmt.Errorf("failed to create services: %w", err)
	}

	return &services{
		locations: svc.Locations,
		history:   svc.History,
		facts:     svc.Facts,
		assistant: svc.Assistant,
		close:     svc.Close,
	}, nil
}

// withServices runs fn against freshly opened services and closes them after
func withServices(cmd *cobra.Command, opts *RootOptions, open opener, fn func(*services, *printer) error) error {
	svc, err := open(cmd.Context(), opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if svc.close == nil {
			return
		}
		if err := svc.close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to close services: %v\n", err)
		}
	}()

	return fn(svc, &printer{format: opts.Format, w: cmd.OutOrStdout()})
}
