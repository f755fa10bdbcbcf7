package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"iss-sky-scanner/internal/assistant"
	"iss-sky-scanner/internal/history"
	"iss-sky-scanner/internal/types"

	"github.com/spf13/cobra"
)

const userAgent = "isstrack"

func newStoreCommand(opts *RootOptions, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "store",
		Short: "Fetch, enrich and store the current ISS position",
		Long:  "Fetch the live ISS position, reverse-geocode it and append it to the history. Meant to be run by a scheduler.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, opts, open, func(svc *services, out *printer) error {
				record, err := svc.locations.StoreCurrent(cmd.Context())
				if err != nil {
					return err
				}
				return out.print(record, func(w io.Writer) {
					fmt.Fprintf(w, "stored %s\n%s\n", record.ID, locationLine(record.EnrichedLocation))
				})
			})
		},
	}
}

func newLatestCommand(opts *RootOptions, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "latest",
		Short: "Show the most recently stored position",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, opts, open, func(svc *services, out *printer) error {
				record, err := svc.locations.Latest(cmd.Context())
				if err != nil {
					return err
				}
				return out.print(record, func(w io.Writer) {
					fmt.Fprintln(w, locationLine(record.EnrichedLocation))
				})
			})
		},
	}
}

func newRealtimeCommand(opts *RootOptions, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "realtime",
		Short: "Show the live position without storing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, opts, open, func(svc *services, out *printer) error {
				loc, err := svc.locations.EnrichCurrent(cmd.Context())
				if err != nil {
					return err
				}
				return out.print(loc, func(w io.Writer) {
					fmt.Fprintln(w, locationLine(*loc))
				})
			})
		},
	}
}

func newFactCommand(opts *RootOptions, open opener) *cobra.Command {
	return &cobra.Command{
		Use:     "fact <location>",
		Short:   "Generate a fun fact about a place",
		Example: "  isstrack fact Houston, Texas",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, opts, open, func(svc *services, out *printer) error {
				f, err := svc.facts.Generate(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				return out.print(f, func(w io.Writer) {
					fmt.Fprintln(w, f.Fact)
				})
			})
		},
	}
}

func newAskCommand(opts *RootOptions, open opener) *cobra.Command {
	return &cobra.Command{
		Use:     "ask <question>",
		Short:   "Ask the ISS assistant a question",
		Example: "  isstrack ask when was the ISS last over Brazil?",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd, opts, open, func(svc *services, out *printer) error {
				reply, err := svc.assistant.Answer(cmd.Context(), assistant.Query{
					Text:      strings.Join(args, " "),
					UserAgent: userAgent,
				})
				if err != nil {
					return err
				}
				return out.print(reply, func(w io.Writer) {
					fmt.Fprintln(w, reply.Response)
				})
			})
		},
	}
}

func newHistoryCommand(opts *RootOptions, open opener) *cobra.Command {
	var (
		minutes int
		country string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List positions stored in the last minutes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := history.TimeRange(minutes, time.Now())
			filter.CountryCode = country
			if limit > 0 {
				filter.Limit = limit
			}
			filter, err := filter.Normalize()
			if err != nil {
				return err
			}

			return withServices(cmd, opts, open, func(svc *services, out *printer) error {
				records, err := svc.history.Query(cmd.Context(), filter)
				if err != nil {
					return err
				}
				if records == nil {
					records = []types.HistoryRecord{}
				}
				return out.print(records, func(w io.Writer) {
					if len(records) == 0 {
						fmt.Fprintf(w, "no positions stored in the last %d minutes\n", history.ClampMinutes(minutes))
						return
					}
					for _, record := range records {
						fmt.Fprintln(w, locationLine(record.EnrichedLocation))
					}
				})
			})
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", history.DefaultRangeMinutes, "window size in minutes (1-1440)")
	cmd.Flags().StringVar(&country, "country", "", "only positions over this ISO country code")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of positions (default 1000)")

	return cmd
}
