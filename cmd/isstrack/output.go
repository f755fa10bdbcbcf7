package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"iss-sky-scanner/internal/types"
)

// printer writes command results as indented JSON or as plain text lines
type printer struct {
	format string
	w      io.Writer
}

// print writes v as JSON, or calls text for the text format
func (p *printer) print(v any, text func(w io.Writer)) error {
	if p.format != formatJSON {
		text(p.w)
		return nil
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(p.w, string(b))
	return err
}

// locationLine renders "2025-01-02T15:04:05Z  29.7604°N, 95.3698°W  Houston, Texas, United States"
func locationLine(loc types.EnrichedLocation) string {
	name := loc.Details.LocationName
	if loc.Timezone != "" {
		name += " (" + loc.Timezone + ")"
	}
	return fmt.Sprintf("%s  %s  %s", loc.Timestamp.UTC().Format(time.RFC3339), loc.Label(), name)
}
