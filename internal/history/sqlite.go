package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"iss-sky-scanner/internal/apperr"
	"iss-sky-scanner/internal/types"
)

const selectColumns = `SELECT id, timestamp, latitude, longitude, location_name, country, country_code, over_water, timezone, raw_geocoder, stored_at FROM locations`

// SQLiteStore implements Store on a database opened by storage.OpenSQLite
type SQLiteStore struct {
	db     *sql.DB
	ids    *idSource
	now    func() time.Time
	logger *slog.Logger
}

// NewSQLiteStore wraps an open database
func NewSQLiteStore(db *sql.DB, logger *slog.Logger) *SQLiteStore {
	return &SQLiteStore{
		db:     db,
		ids:    newIDSource(),
		now:    time.Now,
		logger: logger.With("component", "history-sqlite"),
	}
}

func (s *SQLiteStore) Append(ctx context.Context, loc types.EnrichedLocation) (*types.HistoryRecord, error) {
	rec := newRecord(s.ids, loc, s.now())

	var raw any
	if len(rec.Details.Raw) > 0 {
		raw = string(rec.Details.Raw)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO locations (id, timestamp, latitude, longitude, location_name, country, country_code, over_water, timezone, raw_geocoder, stored_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Timestamp.UnixNano(), rec.Latitude, rec.Longitude,
		rec.Details.LocationName, rec.Details.Country, rec.Details.CountryCode, rec.Details.OverWater,
		rec.Timezone, raw, rec.StoredAt.UnixNano(),
	)
	if err != nil {
		s.logger.Error("failed to insert location", "id", rec.ID, "error", err)
		return nil, apperr.Persistence("Failed to store location", fmt.Errorf("insert location: %w", err))
	}

	s.logger.Debug("stored location", "id", rec.ID, "timestamp", rec.Timestamp)
	return &rec, nil
}

func (s *SQLiteStore) Latest(ctx context.Context) (*types.HistoryRecord, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` ORDER BY timestamp DESC, rowid DESC LIMIT 1`)
	return s.scanOne(row)
}

func (s *SQLiteStore) LatestOver(ctx context.Context, country string) (*types.HistoryRecord, error) {
	m := newCountryMatcher(country)
	if m.empty() {
		return nil, ErrNotFound
	}
	if m.code != "" {
		row := s.db.QueryRowContext(ctx,
			selectColumns+` WHERE country_code = ? ORDER BY timestamp DESC, rowid DESC LIMIT 1`,
			m.code,
		)
		return s.scanOne(row)
	}

	// substr narrows to rows starting with the name; matches checks the word boundary
	rows, err := s.db.QueryContext(ctx,
		selectColumns+` WHERE substr(LOWER(country), 1, ?) = ? ORDER BY timestamp DESC, rowid DESC`,
		utf8.RuneCountInString(m.name), m.name,
	)
	if err != nil {
		return nil, apperr.Persistence("Failed to read location history", fmt.Errorf("query locations: %w", err))
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, apperr.Persistence("Failed to read location history", err)
		}
		if m.matches(rec.Details.CountryCode, rec.Details.Country) {
			return rec, nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("Failed to read location history", fmt.Errorf("iterate locations: %w", err))
	}
	return nil, ErrNotFound
}

func (s *SQLiteStore) Query(ctx context.Context, filter Filter) ([]types.HistoryRecord, error) {
	f, err := filter.Normalize()
	if err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	if !f.Start.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, f.Start.UnixNano())
	}
	if !f.End.IsZero() {
		where = append(where, "timestamp <= ?")
		args = append(args, f.End.UnixNano())
	}
	if f.CountryCode != "" {
		where = append(where, "country_code = ?")
		args = append(args, f.CountryCode)
	}
	if f.Bounds != nil {
		where = append(where, "latitude BETWEEN ? AND ?", "longitude BETWEEN ? AND ?")
		args = append(args, f.Bounds.Min.Lat(), f.Bounds.Max.Lat(), f.Bounds.Min.Lon(), f.Bounds.Max.Lon())
	}

	q := selectColumns
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}

	// OrderBy and Direction are whitelisted by Normalize
	dir := "DESC"
	if f.Direction == Ascending {
		dir = "ASC"
	}
	q += fmt.Sprintf(" ORDER BY %s %s, timestamp DESC, rowid DESC LIMIT ?", f.OrderBy, dir)
	args = append(args, f.Limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, apperr.Persistence("Failed to query location history", fmt.Errorf("query locations: %w", err))
	}
	defer rows.Close()

	records := []types.HistoryRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, apperr.Persistence("Failed to query location history", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Persistence("Failed to query location history", fmt.Errorf("iterate locations: %w", err))
	}

	return records, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) scanOne(row *sql.Row) (*types.HistoryRecord, error) {
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error("failed to read location", "error", err)
		return nil, apperr.Persistence("Failed to read location history", err)
	}
	return rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*types.HistoryRecord, error) {
	var (
		rec       types.HistoryRecord
		timestamp int64
		storedAt  int64
		raw       sql.NullString
	)
	err := sc.Scan(
		&rec.ID, &timestamp, &rec.Latitude, &rec.Longitude,
		&rec.Details.LocationName, &rec.Details.Country, &rec.Details.CountryCode, &rec.Details.OverWater,
		&rec.Timezone, &raw, &storedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan location: %w", err)
	}

	rec.Timestamp = time.Unix(0, timestamp).UTC()
	rec.StoredAt = time.Unix(0, storedAt).UTC()
	if raw.Valid && raw.String != "" {
		rec.Details.Raw = json.RawMessage(raw.String)
	}
	return &rec, nil
}
