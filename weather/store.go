package weather

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Store persists daily observations in the info_meteorologica table.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureTable creates the destination table when it does not exist yet.
func (s *Store) EnsureTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS info_meteorologica (
			date DATE PRIMARY KEY,
			tmax DOUBLE PRECISION,
			tmin DOUBLE PRECISION,
			precipitation_sum DOUBLE PRECISION,
			weather_code INT
		)`)
	if err != nil {
		return fmt.Errorf("creating info_meteorologica: %w", err)
	}
	return nil
}

// CompleteDates returns the subset of dates already stored with every column
// filled in. Callers re-fetch anything missing or partially null.
func (s *Store) CompleteDates(ctx context.Context, dates []string) (map[string]bool, error) {
	complete := make(map[string]bool, len(dates))
	if len(dates) == 0 {
		return complete, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT to_char(date, 'YYYY-MM-DD')
		FROM info_meteorologica
		WHERE date = ANY($1::date[])
		  AND tmax IS NOT NULL
		  AND tmin IS NOT NULL
		  AND precipitation_sum IS NOT NULL
		  AND weather_code IS NOT NULL`, pq.Array(dates))
	if err != nil {
		return nil, fmt.Errorf("querying complete dates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning complete date: %w", err)
		}
		complete[d] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading complete dates: %w", err)
	}
	return complete, nil
}

// Upsert writes each observation, replacing values for days already present.
func (s *Store) Upsert(ctx context.Context, observations []DailyObservation) (int, error) {
	if len(observations) == 0 {
		return 0, nil
	}

	stmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO info_meteorologica (date, tmax, tmin, precipitation_sum, weather_code)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (date) DO UPDATE SET
		  tmax = EXCLUDED.tmax,
		  tmin = EXCLUDED.tmin,
		  precipitation_sum = EXCLUDED.precipitation_sum,
		  weather_code = EXCLUDED.weather_code`)
	if err != nil {
		return 0, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, obs := range observations {
		if _, err := stmt.ExecContext(ctx, obs.Date, obs.TMax, obs.TMin, obs.PrecipitationSum, obs.WeatherCode); err != nil {
			return 0, fmt.Errorf("upserting %s: %w", obs.Date, err)
		}
	}
	return len(observations), nil
}
