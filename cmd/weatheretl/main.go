// The weatheretl command loads recent daily weather observations for one
// city into Postgres. Each run looks at the last seven local days, asks the
// database which of them are still missing or incomplete, fetches only those
// from the Open-Meteo archive and upserts the answers. A run where every
// target date is already stored touches nothing.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/MartinEO2005/Proyecto-Big-Data-I/config"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/logging"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/weather"
)

const runTimeout = 5 * time.Minute

func init() {
	_ = godotenv.Load()
}

func main() {
	logging.InitConsoleLogger(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadETL()
	if err != nil {
		logging.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		logging.Error("Weather ETL failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.ETLConfig) error {
	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("loading timezone: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Warn("Failed to close the database", "error", err)
		}
	}()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	store := weather.NewStore(db)
	if err := store.EnsureTable(ctx); err != nil {
		return err
	}

	targets := weather.TargetDates(time.Now(), loc)
	complete, err := store.CompleteDates(ctx, targets)
	if err != nil {
		return err
	}

	missing := make([]string, 0, len(targets))
	for _, date := range targets {
		if !complete[date] {
			missing = append(missing, date)
		}
	}
	if len(missing) == 0 {
		logging.Info("All target dates are already stored, nothing to do")
		return nil
	}

	logging.Info("Fetching daily weather",
		"dates", len(missing),
		"from", missing[0],
		"to", missing[len(missing)-1],
	)

	client := weather.NewClient(weather.DefaultArchiveBaseURL)
	resp, err := client.FetchDailyArchive(ctx, cfg.CityLat, cfg.CityLon, missing[0], missing[len(missing)-1], cfg.Timezone)
	if err != nil {
		return err
	}

	observations := weather.MapDailyRows(resp, missing)
	written, err := store.Upsert(ctx, observations)
	if err != nil {
		return err
	}

	logging.Info("Weather ETL finished", "requested", len(missing), "written", written)
	return nil
}
