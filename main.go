package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/MartinEO2005/Proyecto-Big-Data-I/aoi"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/catalog"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/config"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/demography"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/logging"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/metrics"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/osm"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/storage"
)

func init() {
	// Read the env variables from the working directory, falling back to the
	// executable directory. A missing .env is fine: containers and cron pass
	// configuration through the environment.
	if err := godotenv.Load(); err != nil {
		if ex, exErr := os.Executable(); exErr == nil {
			_ = godotenv.Load(filepath.Join(filepath.Dir(ex), ".env"))
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogDir, cfg.LogLevel, cfg.LogRetentionWeeks)

	box, err := aoi.ParseBBox(cfg.AOIWKT)
	if err != nil {
		logging.Error("Invalid AOI", "error", err)
		os.Exit(1)
	}

	p := &pipeline{
		cfg:     cfg,
		box:     box,
		store:   storage.NewStore(cfg.OutDir),
		catalog: catalog.NewClient(catalog.DefaultBaseURL, cfg.Top, cfg.MaxPages),
		osm:     osm.NewClient(osm.DefaultBaseURL),
		demo:    demography.NewClient(demography.DefaultEurostatBaseURL, demography.DefaultINEBaseURL),
	}

	fmt.Println("NeoLumina: starting thematic CSV generation at:", time.Now())
	start := time.Now()

	failed, err := p.run(context.Background())
	if err != nil {
		logging.Error("Pipeline aborted", "error", err)
		os.Exit(1)
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logging.Warn("Failed to write metrics textfile", "path", cfg.MetricsFile, "error", err)
		}
	}

	logging.Info("Pipeline finished",
		"duration", time.Since(start).String(),
		"outdir", cfg.OutDir,
		"failed_sources", failed)
}
