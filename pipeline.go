package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MartinEO2005/Proyecto-Big-Data-I/aoi"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/catalog"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/config"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/demography"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/fetch"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/logging"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/metrics"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/osm"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/storage"
	"github.com/MartinEO2005/Proyecto-Big-Data-I/viirs"
)

// output is one CSV file produced by a source.
type output struct {
	theme    string
	filename string
	dataset  storage.Dataset
}

// job is one data source producing one or more CSV outputs.
type job struct {
	name  string
	fetch func(ctx context.Context) ([]output, error)
}

// pipeline wires the source clients to the CSV store. Clients are fields so
// tests can point them at local servers.
type pipeline struct {
	cfg     *config.Config
	box     aoi.BBox
	store   *storage.Store
	catalog *catalog.Client
	osm     *osm.Client
	demo    *demography.Client
}

func (p *pipeline) jobs() []job {
	return []job{
		{name: "sentinel2", fetch: p.fetchSentinel2},
		{name: "sentinel1", fetch: p.fetchSentinel1},
		{name: "overpass", fetch: p.fetchRailStations},
		{name: "viirs", fetch: p.fetchNightLights},
		{name: "eurostat", fetch: p.fetchEurostat},
		{name: "ine", fetch: p.fetchINE},
	}
}

// run executes every source in order. A source failure is logged and counted
// but never stops the others, and the previous run's file stays untouched. A
// storage failure aborts the run: a half-written output must not pass as
// success.
func (p *pipeline) run(ctx context.Context) (int, error) {
	failed := 0
	for _, j := range p.jobs() {
		start := time.Now()
		outputs, err := j.fetch(ctx)
		metrics.FetchDuration.WithLabelValues(j.name).Observe(time.Since(start).Seconds())

		if err != nil {
			kind := classifyError(err)
			metrics.FetchFailures.WithLabelValues(j.name, kind).Inc()
			logging.Error("Source failed, keeping previous output", "source", j.name, "kind", kind, "error", err)
			failed++
			continue
		}

		for _, out := range outputs {
			if out.dataset.Empty() {
				logging.Warn("Nothing to persist", "source", j.name, "file", out.filename)
				continue
			}
			path, err := p.store.SaveCSV(out.theme, out.filename, out.dataset)
			if err != nil {
				return failed, fmt.Errorf("saving %s: %w", out.filename, err)
			}
			metrics.RowsWritten.WithLabelValues(out.theme).Add(float64(len(out.dataset.Rows)))
			logging.Info("CSV saved", "source", j.name, "path", path, "rows", len(out.dataset.Rows))
		}
	}
	return failed, nil
}

// classifyError separates transport problems from bad upstream payloads.
func classifyError(err error) string {
	var fetchErr *fetch.Error
	if errors.As(err, &fetchErr) {
		return "transport"
	}
	return "schema"
}

func (p *pipeline) fetchSentinel2(ctx context.Context) ([]output, error) {
	filter := catalog.BuildFilter(p.cfg.CollectionS2, p.cfg.DateFrom, p.cfg.DateTo, p.cfg.AOIWKT)
	products, err := p.catalog.Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	return []output{{
		theme:    storage.ThemeSatellite,
		filename: "sentinel2_products.csv",
		dataset:  catalog.Dataset(products),
	}}, nil
}

func (p *pipeline) fetchSentinel1(ctx context.Context) ([]output, error) {
	filter := catalog.BuildFilter(p.cfg.CollectionS1, p.cfg.DateFrom, p.cfg.DateTo, p.cfg.AOIWKT)
	products, err := p.catalog.Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	return []output{{
		theme:    storage.ThemeSatellite,
		filename: "sentinel1_products.csv",
		dataset:  catalog.Dataset(products),
	}}, nil
}

func (p *pipeline) fetchRailStations(ctx context.Context) ([]output, error) {
	stations, err := p.osm.FetchRailStations(ctx, p.box)
	if err != nil {
		return nil, err
	}
	ds, err := osm.Dataset(stations)
	if err != nil {
		return nil, err
	}
	return []output{{
		theme:    storage.ThemeTransport,
		filename: "rail_stations.csv",
		dataset:  ds,
	}}, nil
}

func (p *pipeline) fetchNightLights(ctx context.Context) ([]output, error) {
	from, err := time.Parse("2006-01-02", p.cfg.DateFrom)
	if err != nil {
		return nil, fmt.Errorf("parsing DATE_FROM: %w", err)
	}
	to, err := time.Parse("2006-01-02", p.cfg.DateTo)
	if err != nil {
		return nil, fmt.Errorf("parsing DATE_TO: %w", err)
	}
	requests := viirs.Template(from, to, p.box, p.cfg.VIIRSSpacingKM)
	return []output{{
		theme:    storage.ThemeNightLights,
		filename: "viirs_requests.csv",
		dataset:  viirs.Dataset(requests),
	}}, nil
}

func (p *pipeline) fetchEurostat(ctx context.Context) ([]output, error) {
	records, err := p.demo.FetchPopulationTotalNUTS3(ctx, demography.CountryFilter(p.cfg.CountryPrefix))
	if err != nil {
		return nil, err
	}
	return []output{{
		theme:    storage.ThemeDemography,
		filename: "demografia_poblacion.csv",
		dataset:  demography.ProvinceDataset(records),
	}}, nil
}

func (p *pipeline) fetchINE(ctx context.Context) ([]output, error) {
	records, err := p.demo.FetchMunicipalPopulation(ctx, p.cfg.INELastYears)
	if err != nil {
		return nil, err
	}
	cleaned := demography.CleanMunicipalRecords(records)
	return []output{
		{
			theme:    storage.ThemeDemography,
			filename: "demografia_poblacion_municipios.csv",
			dataset:  demography.MunicipalDataset(records),
		},
		{
			theme:    storage.ThemeDemography,
			filename: "demografia_poblacion_municipios_clean.csv",
			dataset:  demography.CleanMunicipalDataset(cleaned),
		},
	}, nil
}
