package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func cleanupEnv() {
	for _, key := range GetEnvVars() {
		_ = os.Unsetenv(key)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	cleanupEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.OutDir != "neo_lumina_output" {
		t.Errorf("Expected default OUTDIR neo_lumina_output, got %s", cfg.OutDir)
	}
	if cfg.AOIWKT != DefaultAOIWKT {
		t.Errorf("Expected the default AOI, got %s", cfg.AOIWKT)
	}
	if cfg.CollectionS2 != "SENTINEL-2" || cfg.CollectionS1 != "SENTINEL-1" {
		t.Errorf("Unexpected default collections: %s / %s", cfg.CollectionS2, cfg.CollectionS1)
	}
	if cfg.Top != 500 || cfg.MaxPages != 50 {
		t.Errorf("Unexpected default paging: top=%d maxPages=%d", cfg.Top, cfg.MaxPages)
	}
	if cfg.CountryPrefix != "ES" {
		t.Errorf("Expected default COUNTRY_PREFIX ES, got %s", cfg.CountryPrefix)
	}
	if cfg.INELastYears != 1 {
		t.Errorf("Expected default INE_LAST_YEARS 1, got %d", cfg.INELastYears)
	}
	if cfg.LogLevel != "info" || cfg.LogRetentionWeeks != 4 {
		t.Errorf("Unexpected default logging config: %s / %d", cfg.LogLevel, cfg.LogRetentionWeeks)
	}
	if cfg.MetricsFile != "" {
		t.Errorf("Expected metrics to be disabled by default, got %s", cfg.MetricsFile)
	}

	from, err := time.Parse("2006-01-02", cfg.DateFrom)
	if err != nil {
		t.Fatalf("Default DATE_FROM is not a date: %v", err)
	}
	to, err := time.Parse("2006-01-02", cfg.DateTo)
	if err != nil {
		t.Fatalf("Default DATE_TO is not a date: %v", err)
	}
	if from.After(to) {
		t.Errorf("Default window is inverted: %s .. %s", cfg.DateFrom, cfg.DateTo)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	_ = os.Setenv("OUTDIR", "out")
	_ = os.Setenv("DATE_FROM", "2024-01-01")
	_ = os.Setenv("DATE_TO", "2024-06-30")
	_ = os.Setenv("TOP", "100")
	_ = os.Setenv("COUNTRY_PREFIX", "PT")
	_ = os.Setenv("METRICS_FILE", "metrics.prom")
	defer cleanupEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.OutDir != "out" {
		t.Errorf("Expected OUTDIR out, got %s", cfg.OutDir)
	}
	if cfg.DateFrom != "2024-01-01" || cfg.DateTo != "2024-06-30" {
		t.Errorf("Unexpected window: %s .. %s", cfg.DateFrom, cfg.DateTo)
	}
	if cfg.Top != 100 {
		t.Errorf("Expected TOP 100, got %d", cfg.Top)
	}
	if cfg.CountryPrefix != "PT" {
		t.Errorf("Expected COUNTRY_PREFIX PT, got %s", cfg.CountryPrefix)
	}
	if cfg.MetricsFile != "metrics.prom" {
		t.Errorf("Expected METRICS_FILE metrics.prom, got %s", cfg.MetricsFile)
	}
}

func TestLoadInvalidDates(t *testing.T) {
	testCases := []struct {
		name string
		from string
		to   string
	}{
		{"malformed from", "not-a-date", "2024-06-30"},
		{"malformed to", "2024-01-01", "30/06/2024"},
		{"inverted window", "2024-06-30", "2024-01-01"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_ = os.Setenv("DATE_FROM", tc.from)
			_ = os.Setenv("DATE_TO", tc.to)
			defer cleanupEnv()

			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s, got nil", tc.name)
			}
		})
	}
}

func TestLoadInvalidNumbers(t *testing.T) {
	testCases := []struct {
		key   string
		value string
	}{
		{"TOP", "0"},
		{"TOP", "5000"},
		{"MAX_PAGES", "0"},
		{"INE_LAST_YEARS", "-1"},
		{"VIIRS_SPACING_KM", "0"},
		{"LOG_RETENTION_WEEKS", "53"},
	}

	for _, tc := range testCases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			_ = os.Setenv(tc.key, tc.value)
			defer cleanupEnv()

			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%s, got nil", tc.key, tc.value)
			}
		})
	}
}

func TestLoadInvalidLogLevel(t *testing.T) {
	_ = os.Setenv("LOG_LEVEL", "verbose")
	defer cleanupEnv()

	if _, err := Load(); err == nil {
		t.Error("Expected error for an unknown log level, got nil")
	}
}

func TestUnparsableNumbersFallBackToDefaults(t *testing.T) {
	_ = os.Setenv("TOP", "many")
	_ = os.Setenv("VIIRS_SPACING_KM", "wide")
	defer cleanupEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Top != 500 {
		t.Errorf("Expected the default TOP, got %d", cfg.Top)
	}
	if cfg.VIIRSSpacingKM != 10 {
		t.Errorf("Expected the default spacing, got %g", cfg.VIIRSSpacingKM)
	}
}

func TestLoadETLWithDefaults(t *testing.T) {
	cleanupEnv()

	cfg, err := LoadETL()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.DBHost != "db" || cfg.DBPort != 5432 || cfg.DBName != "weather" {
		t.Errorf("Unexpected database defaults: %+v", cfg)
	}
	if cfg.CityLat != 40.3581 || cfg.CityLon != -3.9043 {
		t.Errorf("Unexpected default coordinates: %g, %g", cfg.CityLat, cfg.CityLon)
	}
	if cfg.Timezone != "Europe/Madrid" {
		t.Errorf("Expected default TIMEZONE Europe/Madrid, got %s", cfg.Timezone)
	}

	dsn := cfg.DSN()
	if !strings.Contains(dsn, "host=db") || !strings.Contains(dsn, "port=5432") ||
		!strings.Contains(dsn, "dbname=weather") || !strings.Contains(dsn, "sslmode=disable") {
		t.Errorf("Unexpected DSN: %s", dsn)
	}

	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("Expected the default timezone to resolve, got %v", err)
	}
	if loc.String() != "Europe/Madrid" {
		t.Errorf("Unexpected location: %s", loc)
	}
}

func TestLoadETLInvalidValues(t *testing.T) {
	testCases := []struct {
		key   string
		value string
	}{
		{"DB_PORT", "0"},
		{"DB_PORT", "70000"},
		{"CITY_LAT", "91"},
		{"CITY_LON", "-181"},
		{"TIMEZONE", "Mars/Olympus"},
	}

	for _, tc := range testCases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			_ = os.Setenv(tc.key, tc.value)
			defer cleanupEnv()

			if _, err := LoadETL(); err == nil {
				t.Errorf("Expected error for %s=%s, got nil", tc.key, tc.value)
			}
		})
	}
}
