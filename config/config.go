// Package config has the configuration for the acquisition pipeline and the
// weather ETL.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DefaultAOIWKT covers peninsular Spain.
const DefaultAOIWKT = "POLYGON((-9.5 36.0, -9.5 43.8, 3.3 43.8, 3.3 36.0, -9.5 36.0))"

// Config holds the acquisition pipeline configuration
type Config struct {
	OutDir         string
	AOIWKT         string
	DateFrom       string // inclusive, YYYY-MM-DD
	DateTo         string // inclusive, YYYY-MM-DD
	CollectionS2   string
	CollectionS1   string
	Top            int // page size for catalogue queries
	MaxPages       int
	CountryPrefix  string
	INELastYears   int // 0 requests the full history
	VIIRSSpacingKM float64

	LogDir            string
	LogLevel          string
	LogRetentionWeeks int
	MetricsFile       string // empty disables the metrics textfile
}

// Load loads and validates the pipeline configuration from environment
// variables. The date window defaults to the last year up to today.
func Load() (*Config, error) {
	now := time.Now().UTC()
	cfg := &Config{
		OutDir:         getEnvWithDefault("OUTDIR", "neo_lumina_output"),
		AOIWKT:         getEnvWithDefault("AOI_WKT", DefaultAOIWKT),
		DateFrom:       getEnvWithDefault("DATE_FROM", now.AddDate(-1, 0, 0).Format(dateLayout)),
		DateTo:         getEnvWithDefault("DATE_TO", now.Format(dateLayout)),
		CollectionS2:   getEnvWithDefault("COLLECTION_S2", "SENTINEL-2"),
		CollectionS1:   getEnvWithDefault("COLLECTION_S1", "SENTINEL-1"),
		Top:            getIntEnvWithDefault("TOP", 500),
		MaxPages:       getIntEnvWithDefault("MAX_PAGES", 50),
		CountryPrefix:  getEnvWithDefault("COUNTRY_PREFIX", "ES"),
		INELastYears:   getIntEnvWithDefault("INE_LAST_YEARS", 1),
		VIIRSSpacingKM: getFloatEnvWithDefault("VIIRS_SPACING_KM", 10),

		LogDir:            getEnvWithDefault("LOG_DIR", "logs"),
		LogLevel:          getEnvWithDefault("LOG_LEVEL", "info"),
		LogRetentionWeeks: getIntEnvWithDefault("LOG_RETENTION_WEEKS", 4),
		MetricsFile:       os.Getenv("METRICS_FILE"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validateConfig validates all pipeline configuration values
func validateConfig(cfg *Config) error {
	if cfg.OutDir == "" {
		return fmt.Errorf("invalid OUTDIR: cannot be empty")
	}

	if cfg.AOIWKT == "" {
		return fmt.Errorf("invalid AOI_WKT: cannot be empty")
	}

	from, err := validateDate("DATE_FROM", cfg.DateFrom)
	if err != nil {
		return err
	}
	to, err := validateDate("DATE_TO", cfg.DateTo)
	if err != nil {
		return err
	}
	if from.After(to) {
		return fmt.Errorf("invalid date window: DATE_FROM %s is after DATE_TO %s", cfg.DateFrom, cfg.DateTo)
	}

	if cfg.CollectionS2 == "" {
		return fmt.Errorf("invalid COLLECTION_S2: cannot be empty")
	}
	if cfg.CollectionS1 == "" {
		return fmt.Errorf("invalid COLLECTION_S1: cannot be empty")
	}

	if cfg.Top < 1 || cfg.Top > 1000 {
		return fmt.Errorf("invalid TOP: must be between 1 and 1000, got: %d", cfg.Top)
	}
	if cfg.MaxPages < 1 {
		return fmt.Errorf("invalid MAX_PAGES: must be positive, got: %d", cfg.MaxPages)
	}
	if cfg.INELastYears < 0 {
		return fmt.Errorf("invalid INE_LAST_YEARS: must not be negative, got: %d", cfg.INELastYears)
	}
	if cfg.VIIRSSpacingKM <= 0 {
		return fmt.Errorf("invalid VIIRS_SPACING_KM: must be positive, got: %g", cfg.VIIRSSpacingKM)
	}

	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if cfg.LogRetentionWeeks <= 0 || cfg.LogRetentionWeeks > 52 {
		return fmt.Errorf("invalid LOG_RETENTION_WEEKS: must be between 1 and 52, got: %d", cfg.LogRetentionWeeks)
	}

	return nil
}

// validateDate validates a YYYY-MM-DD environment variable
func validateDate(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("invalid %s: cannot be empty", name)
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: must be YYYY-MM-DD, got: %s", name, value)
	}
	return parsed, nil
}

// validateLogLevel validates the LOG_LEVEL environment variable
func validateLogLevel(logLevel string) error {
	if logLevel == "" {
		return fmt.Errorf("LOG_LEVEL cannot be empty")
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	logLevel = strings.ToLower(logLevel)

	for _, level := range validLevels {
		if logLevel == level {
			return nil
		}
	}

	return fmt.Errorf("LOG_LEVEL must be one of: %v, got: %s", validLevels, logLevel)
}

// ETLConfig holds the weather ETL configuration
type ETLConfig struct {
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string
	CityLat    float64
	CityLon    float64
	Timezone   string
}

// LoadETL loads and validates the weather ETL configuration from environment
// variables. The defaults match the docker compose service names.
func LoadETL() (*ETLConfig, error) {
	cfg := &ETLConfig{
		DBHost:     getEnvWithDefault("DB_HOST", "db"),
		DBPort:     getIntEnvWithDefault("DB_PORT", 5432),
		DBName:     getEnvWithDefault("DB_NAME", "weather"),
		DBUser:     getEnvWithDefault("DB_USER", "appuser"),
		DBPassword: getEnvWithDefault("DB_PASSWORD", "app_password"),
		CityLat:    getFloatEnvWithDefault("CITY_LAT", 40.3581),
		CityLon:    getFloatEnvWithDefault("CITY_LON", -3.9043),
		Timezone:   getEnvWithDefault("TIMEZONE", "Europe/Madrid"),
	}

	if err := validateETLConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validateETLConfig validates all ETL configuration values
func validateETLConfig(cfg *ETLConfig) error {
	if cfg.DBHost == "" {
		return fmt.Errorf("invalid DB_HOST: cannot be empty")
	}
	if cfg.DBPort < 1 || cfg.DBPort > 65535 {
		return fmt.Errorf("invalid DB_PORT: must be between 1 and 65535, got: %d", cfg.DBPort)
	}
	if cfg.DBName == "" {
		return fmt.Errorf("invalid DB_NAME: cannot be empty")
	}
	if cfg.DBUser == "" {
		return fmt.Errorf("invalid DB_USER: cannot be empty")
	}

	if cfg.CityLat < -90 || cfg.CityLat > 90 {
		return fmt.Errorf("invalid CITY_LAT: must be between -90 and 90, got: %g", cfg.CityLat)
	}
	if cfg.CityLon < -180 || cfg.CityLon > 180 {
		return fmt.Errorf("invalid CITY_LON: must be between -180 and 180, got: %g", cfg.CityLon)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	return nil
}

// DSN builds the Postgres connection string
func (cfg *ETLConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPassword)
}

// Location resolves the configured timezone
func (cfg *ETLConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %s: %w", cfg.Timezone, err)
	}
	return loc, nil
}

// getEnvWithDefault gets an environment variable with a default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnvWithDefault gets an environment variable as int with a default value
func getIntEnvWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getFloatEnvWithDefault gets an environment variable as float64 with a default value
func getFloatEnvWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// GetEnvVars returns a list of all expected environment variables
func GetEnvVars() []string {
	return []string{
		"OUTDIR",
		"AOI_WKT",
		"DATE_FROM",
		"DATE_TO",
		"COLLECTION_S2",
		"COLLECTION_S1",
		"TOP",
		"MAX_PAGES",
		"COUNTRY_PREFIX",
		"INE_LAST_YEARS",
		"VIIRS_SPACING_KM",
		"LOG_DIR",
		"LOG_LEVEL",
		"LOG_RETENTION_WEEKS",
		"METRICS_FILE",
		"DB_HOST",
		"DB_PORT",
		"DB_NAME",
		"DB_USER",
		"DB_PASSWORD",
		"CITY_LAT",
		"CITY_LON",
		"TIMEZONE",
	}
}
