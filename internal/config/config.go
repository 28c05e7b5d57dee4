// Package config loads application configuration from environment variables
// (optionally seeded from a .env file) with sensible defaults, validating on
// startup to fail fast on misconfiguration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
)

// Dataset file names expected under the datasets directory. The three source
// schemas are fixed; these are the files the original Kaggle exports ship as.
const (
	AdvancedStatsFile = "advanced.csv"
	InjuriesFile      = "injuries_2010-2020.csv"
	DemographicsFile  = "American_Housing_Data_20231209.csv"
)

// Config holds all application configuration.
type Config struct {
	// DatabasePath is the SQLite database file (STATSHUB_DB).
	DatabasePath string

	// DatasetsDir is the directory holding the three source CSVs
	// (STATSHUB_DATASETS). Loads are skipped when it does not exist.
	DatasetsDir string

	// RESTPort is the HTTP interface port (REST_PORT).
	RESTPort string

	// LogLevel is the minimum log level: debug, info, warn, error (LOG_LEVEL).
	LogLevel string

	// ConflictPolicy controls upsert behavior on re-import: overwrite or
	// skip (LOAD_ON_CONFLICT).
	ConflictPolicy store.ConflictPolicy
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg := &Config{
		DatabasePath: getEnv("STATSHUB_DB", "nba_stats_hub.db"),
		DatasetsDir:  getEnv("STATSHUB_DATASETS", "datasets"),
		RESTPort:     getEnv("REST_PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	policy, err := store.ParseConflictPolicy(getEnv("LOAD_ON_CONFLICT", "overwrite"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOAD_ON_CONFLICT: %w", err)
	}
	cfg.ConflictPolicy = policy

	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("STATSHUB_DB cannot be empty")
	}
	if cfg.RESTPort == "" {
		return nil, fmt.Errorf("REST_PORT cannot be empty")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
