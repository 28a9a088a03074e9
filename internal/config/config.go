package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	WorkbookPath string
	RawSheet     string
	CleanSheet   string
	MappingsPath string
	DBPath       string

	Timezone string

	WatchIntervalSec int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		WorkbookPath: getEnv("WORKBOOK_PATH", filepath.Join(cwd, "data", "orders.xlsx")),
		RawSheet:     getEnv("RAW_SHEET", "Raw Data"),
		CleanSheet:   getEnv("CLEAN_SHEET", "Cleaned Data"),
		MappingsPath: getEnv("MAPPINGS_PATH", filepath.Join(cwd, "mappings.yaml")),
		DBPath:       getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),

		Timezone: getEnv("TIMEZONE", "America/Toronto"),

		WatchIntervalSec: getEnvInt("WATCH_INTERVAL_SEC", 3600),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

// Location resolves the canonical time zone used for date normalization.
func (c Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
