package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"aidat/internal/core"
	"aidat/internal/store"
)

type Config struct {
	// HTTP Server
	Port string

	// Storage
	StoreBackend string
	SnapshotPath string
	SQLiteDBPath string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets export
	GoogleSpreadsheetID string
	GoogleSummarySheet  string

	// Worker
	SyncInterval time.Duration

	// Which months the legacy paidThisMonth field may stand in for when a
	// resident has no payments map: "current-month" or "any-month".
	LegacyFallbackMode string

	// Logging
	LogFormat string
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		StoreBackend: getEnv("STORE_BACKEND", "file"),
		SnapshotPath: getEnv("SNAPSHOT_PATH", "./data/aidat.json"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/aidat.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "aidat"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "sync_summary"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSummarySheet:  getEnv("GOOGLE_SUMMARY_SHEET", "Ozet"),

		SyncInterval: getEnvDuration("SYNC_INTERVAL", 5*time.Minute),

		LegacyFallbackMode: getEnv("LEGACY_FALLBACK_MODE", "current-month"),

		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	return cfg
}

// AnnualMode maps the configured fallback mode onto the summary engine's
// constant. Call only after Validate.
func (c *Config) AnnualMode() core.LegacyFallbackMode {
	if c.LegacyFallbackMode == "any-month" {
		return core.LegacyAnyMissingMonth
	}
	return core.LegacyCurrentMonthOnly
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !store.Type(c.StoreBackend).IsValid() {
		errors = append(errors, fmt.Sprintf("invalid store backend '%s': must be one of [file sqlite memory]", c.StoreBackend))
	}

	if c.StoreBackend == "file" && c.SnapshotPath == "" {
		errors = append(errors, "snapshot path cannot be empty when using file backend")
	}

	if c.StoreBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.LegacyFallbackMode != "current-month" && c.LegacyFallbackMode != "any-month" {
		errors = append(errors, fmt.Sprintf("invalid legacy fallback mode '%s': must be 'current-month' or 'any-month'", c.LegacyFallbackMode))
	}

	if c.LogFormat != "json" && c.LogFormat != "pretty" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'json' or 'pretty'", c.LogFormat))
	}

	if c.SyncInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid sync interval %v: must be at least 1 second", c.SyncInterval))
	} else if c.SyncInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid sync interval %v: must be at most 24 hours", c.SyncInterval))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
