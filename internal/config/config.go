// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing or malformed, the process
// exits before anything connects.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the monitoring schedule and output files.
const (
	DefaultQuery        = "backend remote java"
	DefaultInterval     = 2 * time.Hour
	DefaultRollupAt     = "21:00"
	DefaultFetchTimeout = 10 * time.Second
)

// Config holds all runtime configuration for the job monitor.
type Config struct {
	DatabaseURL string
	RedisURL    string

	SearchQuery  string
	Interval     time.Duration // how often a monitoring cycle fires
	RollupHour   int           // daily rollup wall-clock time, local
	RollupMinute int
	FetchTimeout time.Duration // per-adapter fetch bound

	Adapters []string // enabled source adapters
	Sinks    []string // enabled sinks

	PostingsFile string
	SummaryFile  string
	JSONLogFile  string

	TelegramToken  string
	TelegramChatID int64

	AdzunaAppID   string
	AdzunaAppKey  string
	AdzunaCountry string // e.g. "es", "gb", "us"
}

// Load reads .env (if present) and environment variables, applies defaults
// and returns a validated Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		SearchQuery:    envOr("SEARCH_QUERY", DefaultQuery),
		PostingsFile:   envOr("POSTINGS_FILE", "new_postings.txt"),
		SummaryFile:    envOr("SUMMARY_FILE", "daily_summary.txt"),
		JSONLogFile:    envOr("JSON_LOG_FILE", "events.jsonl"),
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		AdzunaAppID:    os.Getenv("ADZUNA_APP_ID"),
		AdzunaAppKey:   os.Getenv("ADZUNA_APP_KEY"),
		AdzunaCountry:  envOr("ADZUNA_COUNTRY", "es"),
		Adapters:       splitList(envOr("SOURCE_ADAPTERS", "adzuna")),
		Sinks:          splitList(envOr("SINKS", "textfile,jsonlog")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var err error
	if cfg.Interval, err = durationOr("MONITOR_INTERVAL", DefaultInterval); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = durationOr("FETCH_TIMEOUT", DefaultFetchTimeout); err != nil {
		return nil, err
	}

	rollupAt := envOr("ROLLUP_AT", DefaultRollupAt)
	if cfg.RollupHour, cfg.RollupMinute, err = parseClock(rollupAt); err != nil {
		return nil, fmt.Errorf("ROLLUP_AT: %w", err)
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		cfg.TelegramChatID, err = strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer, got %q", chatID)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks that every enabled sink has the settings it needs.
func (c *Config) validate() error {
	if len(c.Adapters) == 0 {
		return fmt.Errorf("SOURCE_ADAPTERS must name at least one adapter")
	}
	if len(c.Sinks) == 0 {
		return fmt.Errorf("SINKS must name at least one sink")
	}
	for _, s := range c.Sinks {
		switch s {
		case "textfile", "jsonlog":
		case "telegram":
			if c.TelegramToken == "" || c.TelegramChatID == 0 {
				return fmt.Errorf("telegram sink enabled but TELEGRAM_BOT_TOKEN / TELEGRAM_CHAT_ID not set")
			}
		case "redis":
			if c.RedisURL == "" {
				return fmt.Errorf("redis sink enabled but REDIS_URL not set")
			}
		default:
			return fmt.Errorf("unknown sink %q", s)
		}
	}
	for _, a := range c.Adapters {
		switch a {
		case "adzuna", "remotive":
		default:
			return fmt.Errorf("unknown source adapter %q", a)
		}
	}
	return nil
}

// parseClock parses "HH:MM" into hour and minute.
func parseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("must be HH:MM, got %q", s)
	}
	return t.Hour(), t.Minute(), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, s)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
