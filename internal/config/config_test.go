package config_test

import (
	"testing"
	"time"

	"github.com/vicpaltor/job-monitor-whatsapp/internal/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/jobwatch")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SearchQuery != config.DefaultQuery {
		t.Errorf("query = %q, want %q", cfg.SearchQuery, config.DefaultQuery)
	}
	if cfg.Interval != 2*time.Hour {
		t.Errorf("interval = %v, want 2h", cfg.Interval)
	}
	if cfg.RollupHour != 21 || cfg.RollupMinute != 0 {
		t.Errorf("rollup = %02d:%02d, want 21:00", cfg.RollupHour, cfg.RollupMinute)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Errorf("fetch timeout = %v, want 10s", cfg.FetchTimeout)
	}
	if len(cfg.Sinks) != 2 || cfg.Sinks[0] != "textfile" || cfg.Sinks[1] != "jsonlog" {
		t.Errorf("sinks = %v, want [textfile jsonlog]", cfg.Sinks)
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}

func TestLoad_RollupAt(t *testing.T) {
	setRequired(t)
	t.Setenv("ROLLUP_AT", "08:30")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RollupHour != 8 || cfg.RollupMinute != 30 {
		t.Errorf("rollup = %02d:%02d, want 08:30", cfg.RollupHour, cfg.RollupMinute)
	}
}

func TestLoad_InvalidRollupAt(t *testing.T) {
	setRequired(t)
	t.Setenv("ROLLUP_AT", "9pm")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for malformed ROLLUP_AT")
	}
}

func TestLoad_InvalidInterval(t *testing.T) {
	setRequired(t)
	t.Setenv("MONITOR_INTERVAL", "-2h")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for non-positive MONITOR_INTERVAL")
	}
}

func TestLoad_TelegramSinkRequiresSettings(t *testing.T) {
	setRequired(t)
	t.Setenv("SINKS", "textfile,telegram")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error when the telegram sink is enabled without credentials")
	}

	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "12345")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TelegramChatID != 12345 {
		t.Errorf("chat id = %d, want 12345", cfg.TelegramChatID)
	}
}

func TestLoad_RedisSinkRequiresURL(t *testing.T) {
	setRequired(t)
	t.Setenv("SINKS", "redis")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error when the redis sink is enabled without REDIS_URL")
	}
}

func TestLoad_UnknownSinkRejected(t *testing.T) {
	setRequired(t)
	t.Setenv("SINKS", "carrier-pigeon")
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for unknown sink")
	}
}

func TestLoad_AdapterList(t *testing.T) {
	setRequired(t)
	t.Setenv("SOURCE_ADAPTERS", "adzuna, remotive")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Adapters) != 2 || cfg.Adapters[1] != "remotive" {
		t.Errorf("adapters = %v, want [adzuna remotive]", cfg.Adapters)
	}
}
