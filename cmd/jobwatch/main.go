// jobwatch — personal job-listing monitor
//
// Periodically queries job-board APIs for postings matching a search query,
// deduplicates against everything seen before (PostgreSQL is the permanent
// memory), and delivers new postings to the configured sinks. A daily rollup
// summarizes each calendar day's discoveries.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vicpaltor/job-monitor-whatsapp/internal/config"
	"github.com/vicpaltor/job-monitor-whatsapp/internal/db"
	"github.com/vicpaltor/job-monitor-whatsapp/internal/identity"
	"github.com/vicpaltor/job-monitor-whatsapp/internal/monitor"
	"github.com/vicpaltor/job-monitor-whatsapp/internal/report"
	"github.com/vicpaltor/job-monitor-whatsapp/internal/scheduler"
	"github.com/vicpaltor/job-monitor-whatsapp/internal/sink"
	"github.com/vicpaltor/job-monitor-whatsapp/internal/source"
	"github.com/vicpaltor/job-monitor-whatsapp/internal/store"
)

func main() {
	once := flag.Bool("once", false, "run a single monitoring cycle and exit")
	rollup := flag.Bool("rollup", false, "run today's rollup and exit")
	flag.Parse()

	// ── Config ──────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[jobwatch] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── PostgreSQL ──────────────────────────────────────────────────────────
	log.Println("[jobwatch] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[jobwatch] PostgreSQL: %v", err)
	}
	defer pool.Close()

	postings := store.New(pool)
	if err := postings.Bootstrap(ctx); err != nil {
		log.Fatalf("[jobwatch] Schema bootstrap: %v", err)
	}
	log.Println("[jobwatch] PostgreSQL connected ✓")

	// ── Sinks & adapters ────────────────────────────────────────────────────
	sinks, err := buildSinks(ctx, cfg)
	if err != nil {
		log.Fatalf("[jobwatch] Sinks: %v", err)
	}
	adapters, err := buildAdapters(cfg)
	if err != nil {
		log.Fatalf("[jobwatch] Adapters: %v", err)
	}

	// ── Core ────────────────────────────────────────────────────────────────
	processor := monitor.NewProcessor(postings, identity.NormalizedKeyer{}, sinks)
	runner := monitor.NewRunner(adapters, processor, postings, cfg.SearchQuery, cfg.FetchTimeout)
	reporter := report.New(postings, sinks)

	if *rollup {
		if _, err := reporter.Run(ctx, time.Now()); err != nil {
			log.Fatalf("[jobwatch] Rollup: %v", err)
		}
		return
	}
	if *once {
		if _, err := runner.RunCycle(ctx); err != nil {
			log.Fatalf("[jobwatch] Cycle: %v", err)
		}
		return
	}

	// ── Scheduler ───────────────────────────────────────────────────────────
	sched := scheduler.New(runner, reporter, postings, cfg.Interval, cfg.RollupHour, cfg.RollupMinute)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[jobwatch] Scheduler: %v", err)
	}
	log.Printf("[jobwatch] Monitoring every %s, rollup daily at %02d:%02d",
		cfg.Interval, cfg.RollupHour, cfg.RollupMinute)

	// ── Graceful shutdown ───────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[jobwatch] Shutting down…")
	sched.Stop()
	cancel()
	log.Println("[jobwatch] Stopped.")
}

// buildSinks instantiates every sink named in the config.
func buildSinks(ctx context.Context, cfg *config.Config) ([]sink.Sink, error) {
	var sinks []sink.Sink
	for _, name := range cfg.Sinks {
		switch name {
		case "textfile":
			sinks = append(sinks, sink.NewTextFileSink(cfg.PostingsFile, cfg.SummaryFile))
		case "jsonlog":
			sinks = append(sinks, sink.NewJSONLogSink(cfg.JSONLogFile))
		case "telegram":
			t, err := sink.NewTelegramSink(cfg.TelegramToken, cfg.TelegramChatID)
			if err != nil {
				return nil, fmt.Errorf("telegram: %w", err)
			}
			sinks = append(sinks, t)
		case "redis":
			rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
			if err != nil {
				return nil, fmt.Errorf("redis: %w", err)
			}
			sinks = append(sinks, sink.NewRedisSink(rdb))
		default:
			return nil, fmt.Errorf("unknown sink %q", name)
		}
	}
	return sinks, nil
}

// buildAdapters instantiates every source adapter named in the config.
func buildAdapters(cfg *config.Config) ([]source.Adapter, error) {
	var adapters []source.Adapter
	for _, name := range cfg.Adapters {
		switch name {
		case "adzuna":
			adapters = append(adapters, source.NewAdzunaAdapter(cfg.AdzunaAppID, cfg.AdzunaAppKey, cfg.AdzunaCountry))
		case "remotive":
			adapters = append(adapters, source.NewRemotiveAdapter())
		default:
			return nil, fmt.Errorf("unknown source adapter %q", name)
		}
	}
	return adapters, nil
}
