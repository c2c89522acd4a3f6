// Package report implements the daily rollup of discovered postings.
package report

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/vicpaltor/job-monitor-whatsapp/internal/model"
	"github.com/vicpaltor/job-monitor-whatsapp/internal/sink"
)

// Store is the read-only slice of the posting store the reporter needs,
// plus the activity log it records each rollup in.
type Store interface {
	DiscoveredBetween(ctx context.Context, start, end time.Time) ([]model.StoredPosting, error)
	LogActivity(ctx context.Context, portal, action, detail string)
}

// Reporter queries the store for one calendar day of discoveries and emits a
// Summary. It never mutates the postings table, so it may run concurrently
// with a monitoring cycle without coordination.
type Reporter struct {
	store Store
	sinks []sink.Sink
}

// New returns a Reporter reading from store and delivering to sinks.
func New(store Store, sinks []sink.Sink) *Reporter {
	return &Reporter{store: store, sinks: sinks}
}

// Run builds the rollup for day's calendar date in day's location and
// delivers it to every sink. A day with zero discoveries still produces and
// delivers a Summary. Re-running for a past day is a pure read and delivers
// again — acceptable by design.
func (r *Reporter) Run(ctx context.Context, day time.Time) (model.Summary, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	postings, err := r.store.DiscoveredBetween(ctx, start, end)
	if err != nil {
		return model.Summary{}, fmt.Errorf("rollup query: %w", err)
	}

	summary := model.Summary{Day: start, Count: len(postings), Postings: postings}
	log.Printf("[report] Rollup for %s — %d posting(s)", start.Format("2006-01-02"), summary.Count)

	for _, s := range r.sinks {
		if err := s.DeliverSummary(ctx, summary); err != nil {
			log.Printf("[report] Sink %s failed: %v", s.Name(), err)
		}
	}

	r.store.LogActivity(ctx, "", "rollup",
		fmt.Sprintf("%d postings on %s", summary.Count, start.Format("2006-01-02")))

	return summary, nil
}
