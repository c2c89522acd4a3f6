package monitor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/vicpaltor/job-monitor-whatsapp/internal/model"
	"github.com/vicpaltor/job-monitor-whatsapp/internal/source"
)

// ActivityLogger records portal-level activity for observability.
// Implemented by store.PostingStore; writes are best-effort.
type ActivityLogger interface {
	LogActivity(ctx context.Context, portal, action, detail string)
}

// Runner executes one full monitoring cycle: fetch from every registered
// source adapter, then feed the concatenated batch to the processor.
type Runner struct {
	adapters     []source.Adapter
	processor    *Processor
	activity     ActivityLogger
	query        string
	fetchTimeout time.Duration
}

// NewRunner wires a Runner. fetchTimeout bounds each adapter fetch; a portal
// that times out contributes an empty batch instead of aborting the cycle.
func NewRunner(adapters []source.Adapter, processor *Processor, activity ActivityLogger, query string, fetchTimeout time.Duration) *Runner {
	return &Runner{
		adapters:     adapters,
		processor:    processor,
		activity:     activity,
		query:        query,
		fetchTimeout: fetchTimeout,
	}
}

// RunCycle fetches all portals sequentially and processes the combined
// batch. Adapter failures are recovered locally; only a store failure makes
// the cycle itself fail.
func (r *Runner) RunCycle(ctx context.Context) ([]model.StoredPosting, error) {
	log.Printf("[monitor] Cycle started — query %q, %d adapter(s)", r.query, len(r.adapters))

	var batch []model.RawPosting
	for _, a := range r.adapters {
		fetchCtx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
		postings, err := a.FetchPostings(fetchCtx, r.query)
		cancel()

		if err != nil {
			log.Printf("[monitor] Adapter %s failed: %v — continuing", a.Name(), err)
			r.activity.LogActivity(ctx, a.Name(), "error", err.Error())
			continue
		}

		for i := range postings {
			if postings[i].Portal == "" {
				postings[i].Portal = a.Name()
			}
			postings[i].ApplyDefaults()
		}

		r.activity.LogActivity(ctx, a.Name(), "search", fmt.Sprintf("%d postings fetched", len(postings)))
		log.Printf("[monitor] Adapter %s returned %d posting(s)", a.Name(), len(postings))
		batch = append(batch, postings...)
	}

	fresh, err := r.processor.Process(ctx, batch)
	if err != nil {
		return fresh, fmt.Errorf("process batch: %w", err)
	}

	log.Printf("[monitor] Cycle complete — %d fetched, %d new", len(batch), len(fresh))
	return fresh, nil
}
