// Package monitor implements the deduplication processor and the cycle
// runner that together form one scrape → dedup → notify pass.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/vicpaltor/job-monitor-whatsapp/internal/identity"
	"github.com/vicpaltor/job-monitor-whatsapp/internal/model"
	"github.com/vicpaltor/job-monitor-whatsapp/internal/sink"
	"github.com/vicpaltor/job-monitor-whatsapp/internal/store"
)

// Store is the slice of the posting store the processor needs. The dedup
// processor holds no persistent state of its own — the store is the single
// source of truth for "already handled".
type Store interface {
	Exists(ctx context.Context, identity string) (bool, error)
	Insert(ctx context.Context, raw model.RawPosting, identity string) (model.StoredPosting, error)
}

// Processor partitions a freshly scraped batch into new and already-known
// postings, inserting the new ones and forwarding them to every sink.
type Processor struct {
	store Store
	keyer identity.Keyer
	sinks []sink.Sink
}

// NewProcessor returns a Processor writing through store, deriving identities
// with keyer and notifying sinks.
func NewProcessor(st Store, keyer identity.Keyer, sinks []sink.Sink) *Processor {
	return &Processor{store: st, keyer: keyer, sinks: sinks}
}

// Process handles one batch in the order received and returns the postings
// that were new. A second occurrence of an identity inside the same batch is
// a duplicate against the first, not only against pre-batch store contents.
// A store failure aborts the batch; sink failures do not.
func (p *Processor) Process(ctx context.Context, batch []model.RawPosting) ([]model.StoredPosting, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	pending := make(map[string]struct{}, len(batch))
	var fresh []model.StoredPosting

	for _, raw := range batch {
		key := p.keyer.Key(raw)

		if _, dup := pending[key]; dup {
			log.Printf("[processor] Duplicate within batch: %q @ %s", raw.Title, raw.Portal)
			continue
		}

		known, err := p.store.Exists(ctx, key)
		if err != nil {
			return fresh, fmt.Errorf("exists check for %q: %w", key, err)
		}
		if known {
			pending[key] = struct{}{}
			log.Printf("[processor] Duplicate posting: %q @ %s", raw.Title, raw.Portal)
			continue
		}

		stored, err := p.store.Insert(ctx, raw, key)
		if errors.Is(err, store.ErrDuplicateIdentity) {
			// Should not happen after a passing Exists under the
			// single-writer model. Log the ordering bug and move on.
			log.Printf("[processor] Identity %q inserted behind our back — skipping", key)
			pending[key] = struct{}{}
			continue
		}
		if err != nil {
			return fresh, fmt.Errorf("insert %q: %w", key, err)
		}

		pending[key] = struct{}{}
		fresh = append(fresh, stored)
		p.deliver(ctx, stored)
	}

	return fresh, nil
}

// deliver forwards one posting to every sink, best-effort.
func (p *Processor) deliver(ctx context.Context, posting model.StoredPosting) {
	for _, s := range p.sinks {
		if err := s.DeliverPosting(ctx, posting); err != nil {
			log.Printf("[processor] Sink %s failed for %q: %v", s.Name(), posting.Title, err)
		}
	}
}
