// Package sink implements delivery of discovered postings and daily
// summaries to the user.
//
// Delivery is fire-and-forget: a failed sink is logged by the caller and
// never retried, and it never rolls back the store insertion that preceded
// it. A posting once discovered stays discovered.
package sink

import (
	"context"

	"github.com/vicpaltor/job-monitor-whatsapp/internal/model"
)

// Sink delivers individual postings and daily summaries.
type Sink interface {
	// Name identifies the sink in logs and configuration ("textfile", …).
	Name() string

	// DeliverPosting notifies the user of one newly discovered posting.
	DeliverPosting(ctx context.Context, p model.StoredPosting) error

	// DeliverSummary sends the daily rollup. Called even when the summary
	// is empty — "no new postings today" is a report, not an error.
	DeliverSummary(ctx context.Context, s model.Summary) error
}
