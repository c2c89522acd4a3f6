// Package source implements job-board source adapters.
//
// An adapter turns one portal's API into RawPosting records. Adapters are
// stateless pure producers: they hold no knowledge of what has been seen
// before and are independently failable — the cycle runner turns any adapter
// error into an empty batch for that portal.
package source

import (
	"context"
	"net/http"
	"time"

	"github.com/vicpaltor/job-monitor-whatsapp/internal/model"
)

// Adapter fetches current postings matching a search query from one portal.
type Adapter interface {
	// Name is the portal identifier ("adzuna", "remotive", …).
	Name() string

	// FetchPostings returns the portal's current matches for query.
	// Honors ctx cancellation and deadline.
	FetchPostings(ctx context.Context, query string) ([]model.RawPosting, error)
}

// httpTimeout caps a single request; the cycle runner additionally bounds
// the whole fetch through the context deadline.
const httpTimeout = 10 * time.Second

// newHTTPClient returns the client shared by the bundled API adapters.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}
