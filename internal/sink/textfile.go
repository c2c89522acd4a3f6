package sink

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vicpaltor/job-monitor-whatsapp/internal/model"
)

const rule = "======================================================================"

// TextFileSink appends human-readable blocks to two local files: one for
// individual new postings, one for the daily summaries.
type TextFileSink struct {
	postingsPath string
	summaryPath  string
}

// NewTextFileSink returns a sink writing postings to postingsPath and daily
// summaries to summaryPath. Files are created on first delivery.
func NewTextFileSink(postingsPath, summaryPath string) *TextFileSink {
	return &TextFileSink{postingsPath: postingsPath, summaryPath: summaryPath}
}

// Name implements Sink.
func (t *TextFileSink) Name() string { return "textfile" }

// DeliverPosting appends one formatted posting block.
func (t *TextFileSink) DeliverPosting(_ context.Context, p model.StoredPosting) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "NEW POSTING\n")
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Title:      %s\n", p.Title)
	fmt.Fprintf(&b, "Company:    %s\n", p.Company)
	fmt.Fprintf(&b, "Portal:     %s\n", strings.ToUpper(p.Portal))
	fmt.Fprintf(&b, "Salary:     %s\n", p.Salary)
	fmt.Fprintf(&b, "URL:        %s\n", p.URL)
	fmt.Fprintf(&b, "Discovered: %s\n", p.DiscoveredAt.Format("02/01/2006 15:04:05"))
	fmt.Fprintf(&b, "%s\n\n", rule)
	return appendFile(t.postingsPath, b.String())
}

// DeliverSummary appends the daily rollup block, including the explicit
// "no new postings" case.
func (t *TextFileSink) DeliverSummary(_ context.Context, s model.Summary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "DAILY SUMMARY - %s\n", s.Day.Format("02/01/2006"))
	fmt.Fprintf(&b, "%s\n", rule)

	if s.Count == 0 {
		fmt.Fprintf(&b, "No new postings today\n")
	} else {
		fmt.Fprintf(&b, "%d new posting(s) found:\n\n", s.Count)
		for i, p := range s.Postings {
			fmt.Fprintf(&b, "%d. %s\n", i+1, p.Title)
			fmt.Fprintf(&b, "   Company: %s\n", p.Company)
			fmt.Fprintf(&b, "   Salary:  %s\n", p.Salary)
			fmt.Fprintf(&b, "   URL:     %s\n", p.URL)
			fmt.Fprintf(&b, "   Portal:  %s\n\n", p.Portal)
		}
	}

	fmt.Fprintf(&b, "%s\n\n", rule)
	return appendFile(t.summaryPath, b.String())
}

func appendFile(path, text string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
