package sink_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vicpaltor/job-monitor-whatsapp/internal/model"
	"github.com/vicpaltor/job-monitor-whatsapp/internal/sink"
)

func samplePosting() model.StoredPosting {
	return model.StoredPosting{
		Identity:     "indeed|backend engineer|acme",
		Portal:       "indeed",
		Title:        "Backend Engineer",
		Company:      "Acme",
		URL:          "https://example.com/job/1",
		Salary:       "30k",
		DiscoveredAt: time.Date(2026, time.March, 14, 12, 0, 0, 0, time.Local),
	}
}

func TestTextFileSink_DeliverPosting(t *testing.T) {
	dir := t.TempDir()
	postings := filepath.Join(dir, "new_postings.txt")
	s := sink.NewTextFileSink(postings, filepath.Join(dir, "summary.txt"))

	if err := s.DeliverPosting(context.Background(), samplePosting()); err != nil {
		t.Fatalf("DeliverPosting: %v", err)
	}

	data, err := os.ReadFile(postings)
	if err != nil {
		t.Fatalf("read postings file: %v", err)
	}
	text := string(data)
	for _, want := range []string{"Backend Engineer", "Acme", "INDEED", "30k", "https://example.com/job/1"} {
		if !strings.Contains(text, want) {
			t.Errorf("postings file missing %q:\n%s", want, text)
		}
	}
}

func TestTextFileSink_AppendsAcrossDeliveries(t *testing.T) {
	dir := t.TempDir()
	postings := filepath.Join(dir, "new_postings.txt")
	s := sink.NewTextFileSink(postings, filepath.Join(dir, "summary.txt"))

	ctx := context.Background()
	if err := s.DeliverPosting(ctx, samplePosting()); err != nil {
		t.Fatal(err)
	}
	second := samplePosting()
	second.Title = "Data Engineer"
	if err := s.DeliverPosting(ctx, second); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(postings)
	if !strings.Contains(string(data), "Backend Engineer") || !strings.Contains(string(data), "Data Engineer") {
		t.Errorf("second delivery overwrote the first:\n%s", data)
	}
}

func TestTextFileSink_EmptySummary(t *testing.T) {
	dir := t.TempDir()
	summary := filepath.Join(dir, "summary.txt")
	s := sink.NewTextFileSink(filepath.Join(dir, "postings.txt"), summary)

	err := s.DeliverSummary(context.Background(), model.Summary{Day: time.Now()})
	if err != nil {
		t.Fatalf("DeliverSummary: %v", err)
	}

	data, err := os.ReadFile(summary)
	if err != nil {
		t.Fatalf("read summary file: %v", err)
	}
	if !strings.Contains(string(data), "No new postings today") {
		t.Errorf("empty summary must still be written:\n%s", data)
	}
}

func TestJSONLogSink_WritesOneJSONObjectPerLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.jsonl")
	s := sink.NewJSONLogSink(path)

	ctx := context.Background()
	if err := s.DeliverPosting(ctx, samplePosting()); err != nil {
		t.Fatal(err)
	}
	if err := s.DeliverSummary(ctx, model.Summary{Day: time.Now(), Count: 1}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i+1, err)
		}
	}

	var first struct {
		Event string `json:"event"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &first); err == nil && first.Event != "posting" {
		t.Errorf("first event = %q, want %q", first.Event, "posting")
	}
}
