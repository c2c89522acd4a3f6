package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/vicpaltor/job-monitor-whatsapp/internal/model"
)

// JSONLogSink appends one JSON object per line to a log file, for machine
// consumption (grep, jq, later import).
type JSONLogSink struct {
	mu   sync.Mutex
	path string
}

// NewJSONLogSink returns a sink appending to path.
func NewJSONLogSink(path string) *JSONLogSink {
	return &JSONLogSink{path: path}
}

// Name implements Sink.
func (j *JSONLogSink) Name() string { return "jsonlog" }

type jsonLogEntry struct {
	Event string      `json:"event"`
	At    time.Time   `json:"at"`
	Data  interface{} `json:"data"`
}

// DeliverPosting appends a "posting" event line.
func (j *JSONLogSink) DeliverPosting(_ context.Context, p model.StoredPosting) error {
	return j.append(jsonLogEntry{Event: "posting", At: time.Now(), Data: p})
}

// DeliverSummary appends a "rollup" event line.
func (j *JSONLogSink) DeliverSummary(_ context.Context, s model.Summary) error {
	return j.append(jsonLogEntry{Event: "rollup", At: time.Now(), Data: s})
}

func (j *JSONLogSink) append(entry jsonLogEntry) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal log entry: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", j.path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write %s: %w", j.path, err)
	}
	return nil
}
