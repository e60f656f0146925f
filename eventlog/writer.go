package eventlog

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// Writer appends events to an underlying io.Writer, one JSON object per
// line, using the same field names DefaultJSONLConfig expects on read: a
// log written by Writer round-trips through ParseJSONLReader unchanged.
// WriteEvent is safe for concurrent use; the binning loop in dataset calls
// it from every worker goroutine.
type Writer struct {
	mu  sync.Mutex
	w   io.Writer
	enc *json.Encoder
}

// NewWriter wraps w for JSONL event output.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, enc: json.NewEncoder(w)}
}

// record is the on-disk shape written for each event; field names match
// DefaultJSONLConfig so the same file parses back with ParseJSONLReader.
type record struct {
	CaseID    string                 `json:"case_id"`
	Activity  string                 `json:"activity"`
	Timestamp string                 `json:"timestamp"`
	Resource  string                 `json:"resource,omitempty"`
	Lifecycle string                 `json:"lifecycle,omitempty"`
	Extra     map[string]interface{} `json:"-"`
}

// WriteEvent appends a single event as one JSONL line.
func (w *Writer) WriteEvent(ev Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	r := record{
		CaseID:    ev.CaseID,
		Activity:  ev.Activity,
		Timestamp: ev.Timestamp.Format("2006-01-02T15:04:05.000Z07:00"),
		Resource:  ev.Resource,
		Lifecycle: ev.Lifecycle,
	}
	if len(ev.Attributes) == 0 {
		if err := w.enc.Encode(r); err != nil {
			return fmt.Errorf("eventlog: write event: %w", err)
		}
		return nil
	}

	flat := map[string]interface{}{
		"case_id":   r.CaseID,
		"activity":  r.Activity,
		"timestamp": r.Timestamp,
	}
	if r.Resource != "" {
		flat["resource"] = r.Resource
	}
	if r.Lifecycle != "" {
		flat["lifecycle"] = r.Lifecycle
	}
	for k, v := range ev.Attributes {
		flat[k] = v
	}
	if err := w.enc.Encode(flat); err != nil {
		return fmt.Errorf("eventlog: write event: %w", err)
	}
	return nil
}
