package dataset

import (
	"time"

	"github.com/google/uuid"
	"github.com/spnforge/spngen/eventlog"
)

// EventRecorder receives one call per candidate state-machine transition
// reached during the binning loop (CANDIDATE, CONNECTED, BOUNDED, SOLVABLE,
// VALID), keyed by the candidate's own UUID as case ID; a rejection is
// recorded as "<last state held>->INVALID" with the reason. Generate
// treats a nil EventRecorder as "don't record" the same way it treats an
// empty Sinks list as "don't persist".
type EventRecorder interface {
	Record(candidateID uuid.UUID, state string, reason string)
}

// JSONLRecorder adapts an eventlog.Writer into an EventRecorder, giving the
// binning loop's audit trail the same JSONL shape ParseJSONLReader expects.
type JSONLRecorder struct {
	w *eventlog.Writer
}

// NewJSONLRecorder wraps an eventlog.Writer.
func NewJSONLRecorder(w *eventlog.Writer) *JSONLRecorder { return &JSONLRecorder{w: w} }

func (r *JSONLRecorder) Record(candidateID uuid.UUID, state string, reason string) {
	ev := eventlog.Event{
		CaseID:    candidateID.String(),
		Activity:  state,
		Timestamp: time.Now(),
	}
	if reason != "" {
		ev.Attributes = map[string]interface{}{"reason": reason}
	}
	// Best-effort: a dropped audit-trail line never aborts a run that is
	// otherwise healthy, and Generate has no good recovery for a full disk
	// mid-candidate anyway.
	_ = r.w.WriteEvent(ev)
}
