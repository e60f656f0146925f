package dataset

import (
	"fmt"
	"io"

	"github.com/spnforge/spngen/eventlog"
)

// FailureBreakdown summarizes a run's own audit trail: how many candidates
// reached VALID versus the validity-pipeline stage each rejected candidate
// failed at. Recovered from the JSONL log an EventRecorder wrote during
// Generate, not tracked live by Generate itself, so a caller can diagnose
// an unfilled bin after the fact without Generate carrying that bookkeeping
// on every run.
type FailureBreakdown struct {
	Summary  eventlog.Summary
	Accepted int
	FailedAt map[string]int // "BOUNDED->INVALID" etc. -> rejection count
}

// Diagnose reads back a JSONL audit trail written by a JSONLRecorder and
// tallies where rejected candidates failed. This is the read side of the
// EventRecorder Generate writes through: an unfilled bin's
// UnfilledBin.Attempts says how many candidates were tried, Diagnose says
// why most of them were rejected.
func Diagnose(r io.Reader) (*FailureBreakdown, error) {
	log, err := eventlog.ParseJSONLReader(r, eventlog.DefaultJSONLConfig())
	if err != nil {
		return nil, fmt.Errorf("dataset: parsing audit trail: %w", err)
	}

	b := &FailureBreakdown{Summary: log.Summarize(), FailedAt: make(map[string]int)}
	for _, trace := range log.GetTraces() {
		if len(trace.Events) == 0 {
			continue
		}
		last := trace.Events[len(trace.Events)-1]
		if last.Activity == "VALID" {
			b.Accepted++
			continue
		}
		b.FailedAt[last.Activity]++
	}
	return b, nil
}
