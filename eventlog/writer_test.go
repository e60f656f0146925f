package eventlog

import (
	"bytes"
	"testing"
	"time"
)

func TestWriterRoundTripsThroughParseJSONL(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	events := []Event{
		{CaseID: "c1", Activity: "CANDIDATE", Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{CaseID: "c1", Activity: "CONNECTED", Timestamp: time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC)},
		{CaseID: "c2", Activity: "CANDIDATE", Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{CaseID: "c2", Activity: "INVALID", Timestamp: time.Date(2026, 1, 1, 0, 0, 2, 0, time.UTC), Attributes: map[string]interface{}{"reason": "isolated place"}},
	}
	for _, ev := range events {
		if err := w.WriteEvent(ev); err != nil {
			t.Fatalf("WriteEvent: %v", err)
		}
	}

	log, err := ParseJSONLReader(&buf, DefaultJSONLConfig())
	if err != nil {
		t.Fatalf("ParseJSONLReader: %v", err)
	}
	if log.NumCases() != 2 {
		t.Fatalf("expected 2 cases, got %d", log.NumCases())
	}
	if log.NumEvents() != 4 {
		t.Fatalf("expected 4 events, got %d", log.NumEvents())
	}

	c1 := log.Cases["c1"]
	variant := c1.GetActivityVariant()
	if len(variant) != 2 || variant[0] != "CANDIDATE" || variant[1] != "CONNECTED" {
		t.Fatalf("unexpected variant for c1: %v", variant)
	}

	c2 := log.Cases["c2"]
	if c2.Events[1].Attributes["reason"] != "isolated place" {
		t.Fatalf("expected reason attribute to round-trip, got %v", c2.Events[1].Attributes)
	}
}
