package validity

import (
	"math"
	"testing"

	"github.com/spnforge/spngen/reachability"
	"github.com/spnforge/spngen/spn"
)

func producerConsumer() (*spn.Matrix, []float64) {
	m := spn.NewMatrix(2, 2)
	m.Tin[0][0] = 1
	m.Tout[1][0] = 1
	m.Tin[1][1] = 1
	m.Tout[0][1] = 1
	m.M0[0] = 1
	return m, []float64{1, 1}
}

func TestFilterAcceptsProducerConsumer(t *testing.T) {
	m, lambda := producerConsumer()
	out := Filter(m, lambda, DefaultOptions())
	if out.State != Valid {
		t.Fatalf("expected VALID, got %s (failed at %s: %s)", out.State, out.FailedAt, out.Reason)
	}
	if math.Abs(out.Record.MuTotal-1.0) > 1e-6 {
		t.Fatalf("expected mu_total=1.0, got %v", out.Record.MuTotal)
	}
}

func TestFilterRejectsIsolatedPlace(t *testing.T) {
	m := spn.NewMatrix(2, 1)
	m.Tin[0][0] = 1
	m.Tout[0][0] = 1
	// place 1 has no arcs at all.
	out := Filter(m, []float64{1}, DefaultOptions())
	if out.State != Invalid || out.FailedAt != Candidate {
		t.Fatalf("expected INVALID at CANDIDATE, got %s at %s", out.State, out.FailedAt)
	}
}

func TestFilterRejectsUnbounded(t *testing.T) {
	m := spn.NewMatrix(1, 1)
	m.Tout[0][0] = 1 // unbounded producer, no input arc
	out := Filter(m, []float64{1}, Options{Limits: reachability.Limits{PlaceLimit: 5, MarkLimit: 500}})
	if out.State != Invalid || out.FailedAt != Connected {
		t.Fatalf("expected INVALID at CONNECTED, got %s at %s", out.State, out.FailedAt)
	}
}
