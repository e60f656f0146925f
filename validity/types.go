// Package validity runs a candidate SPN through the CONNECTED -> BOUNDED ->
// SOLVABLE -> VALID state machine, composing the structural, reachability
// and steady-state checks into a single accept/reject decision.
package validity

import (
	"github.com/spnforge/spngen/markov"
	"github.com/spnforge/spngen/reachability"
	"github.com/spnforge/spngen/spn"
)

// State names a stage of the candidate state machine. Any check failure
// produces Invalid, which is terminal.
type State string

const (
	Candidate State = "CANDIDATE"
	Connected State = "CONNECTED"
	Bounded   State = "BOUNDED"
	Solvable  State = "SOLVABLE"
	Valid     State = "VALID"
	Invalid   State = "INVALID"
)

// Options configures the checks Filter runs.
type Options struct {
	Limits   reachability.Limits
	Strategy markov.Strategy
}

// DefaultOptions mirrors reachability.DefaultLimits and the Exact solver.
func DefaultOptions() Options {
	return Options{Limits: reachability.DefaultLimits(), Strategy: markov.Exact}
}

// Record is the result record emitted on VALID: the original matrix, its
// reachability graph, the firing rates it was assembled with, and the
// derived steady-state metrics.
type Record struct {
	Matrix  *spn.Matrix
	Graph   *reachability.Graph
	Lambda  []float64
	Pi      []float64
	Density *markov.Density
	Mu      []float64
	MuTotal float64
}

// Outcome is the terminal state a candidate reached (Valid or Invalid), the
// last state it held before failing, the reason for the failure, and the
// result record when State is Valid.
type Outcome struct {
	State    State
	FailedAt State
	Reason   string
	Record   *Record
}
