package dataset

import (
	"fmt"
	"math"

	"github.com/spnforge/spngen/markov"
)

// RelaxationSample reports how quickly one accepted candidate's marking
// distribution approaches its own steady state, sampled by integrating the
// Kolmogorov forward equation from the candidate's initial marking.
type RelaxationSample struct {
	ID          string
	T           []float64
	MaxResidual []float64 // max_i |pi_i(t) - pi_i_steady| per sample point
	SettledAt   float64   // first t where MaxResidual < tol, or the span's end
}

// SampleRelaxation integrates a.Record's CTMC from its initial marking over
// tspan and measures how far the transient distribution is from the
// steady-state pi the validity pipeline already solved for, at tol
// resolution. Used by cmd/spnbench's -sample-transient flag to report a
// convergence diagnostic alongside the steady-state metrics every accepted
// candidate already carries.
func SampleRelaxation(a Accepted, tspan [2]float64, tol float64) (*RelaxationSample, error) {
	rawQ := markov.RawGenerator(a.Record.Graph, a.Record.Lambda)
	pi0 := make([]float64, a.Record.Graph.StateCount())
	pi0[0] = 1

	traj, err := markov.Transient(rawQ, pi0, tspan, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("dataset: sampling relaxation for %s: %w", a.ID, err)
	}

	out := &RelaxationSample{ID: a.ID.String(), T: traj.T, SettledAt: tspan[1]}
	settled := false
	for idx, row := range traj.Pi {
		var maxResidual float64
		for i, p := range row {
			if d := math.Abs(p - a.Record.Pi[i]); d > maxResidual {
				maxResidual = d
			}
		}
		out.MaxResidual = append(out.MaxResidual, maxResidual)
		if !settled && maxResidual < tol {
			out.SettledAt = traj.T[idx]
			settled = true
		}
	}
	return out, nil
}
