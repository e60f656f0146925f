package validity

import (
	"github.com/spnforge/spngen/markov"
	"github.com/spnforge/spngen/reachability"
	"github.com/spnforge/spngen/spn"
)

// Filter runs a candidate SPN through the full state machine and reports
// where it landed. It does not repair structural defects itself: callers
// that want the isolated-node repair applied first should call
// m.AddEdgesToIsolatedNodes before Filter (the binning generator applies
// that repair before invoking Filter).
func Filter(m *spn.Matrix, lambda []float64, opts Options) Outcome {
	if !m.HasNoIsolatedNodes() {
		return Outcome{State: Invalid, FailedAt: Candidate, Reason: "isolated place or transition"}
	}

	g := reachability.Explore(m, opts.Limits)
	if !g.Bounded {
		return Outcome{State: Invalid, FailedAt: Connected, Reason: g.TruncateReason}
	}

	strategy := opts.Strategy
	if strategy == nil {
		strategy = markov.Exact
	}
	gen := markov.Assemble(g, lambda)
	ss, err := markov.Solve(gen, strategy)
	if err != nil {
		return Outcome{State: Invalid, FailedAt: Bounded, Reason: err.Error()}
	}

	density := markov.DeriveDensity(g, ss.Pi)
	mu, muTotal := markov.MeanTokens(density)

	return Outcome{
		State: Valid,
		Record: &Record{
			Matrix:  m,
			Graph:   g,
			Lambda:  lambda,
			Pi:      ss.Pi,
			Density: density,
			Mu:      mu,
			MuTotal: muTotal,
		},
	}
}
