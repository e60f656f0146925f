package solver

// NewLinearProblem builds a Problem directly from a vectorized right-hand
// side. Intended for systems that are already linear in their state vector
// (e.g. a Markov chain's forward equation dpi/dt = Q*pi), where building an
// intermediate graph/net representation would be pure overhead.
func NewLinearProblem(labels []string, u0 []float64, tspan [2]float64, rhs func(t float64, u []float64) []float64) *Problem {
	stateIndex := make(map[string]int, len(labels))
	for i, label := range labels {
		stateIndex[label] = i
	}
	vecU0 := append([]float64(nil), u0...)

	return &Problem{
		Tspan:       tspan,
		stateLabels: labels,
		stateIndex:  stateIndex,
		vecU0:       vecU0,
		vecF:        rhs,
	}
}
