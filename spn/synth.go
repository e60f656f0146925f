package spn

import (
	"fmt"
	"math/rand"
)

// Candidate bundles a synthesized matrix with its firing rates.
type Candidate struct {
	Matrix *Matrix
	Lambda []float64
}

// node identifies a place or transition during spanning-tree construction.
type node struct {
	isPlace bool
	index   int
}

// Synthesize builds a random, structurally-connected SPN with P places and
// T transitions, arc density prob, and integer firing rates drawn from
// [1, lambdaMax]. rng must be non-nil so callers control reproducibility
// (each worker in the binning generator owns its own seeded source).
func Synthesize(p, t int, prob float64, lambdaMax int, rng *rand.Rand) (*Matrix, []float64, error) {
	if p < 1 || t < 1 {
		return nil, nil, fmt.Errorf("%w: places and transitions must be >= 1, got P=%d T=%d", ErrInvalidParameters, p, t)
	}
	if prob < 0 || prob > 1 {
		return nil, nil, fmt.Errorf("%w: prob must be in [0,1], got %v", ErrInvalidParameters, prob)
	}
	if lambdaMax < 1 {
		return nil, nil, fmt.Errorf("%w: lambdaMax must be >= 1, got %d", ErrInvalidParameters, lambdaMax)
	}

	m := NewMatrix(p, t)
	spanningTree(m, rng)
	densify(m, prob, rng)
	seedInitialMarking(m, rng)
	lambda := drawRates(t, lambdaMax, rng)
	return m, lambda, nil
}

// SynthesizeMany produces n candidates. When sharedStructure is true, the
// spanning-tree skeleton (step 1-2 of the synthesis algorithm) is built
// once and replicated across all n outputs; only densification, initial
// marking, and firing rates are drawn independently per output. When false,
// every candidate is fully independent.
func SynthesizeMany(p, t int, prob float64, lambdaMax, n int, sharedStructure bool, rng *rand.Rand) ([]*Candidate, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n must be >= 1, got %d", ErrInvalidParameters, n)
	}

	out := make([]*Candidate, n)

	if !sharedStructure {
		for i := 0; i < n; i++ {
			mat, lambda, err := Synthesize(p, t, prob, lambdaMax, rng)
			if err != nil {
				return nil, err
			}
			out[i] = &Candidate{Matrix: mat, Lambda: lambda}
		}
		return out, nil
	}

	if p < 1 || t < 1 {
		return nil, fmt.Errorf("%w: places and transitions must be >= 1, got P=%d T=%d", ErrInvalidParameters, p, t)
	}
	skeleton := NewMatrix(p, t)
	spanningTree(skeleton, rng)

	for i := 0; i < n; i++ {
		mat := skeleton.Clone()
		densify(mat, prob, rng)
		seedInitialMarking(mat, rng)
		lambda := drawRates(t, lambdaMax, rng)
		out[i] = &Candidate{Matrix: mat, Lambda: lambda}
	}
	return out, nil
}

// spanningTree implements step 1-2 of the synthesis algorithm: a uniform
// random place/transition seed pair, then incrementally attaching every
// remaining node to one already-connected node on the opposite side.
func spanningTree(m *Matrix, rng *rand.Rand) {
	p0 := rng.Intn(m.P)
	t0 := rng.Intn(m.T)
	connectRandomDirection(m, p0, t0, rng)

	placesIn := map[int]bool{p0: true}
	transitionsIn := map[int]bool{t0: true}

	var remaining []node
	for p := 0; p < m.P; p++ {
		if p != p0 {
			remaining = append(remaining, node{isPlace: true, index: p})
		}
	}
	for t := 0; t < m.T; t++ {
		if t != t0 {
			remaining = append(remaining, node{isPlace: false, index: t})
		}
	}
	rng.Shuffle(len(remaining), func(i, j int) { remaining[i], remaining[j] = remaining[j], remaining[i] })

	placeIDs := make([]int, 0, m.P)
	transitionIDs := make([]int, 0, m.T)
	for p := range placesIn {
		placeIDs = append(placeIDs, p)
	}
	for t := range transitionsIn {
		transitionIDs = append(transitionIDs, t)
	}

	for _, n := range remaining {
		if n.isPlace {
			tIdx := transitionIDs[rng.Intn(len(transitionIDs))]
			connectRandomDirection(m, n.index, tIdx, rng)
			placesIn[n.index] = true
			placeIDs = append(placeIDs, n.index)
		} else {
			pIdx := placeIDs[rng.Intn(len(placeIDs))]
			connectRandomDirection(m, pIdx, n.index, rng)
			transitionsIn[n.index] = true
			transitionIDs = append(transitionIDs, n.index)
		}
	}
}

// connectRandomDirection adds a single unit arc between place p and
// transition t, choosing Tin vs Tout with a fair coin flip.
func connectRandomDirection(m *Matrix, p, t int, rng *rand.Rand) {
	if rng.Intn(2) == 0 {
		m.Tin[p][t] = 1
	} else {
		m.Tout[p][t] = 1
	}
}

// densify implements step 3: every currently-zero entry of Tin and Tout is
// independently set to 1 with probability prob.
func densify(m *Matrix, prob float64, rng *rand.Rand) {
	if prob <= 0 {
		return
	}
	for p := 0; p < m.P; p++ {
		for t := 0; t < m.T; t++ {
			if m.Tin[p][t] == 0 && rng.Float64() < prob {
				m.Tin[p][t] = 1
			}
			if m.Tout[p][t] == 0 && rng.Float64() < prob {
				m.Tout[p][t] = 1
			}
		}
	}
}

// seedInitialMarking implements step 4: if M0 is still all-zero, draw each
// M0[p] from {0,1} with equal probability.
func seedInitialMarking(m *Matrix, rng *rand.Rand) {
	for _, v := range m.M0 {
		if v != 0 {
			return
		}
	}
	for p := 0; p < m.P; p++ {
		m.M0[p] = rng.Intn(2)
	}
}

// drawRates implements step 5: each lambda_t drawn uniformly from
// {1, ..., lambdaMax}.
func drawRates(t, lambdaMax int, rng *rand.Rand) []float64 {
	lambda := make([]float64, t)
	for i := 0; i < t; i++ {
		lambda[i] = float64(1 + rng.Intn(lambdaMax))
	}
	return lambda
}
