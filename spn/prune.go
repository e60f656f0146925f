package spn

import "math/rand"

// Prune reduces the maximum in-degree and out-degree of every place and
// transition to at most 2 by removing random arcs, then reconnects any
// node that pruning left isolated. Not part of the core synthesis pipeline;
// useful for thinning a densely-connected candidate before synthesis runs
// again with a lower density, or for producing sparser benchmark variants.
func Prune(m *Matrix, rng *rand.Rand) {
	pruneSide := func(deg func(p, t int) int, clear func(p, t int)) {
		for p := 0; p < m.P; p++ {
			var arcs []int
			for t := 0; t < m.T; t++ {
				if deg(p, t) != 0 {
					arcs = append(arcs, t)
				}
			}
			for len(arcs) > 2 {
				i := rng.Intn(len(arcs))
				clear(p, arcs[i])
				arcs = append(arcs[:i], arcs[i+1:]...)
			}
		}
		for t := 0; t < m.T; t++ {
			var arcs []int
			for p := 0; p < m.P; p++ {
				if deg(p, t) != 0 {
					arcs = append(arcs, p)
				}
			}
			for len(arcs) > 2 {
				i := rng.Intn(len(arcs))
				clear(arcs[i], t)
				arcs = append(arcs[:i], arcs[i+1:]...)
			}
		}
	}

	pruneSide(func(p, t int) int { return m.Tin[p][t] }, func(p, t int) { m.Tin[p][t] = 0 })
	pruneSide(func(p, t int) int { return m.Tout[p][t] }, func(p, t int) { m.Tout[p][t] = 0 })

	m.AddEdgesToIsolatedNodes(rng)
}
