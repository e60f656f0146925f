package markov

import "github.com/spnforge/spngen/reachability"

// Density is the steady-state marking density of an SPN: Density[p][k] is
// the steady-state probability that place p holds exactly k tokens, for
// k in 0..K where K = the maximum token count observed at any place across
// the reachability graph. Rows sum to 1 by construction.
type Density struct {
	Rows [][]float64
	K    int
}

// At returns the density of place p holding k tokens.
func (d *Density) At(p, k int) float64 { return d.Rows[p][k] }

// DeriveDensity sums pi[i] over every state i with V[i][p]=k, for every
// place p, producing the P x (K+1) steady-state marking density matrix.
// K is the maximum token count observed at any place in g.
func DeriveDensity(g *reachability.Graph, pi []float64) *Density {
	p := len(g.V[0])
	k := 0
	for place := 0; place < p; place++ {
		if m := g.MaxTokens(place); m > k {
			k = m
		}
	}

	rows := make([][]float64, p)
	for place := range rows {
		rows[place] = make([]float64, k+1)
	}

	for i, marking := range g.V {
		for place, tokens := range marking {
			rows[place][tokens] += pi[i]
		}
	}

	return &Density{Rows: rows, K: k}
}

// MeanTokens computes mu[p] = sum_k k*density[p,k], the expected steady-state
// token count at each place, and mu_total = sum_p mu[p].
func MeanTokens(d *Density) (mu []float64, muTotal float64) {
	mu = make([]float64, len(d.Rows))
	for p, row := range d.Rows {
		var m float64
		for k, prob := range row {
			m += float64(k) * prob
		}
		mu[p] = m
		muTotal += m
	}
	return mu, muTotal
}
