// Package markov builds the Continuous-Time Markov Chain induced by an SPN's
// reachability graph and solves it for its steady-state distribution.
package markov

import (
	"errors"

	"github.com/spnforge/spngen/reachability"
	"gonum.org/v1/gonum/mat"
)

// ErrSingular is returned by Solve when the generator matrix breaks down
// numerically (singular, or no unique solution found). The caller treats
// this as candidate rejection, not a fatal error.
var ErrSingular = errors.New("markov: singular generator matrix")

// Generator is the CTMC generator matrix Q (n x n, n = |V|) with row 0
// already overwritten by the probability-conservation constraint, and the
// matching right-hand side y (y[0]=1, rest zero). Graph and Lambda are
// retained so a solved Generator can still recover the original,
// unsubstituted generator (see RawGenerator) to report a conservation
// residual against the physical Qpi=0 law, not the constrained system.
type Generator struct {
	N      int
	Q      *mat.Dense
	Y      []float64
	Graph  *reachability.Graph
	Lambda []float64
}

// Assemble builds the generator matrix from a reachability graph and a
// per-transition firing rate vector lambda (len(lambda) == number of
// transitions in the source SPN).
//
// For each edge i with src=E[i].Src, dst=E[i].Dst, t=A[i]: accumulates
// Q[dst,src] += lambda[t] and Q[src,src] -= lambda[t]. Parallel edges
// between the same (src,dst) pair (fired by different transitions) sum,
// since Dense accumulates in place rather than overwriting.
//
// Row 0 is then overwritten with all-ones and y is set to [1,0,...,0],
// substituting the rank-deficient Qpi=0 with a nonsingular system whose
// unique solution is the steady-state distribution.
func Assemble(g *reachability.Graph, lambda []float64) *Generator {
	n := g.StateCount()
	q := mat.NewDense(n, n, nil)

	for i, e := range g.E {
		t := g.A[i]
		rate := lambda[t]
		q.Set(e.Dst, e.Src, q.At(e.Dst, e.Src)+rate)
		q.Set(e.Src, e.Src, q.At(e.Src, e.Src)-rate)
	}

	for j := 0; j < n; j++ {
		q.Set(0, j, 1)
	}
	y := make([]float64, n)
	y[0] = 1

	return &Generator{N: n, Q: q, Y: y, Graph: g, Lambda: lambda}
}
