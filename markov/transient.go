package markov

import (
	"fmt"

	"github.com/spnforge/spngen/reachability"
	"github.com/spnforge/spngen/solver"
)

// Trajectory is a sampled solution of the Kolmogorov forward equation
// dpi/dt = Q*pi over the unsubstituted generator (row 0 not replaced), a
// diagnostic companion to the steady-state solve: it shows how the
// distribution actually relaxes toward the fixed point Solve reports.
type Trajectory struct {
	T  []float64
	Pi [][]float64
}

// Transient integrates dpi/dt = Q*pi from pi0 over tspan using the generic
// Runge-Kutta engine, applied to the CTMC's own right-hand side instead of
// mass-action kinetics. method selects the tableau (solver.Tsit5,
// solver.RK45, solver.RK4, solver.Heun, solver.Midpoint, solver.BS32,
// solver.Euler); a nil method defaults to solver.Tsit5.
//
// rawQ is the unsubstituted Qpi=0 generator (see RawGenerator); Assemble's
// Generator always has row 0 replaced by the conservation constraint and
// is not suitable here.
func Transient(rawQ [][]float64, pi0 []float64, tspan [2]float64, method *solver.Solver, opts *solver.Options) (*Trajectory, error) {
	n := len(pi0)
	if len(rawQ) != n {
		return nil, fmt.Errorf("markov: generator dimension %d does not match pi0 length %d", len(rawQ), n)
	}

	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("s%d", i)
	}

	rhs := func(_ float64, u []float64) []float64 {
		du := make([]float64, n)
		for i := 0; i < n; i++ {
			var sum float64
			for j := 0; j < n; j++ {
				sum += rawQ[i][j] * u[j]
			}
			du[i] = sum
		}
		return du
	}

	prob := solver.NewLinearProblem(labels, pi0, tspan, rhs)
	sol := solver.Solve(prob, method, opts)

	traj := &Trajectory{T: sol.T, Pi: make([][]float64, len(sol.T))}
	for i := range sol.T {
		row := make([]float64, n)
		for j, label := range labels {
			row[j] = sol.U[i][label]
		}
		traj.Pi[i] = row
	}
	return traj, nil
}

// RawGenerator rebuilds the unsubstituted n x n generator Q from the same
// graph and rates Assemble consumes, for use with Transient (which needs
// the physical Qpi=0 matrix, not the row-0-substituted one used for the
// steady-state solve).
func RawGenerator(g *reachability.Graph, lambda []float64) [][]float64 {
	n := g.StateCount()
	q := make([][]float64, n)
	for i := range q {
		q[i] = make([]float64, n)
	}
	for i, e := range g.E {
		rate := lambda[g.A[i]]
		q[e.Dst][e.Src] += rate
		q[e.Src][e.Src] -= rate
	}
	return q
}
