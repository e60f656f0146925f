package solver

import (
	"testing"
)

func TestSolutionGetVariable(t *testing.T) {
	sol := &Solution{
		T: []float64{0, 1, 2},
		U: []map[string]float64{
			{"p1": 10.0, "p2": 0.0},
			{"p1": 5.0, "p2": 5.0},
			{"p1": 0.0, "p2": 10.0},
		},
		StateLabels: []string{"p1", "p2"},
	}

	// Test by string
	p1 := sol.GetVariable("p1")
	if len(p1) != 3 {
		t.Errorf("Expected 3 values, got %d", len(p1))
	}
	if p1[0] != 10.0 || p1[1] != 5.0 || p1[2] != 0.0 {
		t.Errorf("Expected [10, 5, 0], got %v", p1)
	}

	// Test by index
	p2 := sol.GetVariable(1)
	if len(p2) != 3 {
		t.Errorf("Expected 3 values, got %d", len(p2))
	}
	if p2[0] != 0.0 || p2[1] != 5.0 || p2[2] != 10.0 {
		t.Errorf("Expected [0, 5, 10], got %v", p2)
	}

	// Test invalid - nonexistent variables should return a slice with zeros
	invalid := sol.GetVariable("nonexistent")
	if invalid == nil {
		t.Error("Expected non-nil slice for nonexistent variable")
	}
	for i, v := range invalid {
		if v != 0.0 {
			t.Errorf("Expected 0.0 for nonexistent variable at index %d, got %f", i, v)
		}
	}
}

func TestSolutionGetFinalState(t *testing.T) {
	sol := &Solution{
		T: []float64{0, 1, 2},
		U: []map[string]float64{
			{"p1": 10.0},
			{"p1": 5.0},
			{"p1": 0.0},
		},
		StateLabels: []string{"p1"},
	}

	finalState := sol.GetFinalState()
	if finalState["p1"] != 0.0 {
		t.Errorf("Expected final p1=0.0, got %f", finalState["p1"])
	}

	emptySol := &Solution{U: []map[string]float64{}}
	if emptySol.GetFinalState() != nil {
		t.Error("Expected nil for empty solution")
	}
}

func TestSolutionGetState(t *testing.T) {
	sol := &Solution{
		T: []float64{0, 1, 2},
		U: []map[string]float64{
			{"p1": 10.0},
			{"p1": 5.0},
			{"p1": 0.0},
		},
		StateLabels: []string{"p1"},
	}

	state := sol.GetState(1)
	if state["p1"] != 5.0 {
		t.Errorf("Expected p1=5.0 at index 1, got %f", state["p1"])
	}

	if sol.GetState(-1) != nil {
		t.Error("Expected nil for negative index")
	}
	if sol.GetState(10) != nil {
		t.Error("Expected nil for out of bounds index")
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Dt != 0.01 {
		t.Errorf("Expected Dt=0.01, got %f", opts.Dt)
	}
	if opts.Dtmin != 1e-6 {
		t.Errorf("Expected Dtmin=1e-6, got %f", opts.Dtmin)
	}
	if opts.Dtmax != 0.1 {
		t.Errorf("Expected Dtmax=0.1, got %f", opts.Dtmax)
	}
	if opts.Abstol != 1e-6 {
		t.Errorf("Expected Abstol=1e-6, got %f", opts.Abstol)
	}
	if opts.Reltol != 1e-3 {
		t.Errorf("Expected Reltol=1e-3, got %f", opts.Reltol)
	}
	if opts.Maxiters != 100000 {
		t.Errorf("Expected Maxiters=100000, got %d", opts.Maxiters)
	}
	if !opts.Adaptive {
		t.Error("Expected Adaptive=true")
	}
}

func TestTsit5(t *testing.T) {
	solver := Tsit5()

	if solver.Name != "Tsit5" {
		t.Errorf("Expected name 'Tsit5', got '%s'", solver.Name)
	}
	if solver.Order != 5 {
		t.Errorf("Expected order 5, got %d", solver.Order)
	}
	if len(solver.C) != 7 {
		t.Errorf("Expected 7 nodes, got %d", len(solver.C))
	}
	if len(solver.A) != 7 {
		t.Errorf("Expected 7 rows in A matrix, got %d", len(solver.A))
	}
	if len(solver.B) != 7 {
		t.Errorf("Expected 7 solution weights, got %d", len(solver.B))
	}
	if len(solver.Bhat) != 7 {
		t.Errorf("Expected 7 error weights, got %d", len(solver.Bhat))
	}
}

func TestSolveLinearDecay(t *testing.T) {
	// dA/dt = -k*A, solved through the generic vectorized engine via
	// NewLinearProblem rather than a Petri-net mass-action construction.
	prob := NewLinearProblem([]string{"A"}, []float64{100.0}, [2]float64{0, 10},
		func(t float64, u []float64) []float64 {
			return []float64{-0.1 * u[0]}
		})
	sol := Solve(prob, Tsit5(), DefaultOptions())

	if len(sol.T) == 0 || len(sol.U) == 0 {
		t.Fatal("Solution has no time points")
	}
	if sol.U[0]["A"] != 100.0 {
		t.Errorf("Expected initial A=100.0, got %f", sol.U[0]["A"])
	}
	for i := 1; i < len(sol.U); i++ {
		if sol.U[i]["A"] > sol.U[i-1]["A"] {
			t.Errorf("A should be decreasing, but increased at step %d", i)
		}
	}
}

func TestSolveNonAdaptive(t *testing.T) {
	prob := NewLinearProblem([]string{"A"}, []float64{10.0}, [2]float64{0, 1},
		func(t float64, u []float64) []float64 {
			return []float64{-0.1 * u[0]}
		})
	opts := &Options{
		Dt:       0.1,
		Dtmin:    0.1,
		Dtmax:    0.1,
		Abstol:   1e-6,
		Reltol:   1e-3,
		Maxiters: 1000,
		Adaptive: false,
	}
	sol := Solve(prob, Tsit5(), opts)

	// With fixed dt=0.1 and tspan=[0,1], we expect ~11 points (0, 0.1, ..., 1.0)
	if len(sol.T) < 10 || len(sol.T) > 12 {
		t.Errorf("Expected ~11 time points with fixed dt, got %d", len(sol.T))
	}
}

func TestCopyState(t *testing.T) {
	original := map[string]float64{"A": 1.0, "B": 2.0}
	copied := CopyState(original)

	if copied["A"] != 1.0 || copied["B"] != 2.0 {
		t.Error("Copied state values don't match")
	}

	copied["A"] = 999.0
	if original["A"] != 1.0 {
		t.Error("Modifying copy affected original - not a deep copy")
	}
}
