package petri

import (
	"fmt"

	"github.com/spnforge/spngen/spn"
)

// FromMatrix builds a PetriNet from a compound SPN matrix, labeling places
// "p0".."p{P-1}" and transitions "t0".."t{T-1}" in index order. All arcs
// carry unit weight, matching the matrix's {0,1} invariant. Used to reuse
// the visualization package's SVG renderer and the validation package's
// structural diagnostics against synthesized or rejected candidates; it is
// not part of the reachability or steady-state pipeline, which operate on
// spn.Matrix directly.
func FromMatrix(m *spn.Matrix) *PetriNet {
	net := NewPetriNet()
	for p := 0; p < m.P; p++ {
		net.AddPlace(fmt.Sprintf("p%d", p), float64(m.M0[p]), nil, float64(100+120*p), 100, nil)
	}
	for t := 0; t < m.T; t++ {
		net.AddTransition(fmt.Sprintf("t%d", t), "default", float64(100+120*t), 260, nil)
		pLabel := func(p int) string { return fmt.Sprintf("p%d", p) }
		tLabel := fmt.Sprintf("t%d", t)
		for p := 0; p < m.P; p++ {
			if m.Tin[p][t] != 0 {
				net.AddArc(pLabel(p), tLabel, 1.0, false)
			}
			if m.Tout[p][t] != 0 {
				net.AddArc(tLabel, pLabel(p), 1.0, false)
			}
		}
	}
	return net
}
