// Package reachability builds the reachability graph of a Stochastic Petri
// Net by bounded breadth-first exploration of its marking state space.
package reachability

import "github.com/spnforge/spngen/spn"

// Edge is a transition firing from marking V[Src] to marking V[Dst].
type Edge struct {
	Src, Dst int
}

// Graph is the reachability graph of an SPN: an ordered, duplicate-free
// list of markings V (V[0] is the initial marking), the edges between them,
// and the transition fired on each edge (A[i] corresponds to E[i]).
//
// If Bounded is false, exploration halted early because place_limit or
// mark_limit was exceeded; V/E/A then hold only the partial state space
// discovered up to that point.
type Graph struct {
	V       [][]int
	E       []Edge
	A       []int
	Bounded bool

	// TruncateReason explains why Bounded is false. Empty when Bounded.
	TruncateReason string
}

// StateCount returns len(V).
func (g *Graph) StateCount() int { return len(g.V) }

// EdgeCount returns len(E).
func (g *Graph) EdgeCount() int { return len(g.E) }

// MaxTokens returns the maximum token count observed in place p across
// every explored marking.
func (g *Graph) MaxTokens(p int) int {
	max := 0
	for _, marking := range g.V {
		if marking[p] > max {
			max = marking[p]
		}
	}
	return max
}

// bucket implements hash+verify duplicate detection: markings sharing a
// polynomial hash are stored together and compared by exact equality.
type bucket struct {
	indices map[uint64][]int
}

func newBucket() *bucket {
	return &bucket{indices: make(map[uint64][]int)}
}

// find returns the index of an equal marking already in V, or -1.
func (b *bucket) find(v [][]int, marking []int) int {
	h := spn.HashMarking(marking)
	for _, idx := range b.indices[h] {
		if markingsEqual(v[idx], marking) {
			return idx
		}
	}
	return -1
}

func (b *bucket) insert(marking []int, idx int) {
	h := spn.HashMarking(marking)
	b.indices[h] = append(b.indices[h], idx)
}

func markingsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
