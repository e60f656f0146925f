package reachability

import "github.com/spnforge/spngen/spn"

// Limits bounds the breadth-first exploration performed by Explore.
type Limits struct {
	// PlaceLimit: exploration halts (unbounded) the moment any component
	// of a newly-reached marking would exceed this value.
	PlaceLimit int
	// MarkLimit: exploration halts (unbounded) if admitting a new marking
	// would grow the state count beyond this value.
	MarkLimit int
}

// DefaultLimits mirrors the reference defaults: place_limit=10, mark_limit=500.
func DefaultLimits() Limits {
	return Limits{PlaceLimit: 10, MarkLimit: 500}
}

// Explore performs a bounded BFS reachability exploration: markings are
// visited in FIFO order, duplicate markings are detected by
// hash-then-verify, and edges are emitted in (BFS visit order of source,
// ascending transition index).
//
// V/E/A are pre-allocated to min(limits.MarkLimit, 1024) to amortize growth
// on the common case of a small bounded graph.
func Explore(m *spn.Matrix, limits Limits) *Graph {
	prealloc := limits.MarkLimit
	if prealloc <= 0 || prealloc > 1024 {
		prealloc = 1024
	}

	g := &Graph{
		V:       make([][]int, 0, prealloc),
		E:       make([]Edge, 0, prealloc),
		A:       make([]int, 0, prealloc),
		Bounded: true,
	}

	seen := newBucket()

	initial := make([]int, m.P)
	copy(initial, m.M0)
	g.V = append(g.V, initial)
	seen.insert(initial, 0)

	queue := make([]int, 0, prealloc)
	queue = append(queue, 0)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		marking := g.V[cur]

		for t := 0; t < m.T; t++ {
			if !m.IsEnabled(marking, t) {
				continue
			}
			next := m.Fire(marking, t)

			overflow := false
			for _, tokens := range next {
				if tokens > limits.PlaceLimit {
					overflow = true
					break
				}
			}
			if overflow {
				g.Bounded = false
				g.TruncateReason = "unbounded: place token count exceeded place_limit"
				return g
			}

			idx := seen.find(g.V, next)
			if idx < 0 {
				if len(g.V) >= limits.MarkLimit {
					g.Bounded = false
					g.TruncateReason = "unbounded: state count exceeded mark_limit"
					return g
				}
				idx = len(g.V)
				g.V = append(g.V, next)
				seen.insert(next, idx)
				queue = append(queue, idx)
			}

			g.E = append(g.E, Edge{Src: cur, Dst: idx})
			g.A = append(g.A, t)
		}
	}

	return g
}
