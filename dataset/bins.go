package dataset

import "sync"

// binKey identifies one cell of the (places x transitions x state-bucket)
// grid the generator fills.
type binKey struct {
	P, T, Bucket int
}

// bucket classifies a state count into the bucket index of a sorted
// boundary vector bins = [b1, ..., bk]: bucket 0 is (-inf, b1), bucket i
// (1 <= i < k) is [b_i, b_{i+1}), and bucket k is [b_k, inf).
func bucket(stateCount int, bins []int) int {
	for i, b := range bins {
		if stateCount < b {
			return i
		}
	}
	return len(bins)
}

// binCount is len(bins)+1: the number of state-count buckets a boundary
// vector of length len(bins) produces.
func binCount(bins []int) int { return len(bins) + 1 }

// ptKey identifies a (places, transitions) pair, the granularity attempts
// are counted at: a drawn candidate only learns which bucket it would land
// in once it reaches VALID, so attempt effort is tracked per (P, T) and
// shared across every bucket of that pair, not per binKey.
type ptKey struct {
	P, T int
}

// binTable is the coordinator's shared, mutex-guarded accounting of how
// many accepted SPNs each bin holds and how many attempts each (P, T) pair
// has absorbed. This is the only state workers serialize on; everything
// upstream of it (synthesis, reachability, solving) runs independently per
// candidate.
type binTable struct {
	mu       sync.Mutex
	target   int
	attempts map[ptKey]int
	counts   map[binKey]int
	keys     []binKey
}

func newBinTable(pRange, tRange [2]int, bins []int, target int) *binTable {
	t := &binTable{
		target:   target,
		attempts: make(map[ptKey]int),
		counts:   make(map[binKey]int),
	}
	for p := pRange[0]; p <= pRange[1]; p++ {
		for tr := tRange[0]; tr <= tRange[1]; tr++ {
			t.attempts[ptKey{P: p, T: tr}] = 0
			for b := 0; b < binCount(bins); b++ {
				k := binKey{P: p, T: tr, Bucket: b}
				t.counts[k] = 0
				t.keys = append(t.keys, k)
			}
		}
	}
	return t
}

// allFull reports whether every bin has reached its target.
func (t *binTable) allFull() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, k := range t.keys {
		if t.counts[k] < t.target {
			return false
		}
	}
	return true
}

// recordAttempt increments the attempt counter for every (P, T) draw,
// regardless of the candidate's outcome, used to detect an unfillable bin.
// Called once per drawn candidate, before synthesis even runs, so a bin
// whose bucket no valid candidate of that (P, T) ever reaches still accrues
// attempts and eventually trips the cap.
func (t *binTable) recordAttempt(p, tr int) {
	t.mu.Lock()
	t.attempts[ptKey{P: p, T: tr}]++
	t.mu.Unlock()
}

// tryAccept admits the candidate into bin k if it is not yet full,
// reporting whether it was accepted.
func (t *binTable) tryAccept(k binKey) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.counts[k] >= t.target {
		return false
	}
	t.counts[k]++
	return true
}

// doneOrCapped reports whether every bin is either full or, given a
// positive attempt cap, has spent its cap without filling. A cap of 0
// disables this early-out: workers keep trying indefinitely.
func (t *binTable) doneOrCapped(cap int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, k := range t.keys {
		if t.counts[k] >= t.target {
			continue
		}
		if cap <= 0 || t.attempts[ptKey{P: k.P, T: k.T}] < cap {
			return false
		}
	}
	return true
}

// unfilled returns the bins that have not reached target, each paired with
// the number of attempts spent on its (P, T) pair.
func (t *binTable) unfilled() map[binKey]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[binKey]int)
	for _, k := range t.keys {
		if t.counts[k] < t.target {
			out[k] = t.attempts[ptKey{P: k.P, T: k.T}]
		}
	}
	return out
}
